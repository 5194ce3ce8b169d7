package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAfricasTalkingSender_Send(t *testing.T) {
	var gotAPIKey, gotTo, gotMessage string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotAPIKey = r.Header.Get("apiKey")
		gotTo = r.FormValue("to")
		gotMessage = r.FormValue("message")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"SMSMessageData": map[string]interface{}{
				"Recipients": []map[string]string{{"messageId": "ATXid_123"}},
			},
		})
	}))
	defer server.Close()

	sender := &africasTalkingSender{baseURL: server.URL, client: server.Client()}
	cfg := ProviderConfig{APIKey: "at-key", AccountSID: "clinic", FromNumber: "MEDIREMIND"}

	id, err := sender.Send(context.Background(), "+254711000111", "Habari", cfg)

	require.NoError(t, err)
	assert.Equal(t, "ATXid_123", id)
	assert.Equal(t, "at-key", gotAPIKey)
	assert.Equal(t, "+254711000111", gotTo)
	assert.Equal(t, "Habari", gotMessage)
}

func TestAfricasTalkingSender_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	sender := &africasTalkingSender{baseURL: server.URL, client: server.Client()}

	_, err := sender.Send(context.Background(), "+254711000111", "Habari", ProviderConfig{})
	assert.Error(t, err)
}

func TestDialog360Sender_Send(t *testing.T) {
	var gotKey string
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("D360-API-KEY")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"messages": []map[string]string{{"id": "wamid.123"}},
		})
	}))
	defer server.Close()

	sender := &dialog360Sender{baseURL: server.URL, client: server.Client()}
	cfg := ProviderConfig{APIKey: "d360-key"}

	id, err := sender.Send(context.Background(), "+254711000111", "Habari", cfg)

	require.NoError(t, err)
	assert.Equal(t, "wamid.123", id)
	assert.Equal(t, "d360-key", gotKey)
	assert.Equal(t, "+254711000111", gotBody["to"])
	assert.Equal(t, "text", gotBody["type"])
}

func TestSendGridSender_Send(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("X-Message-Id", "sg-abc")
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	sender := &sendGridSender{baseURL: server.URL, client: server.Client()}
	cfg := ProviderConfig{APIKey: "sg-key", FromEmail: "clinic@example.com"}

	id, err := sender.Send(context.Background(), "amina@example.com", "Hello", cfg)

	require.NoError(t, err)
	assert.Equal(t, "sg-abc", id)
	assert.Equal(t, "Bearer sg-key", gotAuth)
}

func TestSendGridSender_RejectsNonAccepted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	sender := &sendGridSender{baseURL: server.URL, client: server.Client()}

	_, err := sender.Send(context.Background(), "amina@example.com", "Hello", ProviderConfig{})
	assert.Error(t, err)
}
