// services/sender_http.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	africasTalkingURL = "https://api.africastalking.com/version1/messaging"
	dialog360URL      = "https://waba.360dialog.io/v1/messages"
	sendGridURL       = "https://api.sendgrid.com/v3/mail/send"
)

// africasTalkingSender delivers sms through the Africa's Talking bulk
// messaging API. AccountSID carries the AT username.
type africasTalkingSender struct {
	baseURL string
	client  *http.Client
}

func newAfricasTalkingSender() *africasTalkingSender {
	return &africasTalkingSender{baseURL: africasTalkingURL, client: &http.Client{}}
}

func (s *africasTalkingSender) Send(ctx context.Context, destination, message string, cfg ProviderConfig) (string, error) {
	form := url.Values{}
	form.Set("username", cfg.AccountSID)
	form.Set("to", destination)
	form.Set("message", message)
	form.Set("from", cfg.FromNumber)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("apiKey", cfg.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("africastalking API error: %s", resp.Status)
	}

	var body struct {
		SMSMessageData struct {
			Recipients []struct {
				MessageID string `json:"messageId"`
			} `json:"Recipients"`
		} `json:"SMSMessageData"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(body.SMSMessageData.Recipients) == 0 {
		return "", fmt.Errorf("no recipients in response")
	}
	return body.SMSMessageData.Recipients[0].MessageID, nil
}

// dialog360Sender delivers whatsapp messages through the 360dialog
// WhatsApp Business API.
type dialog360Sender struct {
	baseURL string
	client  *http.Client
}

func newDialog360Sender() *dialog360Sender {
	return &dialog360Sender{baseURL: dialog360URL, client: &http.Client{}}
}

func (s *dialog360Sender) Send(ctx context.Context, destination, message string, cfg ProviderConfig) (string, error) {
	payload := map[string]interface{}{
		"to":   destination,
		"type": "text",
		"text": map[string]string{"body": message},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("D360-API-KEY", cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("360dialog API error: %s", resp.Status)
	}

	var out struct {
		Messages []struct {
			ID string `json:"id"`
		} `json:"messages"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(out.Messages) == 0 {
		return "", fmt.Errorf("no message id in response")
	}
	return out.Messages[0].ID, nil
}

// sendGridSender delivers email through the SendGrid v3 mail API.
// SendGrid acknowledges accepted mail with 202 and an X-Message-Id header.
type sendGridSender struct {
	baseURL string
	client  *http.Client
}

func newSendGridSender() *sendGridSender {
	return &sendGridSender{baseURL: sendGridURL, client: &http.Client{}}
}

func (s *sendGridSender) Send(ctx context.Context, destination, message string, cfg ProviderConfig) (string, error) {
	payload := map[string]interface{}{
		"personalizations": []map[string]interface{}{
			{"to": []map[string]string{{"email": destination}}},
		},
		"from":    map[string]string{"email": cfg.FromEmail},
		"subject": "Appointment Reminder",
		"content": []map[string]string{
			{"type": "text/plain", "value": message},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		return "", fmt.Errorf("sendgrid API error: %s", resp.Status)
	}
	return resp.Header.Get("X-Message-Id"), nil
}
