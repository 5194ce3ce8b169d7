package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediremind-backend/models"
)

func tmpl(name string, channel models.Channel, language string, days int) models.ReminderTemplate {
	return models.ReminderTemplate{
		ID:         uuid.New(),
		Name:       name,
		Channel:    channel,
		Language:   language,
		Body:       "Hello {{patient_name}}",
		TimingDays: days,
	}
}

func TestSelectTemplate_SingleMatchWinsRegardlessOfDays(t *testing.T) {
	templates := []models.ReminderTemplate{
		tmpl("only", models.ChannelSMS, "en", 3),
	}

	for _, days := range []int{0, 1, 3, 10, 100} {
		got := SelectTemplate(templates, "en", models.ChannelSMS, days)
		require.NotNil(t, got, "days=%d", days)
		assert.Equal(t, "only", got.Name)
	}
}

func TestSelectTemplate_NeverReturnsMismatchedLanguageOrChannel(t *testing.T) {
	templates := []models.ReminderTemplate{
		tmpl("en-sms", models.ChannelSMS, "en", 1),
		tmpl("sw-whatsapp", models.ChannelWhatsApp, "sw", 1),
		tmpl("en-email", models.ChannelEmail, "en", 1),
	}

	got := SelectTemplate(templates, "sw", models.ChannelWhatsApp, 1)
	require.NotNil(t, got)
	assert.Equal(t, "sw", got.Language)
	assert.Equal(t, models.ChannelWhatsApp, got.Channel)

	// no fallback across language or channel
	assert.Nil(t, SelectTemplate(templates, "fr", models.ChannelSMS, 1))
	assert.Nil(t, SelectTemplate(templates, "sw", models.ChannelSMS, 1))
}

func TestSelectTemplate_ClosestTimingWins(t *testing.T) {
	templates := []models.ReminderTemplate{
		tmpl("week-before", models.ChannelSMS, "en", 7),
		tmpl("day-before", models.ChannelSMS, "en", 1),
		tmpl("three-days", models.ChannelSMS, "en", 3),
	}

	tests := []struct {
		daysUntil int
		want      string
	}{
		{0, "day-before"},
		{1, "day-before"},
		{3, "three-days"},
		{6, "week-before"},
		{10, "week-before"},
	}
	for _, tt := range tests {
		got := SelectTemplate(templates, "en", models.ChannelSMS, tt.daysUntil)
		require.NotNil(t, got)
		assert.Equal(t, tt.want, got.Name, "daysUntil=%d", tt.daysUntil)
	}
}

func TestSelectTemplate_TieKeepsFirstInInputOrder(t *testing.T) {
	// days 1 and 3 are equally far from daysUntil=2
	templates := []models.ReminderTemplate{
		tmpl("first", models.ChannelSMS, "en", 1),
		tmpl("second", models.ChannelSMS, "en", 3),
	}

	got := SelectTemplate(templates, "en", models.ChannelSMS, 2)
	require.NotNil(t, got)
	assert.Equal(t, "first", got.Name)

	// same distance, reversed order
	got = SelectTemplate([]models.ReminderTemplate{templates[1], templates[0]}, "en", models.ChannelSMS, 2)
	require.NotNil(t, got)
	assert.Equal(t, "second", got.Name)
}

func TestSelectTemplate_EmptySet(t *testing.T) {
	assert.Nil(t, SelectTemplate(nil, "en", models.ChannelSMS, 1))
	assert.Nil(t, SelectTemplate([]models.ReminderTemplate{}, "en", models.ChannelSMS, 1))
}
