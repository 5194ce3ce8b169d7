package services

import (
	"errors"
	"fmt"

	"mediremind-backend/models"
)

var (
	ErrTemplateNotFound  = errors.New("reminder template not found")
	ErrInvalidTransition = errors.New("invalid appointment status transition")
)

// ConfigError means a channel is enabled but its provider settings are
// incomplete. It is logged as a failed send, never raised to the scan loop.
type ConfigError struct {
	Channel models.Channel
	Reason  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("channel %s misconfigured: %s", e.Channel, e.Reason)
}

// ProviderError means the external channel rejected the request or was
// unreachable. Caught per-send and recorded as a failed ReminderLog.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
