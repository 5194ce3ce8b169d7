// services/dispatcher.go
package services

import (
	"context"
	"fmt"
	"time"

	"mediremind-backend/models"
)

// ProviderConfig carries the credentials for one channel's provider.
// It is loaded from communication settings at scan time and passed in
// per call; the dispatcher keeps no ambient state.
type ProviderConfig struct {
	Provider   string `json:"provider"`
	Enabled    bool   `json:"enabled"`
	APIKey     string `json:"apiKey"`
	AccountSID string `json:"accountSid"`
	FromNumber string `json:"fromNumber"`
	FromEmail  string `json:"fromEmail"`

	SMTPHost     string `json:"smtpHost"`
	SMTPPort     int    `json:"smtpPort"`
	SMTPUser     string `json:"smtpUser"`
	SMTPPassword string `json:"smtpPassword"`
}

// DeliveryResult is what a dispatch attempt resolves to. Failures are
// carried in Err; they never propagate past the dispatch boundary, so a
// single failed reminder cannot abort a scan.
type DeliveryResult struct {
	Success           bool
	ProviderMessageID string
	Status            models.DeliveryStatus
	Err               error
}

// ChannelSender sends one rendered message through one external provider.
type ChannelSender interface {
	Send(ctx context.Context, destination, message string, cfg ProviderConfig) (providerMessageID string, err error)
}

const defaultSendTimeout = 15 * time.Second

// Dispatcher routes a rendered message to the (channel, provider) sender
// selected by the config. Every send runs under a bounded deadline so a
// hung provider call cannot stall the rest of the scan.
type Dispatcher struct {
	senders map[models.Channel]map[string]ChannelSender
	timeout time.Duration
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		senders: map[models.Channel]map[string]ChannelSender{
			models.ChannelSMS: {
				"twilio":          newTwilioSender(models.ChannelSMS),
				"africas-talking": newAfricasTalkingSender(),
			},
			models.ChannelWhatsApp: {
				"twilio":    newTwilioSender(models.ChannelWhatsApp),
				"360dialog": newDialog360Sender(),
			},
			models.ChannelEmail: {
				"sendgrid": newSendGridSender(),
				"smtp":     newSMTPSender(),
			},
		},
		timeout: defaultSendTimeout,
	}
}

// Register replaces the sender for a (channel, provider) pair.
func (d *Dispatcher) Register(channel models.Channel, provider string, sender ChannelSender) {
	if d.senders[channel] == nil {
		d.senders[channel] = map[string]ChannelSender{}
	}
	d.senders[channel][provider] = sender
}

func (d *Dispatcher) Send(ctx context.Context, channel models.Channel, destination, message string, cfg ProviderConfig) DeliveryResult {
	if err := validateConfig(channel, cfg); err != nil {
		return failedResult(err)
	}
	if destination == "" {
		return failedResult(&ConfigError{Channel: channel, Reason: "empty destination"})
	}

	sender, ok := d.senders[channel][cfg.Provider]
	if !ok {
		return failedResult(&ConfigError{Channel: channel, Reason: fmt.Sprintf("unknown provider %q", cfg.Provider)})
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	id, err := sender.Send(ctx, destination, message, cfg)
	if err != nil {
		return failedResult(&ProviderError{Provider: cfg.Provider, Err: err})
	}

	return DeliveryResult{Success: true, ProviderMessageID: id, Status: models.DeliverySent}
}

func failedResult(err error) DeliveryResult {
	return DeliveryResult{Status: models.DeliveryFailed, Err: err}
}

func validateConfig(channel models.Channel, cfg ProviderConfig) error {
	if !cfg.Enabled {
		return &ConfigError{Channel: channel, Reason: "channel disabled"}
	}
	if cfg.Provider == "" {
		return &ConfigError{Channel: channel, Reason: "missing provider"}
	}

	switch channel {
	case models.ChannelSMS, models.ChannelWhatsApp:
		if cfg.APIKey == "" {
			return &ConfigError{Channel: channel, Reason: "missing api key"}
		}
		if cfg.FromNumber == "" {
			return &ConfigError{Channel: channel, Reason: "missing from number"}
		}
		if cfg.Provider == "twilio" && cfg.AccountSID == "" {
			return &ConfigError{Channel: channel, Reason: "missing account sid"}
		}
	case models.ChannelEmail:
		if cfg.FromEmail == "" {
			return &ConfigError{Channel: channel, Reason: "missing from email"}
		}
		if cfg.Provider == "smtp" {
			if cfg.SMTPHost == "" || cfg.SMTPPort == 0 {
				return &ConfigError{Channel: channel, Reason: "missing smtp host or port"}
			}
		} else if cfg.APIKey == "" {
			return &ConfigError{Channel: channel, Reason: "missing api key"}
		}
	default:
		return &ConfigError{Channel: channel, Reason: "unsupported channel"}
	}

	return nil
}
