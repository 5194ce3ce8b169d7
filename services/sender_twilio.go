// services/sender_twilio.go
package services

import (
	"context"
	"errors"
	"time"

	"github.com/twilio/twilio-go"
	twilioclient "github.com/twilio/twilio-go/client"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"mediremind-backend/models"
)

// twilioSender sends sms and whatsapp messages through the Twilio
// Messages API. WhatsApp traffic uses the same endpoint with the
// "whatsapp:" address prefix.
type twilioSender struct {
	channel models.Channel
}

func newTwilioSender(channel models.Channel) *twilioSender {
	return &twilioSender{channel: channel}
}

func (s *twilioSender) Send(ctx context.Context, destination, message string, cfg ProviderConfig) (string, error) {
	// a custom base client carries the per-send deadline
	base := &twilioclient.Client{
		Credentials: twilioclient.NewCredentials(cfg.AccountSID, cfg.APIKey),
	}
	base.SetAccountSid(cfg.AccountSID)
	if deadline, ok := ctx.Deadline(); ok {
		base.SetTimeout(time.Until(deadline))
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.APIKey,
		Client:   base,
	})

	to := destination
	from := cfg.FromNumber
	if s.channel == models.ChannelWhatsApp {
		to = "whatsapp:" + destination
		from = "whatsapp:" + cfg.FromNumber
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(from)
	params.SetBody(message)

	resp, err := client.Api.CreateMessage(params)
	if err != nil {
		return "", err
	}
	if resp.Sid == nil {
		return "", errors.New("no message SID returned")
	}
	return *resp.Sid, nil
}
