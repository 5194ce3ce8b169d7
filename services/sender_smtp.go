// services/sender_smtp.go
package services

import (
	"context"
	"time"

	mail "gopkg.in/mail.v2"
)

// smtpSender delivers email reminders through a plain SMTP server.
type smtpSender struct{}

func newSMTPSender() *smtpSender {
	return &smtpSender{}
}

func (s *smtpSender) Send(ctx context.Context, destination, message string, cfg ProviderConfig) (string, error) {
	m := mail.NewMessage()
	m.SetHeader("From", cfg.FromEmail)
	m.SetHeader("To", destination)
	m.SetHeader("Subject", "Appointment Reminder")
	m.SetBody("text/plain", message)

	dialer := mail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	if deadline, ok := ctx.Deadline(); ok {
		dialer.Timeout = time.Until(deadline)
	}

	if err := dialer.DialAndSend(m); err != nil {
		return "", err
	}
	// SMTP has no provider message id
	return "", nil
}
