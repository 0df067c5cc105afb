// Package mail provides the outbound email capability consumed by the email
// relay endpoint.
package mail

import (
	"context"
	"fmt"

	"convospace-backend/internal/config"

	gomail "github.com/wneessen/go-mail"
)

// Mailer is the outbound email capability. Implementations send synchronously
// and return the underlying failure reason on error.
type Mailer interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// SMTPMailer sends plain-text email over an authenticated STARTTLS SMTP
// connection.
type SMTPMailer struct {
	host     string
	port     int
	sender   string
	password string
}

var _ Mailer = (*SMTPMailer)(nil)

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		sender:   cfg.SMTPSender,
		password: cfg.SMTPPassword,
	}
}

// Send delivers a plain-text message to a single recipient. A new connection
// is dialed per call; the relay has no delivery queue or retry layer.
func (m *SMTPMailer) Send(ctx context.Context, recipient, subject, body string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.sender); err != nil {
		return fmt.Errorf("invalid sender address %q: %w", m.sender, err)
	}
	if err := msg.To(recipient); err != nil {
		return fmt.Errorf("invalid recipient address %q: %w", recipient, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	client, err := gomail.NewClient(m.host,
		gomail.WithPort(m.port),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.sender),
		gomail.WithPassword(m.password),
	)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
