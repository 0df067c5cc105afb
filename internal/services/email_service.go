package services

import (
	"context"
	"log"

	"convospace-backend/internal/mail"
)

// EmailService relays outbound notification email through the configured
// Mailer. It is independent of the conversation core: a send failure is
// reported back to the caller with its reason, never converted into another
// error type.
type EmailService struct {
	mailer mail.Mailer
}

func NewEmailService(m mail.Mailer) *EmailService {
	return &EmailService{mailer: m}
}

// SendEmail sends one message synchronously. There is no retry layer; the
// caller decides what to do with a failure.
func (s *EmailService) SendEmail(ctx context.Context, recipient, subject, body string) error {
	if err := s.mailer.Send(ctx, recipient, subject, body); err != nil {
		log.Printf("Error sending email to %s: %v", recipient, err)
		return err
	}
	log.Printf("Email sent successfully to %s", recipient)
	return nil
}
