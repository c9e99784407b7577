package notification

import (
	"context"
	"fmt"

	sendgrid "github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/carewell/appointment-service/internal/domain"
)

// EmailSender delivers events as transactional email through SendGrid.
type EmailSender struct {
	client     *sendgrid.Client
	senderName string
	senderMail string
}

func NewEmailSender(apiKey, senderName, senderMail string) *EmailSender {
	return &EmailSender{
		client:     sendgrid.NewSendClient(apiKey),
		senderName: senderName,
		senderMail: senderMail,
	}
}

func (s *EmailSender) Send(ctx context.Context, event domain.AppointmentEvent) error {
	content, err := renderMail(event)
	if err != nil {
		return err
	}

	from := mail.NewEmail(s.senderName, s.senderMail)
	to := mail.NewEmail("Dr. "+event.DoctorName, event.DoctorEmail)
	message := mail.NewSingleEmail(from, content.Subject, to, content.Text, content.HTML)

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
