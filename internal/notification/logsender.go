package notification

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/carewell/appointment-service/internal/domain"
)

// LogSender writes the rendered mail to the log instead of delivering it.
// Used in development so the full notification path runs without credentials.
type LogSender struct {
	logger *logrus.Logger
}

func NewLogSender(logger *logrus.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, event domain.AppointmentEvent) error {
	content, err := renderMail(event)
	if err != nil {
		return err
	}
	s.logger.WithFields(logrus.Fields{
		"To":      event.DoctorEmail,
		"Subject": content.Subject,
		"Body":    content.Text,
	}).Info("Email sent (development mode)")
	return nil
}
