package utils

import (
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/carewell/appointment-service/internal/service"
)

// StartReminderScheduler runs the daily reminder job on the given cron spec.
// The returned cron can be stopped on shutdown.
func StartReminderScheduler(spec string, appointments service.AppointmentService, logger *logrus.Logger) (*cron.Cron, error) {
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(spec, appointments.SendDailyReminders); err != nil {
		return nil, err
	}
	scheduler.Start()
	logger.WithField("Cron", spec).Info("Reminder scheduler started")
	return scheduler, nil
}
