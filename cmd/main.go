package main

import (
	"net/http"

	"github.com/carewell/appointment-service/internal/config"
	"github.com/carewell/appointment-service/internal/di"
	"github.com/carewell/appointment-service/internal/utils"
	"github.com/carewell/appointment-service/logs"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()
	logger := logs.NewLogger()

	app, err := di.Setup(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to set up application: %v", err)
	}
	defer app.Close()

	scheduler, err := utils.StartReminderScheduler(cfg.ReminderCron, app.Appointments, logger)
	if err != nil {
		logger.Fatalf("Failed to start reminder scheduler: %v", err)
	}
	defer scheduler.Stop()

	addr := ":" + cfg.Port
	logger.WithField("Addr", addr).Info("HTTP server listening")
	if err := http.ListenAndServe(addr, app.Handler); err != nil {
		logger.Fatalf("Server error: %v", err)
	}
}
