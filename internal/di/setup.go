// Package di wires repositories, services and transports together.
package di

import (
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/carewell/appointment-service/internal/config"
	"github.com/carewell/appointment-service/internal/handler"
	"github.com/carewell/appointment-service/internal/llm"
	"github.com/carewell/appointment-service/internal/notification"
	"github.com/carewell/appointment-service/internal/repository"
	"github.com/carewell/appointment-service/internal/service"
	"github.com/carewell/appointment-service/internal/session"
)

// App bundles the constructed components plus their shutdown hooks.
type App struct {
	Handler      http.Handler
	Appointments service.AppointmentService
	closers      []func()
}

// Close releases background resources (notification worker, kafka writer).
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// Setup builds the full application graph from configuration.
func Setup(cfg config.Config, logger *logrus.Logger) (*App, error) {
	db, err := config.InitDatabase(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	doctorRepo := repository.NewDoctorRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)

	app := &App{}

	sender, err := buildSender(cfg, logger, app)
	if err != nil {
		return nil, err
	}
	dispatcher := notification.NewDispatcher(sender, logger)
	app.closers = append(app.closers, dispatcher.Close)

	doctorService := service.NewDoctorService(doctorRepo, dispatcher, logger)
	appointmentService := service.NewAppointmentService(appointmentRepo, dispatcher, logger)

	sessions := session.NewStore(cfg.SessionTTL)
	llmClient := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.ChatModel)
	chatbotService := service.NewChatbotService(doctorRepo, sessions, llmClient, cfg.LLMTimeout, logger)

	h := handler.New(doctorService, appointmentService, chatbotService, logger)

	app.Handler = h.Router()
	app.Appointments = appointmentService
	return app, nil
}

func buildSender(cfg config.Config, logger *logrus.Logger, app *App) (notification.Sender, error) {
	switch cfg.Notifier {
	case "email":
		if cfg.SendGridAPIKey == "" {
			return nil, fmt.Errorf("SENDGRID_API_KEY must be set for the email notifier")
		}
		return notification.NewEmailSender(cfg.SendGridAPIKey, cfg.SenderName, cfg.SenderEmail), nil
	case "kafka":
		if err := notification.EnsureTopic(cfg.KafkaBroker, cfg.KafkaTopic); err != nil {
			return nil, fmt.Errorf("kafka topic setup: %w", err)
		}
		sender := notification.NewKafkaSender(cfg.KafkaBroker, cfg.KafkaTopic)
		app.closers = append(app.closers, func() { _ = sender.Close() })
		return sender, nil
	case "log":
		return notification.NewLogSender(logger), nil
	default:
		return nil, fmt.Errorf("unknown notifier backend %q", cfg.Notifier)
	}
}
