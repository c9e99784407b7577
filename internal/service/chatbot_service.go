package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/carewell/appointment-service/internal/domain"
	"github.com/carewell/appointment-service/internal/llm"
	"github.com/carewell/appointment-service/internal/metrics"
	"github.com/carewell/appointment-service/internal/repository"
	"github.com/carewell/appointment-service/internal/session"
)

// historyWindow caps how many prior turns are replayed into the prompt.
const historyWindow = 10

const maxMessageLength = 1000

type ChatbotService interface {
	Respond(sessionID, message string) (domain.ChatReply, error)
	ConversationSummary(sessionID string) domain.ConversationSummary
	ClearConversation(sessionID string) bool
	SuggestDoctors(condition string) ([]domain.DoctorSuggestion, error)
}

type chatbotService struct {
	doctors  repository.DoctorRepository
	sessions *session.Store
	llm      llm.Client
	timeout  time.Duration
	logger   *logrus.Logger
}

func NewChatbotService(doctors repository.DoctorRepository, sessions *session.Store, client llm.Client, timeout time.Duration, logger *logrus.Logger) ChatbotService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &chatbotService{
		doctors:  doctors,
		sessions: sessions,
		llm:      client,
		timeout:  timeout,
		logger:   logger,
	}
}

// Respond runs one chat turn. The returned error covers only invalid input;
// completion failures are downgraded to the fallback reply with success=false
// and the error detail carried alongside the user-visible text.
func (s *chatbotService) Respond(sessionID, message string) (domain.ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return domain.ChatReply{}, &domain.ValidationError{Field: "message", Reason: "cannot be empty"}
	}
	if len(message) > maxMessageLength {
		return domain.ChatReply{}, &domain.ValidationError{Field: "message", Reason: "too long (max 1000 characters)"}
	}

	if evicted := s.sessions.Sweep(); evicted > 0 {
		s.logger.WithField("Evicted", evicted).Info("Expired chat sessions removed")
	}

	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	prompt := s.buildPrompt(sessionID, message)

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	reply, err := s.llm.Complete(ctx, prompt)
	timestamp := time.Now().Format(time.RFC3339)

	if err != nil {
		// The session transcript must match what the user saw, so the
		// fallback reply is recorded as well.
		s.sessions.Append(sessionID, llm.RoleUser, message)
		s.sessions.Append(sessionID, llm.RoleAssistant, fallbackMessage)
		metrics.ChatRequestsTotal.WithLabelValues("fallback").Inc()
		s.logger.WithFields(logrus.Fields{
			"Function":  "Respond",
			"SessionId": sessionID,
			"Error":     err,
		}).Error("Completion request failed")
		return domain.ChatReply{
			Success:   false,
			Response:  fallbackMessage,
			SessionID: sessionID,
			Timestamp: timestamp,
			Error:     err.Error(),
		}, nil
	}

	s.sessions.Append(sessionID, llm.RoleUser, message)
	s.sessions.Append(sessionID, llm.RoleAssistant, reply)
	metrics.ChatRequestsTotal.WithLabelValues("answered").Inc()

	return domain.ChatReply{
		Success:            true,
		Response:           reply,
		SessionID:          sessionID,
		Timestamp:          timestamp,
		ConversationLength: s.sessions.Count(sessionID),
	}, nil
}

// buildPrompt assembles the system message, the most recent prior turns
// (oldest of the window first) and the new user message.
func (s *chatbotService) buildPrompt(sessionID, message string) []llm.Message {
	history := s.sessions.History(sessionID)
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}

	prompt := make([]llm.Message, 0, len(history)+2)
	prompt = append(prompt, llm.Message{
		Role:    llm.RoleSystem,
		Content: fmt.Sprintf(systemPromptTemplate, s.doctorsOverview()),
	})
	for _, turn := range history {
		if turn.Role != llm.RoleUser && turn.Role != llm.RoleAssistant {
			continue
		}
		prompt = append(prompt, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	return append(prompt, llm.Message{Role: llm.RoleUser, Content: message})
}

// doctorsOverview renders the availability snapshot embedded in the system
// prompt. Lookup failures degrade to a neutral sentence so a database blip
// never breaks the chat path.
func (s *chatbotService) doctorsOverview() string {
	doctors, err := s.doctors.FindAll()
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load doctors for chat prompt")
		return doctorsFetchFailed
	}
	if len(doctors) == 0 {
		return noDoctorsText
	}

	var b strings.Builder
	b.WriteString("Available doctors in our system:\n")
	for i := range doctors {
		doctor := &doctors[i]
		booked, err := s.doctors.CountBooked(doctor.ID)
		if err != nil {
			s.logger.WithError(err).Warn("Failed to count appointments for chat prompt")
			return doctorsFetchFailed
		}
		available := doctor.SlotsPerDay - booked
		if available < 0 {
			available = 0
		}
		fmt.Fprintf(&b, "Dr. %s - %s (%d/%d slots available)\n",
			doctor.Name, doctor.Specialty, available, doctor.SlotsPerDay)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *chatbotService) ConversationSummary(sessionID string) domain.ConversationSummary {
	created, lastActivity, recent, ok := s.sessions.Info(sessionID, 5)
	if !ok {
		return domain.ConversationSummary{
			Exists:  false,
			Message: "No conversation found for this session",
		}
	}
	return domain.ConversationSummary{
		Exists:         true,
		SessionID:      sessionID,
		CreatedAt:      created.Format(time.RFC3339),
		LastActivity:   lastActivity.Format(time.RFC3339),
		MessageCount:   s.sessions.Count(sessionID),
		RecentMessages: recent,
	}
}

func (s *chatbotService) ClearConversation(sessionID string) bool {
	return s.sessions.Delete(sessionID)
}

// SuggestDoctors matches a free-text condition against doctor specialties
// and returns up to three doctors with free slots.
func (s *chatbotService) SuggestDoctors(condition string) ([]domain.DoctorSuggestion, error) {
	if strings.TrimSpace(condition) == "" {
		return nil, &domain.ValidationError{Field: "condition", Reason: "cannot be empty"}
	}
	doctors, err := s.doctors.FindAll()
	if err != nil {
		return nil, err
	}

	candidates := make([]domain.DoctorSuggestion, 0, len(doctors))
	for i := range doctors {
		doctor := &doctors[i]
		booked, err := s.doctors.CountBooked(doctor.ID)
		if err != nil {
			return nil, err
		}
		available := doctor.SlotsPerDay - booked
		if available < 0 {
			available = 0
		}
		candidates = append(candidates, domain.DoctorSuggestion{
			ID:             doctor.ID,
			Name:           doctor.Name,
			Specialty:      doctor.Specialty,
			AvailableSlots: available,
		})
	}
	return rankSuggestions(condition, candidates), nil
}
