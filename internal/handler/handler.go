// Package handler is the HTTP delivery layer. It decodes requests, calls the
// services and maps typed errors to status codes; no business rules live here.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/carewell/appointment-service/internal/domain"
	"github.com/carewell/appointment-service/internal/service"
)

type Handler struct {
	doctors      service.DoctorService
	appointments service.AppointmentService
	chatbot      service.ChatbotService
	logger       *logrus.Logger
}

func New(doctors service.DoctorService, appointments service.AppointmentService, chatbot service.ChatbotService, logger *logrus.Logger) *Handler {
	return &Handler{
		doctors:      doctors,
		appointments: appointments,
		chatbot:      chatbot,
		logger:       logger,
	}
}

// Router builds the chi router with all service routes mounted.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", h.root)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/doctors", func(r chi.Router) {
		r.Post("/", h.addDoctor)
		r.Get("/", h.listDoctors)
		r.Get("/{doctorID}", h.getDoctor)
		r.Post("/{doctorID}/appointments", h.bookAppointment)
	})

	r.Route("/appointments", func(r chi.Router) {
		r.Get("/", h.listAppointments)
		r.Delete("/{appointmentID}", h.cancelAppointment)
	})

	r.Route("/chatbot", func(r chi.Router) {
		r.Post("/message", h.chatMessage)
		r.Post("/suggest-doctors", h.suggestDoctors)
		r.Get("/conversation/{sessionID}", h.conversationSummary)
		r.Delete("/conversation/{sessionID}", h.clearConversation)
	})

	return r
}

func (h *Handler) root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Carewell Appointment Booking API"})
}

type doctorRequest struct {
	Name        string `json:"name"`
	Specialty   string `json:"specialty"`
	Email       string `json:"email"`
	SlotsPerDay int    `json:"slots_per_day"`
}

func (h *Handler) addDoctor(w http.ResponseWriter, r *http.Request) {
	var req doctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	doctor, err := h.doctors.AddDoctor(req.Name, req.Specialty, req.Email, req.SlotsPerDay)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, doctor)
}

func (h *Handler) listDoctors(w http.ResponseWriter, _ *http.Request) {
	doctors, err := h.doctors.ListDoctors()
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doctors)
}

func (h *Handler) getDoctor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "doctorID")
	if !ok {
		return
	}
	doctor, err := h.doctors.GetDoctor(id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doctor)
}

type bookingRequest struct {
	PatientName     string `json:"patient_name"`
	AppointmentDate string `json:"appointment_date"`
	TimeSlot        string `json:"time_slot"`
}

func (h *Handler) bookAppointment(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathID(w, r, "doctorID")
	if !ok {
		return
	}
	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	appointment, err := h.appointments.BookAppointment(doctorID, req.PatientName, req.AppointmentDate, req.TimeSlot)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, appointment)
}

func (h *Handler) listAppointments(w http.ResponseWriter, _ *http.Request) {
	appointments, err := h.appointments.ListAppointments()
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, appointments)
}

func (h *Handler) cancelAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "appointmentID")
	if !ok {
		return
	}
	if err := h.appointments.CancelAppointment(id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Appointment %d has been successfully cancelled", id),
	})
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

func (h *Handler) chatMessage(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	reply, err := h.chatbot.Respond(req.SessionID, req.Message)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

type suggestRequest struct {
	Condition string `json:"condition"`
}

func (h *Handler) suggestDoctors(w http.ResponseWriter, r *http.Request) {
	var req suggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	suggestions, err := h.chatbot.SuggestDoctors(req.Condition)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, suggestions)
}

func (h *Handler) conversationSummary(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	writeJSON(w, http.StatusOK, h.chatbot.ConversationSummary(sessionID))
}

func (h *Handler) clearConversation(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if h.chatbot.ClearConversation(sessionID) {
		writeJSON(w, http.StatusOK, map[string]string{
			"message": fmt.Sprintf("Conversation %s cleared successfully", sessionID),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Conversation not found"})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrDoctorNotFound), errors.Is(err, domain.ErrAppointmentNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case domain.IsBadRequest(err):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.WithError(err).Error("Request failed")
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
