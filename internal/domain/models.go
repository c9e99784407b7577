package domain

import (
	"time"
)

// Working hours for bookable time slots, inclusive on both ends.
const (
	WorkingHoursStart = "09:00"
	WorkingHoursEnd   = "17:00"

	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type Doctor struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	Name         string        `gorm:"not null" json:"name"`
	Specialty    string        `gorm:"not null" json:"specialty"`
	Email        string        `gorm:"not null;uniqueIndex" json:"email"`
	SlotsPerDay  int           `gorm:"not null" json:"slots_per_day"`
	CreatedAt    time.Time     `json:"created_at"`
	Appointments []Appointment `json:"-"`
}

type Appointment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	PatientName     string    `gorm:"not null" json:"patient_name"`
	AppointmentDate string    `gorm:"not null" json:"appointment_date"`
	TimeSlot        string    `gorm:"not null" json:"time_slot"`
	DoctorID        uint      `gorm:"not null;index" json:"doctor_id"`
	Doctor          Doctor    `json:"-"`
	IsCancelled     bool      `gorm:"not null;default:false" json:"is_cancelled"`
	CreatedAt       time.Time `json:"created_at"`
}

// DoctorInfo is a doctor record together with its computed slot availability.
type DoctorInfo struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	Specialty      string    `json:"specialty"`
	Email          string    `json:"email"`
	SlotsPerDay    int       `json:"slots_per_day"`
	AvailableSlots int       `json:"available_slots"`
	CreatedAt      time.Time `json:"created_at"`
}

// AppointmentDetail is an appointment joined with its owning doctor.
type AppointmentDetail struct {
	ID              uint      `json:"id"`
	PatientName     string    `json:"patient_name"`
	AppointmentDate string    `json:"appointment_date"`
	TimeSlot        string    `json:"time_slot"`
	DoctorID        uint      `json:"doctor_id"`
	DoctorName      string    `json:"doctor_name"`
	DoctorSpecialty string    `json:"doctor_specialty"`
	IsCancelled     bool      `json:"is_cancelled"`
	CreatedAt       time.Time `json:"created_at"`
}

// DoctorSuggestion is one entry of the condition-based recommendation list.
type DoctorSuggestion struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Specialty      string `json:"specialty"`
	AvailableSlots int    `json:"available_slots"`
	RelevanceScore int    `json:"relevance_score"`
}

// ChatReply is the structured result of one chatbot turn. Error carries the
// upstream failure detail for diagnostics; Response always holds the text the
// user sees, fallback included.
type ChatReply struct {
	Success            bool   `json:"success"`
	Response           string `json:"response"`
	SessionID          string `json:"session_id"`
	Timestamp          string `json:"timestamp"`
	ConversationLength int    `json:"conversation_length,omitempty"`
	Error              string `json:"error,omitempty"`
}

// ChatTurn is one message of a conversation transcript.
type ChatTurn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ConversationSummary describes the state of one chat session.
type ConversationSummary struct {
	Exists         bool       `json:"exists"`
	SessionID      string     `json:"session_id,omitempty"`
	CreatedAt      string     `json:"created_at,omitempty"`
	LastActivity   string     `json:"last_activity,omitempty"`
	MessageCount   int        `json:"message_count,omitempty"`
	RecentMessages []ChatTurn `json:"recent_messages,omitempty"`
	Message        string     `json:"message,omitempty"`
}

// AppointmentEvent is the payload handed to the notification dispatcher and,
// when the kafka backend is selected, published on the appointment topic.
type AppointmentEvent struct {
	Type            string `json:"type"`
	AppointmentID   uint   `json:"appointment_id,omitempty"`
	DoctorID        uint   `json:"doctor_id"`
	DoctorName      string `json:"doctor_name"`
	DoctorEmail     string `json:"doctor_email"`
	PatientName     string `json:"patient_name,omitempty"`
	AppointmentDate string `json:"appointment_date,omitempty"`
	TimeSlot        string `json:"time_slot,omitempty"`
	Reason          string `json:"reason,omitempty"`
}

const (
	EventBooked    = "booked"
	EventCancelled = "cancelled"
	EventWelcome   = "welcome"
	EventReminder  = "reminder"
)
