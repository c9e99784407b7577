package service

import (
	"regexp"
	"strings"
	"time"

	"github.com/carewell/appointment-service/internal/domain"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func validateDoctorInput(name, specialty, email string, slotsPerDay int) error {
	if strings.TrimSpace(name) == "" {
		return &domain.ValidationError{Field: "name", Reason: "cannot be empty"}
	}
	if strings.TrimSpace(specialty) == "" {
		return &domain.ValidationError{Field: "specialty", Reason: "cannot be empty"}
	}
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return &domain.ValidationError{Field: "email", Reason: "invalid email format"}
	}
	if slotsPerDay <= 0 {
		return &domain.ValidationError{Field: "slots_per_day", Reason: "must be positive"}
	}
	return nil
}

func validateBookingInput(patientName, date, timeSlot string) error {
	if strings.TrimSpace(patientName) == "" {
		return &domain.ValidationError{Field: "patient_name", Reason: "cannot be empty"}
	}
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return &domain.ValidationError{Field: "appointment_date", Reason: "must be in YYYY-MM-DD format"}
	}
	slot, err := time.Parse(domain.TimeLayout, timeSlot)
	if err != nil {
		return &domain.ValidationError{Field: "time_slot", Reason: "must be in HH:MM format"}
	}
	minutes := slot.Hour()*60 + slot.Minute()
	start, _ := time.Parse(domain.TimeLayout, domain.WorkingHoursStart)
	end, _ := time.Parse(domain.TimeLayout, domain.WorkingHoursEnd)
	if minutes < start.Hour()*60+start.Minute() || minutes > end.Hour()*60+end.Minute() {
		return &domain.ValidationError{Field: "time_slot", Reason: "must be between 09:00 and 17:00"}
	}
	return nil
}
