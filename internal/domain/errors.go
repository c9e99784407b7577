package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrCapacityExceeded    = errors.New("no available slots for this doctor")
	ErrPatientDoubleBooked = errors.New("patient already has an appointment at this time slot")
	ErrDoctorSlotTaken     = errors.New("doctor already has an appointment at this time slot")
	ErrAlreadyCancelled    = errors.New("appointment is already cancelled")
)

// DuplicateError reports a doctor registration collision. Field names the
// constraint that was violated: "name+specialty" or "email".
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	switch e.Field {
	case "email":
		return "doctor with this email already exists"
	default:
		return "doctor with this name and specialty already exists"
	}
}

// ValidationError reports a malformed or missing request field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsBadRequest reports whether err maps to a caller mistake rather than an
// internal failure.
func IsBadRequest(err error) bool {
	var dup *DuplicateError
	var val *ValidationError
	if errors.As(err, &dup) || errors.As(err, &val) {
		return true
	}
	return errors.Is(err, ErrCapacityExceeded) ||
		errors.Is(err, ErrPatientDoubleBooked) ||
		errors.Is(err, ErrDoctorSlotTaken) ||
		errors.Is(err, ErrAlreadyCancelled)
}
