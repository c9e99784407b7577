package service

import (
	"time"

	"github.com/carewell/appointment-service/internal/domain"
)

// In-memory twins of the repository interfaces. They honor the same
// contracts as the gorm implementations, including the fixed order of the
// booking checks.

type memStore struct {
	doctors      []*domain.Doctor
	appointments []*domain.Appointment
	nextDoctorID uint
	nextApptID   uint
}

func newMemStore() *memStore {
	return &memStore{nextDoctorID: 1, nextApptID: 1}
}

type memDoctorRepo struct {
	store   *memStore
	failAll error
}

func (r *memDoctorRepo) Create(doctor *domain.Doctor) error {
	if r.failAll != nil {
		return r.failAll
	}
	for _, d := range r.store.doctors {
		if d.Name == doctor.Name && d.Specialty == doctor.Specialty {
			return &domain.DuplicateError{Field: "name+specialty"}
		}
	}
	for _, d := range r.store.doctors {
		if d.Email == doctor.Email {
			return &domain.DuplicateError{Field: "email"}
		}
	}
	doctor.ID = r.store.nextDoctorID
	r.store.nextDoctorID++
	doctor.CreatedAt = time.Now()
	r.store.doctors = append(r.store.doctors, doctor)
	return nil
}

func (r *memDoctorRepo) FindByID(id uint) (*domain.Doctor, error) {
	if r.failAll != nil {
		return nil, r.failAll
	}
	for _, d := range r.store.doctors {
		if d.ID == id {
			copy := *d
			return &copy, nil
		}
	}
	return nil, domain.ErrDoctorNotFound
}

func (r *memDoctorRepo) FindAll() ([]domain.Doctor, error) {
	if r.failAll != nil {
		return nil, r.failAll
	}
	out := make([]domain.Doctor, 0, len(r.store.doctors))
	for _, d := range r.store.doctors {
		out = append(out, *d)
	}
	return out, nil
}

func (r *memDoctorRepo) CountBooked(doctorID uint) (int, error) {
	if r.failAll != nil {
		return 0, r.failAll
	}
	count := 0
	for _, a := range r.store.appointments {
		if a.DoctorID == doctorID && !a.IsCancelled {
			count++
		}
	}
	return count, nil
}

type memAppointmentRepo struct {
	store *memStore
}

func (r *memAppointmentRepo) Book(appointment *domain.Appointment) (*domain.Doctor, error) {
	var doctor *domain.Doctor
	for _, d := range r.store.doctors {
		if d.ID == appointment.DoctorID {
			doctor = d
			break
		}
	}
	if doctor == nil {
		return nil, domain.ErrDoctorNotFound
	}

	booked := 0
	for _, a := range r.store.appointments {
		if a.DoctorID == doctor.ID && !a.IsCancelled {
			booked++
		}
	}
	if booked >= doctor.SlotsPerDay {
		return nil, domain.ErrCapacityExceeded
	}

	for _, a := range r.store.appointments {
		if !a.IsCancelled && a.PatientName == appointment.PatientName &&
			a.AppointmentDate == appointment.AppointmentDate && a.TimeSlot == appointment.TimeSlot {
			return nil, domain.ErrPatientDoubleBooked
		}
	}
	for _, a := range r.store.appointments {
		if !a.IsCancelled && a.DoctorID == doctor.ID &&
			a.AppointmentDate == appointment.AppointmentDate && a.TimeSlot == appointment.TimeSlot {
			return nil, domain.ErrDoctorSlotTaken
		}
	}

	appointment.ID = r.store.nextApptID
	r.store.nextApptID++
	appointment.CreatedAt = time.Now()
	r.store.appointments = append(r.store.appointments, appointment)
	result := *doctor
	return &result, nil
}

func (r *memAppointmentRepo) Cancel(id uint) (*domain.Appointment, *domain.Doctor, error) {
	for _, a := range r.store.appointments {
		if a.ID != id {
			continue
		}
		if a.IsCancelled {
			return nil, nil, domain.ErrAlreadyCancelled
		}
		a.IsCancelled = true
		for _, d := range r.store.doctors {
			if d.ID == a.DoctorID {
				appt, doc := *a, *d
				return &appt, &doc, nil
			}
		}
		return nil, nil, domain.ErrDoctorNotFound
	}
	return nil, nil, domain.ErrAppointmentNotFound
}

func (r *memAppointmentRepo) FindAll() ([]domain.Appointment, error) {
	out := make([]domain.Appointment, 0, len(r.store.appointments))
	for _, a := range r.store.appointments {
		appt := *a
		for _, d := range r.store.doctors {
			if d.ID == a.DoctorID {
				appt.Doctor = *d
			}
		}
		out = append(out, appt)
	}
	return out, nil
}

func (r *memAppointmentRepo) FindActiveByDate(date string) ([]domain.Appointment, error) {
	var out []domain.Appointment
	for _, a := range r.store.appointments {
		if a.IsCancelled || a.AppointmentDate != date {
			continue
		}
		appt := *a
		for _, d := range r.store.doctors {
			if d.ID == a.DoctorID {
				appt.Doctor = *d
			}
		}
		out = append(out, appt)
	}
	return out, nil
}

type fakeNotifier struct {
	events []domain.AppointmentEvent
}

func (f *fakeNotifier) Enqueue(event domain.AppointmentEvent) {
	f.events = append(f.events, event)
}
