package service

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carewell/appointment-service/internal/domain"
	"github.com/carewell/appointment-service/internal/metrics"
	"github.com/carewell/appointment-service/internal/repository"
)

type AppointmentService interface {
	BookAppointment(doctorID uint, patientName, date, timeSlot string) (*domain.AppointmentDetail, error)
	CancelAppointment(id uint) error
	ListAppointments() ([]domain.AppointmentDetail, error)
	SendDailyReminders()
}

type appointmentService struct {
	repo     repository.AppointmentRepository
	notifier Notifier
	logger   *logrus.Logger
}

func NewAppointmentService(repo repository.AppointmentRepository, notifier Notifier, logger *logrus.Logger) AppointmentService {
	return &appointmentService{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
	}
}

// BookAppointment validates the request and delegates the check-then-insert
// to the repository transaction. The booked notification is enqueued after
// commit; it can fail without affecting the booking.
func (s *appointmentService) BookAppointment(doctorID uint, patientName, date, timeSlot string) (*domain.AppointmentDetail, error) {
	if err := validateBookingInput(patientName, date, timeSlot); err != nil {
		metrics.BookingsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	appointment := &domain.Appointment{
		PatientName:     patientName,
		AppointmentDate: date,
		TimeSlot:        timeSlot,
		DoctorID:        doctorID,
	}
	doctor, err := s.repo.Book(appointment)
	if err != nil {
		if domain.IsBadRequest(err) || err == domain.ErrDoctorNotFound {
			metrics.BookingsTotal.WithLabelValues("rejected").Inc()
		} else {
			metrics.BookingsTotal.WithLabelValues("error").Inc()
		}
		s.logger.WithFields(logrus.Fields{
			"Function": "BookAppointment",
			"DoctorId": doctorID,
			"Error":    err,
		}).Warn("Booking failed")
		return nil, err
	}
	metrics.BookingsTotal.WithLabelValues("success").Inc()

	s.notifier.Enqueue(domain.AppointmentEvent{
		Type:            domain.EventBooked,
		AppointmentID:   appointment.ID,
		DoctorID:        doctor.ID,
		DoctorName:      doctor.Name,
		DoctorEmail:     doctor.Email,
		PatientName:     appointment.PatientName,
		AppointmentDate: appointment.AppointmentDate,
		TimeSlot:        appointment.TimeSlot,
	})

	s.logger.WithFields(logrus.Fields{
		"Function":      "BookAppointment",
		"AppointmentId": appointment.ID,
		"DoctorId":      doctor.ID,
		"Date":          appointment.AppointmentDate,
		"TimeSlot":      appointment.TimeSlot,
	}).Info("Appointment booked")

	return detail(appointment, doctor), nil
}

func (s *appointmentService) CancelAppointment(id uint) error {
	appointment, doctor, err := s.repo.Cancel(id)
	if err != nil {
		if domain.IsBadRequest(err) || err == domain.ErrAppointmentNotFound {
			metrics.CancellationsTotal.WithLabelValues("rejected").Inc()
		} else {
			metrics.CancellationsTotal.WithLabelValues("error").Inc()
		}
		s.logger.WithFields(logrus.Fields{
			"Function":      "CancelAppointment",
			"AppointmentId": id,
			"Error":         err,
		}).Warn("Cancellation failed")
		return err
	}
	metrics.CancellationsTotal.WithLabelValues("success").Inc()

	s.notifier.Enqueue(domain.AppointmentEvent{
		Type:            domain.EventCancelled,
		AppointmentID:   appointment.ID,
		DoctorID:        doctor.ID,
		DoctorName:      doctor.Name,
		DoctorEmail:     doctor.Email,
		PatientName:     appointment.PatientName,
		AppointmentDate: appointment.AppointmentDate,
		TimeSlot:        appointment.TimeSlot,
		Reason:          "Patient request",
	})

	s.logger.WithFields(logrus.Fields{
		"Function":      "CancelAppointment",
		"AppointmentId": appointment.ID,
	}).Info("Appointment cancelled")
	return nil
}

func (s *appointmentService) ListAppointments() ([]domain.AppointmentDetail, error) {
	appointments, err := s.repo.FindAll()
	if err != nil {
		return nil, err
	}
	details := make([]domain.AppointmentDetail, 0, len(appointments))
	for i := range appointments {
		details = append(details, *detail(&appointments[i], &appointments[i].Doctor))
	}
	return details, nil
}

// SendDailyReminders emits one reminder event per non-cancelled appointment
// scheduled for tomorrow. Invoked by the cron scheduler.
func (s *appointmentService) SendDailyReminders() {
	date := time.Now().AddDate(0, 0, 1).Format(domain.DateLayout)
	appointments, err := s.repo.FindActiveByDate(date)
	if err != nil {
		s.logger.WithError(err).Error("Failed to fetch appointments for reminders")
		return
	}
	for i := range appointments {
		appt := &appointments[i]
		s.notifier.Enqueue(domain.AppointmentEvent{
			Type:            domain.EventReminder,
			AppointmentID:   appt.ID,
			DoctorID:        appt.Doctor.ID,
			DoctorName:      appt.Doctor.Name,
			DoctorEmail:     appt.Doctor.Email,
			PatientName:     appt.PatientName,
			AppointmentDate: appt.AppointmentDate,
			TimeSlot:        appt.TimeSlot,
		})
	}
	s.logger.WithFields(logrus.Fields{
		"Function": "SendDailyReminders",
		"Date":     date,
		"Count":    len(appointments),
	}).Info("Daily reminders queued")
}

func detail(appointment *domain.Appointment, doctor *domain.Doctor) *domain.AppointmentDetail {
	return &domain.AppointmentDetail{
		ID:              appointment.ID,
		PatientName:     appointment.PatientName,
		AppointmentDate: appointment.AppointmentDate,
		TimeSlot:        appointment.TimeSlot,
		DoctorID:        doctor.ID,
		DoctorName:      doctor.Name,
		DoctorSpecialty: doctor.Specialty,
		IsCancelled:     appointment.IsCancelled,
		CreatedAt:       appointment.CreatedAt,
	}
}
