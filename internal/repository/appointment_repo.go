package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/carewell/appointment-service/internal/domain"
)

type AppointmentRepository interface {
	// Book runs the capacity and conflict checks and the insert as one
	// transaction. It returns the owning doctor for notification purposes.
	Book(appointment *domain.Appointment) (*domain.Doctor, error)
	// Cancel marks the appointment cancelled and returns it together with
	// the owning doctor.
	Cancel(id uint) (*domain.Appointment, *domain.Doctor, error)
	FindAll() ([]domain.Appointment, error)
	FindActiveByDate(date string) ([]domain.Appointment, error)
}

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

// Book locks the doctor row so two concurrent bookings cannot both pass the
// capacity check. The validation order is fixed: doctor existence, capacity,
// patient conflict, doctor conflict.
func (r *appointmentRepository) Book(appointment *domain.Appointment) (*domain.Doctor, error) {
	var doctor domain.Doctor
	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&doctor, appointment.DoctorID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrDoctorNotFound
			}
			return err
		}

		var booked int64
		err = tx.Model(&domain.Appointment{}).
			Where("doctor_id = ? AND is_cancelled = ?", doctor.ID, false).
			Count(&booked).Error
		if err != nil {
			return err
		}
		if booked >= int64(doctor.SlotsPerDay) {
			return domain.ErrCapacityExceeded
		}

		var conflicts int64
		err = tx.Model(&domain.Appointment{}).
			Where("patient_name = ? AND appointment_date = ? AND time_slot = ? AND is_cancelled = ?",
				appointment.PatientName, appointment.AppointmentDate, appointment.TimeSlot, false).
			Count(&conflicts).Error
		if err != nil {
			return err
		}
		if conflicts > 0 {
			return domain.ErrPatientDoubleBooked
		}

		err = tx.Model(&domain.Appointment{}).
			Where("doctor_id = ? AND appointment_date = ? AND time_slot = ? AND is_cancelled = ?",
				doctor.ID, appointment.AppointmentDate, appointment.TimeSlot, false).
			Count(&conflicts).Error
		if err != nil {
			return err
		}
		if conflicts > 0 {
			return domain.ErrDoctorSlotTaken
		}

		return tx.Create(appointment).Error
	})
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *appointmentRepository) Cancel(id uint) (*domain.Appointment, *domain.Doctor, error) {
	var appointment domain.Appointment
	var doctor domain.Doctor
	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&appointment, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrAppointmentNotFound
			}
			return err
		}
		if appointment.IsCancelled {
			return domain.ErrAlreadyCancelled
		}
		err = tx.Model(&appointment).Update("is_cancelled", true).Error
		if err != nil {
			return err
		}
		return tx.First(&doctor, appointment.DoctorID).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &appointment, &doctor, nil
}

func (r *appointmentRepository) FindAll() ([]domain.Appointment, error) {
	var appointments []domain.Appointment
	err := r.db.Preload("Doctor").Order("id").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// FindActiveByDate returns non-cancelled appointments on a calendar date,
// used by the daily reminder job.
func (r *appointmentRepository) FindActiveByDate(date string) ([]domain.Appointment, error) {
	var appointments []domain.Appointment
	err := r.db.Preload("Doctor").
		Where("appointment_date = ? AND is_cancelled = ?", date, false).
		Order("time_slot").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}
