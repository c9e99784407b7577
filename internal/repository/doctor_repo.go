package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/carewell/appointment-service/internal/domain"
)

type DoctorRepository interface {
	Create(doctor *domain.Doctor) error
	FindByID(id uint) (*domain.Doctor, error)
	FindAll() ([]domain.Doctor, error)
	CountBooked(doctorID uint) (int, error)
}

type doctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) DoctorRepository {
	return &doctorRepository{db: db}
}

// Create inserts a new doctor after the duplicate checks. The name+specialty
// pair is checked before the email so the first violation wins, matching the
// registration contract.
func (r *doctorRepository) Create(doctor *domain.Doctor) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&domain.Doctor{}).
			Where("name = ? AND specialty = ?", doctor.Name, doctor.Specialty).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return &domain.DuplicateError{Field: "name+specialty"}
		}

		err = tx.Model(&domain.Doctor{}).
			Where("email = ?", doctor.Email).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return &domain.DuplicateError{Field: "email"}
		}

		return tx.Create(doctor).Error
	})
}

func (r *doctorRepository) FindByID(id uint) (*domain.Doctor, error) {
	var doctor domain.Doctor
	if err := r.db.First(&doctor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDoctorNotFound
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindAll() ([]domain.Doctor, error) {
	var doctors []domain.Doctor
	if err := r.db.Order("id").Find(&doctors).Error; err != nil {
		return nil, err
	}
	return doctors, nil
}

// CountBooked returns the number of non-cancelled appointments for a doctor.
func (r *doctorRepository) CountBooked(doctorID uint) (int, error) {
	var count int64
	err := r.db.Model(&domain.Appointment{}).
		Where("doctor_id = ? AND is_cancelled = ?", doctorID, false).
		Count(&count).Error
	return int(count), err
}
