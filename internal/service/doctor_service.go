package service

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/carewell/appointment-service/internal/domain"
	"github.com/carewell/appointment-service/internal/repository"
)

// Notifier enqueues a fire-and-forget notification event. Delivery failures
// are the dispatcher's problem, never the caller's.
type Notifier interface {
	Enqueue(event domain.AppointmentEvent)
}

type DoctorService interface {
	AddDoctor(name, specialty, email string, slotsPerDay int) (*domain.DoctorInfo, error)
	GetDoctor(id uint) (*domain.DoctorInfo, error)
	ListDoctors() ([]domain.DoctorInfo, error)
	AvailableSlots(doctorID uint) (int, error)
}

type doctorService struct {
	repo     repository.DoctorRepository
	notifier Notifier
	logger   *logrus.Logger
}

func NewDoctorService(repo repository.DoctorRepository, notifier Notifier, logger *logrus.Logger) DoctorService {
	return &doctorService{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
	}
}

func (s *doctorService) AddDoctor(name, specialty, email string, slotsPerDay int) (*domain.DoctorInfo, error) {
	if err := validateDoctorInput(name, specialty, email, slotsPerDay); err != nil {
		return nil, err
	}

	doctor := &domain.Doctor{
		Name:        strings.TrimSpace(name),
		Specialty:   strings.TrimSpace(specialty),
		Email:       strings.ToLower(strings.TrimSpace(email)),
		SlotsPerDay: slotsPerDay,
	}
	if err := s.repo.Create(doctor); err != nil {
		s.logger.WithFields(logrus.Fields{
			"Function": "AddDoctor",
			"Name":     doctor.Name,
			"Error":    err,
		}).Warn("Doctor registration rejected")
		return nil, err
	}

	s.notifier.Enqueue(domain.AppointmentEvent{
		Type:        domain.EventWelcome,
		DoctorID:    doctor.ID,
		DoctorName:  doctor.Name,
		DoctorEmail: doctor.Email,
	})

	s.logger.WithFields(logrus.Fields{
		"Function": "AddDoctor",
		"DoctorId": doctor.ID,
		"Name":     doctor.Name,
	}).Info("Doctor registered")

	return s.info(doctor)
}

func (s *doctorService) GetDoctor(id uint) (*domain.DoctorInfo, error) {
	doctor, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return s.info(doctor)
}

func (s *doctorService) ListDoctors() ([]domain.DoctorInfo, error) {
	doctors, err := s.repo.FindAll()
	if err != nil {
		return nil, err
	}
	infos := make([]domain.DoctorInfo, 0, len(doctors))
	for i := range doctors {
		info, err := s.info(&doctors[i])
		if err != nil {
			return nil, err
		}
		infos = append(infos, *info)
	}
	return infos, nil
}

// AvailableSlots is slots_per_day minus non-cancelled appointments, floored
// at zero.
func (s *doctorService) AvailableSlots(doctorID uint) (int, error) {
	doctor, err := s.repo.FindByID(doctorID)
	if err != nil {
		return 0, err
	}
	booked, err := s.repo.CountBooked(doctor.ID)
	if err != nil {
		return 0, err
	}
	available := doctor.SlotsPerDay - booked
	if available < 0 {
		available = 0
	}
	return available, nil
}

func (s *doctorService) info(doctor *domain.Doctor) (*domain.DoctorInfo, error) {
	booked, err := s.repo.CountBooked(doctor.ID)
	if err != nil {
		return nil, err
	}
	available := doctor.SlotsPerDay - booked
	if available < 0 {
		available = 0
	}
	return &domain.DoctorInfo{
		ID:             doctor.ID,
		Name:           doctor.Name,
		Specialty:      doctor.Specialty,
		Email:          doctor.Email,
		SlotsPerDay:    doctor.SlotsPerDay,
		AvailableSlots: available,
		CreatedAt:      doctor.CreatedAt,
	}, nil
}
