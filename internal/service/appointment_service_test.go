package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carewell/appointment-service/internal/domain"
)

func newBookingFixture(t *testing.T) (AppointmentService, DoctorService, *fakeNotifier) {
	t.Helper()
	store := newMemStore()
	notifier := &fakeNotifier{}
	doctors := NewDoctorService(&memDoctorRepo{store: store}, notifier, testLogger())
	appointments := NewAppointmentService(&memAppointmentRepo{store: store}, notifier, testLogger())
	return appointments, doctors, notifier
}

func TestBookAppointment(t *testing.T) {
	appointments, doctors, notifier := newBookingFixture(t)

	doctor, err := doctors.AddDoctor("Smith", "Cardiology", "s@x.com", 10)
	require.NoError(t, err)

	appt, err := appointments.BookAppointment(doctor.ID, "Alice", "2024-12-25", "10:00")
	require.NoError(t, err)
	assert.Equal(t, "Alice", appt.PatientName)
	assert.Equal(t, "2024-12-25", appt.AppointmentDate)
	assert.Equal(t, "10:00", appt.TimeSlot)
	assert.Equal(t, doctor.ID, appt.DoctorID)
	assert.Equal(t, "Smith", appt.DoctorName)
	assert.Equal(t, "Cardiology", appt.DoctorSpecialty)
	assert.False(t, appt.IsCancelled)

	// welcome + booked
	require.Len(t, notifier.events, 2)
	booked := notifier.events[1]
	assert.Equal(t, domain.EventBooked, booked.Type)
	assert.Equal(t, appt.ID, booked.AppointmentID)
	assert.Equal(t, "s@x.com", booked.DoctorEmail)
	assert.Equal(t, "Alice", booked.PatientName)
}

func TestBookAppointmentValidation(t *testing.T) {
	appointments, doctors, _ := newBookingFixture(t)
	doctor, err := doctors.AddDoctor("Smith", "Cardiology", "s@x.com", 10)
	require.NoError(t, err)

	cases := []struct {
		name    string
		patient string
		date    string
		slot    string
	}{
		{"empty patient", "  ", "2024-12-25", "10:00"},
		{"bad date", "Alice", "25-12-2024", "10:00"},
		{"bad time", "Alice", "2024-12-25", "10am"},
		{"before opening", "Alice", "2024-12-25", "08:59"},
		{"after closing", "Alice", "2024-12-25", "17:01"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := appointments.BookAppointment(doctor.ID, tc.patient, tc.date, tc.slot)
			var val *domain.ValidationError
			require.ErrorAs(t, err, &val)
		})
	}
}

func TestBookAppointmentWorkingHourBoundaries(t *testing.T) {
	appointments, doctors, _ := newBookingFixture(t)
	doctor, err := doctors.AddDoctor("Smith", "Cardiology", "s@x.com", 10)
	require.NoError(t, err)

	_, err = appointments.BookAppointment(doctor.ID, "Alice", "2024-12-25", "09:00")
	assert.NoError(t, err)
	_, err = appointments.BookAppointment(doctor.ID, "Bob", "2024-12-25", "17:00")
	assert.NoError(t, err)
}

func TestBookAppointmentDoctorNotFound(t *testing.T) {
	appointments, _, _ := newBookingFixture(t)

	_, err := appointments.BookAppointment(99, "Alice", "2024-12-25", "10:00")
	assert.ErrorIs(t, err, domain.ErrDoctorNotFound)
}

// Capacity is checked before time conflicts, so a full doctor always yields
// CapacityExceeded even when the requested slot is also taken.
func TestBookAppointmentCheckOrder(t *testing.T) {
	appointments, doctors, _ := newBookingFixture(t)
	doctor, err := doctors.AddDoctor("Smith", "Cardiology", "s@x.com", 1)
	require.NoError(t, err)

	_, err = appointments.BookAppointment(doctor.ID, "Alice", "2024-12-25", "10:00")
	require.NoError(t, err)

	_, err = appointments.BookAppointment(doctor.ID, "Alice", "2024-12-25", "10:00")
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
}

func TestBookAppointmentPatientDoubleBooked(t *testing.T) {
	appointments, doctors, _ := newBookingFixture(t)
	smith, err := doctors.AddDoctor("Smith", "Cardiology", "s@x.com", 5)
	require.NoError(t, err)
	jones, err := doctors.AddDoctor("Jones", "Dermatology", "j@x.com", 5)
	require.NoError(t, err)

	_, err = appointments.BookAppointment(smith.ID, "Alice", "2024-12-25", "10:00")
	require.NoError(t, err)

	// Same patient, same date and slot, different doctor.
	_, err = appointments.BookAppointment(jones.ID, "Alice", "2024-12-25", "10:00")
	assert.ErrorIs(t, err, domain.ErrPatientDoubleBooked)
}

func TestBookAppointmentDoctorSlotTaken(t *testing.T) {
	appointments, doctors, _ := newBookingFixture(t)
	doctor, err := doctors.AddDoctor("Smith", "Cardiology", "s@x.com", 5)
	require.NoError(t, err)

	_, err = appointments.BookAppointment(doctor.ID, "Alice", "2024-12-25", "10:00")
	require.NoError(t, err)

	_, err = appointments.BookAppointment(doctor.ID, "Bob", "2024-12-25", "10:00")
	assert.ErrorIs(t, err, domain.ErrDoctorSlotTaken)
}

func TestCancelAppointment(t *testing.T) {
	appointments, doctors, notifier := newBookingFixture(t)
	doctor, err := doctors.AddDoctor("Smith", "Cardiology", "s@x.com", 5)
	require.NoError(t, err)
	appt, err := appointments.BookAppointment(doctor.ID, "Alice", "2024-12-25", "10:00")
	require.NoError(t, err)

	require.NoError(t, appointments.CancelAppointment(appt.ID))

	cancelled := notifier.events[len(notifier.events)-1]
	assert.Equal(t, domain.EventCancelled, cancelled.Type)
	assert.Equal(t, appt.ID, cancelled.AppointmentID)
	assert.Equal(t, "Patient request", cancelled.Reason)
}

func TestCancelAppointmentNotFound(t *testing.T) {
	appointments, _, _ := newBookingFixture(t)
	assert.ErrorIs(t, appointments.CancelAppointment(7), domain.ErrAppointmentNotFound)
}

func TestCancelIsOneWay(t *testing.T) {
	appointments, doctors, _ := newBookingFixture(t)
	doctor, err := doctors.AddDoctor("Smith", "Cardiology", "s@x.com", 5)
	require.NoError(t, err)
	appt, err := appointments.BookAppointment(doctor.ID, "Alice", "2024-12-25", "10:00")
	require.NoError(t, err)

	require.NoError(t, appointments.CancelAppointment(appt.ID))
	assert.ErrorIs(t, appointments.CancelAppointment(appt.ID), domain.ErrAlreadyCancelled)

	// Repeated cancellation must not free a second slot.
	available, err := doctors.AvailableSlots(doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, available)
}

// Full lifecycle: book to capacity, fail, cancel, rebook.
func TestCancellationFreesSlot(t *testing.T) {
	appointments, doctors, _ := newBookingFixture(t)
	doctor, err := doctors.AddDoctor("Smith", "Cardiology", "s@x.com", 1)
	require.NoError(t, err)

	first, err := appointments.BookAppointment(doctor.ID, "Alice", "2024-12-25", "10:00")
	require.NoError(t, err)

	available, err := doctors.AvailableSlots(doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, available)

	_, err = appointments.BookAppointment(doctor.ID, "Bob", "2024-12-25", "11:00")
	require.ErrorIs(t, err, domain.ErrCapacityExceeded)

	require.NoError(t, appointments.CancelAppointment(first.ID))

	available, err = doctors.AvailableSlots(doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, available)

	_, err = appointments.BookAppointment(doctor.ID, "Bob", "2024-12-25", "11:00")
	assert.NoError(t, err)
}

func TestListAppointmentsIncludesDoctorAndCancelled(t *testing.T) {
	appointments, doctors, _ := newBookingFixture(t)
	doctor, err := doctors.AddDoctor("Smith", "Cardiology", "s@x.com", 5)
	require.NoError(t, err)

	first, err := appointments.BookAppointment(doctor.ID, "Alice", "2024-12-25", "10:00")
	require.NoError(t, err)
	_, err = appointments.BookAppointment(doctor.ID, "Bob", "2024-12-25", "11:00")
	require.NoError(t, err)
	require.NoError(t, appointments.CancelAppointment(first.ID))

	all, err := appointments.ListAppointments()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.True(t, all[0].IsCancelled)
	assert.False(t, all[1].IsCancelled)
	assert.Equal(t, "Smith", all[0].DoctorName)
}

func TestSendDailyRemindersQueuesTomorrowOnly(t *testing.T) {
	appointments, doctors, notifier := newBookingFixture(t)
	doctor, err := doctors.AddDoctor("Smith", "Cardiology", "s@x.com", 10)
	require.NoError(t, err)

	tomorrow := time.Now().AddDate(0, 0, 1).Format(domain.DateLayout)
	nextWeek := time.Now().AddDate(0, 0, 7).Format(domain.DateLayout)

	due, err := appointments.BookAppointment(doctor.ID, "Alice", tomorrow, "10:00")
	require.NoError(t, err)
	cancelled, err := appointments.BookAppointment(doctor.ID, "Bob", tomorrow, "11:00")
	require.NoError(t, err)
	require.NoError(t, appointments.CancelAppointment(cancelled.ID))
	_, err = appointments.BookAppointment(doctor.ID, "Cara", nextWeek, "10:00")
	require.NoError(t, err)

	notifier.events = nil
	appointments.SendDailyReminders()

	require.Len(t, notifier.events, 1)
	assert.Equal(t, domain.EventReminder, notifier.events[0].Type)
	assert.Equal(t, due.ID, notifier.events[0].AppointmentID)
}
