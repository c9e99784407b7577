package notification

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/carewell/appointment-service/internal/domain"
)

type mailContent struct {
	Subject string
	HTML    string
	Text    string
}

type templateData struct {
	DoctorName      string
	DoctorID        uint
	PatientName     string
	AppointmentID   uint
	AppointmentDate string
	TimeSlot        string
	Reason          string
}

var bookedTmpl = template.Must(template.New("booked").Parse(`<html><body>
<h2>New Appointment Booked</h2>
<p>Dear Dr. {{.DoctorName}},</p>
<p>A new appointment has been booked with you.</p>
<ul>
  <li><strong>Patient:</strong> {{.PatientName}}</li>
  <li><strong>Date:</strong> {{.AppointmentDate}}</li>
  <li><strong>Time:</strong> {{.TimeSlot}}</li>
  <li><strong>Appointment ID:</strong> #{{.AppointmentID}}</li>
</ul>
<p>Please be available at the scheduled time.</p>
</body></html>`))

var cancelledTmpl = template.Must(template.New("cancelled").Parse(`<html><body>
<h2>Appointment Cancelled</h2>
<p>Dear Dr. {{.DoctorName}},</p>
<p>The following appointment has been cancelled.</p>
<ul>
  <li><strong>Patient:</strong> {{.PatientName}}</li>
  <li><strong>Date:</strong> {{.AppointmentDate}}</li>
  <li><strong>Time:</strong> {{.TimeSlot}}</li>
  <li><strong>Appointment ID:</strong> #{{.AppointmentID}}</li>
  <li><strong>Cancellation Reason:</strong> {{.Reason}}</li>
</ul>
<p>This slot is now available for other patients.</p>
</body></html>`))

var welcomeTmpl = template.Must(template.New("welcome").Parse(`<html><body>
<h2>Welcome Aboard</h2>
<p>Dear Dr. {{.DoctorName}},</p>
<p>Your profile has been registered in our booking system (doctor ID #{{.DoctorID}}).
You will receive an email whenever a patient books or cancels an appointment with you.</p>
</body></html>`))

var reminderTmpl = template.Must(template.New("reminder").Parse(`<html><body>
<h2>Appointment Reminder</h2>
<p>Dear Dr. {{.DoctorName}},</p>
<p>Reminder: you have an appointment with {{.PatientName}} on {{.AppointmentDate}} at {{.TimeSlot}} (appointment #{{.AppointmentID}}).</p>
</body></html>`))

// renderMail builds subject and body for an event. Dates are rewritten as
// "December 25, 2024" and times as "10:00 AM" when they parse; the raw value
// is kept otherwise.
func renderMail(event domain.AppointmentEvent) (mailContent, error) {
	data := templateData{
		DoctorName:      event.DoctorName,
		DoctorID:        event.DoctorID,
		PatientName:     event.PatientName,
		AppointmentID:   event.AppointmentID,
		AppointmentDate: formatDate(event.AppointmentDate),
		TimeSlot:        formatTime(event.TimeSlot),
		Reason:          event.Reason,
	}
	if data.Reason == "" {
		data.Reason = "Patient request"
	}

	var subject string
	var tmpl *template.Template
	switch event.Type {
	case domain.EventBooked:
		subject = fmt.Sprintf("New Appointment Booked - %s", event.PatientName)
		tmpl = bookedTmpl
	case domain.EventCancelled:
		subject = fmt.Sprintf("Appointment Cancelled - %s", event.PatientName)
		tmpl = cancelledTmpl
	case domain.EventWelcome:
		subject = fmt.Sprintf("Welcome to Carewell Booking, Dr. %s!", event.DoctorName)
		tmpl = welcomeTmpl
	case domain.EventReminder:
		subject = fmt.Sprintf("Appointment Reminder - %s at %s", data.AppointmentDate, data.TimeSlot)
		tmpl = reminderTmpl
	default:
		return mailContent{}, fmt.Errorf("unknown event type %q", event.Type)
	}

	var html bytes.Buffer
	if err := tmpl.Execute(&html, data); err != nil {
		return mailContent{}, fmt.Errorf("render %s mail: %w", event.Type, err)
	}

	text := fmt.Sprintf("Dear Dr. %s,\n\n%s\nPatient: %s\nDate: %s\nTime: %s\nAppointment ID: #%d\n",
		data.DoctorName, subject, data.PatientName, data.AppointmentDate, data.TimeSlot, data.AppointmentID)

	return mailContent{Subject: subject, HTML: html.String(), Text: text}, nil
}

func formatDate(date string) string {
	t, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("January 2, 2006")
}

func formatTime(slot string) string {
	t, err := time.Parse(domain.TimeLayout, slot)
	if err != nil {
		return slot
	}
	return t.Format("3:04 PM")
}
