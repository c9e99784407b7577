// Package notification delivers doctor-facing emails for booking lifecycle
// events. Delivery is decoupled from the booking path: events are queued and
// handled by a background worker, and a failing sender never fails the
// operation that produced the event.
package notification

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carewell/appointment-service/internal/domain"
	"github.com/carewell/appointment-service/internal/metrics"
)

// Sender delivers one event to its destination (mail provider, broker, log).
type Sender interface {
	Send(ctx context.Context, event domain.AppointmentEvent) error
}

const (
	defaultBuffer = 128
	sendTimeout   = 15 * time.Second
)

// Dispatcher owns the event queue and the worker that drains it.
type Dispatcher struct {
	events chan domain.AppointmentEvent
	sender Sender
	logger *logrus.Logger
	wg     sync.WaitGroup
	once   sync.Once
}

func NewDispatcher(sender Sender, logger *logrus.Logger) *Dispatcher {
	d := &Dispatcher{
		events: make(chan domain.AppointmentEvent, defaultBuffer),
		sender: sender,
		logger: logger,
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// Enqueue hands an event to the worker without blocking. When the queue is
// full the event is dropped and logged; notification loss must never stall
// a booking or cancellation.
func (d *Dispatcher) Enqueue(event domain.AppointmentEvent) {
	select {
	case d.events <- event:
	default:
		metrics.NotificationsTotal.WithLabelValues(event.Type, "dropped").Inc()
		d.logger.WithFields(logrus.Fields{
			"Type":          event.Type,
			"AppointmentId": event.AppointmentID,
		}).Warn("Notification queue full, event dropped")
	}
}

// Close stops accepting events and waits for the worker to drain the queue.
func (d *Dispatcher) Close() {
	d.once.Do(func() { close(d.events) })
	d.wg.Wait()
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for event := range d.events {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		err := d.sender.Send(ctx, event)
		cancel()
		if err != nil {
			metrics.NotificationsTotal.WithLabelValues(event.Type, "error").Inc()
			d.logger.WithFields(logrus.Fields{
				"Type":        event.Type,
				"DoctorEmail": event.DoctorEmail,
				"Error":       err,
			}).Error("Failed to deliver notification")
			continue
		}
		metrics.NotificationsTotal.WithLabelValues(event.Type, "sent").Inc()
		d.logger.WithFields(logrus.Fields{
			"Type":        event.Type,
			"DoctorEmail": event.DoctorEmail,
		}).Info("Notification delivered")
	}
}
