// Package metrics exposes the service's Prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "appointment_bookings_total",
		Help: "Booking attempts by outcome.",
	}, []string{"result"})

	CancellationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "appointment_cancellations_total",
		Help: "Cancellation attempts by outcome.",
	}, []string{"result"})

	ChatRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chatbot_requests_total",
		Help: "Chatbot turns by outcome (answered or fallback).",
	}, []string{"result"})

	NotificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notification_events_total",
		Help: "Notification events by type and delivery result.",
	}, []string{"type", "result"})
)
