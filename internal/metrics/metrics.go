// Package metrics registers the Prometheus collectors for the service.
// Everything is registered on the default registry and served by the
// /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by method, route pattern and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	SlotsScheduled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slots_scheduled_total",
		Help: "Showtime slots successfully scheduled.",
	})

	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookings_created_total",
		Help: "Bookings committed by the reservation engine.",
	})

	BookingsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookings_cancelled_total",
		Help: "Bookings flipped to cancelled.",
	})

	ReservationConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reservation_conflicts_total",
		Help: "Reserve attempts rejected because a seat was already booked.",
	})

	ScheduleConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "schedule_conflicts_total",
		Help: "Slot schedules rejected by the overlap check.",
	})
)
