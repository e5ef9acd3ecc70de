package api

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/warp/reservation-engine/booking"
)

// =============================================================================
// METRICS - Admission counters exposed at /metrics
// =============================================================================

// Metrics tracks reservation admissions and rejections by reason.
type Metrics struct {
	registry *prometheus.Registry

	admitted prometheus.Counter
	rejected *prometheus.CounterVec
	canceled prometheus.Counter
}

// NewMetrics creates and registers the admission counters on a private registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	m := &Metrics{
		registry: registry,
		admitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reservations_admitted_total",
			Help: "Reservations that passed the admission check and were persisted.",
		}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reservations_rejected_total",
			Help: "Reservation requests rejected, by reason.",
		}, []string{"reason"}),
		canceled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reservations_canceled_total",
			Help: "Reservations canceled (hard deleted).",
		}),
	}
	registry.MustRegister(m.admitted, m.rejected, m.canceled)
	return m
}

// Handler serves the registry in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) RecordAdmission() { m.admitted.Inc() }
func (m *Metrics) RecordCancel() { m.canceled.Inc() }
func (m *Metrics) RecordRejection(err error) {
	m.rejected.WithLabelValues(rejectionReason(err)).Inc()
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, booking.ErrInsufficientCapacity):
		return "insufficient_capacity"
	case errors.Is(err, booking.ErrDuplicateID):
		return "duplicate_id"
	case errors.Is(err, booking.ErrNotFound):
		return "not_found"
	case errors.Is(err, booking.ErrValidation):
		return "validation"
	default:
		return "internal"
	}
}
