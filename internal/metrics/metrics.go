// Package metrics exposes Prometheus counters for residency evaluations.
package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oshokin/residency/internal/domain/residency"
)

// Outcome labels.
const (
	OutcomeResident    = "resident"
	OutcomeNonResident = "non_resident"
	OutcomeInvalid     = "invalid_sequence"
	OutcomeError       = "error"
)

// Metrics holds the evaluation collectors registered on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	// Evaluations counts evaluations by outcome.
	Evaluations *prometheus.CounterVec
	// Days observes the day count of successful evaluations.
	Days prometheus.Histogram
}

// New creates the collectors on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		Evaluations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "residency_evaluations_total",
			Help: "Total residency evaluations by outcome",
		}, []string{"outcome"}),
		Days: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "residency_evaluation_days",
			Help:    "Days present in the rolling window per evaluation",
			Buckets: []float64{0, 30, 60, 90, 120, 150, residency.Threshold, 240, 300, 366},
		}),
	}
}

// ObserveResult records a finished evaluation.
func (m *Metrics) ObserveResult(result *residency.Result, err error) {
	if m == nil {
		return
	}

	switch {
	case errors.Is(err, residency.ErrInvalidSequence):
		m.Evaluations.WithLabelValues(OutcomeInvalid).Inc()
	case err != nil || result == nil:
		m.Evaluations.WithLabelValues(OutcomeError).Inc()
	case result.IsResident:
		m.Evaluations.WithLabelValues(OutcomeResident).Inc()
		m.Days.Observe(float64(result.Days))
	default:
		m.Evaluations.WithLabelValues(OutcomeNonResident).Inc()
		m.Days.Observe(float64(result.Days))
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
