// Package telemetry provides the metrics, tracing and logging hooks used by
// the einsum evaluator.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Execution modes used as metric label values.
const (
	ModeSequential = "sequential"
	ModeParallel   = "parallel"
)

// Metrics holds the Prometheus collectors of an evaluator.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	evaluations *prometheus.CounterVec
	errors      *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	jointPoints prometheus.Histogram
	workers     prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// Passing prometheus.DefaultRegisterer exposes them on the default /metrics handler.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		evaluations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "einsum_evaluations_total",
			Help: "Total einsum evaluations by execution mode and result",
		}, []string{"mode", "result"}),

		errors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "einsum_errors_total",
			Help: "Total failed einsum evaluations by error kind",
		}, []string{"kind"}),

		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "einsum_evaluation_duration_seconds",
			Help:    "Einsum evaluation duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 12), // 10µs to ~42s
		}, []string{"mode"}),

		jointPoints: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "einsum_joint_points",
			Help:    "Number of joint index points enumerated per evaluation",
			Buckets: prometheus.ExponentialBuckets(1, 8, 10),
		}),

		workers: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "einsum_workers",
			Help:    "Number of worker ranges per parallel evaluation",
			Buckets: []float64{1, 2, 4, 8, 16, 32, 64, 128},
		}),
	}
}

// ObserveSuccess records a completed evaluation.
func (m *Metrics) ObserveSuccess(mode string, d time.Duration, jointPoints, workers int) {
	if m == nil {
		return
	}
	m.evaluations.WithLabelValues(mode, "ok").Inc()
	m.duration.WithLabelValues(mode).Observe(d.Seconds())
	m.jointPoints.Observe(float64(jointPoints))
	if mode == ModeParallel {
		m.workers.Observe(float64(workers))
	}
}

// ObserveFailure records a failed evaluation with the name of its error kind.
func (m *Metrics) ObserveFailure(mode, kind string) {
	if m == nil {
		return
	}
	m.evaluations.WithLabelValues(mode, "error").Inc()
	m.errors.WithLabelValues(kind).Inc()
}
