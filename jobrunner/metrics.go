package jobrunner

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors updated by Ticker and
// ScheduledJob.
type Metrics struct {
	DispatchesTotal   *prometheus.CounterVec
	DispatchDuration  *prometheus.HistogramVec
	DispatchesActive  *prometheus.GaugeVec
	TicksDroppedTotal *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all collectors
// initialized. Register it against a prometheus.Registerer of the
// caller's choosing.
func NewMetrics() *Metrics {
	return &Metrics{
		DispatchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cronexpr_job_dispatches_total",
				Help: "Total number of job dispatches by job name and status",
			},
			[]string{"job", "status"},
		),
		DispatchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cronexpr_job_dispatch_duration_seconds",
				Help:    "Job dispatch duration in seconds by job name",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"job"},
		),
		DispatchesActive: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "cronexpr_job_dispatches_active",
				Help: "Number of currently running dispatches by job name",
			},
			[]string{"job"},
		),
		TicksDroppedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cronexpr_ticks_dropped_total",
				Help: "Total number of ticks dropped because no receiver was ready",
			},
			[]string{"job"},
		),
	}
}

// Collectors returns every collector so callers can register them in
// one call to a prometheus.Registerer.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.DispatchesTotal,
		m.DispatchDuration,
		m.DispatchesActive,
		m.TicksDroppedTotal,
	}
}
