package schedule

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	solveDuration      *prometheus.HistogramVec
	schedulesOptimized *prometheus.CounterVec
	trainsScheduled    prometheus.Counter
	fallbackTotal      prometheus.Counter
)

// newCollectors creates new metric collectors.
func newCollectors() (*prometheus.HistogramVec, *prometheus.CounterVec, prometheus.Counter, prometheus.Counter) {
	dur := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "schedule_solve_duration_seconds",
			Help:    "Wall-clock duration of schedule optimization runs",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status"},
	)
	runs := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schedules_optimized_total",
			Help: "Number of optimization runs by solve status",
		},
		[]string{"status"},
	)
	trains := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "trains_scheduled_total",
			Help: "Number of trains processed by the optimizer",
		},
	)
	fb := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "schedule_fallback_total",
			Help: "Number of optimization runs degraded to the requested schedule",
		},
	)
	return dur, runs, trains, fb
}

func init() {
	solveDuration, schedulesOptimized, trainsScheduled, fallbackTotal = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers optimizer metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(solveDuration, schedulesOptimized, trainsScheduled, fallbackTotal)
}

// ResetMetrics reinitializes metrics collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	solveDuration, schedulesOptimized, trainsScheduled, fallbackTotal = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}
