package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/gowriprasath-v/train-traffic/core/metrics"
)

// PromSink records scheduling events in Prometheus metrics.
type PromSink struct {
	trains      *prometheus.CounterVec
	solveTime   *prometheus.HistogramVec
	totalDelay  prometheus.Gauge
	punctuality prometheus.Gauge
}

// NewPromSink registers scheduling metrics on the default Prometheus
// registerer. The Prometheus server should be started separately with
// StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	trains := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "station_trains_scheduled_total",
		Help: "Total number of scheduled train events",
	}, []string{"platform", "status", "reassigned"})
	solveTime := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "station_solve_duration_seconds",
		Help:    "Time spent computing a platform assignment",
		Buckets: prometheus.DefBuckets,
	}, []string{"status"})
	totalDelay := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "station_total_delay_minutes",
		Help: "Total delay minutes of the last published schedule",
	})
	punctuality := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "station_punctuality_percent",
		Help: "Punctuality percentage of the last published schedule",
	})

	if err := reg.Register(trains); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			trains = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(solveTime); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			solveTime = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(totalDelay); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			totalDelay = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(punctuality); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			punctuality = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{trains: trains, solveTime: solveTime, totalDelay: totalDelay, punctuality: punctuality}, nil
}

// RecordScheduleResult increments the counter for each scheduled train.
func (s *PromSink) RecordScheduleResult(records []coremetrics.ScheduleRecord) error {
	for _, r := range records {
		s.trains.WithLabelValues(strconv.Itoa(r.Platform), r.Status, strconv.FormatBool(r.PlatformChanged)).Inc()
	}
	return nil
}

// RecordSolve observes the solve latency histogram and the delay gauge.
func (s *PromSink) RecordSolve(ev coremetrics.SolveEvent) error {
	s.solveTime.WithLabelValues(ev.Status.String()).Observe(ev.SolveLatency.Seconds())
	s.totalDelay.Set(float64(ev.TotalDelay))
	return nil
}

// RecordKPI sets the punctuality gauge from the computed KPI set.
func (s *PromSink) RecordKPI(ev coremetrics.KPIEvent) error {
	s.punctuality.Set(ev.Metrics.PunctualityPct)
	return nil
}
