package metrics

import (
	"time"

	"github.com/gowriprasath-v/train-traffic/core/kpi"
	"github.com/gowriprasath-v/train-traffic/core/model"
)

// ScheduleRecord represents a per-train scheduling outcome to be recorded.
type ScheduleRecord struct {
	Date            string
	TrainID         string
	Platform        int
	RequestedArr    string
	AssignedArr     string
	DelayMinutes    int
	PlatformChanged bool
	Status          string
	SolveTime       time.Time
}

// MetricsSink records scheduling outcomes for observability purposes.
type MetricsSink interface {
	RecordScheduleResult(records []ScheduleRecord) error
}

// KPIEvent captures a computed set of station KPIs.
type KPIEvent struct {
	Date    string
	Metrics kpi.Metrics
	Time    time.Time
}

// KPIRecorder records computed KPI sets.
type KPIRecorder interface {
	RecordKPI(ev KPIEvent) error
}

// AlertEvent captures an emitted operational alert.
type AlertEvent struct {
	Alert model.Alert
	Time  time.Time
}

// AlertRecorder records operational alerts.
type AlertRecorder interface {
	RecordAlert(ev AlertEvent) error
}

// SolveEvent records an optimization run outcome.
type SolveEvent struct {
	Date         string
	Status       model.SolveStatus
	Trains       int
	TotalDelay   int
	Reassigned   int
	Objective    float64
	SolveLatency time.Duration
	Time         time.Time
}

// SolveRecorder records optimization run outcomes.
type SolveRecorder interface {
	RecordSolve(ev SolveEvent) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordScheduleResult([]ScheduleRecord) error { return nil }
func (NopSink) RecordKPI(KPIEvent) error                    { return nil }
func (NopSink) RecordAlert(AlertEvent) error                { return nil }
func (NopSink) RecordSolve(SolveEvent) error                { return nil }
