package metrics

import coremetrics "github.com/gowriprasath-v/train-traffic/core/metrics"

// MultiSink fans records out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordScheduleResult forwards the records to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordScheduleResult(records []coremetrics.ScheduleRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordScheduleResult(records); err != nil {
			return err
		}
	}
	return nil
}

// RecordKPI forwards KPI sets to sinks that record them.
func (m *MultiSink) RecordKPI(ev coremetrics.KPIEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.KPIRecorder); ok {
			if err := rec.RecordKPI(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordAlert forwards alerts to sinks that record them.
func (m *MultiSink) RecordAlert(ev coremetrics.AlertEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.AlertRecorder); ok {
			if err := rec.RecordAlert(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordSolve forwards solve outcomes to sinks that record them.
func (m *MultiSink) RecordSolve(ev coremetrics.SolveEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.SolveRecorder); ok {
			if err := rec.RecordSolve(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
