package metrics

import (
	"testing"

	coremetrics "github.com/gowriprasath-v/train-traffic/core/metrics"
)

type recordSink struct {
	count int
}

func (r *recordSink) RecordScheduleResult([]coremetrics.ScheduleRecord) error {
	r.count++
	return nil
}

func (r *recordSink) RecordKPI(coremetrics.KPIEvent) error {
	r.count++
	return nil
}

func TestMultiSink(t *testing.T) {
	s1 := &recordSink{}
	s2 := &recordSink{}
	m := NewMultiSink(s1, s2)
	if err := m.RecordScheduleResult(nil); err != nil {
		t.Fatalf("record result: %v", err)
	}
	if err := m.RecordKPI(coremetrics.KPIEvent{}); err != nil {
		t.Fatalf("record kpi: %v", err)
	}
	if s1.count != 2 || s2.count != 2 {
		t.Fatalf("records not forwarded")
	}
}

func TestMultiSinkWithNopSink(t *testing.T) {
	s := &recordSink{}
	m := NewMultiSink(coremetrics.NopSink{}, s)
	if err := m.RecordKPI(coremetrics.KPIEvent{}); err != nil {
		t.Fatalf("record kpi: %v", err)
	}
	if s.count != 1 {
		t.Fatalf("kpi not forwarded to recorder")
	}
}
