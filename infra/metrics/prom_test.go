package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/gowriprasath-v/train-traffic/core/metrics"
	"github.com/gowriprasath-v/train-traffic/core/model"
)

func TestPromSink_RecordScheduleResult(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}

	recs := []coremetrics.ScheduleRecord{
		{TrainID: "T1", Platform: 2, Status: "on_time", PlatformChanged: true},
		{TrainID: "T2", Platform: 2, Status: "on_time", PlatformChanged: true},
	}
	if err := sink.RecordScheduleResult(recs); err != nil {
		t.Fatalf("record: %v", err)
	}

	expected := `
# HELP station_trains_scheduled_total Total number of scheduled train events
# TYPE station_trains_scheduled_total counter
station_trains_scheduled_total{platform="2",reassigned="true",status="on_time"} 2
`
	if err := testutil.CollectAndCompare(sink.trains, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected counter state: %v", err)
	}
}

func TestPromSink_RecordSolve(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}
	ev := coremetrics.SolveEvent{
		Status:       model.StatusOptimal,
		TotalDelay:   7,
		SolveLatency: 50 * time.Millisecond,
	}
	if err := sink.RecordSolve(ev); err != nil {
		t.Fatalf("record: %v", err)
	}
	if c := testutil.CollectAndCount(sink.solveTime); c == 0 {
		t.Errorf("solve latency not observed")
	}
	if v := testutil.ToFloat64(sink.totalDelay); v != 7 {
		t.Errorf("total delay gauge = %v, want 7", v)
	}
}

func TestPromSink_DoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSinkWithRegistry(reg); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if _, err := NewPromSinkWithRegistry(reg); err != nil {
		t.Fatalf("second registration should reuse collectors: %v", err)
	}
}
