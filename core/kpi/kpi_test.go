package kpi

import (
	"testing"

	"github.com/gowriprasath-v/train-traffic/core/model"
	"github.com/gowriprasath-v/train-traffic/infra/logger"
)

func intPtr(v int) *int { return &v }

func engine() *Engine {
	return NewEngine(10, 5, logger.NopLogger{})
}

func TestComputeEmptySchedule(t *testing.T) {
	m := engine().Compute(model.ScheduleResult{Date: "2025-09-03"})
	if m != (Metrics{}) {
		t.Fatalf("expected all-zero metrics, got %+v", m)
	}
}

func TestComputeSingleDelayedTrain(t *testing.T) {
	res := model.ScheduleResult{
		Date: "2025-09-03",
		Trains: []model.OptimizedTrain{
			{TrainID: "A", Arrival: "08:10", Departure: "08:20", Platform: 1,
				Status: "on_time", DelayMinutes: intPtr(10)},
		},
	}
	m := engine().Compute(res)
	if m.AvgDelayMinutes != 10 {
		t.Fatalf("avg delay = %v, want 10", m.AvgDelayMinutes)
	}
	// numeric delay wins over the status text: 10 > 5 means not punctual
	if m.PunctualityPct != 0 {
		t.Fatalf("punctuality = %v, want 0", m.PunctualityPct)
	}
	if m.PlatformUtilizationPct != 10 {
		t.Fatalf("platform utilization = %v, want 10", m.PlatformUtilizationPct)
	}
	// span is under an hour, so operating hours floor to 1
	if m.ThroughputTrainsPerHour != 1 {
		t.Fatalf("throughput = %v, want 1", m.ThroughputTrainsPerHour)
	}
}

func TestComputeStatusTextFallback(t *testing.T) {
	res := model.ScheduleResult{
		Trains: []model.OptimizedTrain{
			{TrainID: "A", Arrival: "08:00", Departure: "08:10", Platform: 1, Status: "on_time"},
			{TrainID: "B", Arrival: "09:00", Departure: "09:10", Platform: 2, Status: "cancelled"},
		},
	}
	m := engine().Compute(res)
	// no numeric delays at all: average stays zero, status text drives
	// punctuality
	if m.AvgDelayMinutes != 0 {
		t.Fatalf("avg delay = %v, want 0", m.AvgDelayMinutes)
	}
	if m.PunctualityPct != 50 {
		t.Fatalf("punctuality = %v, want 50", m.PunctualityPct)
	}
}

func TestComputeThroughputSpansHours(t *testing.T) {
	res := model.ScheduleResult{
		Trains: []model.OptimizedTrain{
			{TrainID: "A", Arrival: "08:00", Departure: "08:30", Platform: 1, DelayMinutes: intPtr(0)},
			{TrainID: "B", Arrival: "09:30", Departure: "10:00", Platform: 1, DelayMinutes: intPtr(4)},
		},
	}
	m := engine().Compute(res)
	// span 08:00..10:00 = 2h, 2 trains
	if m.ThroughputTrainsPerHour != 1 {
		t.Fatalf("throughput = %v, want 1", m.ThroughputTrainsPerHour)
	}
	if m.AvgDelayMinutes != 2 {
		t.Fatalf("avg delay = %v, want 2", m.AvgDelayMinutes)
	}
	if m.PunctualityPct != 100 {
		t.Fatalf("punctuality = %v, want 100", m.PunctualityPct)
	}
}

func TestComputeSkipsMalformedTimes(t *testing.T) {
	res := model.ScheduleResult{
		Trains: []model.OptimizedTrain{
			{TrainID: "A", Arrival: "bad", Departure: "worse", Platform: 1, DelayMinutes: intPtr(3)},
			{TrainID: "B", Arrival: "08:00", Departure: "08:30", Platform: 2, DelayMinutes: intPtr(1)},
		},
	}
	m := engine().Compute(res)
	// the malformed train still counts for throughput, delay and
	// punctuality; only the time span ignores it
	if m.ThroughputTrainsPerHour != 2 {
		t.Fatalf("throughput = %v, want 2", m.ThroughputTrainsPerHour)
	}
	if m.AvgDelayMinutes != 2 {
		t.Fatalf("avg delay = %v, want 2", m.AvgDelayMinutes)
	}
	if m.PunctualityPct != 100 {
		t.Fatalf("punctuality = %v, want 100", m.PunctualityPct)
	}
}

func TestComputeUtilizationCountsDistinctPlatforms(t *testing.T) {
	res := model.ScheduleResult{
		Trains: []model.OptimizedTrain{
			{TrainID: "A", Arrival: "08:00", Departure: "08:10", Platform: 3, DelayMinutes: intPtr(0)},
			{TrainID: "B", Arrival: "08:20", Departure: "08:30", Platform: 3, DelayMinutes: intPtr(0)},
			{TrainID: "C", Arrival: "08:00", Departure: "08:10", Platform: 7, DelayMinutes: intPtr(0)},
		},
	}
	m := engine().Compute(res)
	if m.PlatformUtilizationPct != 20 {
		t.Fatalf("platform utilization = %v, want 20", m.PlatformUtilizationPct)
	}
}
