package conflict

import (
	"testing"

	"github.com/gowriprasath-v/train-traffic/core/model"
)

func req(trains ...model.TrainRequest) model.ScheduleRequest {
	return model.ScheduleRequest{Date: "2025-09-03", Trains: trains}
}

func TestDetectOverlapSamePlatform(t *testing.T) {
	r := req(
		model.TrainRequest{TrainID: "A", Arrival: "08:00", Departure: "08:05", Platform: 1},
		model.TrainRequest{TrainID: "B", Arrival: "08:03", Departure: "08:08", Platform: 1},
	)
	conflicts := Detect(r)
	if len(conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(conflicts))
	}
	c := conflicts[0]
	if c.Platform != 1 || c.FirstTrainID != "A" || c.SecondTrainID != "B" {
		t.Fatalf("unexpected conflict %+v", c)
	}
	if c.FirstDeparture != "08:05" || c.SecondArrival != "08:03" {
		t.Fatalf("unexpected times %+v", c)
	}
}

func TestDetectTouchingIntervalsAreFine(t *testing.T) {
	// Back-to-back at requested times is not a conflict; the dwell buffer
	// only matters to the optimizer.
	r := req(
		model.TrainRequest{TrainID: "A", Arrival: "08:00", Departure: "08:05", Platform: 1},
		model.TrainRequest{TrainID: "B", Arrival: "08:05", Departure: "08:10", Platform: 1},
	)
	if got := Detect(r); len(got) != 0 {
		t.Fatalf("expected no conflicts, got %v", got)
	}
}

func TestDetectDifferentPlatforms(t *testing.T) {
	r := req(
		model.TrainRequest{TrainID: "A", Arrival: "08:00", Departure: "08:30", Platform: 1},
		model.TrainRequest{TrainID: "B", Arrival: "08:00", Departure: "08:30", Platform: 2},
	)
	if got := Detect(r); len(got) != 0 {
		t.Fatalf("expected no conflicts, got %v", got)
	}
}

func TestDetectReportsEveryConflict(t *testing.T) {
	r := req(
		model.TrainRequest{TrainID: "A", Arrival: "08:00", Departure: "08:10", Platform: 1},
		model.TrainRequest{TrainID: "B", Arrival: "08:05", Departure: "08:15", Platform: 1},
		model.TrainRequest{TrainID: "C", Arrival: "08:12", Departure: "08:20", Platform: 1},
		model.TrainRequest{TrainID: "D", Arrival: "09:00", Departure: "09:10", Platform: 2},
		model.TrainRequest{TrainID: "E", Arrival: "09:05", Departure: "09:20", Platform: 2},
	)
	conflicts := Detect(r)
	if len(conflicts) != 3 {
		t.Fatalf("expected 3 conflicts, got %d: %v", len(conflicts), conflicts)
	}
}

func TestDetectStableForEqualArrivals(t *testing.T) {
	r := req(
		model.TrainRequest{TrainID: "A", Arrival: "08:00", Departure: "08:10", Platform: 3},
		model.TrainRequest{TrainID: "B", Arrival: "08:00", Departure: "08:05", Platform: 3},
	)
	conflicts := Detect(r)
	if len(conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(conflicts))
	}
	// equal arrivals keep input order
	if conflicts[0].FirstTrainID != "A" || conflicts[0].SecondTrainID != "B" {
		t.Fatalf("unexpected order %+v", conflicts[0])
	}
}
