package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/gowriprasath-v/train-traffic/core/model"
)

func sampleResult() model.ScheduleResult {
	delay := 5
	return model.ScheduleResult{
		Date: "2025-07-01",
		Trains: []model.OptimizedTrain{
			{TrainID: "EXP101", Platform: 1, Scheduled: "08:00", Arrival: "08:00", Departure: "08:10", Status: "on_time"},
			{TrainID: "LOC202", Platform: 2, Scheduled: "08:05", Arrival: "08:10", Departure: "08:20", Status: "on_time", DelayMinutes: &delay, PlatformChanged: true},
		},
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleResult()); err != nil {
		t.Fatalf("write: %v", err)
	}
	var res model.ScheduleResult
	if err := json.Unmarshal(buf.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.Trains) != 2 || res.Trains[0].TrainID != "EXP101" {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleResult()); err != nil {
		t.Fatalf("write: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "train_id,platform") {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.Contains(lines[2], "LOC202,2,08:05,08:10,08:20,5,on_time,true") {
		t.Errorf("unexpected row: %s", lines[2])
	}
}
