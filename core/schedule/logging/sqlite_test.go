package logging

import (
	"context"
	"testing"
	"time"

	"github.com/gowriprasath-v/train-traffic/core/model"
)

func TestSQLiteStore_PersistQuery(t *testing.T) {
	store, err := NewSQLiteStore("file:test.db?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = store.Close() }()
	rec := LogRecord{
		Timestamp: time.Now(),
		Date:      "2025-01-01",
		Trains:    1,
		Status:    model.StatusOptimal,
		Result: model.ScheduleResult{
			Date:   "2025-01-01",
			Trains: []model.OptimizedTrain{{TrainID: "T1", Platform: 1}},
		},
	}
	if err := store.Append(context.Background(), rec); err != nil {
		t.Fatalf("append: %v", err)
	}
	out, err := store.Query(context.Background(), LogQuery{TrainID: "T1"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 record, got %d", len(out))
	}
	if out[0].Result.Trains[0].TrainID != "T1" {
		t.Fatalf("unexpected record: %+v", out[0])
	}
}

func TestSQLiteStore_FilterByDate(t *testing.T) {
	store, err := NewSQLiteStore("file:test2.db?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = store.Close() }()
	for _, date := range []string{"2025-01-01", "2025-01-02"} {
		rec := LogRecord{Timestamp: time.Now(), Date: date}
		if err := store.Append(context.Background(), rec); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	out, err := store.Query(context.Background(), LogQuery{Date: "2025-01-02"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(out) != 1 || out[0].Date != "2025-01-02" {
		t.Fatalf("unexpected records: %+v", out)
	}
}
