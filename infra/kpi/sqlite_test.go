package kpi

import (
	"path/filepath"
	"testing"

	corekpi "github.com/gowriprasath-v/train-traffic/core/kpi"
	coremetrics "github.com/gowriprasath-v/train-traffic/core/metrics"
)

func TestHistoryStoreUpsert(t *testing.T) {
	store, err := NewHistoryStore(filepath.Join(t.TempDir(), "kpi.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = store.Close() }()

	ev := coremetrics.KPIEvent{
		Date: "2025-07-01",
		Metrics: corekpi.Metrics{
			ThroughputTrainsPerHour: 4,
			AvgDelayMinutes:         2.5,
			PlatformUtilizationPct:  60,
			PunctualityPct:          75,
		},
	}
	if err := store.RecordKPI(ev); err != nil {
		t.Fatalf("record: %v", err)
	}

	ev.Metrics.PunctualityPct = 100
	if err := store.RecordKPI(ev); err != nil {
		t.Fatalf("record update: %v", err)
	}

	snaps, err := store.Query("", "")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(snaps) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(snaps))
	}
	if snaps[0].Metrics.PunctualityPct != 100 {
		t.Errorf("expected updated punctuality, got %v", snaps[0].Metrics.PunctualityPct)
	}
}

func TestHistoryStoreRange(t *testing.T) {
	store, err := NewHistoryStore(filepath.Join(t.TempDir(), "kpi.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = store.Close() }()

	for _, d := range []string{"2025-07-01", "2025-07-02", "2025-07-03"} {
		if err := store.RecordKPI(coremetrics.KPIEvent{Date: d}); err != nil {
			t.Fatalf("record %s: %v", d, err)
		}
	}

	snaps, err := store.Query("2025-07-02", "2025-07-03")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(snaps))
	}
	if snaps[0].Date != "2025-07-02" {
		t.Errorf("expected ordered dates, got %s first", snaps[0].Date)
	}
}
