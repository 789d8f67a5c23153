package schedule

import (
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"

	corekpi "github.com/gowriprasath-v/train-traffic/core/kpi"
	coremetrics "github.com/gowriprasath-v/train-traffic/core/metrics"
	infrakpi "github.com/gowriprasath-v/train-traffic/infra/kpi"
)

func TestKPIHistoryHandler(t *testing.T) {
	store, err := infrakpi.NewHistoryStore(filepath.Join(t.TempDir(), "kpi.db"))
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.RecordKPI(coremetrics.KPIEvent{
		Date:    "2025-07-01",
		Metrics: corekpi.Metrics{PunctualityPct: 100},
	}); err != nil {
		t.Fatalf("record: %v", err)
	}

	h := NewKPIHistoryHandler(store)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/metrics/history", nil))
	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		History []infrakpi.Snapshot `json:"history"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.History) != 1 || body.History[0].Metrics.PunctualityPct != 100 {
		t.Errorf("unexpected history: %+v", body.History)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/metrics/history?start=2025-08-01", nil))
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.History) != 0 {
		t.Errorf("expected empty history out of range, got %+v", body.History)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("POST", "/api/v1/metrics/history", nil))
	if rec.Code != 405 {
		t.Errorf("expected 405 for POST, got %d", rec.Code)
	}
}
