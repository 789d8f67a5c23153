package schedule

import (
	"net/http"

	infrakpi "github.com/gowriprasath-v/train-traffic/infra/kpi"
)

// NewKPIHistoryHandler returns an HTTP handler exposing persisted daily KPI
// snapshots via GET /api/v1/metrics/history. Optional start and end query
// parameters bound the date range (inclusive, YYYY-MM-DD).
func NewKPIHistoryHandler(store *infrakpi.HistoryStore) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		snaps, err := store.Query(r.URL.Query().Get("start"), r.URL.Query().Get("end"))
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if snaps == nil {
			snaps = []infrakpi.Snapshot{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"history": snaps})
	})
}
