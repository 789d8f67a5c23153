package schedule

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/gowriprasath-v/train-traffic/core/conflict"
	"github.com/gowriprasath-v/train-traffic/core/kpi"
	"github.com/gowriprasath-v/train-traffic/core/model"
	coreschedule "github.com/gowriprasath-v/train-traffic/core/schedule"
	"github.com/gowriprasath-v/train-traffic/core/twin"
	"github.com/gowriprasath-v/train-traffic/core/validation"
	"github.com/gowriprasath-v/train-traffic/infra/logger"
)

// Handler exposes the scheduling pipeline over HTTP.
type Handler struct {
	manager *coreschedule.Manager
	twin    *twin.Twin
	log     logger.Logger
}

// NewHandler builds the API router.
func NewHandler(manager *coreschedule.Manager, tw *twin.Twin, log logger.Logger) http.Handler {
	h := &Handler{manager: manager, twin: tw, log: log}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/optimize", h.optimize)
	mux.HandleFunc("/api/v1/schedule", h.schedule)
	mux.HandleFunc("/api/v1/metrics", h.metrics)
	mux.HandleFunc("/api/v1/alerts", h.alerts)
	mux.HandleFunc("/health", h.health)
	return mux
}

func (h *Handler) optimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req model.ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	res, err := h.manager.Process(r.Context(), req)
	if err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"detail":     verr.Error(),
				"violations": verr.Violations,
			})
			return
		}
		var cerr *conflict.Error
		if errors.As(err, &cerr) {
			writeJSON(w, http.StatusConflict, map[string]any{
				"detail":    cerr.Error(),
				"conflicts": cerr.Conflicts,
			})
			return
		}
		h.log.Errorf("optimize: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"schedule": res})
}

func (h *Handler) schedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	snap, ok := h.twin.Snapshot()
	if !ok {
		writeError(w, http.StatusNotFound, "no schedule available")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"schedule": snap})
}

func (h *Handler) metrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	m, ok := h.twin.CurrentMetrics()
	if !ok {
		m = kpi.Metrics{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"metrics": m})
}

func (h *Handler) alerts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		limit := 50
		writeJSON(w, http.StatusOK, map[string]any{"alerts": h.twin.RecentAlerts(limit)})
	case http.MethodPost:
		var in struct {
			AlertType string `json:"alert_type"`
			Message   string `json:"message"`
			Level     string `json:"level"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
		if in.Message == "" {
			writeError(w, http.StatusBadRequest, "message is required")
			return
		}
		if in.AlertType == "" {
			in.AlertType = "manual"
		}
		if in.Level == "" {
			in.Level = "warning"
		}
		a := model.Alert{
			ID:        uuid.NewString(),
			AlertType: in.AlertType,
			Message:   in.Message,
			Level:     in.Level,
			Timestamp: time.Now().Format(time.RFC3339),
		}
		h.twin.AppendAlert(a)
		writeJSON(w, http.StatusCreated, map[string]any{"alert": a})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
