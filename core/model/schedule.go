package model

import "time"

// SolveStatus reports how the optimizer arrived at a schedule.
type SolveStatus int

const (
	// StatusOptimal means the search completed within budget and the
	// returned assignment is the best one found by the exact solver.
	StatusOptimal SolveStatus = iota
	// StatusFeasible means the assignment respects all constraints but
	// optimality was not proven (budget hit or heuristic fallback).
	StatusFeasible
	// StatusFallback means no feasible assignment was found and the
	// original requested schedule was returned unmodified.
	StatusFallback
)

// String returns a human-readable representation of the solve status.
func (s SolveStatus) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusFeasible:
		return "feasible"
	case StatusFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status for JSON payloads.
func (s SolveStatus) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText decodes the textual status form.
func (s *SolveStatus) UnmarshalText(b []byte) error {
	switch string(b) {
	case "optimal":
		*s = StatusOptimal
	case "fallback":
		*s = StatusFallback
	default:
		*s = StatusFeasible
	}
	return nil
}

// OptimizedTrain is the per-train output of the optimizer. Arrival and
// departure hold the assigned times; Scheduled retains the originally
// requested arrival for display.
type OptimizedTrain struct {
	TrainID         string `json:"train_id"`
	Arrival         string `json:"arrival"`
	Departure       string `json:"departure"`
	Priority        int    `json:"priority"`
	Platform        int    `json:"platform"`
	Scheduled       string `json:"scheduled"`
	Status          string `json:"status"`
	DelayMinutes    *int   `json:"delay_minutes"`
	PlatformChanged bool   `json:"platform_changed"`
	Explanation     string `json:"explanation,omitempty"`
}

// OptimizationStats summarizes one optimizer run.
type OptimizationStats struct {
	Status            SolveStatus   `json:"status"`
	TotalDelayMinutes int           `json:"total_delay_minutes"`
	PlatformChanges   int           `json:"platform_changes"`
	SolveDuration     time.Duration `json:"solve_duration_ns"`
	Objective         float64       `json:"objective"`
	FailureReason     string        `json:"failure_reason,omitempty"`
}

// ScheduleResult is the finalized schedule for one date.
type ScheduleResult struct {
	Date   string            `json:"date"`
	Trains []OptimizedTrain  `json:"trains"`
	Stats  OptimizationStats `json:"optimization_stats"`
}
