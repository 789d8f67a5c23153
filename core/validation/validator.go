// Package validation normalizes and rejects malformed schedule requests
// before any scheduling work begins. All violations are collected, not just
// the first one found.
package validation

import (
	"fmt"

	"github.com/gowriprasath-v/train-traffic/core/model"
)

// Limits bounds the fields a train request may use.
type Limits struct {
	// MaxPlatforms is the station platform capacity; requested platforms
	// must fall in [1, MaxPlatforms].
	MaxPlatforms int
	// MaxPriority is the highest (least urgent) accepted priority value.
	MaxPriority int
}

// Violation describes a single field-level problem in a request.
type Violation struct {
	TrainID string `json:"train_id,omitempty"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error aggregates every violation found in a request.
type Error struct {
	Violations []Violation
}

func (e *Error) Error() string {
	if len(e.Violations) == 1 {
		v := e.Violations[0]
		return fmt.Sprintf("schedule request rejected: %s: %s", v.Field, v.Message)
	}
	return fmt.Sprintf("schedule request rejected: %d violations", len(e.Violations))
}

const defaultStatus = "scheduled"

// Validate checks the request against the limits and returns a normalized
// copy, or an *Error listing every violation. It has no side effects on the
// input.
func Validate(req model.ScheduleRequest, lim Limits) (model.ScheduleRequest, error) {
	var violations []Violation
	add := func(id, field, msg string) {
		violations = append(violations, Violation{TrainID: id, Field: field, Message: msg})
	}

	if _, err := model.ParseDate(req.Date); err != nil {
		add("", "date", err.Error())
	}

	out := model.ScheduleRequest{Date: req.Date, Trains: make([]model.TrainRequest, len(req.Trains))}
	seen := make(map[string]bool, len(req.Trains))
	for i, tr := range req.Trains {
		if tr.TrainID == "" {
			add("", "train_id", fmt.Sprintf("train %d: identifier must not be empty", i))
		} else if seen[tr.TrainID] {
			add(tr.TrainID, "train_id", "duplicate train identifier in batch")
		}
		seen[tr.TrainID] = true

		arr, arrErr := model.ParseClock(tr.Arrival)
		if arrErr != nil {
			add(tr.TrainID, "arrival", arrErr.Error())
		}
		dep, depErr := model.ParseClock(tr.Departure)
		if depErr != nil {
			add(tr.TrainID, "departure", depErr.Error())
		}
		if arrErr == nil && depErr == nil && arr >= dep {
			add(tr.TrainID, "departure", "arrival time must be before departure time")
		}
		if tr.Platform < 1 || tr.Platform > lim.MaxPlatforms {
			add(tr.TrainID, "platform", fmt.Sprintf("platform must be between 1 and %d", lim.MaxPlatforms))
		}
		if tr.Priority < 0 || tr.Priority > lim.MaxPriority {
			add(tr.TrainID, "priority", fmt.Sprintf("priority must be between 0 and %d", lim.MaxPriority))
		}
		if tr.Scheduled != nil {
			if _, err := model.ParseClock(*tr.Scheduled); err != nil {
				add(tr.TrainID, "scheduled", err.Error())
			}
		}
		if tr.ActualArrival != nil {
			if _, err := model.ParseClock(*tr.ActualArrival); err != nil {
				add(tr.TrainID, "actual_arrival", err.Error())
			}
		}
		if tr.DelayMinutes != nil && *tr.DelayMinutes < 0 {
			add(tr.TrainID, "delay_minutes", "delay must not be negative")
		}

		out.Trains[i] = normalize(tr)
	}

	if len(violations) > 0 {
		return model.ScheduleRequest{}, &Error{Violations: violations}
	}
	return out, nil
}

// normalize resolves optional fields to explicit defaults so downstream
// components never have to guess.
func normalize(tr model.TrainRequest) model.TrainRequest {
	if tr.Scheduled == nil {
		s := tr.Arrival
		tr.Scheduled = &s
	}
	if tr.Status == "" {
		tr.Status = defaultStatus
	}
	if tr.DelayMinutes == nil {
		zero := 0
		tr.DelayMinutes = &zero
	}
	return tr
}
