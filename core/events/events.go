// Package events defines the notifications published on the internal event
// bus while a schedule request is processed.
package events

import (
	"github.com/gowriprasath-v/train-traffic/core/kpi"
	"github.com/gowriprasath-v/train-traffic/core/model"
)

// ScheduleEvent is published after each successful optimization run.
type ScheduleEvent struct {
	Result model.ScheduleResult
}

// AlertEvent is published for each alert raised on a new schedule.
type AlertEvent struct {
	Alert model.Alert
}

// KPIEvent carries the KPIs computed for a freshly published schedule.
type KPIEvent struct {
	Date    string
	Metrics kpi.Metrics
}

// StrategyEvent is emitted when the manager chooses a solving strategy.
// Action can be "exact_attempt", "exact_failure" or "greedy_fallback".
type StrategyEvent struct {
	Date   string
	Action string
	Err    error
}
