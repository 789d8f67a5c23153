// Package alerts derives operational alerts from a finalized schedule.
package alerts

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gowriprasath-v/train-traffic/core/model"
)

// Rules configures the alerting thresholds, in minutes of delay.
type Rules struct {
	// WarnMinutes is the smallest delay that raises an alert.
	WarnMinutes int
	// CriticalMinutes escalates the alert level.
	CriticalMinutes int
}

// DefaultRules matches the station dashboards: warn above 5 minutes,
// critical above 15.
func DefaultRules() Rules {
	return Rules{WarnMinutes: 5, CriticalMinutes: 15}
}

// Evaluate returns one alert per train whose delay exceeds the warn
// threshold, plus a single alert when the whole run degraded to the
// requested schedule.
func (r Rules) Evaluate(res model.ScheduleResult, now time.Time) []model.Alert {
	var out []model.Alert
	ts := now.Format(time.RFC3339)
	for _, tr := range res.Trains {
		if tr.DelayMinutes == nil || *tr.DelayMinutes <= r.WarnMinutes {
			continue
		}
		level := "warning"
		if *tr.DelayMinutes > r.CriticalMinutes {
			level = "critical"
		}
		out = append(out, model.Alert{
			ID:        uuid.NewString(),
			AlertType: "delay",
			Message:   fmt.Sprintf("Train %s delayed by %d minutes", tr.TrainID, *tr.DelayMinutes),
			Level:     level,
			Timestamp: ts,
		})
	}
	if res.Stats.Status == model.StatusFallback {
		out = append(out, model.Alert{
			ID:        uuid.NewString(),
			AlertType: "optimization",
			Message:   fmt.Sprintf("Schedule for %s degraded: %s", res.Date, res.Stats.FailureReason),
			Level:     "critical",
			Timestamp: ts,
		})
	}
	return out
}
