package metrics

import (
	"context"
	"time"

	"github.com/gowriprasath-v/train-traffic/core/events"
	coremetrics "github.com/gowriprasath-v/train-traffic/core/metrics"
	"github.com/gowriprasath-v/train-traffic/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and records metrics for
// events. It stops when the context is canceled.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus, sink coremetrics.MetricsSink) {
	if bus == nil || sink == nil {
		return
	}
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				switch e := ev.(type) {
				case events.ScheduleEvent:
					if r, ok := sink.(coremetrics.SolveRecorder); ok {
						reassigned := 0
						delay := 0
						for _, t := range e.Result.Trains {
							if t.PlatformChanged {
								reassigned++
							}
							if t.DelayMinutes != nil {
								delay += *t.DelayMinutes
							}
						}
						_ = r.RecordSolve(coremetrics.SolveEvent{
							Date:         e.Result.Date,
							Status:       e.Result.Stats.Status,
							Trains:       len(e.Result.Trains),
							TotalDelay:   delay,
							Reassigned:   reassigned,
							Objective:    e.Result.Stats.Objective,
							SolveLatency: e.Result.Stats.SolveDuration,
							Time:         time.Now(),
						})
					}
				case events.KPIEvent:
					if r, ok := sink.(coremetrics.KPIRecorder); ok {
						_ = r.RecordKPI(coremetrics.KPIEvent{Date: e.Date, Metrics: e.Metrics, Time: time.Now()})
					}
				case events.AlertEvent:
					if r, ok := sink.(coremetrics.AlertRecorder); ok {
						_ = r.RecordAlert(coremetrics.AlertEvent{Alert: e.Alert, Time: time.Now()})
					}
				}
			}
		}
	}()
}
