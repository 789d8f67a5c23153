// Package twin holds the station's digital twin: the single in-memory
// authoritative snapshot of the most recently computed schedule and its
// alert history. The twin starts empty, is replaced wholesale on every
// successful optimize call and fans each update out to the connected
// subscribers.
package twin

import (
	"sync"

	"github.com/gowriprasath-v/train-traffic/core/kpi"
	"github.com/gowriprasath-v/train-traffic/core/logger"
	"github.com/gowriprasath-v/train-traffic/core/model"
	"github.com/gowriprasath-v/train-traffic/internal/eventbus"
)

// Update is what subscribers receive after each publish: the new schedule,
// the KPIs recomputed from it and any alerts raised by this publish.
type Update struct {
	Schedule model.ScheduleResult `json:"schedule"`
	Metrics  kpi.Metrics          `json:"metrics"`
	Alerts   []model.Alert        `json:"alerts,omitempty"`
}

// Twin is the process-wide shared schedule state. The zero state is "empty":
// no schedule has been published yet, which is an expected condition rather
// than an error.
type Twin struct {
	mu      sync.RWMutex
	current *model.ScheduleResult
	alerts  []model.Alert

	engine *kpi.Engine
	bus    *eventbus.TypedBus[Update]
	log    logger.Logger
}

// New creates an empty twin.
func New(engine *kpi.Engine, log logger.Logger) *Twin {
	return &Twin{engine: engine, bus: eventbus.NewTyped[Update](), log: log}
}

// Publish atomically replaces the current schedule, appends the given alerts
// and broadcasts the update with freshly computed metrics. Fan-out is
// best-effort and per-subscriber: a subscriber that cannot keep up is pruned
// without blocking the caller. The twin takes ownership of res; callers must
// not retain references into it.
func (t *Twin) Publish(res model.ScheduleResult, alerts ...model.Alert) Update {
	metrics := t.engine.Compute(res)

	t.mu.Lock()
	t.current = &res
	t.alerts = append(t.alerts, alerts...)
	t.mu.Unlock()

	up := Update{Schedule: res, Metrics: metrics, Alerts: alerts}
	t.bus.Publish(up)
	t.log.Infof("published schedule for %s: %d trains, %d subscribers",
		res.Date, len(res.Trains), t.bus.Len())
	return up
}

// Snapshot returns a consistent copy of the current schedule. The second
// return is false while the twin is still empty.
func (t *Twin) Snapshot() (model.ScheduleResult, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.current == nil {
		return model.ScheduleResult{}, false
	}
	cp := *t.current
	cp.Trains = append([]model.OptimizedTrain(nil), t.current.Trains...)
	return cp, true
}

// CurrentMetrics recomputes the KPIs from the current schedule. The second
// return is false while the twin is empty.
func (t *Twin) CurrentMetrics() (kpi.Metrics, bool) {
	snap, ok := t.Snapshot()
	if !ok {
		return kpi.Metrics{}, false
	}
	return t.engine.Compute(snap), true
}

// AppendAlert records an alert independent of a schedule publish.
func (t *Twin) AppendAlert(a model.Alert) {
	t.mu.Lock()
	t.alerts = append(t.alerts, a)
	t.mu.Unlock()
}

// RecentAlerts returns up to limit alerts, newest first.
func (t *Twin) RecentAlerts(limit int) []model.Alert {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n := len(t.alerts)
	if limit > n {
		limit = n
	}
	out := make([]model.Alert, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, t.alerts[i])
	}
	return out
}

// Subscribe connects a new observer. Subscribers only receive updates
// published after they connect; use Snapshot for the current state.
func (t *Twin) Subscribe() <-chan Update { return t.bus.Subscribe() }

// Unsubscribe disconnects an observer.
func (t *Twin) Unsubscribe(sub <-chan Update) { t.bus.Unsubscribe(sub) }

// Close tears the twin down, disconnecting all subscribers.
func (t *Twin) Close() { t.bus.Close() }
