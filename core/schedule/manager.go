package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gowriprasath-v/train-traffic/core/alerts"
	"github.com/gowriprasath-v/train-traffic/core/conflict"
	"github.com/gowriprasath-v/train-traffic/core/events"
	"github.com/gowriprasath-v/train-traffic/core/logger"
	"github.com/gowriprasath-v/train-traffic/core/metrics"
	"github.com/gowriprasath-v/train-traffic/core/model"
	"github.com/gowriprasath-v/train-traffic/core/prediction"
	"github.com/gowriprasath-v/train-traffic/core/schedule/logging"
	"github.com/gowriprasath-v/train-traffic/core/twin"
	"github.com/gowriprasath-v/train-traffic/core/validation"
	"github.com/gowriprasath-v/train-traffic/internal/eventbus"
)

// Manager runs the full scheduling pipeline: validation, conflict detection,
// delay prediction, optimization, alert evaluation and twin publication.
type Manager struct {
	cfg       Config
	optimizer *Optimizer
	twin      *twin.Twin
	rules     alerts.Rules
	pred      prediction.Engine
	sink      metrics.MetricsSink
	bus       eventbus.EventBus
	store     logging.LogStore
	logger    logger.Logger
	history   []model.ScheduleResult
	mu        sync.Mutex
}

// NewManager creates a new manager. The twin is required; sink, bus and pred
// are optional.
func NewManager(cfg Config, tw *twin.Twin, sink metrics.MetricsSink, bus eventbus.EventBus, pred prediction.Engine, log logger.Logger) (*Manager, error) {
	if tw == nil {
		return nil, fmt.Errorf("schedule: nil twin provided to NewManager")
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		return nil, fmt.Errorf("schedule: nil logger provided to NewManager")
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	opt := NewOptimizer(cfg, log)
	opt.SetEventBus(bus)
	return &Manager{
		cfg:       cfg,
		optimizer: opt,
		twin:      tw,
		rules:     alerts.DefaultRules(),
		pred:      pred,
		sink:      sink,
		bus:       bus,
		logger:    log,
	}, nil
}

// SetLogStore configures the store used to persist run logs.
func (m *Manager) SetLogStore(store logging.LogStore) {
	m.mu.Lock()
	m.store = store
	m.mu.Unlock()
}

// SetAlertRules overrides the default alerting thresholds.
func (m *Manager) SetAlertRules(r alerts.Rules) {
	m.mu.Lock()
	m.rules = r
	m.mu.Unlock()
}

// Process takes a raw schedule request through the whole pipeline. It returns
// an error only for invalid or conflicting input; optimization itself always
// yields a result, degraded if necessary.
func (m *Manager) Process(ctx context.Context, req model.ScheduleRequest) (model.ScheduleResult, error) {
	validated, err := validation.Validate(req, validation.Limits{
		MaxPlatforms: m.cfg.MaxPlatforms,
		MaxPriority:  m.cfg.MaxPriority,
	})
	if err != nil {
		return model.ScheduleResult{}, err
	}

	if conflicts := conflict.Detect(validated); len(conflicts) > 0 {
		return model.ScheduleResult{}, &conflict.Error{Conflicts: conflicts}
	}

	m.annotatePredictions(&validated)

	res := m.optimizer.Optimize(ctx, validated)

	raised := m.alertRules().Evaluate(res, time.Now())
	up := m.twin.Publish(res, raised...)

	if m.bus != nil {
		m.bus.Publish(events.ScheduleEvent{Result: res})
		m.bus.Publish(events.KPIEvent{Date: res.Date, Metrics: up.Metrics})
		for _, a := range raised {
			m.bus.Publish(events.AlertEvent{Alert: a})
		}
	}

	m.record(ctx, res)

	m.mu.Lock()
	m.history = append(m.history, res)
	m.mu.Unlock()
	return res, nil
}

// Run processes incoming schedule requests until the context is canceled.
func (m *Manager) Run(ctx context.Context, requests <-chan model.ScheduleRequest) {
	for {
		select {
		case req := <-requests:
			if _, err := m.Process(ctx, req); err != nil {
				m.logger.Errorf("request rejected: %v", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

// History returns the results processed so far, oldest first.
func (m *Manager) History() []model.ScheduleResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.ScheduleResult(nil), m.history...)
}

// Close releases resources held by the manager.
func (m *Manager) Close() error {
	m.mu.Lock()
	store := m.store
	m.mu.Unlock()
	if store != nil {
		return store.Close()
	}
	return nil
}

// annotatePredictions shifts the requested times of trains the prediction
// engine expects to run late. A status already set by the caller is kept.
func (m *Manager) annotatePredictions(req *model.ScheduleRequest) {
	if m.pred == nil {
		return
	}
	for i := range req.Trains {
		tr := &req.Trains[i]
		delay, status := m.pred.PredictDelay(req.Date, *tr)
		if delay <= 0 {
			continue
		}
		arr, dep, ok := tr.Window()
		if !ok {
			continue
		}
		tr.Arrival = arr.Add(delay).String()
		tr.Departure = dep.Add(delay).String()
		if status != "" && (tr.Status == "" || tr.Status == "scheduled") {
			tr.Status = status
		}
		d := delay
		tr.DelayMinutes = &d
		m.logger.Debugf("train %s: predicted %d min late, shifted to %s", tr.TrainID, delay, tr.Arrival)
	}
}

func (m *Manager) alertRules() alerts.Rules {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rules
}

// record forwards the run to the metrics sink and the run-log store.
func (m *Manager) record(ctx context.Context, res model.ScheduleResult) {
	now := time.Now()
	recs := make([]metrics.ScheduleRecord, len(res.Trains))
	delay := 0
	for i, t := range res.Trains {
		d := 0
		if t.DelayMinutes != nil {
			d = *t.DelayMinutes
		}
		delay += d
		recs[i] = metrics.ScheduleRecord{
			Date:            res.Date,
			TrainID:         t.TrainID,
			Platform:        t.Platform,
			RequestedArr:    t.Scheduled,
			AssignedArr:     t.Arrival,
			DelayMinutes:    d,
			PlatformChanged: t.PlatformChanged,
			Status:          t.Status,
			SolveTime:       now,
		}
	}
	if err := m.sink.RecordScheduleResult(recs); err != nil {
		m.logger.Errorf("record schedule: %v", err)
	}
	if r, ok := m.sink.(metrics.SolveRecorder); ok {
		_ = r.RecordSolve(metrics.SolveEvent{
			Date:         res.Date,
			Status:       res.Stats.Status,
			Trains:       len(res.Trains),
			TotalDelay:   delay,
			Reassigned:   res.Stats.PlatformChanges,
			Objective:    res.Stats.Objective,
			SolveLatency: res.Stats.SolveDuration,
			Time:         now,
		})
	}

	m.mu.Lock()
	store := m.store
	m.mu.Unlock()
	if store != nil {
		rec := logging.LogRecord{
			Timestamp: now,
			Date:      res.Date,
			Trains:    len(res.Trains),
			Status:    res.Stats.Status,
			Result:    res,
		}
		if err := store.Append(ctx, rec); err != nil {
			m.logger.Errorf("persist run log: %v", err)
		}
	}
}
