package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/gowriprasath-v/train-traffic/core/events"
	"github.com/gowriprasath-v/train-traffic/core/logger"
	"github.com/gowriprasath-v/train-traffic/core/model"
	"github.com/gowriprasath-v/train-traffic/core/solver"
	"github.com/gowriprasath-v/train-traffic/internal/eventbus"
)

// Optimizer assigns platforms and adjusted times to a batch of validated
// train requests. It never returns an error for infeasibility: when no
// feasible assignment exists within the time budget the requested schedule is
// passed through with an explicit fallback status, and a train whose variable
// construction fails is degraded individually without aborting the batch.
type Optimizer struct {
	cfg    Config
	exact  solver.Solver
	greedy solver.Solver
	bus    eventbus.EventBus
	log    logger.Logger
}

// SetEventBus configures an optional bus on which strategy decisions are
// published.
func (o *Optimizer) SetEventBus(bus eventbus.EventBus) { o.bus = bus }

// NewOptimizer creates an optimizer using branch-and-bound with a greedy
// fallback.
func NewOptimizer(cfg Config, log logger.Logger) *Optimizer {
	cfg.SetDefaults()
	return &Optimizer{
		cfg:    cfg,
		exact:  solver.BranchBound{},
		greedy: solver.Greedy{},
		log:    log,
	}
}

// NewOptimizerWithSolver injects a custom solving capability; used by tests
// and by deployments plugging in a different engine.
func NewOptimizerWithSolver(cfg Config, s solver.Solver, log logger.Logger) *Optimizer {
	cfg.SetDefaults()
	return &Optimizer{cfg: cfg, exact: s, greedy: solver.Greedy{}, log: log}
}

// greedyBudget caps the fallback heuristic attempt after the exact search
// came up empty.
const greedyBudget = 2 * time.Second

// Optimize computes a schedule for the request. The input is expected to be
// validated and conflict-checked already.
func (o *Optimizer) Optimize(ctx context.Context, req model.ScheduleRequest) model.ScheduleResult {
	started := time.Now()
	trainsScheduled.Add(float64(len(req.Trains)))

	if len(req.Trains) == 0 {
		res := model.ScheduleResult{
			Date:   req.Date,
			Trains: []model.OptimizedTrain{},
			Stats:  model.OptimizationStats{Status: model.StatusOptimal},
		}
		o.observe(res.Stats.Status, started)
		return res
	}

	prob, failed := o.buildProblem(req)
	if len(failed) == len(req.Trains) {
		return o.fallbackResult(req, started, "no train produced valid time variables")
	}

	budget := time.Duration(o.cfg.TimeBudgetSeconds) * time.Second
	solveCtx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	o.strategy(req.Date, "exact_attempt", nil)
	sol, err := o.exact.Solve(solveCtx, prob)
	if err != nil || sol.Status == solver.NoSolution {
		if err != nil {
			o.log.Warnf("exact solve failed: %v, trying greedy", err)
		} else {
			o.log.Warnf("exact solve found no assignment, trying greedy")
		}
		o.strategy(req.Date, "exact_failure", err)
		gctx, gcancel := context.WithTimeout(ctx, greedyBudget)
		defer gcancel()
		o.strategy(req.Date, "greedy_fallback", nil)
		sol, err = o.greedy.Solve(gctx, prob)
		if err != nil || sol.Status == solver.NoSolution {
			return o.fallbackResult(req, started, "no feasible platform assignment within the search horizon")
		}
	}

	result := o.buildResult(req, prob, sol, failed, started)
	o.observe(result.Stats.Status, started)
	o.log.Infof("optimized %d trains for %s: %s, total delay %d min, %d platform changes",
		len(result.Trains), req.Date, result.Stats.Status, result.Stats.TotalDelayMinutes, result.Stats.PlatformChanges)
	return result
}

// buildProblem turns requests into solver variables. Trains whose times fail
// to parse are collected in failed and excluded from the problem; their
// variable carries a zero duration placeholder so indices stay aligned.
func (o *Optimizer) buildProblem(req model.ScheduleRequest) (solver.Problem, map[int]bool) {
	failed := make(map[int]bool)
	maxObserved := 0
	vars := make([]solver.TrainVar, 0, len(req.Trains))
	for i, tr := range req.Trains {
		arr, dep, ok := tr.Window()
		if !ok || dep <= arr {
			o.log.Warnf("train %s: unusable time data, keeping requested values", tr.TrainID)
			failed[i] = true
			continue
		}
		if int(dep) > maxObserved {
			maxObserved = int(dep)
		}
		vars = append(vars, solver.TrainVar{
			ID:       tr.TrainID,
			Release:  int(arr),
			Duration: int(dep - arr),
			Platform: tr.Platform,
			Weight:   o.cfg.weight(tr.Priority),
		})
	}
	return solver.Problem{
		Trains:       vars,
		Platforms:    o.cfg.MaxPlatforms,
		DwellMinutes: o.cfg.DwellMinutes,
		Horizon:      maxObserved + o.cfg.HorizonBufferMinutes,
		DelayWeight:  o.cfg.DelayWeight,
		MoveWeight:   o.cfg.ReassignmentWeight,
	}, failed
}

// buildResult maps the solver assignment back onto the request, degrading
// unplaced or failed trains to their requested values.
func (o *Optimizer) buildResult(req model.ScheduleRequest, prob solver.Problem, sol solver.Solution, failed map[int]bool, started time.Time) model.ScheduleResult {
	stats := model.OptimizationStats{Objective: sol.Objective}
	switch sol.Status {
	case solver.Optimal:
		stats.Status = model.StatusOptimal
	default:
		stats.Status = model.StatusFeasible
	}

	out := make([]model.OptimizedTrain, len(req.Trains))
	vi := 0
	for i, tr := range req.Trains {
		if failed[i] {
			out[i] = passthroughTrain(tr, "kept requested schedule: unusable time data")
			continue
		}
		asn := sol.Assignments[vi]
		tv := prob.Trains[vi]
		vi++
		if asn.Platform == 0 {
			out[i] = passthroughTrain(tr, "kept requested schedule: no feasible slot")
			if stats.Status == model.StatusOptimal {
				stats.Status = model.StatusFeasible
			}
			continue
		}

		// Delay is reported against the originally scheduled arrival, so a
		// request whose times were already shifted by a delay prediction
		// keeps that delay in its published figure.
		scheduled := tr.Arrival
		if tr.Scheduled != nil {
			scheduled = *tr.Scheduled
		}
		delay := asn.Start - tv.Release
		if sa, err := model.ParseClock(scheduled); err == nil && int(sa) < tv.Release {
			delay += tv.Release - int(sa)
		}
		moved := asn.Platform != tr.Platform
		ot := model.OptimizedTrain{
			TrainID:         tr.TrainID,
			Arrival:         model.Clock(asn.Start).String(),
			Departure:       model.Clock(asn.Start + tv.Duration).String(),
			Priority:        tr.Priority,
			Platform:        asn.Platform,
			Scheduled:       scheduled,
			Status:          o.statusBucket(delay),
			DelayMinutes:    intPtr(delay),
			PlatformChanged: moved,
			Explanation:     explain(delay, moved, asn.Platform),
		}
		out[i] = ot
		stats.TotalDelayMinutes += delay
		if moved {
			stats.PlatformChanges++
		}
	}

	stats.SolveDuration = time.Since(started)
	return model.ScheduleResult{Date: req.Date, Trains: out, Stats: stats}
}

// fallbackResult returns the requested schedule verbatim with an explicit
// degraded status. Callers always get a result, never an error.
func (o *Optimizer) fallbackResult(req model.ScheduleRequest, started time.Time, reason string) model.ScheduleResult {
	o.log.Warnf("optimization degraded for %s: %s", req.Date, reason)
	fallbackTotal.Inc()
	out := make([]model.OptimizedTrain, len(req.Trains))
	for i, tr := range req.Trains {
		out[i] = passthroughTrain(tr, "kept requested schedule: "+reason)
	}
	stats := model.OptimizationStats{
		Status:        model.StatusFallback,
		FailureReason: reason,
		SolveDuration: time.Since(started),
	}
	o.observe(stats.Status, started)
	return model.ScheduleResult{Date: req.Date, Trains: out, Stats: stats}
}

// passthroughTrain copies the requested values unchanged with zero delay.
func passthroughTrain(tr model.TrainRequest, explanation string) model.OptimizedTrain {
	scheduled := tr.Arrival
	if tr.Scheduled != nil {
		scheduled = *tr.Scheduled
	}
	status := tr.Status
	if status == "" {
		status = "scheduled"
	}
	return model.OptimizedTrain{
		TrainID:      tr.TrainID,
		Arrival:      tr.Arrival,
		Departure:    tr.Departure,
		Priority:     tr.Priority,
		Platform:     tr.Platform,
		Scheduled:    scheduled,
		Status:       status,
		DelayMinutes: intPtr(0),
		Explanation:  explanation,
	}
}

func (o *Optimizer) statusBucket(delay int) string {
	switch {
	case delay <= o.cfg.OnTimeMinutes:
		return "on_time"
	case delay <= o.cfg.MinorDelayMinutes:
		return "minor_delay"
	default:
		return "delayed"
	}
}

func explain(delay int, moved bool, platform int) string {
	switch {
	case delay > 0 && moved:
		return fmt.Sprintf("delayed %d min, moved to platform %d", delay, platform)
	case delay > 0:
		return fmt.Sprintf("delayed %d min", delay)
	case moved:
		return fmt.Sprintf("moved to platform %d", platform)
	default:
		return "as requested"
	}
}

func (o *Optimizer) strategy(date, action string, err error) {
	if o.bus == nil {
		return
	}
	o.bus.Publish(events.StrategyEvent{Date: date, Action: action, Err: err})
}

func (o *Optimizer) observe(status model.SolveStatus, started time.Time) {
	s := status.String()
	solveDuration.WithLabelValues(s).Observe(time.Since(started).Seconds())
	schedulesOptimized.WithLabelValues(s).Inc()
}

func intPtr(v int) *int { return &v }
