package solver

import (
	"context"
	"math"
	"sort"
	"sync"
	"sync/atomic"
)

// BranchBound searches platform choices exhaustively, placing each train at
// the earliest feasible start for the chosen platform. The greedy solution
// seeds the incumbent so pruning is effective from the first node. The
// search runs one goroutine per first-level branch and aborts at the context
// deadline, returning the best incumbent found so far.
//
// A solution is reported Optimal only when the whole search space was
// exhausted within budget; equal-cost incumbents are resolved by branch
// order so repeated runs return the same assignment.
type BranchBound struct {
	// Seed produces the initial incumbent. Defaults to Greedy{}.
	Seed Solver
}

type incumbent struct {
	mu   sync.Mutex
	has  bool
	cost float64
	key  int
	asn  []Assignment
}

func (in *incumbent) bound() (float64, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.cost, in.has
}

func (in *incumbent) offer(cost float64, key int, asn []Assignment) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.has && cost > in.cost-costEps && !(math.Abs(cost-in.cost) <= costEps && key < in.key) {
		return
	}
	in.has = true
	in.cost = cost
	in.key = key
	in.asn = append(in.asn[:0], asn...)
}

const costEps = 1e-9

type option struct {
	platform int
	start    int
	cost     float64
}

// Solve implements Solver.
func (b BranchBound) Solve(ctx context.Context, p Problem) (Solution, error) {
	n := len(p.Trains)
	if n == 0 {
		return Solution{Status: Optimal, Assignments: nil}, nil
	}

	ord := p.order()
	inc := &incumbent{}

	seed := b.Seed
	if seed == nil {
		seed = Greedy{}
	}
	if gs, err := seed.Solve(ctx, p); err == nil && gs.Status != NoSolution && complete(gs.Assignments) {
		// the seed loses equal-cost ties against any searched branch
		inc.offer(gs.Objective, int(math.MaxInt32), gs.Assignments)
	}

	var nodes atomic.Int64
	var truncated atomic.Bool

	search := newSearcher(p, ord, inc, &nodes, &truncated)
	rootOpts := search.options(p.Trains[ord[0]], newTimelines(p.Platforms))

	var wg sync.WaitGroup
	for k, opt := range rootOpts {
		wg.Add(1)
		go func(key int, opt option) {
			defer wg.Done()
			st := &searchState{
				lines: newTimelines(p.Platforms),
				asn:   make([]Assignment, n),
				key:   key,
			}
			tv := p.Trains[ord[0]]
			st.lines[opt.platform].insert(opt.start, tv.Duration+p.DwellMinutes)
			st.asn[ord[0]] = Assignment{Platform: opt.platform, Start: opt.start}
			search.dfs(ctx, st, 1, opt.cost)
		}(k, opt)
	}
	wg.Wait()

	cost, has := inc.bound()
	sol := Solution{Nodes: int(nodes.Load())}
	if !has {
		sol.Status = NoSolution
		return sol, nil
	}
	inc.mu.Lock()
	sol.Assignments = append([]Assignment(nil), inc.asn...)
	inc.mu.Unlock()
	sol.Objective = cost
	if truncated.Load() {
		sol.Status = Feasible
	} else {
		sol.Status = Optimal
	}
	return sol, nil
}

type searcher struct {
	p         Problem
	ord       []int
	inc       *incumbent
	nodes     *atomic.Int64
	truncated *atomic.Bool
}

type searchState struct {
	lines []timeline
	asn   []Assignment
	key   int
}

func newSearcher(p Problem, ord []int, inc *incumbent, nodes *atomic.Int64, truncated *atomic.Bool) *searcher {
	return &searcher{p: p, ord: ord, inc: inc, nodes: nodes, truncated: truncated}
}

// options enumerates feasible (platform, earliest start) choices for the
// train, cheapest first. Ties prefer the requested platform, then the lower
// platform number, keeping the search deterministic.
func (s *searcher) options(tv TrainVar, lines []timeline) []option {
	busyLen := tv.Duration + s.p.DwellMinutes
	opts := make([]option, 0, s.p.Platforms)
	for platform := 1; platform <= s.p.Platforms; platform++ {
		start := lines[platform].earliestStart(tv.Release, busyLen)
		if start+tv.Duration > s.p.Horizon {
			continue
		}
		opts = append(opts, option{platform: platform, start: start, cost: s.p.cost(tv, platform, start)})
	}
	sort.SliceStable(opts, func(i, j int) bool {
		if opts[i].cost != opts[j].cost {
			return opts[i].cost < opts[j].cost
		}
		if (opts[i].platform == tv.Platform) != (opts[j].platform == tv.Platform) {
			return opts[i].platform == tv.Platform
		}
		return opts[i].platform < opts[j].platform
	})
	return opts
}

func (s *searcher) dfs(ctx context.Context, st *searchState, depth int, accum float64) {
	s.nodes.Add(1)
	if ctx.Err() != nil {
		s.truncated.Store(true)
		return
	}
	if bound, has := s.inc.bound(); has && accum > bound+costEps {
		return
	}
	if depth == len(s.ord) {
		s.inc.offer(accum, st.key, st.asn)
		return
	}

	tv := s.p.Trains[s.ord[depth]]
	busyLen := tv.Duration + s.p.DwellMinutes
	for _, opt := range s.options(tv, st.lines) {
		if bound, has := s.inc.bound(); has && accum+opt.cost > bound+costEps {
			// options are sorted by cost, nothing cheaper follows
			return
		}
		pos := st.lines[opt.platform].insert(opt.start, busyLen)
		st.asn[s.ord[depth]] = Assignment{Platform: opt.platform, Start: opt.start}
		s.dfs(ctx, st, depth+1, accum+opt.cost)
		st.lines[opt.platform].remove(pos)
		if ctx.Err() != nil {
			s.truncated.Store(true)
			return
		}
	}
}

func complete(asn []Assignment) bool {
	for _, a := range asn {
		if a.Platform == 0 {
			return false
		}
	}
	return true
}
