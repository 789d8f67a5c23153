package solver

import "context"

// Greedy places trains in weight order at the cheapest feasible slot. It
// prefers the requested platform on equal cost, then the lower delay, then
// the lower platform number, so results are deterministic. A train that fits
// on no platform within the horizon is marked unplaced instead of failing
// the whole batch.
type Greedy struct{}

// Solve implements Solver. Greedy never proves optimality; a complete
// assignment is reported as Feasible.
func (Greedy) Solve(ctx context.Context, p Problem) (Solution, error) {
	sol := Solution{Status: Feasible, Assignments: make([]Assignment, len(p.Trains))}
	if len(p.Trains) == 0 {
		sol.Status = Optimal
		return sol, nil
	}

	lines := newTimelines(p.Platforms)
	placedAll := true
	for _, i := range p.order() {
		if err := ctx.Err(); err != nil {
			return Solution{Status: NoSolution}, err
		}
		tv := p.Trains[i]
		busyLen := tv.Duration + p.DwellMinutes
		best := Assignment{}
		bestCost := 0.0
		found := false
		for platform := 1; platform <= p.Platforms; platform++ {
			start := lines[platform].earliestStart(tv.Release, busyLen)
			if start+tv.Duration > p.Horizon {
				continue
			}
			c := p.cost(tv, platform, start)
			if !found || c < bestCost || (c == bestCost && better(tv, platform, start, best)) {
				best = Assignment{Platform: platform, Start: start}
				bestCost = c
				found = true
			}
		}
		if !found {
			placedAll = false
			continue
		}
		lines[best.Platform].insert(best.Start, busyLen)
		sol.Assignments[i] = best
		sol.Objective += bestCost
		sol.Nodes++
	}
	if !placedAll && !anyPlaced(sol.Assignments) {
		return Solution{Status: NoSolution, Assignments: sol.Assignments}, nil
	}
	return sol, nil
}

// better breaks cost ties: requested platform wins, then the earlier start,
// then the lower platform number.
func better(tv TrainVar, platform, start int, cur Assignment) bool {
	if (platform == tv.Platform) != (cur.Platform == tv.Platform) {
		return platform == tv.Platform
	}
	if start != cur.Start {
		return start < cur.Start
	}
	return platform < cur.Platform
}

func anyPlaced(asn []Assignment) bool {
	for _, a := range asn {
		if a.Platform != 0 {
			return true
		}
	}
	return false
}
