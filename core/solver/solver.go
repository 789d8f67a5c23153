// Package solver contains the constraint-solving capability used by the
// schedule optimizer. The solver operates on an abstract problem of trains
// competing for platforms over a bounded time horizon; it knows nothing about
// wire formats or station configuration.
//
// Two implementations are provided. Greedy places trains one by one at the
// cheapest feasible slot and is always fast. BranchBound explores alternative
// platform choices exhaustively under a wall-clock budget, using the greedy
// result as its initial incumbent. Both respect the hard no-overlap
// constraint including the dwell buffer.
package solver

import "context"

// TrainVar is one decision variable of the problem. Times are minutes since
// midnight.
type TrainVar struct {
	ID string
	// Release is the requested arrival; the assigned start may never be
	// earlier than this.
	Release int
	// Duration is the requested departure minus arrival, preserved as-is.
	Duration int
	// Platform is the requested platform, 1-based.
	Platform int
	// Weight scales the train's contribution to the objective.
	Weight float64
}

// Problem bundles the variables with the station constraints and objective
// coefficients.
type Problem struct {
	Trains []TrainVar
	// Platforms is the number of usable platforms.
	Platforms int
	// DwellMinutes is the idle buffer required on a platform after each
	// departure before the platform may be reused.
	DwellMinutes int
	// Horizon is the upper bound on assigned departure times.
	Horizon int
	// DelayWeight and MoveWeight are the per-minute delay cost and the
	// flat platform-reassignment cost in the objective.
	DelayWeight float64
	MoveWeight  float64
}

// Assignment is the solver's decision for one train. Platform 0 marks a
// train the solver could not place; callers degrade such trains to their
// requested values.
type Assignment struct {
	Platform int
	Start    int
}

// Status reports the quality of a solution.
type Status int

const (
	// Optimal means the search space was exhausted within budget.
	Optimal Status = iota
	// Feasible means the assignment respects all constraints but was not
	// proven best (budget hit, or heuristic construction).
	Feasible
	// NoSolution means no complete feasible assignment was found.
	NoSolution
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "optimal"
	case Feasible:
		return "feasible"
	default:
		return "no_solution"
	}
}

// Solution is the outcome of a solve call. Assignments is parallel to
// Problem.Trains.
type Solution struct {
	Status      Status
	Assignments []Assignment
	Objective   float64
	// Nodes counts search nodes expanded, for diagnostics.
	Nodes int
}

// Solver is the pluggable solving capability. Implementations must honour
// the context deadline and must never block past it.
type Solver interface {
	Solve(ctx context.Context, p Problem) (Solution, error)
}

// cost is the objective contribution of placing train tv at start on the
// given platform.
func (p Problem) cost(tv TrainVar, platform, start int) float64 {
	c := p.DelayWeight * float64(start-tv.Release)
	if platform != tv.Platform {
		c += p.MoveWeight
	}
	return tv.Weight * c
}

// order returns train indices sorted by descending weight; equal weights
// keep input order so repeated runs are stable.
func (p Problem) order() []int {
	idx := make([]int, len(p.Trains))
	for i := range idx {
		idx[i] = i
	}
	// insertion sort keeps the tie-break stable without an extra key
	for i := 1; i < len(idx); i++ {
		for j := i; j > 0 && p.Trains[idx[j]].Weight > p.Trains[idx[j-1]].Weight; j-- {
			idx[j], idx[j-1] = idx[j-1], idx[j]
		}
	}
	return idx
}
