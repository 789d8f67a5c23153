// Package conflict checks the as-requested schedule for platform
// double-booking. It evaluates the literal requested intervals only; no
// dwell buffer is applied and no resolution is attempted, that is the
// optimizer's job.
package conflict

import (
	"fmt"
	"sort"

	"github.com/gowriprasath-v/train-traffic/core/model"
)

// Conflict records two trains whose requested intervals overlap on the same
// platform.
type Conflict struct {
	Platform       int    `json:"platform"`
	FirstTrainID   string `json:"first_train_id"`
	SecondTrainID  string `json:"second_train_id"`
	FirstDeparture string `json:"first_departure"`
	SecondArrival  string `json:"second_arrival"`
}

// Error aggregates every requested-time conflict in a batch.
type Error struct {
	Conflicts []Conflict
}

func (e *Error) Error() string {
	return fmt.Sprintf("schedule request rejected: %d platform conflicts at requested times", len(e.Conflicts))
}

type occupant struct {
	id       string
	arrival  model.Clock
	departure model.Clock
	order    int
}

// Detect returns every pair of adjacent trains on the same requested
// platform whose requested intervals overlap. Trains with unparseable times
// are ignored here; the validator rejects them before this stage runs.
func Detect(req model.ScheduleRequest) []Conflict {
	byPlatform := make(map[int][]occupant)
	for i, tr := range req.Trains {
		arr, dep, ok := tr.Window()
		if !ok {
			continue
		}
		byPlatform[tr.Platform] = append(byPlatform[tr.Platform], occupant{
			id: tr.TrainID, arrival: arr, departure: dep, order: i,
		})
	}

	platforms := make([]int, 0, len(byPlatform))
	for p := range byPlatform {
		platforms = append(platforms, p)
	}
	sort.Ints(platforms)

	var conflicts []Conflict
	for _, p := range platforms {
		occ := byPlatform[p]
		sort.SliceStable(occ, func(i, j int) bool {
			if occ[i].arrival != occ[j].arrival {
				return occ[i].arrival < occ[j].arrival
			}
			return occ[i].order < occ[j].order
		})
		for i := 1; i < len(occ); i++ {
			prev, cur := occ[i-1], occ[i]
			if prev.departure > cur.arrival {
				conflicts = append(conflicts, Conflict{
					Platform:       p,
					FirstTrainID:   prev.id,
					SecondTrainID:  cur.id,
					FirstDeparture: prev.departure.String(),
					SecondArrival:  cur.arrival.String(),
				})
			}
		}
	}
	return conflicts
}
