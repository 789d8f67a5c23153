// Package kpi derives aggregate station metrics from a finalized schedule.
// The computation is a pure function of its input: metrics are always
// recomputed, never stored, and a malformed train entry is skipped with a
// warning instead of aborting the aggregate.
package kpi

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/gowriprasath-v/train-traffic/core/logger"
	"github.com/gowriprasath-v/train-traffic/core/model"
)

// Metrics are the station KPIs displayed by the frontend.
type Metrics struct {
	ThroughputTrainsPerHour float64 `json:"throughput_trains_per_hr"`
	AvgDelayMinutes         float64 `json:"avg_delay_minutes"`
	PlatformUtilizationPct  float64 `json:"platform_utilization_pct"`
	PunctualityPct          float64 `json:"punctuality_pct"`
}

// Engine computes Metrics against the station configuration.
type Engine struct {
	// MaxPlatforms is the configured platform capacity used for the
	// utilization percentage.
	MaxPlatforms int
	// PunctualityMinutes is the largest delay still counted as punctual.
	PunctualityMinutes int

	log logger.Logger
}

// NewEngine creates a metrics engine.
func NewEngine(maxPlatforms, punctualityMinutes int, log logger.Logger) *Engine {
	if maxPlatforms < 1 {
		maxPlatforms = 1
	}
	return &Engine{MaxPlatforms: maxPlatforms, PunctualityMinutes: punctualityMinutes, log: log}
}

// Compute derives all KPIs from the schedule. An empty schedule yields all
// zeros.
func (e *Engine) Compute(res model.ScheduleResult) Metrics {
	if len(res.Trains) == 0 {
		return Metrics{}
	}

	var (
		earliest, latest model.Clock
		haveTimes        bool
		delays           []float64
		punctual         int
		platforms        = map[int]bool{}
	)

	for _, tr := range res.Trains {
		arr, arrErr := model.ParseClock(tr.Arrival)
		dep, depErr := model.ParseClock(tr.Departure)
		if arrErr != nil || depErr != nil {
			e.log.Warnf("kpi: train %s has malformed times, skipping from span", tr.TrainID)
		} else {
			if !haveTimes {
				earliest, latest = arr, dep
				haveTimes = true
			}
			if arr < earliest {
				earliest = arr
			}
			if dep > latest {
				latest = dep
			}
		}

		if tr.Platform > 0 {
			platforms[tr.Platform] = true
		}

		if tr.DelayMinutes != nil {
			d := float64(*tr.DelayMinutes)
			delays = append(delays, d)
			if *tr.DelayMinutes <= e.PunctualityMinutes {
				punctual++
			}
		} else if onTimeStatus(tr.Status) {
			// trains without numeric delay participate in punctuality
			// only, via their status text
			punctual++
		}
	}

	operatingHours := 1.0
	if haveTimes {
		span := float64(latest-earliest) / 60.0
		operatingHours = math.Max(span, 1.0)
	}

	m := Metrics{
		ThroughputTrainsPerHour: round2(float64(len(res.Trains)) / operatingHours),
		PlatformUtilizationPct:  round2(float64(len(platforms)) / float64(e.MaxPlatforms) * 100),
		PunctualityPct:          round2(float64(punctual) / float64(len(res.Trains)) * 100),
	}
	if len(delays) > 0 {
		m.AvgDelayMinutes = round2(stat.Mean(delays, nil))
	}
	return m
}

// onTimeStatus mirrors the status text convention of the dashboards: any
// status mentioning "on" or "time" counts as punctual.
func onTimeStatus(status string) bool {
	s := strings.ToLower(status)
	return strings.Contains(s, "on") || strings.Contains(s, "time")
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
