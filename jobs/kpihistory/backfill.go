// Package kpihistory rebuilds the daily KPI history from persisted
// optimization run logs.
package kpihistory

import (
	corekpi "github.com/gowriprasath-v/train-traffic/core/kpi"
	coremetrics "github.com/gowriprasath-v/train-traffic/core/metrics"
	"github.com/gowriprasath-v/train-traffic/core/schedule/logging"
)

// Backfill recomputes KPIs for every logged run and records them. Records are
// processed in log order, so with an upserting recorder the last run of each
// date wins, matching what live recording would have produced.
func Backfill(rec coremetrics.KPIRecorder, engine *corekpi.Engine, history []logging.LogRecord) error {
	for _, h := range history {
		m := engine.Compute(h.Result)
		ev := coremetrics.KPIEvent{Date: h.Date, Metrics: m, Time: h.Timestamp}
		if err := rec.RecordKPI(ev); err != nil {
			return err
		}
	}
	return nil
}
