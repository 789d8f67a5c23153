package kpi

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	corekpi "github.com/gowriprasath-v/train-traffic/core/kpi"
	coremetrics "github.com/gowriprasath-v/train-traffic/core/metrics"
)

// HistoryStore persists one KPI snapshot per service date in SQLite. A later
// snapshot for the same date overwrites the earlier one, so the table always
// holds the KPIs of the last published schedule of each day.
type HistoryStore struct {
	db *sql.DB
}

// Snapshot is one persisted KPI row.
type Snapshot struct {
	Date       string          `json:"date"`
	Metrics    corekpi.Metrics `json:"metrics"`
	RecordedAt time.Time       `json:"recorded_at"`
}

// NewHistoryStore opens or creates the database and ensures schema.
func NewHistoryStore(path string) (*HistoryStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS station_kpi (
        date TEXT PRIMARY KEY,
        throughput REAL,
        avg_delay REAL,
        utilization REAL,
        punctuality REAL,
        recorded_at INTEGER
    );`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &HistoryStore{db: db}, nil
}

// RecordKPI upserts the snapshot for the event's service date.
func (s *HistoryStore) RecordKPI(ev coremetrics.KPIEvent) error {
	ts := ev.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := s.db.Exec(`INSERT INTO station_kpi (date, throughput, avg_delay, utilization, punctuality, recorded_at)
        VALUES (?, ?, ?, ?, ?, ?)
        ON CONFLICT(date) DO UPDATE SET
            throughput = excluded.throughput,
            avg_delay = excluded.avg_delay,
            utilization = excluded.utilization,
            punctuality = excluded.punctuality,
            recorded_at = excluded.recorded_at`,
		ev.Date, ev.Metrics.ThroughputTrainsPerHour, ev.Metrics.AvgDelayMinutes,
		ev.Metrics.PlatformUtilizationPct, ev.Metrics.PunctualityPct, ts.UTC().Unix())
	return err
}

// Query returns snapshots for dates in the inclusive range [start,end].
// Empty bounds are open on that side.
func (s *HistoryStore) Query(start, end string) ([]Snapshot, error) {
	if end == "" {
		end = "9999-12-31"
	}
	rows, err := s.db.Query(`SELECT date, throughput, avg_delay, utilization, punctuality, recorded_at
        FROM station_kpi WHERE date >= ? AND date <= ? ORDER BY date`, start, end)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []Snapshot
	for rows.Next() {
		var snap Snapshot
		var ts int64
		if err := rows.Scan(&snap.Date, &snap.Metrics.ThroughputTrainsPerHour,
			&snap.Metrics.AvgDelayMinutes, &snap.Metrics.PlatformUtilizationPct,
			&snap.Metrics.PunctualityPct, &ts); err != nil {
			return nil, err
		}
		snap.RecordedAt = time.Unix(ts, 0).UTC()
		res = append(res, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// RecordScheduleResult is a no-op; the store keeps only KPI snapshots.
func (s *HistoryStore) RecordScheduleResult([]coremetrics.ScheduleRecord) error { return nil }

// Close closes the underlying database.
func (s *HistoryStore) Close() error { return s.db.Close() }
