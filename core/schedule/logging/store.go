package logging

import (
	"context"
	"time"

	"github.com/gowriprasath-v/train-traffic/core/model"
)

// LogRecord captures one optimization run and its outcome.
type LogRecord struct {
	Timestamp time.Time            `json:"timestamp"`
	Date      string               `json:"date"`
	Trains    int                  `json:"trains"`
	Status    model.SolveStatus    `json:"status"`
	Result    model.ScheduleResult `json:"result"`
}

// LogQuery defines filters for retrieving records.
type LogQuery struct {
	Start   time.Time
	End     time.Time
	Date    string
	TrainID string
}

// LogStore persists LogRecords and supports querying.
type LogStore interface {
	Append(ctx context.Context, rec LogRecord) error
	Query(ctx context.Context, q LogQuery) ([]LogRecord, error)
	Close() error
}

func (q LogQuery) matches(r LogRecord) bool {
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	if q.Date != "" && r.Date != q.Date {
		return false
	}
	if q.TrainID != "" {
		found := false
		for _, t := range r.Result.Trains {
			if t.TrainID == q.TrainID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
