package twin

import (
	"fmt"
	"sync"
	"testing"

	"github.com/gowriprasath-v/train-traffic/core/kpi"
	"github.com/gowriprasath-v/train-traffic/core/model"
	"github.com/gowriprasath-v/train-traffic/infra/logger"
)

func newTwin() *Twin {
	return New(kpi.NewEngine(10, 5, logger.NopLogger{}), logger.NopLogger{})
}

func intPtr(v int) *int { return &v }

func result(date string, trains ...model.OptimizedTrain) model.ScheduleResult {
	return model.ScheduleResult{Date: date, Trains: trains}
}

func TestEmptyTwin(t *testing.T) {
	tw := newTwin()
	if _, ok := tw.Snapshot(); ok {
		t.Fatal("fresh twin must report empty")
	}
	if _, ok := tw.CurrentMetrics(); ok {
		t.Fatal("fresh twin must have no metrics")
	}
}

func TestPublishReplacesWholesale(t *testing.T) {
	tw := newTwin()
	tw.Publish(result("2025-09-01",
		model.OptimizedTrain{TrainID: "A", Arrival: "08:00", Departure: "08:10", Platform: 1, DelayMinutes: intPtr(0)}))
	tw.Publish(result("2025-09-02",
		model.OptimizedTrain{TrainID: "B", Arrival: "09:00", Departure: "09:10", Platform: 2, DelayMinutes: intPtr(0)}))

	snap, ok := tw.Snapshot()
	if !ok {
		t.Fatal("twin should be populated")
	}
	if snap.Date != "2025-09-02" || len(snap.Trains) != 1 || snap.Trains[0].TrainID != "B" {
		t.Fatalf("snapshot not replaced wholesale: %+v", snap)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	tw := newTwin()
	tw.Publish(result("2025-09-01",
		model.OptimizedTrain{TrainID: "A", Arrival: "08:00", Departure: "08:10", Platform: 1}))
	snap, _ := tw.Snapshot()
	snap.Trains[0].TrainID = "mutated"
	again, _ := tw.Snapshot()
	if again.Trains[0].TrainID != "A" {
		t.Fatal("snapshot mutation leaked into the twin")
	}
}

func TestSubscribersReceiveUpdates(t *testing.T) {
	tw := newTwin()
	sub := tw.Subscribe()
	tw.Publish(result("2025-09-01",
		model.OptimizedTrain{TrainID: "A", Arrival: "08:00", Departure: "08:10", Platform: 1, DelayMinutes: intPtr(0)}),
		model.Alert{ID: "1", AlertType: "delay", Message: "test", Level: "warning"})

	up := <-sub
	if up.Schedule.Date != "2025-09-01" {
		t.Fatalf("unexpected update %+v", up)
	}
	if up.Metrics.PunctualityPct != 100 {
		t.Fatalf("metrics not attached: %+v", up.Metrics)
	}
	if len(up.Alerts) != 1 || up.Alerts[0].ID != "1" {
		t.Fatalf("alerts not attached: %+v", up.Alerts)
	}
}

func TestNoReplayForLateSubscribers(t *testing.T) {
	tw := newTwin()
	tw.Publish(result("2025-09-01"))
	sub := tw.Subscribe()
	select {
	case up := <-sub:
		t.Fatalf("late subscriber must not receive earlier publishes: %+v", up)
	default:
	}
}

func TestStalledSubscriberDoesNotBlockPublish(t *testing.T) {
	tw := newTwin()
	tw.Subscribe() // never drained
	done := make(chan struct{})
	go func() {
		for i := 0; i < 50; i++ {
			tw.Publish(result(fmt.Sprintf("2025-09-%02d", i%28+1)))
		}
		close(done)
	}()
	<-done
}

func TestConcurrentReadersAndWriters(t *testing.T) {
	tw := newTwin()
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				tw.Publish(result("2025-09-01",
					model.OptimizedTrain{TrainID: fmt.Sprintf("T%d", w), Arrival: "08:00", Departure: "08:10", Platform: w + 1}))
			}
		}(w)
	}
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				if snap, ok := tw.Snapshot(); ok && len(snap.Trains) != 1 {
					t.Errorf("torn snapshot: %+v", snap)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestRecentAlertsNewestFirst(t *testing.T) {
	tw := newTwin()
	for i := 0; i < 5; i++ {
		tw.AppendAlert(model.Alert{ID: fmt.Sprintf("%d", i)})
	}
	got := tw.RecentAlerts(3)
	if len(got) != 3 || got[0].ID != "4" || got[2].ID != "2" {
		t.Fatalf("unexpected alerts %+v", got)
	}
	if all := tw.RecentAlerts(100); len(all) != 5 {
		t.Fatalf("expected 5 alerts, got %d", len(all))
	}
}
