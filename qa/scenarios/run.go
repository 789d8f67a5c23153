package scenarios

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	corekpi "github.com/gowriprasath-v/train-traffic/core/kpi"
	"github.com/gowriprasath-v/train-traffic/core/prediction"
	"github.com/gowriprasath-v/train-traffic/core/schedule"
	"github.com/gowriprasath-v/train-traffic/core/twin"
	"github.com/gowriprasath-v/train-traffic/infra/logger"
	"github.com/gowriprasath-v/train-traffic/infra/metrics"
	"github.com/gowriprasath-v/train-traffic/infra/mqtt"
	"github.com/gowriprasath-v/train-traffic/internal/eventbus"
)

func RunScenario(t *testing.T, sc *Scenario) {
	reg := prometheus.NewRegistry()
	sink, err := metrics.NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("prom sink: %v", err)
	}

	cfg := schedule.Config{MaxPlatforms: sc.MaxPlatforms, DwellMinutes: sc.Dwell}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("config: %v", err)
	}

	bus := eventbus.New()
	defer bus.Close()

	engine := corekpi.NewEngine(cfg.MaxPlatforms, cfg.OnTimeMinutes, logger.NopLogger{})
	tw := twin.New(engine, logger.NopLogger{})
	defer tw.Close()

	pub := mqtt.NewMockPublisher()
	mqtt.StartSchedulePublisher(context.Background(), tw, pub, logger.NopLogger{})

	var pred prediction.Engine
	if len(sc.Delays) > 0 {
		pred = prediction.MockEngine{Delays: sc.Delays}
	}

	mgr, err := schedule.NewManager(cfg, tw, sink, bus, pred, logger.NopLogger{})
	if err != nil {
		t.Fatalf("manager: %v", err)
	}
	defer func() { _ = mgr.Close() }()

	res, err := mgr.Process(context.Background(), sc.Request())
	if sc.Expected.Rejected {
		if err == nil {
			t.Fatalf("expected rejection, got %d scheduled trains", len(res.Trains))
		}
		return
	}
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	if len(res.Trains) != sc.Expected.Scheduled {
		t.Errorf("expected %d scheduled trains, got %d", sc.Expected.Scheduled, len(res.Trains))
	}

	totalDelay := 0
	changes := 0
	statuses := map[string]int{}
	for _, tr := range res.Trains {
		if tr.DelayMinutes != nil {
			totalDelay += *tr.DelayMinutes
		}
		if tr.PlatformChanged {
			changes++
		}
		statuses[tr.Status]++
	}
	if m := sc.Expected.MaxTotalDelay; m != nil && totalDelay > *m {
		t.Errorf("total delay %d exceeds %d", totalDelay, *m)
	}
	if c := sc.Expected.PlatformChanges; c != nil && changes != *c {
		t.Errorf("expected %d platform changes, got %d", *c, changes)
	}
	for status, want := range sc.Expected.Statuses {
		if statuses[status] != want {
			t.Errorf("expected %d trains with status %s, got %d", want, status, statuses[status])
		}
	}
	if a := sc.Expected.Alerts; a != nil {
		alerts := tw.RecentAlerts(100)
		if len(alerts) != *a {
			t.Errorf("expected %d alerts, got %d", *a, len(alerts))
		}
	}

	deadline := time.Now().Add(time.Second)
	for len(pub.Published()) == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if len(pub.Published()) != 1 {
		t.Errorf("expected 1 published update, got %d", len(pub.Published()))
	}
}
