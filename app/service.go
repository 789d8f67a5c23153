package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	apischedule "github.com/gowriprasath-v/train-traffic/api/schedule"
	"github.com/gowriprasath-v/train-traffic/config"
	"github.com/gowriprasath-v/train-traffic/core/kpi"
	coremetrics "github.com/gowriprasath-v/train-traffic/core/metrics"
	coremon "github.com/gowriprasath-v/train-traffic/core/monitoring"
	"github.com/gowriprasath-v/train-traffic/core/prediction"
	"github.com/gowriprasath-v/train-traffic/core/schedule"
	"github.com/gowriprasath-v/train-traffic/core/schedule/logging"
	"github.com/gowriprasath-v/train-traffic/core/twin"
	infrakpi "github.com/gowriprasath-v/train-traffic/infra/kpi"
	"github.com/gowriprasath-v/train-traffic/infra/logger"
	"github.com/gowriprasath-v/train-traffic/infra/metrics"
	"github.com/gowriprasath-v/train-traffic/infra/monitoring"
	"github.com/gowriprasath-v/train-traffic/infra/mqtt"
	"github.com/gowriprasath-v/train-traffic/internal/eventbus"
)

// Service wires the scheduling pipeline to its HTTP, MQTT and metrics
// adapters.
type Service struct {
	Manager *schedule.Manager
	Twin    *twin.Twin

	cfg       *config.Config
	bus       eventbus.EventBus
	sink      coremetrics.MetricsSink
	publisher mqtt.Publisher
	store     logging.LogStore
	history   *infrakpi.HistoryStore
	monitor   coremon.Monitor
	log       logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.Prometheus.Enabled {
		sink, err := metrics.NewPromSink()
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.Influx.Enabled {
		in := cfg.Metrics.Influx
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(in.URL, in.Token, in.Org, in.Bucket))
	}
	var history *infrakpi.HistoryStore
	if cfg.Metrics.HistoryPath != "" {
		var err error
		history, err = infrakpi.NewHistoryStore(cfg.Metrics.HistoryPath)
		if err != nil {
			return nil, fmt.Errorf("kpi history store: %w", err)
		}
		sinks = append(sinks, history)
	}
	var sink coremetrics.MetricsSink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	monitor, err := monitoring.NewSentryMonitor(cfg.Monitoring)
	if err != nil {
		return nil, fmt.Errorf("sentry monitor: %w", err)
	}
	coremon.Init(monitor)

	bus := eventbus.New()
	engine := kpi.NewEngine(cfg.Station.MaxPlatforms, cfg.Station.OnTimeMinutes, logger.New("kpi"))
	tw := twin.New(engine, logger.New("twin"))

	var pred prediction.Engine
	if cfg.Prediction.Enabled {
		pred = prediction.MockEngine{Delays: cfg.Prediction.Delays, Status: cfg.Prediction.Status}
	}

	manager, err := schedule.NewManager(cfg.Station, tw, sink, bus, pred, logger.New("schedule"))
	if err != nil {
		return nil, fmt.Errorf("schedule manager: %w", err)
	}

	store, err := newLogStore(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("run log store: %w", err)
	}
	manager.SetLogStore(store)

	var pub mqtt.Publisher
	if cfg.MQTT.Enabled {
		pub, err = mqtt.NewPahoPublisher(cfg.MQTT.Client)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
	}

	return &Service{
		Manager:   manager,
		Twin:      tw,
		cfg:       cfg,
		bus:       bus,
		sink:      sink,
		publisher: pub,
		store:     store,
		history:   history,
		monitor:   monitor,
		log:       logg,
	}, nil
}

func newLogStore(cfg config.LoggingConfig) (logging.LogStore, error) {
	switch cfg.Backend {
	case "sqlite":
		return logging.NewSQLiteStore(cfg.Path)
	default:
		if cfg.MaxSizeMB > 0 {
			return logging.NewRotatingJSONLStore(cfg.Path, cfg.MaxSizeMB, cfg.MaxBackups, cfg.MaxAgeDays)
		}
		return logging.NewJSONLStore(cfg.Path)
	}
}

// Run starts the adapters and the HTTP server, blocking until the context is
// cancelled.
func (s *Service) Run(ctx context.Context) error {
	metrics.StartEventCollector(ctx, s.bus, s.sink)
	if s.publisher != nil {
		mqtt.StartSchedulePublisher(ctx, s.Twin, s.publisher, s.log)
	}
	if s.cfg.Metrics.Prometheus.Enabled {
		go func() {
			defer coremon.Recover()
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.Prometheus.Addr); err != nil {
				coremon.CaptureException(err, map[string]string{"component": "prom_server"})
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	mux := http.NewServeMux()
	mux.Handle("/", apischedule.NewHandler(s.Manager, s.Twin, logger.New("api")))
	mux.Handle("/api/v1/logs", apischedule.NewLogHandler(s.store, ""))
	if s.history != nil {
		mux.Handle("/api/v1/metrics/history", apischedule.NewKPIHistoryHandler(s.history))
	}
	srv := &http.Server{Addr: s.cfg.API.Addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("http shutdown: %v", err)
		}
	}()

	s.log.Infof("listening on %s", s.cfg.API.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		coremon.CaptureException(err, map[string]string{"component": "http_server"})
		return err
	}
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.publisher != nil {
		s.publisher.Disconnect()
	}
	s.Twin.Close()
	if s.bus != nil {
		s.bus.Close()
	}
	if s.history != nil {
		_ = s.history.Close()
	}
	err := s.Manager.Close()
	s.monitor.Flush(2 * time.Second)
	return err
}
