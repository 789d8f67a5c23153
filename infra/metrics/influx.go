package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/gowriprasath-v/train-traffic/core/metrics"
	"github.com/gowriprasath-v/train-traffic/infra/logger"
)

// InfluxSink writes scheduling events to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordScheduleResult writes each train assignment as line protocol events.
func (s *InfluxSink) RecordScheduleResult(records []coremetrics.ScheduleRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, r := range records {
		p := write.NewPointWithMeasurement("schedule_event").
			AddTag("train_id", r.TrainID).
			AddTag("date", r.Date).
			AddTag("platform", strconv.Itoa(r.Platform)).
			AddTag("status", r.Status).
			AddTag("reassigned", strconv.FormatBool(r.PlatformChanged)).
			AddTag("component", "schedule_manager").
			AddField("delay_minutes", r.DelayMinutes).
			AddField("requested_arrival", r.RequestedArr).
			AddField("assigned_arrival", r.AssignedArr).
			SetTime(r.SolveTime)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// RecordKPI persists a computed KPI set.
func (s *InfluxSink) RecordKPI(ev coremetrics.KPIEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("station_kpi").
		AddTag("date", ev.Date).
		AddTag("component", "kpi_engine").
		AddField("throughput_trains_per_hr", round3(ev.Metrics.ThroughputTrainsPerHour)).
		AddField("avg_delay_minutes", round3(ev.Metrics.AvgDelayMinutes)).
		AddField("platform_utilization_pct", round3(ev.Metrics.PlatformUtilizationPct)).
		AddField("punctuality_pct", round3(ev.Metrics.PunctualityPct)).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordAlert writes an emitted alert.
func (s *InfluxSink) RecordAlert(ev coremetrics.AlertEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("alert_raised").
		AddTag("alert_type", ev.Alert.AlertType).
		AddTag("level", ev.Alert.Level).
		AddTag("component", "alert_rules").
		AddField("message", ev.Alert.Message).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordSolve records an optimization run outcome.
func (s *InfluxSink) RecordSolve(ev coremetrics.SolveEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("solve_completed").
		AddTag("date", ev.Date).
		AddTag("status", ev.Status.String()).
		AddTag("component", "schedule_manager").
		AddField("trains", ev.Trains).
		AddField("total_delay_minutes", ev.TotalDelay).
		AddField("reassigned", ev.Reassigned).
		AddField("objective", round3(ev.Objective)).
		AddField("latency_ms", round3(ev.SolveLatency.Seconds()*1000)).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying InfluxDB client.
func (s *InfluxSink) Close() {
	s.client.Close()
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
