package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/gowriprasath-v/train-traffic/core/schedule"
	"github.com/gowriprasath-v/train-traffic/infra/mqtt"
)

type Config struct {
	Station    schedule.Config  `json:"station"`
	Metrics    MetricsConfig    `json:"metrics"`
	Logging    LoggingConfig    `json:"logging"`
	API        APIConfig        `json:"api"`
	MQTT       MQTTConfig       `json:"mqtt"`
	Prediction PredictionConfig `json:"prediction"`
	Monitoring SentryConfig     `json:"monitoring"`
}

// MetricsConfig selects the observability sinks. HistoryPath, when set,
// persists one KPI snapshot per service date in a SQLite database.
type MetricsConfig struct {
	Prometheus  PrometheusConfig `json:"prometheus"`
	Influx      InfluxConfig     `json:"influx"`
	HistoryPath string           `json:"history_path"`
}

type PrometheusConfig struct {
	Enabled bool   `json:"enabled"`
	Addr    string `json:"addr"`
}

type InfluxConfig struct {
	Enabled bool   `json:"enabled"`
	URL     string `json:"url"`
	Token   string `json:"token"`
	Org     string `json:"org"`
	Bucket  string `json:"bucket"`
}

// APIConfig holds the HTTP server settings.
type APIConfig struct {
	Addr string `json:"addr"`
}

// MQTTConfig enables the schedule broadcast publisher.
type MQTTConfig struct {
	Enabled bool        `json:"enabled"`
	Client  mqtt.Config `json:"client"`
}

// PredictionConfig enables the delay prediction hook. The static table maps
// train identifiers to expected delays in minutes.
type PredictionConfig struct {
	Enabled bool           `json:"enabled"`
	Delays  map[string]int `json:"delays"`
	Status  string         `json:"status"`
}

// SentryConfig configures error reporting. An empty DSN disables it.
type SentryConfig struct {
	DSN              string  `json:"dsn"`
	Environment      string  `json:"environment"`
	TracesSampleRate float64 `json:"traces_sample_rate"`
	Release          string  `json:"release"`
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	return unmarshal(k)
}

// LoadDefaults builds a configuration from defaults and environment overrides
// only, for runs without a config file.
func LoadDefaults() (*Config, error) {
	return unmarshal(koanf.New("."))
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	// Optional environment overrides, e.g. TT_STATION__MAX_PLATFORMS=12.
	if err := k.Load(env.Provider("TT_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "tt_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Station.SetDefaults()
	cfg.Logging.SetDefaults()
	cfg.API.SetDefaults()
	if err := cfg.Station.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Logging.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults applies the HTTP defaults.
func (c *APIConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8000"
	}
}
