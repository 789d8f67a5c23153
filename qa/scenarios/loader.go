// Package scenarios runs YAML-defined scheduling scenarios end to end through
// the optimization pipeline. Each *.yaml file in this directory describes one
// incoming batch and the outcome it must produce.
package scenarios

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gowriprasath-v/train-traffic/core/model"
)

type TrainDef struct {
	ID           string `yaml:"id"`
	Arrival      string `yaml:"arrival"`
	Departure    string `yaml:"departure"`
	Priority     int    `yaml:"priority"`
	Platform     int    `yaml:"platform"`
	Scheduled    string `yaml:"scheduled,omitempty"`
	Status       string `yaml:"status,omitempty"`
	DelayMinutes *int   `yaml:"delay_minutes,omitempty"`
}

func (t TrainDef) ToModel() model.TrainRequest {
	req := model.TrainRequest{
		TrainID:      t.ID,
		Arrival:      t.Arrival,
		Departure:    t.Departure,
		Priority:     t.Priority,
		Platform:     t.Platform,
		Status:       t.Status,
		DelayMinutes: t.DelayMinutes,
	}
	if t.Scheduled != "" {
		s := t.Scheduled
		req.Scheduled = &s
	}
	return req
}

// Expected states the outcome a scenario must produce. Zero values mean
// "don't care" except Scheduled, which is always checked.
type Expected struct {
	Scheduled       int            `yaml:"scheduled"`
	Rejected        bool           `yaml:"rejected,omitempty"`
	MaxTotalDelay   *int           `yaml:"max_total_delay,omitempty"`
	PlatformChanges *int           `yaml:"platform_changes,omitempty"`
	Statuses        map[string]int `yaml:"statuses,omitempty"`
	Alerts          *int           `yaml:"alerts,omitempty"`
}

type Scenario struct {
	Name         string         `yaml:"name"`
	Description  string         `yaml:"description,omitempty"`
	Date         string         `yaml:"date"`
	MaxPlatforms int            `yaml:"max_platforms,omitempty"`
	Dwell        int            `yaml:"dwell_minutes,omitempty"`
	Delays       map[string]int `yaml:"predicted_delays,omitempty"`
	Trains       []TrainDef     `yaml:"trains"`
	Expected     Expected       `yaml:"expected"`
}

func (s *Scenario) Request() model.ScheduleRequest {
	req := model.ScheduleRequest{Date: s.Date}
	for _, t := range s.Trains {
		req.Trains = append(req.Trains, t.ToModel())
	}
	return req
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}
