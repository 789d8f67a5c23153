package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/gowriprasath-v/train-traffic/core/model"
	"github.com/gowriprasath-v/train-traffic/infra/logger"
)

var (
	simulateURL    string
	simulateRounds int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Inject random delays against a running service and re-optimize",
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&simulateURL, "url", "http://localhost:8000", "service base URL")
	simulateCmd.Flags().IntVar(&simulateRounds, "rounds", 0, "number of disruptions to inject, 0 for unlimited")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	log := logger.New("simulate")
	client := &http.Client{Timeout: 10 * time.Second}

	if err := pushSchedule(client, initialSchedule()); err != nil {
		return fmt.Errorf("push initial schedule: %w", err)
	}
	log.Infof("initial schedule pushed and optimized")

	for round := 0; simulateRounds == 0 || round < simulateRounds; round++ {
		select {
		case <-cmd.Context().Done():
			return nil
		default:
		}

		schedule, err := fetchSchedule(client)
		if err != nil {
			log.Errorf("fetch schedule: %v", err)
		} else if disrupted, ok := disrupt(schedule, log); ok {
			if err := pushSchedule(client, disrupted); err != nil {
				log.Errorf("push disrupted schedule: %v", err)
			}
		}

		sleep := time.Duration(5+rand.Intn(11)) * time.Second
		log.Infof("waiting %s before next disruption", sleep)
		select {
		case <-cmd.Context().Done():
			return nil
		case <-time.After(sleep):
		}
	}
	return nil
}

func fetchSchedule(client *http.Client) (model.ScheduleResult, error) {
	resp, err := client.Get(simulateURL + "/api/v1/schedule")
	if err != nil {
		return model.ScheduleResult{}, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return model.ScheduleResult{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	var out struct {
		Schedule model.ScheduleResult `json:"schedule"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return model.ScheduleResult{}, err
	}
	return out.Schedule, nil
}

func pushSchedule(client *http.Client, req model.ScheduleRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return err
	}
	resp, err := client.Post(simulateURL+"/api/v1/optimize", "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

// disrupt delays one random train by 5 to 30 minutes and rebuilds a request
// from the current schedule.
func disrupt(schedule model.ScheduleResult, log logger.Logger) (model.ScheduleRequest, bool) {
	if len(schedule.Trains) == 0 {
		return model.ScheduleRequest{}, false
	}
	req := model.ScheduleRequest{Date: schedule.Date, Trains: make([]model.TrainRequest, len(schedule.Trains))}
	for i, tr := range schedule.Trains {
		req.Trains[i] = model.TrainRequest{
			TrainID:   tr.TrainID,
			Arrival:   tr.Arrival,
			Departure: tr.Departure,
			Priority:  tr.Priority,
			Platform:  tr.Platform,
		}
	}

	i := rand.Intn(len(req.Trains))
	victim := &req.Trains[i]
	delay := 5 + rand.Intn(26)
	arr, dep, ok := victim.Window()
	if !ok {
		return model.ScheduleRequest{}, false
	}
	victim.Arrival = arr.Add(delay).String()
	victim.Departure = dep.Add(delay).String()
	victim.Status = "delayed"
	victim.DelayMinutes = &delay

	log.Warnf("simulating disruption: train %s delayed by %d minutes", victim.TrainID, delay)
	return req, true
}

// initialSchedule mirrors the demo timetable used by the dashboards.
func initialSchedule() model.ScheduleRequest {
	now := time.Now()
	at := func(m int) string {
		t := now.Add(time.Duration(m) * time.Minute)
		return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
	}
	return model.ScheduleRequest{
		Date: now.Format(model.DateLayout),
		Trains: []model.TrainRequest{
			{TrainID: "EXP101", Arrival: at(10), Departure: at(15), Priority: 1, Platform: 1},
			{TrainID: "LOC202", Arrival: at(13), Departure: at(18), Priority: 3, Platform: 1},
			{TrainID: "FRE303", Arrival: at(20), Departure: at(25), Priority: 2, Platform: 2},
			{TrainID: "EXP102", Arrival: at(22), Departure: at(27), Priority: 1, Platform: 2},
		},
	}
}
