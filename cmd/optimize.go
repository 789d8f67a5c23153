package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gowriprasath-v/train-traffic/core/kpi"
	"github.com/gowriprasath-v/train-traffic/core/model"
	"github.com/gowriprasath-v/train-traffic/core/schedule"
	"github.com/gowriprasath-v/train-traffic/core/twin"
	"github.com/gowriprasath-v/train-traffic/infra/logger"
	"github.com/gowriprasath-v/train-traffic/pkg/export"
)

var (
	optimizeFile   string
	optimizeOut    string
	optimizeFormat string
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Run one optimization from a JSON request file and print the result",
	RunE:  runOptimize,
}

func init() {
	optimizeCmd.Flags().StringVarP(&optimizeFile, "file", "f", "", "schedule request JSON file")
	_ = optimizeCmd.MarkFlagRequired("file")
	optimizeCmd.Flags().StringVarP(&optimizeOut, "out", "o", "", "write the optimized schedule to this file instead of stdout")
	optimizeCmd.Flags().StringVar(&optimizeFormat, "format", "json", "export format: json or csv")
	rootCmd.AddCommand(optimizeCmd)
}

func runOptimize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(optimizeFile)
	if err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	var req model.ScheduleRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}

	log := logger.New("optimize")
	engine := kpi.NewEngine(cfg.Station.MaxPlatforms, cfg.Station.OnTimeMinutes, log)
	tw := twin.New(engine, log)
	manager, err := schedule.NewManager(cfg.Station, tw, nil, nil, nil, log)
	if err != nil {
		return err
	}
	defer func() { _ = manager.Close() }()

	res, err := manager.Process(cmd.Context(), req)
	if err != nil {
		return err
	}
	metrics := engine.Compute(res)

	if optimizeOut != "" {
		f, err := os.Create(optimizeOut)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer func() { _ = f.Close() }()
		switch optimizeFormat {
		case "csv":
			return export.WriteCSV(f, res)
		case "json":
			return export.WriteJSON(f, res)
		default:
			return fmt.Errorf("unknown format %q", optimizeFormat)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Schedule model.ScheduleResult `json:"schedule"`
		Metrics  kpi.Metrics          `json:"metrics"`
	}{res, metrics})
}
