package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	corekpi "github.com/gowriprasath-v/train-traffic/core/kpi"
	"github.com/gowriprasath-v/train-traffic/core/schedule/logging"
	infrakpi "github.com/gowriprasath-v/train-traffic/infra/kpi"
	"github.com/gowriprasath-v/train-traffic/infra/logger"
	"github.com/gowriprasath-v/train-traffic/jobs/kpihistory"
)

var backfillDB string

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Rebuild the daily KPI history from the optimization run log",
	RunE:  runBackfill,
}

func init() {
	backfillCmd.Flags().StringVar(&backfillDB, "db", "", "KPI history database path (defaults to metrics.history_path)")
	rootCmd.AddCommand(backfillCmd)
}

func runBackfill(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dbPath := backfillDB
	if dbPath == "" {
		dbPath = cfg.Metrics.HistoryPath
	}
	if dbPath == "" {
		return fmt.Errorf("no history database configured, set --db or metrics.history_path")
	}

	var store logging.LogStore
	switch cfg.Logging.Backend {
	case "sqlite":
		store, err = logging.NewSQLiteStore(cfg.Logging.Path)
	default:
		store, err = logging.NewJSONLStore(cfg.Logging.Path)
	}
	if err != nil {
		return fmt.Errorf("open run log: %w", err)
	}
	defer func() { _ = store.Close() }()

	history, err := store.Query(cmd.Context(), logging.LogQuery{})
	if err != nil {
		return fmt.Errorf("read run log: %w", err)
	}

	db, err := infrakpi.NewHistoryStore(dbPath)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer func() { _ = db.Close() }()

	engine := corekpi.NewEngine(cfg.Station.MaxPlatforms, cfg.Station.OnTimeMinutes, logger.New("backfill"))
	if err := kpihistory.Backfill(db, engine, history); err != nil {
		return err
	}
	fmt.Printf("backfilled %d runs into %s\n", len(history), dbPath)
	return nil
}
