package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vthang/goldpulse/internal/artifact"
	"github.com/vthang/goldpulse/internal/logger"
	"github.com/vthang/goldpulse/internal/series"
)

var historyDays int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Fetch benchmark price history and archive the series",
	Long: `Download daily international benchmark prices, backfill VND columns
with the configured historical rate, and write the series artifact.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyDays, "days", 0, "days of history (default from config)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	days := historyDays
	if days <= 0 {
		days = cfg.Analysis.HistoryDays
	}

	store, err := newStorage(cfg)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	orch := buildOrchestrator(cfg, log, nil)

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	points, err := orch.FetchBenchmarkHistory(ctx, days)
	if err != nil {
		return fmt.Errorf("fetching history: %w", err)
	}

	s, err := series.New(points)
	if err != nil {
		return fmt.Errorf("building series: %w", err)
	}
	s, err = series.Backfill(s, cfg.Rates.HistoricalUSDVND)
	if err != nil {
		return fmt.Errorf("backfilling series: %w", err)
	}

	writer := artifact.NewWriter(store)
	if err := writer.WriteSeries(ctx, s); err != nil {
		return fmt.Errorf("writing series: %w", err)
	}

	fmt.Printf("archived %d daily points (%s to %s)\n",
		len(s),
		s[0].Date.Format("2006-01-02"),
		s[len(s)-1].Date.Format("2006-01-02"),
	)

	return nil
}
