package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vthang/goldpulse/internal/artifact"
	"github.com/vthang/goldpulse/internal/logger"
)

var analyzeThreshold float64

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Detect drawdowns in the archived series",
	Long: `Read the archived benchmark series, detect peak-trough-recovery
cycles past the threshold, compute descriptive statistics, and write
the analysis artifact.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().Float64Var(&analyzeThreshold, "threshold", 0, "minimum drawdown percent (default from config)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	threshold := analyzeThreshold
	if threshold <= 0 {
		threshold = cfg.Analysis.DrawdownThresholdPct
	}

	store, err := newStorage(cfg)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	writer := artifact.NewWriter(store)

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	s, err := writer.ReadSeries(ctx)
	if err != nil {
		return fmt.Errorf("reading series (run 'goldpulse history' first): %w", err)
	}

	analysis, err := writer.WriteAnalysis(ctx, s, threshold)
	if err != nil {
		return fmt.Errorf("writing analysis: %w", err)
	}

	fmt.Printf("analyzed %d points at threshold %.1f%%\n", len(s), threshold)
	fmt.Printf("  drawdowns:  %d (%d recovered, worst %.2f%%)\n",
		analysis.Summary.Count, analysis.Summary.Recovered, analysis.Summary.WorstPct)
	fmt.Printf("  volatility: %.2f%% daily\n", analysis.Stats.Volatility)
	fmt.Printf("  percentile: current price above %.1f%% of history\n",
		analysis.Stats.PercentileRank)

	return nil
}
