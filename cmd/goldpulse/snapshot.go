package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vthang/goldpulse/internal/artifact"
	"github.com/vthang/goldpulse/internal/core"
	"github.com/vthang/goldpulse/internal/logger"
	"github.com/vthang/goldpulse/internal/metrics"
	"github.com/vthang/goldpulse/internal/normalize"
)

var snapshotTimeout time.Duration

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Acquire current prices and archive a snapshot",
	Long: `Fetch exchange rates, the international benchmark, and every national
market, normalize all quotes to VND per gram and per tael, compute the
local premium, and write the snapshot artifact.`,
	RunE: runSnapshot,
}

func init() {
	snapshotCmd.Flags().DurationVar(&snapshotTimeout, "timeout", 2*time.Minute, "overall cycle timeout")
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	store, err := newStorage(cfg)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	reg := metrics.NewRegistry()
	orch := buildOrchestrator(cfg, log, reg)

	ctx, cancel := context.WithTimeout(cmd.Context(), snapshotTimeout)
	defer cancel()

	agg, err := orch.AcquireAll(ctx)
	if err != nil {
		return fmt.Errorf("acquisition failed: %w", err)
	}

	raw := make([]core.RawQuote, 0, len(agg.Benchmark))
	raw = append(raw, agg.Benchmark...)
	for _, quotes := range agg.Markets {
		raw = append(raw, quotes...)
	}

	normalized, normWarnings := normalize.Normalize(raw, agg.Rates)

	premium, premiumErr := normalize.Premium(
		vndPerTael(normalized, core.CountryVietnam),
		vndPerTael(normalized, core.CountryInternational),
	)
	if premiumErr != nil {
		log.Warn("premium unavailable", zap.Error(premiumErr))
	}

	writer := artifact.NewWriter(store)
	if err := writer.WriteSnapshot(ctx, agg, normalized, premium, premiumErr, normWarnings); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	if cfg.Metrics.Enabled {
		if err := reg.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			log.Warn("writing metrics textfile", zap.Error(err))
		}
	}

	fmt.Printf("snapshot %s: %d quotes, %d warnings\n",
		agg.RunID, len(normalized), len(agg.Warnings)+len(normWarnings))
	if premium != nil {
		fmt.Printf("  SJC premium over benchmark: %+.2f%%\n", premium.PremiumPercent)
	} else {
		fmt.Println("  premium: unavailable")
	}

	return nil
}

// vndPerTael returns the first normalized quote for the country, or 0.
func vndPerTael(quotes []core.NormalizedQuote, country core.Country) float64 {
	for _, q := range quotes {
		if q.Country == country && q.VNDPerTael > 0 {
			return q.VNDPerTael
		}
	}
	return 0
}
