package artifact

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/vthang/goldpulse/internal/acquire"
	"github.com/vthang/goldpulse/internal/analysis"
	"github.com/vthang/goldpulse/internal/core"
	"github.com/vthang/goldpulse/internal/normalize"
	"github.com/vthang/goldpulse/internal/series"
	"github.com/vthang/goldpulse/internal/storage/archive"
)

// Snapshot is the canonical quote artifact consumed by the dashboard
// and AI layers. A missing premium is an explicit marker, never a zero.
type Snapshot struct {
	RunID              string                 `json:"run_id"`
	Time               time.Time              `json:"time"`
	Quotes             []core.NormalizedQuote `json:"quotes"`
	Rates              core.ExchangeRateTable `json:"rates"`
	Premium            *core.PremiumResult    `json:"premium,omitempty"`
	PremiumUnavailable string                 `json:"premium_unavailable,omitempty"`
	Warnings           []string               `json:"warnings"`
}

// StatsBlock carries the descriptive statistics of the current series.
// Moving averages that are undefined for the series length are omitted
// rather than zero-filled.
type StatsBlock struct {
	Volatility     float64  `json:"volatility_pct"`
	MA50           *float64 `json:"ma50,omitempty"`
	MA200          *float64 `json:"ma200,omitempty"`
	PercentileRank float64  `json:"percentile_rank"`
	CurrentPrice   float64  `json:"current_price"`
}

// Analysis is the drawdown artifact consumed by downstream reporting.
type Analysis struct {
	GeneratedAt  time.Time            `json:"generated_at"`
	ThresholdPct float64              `json:"threshold_pct"`
	Summary      core.DrawdownSummary `json:"summary"`
	Events       []core.Drawdown      `json:"events"`
	Stats        StatsBlock           `json:"stats"`
}

// Writer persists cycle artifacts. Nothing is written until the full
// artifact is assembled, so there is no torn state to reconcile.
type Writer struct {
	store archive.Storage
}

// NewWriter creates an artifact writer on top of a storage backend.
func NewWriter(store archive.Storage) *Writer {
	return &Writer{store: store}
}

// WriteSnapshot assembles and persists the quote snapshot for one
// completed cycle.
func (w *Writer) WriteSnapshot(ctx context.Context, agg *acquire.Aggregate, quotes []core.NormalizedQuote, premium *core.PremiumResult, premiumErr error, normWarnings []normalize.Warning) error {
	snap := Snapshot{
		RunID:    agg.RunID,
		Time:     agg.Time,
		Quotes:   quotes,
		Rates:    agg.Rates,
		Premium:  premium,
		Warnings: make([]string, 0, len(agg.Warnings)+len(normWarnings)),
	}
	if premium == nil {
		msg := "premium unavailable"
		if premiumErr != nil {
			msg = premiumErr.Error()
		}
		snap.PremiumUnavailable = msg
	}
	for _, warn := range agg.Warnings {
		snap.Warnings = append(snap.Warnings, fmt.Sprintf("market %s: %s", warn.Market, warn.Message))
	}
	for _, warn := range normWarnings {
		snap.Warnings = append(snap.Warnings, fmt.Sprintf("quote %s: %s", warn.Source, warn.Message))
	}

	path := fmt.Sprintf("snapshots/%s/snapshot.json", agg.Time.UTC().Format("2006-01-02"))
	return w.writeJSON(ctx, path, snap)
}

// WriteSeries persists the chronological price series as CSV.
func (w *Writer) WriteSeries(ctx context.Context, s core.HistoricalSeries) error {
	data, err := series.MarshalCSV(s)
	if err != nil {
		return err
	}
	if err := w.store.Write(ctx, "history/series.csv", data); err != nil {
		return core.WrapError(core.ErrStorageFailed, err)
	}
	return nil
}

// ReadSeries loads the persisted price series.
func (w *Writer) ReadSeries(ctx context.Context) (core.HistoricalSeries, error) {
	data, err := w.store.Read(ctx, "history/series.csv")
	if err != nil {
		return nil, core.WrapError(core.ErrStorageFailed, err)
	}
	return series.UnmarshalCSV(data)
}

// WriteAnalysis runs detection and statistics over the series and
// persists the combined result. An empty series fails loudly upstream
// in Detect, never producing a zero-filled artifact.
func (w *Writer) WriteAnalysis(ctx context.Context, s core.HistoricalSeries, thresholdPct float64) (*Analysis, error) {
	events, err := analysis.Detect(s, thresholdPct)
	if err != nil {
		return nil, err
	}

	vol, err := analysis.Volatility(s)
	if err != nil {
		return nil, err
	}
	current := s[len(s)-1].USDPerOunce
	rank, err := analysis.PercentileRank(s, current)
	if err != nil {
		return nil, err
	}

	stats := StatsBlock{
		Volatility:     vol,
		PercentileRank: rank,
		CurrentPrice:   current,
	}
	if ma, err := analysis.MovingAverage(s, 50); err == nil {
		stats.MA50 = &ma
	} else if !errors.Is(err, core.ErrInsufficientData) {
		return nil, err
	}
	if ma, err := analysis.MovingAverage(s, 200); err == nil {
		stats.MA200 = &ma
	} else if !errors.Is(err, core.ErrInsufficientData) {
		return nil, err
	}

	result := &Analysis{
		GeneratedAt:  time.Now().UTC(),
		ThresholdPct: thresholdPct,
		Summary:      analysis.Summarize(events),
		Events:       events,
		Stats:        stats,
	}
	if result.Events == nil {
		result.Events = []core.Drawdown{}
	}

	if err := w.writeJSON(ctx, "analysis/drawdowns.json", result); err != nil {
		return nil, err
	}
	return result, nil
}

func (w *Writer) writeJSON(ctx context.Context, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := w.store.Write(ctx, path, data); err != nil {
		return core.WrapError(core.ErrStorageFailed, err)
	}
	return nil
}
