package acquire

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vthang/goldpulse/internal/core"
	"github.com/vthang/goldpulse/internal/metrics"
	"github.com/vthang/goldpulse/internal/provider"
	"github.com/vthang/goldpulse/internal/provider/derived"
	"github.com/vthang/goldpulse/internal/provider/fx"
	"go.uber.org/zap"
)

// Market couples a fallback chain with the identity of the market it
// serves. DeriveFallback markets get a benchmark×FX adapter appended
// once the benchmark price is known.
type Market struct {
	Name           string
	Country        core.Country
	Currency       string
	Chain          *provider.Chain
	DeriveFallback bool
}

// Warning records one market that produced no quote this cycle.
type Warning struct {
	Market  string `json:"market"`
	Message string `json:"message"`
}

// Aggregate is the immutable outcome of one acquisition cycle. A fresh
// snapshot is produced each run; nothing in it is shared or mutated
// afterwards.
type Aggregate struct {
	RunID     string
	Time      time.Time
	Rates     core.ExchangeRateTable
	Benchmark []core.RawQuote
	Markets   map[string][]core.RawQuote
	Warnings  []Warning
}

// BenchmarkUSDPerOunce returns the benchmark price in USD per troy
// ounce, or 0 when absent.
func (a *Aggregate) BenchmarkUSDPerOunce() float64 {
	for _, q := range a.Benchmark {
		if q.Pricing != nil {
			return q.Pricing.PerGramPrice() * core.GramsPerOunce
		}
	}
	return 0
}

// Orchestrator runs one full acquisition cycle: exchange rates and the
// international benchmark first, then every national market
// concurrently.
type Orchestrator struct {
	fxChain   *fx.Chain
	benchmark *provider.Chain
	markets   []*Market
	logger    *zap.Logger
	metrics   *metrics.Registry
}

// New creates an orchestrator. metrics may be nil.
func New(fxChain *fx.Chain, benchmark *provider.Chain, markets []*Market, logger *zap.Logger, reg *metrics.Registry) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		fxChain:   fxChain,
		benchmark: benchmark,
		markets:   markets,
		logger:    logger,
		metrics:   reg,
	}
}

// AcquireAll performs one cycle. The exchange-rate table and benchmark
// are hard requirements; any other market's failure degrades the
// aggregate with a warning instead of aborting.
func (o *Orchestrator) AcquireAll(ctx context.Context) (*Aggregate, error) {
	started := time.Now()

	rates, err := o.fxChain.FetchRates(ctx)
	if err != nil {
		return nil, err
	}
	o.logger.Info("exchange rates acquired",
		zap.String("source", rates.Source),
		zap.Int("currencies", len(rates.Rates)),
	)

	bench, err := o.benchmark.Fetch(ctx)
	if err != nil {
		o.recordFetch(o.benchmark.Market(), false)
		return nil, core.WrapError(core.ErrBenchmarkUnavailable, err)
	}
	o.recordFetch(o.benchmark.Market(), true)

	agg := &Aggregate{
		RunID:     uuid.NewString(),
		Time:      started,
		Rates:     rates,
		Benchmark: bench,
		Markets:   make(map[string][]core.RawQuote, len(o.markets)),
	}

	o.appendDerivedFallbacks(agg.BenchmarkUSDPerOunce(), rates)

	// Fire all national markets, await all. Each goroutine writes only
	// its own slot, so no locking is needed during the fan-out.
	type result struct {
		market *Market
		quotes []core.RawQuote
		err    error
	}
	results := make([]result, len(o.markets))

	var wg sync.WaitGroup
	for i, m := range o.markets {
		wg.Add(1)
		go func(i int, m *Market) {
			defer wg.Done()
			quotes, err := m.Chain.Fetch(ctx)
			results[i] = result{market: m, quotes: quotes, err: err}
		}(i, m)
	}
	wg.Wait()

	// Single-threaded reduction after all concurrent work completes.
	succeeded := 0
	for _, r := range results {
		if r.err != nil {
			o.recordFetch(r.market.Name, false)
			o.logger.Warn("market unavailable",
				zap.String("market", r.market.Name),
				zap.Error(r.err),
			)
			agg.Warnings = append(agg.Warnings, Warning{
				Market:  r.market.Name,
				Message: r.err.Error(),
			})
			continue
		}
		o.recordFetch(r.market.Name, true)
		agg.Markets[r.market.Name] = r.quotes
		succeeded++
	}

	if succeeded == 0 {
		return nil, core.ErrAllMarketsFailed
	}

	if o.metrics != nil {
		o.metrics.RecordCycle(o.totalQuotes(agg), len(agg.Warnings), time.Since(started).Seconds())
	}
	o.logger.Info("acquisition cycle complete",
		zap.String("run_id", agg.RunID),
		zap.Int("markets", succeeded),
		zap.Int("warnings", len(agg.Warnings)),
		zap.Duration("took", time.Since(started)),
	)
	return agg, nil
}

// FetchBenchmarkHistory returns up to days of daily USD/oz points from
// the benchmark chain.
func (o *Orchestrator) FetchBenchmarkHistory(ctx context.Context, days int) (core.HistoricalSeries, error) {
	return o.benchmark.FetchHistory(ctx, days)
}

// appendDerivedFallbacks arms each opted-in market with a synthetic
// benchmark×FX adapter as its last resort for this cycle.
func (o *Orchestrator) appendDerivedFallbacks(usdPerOunce float64, rates core.ExchangeRateTable) {
	for _, m := range o.markets {
		if !m.DeriveFallback {
			continue
		}
		rate, ok := rates.Rate(m.Currency)
		if !ok {
			o.logger.Warn("no rate for derived fallback",
				zap.String("market", m.Name),
				zap.String("currency", m.Currency),
			)
			continue
		}
		m.Chain.Append(derived.New(m.Country, m.Currency, usdPerOunce, rate))
	}
}

func (o *Orchestrator) recordFetch(market string, ok bool) {
	if o.metrics != nil {
		o.metrics.RecordFetch(market, ok)
	}
}

func (o *Orchestrator) totalQuotes(agg *Aggregate) int {
	n := len(agg.Benchmark)
	for _, quotes := range agg.Markets {
		n += len(quotes)
	}
	return n
}
