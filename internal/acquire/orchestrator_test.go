package acquire

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vthang/goldpulse/internal/core"
	"github.com/vthang/goldpulse/internal/provider"
	"github.com/vthang/goldpulse/internal/provider/fx"
)

type stubAdapter struct {
	name   string
	quotes []core.RawQuote
	err    error
}

func (s *stubAdapter) Name() string { return s.name }

func (s *stubAdapter) Fetch(ctx context.Context) ([]core.RawQuote, error) {
	return s.quotes, s.err
}

type stubFX struct {
	table core.ExchangeRateTable
	err   error
}

func (s *stubFX) Name() string { return "stub-fx" }

func (s *stubFX) FetchRates(ctx context.Context) (core.ExchangeRateTable, error) {
	return s.table, s.err
}

func quoteFor(source string, country core.Country) []core.RawQuote {
	return []core.RawQuote{{
		Source:   source,
		Country:  country,
		Currency: "VND",
		Pricing:  core.PerTael{Price: 75000000},
		Time:     time.Now(),
	}}
}

func benchAdapter() *stubAdapter {
	return &stubAdapter{name: "bench", quotes: []core.RawQuote{{
		Source:   "bench",
		Country:  core.CountryInternational,
		Currency: "USD",
		Pricing:  core.PerOunce{Price: 2000},
		Time:     time.Now(),
	}}}
}

func goodFXChain() *fx.Chain {
	return fx.NewChain(nil, &stubFX{
		table: core.NewExchangeRateTable("stub", map[string]float64{"VND": 25400, "CNY": 7.2}),
	})
}

func marketOf(name string, a provider.Adapter) *Market {
	return &Market{
		Name:    name,
		Country: core.CountryVietnam,
		Chain:   provider.NewChain(name, nil, a),
	}
}

func TestAcquireAll_PartialFailureTolerated(t *testing.T) {
	markets := []*Market{
		marketOf("vietnam", &stubAdapter{name: "a", quotes: quoteFor("a", core.CountryVietnam)}),
		marketOf("china", &stubAdapter{name: "b", err: errors.New("down")}),
		marketOf("india", &stubAdapter{name: "c", quotes: quoteFor("c", core.CountryIndia)}),
		marketOf("thailand", &stubAdapter{name: "d", err: errors.New("down")}),
		marketOf("singapore", &stubAdapter{name: "e", quotes: quoteFor("e", core.CountryVietnam)}),
	}

	o := New(goodFXChain(), provider.NewChain("benchmark", nil, benchAdapter()), markets, nil, nil)
	agg, err := o.AcquireAll(context.Background())
	if err != nil {
		t.Fatalf("partial failure must not abort: %v", err)
	}

	if len(agg.Markets) != 3 {
		t.Errorf("got %d markets, want 3", len(agg.Markets))
	}
	if len(agg.Warnings) != 2 {
		t.Errorf("got %d warnings, want 2", len(agg.Warnings))
	}
	if agg.RunID == "" {
		t.Error("aggregate must carry a run id")
	}
}

func TestAcquireAll_BenchmarkFailureIsFatal(t *testing.T) {
	markets := []*Market{
		marketOf("vietnam", &stubAdapter{name: "a", quotes: quoteFor("a", core.CountryVietnam)}),
	}
	bench := provider.NewChain("benchmark", nil, &stubAdapter{name: "bench", err: errors.New("down")})

	o := New(goodFXChain(), bench, markets, nil, nil)
	_, err := o.AcquireAll(context.Background())
	if !errors.Is(err, core.ErrBenchmarkUnavailable) {
		t.Errorf("expected BENCHMARK_UNAVAILABLE, got %v", err)
	}
}

func TestAcquireAll_NoRatesIsFatal(t *testing.T) {
	o := New(
		fx.NewChain(nil, &stubFX{err: errors.New("down")}),
		provider.NewChain("benchmark", nil, benchAdapter()),
		nil, nil, nil,
	)
	_, err := o.AcquireAll(context.Background())
	if !errors.Is(err, core.ErrNoExchangeRate) {
		t.Errorf("expected NO_EXCHANGE_RATE, got %v", err)
	}
}

func TestAcquireAll_AllMarketsFailedIsFatal(t *testing.T) {
	markets := []*Market{
		marketOf("vietnam", &stubAdapter{name: "a", err: errors.New("down")}),
		marketOf("china", &stubAdapter{name: "b", err: errors.New("down")}),
	}

	o := New(goodFXChain(), provider.NewChain("benchmark", nil, benchAdapter()), markets, nil, nil)
	_, err := o.AcquireAll(context.Background())
	if !errors.Is(err, core.ErrAllMarketsFailed) {
		t.Errorf("expected ALL_MARKETS_FAILED, got %v", err)
	}
}

func TestAcquireAll_DerivedFallbackKicksIn(t *testing.T) {
	china := &Market{
		Name:           "china",
		Country:        core.CountryChina,
		Currency:       "CNY",
		Chain:          provider.NewChain("china", nil, &stubAdapter{name: "sge", err: errors.New("down")}),
		DeriveFallback: true,
	}

	o := New(goodFXChain(), provider.NewChain("benchmark", nil, benchAdapter()), []*Market{china}, nil, nil)
	agg, err := o.AcquireAll(context.Background())
	if err != nil {
		t.Fatalf("derived fallback should rescue the market: %v", err)
	}

	quotes, ok := agg.Markets["china"]
	if !ok || len(quotes) == 0 {
		t.Fatal("expected derived quote for china")
	}
	if quotes[0].Source != "derived-CNY" {
		t.Errorf("source = %s, want derived-CNY", quotes[0].Source)
	}
	if len(agg.Warnings) != 0 {
		t.Errorf("rescued market should not warn, got %v", agg.Warnings)
	}
}

func TestAggregate_BenchmarkUSDPerOunce(t *testing.T) {
	agg := &Aggregate{Benchmark: benchAdapter().quotes}
	got := agg.BenchmarkUSDPerOunce()
	if got < 1999.999 || got > 2000.001 {
		t.Errorf("BenchmarkUSDPerOunce = %f, want 2000", got)
	}
}
