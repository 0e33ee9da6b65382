package normalize

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/vthang/goldpulse/internal/core"
)

func rates() core.ExchangeRateTable {
	return core.NewExchangeRateTable("test", map[string]float64{
		"VND": 25400,
		"CNY": 7.2,
		"INR": 83.5,
	})
}

func TestNormalize_Idempotence(t *testing.T) {
	quotes := []core.RawQuote{{
		Source:   "sjc",
		Country:  core.CountryVietnam,
		Currency: "VND",
		Pricing:  core.PerGram{Price: 2000000},
		Time:     time.Now(),
	}}

	out, warnings := Normalize(quotes, rates())
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if out[0].VNDPerGram != 2000000 {
		t.Errorf("VND per-gram input must pass through unchanged, got %f", out[0].VNDPerGram)
	}
}

func TestNormalize_TaelGramConsistency(t *testing.T) {
	quotes := []core.RawQuote{
		{Source: "sjc", Country: core.CountryVietnam, Currency: "VND", Pricing: core.BuySell{Buy: 74000000, Sell: 75000000}},
		{Source: "yahoo", Country: core.CountryInternational, Currency: "USD", Pricing: core.PerOunce{Price: 2000}},
		{Source: "sge", Country: core.CountryChina, Currency: "CNY", Pricing: core.PerGram{Price: 560}},
	}

	out, _ := Normalize(quotes, rates())
	for _, n := range out {
		if n.VNDPerTael != n.VNDPerGram*37.5 {
			t.Errorf("%s: VNDPerTael = %f, want exactly VNDPerGram×37.5 = %f",
				n.Source, n.VNDPerTael, n.VNDPerGram*37.5)
		}
	}
}

func TestNormalize_USDConversion(t *testing.T) {
	quotes := []core.RawQuote{{
		Source:   "goldapi",
		Country:  core.CountryInternational,
		Currency: "USD",
		Pricing:  core.PerOunce{Price: 2000},
	}}

	out, warnings := Normalize(quotes, rates())
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	want := 2000 / 31.1035 * 25400
	if math.Abs(out[0].VNDPerGram-want) > 1e-6 {
		t.Errorf("VNDPerGram = %f, want %f", out[0].VNDPerGram, want)
	}
}

func TestNormalize_TwoHopConversion(t *testing.T) {
	quotes := []core.RawQuote{{
		Source:   "sge",
		Country:  core.CountryChina,
		Currency: "CNY",
		Pricing:  core.PerGram{Price: 560},
	}}

	out, warnings := Normalize(quotes, rates())
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	want := 560.0 / 7.2 * 25400
	if math.Abs(out[0].VNDPerGram-want) > 1e-6 {
		t.Errorf("VNDPerGram = %f, want %f", out[0].VNDPerGram, want)
	}
}

func TestNormalize_UnknownCurrencyWarns(t *testing.T) {
	quotes := []core.RawQuote{{
		Source:   "weird",
		Country:  core.CountryThailand,
		Currency: "XYZ",
		Pricing:  core.PerGram{Price: 42},
	}}

	out, warnings := Normalize(quotes, rates())
	if len(out) != 1 {
		t.Fatal("quote with unknown currency should survive, mis-scaled")
	}
	if out[0].VNDPerGram != 42 {
		t.Errorf("expected untouched native price, got %f", out[0].VNDPerGram)
	}
	if len(warnings) != 1 || warnings[0].Code != core.ErrUnknownCurrency.Code {
		t.Errorf("expected data-quality warning, got %v", warnings)
	}
}

func TestNormalize_NilPricingDropped(t *testing.T) {
	quotes := []core.RawQuote{{Source: "broken", Currency: "VND"}}

	out, warnings := Normalize(quotes, rates())
	if len(out) != 0 {
		t.Error("unconvertible quote must be dropped")
	}
	if len(warnings) != 1 || warnings[0].Code != core.ErrUnconvertible.Code {
		t.Errorf("expected unconvertible warning, got %v", warnings)
	}
}

func TestNormalize_Deterministic(t *testing.T) {
	quotes := []core.RawQuote{
		{Source: "sjc", Currency: "VND", Pricing: core.PerTael{Price: 75000000}},
		{Source: "sge", Currency: "CNY", Pricing: core.PerGram{Price: 560}},
	}
	r := rates()

	a, _ := Normalize(quotes, r)
	b, _ := Normalize(quotes, r)
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("normalization not deterministic at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestPremium(t *testing.T) {
	p, err := Premium(75000000, 72000000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := (75000000.0 - 72000000.0) / 72000000.0 * 100
	if math.Abs(p.PremiumPercent-want) > 1e-9 {
		t.Errorf("PremiumPercent = %f, want %f", p.PremiumPercent, want)
	}
}

func TestPremium_UnavailableNotZero(t *testing.T) {
	if _, err := Premium(75000000, 0); !errors.Is(err, core.ErrPremiumUnavailable) {
		t.Errorf("zero benchmark must be unavailable, got %v", err)
	}
	if _, err := Premium(0, 72000000); !errors.Is(err, core.ErrPremiumUnavailable) {
		t.Errorf("missing local must be unavailable, got %v", err)
	}
}
