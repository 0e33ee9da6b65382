package derived

import (
	"context"
	"fmt"
	"time"

	"github.com/vthang/goldpulse/internal/core"
)

// Derived synthesizes a local-currency quote from the international
// benchmark and an exchange rate. It is appended per cycle as the last
// fallback of national market chains whose native sources are
// unreachable: localPerGram = benchUSDPerOunce / 31.1035 × unitsPerUSD.
type Derived struct {
	country      core.Country
	currency     string
	usdPerOunce  float64
	unitsPerUSD  float64
}

// New creates a derived adapter for one market. The benchmark price and
// FX rate are fixed at construction, inside a single acquisition cycle.
func New(country core.Country, currency string, usdPerOunce, unitsPerUSD float64) *Derived {
	return &Derived{
		country:     country,
		currency:    currency,
		usdPerOunce: usdPerOunce,
		unitsPerUSD: unitsPerUSD,
	}
}

func (d *Derived) Name() string {
	return fmt.Sprintf("derived-%s", d.currency)
}

// Fetch performs no I/O; it fails only when its inputs were invalid.
func (d *Derived) Fetch(ctx context.Context) ([]core.RawQuote, error) {
	if d.usdPerOunce <= 0 {
		return nil, fmt.Errorf("no benchmark price to derive from")
	}
	if d.unitsPerUSD <= 0 {
		return nil, fmt.Errorf("no %s exchange rate to derive with", d.currency)
	}

	perGram := d.usdPerOunce / core.GramsPerOunce * d.unitsPerUSD
	return []core.RawQuote{{
		Source:   d.Name(),
		Country:  d.country,
		Currency: d.currency,
		Pricing:  core.PerGram{Price: perGram},
		Time:     time.Now(),
	}}, nil
}
