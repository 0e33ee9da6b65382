package normalize

import (
	"fmt"

	"github.com/vthang/goldpulse/internal/core"
)

// Warning records a quote that could not be fully normalized. Dropped
// quotes and mis-scaled passthroughs are surfaced, never silently
// accepted.
type Warning struct {
	Source  string
	Code    string
	Message string
}

// Normalize converts raw quotes into the canonical VND-per-gram /
// VND-per-tael form. Pure function: same inputs always produce the same
// outputs, no I/O, no mutation of its arguments.
func Normalize(quotes []core.RawQuote, rates core.ExchangeRateTable) ([]core.NormalizedQuote, []Warning) {
	out := make([]core.NormalizedQuote, 0, len(quotes))
	var warnings []Warning

	for _, q := range quotes {
		if q.Pricing == nil {
			warnings = append(warnings, Warning{
				Source:  q.Source,
				Code:    core.ErrUnconvertible.Code,
				Message: fmt.Sprintf("quote from %s has no usable price field, dropped", q.Source),
			})
			continue
		}

		nativePerGram := q.Pricing.PerGramPrice()
		vndPerGram, warn := toVND(nativePerGram, q.Currency, rates)
		if warn != nil {
			warn.Source = q.Source
			warnings = append(warnings, *warn)
		}

		out = append(out, core.NormalizedQuote{
			Source:           q.Source,
			Country:          q.Country,
			OriginalCurrency: q.Currency,
			OriginalPerGram:  nativePerGram,
			VNDPerGram:       vndPerGram,
			VNDPerTael:       vndPerGram * core.GramsPerTael,
		})
	}

	return out, warnings
}

// toVND converts a native-currency price per gram to VND. An unknown
// currency passes the native number through untouched (clearly
// mis-scaled) with a data-quality warning, per the degradation policy.
func toVND(price float64, currency string, rates core.ExchangeRateTable) (float64, *Warning) {
	switch currency {
	case "VND":
		return price, nil
	case "USD":
		vnd, ok := rates.Rate("VND")
		if !ok {
			return price, &Warning{
				Code:    core.ErrUnknownCurrency.Code,
				Message: "no USD→VND rate in table, price left in USD",
			}
		}
		return price * vnd, nil
	default:
		perUSD, ok := rates.Rate(currency)
		if !ok {
			return price, &Warning{
				Code:    core.ErrUnknownCurrency.Code,
				Message: fmt.Sprintf("currency %s absent from rate table, price left unconverted", currency),
			}
		}
		vnd, ok := rates.Rate("VND")
		if !ok {
			return price, &Warning{
				Code:    core.ErrUnknownCurrency.Code,
				Message: "no USD→VND rate in table, price left unconverted",
			}
		}
		// Two hops: native → USD → VND.
		return price / perUSD * vnd, nil
	}
}
