package analysis

import (
	"errors"
	"math"
	"sort"

	"github.com/vthang/goldpulse/internal/core"
)

var errZeroPrice = errors.New("zero price in series")

// Volatility returns the population standard deviation of day-over-day
// percentage changes across the series. Divides by N, not N−1.
func Volatility(series core.HistoricalSeries) (float64, error) {
	if len(series) == 0 {
		return 0, core.ErrEmptySeries
	}
	if len(series) < 2 {
		return 0, core.ErrInsufficientData
	}

	changes := make([]float64, 0, len(series)-1)
	for i := 1; i < len(series); i++ {
		prev := series[i-1].USDPerOunce
		if prev == 0 {
			return 0, core.WrapError(core.ErrInsufficientData,
				errZeroPrice)
		}
		changes = append(changes, (series[i].USDPerOunce-prev)/prev*100)
	}

	var sum float64
	for _, c := range changes {
		sum += c
	}
	mean := sum / float64(len(changes))

	var variance float64
	for _, c := range changes {
		variance += (c - mean) * (c - mean)
	}
	return math.Sqrt(variance / float64(len(changes))), nil
}

// MovingAverage returns the simple mean of the trailing period points.
// Undefined, not zero, when fewer than period points exist.
func MovingAverage(series core.HistoricalSeries, period int) (float64, error) {
	if len(series) == 0 {
		return 0, core.ErrEmptySeries
	}
	if period <= 0 || len(series) < period {
		return 0, core.ErrInsufficientData
	}

	var sum float64
	for _, p := range series[len(series)-period:] {
		sum += p.USDPerOunce
	}
	return sum / float64(period), nil
}

// PercentileRank places current within the full sorted historical
// distribution, 0–100. Rank is the count of points at or below current
// minus one, over N−1, so the minimum of a tie-free distribution ranks
// 0 and its maximum ranks 100. Ties are not broken.
func PercentileRank(series core.HistoricalSeries, current float64) (float64, error) {
	if len(series) == 0 {
		return 0, core.ErrEmptySeries
	}
	if len(series) == 1 {
		return 100, nil
	}

	prices := make([]float64, len(series))
	for i, p := range series {
		prices[i] = p.USDPerOunce
	}
	sort.Float64s(prices)

	countLE := 0
	for _, p := range prices {
		if p <= current {
			countLE++
		}
	}
	if countLE == 0 {
		return 0, nil
	}
	return float64(countLE-1) / float64(len(prices)-1) * 100, nil
}
