package analysis

import (
	"time"

	"github.com/vthang/goldpulse/internal/core"
)

// peakLookahead bounds the peak test window. A candidate peak only has
// to dominate the next 20 points, not the whole remaining series; this
// caps quadratic scans at the cost of missing peaks inside slow
// multi-week rises. Downstream statistics are calibrated against this
// behavior, so keep it.
const peakLookahead = 20

// Detect scans a chronological series for peak→trough→recovery cycles
// with a decline of at least minPct percent. Emitted windows never
// overlap and the scan always advances, so termination is guaranteed.
func Detect(series core.HistoricalSeries, minPct float64) ([]core.Drawdown, error) {
	if len(series) == 0 {
		return nil, core.ErrEmptySeries
	}

	prices := make([]float64, len(series))
	for i, p := range series {
		prices[i] = p.USDPerOunce
	}

	var events []core.Drawdown
	n := len(prices)

	for i := 0; i < n-1; {
		if !isPeak(prices, i) {
			i++
			continue
		}

		peak := prices[i]
		troughIdx := i
		trough := peak
		recoveryIdx := -1

		for j := i + 1; j < n; j++ {
			if prices[j] < trough {
				trough = prices[j]
				troughIdx = j
				// A recovery relative to the old trough is not
				// meaningful once a deeper trough is found.
				recoveryIdx = -1
				continue
			}
			if prices[j] >= peak {
				recoveryIdx = j
				break
			}
		}

		ddPct := (peak - trough) / peak * 100
		if ddPct >= minPct && troughIdx > i {
			ev := core.Drawdown{
				PeakDate:     series[i].Date,
				PeakPrice:    peak,
				TroughDate:   series[troughIdx].Date,
				TroughPrice:  trough,
				DrawdownPct:  ddPct,
				DaysToTrough: daysBetween(series[i].Date, series[troughIdx].Date),
			}
			if recoveryIdx >= 0 {
				rd := series[recoveryIdx].Date
				days := daysBetween(series[troughIdx].Date, rd)
				ev.RecoveryDate = &rd
				ev.DaysToRecovery = &days
				ev.Recovered = true
			}
			events = append(events, ev)
		}

		// Resume past this cycle so windows never overlap.
		if recoveryIdx >= 0 {
			i = recoveryIdx + 1
		} else {
			i = troughIdx + 1
		}
	}

	return events, nil
}

// isPeak rejects positions inside a still-rising run: scanning up to
// min(peakLookahead, remaining) points ahead, a strictly higher price
// before any decline disqualifies the candidate. Once the decline has
// begun, later higher prices belong to the recovery scan, not here.
func isPeak(prices []float64, i int) bool {
	window := peakLookahead
	if rem := len(prices) - 1 - i; rem < window {
		window = rem
	}
	if window == 0 {
		return false
	}
	for k := i + 1; k <= i+window; k++ {
		if prices[k] > prices[i] {
			return false
		}
		if prices[k] < prices[i] {
			return true
		}
	}
	return true
}

func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// Summarize aggregates detected events. Recovery statistics are
// computed only over recovered events.
func Summarize(events []core.Drawdown) core.DrawdownSummary {
	s := core.DrawdownSummary{Count: len(events)}

	var totalRecovery int
	for _, ev := range events {
		if ev.DrawdownPct > s.WorstPct {
			s.WorstPct = ev.DrawdownPct
		}
		if !ev.Recovered {
			s.NotRecovered++
			continue
		}
		s.Recovered++
		if ev.DaysToRecovery != nil {
			totalRecovery += *ev.DaysToRecovery
			if *ev.DaysToRecovery > s.LongestRecovery {
				s.LongestRecovery = *ev.DaysToRecovery
			}
		}
	}
	if s.Recovered > 0 {
		s.AvgRecovery = float64(totalRecovery) / float64(s.Recovered)
	}

	return s
}
