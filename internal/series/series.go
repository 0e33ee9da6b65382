package series

import (
	"fmt"
	"sort"

	"github.com/vthang/goldpulse/internal/core"
)

// New validates and orders a historical series: points are sorted
// ascending by calendar date and duplicate dates are rejected.
func New(points []core.HistoricalPoint) (core.HistoricalSeries, error) {
	if len(points) == 0 {
		return nil, core.ErrEmptySeries
	}

	s := make(core.HistoricalSeries, len(points))
	copy(s, points)
	sort.Slice(s, func(i, j int) bool { return s[i].Date.Before(s[j].Date) })

	for i := 1; i < len(s); i++ {
		if dayKey(s[i]) == dayKey(s[i-1]) {
			return nil, core.WrapError(core.ErrDuplicateDate,
				fmt.Errorf("date %s appears more than once", dayKey(s[i])))
		}
	}
	return s, nil
}

func dayKey(p core.HistoricalPoint) string {
	return p.Date.Format("2006-01-02")
}

// Backfill derives the VND columns of every point from its USD/oz
// price. Periods with no captured live rate use the configured
// historical USD/VND override, so usdToVND is a single scalar here.
func Backfill(s core.HistoricalSeries, usdToVND float64) (core.HistoricalSeries, error) {
	if len(s) == 0 {
		return nil, core.ErrEmptySeries
	}
	if usdToVND <= 0 {
		return nil, core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("usd/vnd override must be positive, got %f", usdToVND))
	}

	out := make(core.HistoricalSeries, len(s))
	for i, p := range s {
		perGram := p.USDPerOunce / core.GramsPerOunce * usdToVND
		out[i] = core.HistoricalPoint{
			Date:        p.Date,
			USDPerOunce: p.USDPerOunce,
			VNDPerGram:  perGram,
			VNDPerTael:  perGram * core.GramsPerTael,
		}
	}
	return out, nil
}
