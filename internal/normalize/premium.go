package normalize

import (
	"fmt"

	"github.com/vthang/goldpulse/internal/core"
)

// Premium compares the Vietnam local quote to the normalized
// international benchmark, both VND per tael. It is defined only when
// both inputs are present and the benchmark is positive; otherwise it
// reports unavailable via error. "No signal" and "zero premium" are
// distinct conditions.
func Premium(localVNDPerTael, benchmarkVNDPerTael float64) (*core.PremiumResult, error) {
	if localVNDPerTael <= 0 {
		return nil, core.WrapError(core.ErrPremiumUnavailable,
			fmt.Errorf("no local price"))
	}
	if benchmarkVNDPerTael <= 0 {
		return nil, core.WrapError(core.ErrPremiumUnavailable,
			fmt.Errorf("no benchmark price"))
	}

	return &core.PremiumResult{
		PremiumPercent: (localVNDPerTael - benchmarkVNDPerTael) / benchmarkVNDPerTael * 100,
		BenchmarkVND:   benchmarkVNDPerTael,
		LocalVND:       localVNDPerTael,
	}, nil
}
