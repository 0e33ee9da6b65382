package provider

import (
	"context"
	"fmt"

	"github.com/vthang/goldpulse/internal/core"
	"go.uber.org/zap"
)

// Chain runs an ordered list of adapters for one market. The first
// success wins and the remaining adapters are never invoked. If every
// adapter fails or is skipped, the last error is returned, since later
// adapters are closer to the caller's final fallback intent.
type Chain struct {
	market   string
	adapters []Adapter
	logger   *zap.Logger
}

// NewChain creates a fallback chain for a named market.
func NewChain(market string, logger *zap.Logger, adapters ...Adapter) *Chain {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Chain{market: market, adapters: adapters, logger: logger}
}

// Market returns the market name this chain serves.
func (c *Chain) Market() string { return c.market }

// Append adds adapters at the end of the fallback order.
func (c *Chain) Append(adapters ...Adapter) {
	c.adapters = append(c.adapters, adapters...)
}

// Fetch tries adapters strictly in order.
func (c *Chain) Fetch(ctx context.Context) ([]core.RawQuote, error) {
	var lastErr error
	for _, a := range c.adapters {
		if gated, ok := a.(CredentialGated); ok && !gated.Ready() {
			c.logger.Debug("skipping adapter without credential",
				zap.String("market", c.market),
				zap.String("adapter", a.Name()),
			)
			continue
		}

		quotes, err := a.Fetch(ctx)
		if err == nil && len(quotes) > 0 {
			return quotes, nil
		}
		if err == nil {
			err = fmt.Errorf("%s returned no quotes", a.Name())
		}
		c.logger.Warn("adapter failed, trying next",
			zap.String("market", c.market),
			zap.String("adapter", a.Name()),
			zap.Error(err),
		)
		lastErr = err
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no usable adapters for market %s", c.market)
	}
	return nil, core.WrapError(core.ErrProviderFailed, lastErr)
}

// FetchHistory tries adapters in order, using only those that serve
// history.
func (c *Chain) FetchHistory(ctx context.Context, days int) (core.HistoricalSeries, error) {
	var lastErr error
	for _, a := range c.adapters {
		h, ok := a.(HistoryAdapter)
		if !ok {
			continue
		}
		if gated, ok := a.(CredentialGated); ok && !gated.Ready() {
			continue
		}

		series, err := h.FetchHistory(ctx, days)
		if err == nil && len(series) > 0 {
			return series, nil
		}
		if err == nil {
			err = fmt.Errorf("%s returned empty history", a.Name())
		}
		lastErr = err
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no history adapters for market %s", c.market)
	}
	return nil, core.WrapError(core.ErrProviderFailed, lastErr)
}
