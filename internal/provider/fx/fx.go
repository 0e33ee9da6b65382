package fx

import (
	"context"
	"fmt"

	"github.com/vthang/goldpulse/internal/core"
	"go.uber.org/zap"
)

// Source supplies a USD-based exchange rate table.
type Source interface {
	Name() string
	FetchRates(ctx context.Context) (core.ExchangeRateTable, error)
}

// Chain tries FX sources in order and returns the first table obtained.
// On total failure the last error propagates, same contract as the
// quote fallback chains.
type Chain struct {
	sources []Source
	logger  *zap.Logger
}

// NewChain creates an FX fallback chain.
func NewChain(logger *zap.Logger, sources ...Source) *Chain {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Chain{sources: sources, logger: logger}
}

// FetchRates returns the first successfully fetched table.
func (c *Chain) FetchRates(ctx context.Context) (core.ExchangeRateTable, error) {
	var lastErr error
	for _, s := range c.sources {
		table, err := s.FetchRates(ctx)
		if err == nil {
			return table, nil
		}
		c.logger.Warn("fx source failed, trying next",
			zap.String("source", s.Name()),
			zap.Error(err),
		)
		lastErr = err
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no fx sources configured")
	}
	return core.ExchangeRateTable{}, core.WrapError(core.ErrNoExchangeRate, lastErr)
}
