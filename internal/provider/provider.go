package provider

import (
	"context"

	"github.com/vthang/goldpulse/internal/core"
)

// Adapter fetches quotes from one external endpoint. Implementations
// perform a single attempt per call; there are no retries within a
// cycle, transient failures are absorbed by the next scheduled run.
type Adapter interface {
	// Name returns the adapter identifier (e.g. "sjc", "goldapi").
	Name() string

	// Fetch performs one network call and returns the raw quotes it
	// observed. I/O errors are returned as values, never panics.
	Fetch(ctx context.Context) ([]core.RawQuote, error)
}

// HistoryAdapter is implemented by adapters that can also serve a
// historical daily series.
type HistoryAdapter interface {
	Adapter

	// FetchHistory returns up to days of daily points, oldest first.
	FetchHistory(ctx context.Context, days int) (core.HistoricalSeries, error)
}

// CredentialGated is implemented by adapters that need an API key.
// A chain skips adapters that are not Ready without counting the skip
// as a failure.
type CredentialGated interface {
	Ready() bool
}
