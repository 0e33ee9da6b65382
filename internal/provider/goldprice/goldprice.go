package goldprice

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/vthang/goldpulse/internal/core"
)

const baseURL = "https://api.gold-api.com"

// GoldPrice fetches XAU/USD from the free gold-api.com feed. No key
// required, so it sits behind GoldAPI in the benchmark chain.
type GoldPrice struct {
	client  *http.Client
	baseURL string
}

// New creates a new GoldPrice adapter.
func New() *GoldPrice {
	return &GoldPrice{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: baseURL,
	}
}

// NewWithBaseURL creates a GoldPrice adapter with a custom base URL (for testing).
func NewWithBaseURL(url string) *GoldPrice {
	g := New()
	g.baseURL = url
	return g
}

func (g *GoldPrice) Name() string { return "goldprice" }

// Fetch returns the spot XAU/USD quote.
func (g *GoldPrice) Fetch(ctx context.Context) ([]core.RawQuote, error) {
	url := fmt.Sprintf("%s/price/XAU", g.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching spot price: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result priceResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if result.Price <= 0 {
		return nil, fmt.Errorf("non-positive price: %f", result.Price)
	}

	ts := time.Now()
	if result.UpdatedAt != "" {
		if parsed, err := time.Parse(time.RFC3339, result.UpdatedAt); err == nil {
			ts = parsed
		}
	}

	return []core.RawQuote{{
		Source:   "goldprice",
		Country:  core.CountryInternational,
		Currency: "USD",
		Pricing:  core.PerOunce{Price: result.Price},
		Time:     ts,
	}}, nil
}

// gold-api.com response types
type priceResponse struct {
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Symbol    string  `json:"symbol"`
	UpdatedAt string  `json:"updatedAt"`
}
