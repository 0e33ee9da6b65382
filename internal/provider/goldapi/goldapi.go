package goldapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/vthang/goldpulse/internal/core"
)

const baseURL = "https://www.goldapi.io/api"

// GoldAPI fetches the XAU/USD spot price from goldapi.io. The service
// requires an access token, so the adapter is credential-gated and a
// fallback chain skips it when no token is configured.
type GoldAPI struct {
	client  *http.Client
	baseURL string
	token   string
}

// New creates a new GoldAPI adapter.
func New(token string) *GoldAPI {
	return &GoldAPI{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: baseURL,
		token:   token,
	}
}

// NewWithBaseURL creates a GoldAPI adapter with a custom base URL (for testing).
func NewWithBaseURL(token, url string) *GoldAPI {
	g := New(token)
	g.baseURL = url
	return g
}

func (g *GoldAPI) Name() string { return "goldapi" }

// Ready reports whether an access token is configured.
func (g *GoldAPI) Ready() bool { return g.token != "" }

// Fetch returns the spot XAU/USD quote.
func (g *GoldAPI) Fetch(ctx context.Context) ([]core.RawQuote, error) {
	url := fmt.Sprintf("%s/XAU/USD", g.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("x-access-token", g.token)
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching spot price: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result spotResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if result.Price <= 0 {
		return nil, fmt.Errorf("non-positive price: %f", result.Price)
	}

	return []core.RawQuote{{
		Source:   "goldapi",
		Country:  core.CountryInternational,
		Currency: "USD",
		Pricing:  core.PerOunce{Price: result.Price},
		Time:     time.Unix(result.Timestamp, 0),
	}}, nil
}

// goldapi.io response types
type spotResponse struct {
	Timestamp int64   `json:"timestamp"`
	Metal     string  `json:"metal"`
	Currency  string  `json:"currency"`
	Price     float64 `json:"price"`
}
