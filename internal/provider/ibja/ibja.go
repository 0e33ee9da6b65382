package ibja

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/vthang/goldpulse/internal/core"
)

const baseURL = "https://api.ibjarates.com/api/GoldRates/latest"

// IBJA fetches the India Bullion and Jewellers Association reference
// rate. Rates are published INR per 10 grams for 999 fine gold; the
// adapter rescales to per gram.
type IBJA struct {
	client  *http.Client
	baseURL string
}

func New() *IBJA {
	return &IBJA{
		client:  &http.Client{Timeout: 20 * time.Second},
		baseURL: baseURL,
	}
}

// NewWithBaseURL creates an IBJA adapter with a custom base URL (for testing).
func NewWithBaseURL(u string) *IBJA {
	i := New()
	i.baseURL = u
	return i
}

func (i *IBJA) Name() string { return "ibja" }

// Fetch returns the latest 999 fine gold rate.
func (i *IBJA) Fetch(ctx context.Context) ([]core.RawQuote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, i.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := i.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching ibja rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	per10g, err := strconv.ParseFloat(result.Gold999, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing gold999 rate %q: %w", result.Gold999, err)
	}
	if per10g <= 0 {
		return nil, fmt.Errorf("non-positive rate: %f", per10g)
	}

	return []core.RawQuote{{
		Source:   "ibja",
		Country:  core.CountryIndia,
		Currency: "INR",
		Pricing:  core.PerGram{Price: per10g / 10},
		Time:     time.Now(),
	}}, nil
}

type ratesResponse struct {
	Date    string `json:"date"`
	Gold999 string `json:"gold999"`
	Gold995 string `json:"gold995"`
}
