package fx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/vthang/goldpulse/internal/core"
)

const currencyAPIBaseURL = "https://cdn.jsdelivr.net/npm/@fawazahmed0/currency-api@latest/v1/currencies/usd.json"

// CurrencyAPI fetches the fawazahmed0 currency-api CDN snapshot, the
// FX fallback source. Currency codes arrive lowercase.
type CurrencyAPI struct {
	client  *http.Client
	baseURL string
}

func NewCurrencyAPI() *CurrencyAPI {
	return &CurrencyAPI{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: currencyAPIBaseURL,
	}
}

// NewCurrencyAPIWithBaseURL creates the source with a custom URL (for testing).
func NewCurrencyAPIWithBaseURL(u string) *CurrencyAPI {
	c := NewCurrencyAPI()
	c.baseURL = u
	return c
}

func (c *CurrencyAPI) Name() string { return "currency-api" }

func (c *CurrencyAPI) FetchRates(ctx context.Context) (core.ExchangeRateTable, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return core.ExchangeRateTable{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return core.ExchangeRateTable{}, fmt.Errorf("fetching rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return core.ExchangeRateTable{}, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result struct {
		USD map[string]float64 `json:"usd"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return core.ExchangeRateTable{}, fmt.Errorf("decoding response: %w", err)
	}
	if len(result.USD) == 0 {
		return core.ExchangeRateTable{}, fmt.Errorf("rate feed returned no rates")
	}

	rates := make(map[string]float64, len(result.USD))
	for code, r := range result.USD {
		rates[strings.ToUpper(code)] = r
	}
	return core.NewExchangeRateTable(c.Name(), rates), nil
}
