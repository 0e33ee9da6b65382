package fx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/vthang/goldpulse/internal/core"
)

const openERAPIBaseURL = "https://open.er-api.com/v6/latest/USD"

// OpenERAPI fetches the free open.er-api.com USD-based rate table.
type OpenERAPI struct {
	client  *http.Client
	baseURL string
}

func NewOpenERAPI() *OpenERAPI {
	return &OpenERAPI{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: openERAPIBaseURL,
	}
}

// NewOpenERAPIWithBaseURL creates the source with a custom URL (for testing).
func NewOpenERAPIWithBaseURL(u string) *OpenERAPI {
	o := NewOpenERAPI()
	o.baseURL = u
	return o
}

func (o *OpenERAPI) Name() string { return "open-er-api" }

func (o *OpenERAPI) FetchRates(ctx context.Context) (core.ExchangeRateTable, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL, nil)
	if err != nil {
		return core.ExchangeRateTable{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return core.ExchangeRateTable{}, fmt.Errorf("fetching rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return core.ExchangeRateTable{}, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result struct {
		Result string             `json:"result"`
		Rates  map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return core.ExchangeRateTable{}, fmt.Errorf("decoding response: %w", err)
	}
	if result.Result != "success" || len(result.Rates) == 0 {
		return core.ExchangeRateTable{}, fmt.Errorf("rate feed returned %q with %d rates",
			result.Result, len(result.Rates))
	}

	return core.NewExchangeRateTable(o.Name(), result.Rates), nil
}
