package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/vthang/goldpulse/internal/core"
)

const (
	baseURL = "https://query1.finance.yahoo.com/v8/finance/chart"
	symbol  = "XAUUSD=X"
)

// Yahoo fetches the XAU/USD spot price and daily history from the
// Yahoo Finance chart API. It is the last benchmark fallback and the
// only benchmark adapter serving history.
type Yahoo struct {
	client  *http.Client
	baseURL string
}

// New creates a new Yahoo adapter.
func New() *Yahoo {
	return &Yahoo{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: baseURL,
	}
}

// NewWithBaseURL creates a Yahoo adapter with a custom base URL (for testing).
func NewWithBaseURL(url string) *Yahoo {
	y := New()
	y.baseURL = url
	return y
}

func (y *Yahoo) Name() string { return "yahoo" }

// Fetch returns the latest XAU/USD quote.
func (y *Yahoo) Fetch(ctx context.Context) ([]core.RawQuote, error) {
	url := fmt.Sprintf("%s/%s?interval=1d&range=1d", y.baseURL, symbol)

	result, err := y.getChart(ctx, url)
	if err != nil {
		return nil, err
	}

	meta := result.Chart.Result[0].Meta
	if meta.RegularMarketPrice <= 0 {
		return nil, fmt.Errorf("non-positive price: %f", meta.RegularMarketPrice)
	}

	return []core.RawQuote{{
		Source:   "yahoo",
		Country:  core.CountryInternational,
		Currency: "USD",
		Pricing:  core.PerOunce{Price: meta.RegularMarketPrice},
		Time:     time.Unix(int64(meta.RegularMarketTime), 0),
	}}, nil
}

// FetchHistory returns up to days of daily USD/oz closes, oldest first.
func (y *Yahoo) FetchHistory(ctx context.Context, days int) (core.HistoricalSeries, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -days)
	url := fmt.Sprintf("%s/%s?interval=1d&period1=%d&period2=%d",
		y.baseURL, symbol, start.Unix(), end.Unix())

	result, err := y.getChart(ctx, url)
	if err != nil {
		return nil, err
	}

	r := result.Chart.Result[0]
	if len(r.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no quote indicators in chart")
	}
	closes := r.Indicators.Quote[0].Close

	series := make(core.HistoricalSeries, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue // gap day
		}
		day := time.Unix(int64(ts), 0).UTC().Truncate(24 * time.Hour)
		series = append(series, core.HistoricalPoint{
			Date:        day,
			USDPerOunce: *closes[i],
		})
	}

	if len(series) == 0 {
		return nil, fmt.Errorf("chart contained no usable closes")
	}
	return series, nil
}

func (y *Yahoo) getChart(ctx context.Context, url string) (*chartResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := y.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching chart: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if result.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo error: %s", result.Chart.Error.Description)
	}
	if len(result.Chart.Result) == 0 {
		return nil, fmt.Errorf("no chart data for %s", symbol)
	}
	return &result, nil
}

// Yahoo chart API response types
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta       chartMeta  `json:"meta"`
	Timestamp  []int      `json:"timestamp"`
	Indicators indicators `json:"indicators"`
}

type chartMeta struct {
	Symbol             string  `json:"symbol"`
	RegularMarketPrice float64 `json:"regularMarketPrice"`
	RegularMarketTime  int     `json:"regularMarketTime"`
}

type indicators struct {
	Quote []quoteIndicator `json:"quote"`
}

type quoteIndicator struct {
	Close []*float64 `json:"close"`
}
