package sge

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vthang/goldpulse/internal/core"
)

const baseURL = "https://www.sge.com.cn/graph/Dailyhq"

// SGE fetches the Shanghai Gold Exchange Au99.99 daily quote,
// CNY per gram.
type SGE struct {
	client  *http.Client
	baseURL string
}

func New() *SGE {
	return &SGE{
		client:  &http.Client{Timeout: 20 * time.Second},
		baseURL: baseURL,
	}
}

// NewWithBaseURL creates an SGE adapter with a custom base URL (for testing).
func NewWithBaseURL(u string) *SGE {
	s := New()
	s.baseURL = u
	return s
}

func (s *SGE) Name() string { return "sge" }

// Fetch returns the latest Au99.99 close.
func (s *SGE) Fetch(ctx context.Context) ([]core.RawQuote, error) {
	form := url.Values{"instid": {"Au99.99"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching sge quote: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	// Response is {"time": [...], "data": [[date, price], ...]}
	var result dailyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if len(result.Data) == 0 {
		return nil, fmt.Errorf("sge returned no data points")
	}

	latest := result.Data[len(result.Data)-1]
	if len(latest) < 2 || latest[1] <= 0 {
		return nil, fmt.Errorf("malformed sge data point: %v", latest)
	}

	return []core.RawQuote{{
		Source:   "sge",
		Country:  core.CountryChina,
		Currency: "CNY",
		Pricing:  core.PerGram{Price: latest[1]},
		Time:     time.Now(),
	}}, nil
}

type dailyResponse struct {
	Time []string    `json:"time"`
	Data [][]float64 `json:"data"`
}
