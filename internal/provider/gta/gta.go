package gta

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/vthang/goldpulse/internal/core"
)

const baseURL = "https://apicheckprice.huasengheng.com/api/values/getprice/"

// Thai gold is quoted per baht-weight (1 baht-weight = 15.244 g of
// 96.5% bar gold).
const gramsPerBahtWeight = 15.244

// GTA fetches the Thai Gold Traders Association reference price via the
// Hua Seng Heng dealer API, THB per baht-weight.
type GTA struct {
	client  *http.Client
	baseURL string
}

func New() *GTA {
	return &GTA{
		client:  &http.Client{Timeout: 20 * time.Second},
		baseURL: baseURL,
	}
}

// NewWithBaseURL creates a GTA adapter with a custom base URL (for testing).
func NewWithBaseURL(u string) *GTA {
	g := New()
	g.baseURL = u
	return g
}

func (g *GTA) Name() string { return "gta" }

// Fetch returns the bar gold selling price converted to THB per gram.
func (g *GTA) Fetch(ctx context.Context) ([]core.RawQuote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching thai gold price: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var rows []priceRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	for _, row := range rows {
		if !strings.EqualFold(row.GoldType, "HSH") {
			continue
		}
		sell, err := strconv.ParseFloat(strings.ReplaceAll(row.Sell, ",", ""), 64)
		if err != nil {
			return nil, fmt.Errorf("parsing sell price %q: %w", row.Sell, err)
		}
		if sell <= 0 {
			return nil, fmt.Errorf("non-positive price: %f", sell)
		}
		return []core.RawQuote{{
			Source:   "gta",
			Country:  core.CountryThailand,
			Currency: "THB",
			Pricing:  core.PerGram{Price: sell / gramsPerBahtWeight},
			Time:     time.Now(),
		}}, nil
	}

	return nil, fmt.Errorf("no bar gold row in response")
}

type priceRow struct {
	GoldType string `json:"GoldType"`
	Buy      string `json:"Buy"`
	Sell     string `json:"Sell"`
	Time     string `json:"StrTimeUpdate"`
}
