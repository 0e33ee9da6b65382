package sjc

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

const baseURL = "https://sjc.com.vn/GoldPrice/Services/PriceService.ashx"

// SJC fetches the Saigon Jewelry Company board, the reference quote for
// the Vietnamese market. Prices are VND per tael, buy/sell two-way.
type SJC struct {
	client  *http.Client
	baseURL string
}

// New creates a new SJC adapter.
func New() *SJC {
	return &SJC{
		client:  &http.Client{Timeout: 20 * time.Second},
		baseURL: baseURL,
	}
}

// NewWithBaseURL creates an SJC adapter with a custom base URL (for testing).
func NewWithBaseURL(url string) *SJC {
	s := New()
	s.baseURL = url
	return s
}

func (s *SJC) Name() string { return "sjc" }

// Fetch returns the SJC gold bar quote for Ho Chi Minh City.
func (s *SJC) Fetch(ctx context.Context) ([]core.RawQuote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching sjc board: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result priceResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if !result.Success || len(result.Data) == 0 {
		return nil, fmt.Errorf("sjc board empty")
	}

	row := pickGoldBar(result.Data)
	if row == nil {
		return nil, fmt.Errorf("no gold bar row on sjc board")
	}

	buy, err := parsePrice(row.BuyValue, row.Buy)
	if err != nil {
		return nil, fmt.Errorf("parsing buy price: %w", err)
	}
	sell, err := parsePrice(row.SellValue, row.Sell)
	if err != nil {
		return nil, fmt.Errorf("parsing sell price: %w", err)
	}

	return []core.RawQuote{{
		Source:   "sjc",
		Country:  core.CountryVietnam,
		Currency: "VND",
		Pricing:  core.BuySell{Buy: buy, Sell: sell},
		Time:     time.Now(),
	}}, nil
}

// pickGoldBar prefers the 1-tael gold bar row from the HCMC branch.
func pickGoldBar(rows []priceRow) *priceRow {
	for i := range rows {
		name := strings.ToUpper(rows[i].TypeName)
		if strings.Contains(name, "SJC") && !strings.Contains(name, "NHẪN") {
			return &rows[i]
		}
	}
	return &rows[0]
}

// parsePrice takes the numeric field when set, else parses the display
// string ("75,500" means thousand VND per tael on the SJC board).
func parsePrice(value float64, display string) (float64, error) {
	if value > 0 {
		return value, nil
	}
	clean := strings.ReplaceAll(strings.TrimSpace(display), ",", "")
	n, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, err
	}
	return n * 1000, nil
}

// SJC API response types
type priceResponse struct {
	Success bool       `json:"success"`
	Data    []priceRow `json:"data"`
}

type priceRow struct {
	TypeName   string  `json:"TypeName"`
	BranchName string  `json:"BranchName"`
	Buy        string  `json:"Buy"`
	BuyValue   float64 `json:"BuyValue"`
	Sell       string  `json:"Sell"`
	SellValue  float64 `json:"SellValue"`
}
