package btmc

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

const baseURL = "http://api.btmc.vn/api/BTMCAPI/getpricebtmc"

// BTMC fetches Bao Tin Minh Chau prices, the secondary Vietnamese
// source. The API returns rows as flat maps with indexed keys
// ("@n_1", "@pb_1", "@ps_1", ...), prices in VND per tael.
type BTMC struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// New creates a new BTMC adapter. The key is the public API token BTMC
// requires on every request.
func New(apiKey string) *BTMC {
	return &BTMC{
		client:  &http.Client{Timeout: 20 * time.Second},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// NewWithBaseURL creates a BTMC adapter with a custom base URL (for testing).
func NewWithBaseURL(apiKey, url string) *BTMC {
	b := New(apiKey)
	b.baseURL = url
	return b
}

func (b *BTMC) Name() string { return "btmc" }

// Ready reports whether the API token is configured.
func (b *BTMC) Ready() bool { return b.apiKey != "" }

// Fetch returns the BTMC quote for SJC-brand gold bars.
func (b *BTMC) Fetch(ctx context.Context) ([]core.RawQuote, error) {
	url := fmt.Sprintf("%s?key=%s", b.baseURL, b.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching btmc prices: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if len(result.DataList.Data) == 0 {
		return nil, fmt.Errorf("btmc returned no rows")
	}

	buy, sell, err := extractSJCBar(result.DataList.Data)
	if err != nil {
		return nil, err
	}

	return []core.RawQuote{{
		Source:   "btmc",
		Country:  core.CountryVietnam,
		Currency: "VND",
		Pricing:  core.BuySell{Buy: buy, Sell: sell},
		Time:     time.Now(),
	}}, nil
}

// extractSJCBar scans the indexed-key rows for the SJC gold bar entry.
func extractSJCBar(rows []map[string]string) (buy, sell float64, err error) {
	for _, row := range rows {
		for key, name := range row {
			if !strings.HasPrefix(key, "@n_") {
				continue
			}
			if !strings.Contains(strings.ToUpper(name), "SJC") {
				continue
			}
			idx := strings.TrimPrefix(key, "@n_")
			buy, err = parseField(row, "@pb_"+idx)
			if err != nil {
				return 0, 0, fmt.Errorf("row %s buy: %w", idx, err)
			}
			sell, err = parseField(row, "@ps_"+idx)
			if err != nil {
				return 0, 0, fmt.Errorf("row %s sell: %w", idx, err)
			}
			return buy, sell, nil
		}
	}
	return 0, 0, fmt.Errorf("no SJC bar row in btmc response")
}

func parseField(row map[string]string, key string) (float64, error) {
	raw, ok := row[key]
	if !ok {
		return 0, fmt.Errorf("missing field %s", key)
	}
	return strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
}

// BTMC API response types
type apiResponse struct {
	DataList struct {
		Data []map[string]string `json:"Data"`
	} `json:"DataList"`
}
