package core

import "time"

// Weight conversion constants.
const (
	GramsPerTael  = 37.5    // Vietnamese lượng
	GramsPerOunce = 31.1035 // troy ounce
)

// Country identifies a gold market.
type Country string

const (
	CountryVietnam       Country = "VN"
	CountryChina         Country = "CN"
	CountryIndia         Country = "IN"
	CountryThailand      Country = "TH"
	CountryInternational Country = "INTL"
)

// RawQuote is one provider's observation before normalization.
type RawQuote struct {
	Source   string
	Country  Country
	Currency string
	Pricing  Pricing
	Time     time.Time
}

// IsValid checks if the quote carries a usable pricing shape.
func (q RawQuote) IsValid() bool {
	return q.Source != "" && q.Pricing != nil
}

// NormalizedQuote is the canonical comparable form of a quote.
// VNDPerTael is always VNDPerGram × 37.5; both are derived together.
type NormalizedQuote struct {
	Source           string  `json:"source"`
	Country          Country `json:"country"`
	OriginalCurrency string  `json:"original_currency"`
	OriginalPerGram  float64 `json:"original_per_gram"`
	VNDPerGram       float64 `json:"vnd_per_gram"`
	VNDPerTael       float64 `json:"vnd_per_tael"`
}

// ExchangeRateTable maps a currency code to units per 1 USD.
// USD is always present with rate 1.
type ExchangeRateTable struct {
	Rates  map[string]float64 `json:"rates"`
	Source string             `json:"source"`
	Time   time.Time          `json:"time"`
}

// NewExchangeRateTable builds a table with USD pinned to 1.
func NewExchangeRateTable(source string, rates map[string]float64) ExchangeRateTable {
	t := ExchangeRateTable{
		Rates:  make(map[string]float64, len(rates)+1),
		Source: source,
		Time:   time.Now(),
	}
	for code, r := range rates {
		t.Rates[code] = r
	}
	t.Rates["USD"] = 1
	return t
}

// Rate returns units-per-USD for a currency code.
func (t ExchangeRateTable) Rate(currency string) (float64, bool) {
	r, ok := t.Rates[currency]
	return r, ok
}

// HistoricalPoint is one trading day in a price series.
type HistoricalPoint struct {
	Date        time.Time `json:"date"`
	USDPerOunce float64   `json:"usd_per_ounce"`
	VNDPerGram  float64   `json:"vnd_per_gram"`
	VNDPerTael  float64   `json:"vnd_per_tael"`
}

// HistoricalSeries is an ordered, gap-tolerant sequence of daily points,
// ascending by date, no duplicate dates.
type HistoricalSeries []HistoricalPoint

// Drawdown is one peak→trough→recovery cycle detected in a series.
// RecoveryDate and DaysToRecovery are nil when the series ends before
// price regains the peak.
type Drawdown struct {
	PeakDate       time.Time  `json:"peak_date"`
	PeakPrice      float64    `json:"peak_price"`
	TroughDate     time.Time  `json:"trough_date"`
	TroughPrice    float64    `json:"trough_price"`
	DrawdownPct    float64    `json:"drawdown_pct"`
	RecoveryDate   *time.Time `json:"recovery_date,omitempty"`
	DaysToTrough   int        `json:"days_to_trough"`
	DaysToRecovery *int       `json:"days_to_recovery,omitempty"`
	Recovered      bool       `json:"recovered"`
}

// DrawdownSummary aggregates a set of drawdown events.
type DrawdownSummary struct {
	Count           int     `json:"count"`
	Recovered       int     `json:"recovered"`
	NotRecovered    int     `json:"not_recovered"`
	WorstPct        float64 `json:"worst_pct"`
	LongestRecovery int     `json:"longest_recovery_days"`
	AvgRecovery     float64 `json:"avg_recovery_days"`
}

// PremiumResult compares the local Vietnam quote to the normalized
// international benchmark.
type PremiumResult struct {
	PremiumPercent float64 `json:"premium_percent"`
	BenchmarkVND   float64 `json:"benchmark_vnd_per_tael"`
	LocalVND       float64 `json:"local_vnd_per_tael"`
}
