package core

// Pricing is the tagged union of quote shapes a provider can publish.
// Each variant knows how to derive a price per gram in the quote's
// native currency.
type Pricing interface {
	// PerGramPrice returns the price per gram in native currency.
	PerGramPrice() float64

	// Kind returns the variant name, used in warnings and artifacts.
	Kind() string
}

// PerGram is a quote already expressed per gram.
type PerGram struct {
	Price float64
}

func (p PerGram) PerGramPrice() float64 { return p.Price }
func (p PerGram) Kind() string          { return "per_gram" }

// PerOunce is a quote per troy ounce, the international convention.
type PerOunce struct {
	Price float64
}

func (p PerOunce) PerGramPrice() float64 { return p.Price / GramsPerOunce }
func (p PerOunce) Kind() string          { return "per_ounce" }

// PerTael is a quote per tael (37.5 g), the Vietnamese convention.
type PerTael struct {
	Price float64
}

func (p PerTael) PerGramPrice() float64 { return p.Price / GramsPerTael }
func (p PerTael) Kind() string          { return "per_tael" }

// BuySell is a two-way quote per tael. The sell side is what a buyer
// pays, so it drives normalization.
type BuySell struct {
	Buy  float64
	Sell float64
}

func (p BuySell) PerGramPrice() float64 { return p.Sell / GramsPerTael }
func (p BuySell) Kind() string          { return "buy_sell" }
