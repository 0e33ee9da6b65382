package fx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vthang/goldpulse/internal/core"
)

type stubSource struct {
	name  string
	table core.ExchangeRateTable
	err   error
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) FetchRates(ctx context.Context) (core.ExchangeRateTable, error) {
	return s.table, s.err
}

func TestChain_FallsBackOnFailure(t *testing.T) {
	good := core.NewExchangeRateTable("b", map[string]float64{"VND": 25400})
	chain := NewChain(nil,
		&stubSource{name: "a", err: errors.New("down")},
		&stubSource{name: "b", table: good},
	)

	table, err := chain.FetchRates(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Source != "b" {
		t.Errorf("table from %s, want b", table.Source)
	}
}

func TestChain_AllFailed(t *testing.T) {
	chain := NewChain(nil, &stubSource{name: "a", err: errors.New("down")})
	_, err := chain.FetchRates(context.Background())
	if !errors.Is(err, core.ErrNoExchangeRate) {
		t.Errorf("expected NO_EXCHANGE_RATE, got %v", err)
	}
}

func TestOpenERAPI_FetchRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":"success","rates":{"USD":1,"VND":25400,"CNY":7.2}}`))
	}))
	defer srv.Close()

	table, err := NewOpenERAPIWithBaseURL(srv.URL).FetchRates(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r, _ := table.Rate("VND"); r != 25400 {
		t.Errorf("VND = %f, want 25400", r)
	}
	if r, ok := table.Rate("USD"); !ok || r != 1 {
		t.Error("USD must be 1")
	}
}

func TestCurrencyAPI_UppercasesCodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"date":"2024-01-01","usd":{"vnd":25400,"thb":35.1}}`))
	}))
	defer srv.Close()

	table, err := NewCurrencyAPIWithBaseURL(srv.URL).FetchRates(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r, ok := table.Rate("THB"); !ok || r != 35.1 {
		t.Errorf("THB = %f, %v; want 35.1, true", r, ok)
	}
}
