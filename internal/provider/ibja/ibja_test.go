package ibja

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vthang/goldpulse/internal/core"
)

func TestIBJA_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"date":"2026-08-28","gold999":"72450","gold995":"72160"}`))
	}))
	defer srv.Close()

	quotes, err := NewWithBaseURL(srv.URL).Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quotes) != 1 {
		t.Fatalf("got %d quotes, want 1", len(quotes))
	}

	q := quotes[0]
	if q.Currency != "INR" || q.Country != core.CountryIndia {
		t.Errorf("currency/country = %s/%s", q.Currency, q.Country)
	}
	// Published per 10 grams, rescaled.
	if got := q.Pricing.PerGramPrice(); math.Abs(got-7245) > 1e-9 {
		t.Errorf("per gram = %f, want 7245", got)
	}
}

func TestIBJA_MalformedRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"gold999":"n/a"}`))
	}))
	defer srv.Close()

	if _, err := NewWithBaseURL(srv.URL).Fetch(context.Background()); err == nil {
		t.Error("expected error for unparseable rate")
	}
}
