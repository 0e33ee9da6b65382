package sjc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vthang/goldpulse/internal/core"
	"github.com/vthang/goldpulse/internal/provider"
)

func TestSJC_ImplementsAdapter(t *testing.T) {
	var _ provider.Adapter = (*SJC)(nil)
}

func TestSJC_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":[
			{"TypeName":"Vàng SJC 1L","BranchName":"Hồ Chí Minh","BuyValue":74500000,"SellValue":75500000},
			{"TypeName":"Nhẫn SJC 99,99","BranchName":"Hồ Chí Minh","BuyValue":62000000,"SellValue":63200000}
		]}`))
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
	if q.Currency != "VND" || q.Country != core.CountryVietnam {
		t.Errorf("unexpected quote identity: %+v", q)
	}
	bs, ok := q.Pricing.(core.BuySell)
	if !ok {
		t.Fatalf("pricing = %T, want BuySell", q.Pricing)
	}
	if bs.Buy != 74500000 || bs.Sell != 75500000 {
		t.Errorf("buy/sell = %f/%f, want 74500000/75500000", bs.Buy, bs.Sell)
	}
}

func TestSJC_FetchEmptyBoard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":[]}`))
	}))
	defer srv.Close()

	if _, err := NewWithBaseURL(srv.URL).Fetch(context.Background()); err == nil {
		t.Error("expected error for empty board")
	}
}

func TestParsePrice_DisplayFallback(t *testing.T) {
	got, err := parsePrice(0, "75,500")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 75500000 {
		t.Errorf("parsePrice = %f, want 75500000", got)
	}
}
