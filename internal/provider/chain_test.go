package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vthang/goldpulse/internal/core"
)

type stubAdapter struct {
	name   string
	quotes []core.RawQuote
	err    error
	gated  bool
	ready  bool
	calls  int
}

func (s *stubAdapter) Name() string { return s.name }

func (s *stubAdapter) Fetch(ctx context.Context) ([]core.RawQuote, error) {
	s.calls++
	return s.quotes, s.err
}

type gatedStub struct{ stubAdapter }

func (g *gatedStub) Ready() bool { return g.ready }

func okQuote(source string) []core.RawQuote {
	return []core.RawQuote{{
		Source:   source,
		Country:  core.CountryVietnam,
		Currency: "VND",
		Pricing:  core.PerTael{Price: 75000000},
		Time:     time.Now(),
	}}
}

func TestChain_FirstSuccessWins(t *testing.T) {
	a := &stubAdapter{name: "a", err: errors.New("a down")}
	b := &stubAdapter{name: "b", err: errors.New("b down")}
	c := &stubAdapter{name: "c", quotes: okQuote("c")}
	d := &stubAdapter{name: "d", quotes: okQuote("d")}

	chain := NewChain("vietnam", nil, a, b, c, d)
	quotes, err := chain.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quotes[0].Source != "c" {
		t.Errorf("got quotes from %s, want c", quotes[0].Source)
	}
	if d.calls != 0 {
		t.Error("adapter after first success must not be invoked")
	}
}

func TestChain_ReturnsLastError(t *testing.T) {
	first := errors.New("first failure")
	last := errors.New("last failure")
	chain := NewChain("vietnam", nil,
		&stubAdapter{name: "a", err: first},
		&stubAdapter{name: "b", err: last},
	)

	_, err := chain.Fetch(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, last) {
		t.Errorf("expected last error to propagate, got %v", err)
	}
	if errors.Is(err, first) {
		t.Error("first error should not propagate")
	}
	if !errors.Is(err, core.ErrProviderFailed) {
		t.Error("expected PROVIDER_FAILED code")
	}
}

func TestChain_SkipsUngatedCredential(t *testing.T) {
	gated := &gatedStub{stubAdapter{name: "keyed", quotes: okQuote("keyed")}}
	gated.ready = false
	open := &stubAdapter{name: "open", quotes: okQuote("open")}

	chain := NewChain("benchmark", nil, gated, open)
	quotes, err := chain.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gated.calls != 0 {
		t.Error("gated adapter without credential must be skipped")
	}
	if quotes[0].Source != "open" {
		t.Errorf("got %s, want open", quotes[0].Source)
	}
}

func TestChain_AllSkippedIsError(t *testing.T) {
	gated := &gatedStub{stubAdapter{name: "keyed", quotes: okQuote("keyed")}}
	gated.ready = false

	chain := NewChain("benchmark", nil, gated)
	_, err := chain.Fetch(context.Background())
	if err == nil {
		t.Fatal("expected error when every adapter is skipped")
	}
}

func TestChain_EmptyQuotesCountAsFailure(t *testing.T) {
	empty := &stubAdapter{name: "empty"}
	good := &stubAdapter{name: "good", quotes: okQuote("good")}

	chain := NewChain("vietnam", nil, empty, good)
	quotes, err := chain.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quotes[0].Source != "good" {
		t.Error("empty result should fall through to next adapter")
	}
}
