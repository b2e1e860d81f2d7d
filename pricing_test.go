package compchart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ewanh/compchart/date"
)

func TestPricerResolveForwardFills(t *testing.T) {
	provider := constantPrices(100, "2022-01-03", "2022-06-30")
	// Distinct closes around a weekend so the fill source is observable.
	provider.history.Append(day("2022-01-07"), 110) // Friday
	provider.history.Append(day("2022-01-10"), 120) // Monday

	pricer := NewPricer(provider, nil)
	resolved, err := pricer.Resolve(context.Background(), "ACME", date.Range{From: day("2022-01-10"), To: day("2022-06-30")}, 1.0)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.Symbol() != "ACME" {
		t.Errorf("Symbol() = %q, want ACME", resolved.Symbol())
	}
	tests := []struct {
		on   string
		want float64
	}{
		{"2022-01-07", 110}, // trading day, exact close
		{"2022-01-08", 110}, // Saturday fills from Friday
		{"2022-01-09", 110}, // Sunday too
		{"2022-01-10", 120}, // Monday has its own close
		{"2021-06-01", 100}, // before recorded history anchors to the first close
	}
	for _, tc := range tests {
		if got := resolved.PriceAt(day(tc.on)); got != tc.want {
			t.Errorf("PriceAt(%s) = %g, want %g", tc.on, got, tc.want)
		}
	}
}

func TestPricerPredictsBeyondHistory(t *testing.T) {
	provider := constantPrices(100, "2022-01-03", "2022-06-30")
	pricer := NewPricer(provider, nil)
	resolved, err := pricer.Resolve(context.Background(), "ACME", date.Range{From: day("2022-01-10"), To: day("2024-06-30")}, 1.05)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	// Last close is 100 on 2022-06-30; one year out grows by about 5%.
	if got := resolved.PriceAt(day("2023-06-30")); !within(got, 105, 0.1) {
		t.Errorf("PriceAt one year out = %g, want about 105", got)
	}
	if got := resolved.PriceAt(day("2024-06-30")); !within(got, 110.25, 0.2) {
		t.Errorf("PriceAt two years out = %g, want about 110.25", got)
	}
	// Flat growth factor means the prediction is flat too.
	flat, err := pricer.Resolve(context.Background(), "ACME2", date.Range{From: day("2022-01-10"), To: day("2024-06-30")}, 1.0)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := flat.PriceAt(day("2030-01-01")); got != 100 {
		t.Errorf("PriceAt with growth 1.0 = %g, want 100", got)
	}
}

func TestPricerCachesByRange(t *testing.T) {
	provider := constantPrices(100, "2022-01-03", "2022-06-30")
	cache := NewPriceCache(time.Hour)
	pricer := NewPricer(provider, cache)

	window := date.Range{From: day("2022-01-10"), To: day("2022-06-30")}
	for i := 0; i < 3; i++ {
		if _, err := pricer.Resolve(context.Background(), "ACME", window, 1.0); err != nil {
			t.Fatalf("Resolve #%d: %v", i, err)
		}
	}
	if got := provider.calls.Load(); got != 1 {
		t.Errorf("provider called %d times for an identical request, want 1", got)
	}

	// A different window misses the cache.
	other := date.Range{From: day("2022-02-10"), To: day("2022-06-30")}
	if _, err := pricer.Resolve(context.Background(), "ACME", other, 1.0); err != nil {
		t.Fatal(err)
	}
	if got := provider.calls.Load(); got != 2 {
		t.Errorf("provider called %d times after a distinct request, want 2", got)
	}
}

func TestPricerRetriesThenFails(t *testing.T) {
	provider := &fakePrices{err: errProviderDown}
	pricer := NewPricer(provider, nil)
	_, err := pricer.Resolve(context.Background(), "ACME", date.Range{From: day("2022-01-10"), To: day("2022-06-30")}, 1.0)
	if err == nil {
		t.Fatal("Resolve succeeded with a failing provider")
	}
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Errorf("err = %v, want ErrUpstreamUnavailable", err)
	}
	if !errors.Is(err, errProviderDown) {
		t.Errorf("err = %v, want wrapped provider cause", err)
	}
	if got := provider.calls.Load(); got != fetchAttempts {
		t.Errorf("provider called %d times, want %d", got, fetchAttempts)
	}
}

func TestPricerRejectsEmptyHistory(t *testing.T) {
	provider := &fakePrices{history: new(date.History[float64])}
	pricer := NewPricer(provider, nil)
	_, err := pricer.Resolve(context.Background(), "GHOST", date.Range{From: day("2022-01-10"), To: day("2022-06-30")}, 1.0)
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Errorf("err = %v, want ErrUpstreamUnavailable for an empty history", err)
	}
	// A bad response must not be cached.
	if got := provider.calls.Load(); got != 1 {
		t.Errorf("provider called %d times, want 1 (empty history is not retried)", got)
	}
}

func TestPriceCacheExpires(t *testing.T) {
	cache := NewPriceCache(time.Nanosecond)
	h := new(date.History[float64])
	h.Append(day("2022-01-03"), 100)
	cache.put("ACME/x", h)
	time.Sleep(time.Millisecond)
	if _, ok := cache.get("ACME/x"); ok {
		t.Error("expired entry still served")
	}
}
