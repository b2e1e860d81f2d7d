package compchart

import (
	"context"
	"log"
	"math"
	"sync"
	"time"

	"github.com/ewanh/compchart/date"
)

// fetchAttempts bounds the local retry budget against a provider before an
// UpstreamError surfaces.
const fetchAttempts = 3

// retryBackoff is the pause between provider attempts.
const retryBackoff = 500 * time.Millisecond

// PriceCache shares fetched price histories across requests. It is
// read-mostly: writers populate whole entries keyed by (symbol, range), each
// insert atomic under the lock, and entries expire after the TTL so prices
// for "today" eventually refresh.
type PriceCache struct {
	ttl time.Duration

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	history   *date.History[float64]
	fetchedAt time.Time
}

// NewPriceCache returns a cache whose entries expire after ttl. A ttl above
// one day is clamped: a stale close for the current trading day must refresh
// within a day.
func NewPriceCache(ttl time.Duration) *PriceCache {
	if ttl > 24*time.Hour {
		ttl = 24 * time.Hour
	}
	return &PriceCache{ttl: ttl, entries: make(map[string]cacheEntry)}
}

func (c *PriceCache) get(key string) (*date.History[float64], bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || time.Since(e.fetchedAt) > c.ttl {
		return nil, false
	}
	return e.history, true
}

func (c *PriceCache) put(key string, h *date.History[float64]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{history: h, fetchedAt: time.Now()}
}

// Pricer resolves the price of a symbol at any date: historical closes with
// forward-fill over non-trading days, and predicted prices beyond the latest
// known close using the plan's inflation assumption as yearly growth factor.
type Pricer struct {
	provider PriceProvider
	cache    *PriceCache
}

// NewPricer returns a pricer backed by the given provider. A nil cache gets a
// private one with a one-day TTL.
func NewPricer(provider PriceProvider, cache *PriceCache) *Pricer {
	if cache == nil {
		cache = NewPriceCache(24 * time.Hour)
	}
	return &Pricer{provider: provider, cache: cache}
}

// history returns the close history for symbol covering the range, fetching
// through the provider with bounded retries on a cache miss.
func (p *Pricer) history(ctx context.Context, symbol string, r date.Range) (*date.History[float64], error) {
	key := symbol + "/" + r.Identifier()
	if h, ok := p.cache.get(key); ok {
		return h, nil
	}

	var h *date.History[float64]
	var err error
	for attempt := 1; attempt <= fetchAttempts; attempt++ {
		h, err = p.provider.FetchDailyCloses(ctx, symbol, r)
		if err == nil {
			break
		}
		if ctx.Err() != nil {
			break
		}
		log.Printf("price fetch for %s failed (attempt %d/%d): %v", symbol, attempt, fetchAttempts, err)
		select {
		case <-time.After(retryBackoff):
		case <-ctx.Done():
		}
	}
	if err != nil {
		return nil, &UpstreamError{Provider: "price", Symbol: symbol, Err: err}
	}
	if h.Len() == 0 {
		return nil, &UpstreamError{Provider: "price", Symbol: symbol, Err: errNoPrices}
	}

	p.cache.put(key, h)
	return h, nil
}

// Resolve fetches and caches the price history needed to value a symbol over
// the given range, and returns a resolver for point lookups. The fetched
// range is widened a few days backwards so the first sample can forward-fill
// from a prior trading day, and extends to today so the latest known close is
// always on hand for prediction.
func (p *Pricer) Resolve(ctx context.Context, symbol string, r date.Range, growth float64) (*ResolvedPrices, error) {
	fetch := date.Range{From: r.From.Add(-7), To: date.Today()}
	if fetch.To.Before(r.To) {
		// Window entirely in the past still only needs history up to its end.
		fetch.To = r.To
	}
	h, err := p.history(ctx, symbol, fetch)
	if err != nil {
		return nil, err
	}
	return &ResolvedPrices{symbol: symbol, closes: h, growth: growth}, nil
}

// ResolvedPrices holds a fetched close history and answers PriceAt without
// further provider calls. It is request-scoped and read-only.
type ResolvedPrices struct {
	symbol string
	closes *date.History[float64]
	growth float64 // yearly growth factor for dates beyond known history
}

// Symbol returns the symbol the prices belong to.
func (r *ResolvedPrices) Symbol() string { return r.symbol }

// PriceAt returns the price of the symbol on the given date.
//
// Dates on or before the latest known trading day forward-fill from the most
// recent prior close (weekends, holidays). Dates after it are predicted as
// lastClose * growth^years. Dates before the first recorded close resolve to
// that first close.
func (r *ResolvedPrices) PriceAt(on date.Date) float64 {
	lastDay, lastClose := r.closes.Latest()
	if on.After(lastDay) {
		return lastClose * math.Pow(r.growth, date.Years(lastDay, on))
	}
	if price, ok := r.closes.ValueAsOf(on); ok {
		return price
	}
	// Before recorded history: the first close is the best available anchor.
	_, first := r.closes.First()
	return first
}
