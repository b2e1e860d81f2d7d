package compchart

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/ewanh/compchart/date"
)

// DefaultCPISeries is the BLS CPI-U series used when the plan does not say
// otherwise (all urban consumers, all items less food and energy).
const DefaultCPISeries = "CUUR0000SA0L1E"

// InflationAdjuster resolves a consumer-price index over the projection
// window and derives the display-only real-dollar reference. Its failures
// never block the rest of a projection.
type InflationAdjuster struct {
	provider IndexProvider
	series   string
}

// NewInflationAdjuster returns an adjuster for the given index series; an
// empty series id selects DefaultCPISeries.
func NewInflationAdjuster(provider IndexProvider, series string) *InflationAdjuster {
	if series == "" {
		series = DefaultCPISeries
	}
	return &InflationAdjuster{provider: provider, series: series}
}

// Resolve fetches the index covering the window with bounded retries.
func (a *InflationAdjuster) Resolve(ctx context.Context, window date.Range, growth float64) (*ResolvedIndex, error) {
	fetch := date.Range{From: window.From.AddMonths(-2), To: date.Today()}
	var h *date.History[float64]
	var err error
	for attempt := 1; attempt <= fetchAttempts; attempt++ {
		h, err = a.provider.FetchIndex(ctx, a.series, fetch)
		if err == nil {
			break
		}
		if ctx.Err() != nil {
			break
		}
		log.Printf("index fetch for %s failed (attempt %d/%d): %v", a.series, attempt, fetchAttempts, err)
		select {
		case <-time.After(retryBackoff):
		case <-ctx.Done():
		}
	}
	if err != nil {
		return nil, &UpstreamError{Provider: "index", Symbol: a.series, Err: err}
	}
	if h.Len() == 0 {
		return nil, &UpstreamError{Provider: "index", Symbol: a.series, Err: errNoPrices}
	}
	return &ResolvedIndex{index: h, growth: growth}, nil
}

// ResolvedIndex answers index lookups without further provider calls.
type ResolvedIndex struct {
	index  *date.History[float64]
	growth float64
}

// ValueAt returns the index value for the month containing the date,
// forward-filling within published history. Months beyond the latest
// published value extrapolate with continuous compounding at the assumed
// growth rate.
func (r *ResolvedIndex) ValueAt(on date.Date) float64 {
	lastDay, lastValue := r.index.Latest()
	if on.After(lastDay) {
		rate := r.growth - 1
		return lastValue * math.Exp(rate*date.Years(lastDay, on))
	}
	if v, ok := r.index.ValueAsOf(on); ok {
		return v
	}
	_, first := r.index.First()
	return first
}

// Factor returns the cumulative price-level change between two dates:
// a value of from-dollars multiplied by the factor is stated in to-dollars.
func (r *ResolvedIndex) Factor(from, to date.Date) float64 {
	return r.ValueAt(to) / r.ValueAt(from)
}

// ReferenceSeries restates a baseline amount (the total compensation at the
// window start) in the dollars of each sample date. It is a reference trace
// for the chart, not a compensation component, and is never summed into the
// total.
func (r *ResolvedIndex) ReferenceSeries(cal *Calendar, label string, baseline float64) *Series {
	out := cal.series(label)
	start := cal.Start()
	for on := range cal.Samples() {
		out.push(baseline * r.Factor(start, on))
	}
	return out
}
