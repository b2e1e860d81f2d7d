package compchart

import (
	"github.com/ewanh/compchart/date"
)

// VestedFraction returns the share of the grant vested on the given date.
// Vesting is linear and cliff-less across [Start, End]; a zero-length window
// vests everything at that single date.
func (g *StockGrant) VestedFraction(on date.Date) float64 {
	if on.Before(g.Start) {
		return 0
	}
	total := date.Days(g.Start, g.End)
	if total <= 0 {
		return 1
	}
	f := float64(date.Days(g.Start, on)) / float64(total)
	if f > 1 {
		return 1
	}
	return f
}

// VestedShares returns the number of shares vested on the given date.
func (g *StockGrant) VestedShares(on date.Date) float64 {
	return g.Shares.InexactFloat64() * g.VestedFraction(on)
}

// Series emits the cumulative dollar value of the vested shares at each
// calendar sample, marked to the price resolved at that sample. Recomputing
// the price at every sample means the series reflects market movement of
// already-vested shares, not only the vesting schedule.
func (g *StockGrant) Series(cal *Calendar, prices *ResolvedPrices) *Series {
	out := cal.series(g.Label)
	for on := range cal.Samples() {
		shares := g.VestedShares(on)
		if shares == 0 {
			out.push(0)
			continue
		}
		out.push(shares * prices.PriceAt(on))
	}
	return out
}
