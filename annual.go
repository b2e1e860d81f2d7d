package compchart

import (
	"github.com/ewanh/compchart/date"
)

// bonusEvent is one settled or synthesized annual bonus payment.
type bonusEvent struct {
	on     date.Date
	amount float64
}

// events lists every annual bonus payment falling on or before the window
// end: first the historical overrides (already-settled amounts, not
// re-amortized), then periods synthesized at yearly intervals from the last
// override (or the window start when there is none) using the default
// multiplier against the base pay in effect at each period's end.
func (a *AnnualBonusPlan) events(base *BasePaySchedule, window date.Range) []bonusEvent {
	var out []bonusEvent
	for _, o := range a.Past {
		out = append(out, bonusEvent{
			on:     o.AsOf,
			amount: o.Multiplier * base.AmountAt(o.AsOf).InexactFloat64(),
		})
	}

	next := window.From.AddYears(1)
	if n := len(a.Past); n > 0 {
		next = a.Past[n-1].AsOf.AddYears(1)
	}
	for ; !next.After(window.To); next = next.AddYears(1) {
		out = append(out, bonusEvent{
			on:     next,
			amount: a.Default * base.AmountAt(next).InexactFloat64(),
		})
	}
	return out
}

// Series emits the running total of bonus events recognized up to and
// including each calendar sample, consistent with the other components being
// cumulative contributions to total compensation.
func (a *AnnualBonusPlan) Series(cal *Calendar, base *BasePaySchedule) *Series {
	events := a.events(base, cal.Window())
	out := cal.series(a.Label)
	var sum float64
	i := 0
	for on := range cal.Samples() {
		for i < len(events) && !events[i].on.After(on) {
			sum += events[i].amount
			i++
		}
		out.push(sum)
	}
	return out
}
