package compchart

import (
	"github.com/ewanh/compchart/date"
	"github.com/shopspring/decimal"
)

// AmountAt returns the annual salary in effect on the given date: the amount
// of the latest period whose effective date is on or before it. Before the
// first period pay has not started yet, so the amount is zero.
func (s *BasePaySchedule) AmountAt(on date.Date) decimal.Decimal {
	amount := decimal.Zero
	for _, period := range s.Periods {
		if period.Effective.After(on) {
			break
		}
		amount = period.Amount
	}
	return amount
}

// Series evaluates the schedule at every calendar sample.
func (s *BasePaySchedule) Series(cal *Calendar) *Series {
	out := cal.series(s.Label)
	for on := range cal.Samples() {
		out.push(s.AmountAt(on).InexactFloat64())
	}
	return out
}
