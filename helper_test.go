package compchart

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/ewanh/compchart/date"
	"github.com/shopspring/decimal"
)

// day is a test shorthand for literal dates.
func day(s string) date.Date { return date.MustParse(s) }

func amount(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// flatPlan returns a minimal valid plan: one flat base salary over the window,
// no signing bonus, no annual bonus, no stocks.
func flatPlan(salary float64, from, to string) *CompensationPlan {
	return &CompensationPlan{
		Assumptions: Assumptions{
			Window:    date.Range{From: day(from), To: day(to)},
			Inflation: 1.03,
		},
		Base: BasePaySchedule{
			Label:   "Base Salary",
			Periods: []PayPeriod{{Effective: day(from), Amount: amount(salary)}},
		},
		Signing: SigningBonus{Label: "Signing Bonus"},
		Annual:  AnnualBonusPlan{Label: "Annual Bonus"},
	}
}

// fakePrices serves a fixed close history and counts provider calls.
type fakePrices struct {
	history *date.History[float64]
	err     error
	calls   atomic.Int32
}

func (f *fakePrices) FetchDailyCloses(context.Context, string, date.Range) (*date.History[float64], error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.history, nil
}

// constantPrices builds a provider quoting the same close on every weekday of
// the range.
func constantPrices(close float64, from, to string) *fakePrices {
	h := new(date.History[float64])
	for d := range (date.Range{From: day(from), To: day(to)}).Days() {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		h.Append(d, close)
	}
	return &fakePrices{history: h}
}

// fakeIndex serves a fixed index history.
type fakeIndex struct {
	history *date.History[float64]
	err     error
}

func (f *fakeIndex) FetchIndex(context.Context, string, date.Range) (*date.History[float64], error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.history, nil
}

var errProviderDown = errors.New("provider down")

func within(got, want, tolerance float64) bool {
	diff := got - want
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}

// valueOn returns the series value at the given sample date, failing the
// lookup with ok=false when the date is not on the axis.
func valueOn(s *Series, on date.Date) (float64, bool) {
	for d, v := range s.Points() {
		if d == on {
			return v, true
		}
	}
	return 0, false
}

func traceByName(traces []Trace, name string) (Trace, bool) {
	for _, t := range traces {
		if t.Name == name {
			return t, true
		}
	}
	return Trace{}, false
}
