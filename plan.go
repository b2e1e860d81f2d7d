package compchart

import (
	"errors"
	"slices"

	"github.com/ewanh/compchart/date"
	"github.com/shopspring/decimal"
)

// PayPeriod is one step of the base salary history: the annual amount in
// effect from its effective date until superseded.
type PayPeriod struct {
	Effective date.Date
	Amount    decimal.Decimal // annual amount, >= 0
}

// BasePaySchedule is the ordered, non-empty salary history of a single
// sequential employer. Periods are sorted ascending by effective date and
// effective dates are unique.
type BasePaySchedule struct {
	Label   string
	Periods []PayPeriod
}

// VestingDuration expresses a signing bonus vesting duration in calendar
// units. It is resolved against the projection window start.
type VestingDuration struct {
	Years  int
	Months int
	Days   int
}

// IsZero reports whether the duration is zero in all units.
func (v VestingDuration) IsZero() bool { return v.Years == 0 && v.Months == 0 && v.Days == 0 }

// endFrom resolves the duration to its end date anchored at start.
func (v VestingDuration) endFrom(start date.Date) date.Date {
	return start.AddYears(v.Years).AddMonths(v.Months).Add(v.Days)
}

// SigningBonus is a one-time bonus recognized linearly over its vesting
// duration, anchored at the projection window start.
type SigningBonus struct {
	Label    string
	Amount   decimal.Decimal // >= 0
	Duration VestingDuration
}

// BonusOverride records a completed annual bonus period: the multiplier
// applies to the base pay in effect at the period's end (AsOf).
type BonusOverride struct {
	AsOf       date.Date
	Multiplier float64 // in [0, 1]
}

// AnnualBonusPlan derives bonus amounts per annual period from historical
// overrides, then from the default multiplier for periods still to come.
type AnnualBonusPlan struct {
	Label   string
	Default float64 // in [0, 1]
	Past    []BonusOverride
}

// StockGrant is an equity grant vesting linearly and cliff-less between Start
// and End, valued through the symbol's resolved price.
type StockGrant struct {
	Label  string
	Symbol string
	Shares decimal.Decimal // >= 0
	Start  date.Date
	End    date.Date
}

// Assumptions holds the projection window and the predicted annual inflation
// growth factor, used both for price prediction beyond known history and for
// the real-dollar reference series.
type Assumptions struct {
	Window    date.Range
	Inflation float64 // annual growth factor, >= 1.0
}

// CompensationPlan is the root of a projection request. It is parsed and
// validated once at the boundary and treated as read-only afterwards.
type CompensationPlan struct {
	Assumptions Assumptions
	Base        BasePaySchedule
	Signing     SigningBonus
	Annual      AnnualBonusPlan
	Stocks      []StockGrant
}

// Validate checks every plan invariant and returns all violations joined.
// Field names in the errors follow the wire payload, so a client can map them
// back onto its form.
func (p *CompensationPlan) Validate() error {
	var errs error
	fail := func(field, format string, args ...any) {
		errs = errors.Join(errs, invalidf(field, format, args...))
	}

	w := p.Assumptions.Window
	if w.From.IsZero() || w.To.IsZero() {
		fail("misc", "startDate and endDate are required")
	} else if !w.From.Before(w.To) {
		fail("misc", "startDate %s must be before endDate %s", w.From, w.To)
	}
	if p.Assumptions.Inflation < 1.0 {
		fail("misc.predictedInflation", "must be a growth factor >= 1.0 (e.g. 1.03 for 3%%), got %g", p.Assumptions.Inflation)
	}

	if len(p.Base.Periods) == 0 {
		fail("base.pay", "at least one pay period is required")
	}
	for i, period := range p.Base.Periods {
		if period.Amount.IsNegative() {
			fail("base.pay", "period %d: amount must be >= 0, got %s", i, period.Amount)
		}
		if i == 0 {
			continue
		}
		prev := p.Base.Periods[i-1]
		if period.Effective == prev.Effective {
			fail("base.pay", "duplicate effective date %s", period.Effective)
		} else if period.Effective.Before(prev.Effective) {
			fail("base.pay", "periods must be sorted ascending by startDate, %s after %s", prev.Effective, period.Effective)
		}
	}

	if p.Signing.Amount.IsNegative() {
		fail("bonus.signing.amount", "must be >= 0, got %s", p.Signing.Amount)
	}
	d := p.Signing.Duration
	if d.Years < 0 || d.Months < 0 || d.Days < 0 {
		fail("bonus.signing.duration", "units must be >= 0, got %+v", d)
	}

	if p.Annual.Default < 0 || p.Annual.Default > 1 {
		fail("bonus.annual.default", "multiplier must be in [0, 1], got %g", p.Annual.Default)
	}
	for i, o := range p.Annual.Past {
		if o.Multiplier < 0 || o.Multiplier > 1 {
			fail("bonus.annual.past", "override %d: multiplier must be in [0, 1], got %g", i, o.Multiplier)
		}
		if i > 0 && !p.Annual.Past[i-1].AsOf.Before(o.AsOf) {
			fail("bonus.annual.past", "invalid bonus schedule: overrides must be sorted ascending by endDate, %s not before %s",
				p.Annual.Past[i-1].AsOf, o.AsOf)
		}
	}

	for i, g := range p.Stocks {
		if g.Symbol == "" {
			fail("stocks", "grant %d (%s): ticker is required", i, g.Label)
		}
		if g.Shares.IsNegative() {
			fail("stocks", "grant %d (%s): shares must be >= 0, got %s", i, g.Label, g.Shares)
		}
		if g.Start.IsZero() || g.End.IsZero() {
			fail("stocks", "grant %d (%s): startDate and endDate are required", i, g.Label)
		} else if g.End.Before(g.Start) {
			fail("stocks", "grant %d (%s): endDate %s is before startDate %s", i, g.Label, g.End, g.Start)
		}
	}

	return errs
}

// Symbols returns the distinct stock symbols of the plan, in plan order.
func (p *CompensationPlan) Symbols() []string {
	symbols := make([]string, 0, len(p.Stocks))
	for _, g := range p.Stocks {
		if !slices.Contains(symbols, g.Symbol) {
			symbols = append(symbols, g.Symbol)
		}
	}
	return symbols
}

// Equal reports whether two plans are identical field for field.
func (p *CompensationPlan) Equal(q *CompensationPlan) bool {
	if p.Assumptions != q.Assumptions ||
		p.Base.Label != q.Base.Label ||
		p.Signing.Label != q.Signing.Label ||
		!p.Signing.Amount.Equal(q.Signing.Amount) ||
		p.Signing.Duration != q.Signing.Duration ||
		p.Annual.Label != q.Annual.Label ||
		p.Annual.Default != q.Annual.Default {
		return false
	}
	if !slices.EqualFunc(p.Base.Periods, q.Base.Periods, func(a, b PayPeriod) bool {
		return a.Effective == b.Effective && a.Amount.Equal(b.Amount)
	}) {
		return false
	}
	if !slices.Equal(p.Annual.Past, q.Annual.Past) {
		return false
	}
	return slices.EqualFunc(p.Stocks, q.Stocks, func(a, b StockGrant) bool {
		return a.Label == b.Label && a.Symbol == b.Symbol &&
			a.Shares.Equal(b.Shares) && a.Start == b.Start && a.End == b.End
	})
}
