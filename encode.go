package compchart

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ewanh/compchart/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// This file contains the wire form of a CompensationPlan. The payload is
// loosely typed on the browser side, so it is decoded into the structs below
// and converted into a validated CompensationPlan before any computation
// touches it.

type wirePlan struct {
	Misc   wireMisc    `json:"misc"`
	Base   wireBase    `json:"base"`
	Bonus  wireBonus   `json:"bonus"`
	Stocks []wireStock `json:"stocks"`
}

type wireMisc struct {
	StartDate          date.Date `json:"startDate"`
	EndDate            date.Date `json:"endDate"`
	PredictedInflation float64   `json:"predictedInflation"`
}

type wireBase struct {
	Name string        `json:"name"`
	Pay  []wirePayStep `json:"pay"`
}

type wirePayStep struct {
	StartDate date.Date       `json:"startDate"`
	Amount    decimal.Decimal `json:"amount"`
}

type wireBonus struct {
	Signing wireSigning `json:"signing"`
	Annual  wireAnnual  `json:"annual"`
}

type wireSigning struct {
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	Duration wireDuration    `json:"duration"`
}

type wireDuration struct {
	Years  int `json:"years"`
	Months int `json:"months"`
	Days   int `json:"days"`
}

type wireAnnual struct {
	Name    string         `json:"name"`
	Default float64        `json:"default"`
	Past    []wireOverride `json:"past"`
}

type wireOverride struct {
	EndDate    date.Date `json:"endDate"`
	Multiplier float64   `json:"multiplier"`
}

type wireStock struct {
	Name      string          `json:"name"`
	Ticker    string          `json:"ticker"`
	StartDate date.Date       `json:"startDate"`
	EndDate   date.Date       `json:"endDate"`
	Shares    decimal.Decimal `json:"shares"`
}

// DecodePlan decodes a plan from its JSON wire form and validates it.
func DecodePlan(r io.Reader) (*CompensationPlan, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var w wirePlan
	if err := dec.Decode(&w); err != nil {
		return nil, invalidf("plan", "malformed JSON: %v", err)
	}
	plan := w.plan()
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return plan, nil
}

// EncodePlan writes the plan in its JSON wire form.
func EncodePlan(w io.Writer, plan *CompensationPlan) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(wireFromPlan(plan)); err != nil {
		return fmt.Errorf("cannot encode plan: %w", err)
	}
	return nil
}

// plan converts the wire payload into the typed domain plan.
func (w wirePlan) plan() *CompensationPlan {
	p := &CompensationPlan{
		Assumptions: Assumptions{
			Window:    date.Range{From: w.Misc.StartDate, To: w.Misc.EndDate},
			Inflation: w.Misc.PredictedInflation,
		},
		Base: BasePaySchedule{Label: w.Base.Name},
		Signing: SigningBonus{
			Label:  w.Bonus.Signing.Name,
			Amount: w.Bonus.Signing.Amount,
			Duration: VestingDuration{
				Years:  w.Bonus.Signing.Duration.Years,
				Months: w.Bonus.Signing.Duration.Months,
				Days:   w.Bonus.Signing.Duration.Days,
			},
		},
		Annual: AnnualBonusPlan{Label: w.Bonus.Annual.Name, Default: w.Bonus.Annual.Default},
	}
	for _, step := range w.Base.Pay {
		p.Base.Periods = append(p.Base.Periods, PayPeriod{Effective: step.StartDate, Amount: step.Amount})
	}
	for _, o := range w.Bonus.Annual.Past {
		p.Annual.Past = append(p.Annual.Past, BonusOverride{AsOf: o.EndDate, Multiplier: o.Multiplier})
	}
	for _, s := range w.Stocks {
		p.Stocks = append(p.Stocks, StockGrant{
			Label:  s.Name,
			Symbol: s.Ticker,
			Shares: s.Shares,
			Start:  s.StartDate,
			End:    s.EndDate,
		})
	}
	return p
}

func wireFromPlan(p *CompensationPlan) wirePlan {
	w := wirePlan{
		Misc: wireMisc{
			StartDate:          p.Assumptions.Window.From,
			EndDate:            p.Assumptions.Window.To,
			PredictedInflation: p.Assumptions.Inflation,
		},
		Base: wireBase{Name: p.Base.Label},
		Bonus: wireBonus{
			Signing: wireSigning{
				Name:   p.Signing.Label,
				Amount: p.Signing.Amount,
				Duration: wireDuration{
					Years:  p.Signing.Duration.Years,
					Months: p.Signing.Duration.Months,
					Days:   p.Signing.Duration.Days,
				},
			},
			Annual: wireAnnual{Name: p.Annual.Label, Default: p.Annual.Default},
		},
	}
	for _, period := range p.Base.Periods {
		w.Base.Pay = append(w.Base.Pay, wirePayStep{StartDate: period.Effective, Amount: period.Amount})
	}
	for _, o := range p.Annual.Past {
		w.Bonus.Annual.Past = append(w.Bonus.Annual.Past, wireOverride{EndDate: o.AsOf, Multiplier: o.Multiplier})
	}
	for _, g := range p.Stocks {
		w.Stocks = append(w.Stocks, wireStock{
			Name:      g.Label,
			Ticker:    g.Symbol,
			StartDate: g.Start,
			EndDate:   g.End,
			Shares:    g.Shares,
		})
	}
	return w
}
