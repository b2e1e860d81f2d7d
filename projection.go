package compchart

import (
	"context"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"
)

// TotalLabel names the aggregated trace.
const TotalLabel = "Total Pay"

// ReferenceLabel names the real-dollar reference trace.
const ReferenceLabel = "Inflation Adjusted Starting Pay"

// Engine computes compensation projections. It owns the injected external
// collaborators; everything else is request-scoped.
type Engine struct {
	pricer   *Pricer
	adjuster *InflationAdjuster
}

// NewEngine returns an engine resolving prices through the pricer. The
// adjuster may be nil, in which case no real-dollar reference is emitted.
func NewEngine(pricer *Pricer, adjuster *InflationAdjuster) *Engine {
	return &Engine{pricer: pricer, adjuster: adjuster}
}

// Project validates the plan and computes one trace per compensation
// component plus the total, all sampled on the shared monthly calendar.
//
// Price fetches for distinct symbols fan out concurrently; a single
// unrecoverable price failure aborts the whole response rather than emitting
// a partial, misleading chart. The CPI fetch runs alongside and its failure
// only drops the optional reference trace.
func (e *Engine) Project(ctx context.Context, plan *CompensationPlan) ([]Trace, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	cal, err := NewCalendar(plan.Assumptions.Window)
	if err != nil {
		return nil, err
	}

	// Kick off the optional index fetch first; it is joined at the end and
	// tolerated to fail.
	indexc := make(chan *ResolvedIndex, 1)
	if e.adjuster != nil {
		go func() {
			idx, err := e.adjuster.Resolve(ctx, cal.Window(), plan.Assumptions.Inflation)
			if err != nil {
				log.Printf("real-dollar reference degraded: %v", err)
				idx = nil
			}
			indexc <- idx
		}()
	} else {
		indexc <- nil
	}

	// Fan out one price fetch per distinct symbol.
	var mu sync.Mutex
	prices := make(map[string]*ResolvedPrices)
	g, gctx := errgroup.WithContext(ctx)
	for _, symbol := range plan.Symbols() {
		g.Go(func() error {
			resolved, err := e.pricer.Resolve(gctx, symbol, cal.Window(), plan.Assumptions.Inflation)
			if err != nil {
				return err
			}
			mu.Lock()
			prices[symbol] = resolved
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	base := plan.Base.Series(cal)
	annual := plan.Annual.Series(cal, &plan.Base)
	signing := plan.Signing.Series(cal)

	components := []*Series{base, annual, signing}
	for i := range plan.Stocks {
		grant := &plan.Stocks[i]
		components = append(components, grant.Series(cal, prices[grant.Symbol]))
	}

	total, err := aggregate(cal, TotalLabel, components...)
	if err != nil {
		return nil, err
	}

	traces := make([]Trace, 0, len(components)+2)
	for _, s := range components {
		traces = append(traces, s.Trace())
	}
	traces = append(traces, total.Trace())

	if idx := <-indexc; idx != nil {
		_, startTotal := total.At(0)
		traces = append(traces, idx.ReferenceSeries(cal, ReferenceLabel, startTotal).Trace())
	}

	return traces, nil
}
