// Package compchart turns a structured description of an employee's
// compensation package (base salary history, signing bonus, annual bonus
// policy, equity grants) into aligned time series suitable for charting total
// compensation over a projection window.
//
// The entry point is [Engine.Project]: it validates a [CompensationPlan],
// samples the projection window on a monthly calendar, resolves stock prices
// and a consumer-price index through injected providers, and returns one
// [Trace] per component plus a Total.
//
// Lump-sum components amortize: a signing bonus is recognized linearly over
// its vesting duration, equity grants vest linearly between their start and
// end dates and are marked to the price resolved at each sample date. All
// component series are cumulative contributions to total compensation at each
// sample; base pay is the annual salary in effect at the sample.
package compchart
