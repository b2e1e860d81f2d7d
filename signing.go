package compchart

import (
	"github.com/ewanh/compchart/date"
)

// RecognizedAt returns the recognized-to-date amount of the signing bonus on
// the given date: the total amount scaled by the elapsed share of the vesting
// duration, clamped to [0, total]. Vesting is anchored at the window start.
// A zero duration recognizes the full amount at the start date itself.
func (b *SigningBonus) RecognizedAt(start, on date.Date) float64 {
	total := b.Amount.InexactFloat64()
	if on.Before(start) {
		return 0
	}
	vestEnd := b.Duration.endFrom(start)
	durationDays := date.Days(start, vestEnd)
	if durationDays <= 0 {
		// Instantaneous vesting, never divide by the zero duration.
		return total
	}
	fraction := float64(date.Days(start, on)) / float64(durationDays)
	if fraction > 1 {
		fraction = 1
	}
	return total * fraction
}

// Series emits the recognized amount at each calendar sample. The result is
// monotonically non-decreasing, zero at the window start and equal to the
// total amount at and after start+duration.
func (b *SigningBonus) Series(cal *Calendar) *Series {
	out := cal.series(b.Label)
	start := cal.Start()
	for on := range cal.Samples() {
		out.push(b.RecognizedAt(start, on))
	}
	return out
}
