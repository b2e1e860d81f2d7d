package compchart

import (
	"iter"

	"github.com/ewanh/compchart/date"
)

// Calendar produces the ordered set of sample dates spanning a projection
// window. The cadence is fixed: one sample per month, anchored at the window
// start day, with the window end always included as the final sample. Every
// series of a projection is evaluated at exactly these dates.
type Calendar struct {
	window  date.Range
	samples []date.Date
}

// NewCalendar builds the calendar for the given window.
// It fails with a ValidationError when start >= end (invalid window).
func NewCalendar(window date.Range) (*Calendar, error) {
	if !window.From.Before(window.To) {
		return nil, invalidf("misc", "invalid window: startDate %s must be before endDate %s", window.From, window.To)
	}
	c := &Calendar{window: window}
	for d := range window.Months() {
		c.samples = append(c.samples, d)
	}
	return c, nil
}

// Window returns the projection window the calendar spans.
func (c *Calendar) Window() date.Range { return c.window }

// Len returns the number of samples.
func (c *Calendar) Len() int { return len(c.samples) }

// Start returns the first sample date.
func (c *Calendar) Start() date.Date { return c.samples[0] }

// End returns the last sample date.
func (c *Calendar) End() date.Date { return c.samples[len(c.samples)-1] }

// Samples returns a restartable iterator over the sample dates, strictly
// increasing from window start to window end inclusive.
func (c *Calendar) Samples() iter.Seq[date.Date] {
	return func(yield func(date.Date) bool) {
		for _, d := range c.samples {
			if !yield(d) {
				return
			}
		}
	}
}

// series allocates an empty series bound to this calendar's axis.
func (c *Calendar) series(label string) *Series {
	return &Series{Label: label, dates: c.samples, values: make([]float64, 0, len(c.samples))}
}
