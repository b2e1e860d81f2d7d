package compchart

import (
	"iter"

	"github.com/ewanh/compchart/date"
)

// Series is one component's value at every calendar sample. It is created
// fresh per request by a generator, consumed by the aggregator, and never
// mutated afterwards. The dates slice is shared with the calendar, which is
// what guarantees identical axes across series.
type Series struct {
	Label  string
	dates  []date.Date
	values []float64
}

// push appends the value for the next sample date.
func (s *Series) push(v float64) { s.values = append(s.values, v) }

// Len returns the number of points.
func (s *Series) Len() int { return len(s.values) }

// At returns the i-th point.
func (s *Series) At(i int) (date.Date, float64) { return s.dates[i], s.values[i] }

// Points returns an iterator over the (date, value) pairs in order.
func (s *Series) Points() iter.Seq2[date.Date, float64] {
	return func(yield func(date.Date, float64) bool) {
		for i, d := range s.dates {
			if i >= len(s.values) {
				return
			}
			if !yield(d, s.values[i]) {
				return
			}
		}
	}
}

// Trace is the wire form of a series: parallel x (dates) and y (values)
// arrays plus a name, matching what the charting front-end consumes.
type Trace struct {
	Name string      `json:"name"`
	X    []date.Date `json:"x"`
	Y    []float64   `json:"y"`
}

// Trace converts the series to its wire form.
func (s *Series) Trace() Trace {
	x := make([]date.Date, len(s.values))
	copy(x, s.dates)
	y := make([]float64, len(s.values))
	copy(y, s.values)
	return Trace{Name: s.Label, X: x, Y: y}
}
