package date

import (
	"fmt"
	"iter"
)

// Range represents an inclusive range of dates.
type Range struct{ From, To Date }

// NewRange creates a new date range. If 'from' is after 'to', they are swapped.
func NewRange(from, to Date) Range {
	if from.After(to) {
		from, to = to, from
	}
	return Range{From: from, To: to}
}

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// Days returns an iterator that yields each date within the range, inclusive.
func (r Range) Days() iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for d := r.From; !d.After(r.To); d = d.Add(1) {
			if !yield(d) {
				return
			}
		}
	}
}

// Months returns an iterator over monthly steps anchored at From (From,
// From+1 month, ...). When To does not land on an anchor, To itself is the
// final value, so both boundaries are always yielded.
func (r Range) Months() iter.Seq[Date] {
	return func(yield func(Date) bool) {
		d := r.From
		for i := 1; !d.After(r.To); i++ {
			if !yield(d) {
				return
			}
			next := r.From.AddMonths(i)
			if d.Before(r.To) && next.After(r.To) {
				next = r.To
			}
			if !next.After(d) {
				return
			}
			d = next
		}
	}
}

// Identifier computes a unique identifier for the Range, usable as a cache key.
func (r Range) Identifier() string { return fmt.Sprintf("%s_%s", r.From, r.To) }
