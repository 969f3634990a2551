package date

import (
	"iter"
	"time"
)

// Day is the duration of one calendar day.
const Day = 24 * time.Hour

// Range is an inclusive range of calendar days. It is the row space of
// time-series reconstruction: every day between From and To exists,
// whether or not anything happened on it.
type Range struct{ From, To Date }

// NewRange returns the inclusive range [from, to].
func NewRange(from, to Date) Range { return Range{From: from, To: to} }

// Contains reports whether day falls inside the range, boundaries
// included.
func (r Range) Contains(day Date) bool { return !day.Before(r.From) && !day.After(r.To) }

// Len returns the number of calendar days in the range. An inverted
// range has length zero.
func (r Range) Len() int {
	if r.To.Before(r.From) {
		return 0
	}
	return int(r.To.Time().Sub(r.From.Time())/Day) + 1
}

// Days iterates over every calendar day in the range, in order,
// without gaps.
func (r Range) Days() iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for day := r.From; !day.After(r.To); day = day.Add(1) {
			if !yield(day) {
				return
			}
		}
	}
}
