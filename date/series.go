package date

import (
	"iter"
	"slices"
)

// Series stores a chronological series of values, one per day. Days
// are unique and the series is always sorted, so as-of lookups are a
// binary search away.
type Series[T float32 | float64 | string] struct {
	days   []Date
	values []T
}

// Len returns the number of points in the series.
func (s *Series[T]) Len() int { return len(s.days) }

// search locates day in the sorted days slice.
func (s *Series[T]) search(day Date) (i int, found bool) {
	return slices.BinarySearchFunc(s.days, day, Date.Compare)
}

// Append sets the value on a given day. An existing value on that day
// is overwritten: the last write wins.
func (s *Series[T]) Append(on Date, v T) *Series[T] {
	i, found := s.search(on)
	if found {
		s.values[i] = v
		return s
	}
	s.days = slices.Insert(s.days, i, on)
	s.values = slices.Insert(s.values, i, v)
	return s
}

// Get returns the value recorded exactly on day.
func (s *Series[T]) Get(day Date) (T, bool) {
	if i, found := s.search(day); found {
		return s.values[i], true
	}
	var zero T
	return zero, false
}

// AsOf returns the value on a given day, or the most recent value
// before it. It returns false when no point exists on or before day.
// This is the forward-fill primitive of the reconstruction engine.
func (s *Series[T]) AsOf(day Date) (T, bool) {
	i, found := s.search(day)
	if found {
		return s.values[i], true
	}
	if i == 0 {
		var zero T
		return zero, false
	}
	return s.values[i-1], true
}

// First returns the earliest point of the series.
func (s *Series[T]) First() (day Date, v T, ok bool) {
	if len(s.days) == 0 {
		return Date{}, *new(T), false
	}
	return s.days[0], s.values[0], true
}

// Latest returns the most recent point of the series.
func (s *Series[T]) Latest() (day Date, v T, ok bool) {
	last := len(s.days) - 1
	if last < 0 {
		return Date{}, *new(T), false
	}
	return s.days[last], s.values[last], true
}

// Values iterates over all day/value pairs in chronological order.
func (s *Series[T]) Values() iter.Seq2[Date, T] {
	return func(yield func(Date, T) bool) {
		for i, on := range s.days {
			if !yield(on, s.values[i]) {
				return
			}
		}
	}
}
