// Package date provides day-granularity dates, dense calendar ranges,
// and chronological day/value series.
package date

import (
	"fmt"
	"time"
)

// Format is the standard ISO-8601 representation of a Date.
const Format = "2006-01-02"

// readFormat is more permissive than Format: it accepts single-digit
// month and day, like "2021-3-2".
const readFormat = "2006-1-2"

// Date represents a calendar date with no time-of-day component.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date for the given year, month and day.
// Out-of-range values are carried over, like time.Date does.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.Time().Date()
	return d
}

// Today returns the current date.
func Today() Date { return New(time.Now().Date()) }

// Time returns the canonical time.Time for the date, midnight UTC.
func (d Date) Time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Year returns the year of the date.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// Add returns the date shifted by the given number of days.
func (d Date) Add(days int) Date { return New(d.y, d.m, d.d+days) }

// Before reports whether d is strictly before x.
func (d Date) Before(x Date) bool { return d.Time().Before(x.Time()) }

// After reports whether d is strictly after x.
func (d Date) After(x Date) bool { return d.Time().After(x.Time()) }

// Compare returns -1, 0 or 1 depending on whether d is before, equal
// to, or after x.
func (d Date) Compare(x Date) int { return d.Time().Compare(x.Time()) }

// String formats the date in its standard ISO-8601 form.
func (d Date) String() string { return d.Time().Format(Format) }

// Parse parses a Date from a string. It is lenient and accepts
// single-digit month and day.
func Parse(str string) (Date, error) {
	on, err := time.Parse(readFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, want format %q: %w", str, Format, err)
	}
	return New(on.Date()), nil
}

// MustParse is like Parse but panics on error. Intended for constants
// and tests.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}
