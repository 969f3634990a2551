package folio

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Amount is a monetary or ratio value that may be unavailable.
// Unavailable is a first-class marker, distinct from zero: it
// propagates through every arithmetic operation, so a missing market
// price can never silently show up as a zero or a stale estimate.
//
// The zero value of Amount is unavailable.
type Amount struct {
	value decimal.Decimal
	ok    bool
}

// A builds an available Amount from any numeric value.
func A[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Amount {
	return Amount{value: newDecimal(value), ok: true}
}

// Unavailable returns the "no data" marker.
func Unavailable() Amount { return Amount{} }

// Available reports whether the amount holds a value.
func (a Amount) Available() bool { return a.ok }

// Decimal returns the underlying value, and whether it is available.
func (a Amount) Decimal() (decimal.Decimal, bool) { return a.value, a.ok }

// Float64 returns the value as a float64, and whether it is available.
func (a Amount) Float64() (float64, bool) {
	if !a.ok {
		return 0, false
	}
	f, _ := a.value.Float64()
	return f, true
}

// Add returns a+b, unavailable if either operand is.
func (a Amount) Add(b Amount) Amount {
	if !a.ok || !b.ok {
		return Amount{}
	}
	return Amount{value: a.value.Add(b.value), ok: true}
}

// Sub returns a-b, unavailable if either operand is.
func (a Amount) Sub(b Amount) Amount {
	if !a.ok || !b.ok {
		return Amount{}
	}
	return Amount{value: a.value.Sub(b.value), ok: true}
}

// Mul returns a×q, unavailable if a is. Multiplying an unavailable
// amount by a zero quantity is still unavailable.
func (a Amount) Mul(q Quantity) Amount {
	if !a.ok {
		return Amount{}
	}
	return Amount{value: a.value.Mul(q.value), ok: true}
}

// Div returns a÷b. It is unavailable if either operand is, or if b is
// zero: a profit rate against zero invested capital is undefined, not
// infinite.
func (a Amount) Div(b Amount) Amount {
	if !a.ok || !b.ok || b.value.IsZero() {
		return Amount{}
	}
	return Amount{value: a.value.Div(b.value), ok: true}
}

// Equal reports whether two amounts are equal. Two unavailable
// amounts are equal; an unavailable amount never equals an available
// one.
func (a Amount) Equal(b Amount) bool {
	if a.ok != b.ok {
		return false
	}
	return !a.ok || a.value.Equal(b.value)
}

// String returns the plain value, or "n/a" when unavailable.
func (a Amount) String() string {
	if !a.ok {
		return "n/a"
	}
	return a.value.String()
}

// Display formats the amount as money in the given ISO currency code,
// or "n/a" when unavailable.
func (a Amount) Display(currency string) string {
	if !a.ok {
		return "n/a"
	}
	cur := *money.New(0, currency).Currency()
	units := a.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(units.IntPart())
}

// Percent formats the amount as a percentage with two decimals, or
// "n/a" when unavailable.
func (a Amount) Percent() string {
	if !a.ok {
		return "n/a"
	}
	return a.value.Shift(2).StringFixed(2) + "%"
}
