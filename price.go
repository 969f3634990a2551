package folio

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PriceSource tells where an effective price comes from. Keeping the
// source explicit means downstream code cannot mistake an unavailable
// price for a zero one.
type PriceSource int

const (
	// SourceUnavailable means no price could be resolved: the ledger
	// declares none and the market has no close for that day.
	SourceUnavailable PriceSource = iota
	// SourceDeclared is a price written in the ledger. It always wins
	// over the market close of the same day.
	SourceDeclared
	// SourceMarket is a close price from the price lookup collaborator.
	SourceMarket
)

func (s PriceSource) String() string {
	switch s {
	case SourceDeclared:
		return "declared"
	case SourceMarket:
		return "market"
	default:
		return "unavailable"
	}
}

// Price is the effective price of a transaction together with its
// source. The zero value is the unavailable price.
type Price struct {
	source PriceSource
	value  decimal.Decimal
}

// DeclaredPrice returns a price declared in the ledger.
func DeclaredPrice(value decimal.Decimal) Price {
	return Price{source: SourceDeclared, value: value}
}

// MarketPrice returns a price resolved from market data.
func MarketPrice(value decimal.Decimal) Price {
	return Price{source: SourceMarket, value: value}
}

// UnknownPrice returns the unavailable price.
func UnknownPrice() Price { return Price{} }

// Source returns where the price comes from.
func (p Price) Source() PriceSource { return p.source }

// Available reports whether the price holds a value.
func (p Price) Available() bool { return p.source != SourceUnavailable }

// Value returns the price value, and whether it is available.
func (p Price) Value() (decimal.Decimal, bool) {
	return p.value, p.source != SourceUnavailable
}

// Amount converts the price to an Amount, carrying unavailability
// over.
func (p Price) Amount() Amount {
	if p.source == SourceUnavailable {
		return Unavailable()
	}
	return A(p.value)
}

func (p Price) String() string {
	if p.source == SourceUnavailable {
		return "n/a"
	}
	return fmt.Sprintf("%s (%s)", p.value.String(), p.source)
}
