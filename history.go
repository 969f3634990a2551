package folio

import (
	"fmt"
	"iter"
	"slices"

	"github.com/ebezard/folio/date"
)

// Field names one of the two selectable derived series of the
// observation table.
type Field string

const (
	// FieldValuation is the daily mark-to-market value of a holding.
	FieldValuation Field = "valuation"
	// FieldProfitRate is the daily balance over invested capital.
	FieldProfitRate Field = "profit_rate"
)

// ParseField parses a selectable field name.
func ParseField(s string) (Field, error) {
	switch Field(s) {
	case FieldValuation, FieldProfitRate:
		return Field(s), nil
	default:
		return "", fmt.Errorf("unknown field %q, want %q or %q", s, FieldValuation, FieldProfitRate)
	}
}

// Label returns the human name of the field.
func (f Field) Label() string {
	switch f {
	case FieldProfitRate:
		return "Profit rate"
	default:
		return "Portfolio value"
	}
}

// DailyObservation is one (ticker, day) row of the reconstructed
// table. Rows exist for every day of the span whether or not the
// market traded; QuantityStock is always defined, every other column
// degrades to unavailable together with Close.
type DailyObservation struct {
	Ticker string
	On     date.Date

	Close         Amount
	QuantityStock Quantity
	SpendingStock Amount
	InvestedStock Amount

	Valuation  Amount // QuantityStock × Close
	Balance    Amount // Valuation − SpendingStock
	ProfitRate Amount // Balance ÷ InvestedStock
}

// Value returns the observation's value for a selectable field.
func (o DailyObservation) Value(f Field) Amount {
	if f == FieldProfitRate {
		return o.ProfitRate
	}
	return o.Valuation
}

// History is the dense observation table: exactly one row per tracked
// (ticker, day) pair over the span. It is derived, read-only, and
// recomputed on each pipeline run.
type History struct {
	span    date.Range
	tickers []string
	rows    []DailyObservation
	index   map[observationKey]int
}

type observationKey struct {
	ticker string
	on     date.Date
}

func newHistory(tickers []string, span date.Range) *History {
	return &History{
		span:    span,
		tickers: slices.Clone(tickers),
		index:   make(map[observationKey]int),
	}
}

func (h *History) append(o DailyObservation) {
	h.index[observationKey{o.Ticker, o.On}] = len(h.rows)
	h.rows = append(h.rows, o)
}

// Span returns the calendar span of the table.
func (h *History) Span() date.Range { return h.span }

// Tickers returns the tracked tickers.
func (h *History) Tickers() []string { return slices.Clone(h.tickers) }

// Len returns the number of rows, always len(tickers) × span days.
func (h *History) Len() int { return len(h.rows) }

// Rows iterates over all rows, grouped by ticker, each group in
// chronological order.
func (h *History) Rows() iter.Seq[DailyObservation] {
	return func(yield func(DailyObservation) bool) {
		for _, o := range h.rows {
			if !yield(o) {
				return
			}
		}
	}
}

// Get returns the observation of ticker on a day.
func (h *History) Get(ticker string, on date.Date) (DailyObservation, bool) {
	i, ok := h.index[observationKey{ticker, on}]
	if !ok {
		return DailyObservation{}, false
	}
	return h.rows[i], true
}

// Latest returns the last observation of a ticker.
func (h *History) Latest(ticker string) (DailyObservation, bool) {
	return h.Get(ticker, h.span.To)
}

// Series projects one selectable field into per-ticker day/value
// series, keeping available points only. Points before minYear are
// filtered out; zero keeps everything. This is the shape the
// presentation collaborator consumes.
func (h *History) Series(f Field, minYear int) map[string]*date.Series[float64] {
	out := make(map[string]*date.Series[float64], len(h.tickers))
	for _, ticker := range h.tickers {
		out[ticker] = new(date.Series[float64])
	}
	for _, o := range h.rows {
		if o.On.Year() < minYear {
			continue
		}
		if v, ok := o.Value(f).Float64(); ok {
			out[o.Ticker].Append(o.On, v)
		}
	}
	return out
}
