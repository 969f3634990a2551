package folio

import (
	"context"
	"slices"
	"time"

	"github.com/ebezard/folio/date"
	"github.com/shopspring/decimal"
)

// PriceLookup is the market-data collaborator. Implementations return
// close prices with trading-day granularity: the core expects misses
// on weekends, holidays and delistings, and never interpolates them.
//
// A lookup miss is not an error. Errors are reserved for transport
// failures, and even those degrade to unavailable prices downstream.
type PriceLookup interface {
	// Close returns the close price of ticker on a single day.
	Close(ctx context.Context, ticker string, on date.Date) (decimal.Decimal, bool, error)

	// Closes returns the dense close-price table of the given tickers
	// over a calendar span.
	Closes(ctx context.Context, tickers []string, span date.Range) (*PriceTable, error)
}

// PriceTable holds close prices keyed by (ticker, day). It is the
// join side of historical reconstruction, and doubles as an in-memory
// PriceLookup for tests and offline runs.
type PriceTable struct {
	series  map[string]*date.Series[float64]
	updated time.Time
}

// NewPriceTable returns an empty price table.
func NewPriceTable() *PriceTable {
	return &PriceTable{series: make(map[string]*date.Series[float64]), updated: time.Now()}
}

// Append records the close price of ticker on a day, overwriting any
// previous value, and bumps the table's update stamp.
func (t *PriceTable) Append(ticker string, on date.Date, close float64) *PriceTable {
	s, ok := t.series[ticker]
	if !ok {
		s = new(date.Series[float64])
		t.series[ticker] = s
	}
	s.Append(on, close)
	t.updated = time.Now()
	return t
}

// Price returns the close price of ticker exactly on day.
func (t *PriceTable) Price(ticker string, on date.Date) (decimal.Decimal, bool) {
	s, ok := t.series[ticker]
	if !ok {
		return decimal.Decimal{}, false
	}
	v, ok := s.Get(on)
	if !ok {
		return decimal.Decimal{}, false
	}
	return decimal.NewFromFloat(v), true
}

// Has reports whether the table lists any price at all for ticker. A
// ticker never listed yields all-unavailable derived fields, while its
// ledger-driven quantity still accrues.
func (t *PriceTable) Has(ticker string) bool {
	s, ok := t.series[ticker]
	return ok && s.Len() > 0
}

// Tickers returns the sorted tickers listed in the table.
func (t *PriceTable) Tickers() []string {
	tickers := make([]string, 0, len(t.series))
	for ticker := range t.series {
		tickers = append(tickers, ticker)
	}
	slices.Sort(tickers)
	return tickers
}

// Updated returns the last time a price was appended. Together with
// the ledger content hash it keys pipeline memoization.
func (t *PriceTable) Updated() time.Time { return t.updated }

// Close implements PriceLookup from the table's own content.
func (t *PriceTable) Close(_ context.Context, ticker string, on date.Date) (decimal.Decimal, bool, error) {
	px, ok := t.Price(ticker, on)
	return px, ok, nil
}

// Closes implements PriceLookup by returning the table itself: an
// in-memory table is already dense over whatever it holds.
func (t *PriceTable) Closes(_ context.Context, _ []string, _ date.Range) (*PriceTable, error) {
	return t, nil
}

var _ PriceLookup = (*PriceTable)(nil)
