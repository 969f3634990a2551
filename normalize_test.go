package folio

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/ebezard/folio/date"
	"github.com/shopspring/decimal"
)

// recordingLookup serves prices from a table and records every
// single-day call.
type recordingLookup struct {
	table *PriceTable
	calls []string
}

func (r *recordingLookup) Close(_ context.Context, ticker string, on date.Date) (decimal.Decimal, bool, error) {
	r.calls = append(r.calls, ticker+"@"+on.String())
	px, ok := r.table.Price(ticker, on)
	return px, ok, nil
}

func (r *recordingLookup) Closes(_ context.Context, _ []string, _ date.Range) (*PriceTable, error) {
	return r.table, nil
}

// failingLookup simulates a provider transport failure on every call.
type failingLookup struct{}

func (failingLookup) Close(_ context.Context, ticker string, _ date.Date) (decimal.Decimal, bool, error) {
	return decimal.Decimal{}, false, fmt.Errorf("transport down for %s", ticker)
}

func (failingLookup) Closes(_ context.Context, _ []string, _ date.Range) (*PriceTable, error) {
	return NewPriceTable(), nil
}

func TestNormalizeDeclaredPriceWins(t *testing.T) {
	l := mustLedger(t, `
AIR.PA:
  2021-03-02:
    - QTE: 10
    - PRICE: 96.2
`)
	// The market quotes a different close that same day; it must not
	// be consulted at all.
	quotes := &recordingLookup{table: NewPriceTable().Append("AIR.PA", date.MustParse("2021-03-02"), 100)}

	txs, err := Normalize(context.Background(), l, quotes)
	if err != nil {
		t.Fatalf("Normalize() failed: %v", err)
	}
	if len(quotes.calls) != 0 {
		t.Errorf("declared price triggered lookups: %v", quotes.calls)
	}

	x := tx(t, txs, "AIR.PA", date.MustParse("2021-03-02"))
	if x.Price.Source() != SourceDeclared {
		t.Errorf("Price.Source() = %v, want declared", x.Price.Source())
	}
	if !x.SpendingFlow.Equal(A(962.0)) {
		t.Errorf("SpendingFlow = %s, want 962", x.SpendingFlow)
	}
}

func TestNormalizeMarketFallback(t *testing.T) {
	l := mustLedger(t, `
AIR.PA:
  2021-03-02:
    - QTE: 10
`)
	quotes := &recordingLookup{table: NewPriceTable().Append("AIR.PA", date.MustParse("2021-03-02"), 96.2)}

	txs, err := Normalize(context.Background(), l, quotes)
	if err != nil {
		t.Fatalf("Normalize() failed: %v", err)
	}
	if len(quotes.calls) != 1 {
		t.Fatalf("got %d lookups, want 1: %v", len(quotes.calls), quotes.calls)
	}

	x := tx(t, txs, "AIR.PA", date.MustParse("2021-03-02"))
	if x.Price.Source() != SourceMarket {
		t.Errorf("Price.Source() = %v, want market", x.Price.Source())
	}
	if !x.SpendingStock.Equal(A(962.0)) {
		t.Errorf("SpendingStock = %s, want 962", x.SpendingStock)
	}
}

func TestNormalizeNonNumericPriceIsAbsent(t *testing.T) {
	l := mustLedger(t, `
AIR.PA:
  2021-03-02:
    - QTE: 10
    - PRICE: unknown
`)
	quotes := &recordingLookup{table: NewPriceTable().Append("AIR.PA", date.MustParse("2021-03-02"), 96.2)}

	txs, err := Normalize(context.Background(), l, quotes)
	if err != nil {
		t.Fatalf("Normalize() failed: %v", err)
	}
	x := tx(t, txs, "AIR.PA", date.MustParse("2021-03-02"))
	// A non-numeric PRICE is absent, not an error: the market close
	// takes over.
	if x.Price.Source() != SourceMarket {
		t.Errorf("Price.Source() = %v, want market", x.Price.Source())
	}
}

func TestNormalizeMissingQuantity(t *testing.T) {
	l := mustLedger(t, `
AIR.PA:
  2021-03-02:
    - PRICE: 96.2
`)
	_, err := Normalize(context.Background(), l, NewPriceTable())
	if !errors.Is(err, ErrMissingQuantity) {
		t.Fatalf("Normalize() error = %v, want ErrMissingQuantity", err)
	}
	// The failure names the offending ticker and date.
	for _, want := range []string{"AIR.PA", "2021-03-02"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestNormalizeDuplicateQuantitiesSummed(t *testing.T) {
	l := mustLedger(t, `
AIR.PA:
  2021-03-02:
    - QTE: 5
    - QTE: 5
    - PRICE: 10
`)
	txs, err := Normalize(context.Background(), l, nil)
	if err != nil {
		t.Fatalf("Normalize() failed: %v", err)
	}
	x := tx(t, txs, "AIR.PA", date.MustParse("2021-03-02"))
	if !x.QuantityFlow.Equal(Q(10)) {
		t.Errorf("QuantityFlow = %s, want 10", x.QuantityFlow)
	}
	if !x.SpendingFlow.Equal(A(100)) {
		t.Errorf("SpendingFlow = %s, want 100", x.SpendingFlow)
	}
}

func TestNormalizeRunningSums(t *testing.T) {
	l := mustLedger(t, `
AIR.PA:
  2021-03-02:
    - QTE: 10
    - PRICE: 5
  2021-04-01:
    - QTE: 10
    - PRICE: 7
  2021-05-03:
    - QTE: -5
    - PRICE: 8
GOOG:
  2021-03-15:
    - QTE: 2
    - PRICE: 100
`)
	txs, err := Normalize(context.Background(), l, nil)
	if err != nil {
		t.Fatalf("Normalize() failed: %v", err)
	}

	testCases := []struct {
		ticker   string
		on       string
		qty      Quantity
		spending Amount
		invested Amount
	}{
		{ticker: "AIR.PA", on: "2021-03-02", qty: Q(10), spending: A(50), invested: A(50)},
		{ticker: "AIR.PA", on: "2021-04-01", qty: Q(20), spending: A(120), invested: A(120)},
		// The sell decreases quantity and spending but leaves the
		// invested stock unchanged.
		{ticker: "AIR.PA", on: "2021-05-03", qty: Q(15), spending: A(80), invested: A(120)},
		// Running sums restart on the next ticker.
		{ticker: "GOOG", on: "2021-03-15", qty: Q(2), spending: A(200), invested: A(200)},
	}
	for _, tc := range testCases {
		x := tx(t, txs, tc.ticker, date.MustParse(tc.on))
		if !x.QuantityStock.Equal(tc.qty) {
			t.Errorf("%s %s QuantityStock = %s, want %s", tc.ticker, tc.on, x.QuantityStock, tc.qty)
		}
		if !x.SpendingStock.Equal(tc.spending) {
			t.Errorf("%s %s SpendingStock = %s, want %s", tc.ticker, tc.on, x.SpendingStock, tc.spending)
		}
		if !x.InvestedStock.Equal(tc.invested) {
			t.Errorf("%s %s InvestedStock = %s, want %s", tc.ticker, tc.on, x.InvestedStock, tc.invested)
		}
	}
}

func TestNormalizeUnavailablePricePoisonsStocks(t *testing.T) {
	l := mustLedger(t, `
AIR.PA:
  2021-03-02:
    - QTE: 10
  2021-04-01:
    - QTE: 10
    - PRICE: 7
`)
	// The market has no close on 2021-03-02.
	quotes := &recordingLookup{table: NewPriceTable()}

	txs, err := Normalize(context.Background(), l, quotes)
	if err != nil {
		t.Fatalf("Normalize() failed: %v", err)
	}

	first := tx(t, txs, "AIR.PA", date.MustParse("2021-03-02"))
	if first.Price.Available() {
		t.Errorf("Price = %s, want unavailable", first.Price)
	}
	if first.SpendingStock.Available() || first.InvestedStock.Available() {
		t.Error("stocks after an unavailable flow must be unavailable")
	}
	// Quantity is unaffected: it never depends on a price.
	if !first.QuantityStock.Equal(Q(10)) {
		t.Errorf("QuantityStock = %s, want 10", first.QuantityStock)
	}

	// The poison persists through later, fully-priced entries.
	second := tx(t, txs, "AIR.PA", date.MustParse("2021-04-01"))
	if second.SpendingStock.Available() || second.InvestedStock.Available() {
		t.Error("running sums have no skip semantics: later stocks stay unavailable")
	}
	if !second.QuantityStock.Equal(Q(20)) {
		t.Errorf("QuantityStock = %s, want 20", second.QuantityStock)
	}
}

func TestNormalizeLookupFailureDegrades(t *testing.T) {
	l := mustLedger(t, `
AIR.PA:
  2021-03-02:
    - QTE: 10
`)
	txs, err := Normalize(context.Background(), l, failingLookup{})
	if err != nil {
		t.Fatalf("Normalize() must not fail on a lookup error, got: %v", err)
	}
	x := tx(t, txs, "AIR.PA", date.MustParse("2021-03-02"))
	if x.Price.Available() {
		t.Errorf("Price = %s, want unavailable after transport failure", x.Price)
	}
}
