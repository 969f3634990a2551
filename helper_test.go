package folio

import (
	"strings"
	"testing"

	"github.com/ebezard/folio/date"
)

// mustLedger decodes a YAML ledger document or fails the test.
func mustLedger(t *testing.T, doc string) *Ledger {
	t.Helper()
	l, err := DecodeLedger(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("DecodeLedger() failed: %v", err)
	}
	return l
}

// flatTable builds a price table quoting one ticker at a constant
// close over a whole span, including non-trading days.
func flatTable(ticker string, span date.Range, close float64) *PriceTable {
	table := NewPriceTable()
	for day := range span.Days() {
		table.Append(ticker, day, close)
	}
	return table
}

// tx finds the resolved transaction of a ticker on a day or fails the
// test.
func tx(t *testing.T, txs []ResolvedTransaction, ticker string, on date.Date) ResolvedTransaction {
	t.Helper()
	for _, x := range txs {
		if x.Ticker == ticker && x.On == on {
			return x
		}
	}
	t.Fatalf("no resolved transaction for %s on %s", ticker, on)
	return ResolvedTransaction{}
}
