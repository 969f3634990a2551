package folio

import (
	"iter"

	"github.com/ebezard/folio/date"
)

// Reconstruct expands resolved transactions onto the dense calendar
// grid of every tracked ticker × every day in span, joins them with
// the close-price table, and derives the valuation columns.
//
// An empty ticker set yields an empty table. A ticker missing from
// the price table keeps its ledger-driven quantity while every derived
// column stays unavailable.
func Reconstruct(txs []ResolvedTransaction, tickers []string, table *PriceTable, span date.Range) *History {
	h := newHistory(tickers, span)
	for _, ticker := range h.tickers {
		for o := range observations(ticker, tickerTransactions(txs, ticker), table, span) {
			h.append(o)
		}
	}
	return h
}

// tickerTransactions selects one ticker's slice out of the sorted
// transaction sequence.
func tickerTransactions(txs []ResolvedTransaction, ticker string) []ResolvedTransaction {
	lo := 0
	for lo < len(txs) && txs[lo].Ticker != ticker {
		lo++
	}
	hi := lo
	for hi < len(txs) && txs[hi].Ticker == ticker {
		hi++
	}
	return txs[lo:hi]
}

// observations is the per-ticker forward-fill scan: a lazy, restartable
// sequence of one observation per calendar day. It merges the sorted
// transaction sequence with the dense calendar, carrying the last
// known stocks in an accumulator.
//
// Before the first transaction the quantity is explicitly zero while
// spending and invested stay unavailable: no capital has been
// committed yet, and zeroing them would fabricate a profit baseline.
func observations(ticker string, txs []ResolvedTransaction, table *PriceTable, span date.Range) iter.Seq[DailyObservation] {
	return func(yield func(DailyObservation) bool) {
		next := 0
		qty := Q(0)
		spending, invested := Unavailable(), Unavailable()

		for day := range span.Days() {
			for next < len(txs) && !txs[next].On.After(day) {
				qty, spending, invested = txs[next].QuantityStock, txs[next].SpendingStock, txs[next].InvestedStock
				next++
			}

			o := DailyObservation{Ticker: ticker, On: day, QuantityStock: qty}
			if px, ok := table.Price(ticker, day); ok {
				o.Close = A(px)
				o.SpendingStock = spending
				o.InvestedStock = invested
				o.Valuation = o.Close.Mul(qty)
				o.Balance = o.Valuation.Sub(o.SpendingStock)
				o.ProfitRate = o.Balance.Div(o.InvestedStock)
			}
			// No close price: every monetary column keeps its zero
			// value, which is unavailable. Carrying the forward-filled
			// spending into a day that cannot be valued would deflate
			// profit on delisted or suspended tickers.

			if !yield(o) {
				return
			}
		}
	}
}
