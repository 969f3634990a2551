package folio

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/ebezard/folio/date"
	"github.com/shopspring/decimal"
)

// ErrMissingQuantity marks a ledger line without any QTE record. A
// transaction without a quantity cannot be resolved, and because every
// running sum depends on every entry, it fails the whole run.
var ErrMissingQuantity = errors.New("transaction without quantity")

// ResolvedTransaction is a ledger line with its effective price
// resolved and its per-ticker running aggregates computed. Within a
// ticker, resolved transactions are strictly ordered by date and the
// stock columns are prefix sums of their flows.
type ResolvedTransaction struct {
	Ticker string
	On     date.Date

	// QuantityFlow is the signed quantity of the day, duplicates on
	// the same (ticker, date) already summed.
	QuantityFlow Quantity
	// Price is the effective price: declared if the ledger names one,
	// otherwise the market close of that day, otherwise unavailable.
	Price Price

	SpendingFlow Amount // QuantityFlow × Price
	InvestedFlow Amount // max(QuantityFlow, 0) × Price; sells never reduce invested capital

	QuantityStock Quantity
	SpendingStock Amount
	InvestedStock Amount
}

// Normalize converts the ledger into the ordered sequence of resolved
// transactions. It is a pure transformation; single-day price lookups
// are its only external effect, and they only happen for lines with
// no declared price.
//
// An unavailable effective price is not an error: it propagates as
// "unknown" through the running spending and invested sums of that
// ticker from that date on.
func Normalize(ctx context.Context, l *Ledger, quotes PriceLookup) ([]ResolvedTransaction, error) {
	var txs []ResolvedTransaction

	ticker := ""
	var qtyStock Quantity
	var spendingStock, investedStock Amount

	for line := range l.Lines() {
		if line.Ticker != ticker {
			// Running sums restart on each ticker.
			ticker = line.Ticker
			qtyStock, spendingStock, investedStock = Q(0), A(0), A(0)
		}

		qty, declared, err := extract(line)
		if err != nil {
			return nil, err
		}

		price := UnknownPrice()
		switch {
		case declared.Available():
			// A declared price always wins: the market is not even
			// consulted for that day.
			v, _ := declared.Decimal()
			price = DeclaredPrice(v)
		case quotes != nil:
			px, ok, err := quotes.Close(ctx, line.Ticker, line.On)
			switch {
			case err != nil:
				log.Printf("normalize: price lookup failed for %s on %s: %v", line.Ticker, line.On, err)
			case ok:
				price = MarketPrice(px)
			}
		}

		tx := ResolvedTransaction{
			Ticker:       line.Ticker,
			On:           line.On,
			QuantityFlow: qty,
			Price:        price,
			SpendingFlow: price.Amount().Mul(qty),
			InvestedFlow: price.Amount().Mul(qty.OrZero()),
		}

		qtyStock = qtyStock.Add(tx.QuantityFlow)
		spendingStock = spendingStock.Add(tx.SpendingFlow)
		investedStock = investedStock.Add(tx.InvestedFlow)
		tx.QuantityStock, tx.SpendingStock, tx.InvestedStock = qtyStock, spendingStock, investedStock

		txs = append(txs, tx)
	}
	return txs, nil
}

// extract pulls the aggregate quantity and the declared price out of a
// ledger line. Quantities of duplicate QTE records are summed, never
// deduplicated. The first parseable PRICE wins; a non-numeric PRICE is
// treated as absent, not as an error.
func extract(line Line) (qty Quantity, declared Amount, err error) {
	seen := false
	for _, record := range line.Records {
		switch record.Key {
		case KeyQuantity:
			q, err := ParseQuantity(record.Value)
			if err != nil {
				return Quantity{}, Unavailable(), fmt.Errorf("%s on %s: invalid quantity %q: %w", line.Ticker, line.On, record.Value, err)
			}
			qty = qty.Add(q)
			seen = true
		case KeyPrice:
			if declared.Available() {
				continue
			}
			if v, err := decimal.NewFromString(record.Value); err == nil && !v.IsNegative() {
				declared = A(v)
			}
		}
	}
	if !seen {
		return Quantity{}, Unavailable(), fmt.Errorf("%s on %s: %w", line.Ticker, line.On, ErrMissingQuantity)
	}
	return qty, declared, nil
}
