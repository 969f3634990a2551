package folio

import (
	"context"
	"fmt"
	"time"

	"github.com/ebezard/folio/date"
)

// Pipeline runs the three batch stages, Normalize then Reconstruct
// then projection, against a price lookup collaborator. Runs are
// memoized on the ledger content hash and the price table's update
// stamp: either changing invalidates the memo, nothing else does.
//
// A Pipeline is single-threaded by design: stages run sequentially to
// completion and there is no shared state between runs beyond the
// memo.
type Pipeline struct {
	quotes PriceLookup
	start  date.Date

	// Today returns the upper bound of the reconstruction span. It is
	// a variable so reports and tests can pin the calendar.
	Today func() date.Date

	table   *PriceTable
	memoKey string
	memo    *History
}

// NewPipeline returns a pipeline reconstructing from start to today.
func NewPipeline(quotes PriceLookup, start date.Date) *Pipeline {
	return &Pipeline{quotes: quotes, start: start, Today: date.Today}
}

// Run executes the full pipeline for a ledger. It either completes
// with a fully dense table, some cells unavailable, or fails outright
// with a reason naming the offending ticker and date.
func (p *Pipeline) Run(ctx context.Context, l *Ledger) (*History, error) {
	span := date.NewRange(p.start, p.Today())

	if l.Empty() {
		return newHistory(nil, span), nil
	}

	if p.table == nil {
		table, err := p.quotes.Closes(ctx, l.Tickers(), span)
		if err != nil {
			return nil, fmt.Errorf("fetching close prices: %w", err)
		}
		p.table = table
	}

	key := memoKey(l, p.table, span)
	if key == p.memoKey && p.memo != nil {
		return p.memo, nil
	}

	txs, err := Normalize(ctx, l, p.quotes)
	if err != nil {
		return nil, err
	}

	h := Reconstruct(txs, l.Tickers(), p.table, span)
	p.memoKey, p.memo = key, h
	return h, nil
}

// Refresh drops the fetched price table and the memo. The next Run
// fetches fresh market data.
func (p *Pipeline) Refresh() {
	p.table = nil
	p.memoKey, p.memo = "", nil
}

func memoKey(l *Ledger, table *PriceTable, span date.Range) string {
	return fmt.Sprintf("%s@%s/%s_%s", l.Hash(), table.Updated().Format(time.RFC3339Nano), span.From, span.To)
}
