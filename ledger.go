package folio

import (
	"crypto/sha256"
	"fmt"
	"io"
	"iter"
	"slices"

	"github.com/ebezard/folio/date"
	"gopkg.in/yaml.v3"
)

// Recognized attribute keys of a ledger record.
const (
	// KeyQuantity declares the signed quantity of a transaction,
	// positive for a buy, negative for a sell.
	KeyQuantity = "QTE"
	// KeyPrice declares the unit price of a transaction, numeric or
	// numeric string.
	KeyPrice = "PRICE"
)

// Record is one attribute record of a ledger line. A record holds at
// most one recognized key; unrecognized keys are carried verbatim and
// ignored by normalization.
type Record struct {
	Key   string
	Value string
}

// Line groups the attribute records declared for one ticker on one
// day, in document order.
type Line struct {
	Ticker  string
	On      date.Date
	Records []Record
}

// Ledger is the manually maintained transaction document:
//
//	AIR.PA:
//	  2021-03-02:
//	    - QTE: 10
//	    - PRICE: 96.2
//
// ticker, then ISO date, then a list of attribute records. The ledger
// is the sole persisted input of the pipeline; it is immutable once
// decoded.
type Ledger struct {
	lines   []Line
	tickers []string
	hash    string
}

// DecodeLedger reads and validates a YAML ledger document. It checks
// the document shape and dates; attribute extraction and price
// resolution belong to Normalize. The document bytes are hashed so a
// pipeline run can be memoized on content.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading ledger: %w", err)
	}

	var doc map[string]map[string][]map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("malformed ledger document: %w", err)
	}

	l := &Ledger{hash: fmt.Sprintf("%x", sha256.Sum256(data))}
	for ticker, days := range doc {
		for day, records := range days {
			on, err := date.Parse(day)
			if err != nil {
				return nil, fmt.Errorf("ledger %s: %w", ticker, err)
			}
			line := Line{Ticker: ticker, On: on}
			for _, record := range records {
				for key, node := range record {
					line.Records = append(line.Records, Record{Key: key, Value: node.Value})
				}
			}
			l.lines = append(l.lines, line)
		}
		l.tickers = append(l.tickers, ticker)
	}

	// Chronological order per ticker is an invariant of the ledger:
	// every running sum downstream depends on it.
	slices.SortFunc(l.lines, func(a, b Line) int {
		if a.Ticker != b.Ticker {
			if a.Ticker < b.Ticker {
				return -1
			}
			return 1
		}
		return a.On.Compare(b.On)
	})
	slices.Sort(l.tickers)
	return l, nil
}

// Lines iterates over ledger lines sorted by (ticker, date) ascending.
func (l *Ledger) Lines() iter.Seq[Line] {
	return func(yield func(Line) bool) {
		for _, line := range l.lines {
			if !yield(line) {
				return
			}
		}
	}
}

// Tickers returns the sorted set of tracked tickers.
func (l *Ledger) Tickers() []string { return slices.Clone(l.tickers) }

// Empty reports whether the ledger tracks no ticker at all.
func (l *Ledger) Empty() bool { return len(l.tickers) == 0 }

// Hash returns the content hash of the decoded document.
func (l *Ledger) Hash() string { return l.hash }
