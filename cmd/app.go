// Package cmd implements the CLI application to inspect a portfolio
// ledger.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/ebezard/folio"
	"github.com/ebezard/folio/date"
	"github.com/google/subcommands"
)

// Register the subcommands. A main package calls Register, then
// Execute on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&summaryCmd{}, "reports")
	c.Register(&historyCmd{}, "reports")
	c.Register(&chartCmd{}, "reports")
}

// As a CLI application it has a very short lived lifecycle, so global
// flag variables are fine.

var ledgerFile = flag.String("ledger-file", "portfolio.yaml", "Path to the YAML ledger of transactions")
var startFlag = flag.String("start", "2020-01-01", "First day of the reconstructed history")
var currencyFlag = flag.String("currency", "EUR", "Reporting currency used for display")

// decodeLedger reads the ledger document named by -ledger-file.
func decodeLedger() (*folio.Ledger, error) {
	f, err := os.Open(*ledgerFile)
	if err != nil {
		return nil, fmt.Errorf("opening ledger %q: %w", *ledgerFile, err)
	}
	defer f.Close()
	return folio.DecodeLedger(f)
}

// newPipeline builds the default pipeline: Yahoo quotes from -start to
// today.
func newPipeline() (*folio.Pipeline, error) {
	start, err := date.Parse(*startFlag)
	if err != nil {
		return nil, fmt.Errorf("invalid -start: %w", err)
	}
	return folio.NewPipeline(folio.YahooQuotes{}, start), nil
}

// render prints a markdown document to stdout through glamour, falling
// back to the raw document when the terminal renderer is unhappy.
func render(doc string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(0))
	if err != nil {
		fmt.Print(doc)
		return
	}
	out, err := r.Render(doc)
	if err != nil {
		fmt.Print(doc)
		return
	}
	fmt.Print(out)
}
