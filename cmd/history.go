package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ebezard/folio"
	"github.com/ebezard/folio/renderer"
	"github.com/google/subcommands"
)

type historyCmd struct {
	field    string
	fromYear int
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display a derived series over time" }
func (*historyCmd) Usage() string {
	return `history [-f valuation|profit_rate] [-from-year <year>]

  Displays the selected series day by day, one column per ticker.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.field, "f", string(folio.FieldValuation), "series to display: valuation or profit_rate")
	f.IntVar(&c.fromYear, "from-year", 0, "hide days before this year")
}

func (c *historyCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	field, err := folio.ParseField(c.field)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	ledger, err := decodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading ledger:", err)
		return subcommands.ExitFailure
	}
	pipeline, err := newPipeline()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	history, err := pipeline.Run(ctx, ledger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error computing history:", err)
		return subcommands.ExitFailure
	}

	render(renderer.HistoryTable(history, field, c.fromYear, *currencyFlag))
	return subcommands.ExitSuccess
}
