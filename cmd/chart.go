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

type chartCmd struct {
	field    string
	fromYear int
	output   string
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "render a derived series as a PNG line chart" }
func (*chartCmd) Usage() string {
	return `chart [-f valuation|profit_rate] [-from-year <year>] [-o <file>]

  Renders the selected series, one line per ticker, to a PNG file.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.field, "f", string(folio.FieldValuation), "series to chart: valuation or profit_rate")
	f.IntVar(&c.fromYear, "from-year", 0, "hide days before this year")
	f.StringVar(&c.output, "o", "chart.png", "output PNG file")
}

func (c *chartCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	f, err := os.Create(c.output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := renderer.Chart(history, field, c.fromYear, f); err != nil {
		fmt.Fprintln(os.Stderr, "Error rendering chart:", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Wrote %s to %s\n", field.Label(), c.output)
	return subcommands.ExitSuccess
}
