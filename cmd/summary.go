package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ebezard/folio/renderer"
	"github.com/google/subcommands"
)

type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the latest valuation of every holding" }
func (*summaryCmd) Usage() string {
	return `summary

  Displays position, close, valuation, balance and profit rate of each
  tracked ticker as of today.
`
}

func (*summaryCmd) SetFlags(_ *flag.FlagSet) {}

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	render(renderer.Summary(history, *currencyFlag))
	return subcommands.ExitSuccess
}
