package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/lpfolio/date"
	"github.com/etnz/lpfolio/renderer"
	"github.com/google/subcommands"
)

type positionsCmd struct {
	date string
}

func (*positionsCmd) Name() string     { return "positions" }
func (*positionsCmd) Synopsis() string { return "value the open liquidity pool positions" }
func (*positionsCmd) Usage() string {
	return `lpf positions [-d <date>]

  Values every open liquidity pool position at the latest prices as of date:
  current token amounts, split, impermanent loss and hedge. A position whose
  base price is unknown is valued at its entry price.
`
}

func (c *positionsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Report date (YYYY-MM-DD)")
}

func (c *positionsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, ok := parseDay(c.date)
	if !ok {
		return subcommands.ExitUsageError
	}
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	prices, err := loadPrices(ledger, on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading prices: %v\n", err)
		return subcommands.ExitFailure
	}
	positions, err := ledger.Positions(prices, on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderPositions(renderer.NewPositions(on, positions)))
	return subcommands.ExitSuccess
}
