package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/lpfolio/date"
	"github.com/google/subcommands"
)

type earningsCmd struct {
	date string
}

func (*earningsCmd) Name() string     { return "earnings" }
func (*earningsCmd) Synopsis() string { return "report the rewards earned by liquidity pool positions" }
func (*earningsCmd) Usage() string {
	return `lpf earnings [-d <date>]

  Groups the rewards earned by liquidity pool positions by their sources, and
  reports their current value, the capital invested in the sources, the ROI
  and the APR since the first funding. Rewards are valued at the latest prices
  as of date, a token without price is valued at zero.
`
}

func (c *earningsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Report date (YYYY-MM-DD)")
}

func (c *earningsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	printMarkdown(earningsMarkdown(ledger, prices, on))
	return subcommands.ExitSuccess
}
