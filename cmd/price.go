package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/lpfolio"
	"github.com/etnz/lpfolio/date"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type priceCmd struct {
	date string
}

func (*priceCmd) Name() string     { return "price" }
func (*priceCmd) Synopsis() string { return "record the USD price of assets" }
func (*priceCmd) Usage() string {
	return `lpf price [-d <date>] <symbol>=<price>...

  Records USD prices on a day. Prices are stored in the price database when
  -prices-db is set, in the ledger otherwise. Prices already recorded for the
  same day are replaced.

Usage Examples:
$ lpf price HYPE=42.5 USDC=1
`
}

func (c *priceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Price date (YYYY-MM-DD)")
}

func (c *priceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, ok := parseDay(c.date)
	if !ok {
		return subcommands.ExitUsageError
	}
	prices := make(lpfolio.Prices)
	for _, arg := range f.Args() {
		symbol, value, found := strings.Cut(arg, "=")
		price, err := decimal.NewFromString(value)
		if !found || symbol == "" || err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid price %q, expecting <symbol>=<price>\n", arg)
			return subcommands.ExitUsageError
		}
		prices[symbol] = lpfolio.M(price, lpfolio.USD)
	}
	if err := updatePrices(day, prices); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Successfully updated %d prices on %s\n", len(prices), day)
	return subcommands.ExitSuccess
}
