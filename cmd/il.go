package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/lpfolio/clmath"
	"github.com/etnz/lpfolio/renderer"
	"github.com/google/subcommands"
)

type ilCmd struct {
	pool   poolFlags
	entry  float64
	target float64
	value  float64
}

func (*ilCmd) Name() string     { return "il" }
func (*ilCmd) Synopsis() string { return "compute the impermanent loss of a position at a target price" }
func (*ilCmd) Usage() string {
	return `lpf il (-a <pool asset> | -base <token0> -quote <token1> -lower <price> -upper <price>) [-entry <price>] -target <price> [-v <value>]

  Compares a deposit of value made in the pool at entry price with the same
  tokens simply held, once the price moved to target.
  With -a, entry and value default to the pool entry price and the capital
  invested in the asset, converted to token1 at the latest prices.
`
}

func (c *ilCmd) SetFlags(f *flag.FlagSet) {
	c.pool.SetAssetFlags(f)
	f.Float64Var(&c.entry, "entry", 0, "Price when the position was opened")
	f.Float64Var(&c.target, "target", 0, "Price to value the position at")
	f.Float64Var(&c.value, "v", 0, "Deposit value in token1 (default 1000)")
}

func (c *ilCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	pool, asset, err := c.pool.Resolve()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	entry, value := c.entry, c.value
	if asset != nil {
		if entry <= 0 {
			entry = asset.Pool.Entry
		}
		if value <= 0 {
			if value, err = c.pool.Invested(asset); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return subcommands.ExitFailure
			}
		}
	}
	if value <= 0 {
		value = 1000
	}
	if entry <= 0 || c.target <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	v, err := clmath.CalculateIL(entry, c.target, pool.Range, value)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderIL(&renderer.IL{Pool: pool, EntryPrice: entry, TargetPrice: c.target, Total: value, Valuation: v}))
	return subcommands.ExitSuccess
}
