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

type deltaCmd struct {
	pool      poolFlags
	price     float64
	liquidity float64
	value     float64
	entry     float64
	amounts   amountFlags
}

func (*deltaCmd) Name() string     { return "delta" }
func (*deltaCmd) Synopsis() string { return "compute the base exposure of a position and its hedge" }
func (*deltaCmd) Usage() string {
	return `lpf delta (-a <pool asset> | -base <token0> -quote <token1> -lower <price> -upper <price>) -p <price> (-L <liquidity> | -amount0 <base> -amount1 <quote> | -v <value> [-entry <price>])

  Computes the base token quantity the position behaves like at price, that is
  the spot short that neutralizes its price exposure.
  The liquidity is given with -L, backed by the token amounts held, or sized
  from a deposit of value made at entry (default price). With -a, they default
  to the pool entry price and the capital invested in the asset, converted to
  token1 at the latest prices.
`
}

func (c *deltaCmd) SetFlags(f *flag.FlagSet) {
	c.pool.SetAssetFlags(f)
	f.Float64Var(&c.price, "p", 0, "Current price of token0 in token1")
	f.Float64Var(&c.liquidity, "L", 0, "Liquidity of the position")
	f.Float64Var(&c.value, "v", 0, "Deposit value in token1, to size the liquidity")
	f.Float64Var(&c.entry, "entry", 0, "Price of the deposit (default -p)")
	c.amounts.SetFlags(f)
}

func (c *deltaCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.price <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	pool, asset, err := c.pool.Resolve()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	liquidity := c.liquidity
	if liquidity <= 0 {
		liquidity = c.amounts.Liquidity(c.price, pool.Range)
	}
	if liquidity <= 0 {
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
		if entry <= 0 {
			entry = c.price
		}
		if value <= 0 {
			f.Usage()
			return subcommands.ExitUsageError
		}
		d, err := clmath.RequiredAmountsForDeposit(entry, pool.Range, value)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		liquidity = d.Liquidity
	}

	split0, _, err := clmath.SplitAt(c.price, pool.Range)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderHedge(&renderer.Hedge{
		Pool:      pool,
		Price:     c.price,
		Liquidity: liquidity,
		Split0:    split0,
		Size:      clmath.Hedge(c.price, pool.Range, liquidity),
	}))
	return subcommands.ExitSuccess
}
