package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/etnz/lpfolio/clmath"
	"github.com/etnz/lpfolio/renderer"
	"github.com/google/subcommands"
)

type projectCmd struct {
	pool      poolFlags
	liquidity float64
	value     float64
	price     float64
	from      float64
	to        float64
	steps     int
	amounts   amountFlags
}

func (*projectCmd) Name() string     { return "project" }
func (*projectCmd) Synopsis() string { return "project the value of a position over a list of prices" }
func (*projectCmd) Usage() string {
	return `lpf project (-a <pool asset> | -base <token0> -quote <token1> -lower <price> -upper <price>) (-L <liquidity> | -amount0 <base> -amount1 <quote> -p <price> | -v <value> -p <price>) [-from <price> -to <price> -steps <n>] [<price>...]

  Projects the token amounts and value of a position of constant liquidity at
  each target price. Targets are the prices given as arguments, or a ladder of
  steps prices from -from to -to (the range bounds by default).
  The liquidity is given with -L, backed by the token amounts held at price, or
  sized from a deposit of value made at price.

Usage Examples:
$ lpf project -base ETH -quote USDC -lower 1500 -upper 2500 -v 10000 -p 2000 1800 2200
`
}

func (c *projectCmd) SetFlags(f *flag.FlagSet) {
	c.pool.SetAssetFlags(f)
	f.Float64Var(&c.liquidity, "L", 0, "Liquidity of the position")
	f.Float64Var(&c.value, "v", 0, "Deposit value in token1, to size the liquidity at -p")
	f.Float64Var(&c.price, "p", 0, "Price of the deposit, also the reference of the value changes")
	f.Float64Var(&c.from, "from", 0, "First price of the ladder (default lower bound)")
	f.Float64Var(&c.to, "to", 0, "Last price of the ladder (default upper bound)")
	f.IntVar(&c.steps, "steps", 11, "Number of prices in the ladder")
	c.amounts.SetFlags(f)
}

func (c *projectCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	pool, _, err := c.pool.Resolve()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	liquidity := c.liquidity
	if liquidity <= 0 && c.price > 0 {
		liquidity = c.amounts.Liquidity(c.price, pool.Range)
	}
	if liquidity <= 0 {
		if c.value <= 0 || c.price <= 0 {
			f.Usage()
			return subcommands.ExitUsageError
		}
		d, err := clmath.RequiredAmountsForDeposit(c.price, pool.Range, c.value)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		liquidity = d.Liquidity
	}

	var targets []float64
	for _, arg := range f.Args() {
		p, err := strconv.ParseFloat(arg, 64)
		if err != nil || p <= 0 {
			fmt.Fprintf(os.Stderr, "Error: invalid target price %q\n", arg)
			return subcommands.ExitUsageError
		}
		targets = append(targets, p)
	}
	if len(targets) == 0 {
		from, to := c.from, c.to
		if from <= 0 {
			from = pool.Range.Lower
		}
		if to <= 0 {
			to = pool.Range.Upper
		}
		targets = clmath.Steps(from, to, c.steps)
	}

	ladder := &renderer.Ladder{Pool: pool, Liquidity: liquidity, Rows: clmath.Ladder(pool.Range, liquidity, targets...)}
	switch {
	case c.price > 0:
		ladder.Reference = clmath.ProjectValue(c.price, pool.Range, liquidity).Value
	case len(ladder.Rows) > 0:
		ladder.Reference = ladder.Rows[0].Value
	}
	printMarkdown(renderer.RenderLadder(ladder))
	return subcommands.ExitSuccess
}
