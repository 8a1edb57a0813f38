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

type splitCmd struct {
	pool  poolFlags
	price float64
	value float64
}

func (*splitCmd) Name() string     { return "split" }
func (*splitCmd) Synopsis() string { return "compute the token amounts needed to deposit a value in a pool" }
func (*splitCmd) Usage() string {
	return `lpf split (-a <pool asset> | -base <token0> -quote <token1> -lower <price> -upper <price>) -p <price> -v <value>

  Computes the token0 and token1 amounts, the liquidity and the split of a
  deposit worth value (in quote units) made at price.

Usage Examples:
$ lpf split -base ETH -quote USDC -lower 1500 -upper 2500 -p 2000 -v 10000
`
}

func (c *splitCmd) SetFlags(f *flag.FlagSet) {
	c.pool.SetAssetFlags(f)
	f.Float64Var(&c.price, "p", 0, "Current price of token0 in token1")
	f.Float64Var(&c.value, "v", 1000, "Deposit value in token1")
}

func (c *splitCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.price <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	pool, _, err := c.pool.Resolve()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	d, err := clmath.RequiredAmountsForDeposit(c.price, pool.Range, c.value)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderSplit(&renderer.Split{Pool: pool, Price: c.price, Total: c.value, Deposit: d}))
	return subcommands.ExitSuccess
}
