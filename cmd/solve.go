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

type solveCmd struct {
	pool       poolFlags
	split0     float64
	iterations int
}

func (*solveCmd) Name() string     { return "solve" }
func (*solveCmd) Synopsis() string { return "find the price at which a deposit has a target split" }
func (*solveCmd) Usage() string {
	return `lpf solve (-a <pool asset> | -base <token0> -quote <token1> -lower <price> -upper <price>) -s <split0> [-n <iterations>]

  Finds the price inside the range at which a deposit holds split0 percent of
  its value in token0.

Usage Examples:
$ lpf solve -lower 1500 -upper 2500 -s 50
`
}

func (c *solveCmd) SetFlags(f *flag.FlagSet) {
	c.pool.SetAssetFlags(f)
	f.Float64Var(&c.split0, "s", 50, "Target share of the value in token0, in percent")
	f.IntVar(&c.iterations, "n", clmath.DefaultIterations, "Number of bisection steps")
}

func (c *solveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	pool, _, err := c.pool.Resolve()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.iterations <= 0 {
		c.iterations = clmath.DefaultIterations
	}
	price, err := clmath.PriceForTargetSplit(c.split0, pool.Range, c.iterations)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderSolve(&renderer.Solve{Pool: pool, Split0: c.split0, Price: price, Iterations: c.iterations}))
	return subcommands.ExitSuccess
}
