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

// parseDay parses the -d flag value of a transaction command.
func parseDay(s string) (date.Date, bool) {
	day, err := date.Parse(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return date.Date{}, false
	}
	return day, true
}

// --- Declare Command ---

type declareCmd struct {
	date   string
	symbol string
	name   string
	pool   poolFlags
	entry  float64
	memo   string
}

func (*declareCmd) Name() string     { return "declare" }
func (*declareCmd) Synopsis() string { return "declare an asset, optionally as a liquidity pool position" }
func (*declareCmd) Usage() string {
	return `lpf declare -s <symbol> [-n <name>] [-base <token0> -quote <token1> -lower <price> -upper <price> -entry <price>] [-m <memo>]

  Declares an asset. With pool flags, the asset is a concentrated liquidity
  position of the base/quote pair over the [lower, upper] range, opened when
  the base price was entry.

Usage Examples:
$ lpf declare -s HYPE-USDC -base HYPE -quote USDC -lower 30 -upper 50 -entry 40
`
}

func (c *declareCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.symbol, "s", "", "Asset symbol")
	f.StringVar(&c.name, "n", "", "Asset name")
	c.pool.SetFlags(f)
	f.Float64Var(&c.entry, "entry", 0, "Base price, in quote units, when the pool position was opened")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the transaction")
}

func (c *declareCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, ok := parseDay(c.date)
	if !ok {
		return subcommands.ExitUsageError
	}
	var pool *lpfolio.Pool
	if c.pool.base != "" || c.pool.quote != "" {
		pool = &lpfolio.Pool{Base: c.pool.base, Quote: c.pool.quote, Lower: c.pool.lower, Upper: c.pool.upper, Entry: c.entry}
	}
	return EncodeTransaction(lpfolio.NewDeclare(day, c.memo, c.symbol, c.name, pool))
}

// --- Deposit Command ---

type depositCmd struct {
	date     string
	asset    string
	quantity float64
	cost     float64
	price    float64
	memo     string
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "deposit tokens, and record what they cost" }
func (*depositCmd) Usage() string {
	return `lpf deposit -a <asset> -q <quantity> [-cost <total> | -p <unit price>] [-m <memo>]

  Deposits tokens in the portfolio. The cost is the capital invested, it is
  used to compute the return of the rewards earned by the asset.
`
}

func (c *depositCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.asset, "a", "", "Asset symbol")
	f.Float64Var(&c.quantity, "q", 0, "Quantity deposited")
	f.Float64Var(&c.cost, "cost", 0, "Total cost of the deposit, in USD")
	f.Float64Var(&c.price, "p", 0, "Unit price, the cost is then price times quantity")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the transaction")
}

func (c *depositCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.asset == "" || c.quantity <= 0 || c.cost < 0 || c.price < 0 || (c.cost > 0 && c.price > 0) {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, ok := parseDay(c.date)
	if !ok {
		return subcommands.ExitUsageError
	}
	cost := lpfolio.USDollars(c.cost)
	if c.price > 0 {
		cost = lpfolio.USDollars(decimal.NewFromFloat(c.price).Mul(decimal.NewFromFloat(c.quantity)))
	}
	return EncodeTransaction(lpfolio.NewDeposit(day, c.memo, c.asset, lpfolio.Q(c.quantity), cost))
}

// --- Withdraw Command ---

type withdrawCmd struct {
	date     string
	asset    string
	quantity float64
	memo     string
}

func (*withdrawCmd) Name() string     { return "withdraw" }
func (*withdrawCmd) Synopsis() string { return "withdraw tokens out of the portfolio" }
func (*withdrawCmd) Usage() string {
	return `lpf withdraw -a <asset> [-q <quantity>] [-m <memo>]

  Withdraws tokens. Without quantity, the whole position is withdrawn.
`
}

func (c *withdrawCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.asset, "a", "", "Asset symbol")
	f.Float64Var(&c.quantity, "q", 0, "Quantity withdrawn, 0 withdraws everything")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the transaction")
}

func (c *withdrawCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.asset == "" || c.quantity < 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, ok := parseDay(c.date)
	if !ok {
		return subcommands.ExitUsageError
	}
	return EncodeTransaction(lpfolio.NewWithdraw(day, c.memo, c.asset, lpfolio.Q(c.quantity)))
}

// --- Buy Command ---

type buyCmd struct {
	date     string
	asset    string
	quantity float64
	amount   float64
	memo     string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy tokens to open or add to a position" }
func (*buyCmd) Usage() string {
	return `lpf buy -a <asset> -q <quantity> -amount <amount> [-m <memo>]

  Buys tokens for a total amount. The amount is part of the capital invested in the asset.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.asset, "a", "", "Asset symbol")
	f.Float64Var(&c.quantity, "q", 0, "Quantity bought")
	f.Float64Var(&c.amount, "amount", 0, "Total amount paid, in USD")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the transaction")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.asset == "" || c.quantity <= 0 || c.amount <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, ok := parseDay(c.date)
	if !ok {
		return subcommands.ExitUsageError
	}
	return EncodeTransaction(lpfolio.NewBuy(day, c.memo, c.asset, lpfolio.Q(c.quantity), lpfolio.USDollars(c.amount)))
}

// --- Sell Command ---

type sellCmd struct {
	date     string
	asset    string
	quantity float64
	amount   float64
	memo     string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell tokens to reduce or close a position" }
func (*sellCmd) Usage() string {
	return `lpf sell -a <asset> [-q <quantity>] -amount <amount> [-m <memo>]

  Sells tokens for a total amount. Without quantity, the whole position is sold.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.asset, "a", "", "Asset symbol")
	f.Float64Var(&c.quantity, "q", 0, "Quantity sold, 0 sells everything")
	f.Float64Var(&c.amount, "amount", 0, "Total amount received, in USD")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the transaction")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.asset == "" || c.quantity < 0 || c.amount <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, ok := parseDay(c.date)
	if !ok {
		return subcommands.ExitUsageError
	}
	return EncodeTransaction(lpfolio.NewSell(day, c.memo, c.asset, lpfolio.Q(c.quantity), lpfolio.USDollars(c.amount)))
}

// --- Interest Command ---

type interestCmd struct {
	date     string
	asset    string
	quantity float64
	sources  string
	memo     string
}

func (*interestCmd) Name() string     { return "interest" }
func (*interestCmd) Synopsis() string { return "record a reward earned by one or more assets" }
func (*interestCmd) Usage() string {
	return `lpf interest -a <reward token> -q <quantity> -from <source>[,<source>...] [-m <memo>]

  Records a reward received in a token. The sources are the assets that earned
  it, usually liquidity pool positions. Rewards earned by pools are reported by
  the earnings command.

Usage Examples:
$ lpf interest -a HYPE -q 1.5 -from HYPE-USDC
`
}

func (c *interestCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.asset, "a", "", "Reward token symbol")
	f.Float64Var(&c.quantity, "q", 0, "Quantity received")
	f.StringVar(&c.sources, "from", "", "Comma separated symbols of the assets that earned the reward")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the transaction")
}

func (c *interestCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.asset == "" || c.quantity <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, ok := parseDay(c.date)
	if !ok {
		return subcommands.ExitUsageError
	}
	var sources []string
	for _, s := range strings.Split(c.sources, ",") {
		sources = append(sources, strings.TrimSpace(s))
	}
	return EncodeTransaction(lpfolio.NewInterest(day, c.memo, c.asset, lpfolio.Q(c.quantity), sources...))
}
