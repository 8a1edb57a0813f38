package cmd

import (
	"flag"
	"fmt"

	"github.com/etnz/lpfolio"
	"github.com/etnz/lpfolio/clmath"
	"github.com/etnz/lpfolio/date"
	"github.com/etnz/lpfolio/renderer"
)

// poolFlags selects the pool a liquidity math command works on: either a pool
// asset declared in the ledger, or an explicit pair and range.
type poolFlags struct {
	asset string
	base  string
	quote string
	lower float64
	upper float64

	ledger *lpfolio.Ledger // loaded when -a is used
}

// SetFlags registers the explicit pool flags.
func (p *poolFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.base, "base", "", "Base token (token0) symbol")
	f.StringVar(&p.quote, "quote", "", "Quote token (token1) symbol")
	f.Float64Var(&p.lower, "lower", 0, "Lower bound of the price range")
	f.Float64Var(&p.upper, "upper", 0, "Upper bound of the price range")
}

// SetAssetFlags registers the explicit pool flags and -a to read them from a declared pool asset.
func (p *poolFlags) SetAssetFlags(f *flag.FlagSet) {
	f.StringVar(&p.asset, "a", "", "Pool asset declared in the ledger, replaces the other pool flags")
	p.SetFlags(f)
}

// Resolve returns the selected pool, and the declared asset when -a is used.
func (p *poolFlags) Resolve() (renderer.Pool, *lpfolio.Asset, error) {
	if p.asset == "" {
		r, err := clmath.NewPriceRange(p.lower, p.upper)
		pool := renderer.Pool{Base: p.base, Quote: p.quote, Range: r}
		if pool.Base == "" {
			pool.Base = "token0"
		}
		if pool.Quote == "" {
			pool.Quote = "token1"
		}
		return pool, nil, err
	}
	ledger, err := DecodeLedger()
	if err != nil {
		return renderer.Pool{}, nil, err
	}
	a := ledger.Asset(p.asset)
	if a == nil {
		return renderer.Pool{}, nil, fmt.Errorf("unknown asset %q", p.asset)
	}
	if a.Pool == nil {
		return renderer.Pool{}, nil, fmt.Errorf("asset %q is not declared as a liquidity pool", p.asset)
	}
	p.ledger = ledger
	return renderer.Pool{Base: a.Pool.Base, Quote: a.Pool.Quote, Range: a.Pool.Range()}, a, nil
}

// Invested returns the capital invested in the resolved pool asset, in quote
// units at the latest known prices.
func (p *poolFlags) Invested(a *lpfolio.Asset) (float64, error) {
	prices, err := loadPrices(p.ledger, date.Today())
	if err != nil {
		return 0, err
	}
	return a.Pool.InQuote(a.TotalInvested, prices), nil
}

// amountFlags are the token amounts a position holds, to derive its liquidity.
type amountFlags struct {
	amount0 float64
	amount1 float64
}

func (a *amountFlags) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&a.amount0, "amount0", 0, "Base tokens held by the position, replaces -L")
	f.Float64Var(&a.amount1, "amount1", 0, "Quote tokens held by the position, replaces -L")
}

// Liquidity returns the liquidity the amounts back at price, or 0 when no
// amount is given.
func (a amountFlags) Liquidity(price float64, r clmath.PriceRange) float64 {
	if a.amount0 <= 0 && a.amount1 <= 0 {
		return 0
	}
	return clmath.LiquidityForAmounts(price, r, a.amount0, a.amount1)
}
