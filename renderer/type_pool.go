package renderer

import (
	"github.com/etnz/lpfolio/clmath"
)

// Pool describes the pair and range a report is about.
type Pool struct {
	Base  string // token0
	Quote string // token1
	Range clmath.PriceRange
}

// Pair returns the "BASE/QUOTE" name of the pool.
func (p Pool) Pair() string { return p.Base + "/" + p.Quote }

// Split is the token amounts needed to deposit Total quote units at Price.
type Split struct {
	Pool
	Price float64
	Total float64
	clmath.Deposit
}

// Value0 returns the value of the token0 amount in quote units.
func (s Split) Value0() float64 { return s.Amount0 * s.Price }

// Solve is the price at which a position holds Split0 percent of its value in token0.
type Solve struct {
	Pool
	Split0     float64
	Price      float64
	Iterations int
}

// Split1 returns the complementary share of token1.
func (s Solve) Split1() float64 { return 100 - s.Split0 }

// Ladder is the value of a position of constant liquidity over a list of prices.
type Ladder struct {
	Pool
	Liquidity float64
	Reference float64 // value the changes are computed against
	Rows      []clmath.Projection
}

// Change returns the relative change of p value versus the reference, in percent.
func (l Ladder) Change(p clmath.Projection) float64 {
	if l.Reference <= 0 {
		return 0
	}
	return (p.Value/l.Reference - 1) * 100
}

// IL is an impermanent loss valuation of a Total deposit opened at EntryPrice
// and valued at TargetPrice.
type IL struct {
	Pool
	EntryPrice  float64
	TargetPrice float64
	Total       float64
	clmath.Valuation
}

// Hedge is the base exposure of a position at Price.
type Hedge struct {
	Pool
	Price     float64
	Liquidity float64
	Split0    float64
	Size      clmath.HedgeSize
}
