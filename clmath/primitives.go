// Package clmath implements the closed-form math of concentrated liquidity
// positions (Uniswap V3 style pools).
//
// Token0 is the base asset and token1 the quote asset. Prices are expressed as
// quote units per base unit, and values are expressed in quote units.
//
// Every function is pure: they can be called concurrently, and no result is
// cached between calls.
package clmath

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidRange is returned when a price range is empty, inverted or
	// has a non positive bound, or when a price is not positive.
	ErrInvalidRange = errors.New("invalid price range")
	// ErrInvalidSplit is returned when a target split is outside [0, 100].
	ErrInvalidSplit = errors.New("invalid split target")
	// ErrInvalidDeposit is returned for negative or non finite deposit values.
	ErrInvalidDeposit = errors.New("invalid deposit value")
)

// PriceRange is the interval of prices where a position's liquidity is active.
type PriceRange struct {
	Lower float64
	Upper float64
}

// NewPriceRange returns a validated PriceRange.
func NewPriceRange(lower, upper float64) (PriceRange, error) {
	r := PriceRange{Lower: lower, Upper: upper}
	return r, r.Validate()
}

// Validate checks that 0 < Lower < Upper.
func (r PriceRange) Validate() error {
	// written with negations so that NaN bounds are rejected too.
	if !(r.Lower > 0) || !(r.Upper > 0) {
		return fmt.Errorf("%w: bounds must be positive, got [%v, %v]", ErrInvalidRange, r.Lower, r.Upper)
	}
	if !(r.Lower < r.Upper) || math.IsInf(r.Upper, 1) {
		return fmt.Errorf("%w: lower %v must be below upper %v", ErrInvalidRange, r.Lower, r.Upper)
	}
	return nil
}

// Contains reports whether price is strictly inside the range, where the
// position holds both tokens.
func (r PriceRange) Contains(price float64) bool { return price > r.Lower && price < r.Upper }

func (r PriceRange) String() string { return fmt.Sprintf("[%v, %v]", r.Lower, r.Upper) }

// sqrts returns the square roots of the range bounds.
func (r PriceRange) sqrts() (sqrtPa, sqrtPb float64) { return math.Sqrt(r.Lower), math.Sqrt(r.Upper) }

// Position is the token content implied by a liquidity at a given price.
type Position struct {
	Amount0   float64 // base asset quantity
	Amount1   float64 // quote asset quantity
	Liquidity float64
}

// Value returns the position value in quote units at price.
func (p Position) Value(price float64) float64 { return p.Amount0*price + p.Amount1 }

// Deposit is a position sized for a deposit value, together with the split of
// that value between both tokens.
type Deposit struct {
	Position
	Split0 float64 // percent of the value held in token0
	Split1 float64 // percent of the value held in token1
}

// AmountsForLiquidity returns the token amounts backing liquidity at price.
//
// At or below the range the position is fully token0, at or above it is fully
// token1. The caller is responsible for passing a valid range and a non
// negative liquidity.
func AmountsForLiquidity(price float64, r PriceRange, liquidity float64) (amount0, amount1 float64) {
	sqrtP := math.Sqrt(price)
	sqrtPa, sqrtPb := r.sqrts()
	switch {
	case sqrtP <= sqrtPa:
		amount0 = liquidity * (sqrtPb - sqrtPa) / (sqrtPa * sqrtPb)
	case sqrtP >= sqrtPb:
		amount1 = liquidity * (sqrtPb - sqrtPa)
	default:
		amount0 = liquidity * (sqrtPb - sqrtP) / (sqrtP * sqrtPb)
		amount1 = liquidity * (sqrtP - sqrtPa)
	}
	return amount0, amount1
}

// RequiredAmountsForDeposit sizes a position so that its value at price equals
// deposit (in quote units), and returns its token amounts, liquidity and split.
func RequiredAmountsForDeposit(price float64, r PriceRange, deposit float64) (Deposit, error) {
	if err := r.Validate(); err != nil {
		return Deposit{}, err
	}
	if !(price > 0) || math.IsInf(price, 1) {
		return Deposit{}, fmt.Errorf("%w: price must be positive, got %v", ErrInvalidRange, price)
	}
	if !(deposit >= 0) || math.IsInf(deposit, 1) {
		return Deposit{}, fmt.Errorf("%w: %v", ErrInvalidDeposit, deposit)
	}

	sqrtP := math.Sqrt(price)
	sqrtPa, sqrtPb := r.sqrts()
	var liquidity float64
	switch {
	case sqrtP <= sqrtPa:
		liquidity = (deposit / price) * sqrtPa * sqrtPb / (sqrtPb - sqrtPa)
	case sqrtP >= sqrtPb:
		liquidity = deposit / (sqrtPb - sqrtPa)
	default:
		liquidity = deposit / ((sqrtPb-sqrtP)*sqrtP/sqrtPb + (sqrtP - sqrtPa))
	}

	d := Deposit{Position: Position{Liquidity: liquidity}}
	d.Amount0, d.Amount1 = AmountsForLiquidity(price, r, liquidity)
	d.Split0, d.Split1 = split(d.Position, price)
	return d, nil
}

// split returns the share of the position value held in each token, in percent.
func split(p Position, price float64) (split0, split1 float64) {
	value0 := p.Amount0 * price
	total := value0 + p.Amount1
	if total <= 0 {
		return 0, 0
	}
	return value0 / total * 100, p.Amount1 / total * 100
}

// LiquidityForAmounts returns the largest liquidity that amount0 and amount1
// can back at price. Inside the range the scarcer token limits the liquidity,
// the other one is left over.
func LiquidityForAmounts(price float64, r PriceRange, amount0, amount1 float64) float64 {
	sqrtP := math.Sqrt(price)
	sqrtPa, sqrtPb := r.sqrts()
	switch {
	case sqrtP <= sqrtPa:
		return amount0 * sqrtPa * sqrtPb / (sqrtPb - sqrtPa)
	case sqrtP >= sqrtPb:
		return amount1 / (sqrtPb - sqrtPa)
	default:
		liquidity0 := amount0 * sqrtP * sqrtPb / (sqrtPb - sqrtP)
		liquidity1 := amount1 / (sqrtP - sqrtPa)
		return math.Min(liquidity0, liquidity1)
	}
}
