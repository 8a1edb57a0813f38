package clmath

import (
	"fmt"
	"math"
)

// DefaultIterations is the number of bisection steps used by
// PriceForTargetSplit. Each step halves the log-width of the search interval.
const DefaultIterations = 20

// notional is the deposit used to evaluate splits, any positive value works
// since the split does not depend on the position size.
const notional = 1000

// PriceForTargetSplit returns the price inside r at which a deposit is split
// with split0 percent of its value in token0.
//
// split0 decreases from 100 at the lower bound to 0 at the upper bound, so the
// price is found by bisection. The interval is halved at its geometric mean so
// that the precision stays relative to the price on wide ranges too.
// A non positive iterations uses DefaultIterations.
func PriceForTargetSplit(split0 float64, r PriceRange, iterations int) (float64, error) {
	if err := r.Validate(); err != nil {
		return 0, err
	}
	if !(split0 >= 0 && split0 <= 100) {
		return 0, fmt.Errorf("%w: %v is outside [0, 100]", ErrInvalidSplit, split0)
	}
	if iterations <= 0 {
		iterations = DefaultIterations
	}

	low, high := r.Lower, r.Upper
	for range iterations {
		mid := math.Sqrt(low * high)
		d, err := RequiredAmountsForDeposit(mid, r, notional)
		if err != nil {
			return 0, err
		}
		if d.Split0 > split0 {
			// too much token0 left: the price must go up.
			low = mid
		} else {
			high = mid
		}
	}
	return math.Sqrt(low * high), nil
}

// SplitAt returns the split of any deposit made at price in r.
func SplitAt(price float64, r PriceRange) (split0, split1 float64, err error) {
	d, err := RequiredAmountsForDeposit(price, r, notional)
	if err != nil {
		return math.NaN(), math.NaN(), err
	}
	return d.Split0, d.Split1, nil
}
