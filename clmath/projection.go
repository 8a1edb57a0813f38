package clmath

// Projection is the content and value of a position at a target price.
type Projection struct {
	Price   float64
	Amount0 float64
	Amount1 float64
	Value   float64 // in quote units
}

// ProjectValue evaluates a position of the given liquidity at target, without
// re-deriving the liquidity.
func ProjectValue(target float64, r PriceRange, liquidity float64) Projection {
	amount0, amount1 := AmountsForLiquidity(target, r, liquidity)
	return Projection{
		Price:   target,
		Amount0: amount0,
		Amount1: amount1,
		Value:   amount0*target + amount1,
	}
}

// Ladder projects the same position at each of the target prices, in order.
func Ladder(r PriceRange, liquidity float64, targets ...float64) []Projection {
	ladder := make([]Projection, 0, len(targets))
	for _, target := range targets {
		ladder = append(ladder, ProjectValue(target, r, liquidity))
	}
	return ladder
}

// Steps returns n prices evenly spaced from low to high, both included.
// It is a convenience to build a Ladder around a range.
func Steps(low, high float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{low}
	}
	steps := make([]float64, n)
	delta := (high - low) / float64(n-1)
	for i := range steps {
		steps[i] = low + float64(i)*delta
	}
	// avoid accumulating rounding on the last step.
	steps[n-1] = high
	return steps
}
