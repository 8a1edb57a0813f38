package clmath

// DeltaExposure returns the base asset quantity the position behaves like at
// price: its token0 amount. A spot short of that size neutralizes the
// position's first order price exposure.
func DeltaExposure(price float64, r PriceRange, liquidity float64) float64 {
	amount0, _ := AmountsForLiquidity(price, r, liquidity)
	return amount0
}

// HedgeSize is the spot short that neutralizes a position at a price.
type HedgeSize struct {
	Base     float64 // base asset quantity to short
	Notional float64 // quote value of that short
}

// Hedge returns the hedge of the position at price.
func Hedge(price float64, r PriceRange, liquidity float64) HedgeSize {
	base := DeltaExposure(price, r, liquidity)
	return HedgeSize{Base: base, Notional: base * price}
}
