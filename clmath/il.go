package clmath

// Valuation compares a position left in the pool with the same entry tokens
// simply held, at a target price.
type Valuation struct {
	LPValue      float64 // value of the position kept in the pool
	HeldValue    float64 // value of the entry tokens held outside the pool
	ILUsd        float64 // LPValue - HeldValue, never positive
	ILPercentage float64 // ILUsd relative to HeldValue, 0 if HeldValue is not positive

	Entry     Deposit    // position opened at the entry price
	Projected Projection // same position at the target price
}

// CalculateIL opens a position worth deposit at entry price and measures the
// impermanent loss it carries once the price moves to target.
func CalculateIL(entry, target float64, r PriceRange, deposit float64) (Valuation, error) {
	d, err := RequiredAmountsForDeposit(entry, r, deposit)
	if err != nil {
		return Valuation{}, err
	}
	projected := ProjectValue(target, r, d.Liquidity)

	v := Valuation{
		LPValue:   projected.Value,
		HeldValue: d.Amount0*target + d.Amount1,
		Entry:     d,
		Projected: projected,
	}
	v.ILUsd = v.LPValue - v.HeldValue
	if v.HeldValue > 0 {
		v.ILPercentage = v.ILUsd / v.HeldValue * 100
	}
	return v, nil
}
