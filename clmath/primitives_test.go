package clmath

import (
	"errors"
	"math"
	"testing"
)

// closeTo reports whether got is within tol of want.
func closeTo(got, want, tol float64) bool { return math.Abs(got-want) <= tol }

var testRange = PriceRange{Lower: 1500, Upper: 2500}

func TestPriceRange_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		r       PriceRange
		wantErr bool
	}{
		{name: "valid", r: PriceRange{1500, 2500}},
		{name: "empty", r: PriceRange{2000, 2000}, wantErr: true},
		{name: "inverted", r: PriceRange{2500, 1500}, wantErr: true},
		{name: "zero lower", r: PriceRange{0, 1500}, wantErr: true},
		{name: "negative lower", r: PriceRange{-1, 1500}, wantErr: true},
		{name: "NaN upper", r: PriceRange{1, math.NaN()}, wantErr: true},
		{name: "infinite upper", r: PriceRange{1, math.Inf(1)}, wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.r.Validate()
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidRange) {
					t.Errorf("Validate(%v) = %v, want ErrInvalidRange", tc.r, err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate(%v) unexpected error: %v", tc.r, err)
			}
		})
	}
}

func TestAmountsForLiquidity_Boundaries(t *testing.T) {
	const liquidity = 12345.678
	for _, r := range []PriceRange{{1500, 2500}, {0.0001, 0.0002}, {1, 1.0001}, {30000, 90000}} {
		_, amount1 := AmountsForLiquidity(r.Lower, r, liquidity)
		if amount1 != 0 {
			t.Errorf("AmountsForLiquidity(lower=%v) amount1 = %v, want 0", r.Lower, amount1)
		}
		amount0, _ := AmountsForLiquidity(r.Upper, r, liquidity)
		if amount0 != 0 {
			t.Errorf("AmountsForLiquidity(upper=%v) amount0 = %v, want 0", r.Upper, amount0)
		}
	}
}

func TestAmountsForLiquidity_Continuity(t *testing.T) {
	const liquidity = 1000.0
	// just inside the bounds the in-range formulas must match the out of range ones.
	below0, _ := AmountsForLiquidity(testRange.Lower, testRange, liquidity)
	inside0, inside1 := AmountsForLiquidity(testRange.Lower*(1+1e-12), testRange, liquidity)
	if !closeTo(inside0, below0, 1e-6) || !closeTo(inside1, 0, 1e-6) {
		t.Errorf("discontinuity at lower bound: (%v, %v) vs (%v, 0)", inside0, inside1, below0)
	}
	_, above1 := AmountsForLiquidity(testRange.Upper, testRange, liquidity)
	inside0, inside1 = AmountsForLiquidity(testRange.Upper*(1-1e-12), testRange, liquidity)
	if !closeTo(inside1, above1, 1e-6) || !closeTo(inside0, 0, 1e-6) {
		t.Errorf("discontinuity at upper bound: (%v, %v) vs (0, %v)", inside0, inside1, above1)
	}
}

func TestRequiredAmountsForDeposit(t *testing.T) {
	testCases := []struct {
		name       string
		price      float64
		wantSplit0 float64 // -1 means strictly between 0 and 100
		wantZero1  bool
		wantZero0  bool
	}{
		{name: "mid range", price: 2000, wantSplit0: -1},
		{name: "below range", price: 1000, wantSplit0: 100, wantZero1: true},
		{name: "at lower bound", price: 1500, wantSplit0: 100, wantZero1: true},
		{name: "at upper bound", price: 2500, wantSplit0: 0, wantZero0: true},
		{name: "above range", price: 3000, wantSplit0: 0, wantZero0: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := RequiredAmountsForDeposit(tc.price, testRange, 1000)
			if err != nil {
				t.Fatalf("RequiredAmountsForDeposit(%v) unexpected error: %v", tc.price, err)
			}
			if got := d.Value(tc.price); !closeTo(got, 1000, 1e-6) {
				t.Errorf("position value = %v, want 1000", got)
			}
			if !closeTo(d.Split0+d.Split1, 100, 1e-6) {
				t.Errorf("Split0+Split1 = %v, want 100", d.Split0+d.Split1)
			}
			if tc.wantSplit0 < 0 {
				if !(d.Split0 > 0 && d.Split0 < 100) {
					t.Errorf("Split0 = %v, want strictly between 0 and 100", d.Split0)
				}
			} else if d.Split0 != tc.wantSplit0 {
				t.Errorf("Split0 = %v, want %v", d.Split0, tc.wantSplit0)
			}
			if tc.wantZero1 && d.Amount1 != 0 {
				t.Errorf("Amount1 = %v, want 0", d.Amount1)
			}
			if tc.wantZero0 && d.Amount0 != 0 {
				t.Errorf("Amount0 = %v, want 0", d.Amount0)
			}
			if d.Liquidity < 0 {
				t.Errorf("Liquidity = %v, want >= 0", d.Liquidity)
			}
		})
	}
}

func TestRequiredAmountsForDeposit_Invalid(t *testing.T) {
	testCases := []struct {
		name    string
		price   float64
		r       PriceRange
		deposit float64
		want    error
	}{
		{name: "inverted range", price: 2000, r: PriceRange{2500, 1500}, deposit: 1000, want: ErrInvalidRange},
		{name: "empty range", price: 2000, r: PriceRange{2000, 2000}, deposit: 1000, want: ErrInvalidRange},
		{name: "zero price", price: 0, r: testRange, deposit: 1000, want: ErrInvalidRange},
		{name: "negative price", price: -5, r: testRange, deposit: 1000, want: ErrInvalidRange},
		{name: "negative deposit", price: 2000, r: testRange, deposit: -1, want: ErrInvalidDeposit},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := RequiredAmountsForDeposit(tc.price, tc.r, tc.deposit)
			if !errors.Is(err, tc.want) {
				t.Errorf("RequiredAmountsForDeposit() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestRequiredAmountsForDeposit_ZeroDeposit(t *testing.T) {
	d, err := RequiredAmountsForDeposit(2000, testRange, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Split0 != 0 || d.Split1 != 0 {
		t.Errorf("splits of an empty deposit = (%v, %v), want (0, 0)", d.Split0, d.Split1)
	}
}

func TestSplit_Monotonic(t *testing.T) {
	for _, r := range []PriceRange{{1500, 2500}, {0.5, 2}, {100, 100.5}} {
		previous := math.Inf(1)
		for _, price := range Steps(r.Lower, r.Upper, 200) {
			split0, split1, err := SplitAt(price, r)
			if err != nil {
				t.Fatalf("SplitAt(%v, %v) unexpected error: %v", price, r, err)
			}
			if !closeTo(split0+split1, 100, 1e-6) {
				t.Errorf("SplitAt(%v, %v) sums to %v, want 100", price, r, split0+split1)
			}
			if split0 > previous+1e-9 {
				t.Errorf("split0 increased from %v to %v at price %v in %v", previous, split0, price, r)
			}
			previous = split0
		}
	}
}

func TestLiquidityForAmounts_RoundTrip(t *testing.T) {
	const liquidity = 5000.0
	for _, price := range []float64{1000, 1500, 1800, 2000, 2400, 2500, 4000} {
		amount0, amount1 := AmountsForLiquidity(price, testRange, liquidity)
		got := LiquidityForAmounts(price, testRange, amount0, amount1)
		if !closeTo(got, liquidity, liquidity*1e-9) {
			t.Errorf("LiquidityForAmounts(%v) = %v, want %v", price, got, liquidity)
		}
	}
}

func TestLiquidityForAmounts_ScarceToken(t *testing.T) {
	amount0, amount1 := AmountsForLiquidity(2000, testRange, 100)
	// doubling token1 does not add liquidity, token0 is the limit.
	got := LiquidityForAmounts(2000, testRange, amount0, 2*amount1)
	if !closeTo(got, 100, 1e-9) {
		t.Errorf("LiquidityForAmounts() = %v, want 100", got)
	}
}
