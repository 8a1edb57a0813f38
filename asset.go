package lpfolio

import (
	"fmt"
	"strings"

	"github.com/etnz/lpfolio/clmath"
)

// Pool is the range metadata of a concentrated liquidity position token.
type Pool struct {
	Base  string  `json:"base"`  // token0 symbol, the priced asset
	Quote string  `json:"quote"` // token1 symbol, the pricing asset
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Entry float64 `json:"entry"` // base price, in quote units, when the position was opened
}

// Range returns the price range of the pool position.
func (p Pool) Range() clmath.PriceRange { return clmath.PriceRange{Lower: p.Lower, Upper: p.Upper} }

// Pair returns the "BASE/QUOTE" name of the pool.
func (p Pool) Pair() string { return p.Base + "/" + p.Quote }

// Validate checks the pool metadata.
func (p Pool) Validate() error {
	if p.Base == "" || p.Quote == "" {
		return fmt.Errorf("pool must name its base and quote assets, got %q", p.Pair())
	}
	if p.Base == p.Quote {
		return fmt.Errorf("pool base and quote must differ, got %q", p.Pair())
	}
	if err := p.Range().Validate(); err != nil {
		return err
	}
	if !(p.Entry > 0) {
		return fmt.Errorf("pool entry price must be positive, got %v", p.Entry)
	}
	return nil
}

// Asset is a token tracked by the ledger.
type Asset struct {
	Symbol        string
	Name          string
	Pool          *Pool // non nil for concentrated liquidity positions
	TotalInvested Money // cost of all the funding transactions of this asset
}

// findAsset returns the asset with that symbol in assets, or nil.
func findAsset(assets []Asset, symbol string) *Asset {
	for i := range assets {
		if assets[i].Symbol == symbol {
			return &assets[i]
		}
	}
	return nil
}

// IsLiquidityPool reports whether symbol identifies a liquidity pool position.
//
// An asset declared with pool metadata always does. Otherwise the symbol is
// matched with naming conventions: a "LP" prefix, a "/" or "-" separator, or
// "POOL" anywhere. These conventions misclassify plain tokens like "X-COIN";
// they are kept as is since changing them changes which past rewards are
// attributed to pools.
func IsLiquidityPool(symbol string, assets []Asset) bool {
	if a := findAsset(assets, symbol); a != nil && a.Pool != nil {
		return true
	}
	s := strings.ToUpper(symbol)
	return strings.HasPrefix(s, "LP") ||
		strings.Contains(s, "/") ||
		strings.Contains(s, "-") ||
		strings.Contains(s, "POOL")
}
