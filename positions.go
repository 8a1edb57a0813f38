package lpfolio

import (
	"fmt"

	"github.com/etnz/lpfolio/clmath"
	"github.com/etnz/lpfolio/date"
)

// LPPosition is the state of a concentrated liquidity position on a day.
//
// Pool math works in quote units: Price, Valuation and Hedge are expressed in
// the pool quote asset. QuoteUSD converts them to dollars.
type LPPosition struct {
	Asset     Asset
	Price     float64          // base price in quote units
	Stale     bool             // the base price is unknown, Price is the entry price
	InRange   bool             // Price is within the pool range
	QuoteUSD  float64          // USD price of one quote unit, 1 when unpriced
	Valuation clmath.Valuation // entry deposit, current amounts and impermanent loss
	Split0    float64          // current share of the value held in base, in percent
	Split1    float64
	Hedge     clmath.HedgeSize
}

// ValueUSD returns the value of the position kept in the pool, in USD.
func (p LPPosition) ValueUSD() float64 { return p.Valuation.LPValue * p.QuoteUSD }

// HeldUSD returns the value of the entry tokens simply held, in USD.
func (p LPPosition) HeldUSD() float64 { return p.Valuation.HeldValue * p.QuoteUSD }

// ILUSD returns the impermanent loss, in USD.
func (p LPPosition) ILUSD() float64 { return p.Valuation.ILUsd * p.QuoteUSD }

// QuotePrice returns the USD price of the pool quote asset. An unpriced quote
// counts as a one dollar stablecoin.
func (p Pool) QuotePrice(prices Prices) float64 {
	if quote, ok := prices.Price(p.Quote); ok && quote.IsPositive() {
		return quote.Float()
	}
	return 1
}

// InQuote converts a USD amount into quote units.
func (p Pool) InQuote(m Money, prices Prices) float64 {
	return m.Float() / p.QuotePrice(prices)
}

// basePrice returns the price of the pool base asset in quote units, and
// whether it is known.
func basePrice(p Pool, prices Prices) (float64, bool) {
	base, ok := prices.Price(p.Base)
	if !ok || !base.IsPositive() {
		return 0, false
	}
	return base.Float() / p.QuotePrice(prices), true
}

// Positions values every liquidity pool position open at the end of day on.
//
// The entry deposit is the capital invested in the position up to that day,
// converted to quote units and opened at the pool entry price.
func (l *Ledger) Positions(prices Prices, on date.Date) ([]LPPosition, error) {
	var res []LPPosition
	for _, a := range l.AssetsAsOf(on) {
		if a.Pool == nil || !a.TotalInvested.IsPositive() {
			continue
		}
		if !l.Position(a.Symbol, on).IsPositive() {
			continue // closed
		}
		pool := *a.Pool
		price, ok := basePrice(pool, prices)
		if !ok {
			price = pool.Entry
		}
		r := pool.Range()
		v, err := clmath.CalculateIL(pool.Entry, price, r, pool.InQuote(a.TotalInvested, prices))
		if err != nil {
			return nil, fmt.Errorf("cannot value %s: %w", a.Symbol, err)
		}
		split0, split1, err := clmath.SplitAt(price, r)
		if err != nil {
			return nil, fmt.Errorf("cannot split %s: %w", a.Symbol, err)
		}
		res = append(res, LPPosition{
			Asset:     a,
			Price:     price,
			Stale:     !ok,
			InRange:   r.Contains(price),
			QuoteUSD:  pool.QuotePrice(prices),
			Valuation: v,
			Split0:    split0,
			Split1:    split1,
			Hedge:     clmath.Hedge(price, r, v.Entry.Liquidity),
		})
	}
	return res, nil
}
