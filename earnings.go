package lpfolio

import (
	"cmp"
	"maps"
	"slices"
	"strings"

	"github.com/etnz/lpfolio/date"
)

// SourceEarnings aggregates the rewards earned by a set of source assets.
type SourceEarnings struct {
	Source        string              // sorted source symbols joined with " + "
	SourceSymbols []string            // sorted source symbols
	Tokens        map[string]Quantity // reward quantity per token
	TotalValue    Money               // current USD value of all the rewards
	Transactions  []Interest
}

// EnhancedEarnings adds the return on the invested capital to SourceEarnings.
type EnhancedEarnings struct {
	SourceEarnings
	ROI           *Percent // nil when nothing was invested
	APR           *Percent // nil when DaysActive is zero
	TotalInvested Money
	DaysActive    int
}

// TokenTotal is the aggregated reward earned in one token.
type TokenTotal struct {
	Token    string
	Quantity Quantity
	Value    Money
}

// sourceKey returns the sorted sources and their joined key.
func sourceKey(sources []string) ([]string, string) {
	sorted := slices.Clone(sources)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	return sorted, strings.Join(sorted, " + ")
}

// EarningsBySource groups the interest transactions earned by liquidity pool
// positions by their sources.
//
// An interest counts if any of its sources is a liquidity pool. Rewards are
// valued at prices; a token without price is valued at zero.
func EarningsBySource(assets []Asset, txs []Transaction, prices Prices) map[string]*SourceEarnings {
	res := make(map[string]*SourceEarnings)
	for _, tx := range txs {
		interest, ok := tx.(Interest)
		if !ok {
			continue
		}
		if !slices.ContainsFunc(interest.Sources, func(s string) bool { return IsLiquidityPool(s, assets) }) {
			continue
		}
		symbols, key := sourceKey(interest.Sources)
		e, ok := res[key]
		if !ok {
			e = &SourceEarnings{
				Source:        key,
				SourceSymbols: symbols,
				Tokens:        make(map[string]Quantity),
				TotalValue:    M(0, USD),
			}
			res[key] = e
		}
		e.Tokens[interest.Asset] = e.Tokens[interest.Asset].Add(interest.Quantity)
		e.TotalValue = e.TotalValue.Add(prices.Value(interest.Asset, interest.Quantity))
		e.Transactions = append(e.Transactions, interest)
	}
	return res
}

// invested returns the capital put in symbol. Declared assets know their
// total invested, others sum their funding transactions.
func invested(symbol string, assets []Asset, fundings []Funding) Money {
	if a := findAsset(assets, symbol); a != nil {
		return a.TotalInvested
	}
	return totalCost(symbol, fundings)
}

// EnhanceEarnings computes the ROI and APR of each earnings group as of day now.
//
// The result is sorted by decreasing value, then by source.
func EnhanceEarnings(earnings map[string]*SourceEarnings, assets []Asset, txs []Transaction, now date.Date) []EnhancedEarnings {
	fundings := fundings(txs)
	res := make([]EnhancedEarnings, 0, len(earnings))
	for _, e := range earnings {
		ee := EnhancedEarnings{SourceEarnings: *e, TotalInvested: M(0, USD)}
		for _, symbol := range e.SourceSymbols {
			ee.TotalInvested = ee.TotalInvested.Add(invested(symbol, assets, fundings))
		}
		if ee.TotalInvested.IsPositive() {
			ee.ROI = PercentOf(e.TotalValue.Ratio(ee.TotalInvested) * 100)
		}

		var first date.Date
		for _, f := range fundings {
			if slices.Contains(e.SourceSymbols, f.Symbol) && (first.IsZero() || f.Date.Before(first)) {
				first = f.Date
			}
		}
		if !first.IsZero() {
			ee.DaysActive = max(0, now.DaysSince(first))
		}
		if ee.ROI != nil && ee.DaysActive > 0 {
			ee.APR = PercentOf(float64(*ee.ROI) / float64(ee.DaysActive) * 365)
		}
		res = append(res, ee)
	}
	slices.SortFunc(res, func(a, b EnhancedEarnings) int {
		if c := b.TotalValue.Decimal().Cmp(a.TotalValue.Decimal()); c != 0 {
			return c
		}
		return cmp.Compare(a.Source, b.Source)
	})
	return res
}

// TotalsByToken flattens earnings into the total earned per reward token,
// sorted by decreasing value, then by token.
func TotalsByToken(earnings map[string]*SourceEarnings, prices Prices) []TokenTotal {
	quantities := make(map[string]Quantity)
	for _, e := range earnings {
		for token, q := range e.Tokens {
			quantities[token] = quantities[token].Add(q)
		}
	}
	res := make([]TokenTotal, 0, len(quantities))
	for _, token := range slices.Sorted(maps.Keys(quantities)) {
		q := quantities[token]
		res = append(res, TokenTotal{Token: token, Quantity: q, Value: prices.Value(token, q)})
	}
	slices.SortStableFunc(res, func(a, b TokenTotal) int {
		return b.Value.Decimal().Cmp(a.Value.Decimal())
	})
	return res
}
