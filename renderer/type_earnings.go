package renderer

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/etnz/lpfolio"
	"github.com/etnz/lpfolio/date"
)

// Earnings is the rewards report, by source position and by token.
type Earnings struct {
	Date          date.Date
	Sources       []EarningsSource
	Tokens        []lpfolio.TokenTotal
	TotalValue    lpfolio.Money
	TotalInvested lpfolio.Money
}

// EarningsSource is a row of the by position table.
type EarningsSource struct {
	Source       string
	Rewards      string // "10 HYPE, 50 USDC"
	Value        lpfolio.Money
	Invested     lpfolio.Money
	ROI          string
	APR          string
	DaysActive   int
	Transactions int
}

// optionalPercent renders a missing ratio as "-".
func optionalPercent(p *lpfolio.Percent) string {
	if p == nil {
		return "-"
	}
	return p.String()
}

// NewEarnings creates the earnings report on day on.
func NewEarnings(on date.Date, earnings []lpfolio.EnhancedEarnings, tokens []lpfolio.TokenTotal) *Earnings {
	e := &Earnings{
		Date:          on,
		Sources:       make([]EarningsSource, 0, len(earnings)),
		Tokens:        tokens,
		TotalValue:    lpfolio.USDollars(0),
		TotalInvested: lpfolio.USDollars(0),
	}
	for _, ee := range earnings {
		var rewards []string
		for _, token := range slices.Sorted(maps.Keys(ee.Tokens)) {
			rewards = append(rewards, fmt.Sprintf("%s %s", ee.Tokens[token], token))
		}
		e.Sources = append(e.Sources, EarningsSource{
			Source:       ee.Source,
			Rewards:      strings.Join(rewards, ", "),
			Value:        ee.TotalValue,
			Invested:     ee.TotalInvested,
			ROI:          optionalPercent(ee.ROI),
			APR:          optionalPercent(ee.APR),
			DaysActive:   ee.DaysActive,
			Transactions: len(ee.Transactions),
		})
		e.TotalValue = e.TotalValue.Add(ee.TotalValue)
		e.TotalInvested = e.TotalInvested.Add(ee.TotalInvested)
	}
	return e
}

// Positions is the liquidity pool positions report.
type Positions struct {
	Date      date.Date
	Positions []lpfolio.LPPosition
}

// NewPositions creates the positions report on day on.
func NewPositions(on date.Date, positions []lpfolio.LPPosition) *Positions {
	return &Positions{Date: on, Positions: positions}
}
