package lpfolio

import (
	"fmt"
	"maps"
	"slices"

	"github.com/etnz/lpfolio/date"
	"github.com/shopspring/decimal"
)

// Prices maps a symbol to its USD price.
type Prices map[string]Money

// Price returns the price of symbol and whether it is known.
func (p Prices) Price(symbol string) (Money, bool) {
	m, ok := p[symbol]
	return m, ok
}

// Value returns the USD value of q units of symbol. An unknown price values
// the quantity at zero.
func (p Prices) Value(symbol string, q Quantity) Money {
	price, ok := p[symbol]
	if !ok {
		return M(0, USD)
	}
	return price.Mul(q).withCurrency(USD)
}

// Symbols returns the priced symbols in alphabetical order.
func (p Prices) Symbols() []string { return slices.Sorted(maps.Keys(p)) }

// decimals converts prices to the representation used in transactions.
func (p Prices) decimals() map[string]decimal.Decimal {
	res := make(map[string]decimal.Decimal, len(p))
	for symbol, price := range p {
		res[symbol] = price.Decimal()
	}
	return res
}

// LedgerPrices is a PriceStore backed by the update-price transactions of a ledger.
type LedgerPrices struct {
	ledger *Ledger
}

// NewLedgerPrices returns a PriceStore reading and writing prices in ledger.
func NewLedgerPrices(ledger *Ledger) *LedgerPrices { return &LedgerPrices{ledger: ledger} }

// histories indexes the ledger prices by symbol.
func (s *LedgerPrices) histories() map[string]*date.History[decimal.Decimal] {
	res := make(map[string]*date.History[decimal.Decimal])
	for _, tx := range s.ledger.Transactions(func(tx Transaction) bool { return tx.What() == CmdUpdatePrice }) {
		u := tx.(UpdatePrice)
		for symbol, price := range u.PricesIter() {
			h, ok := res[symbol]
			if !ok {
				h = new(date.History[decimal.Decimal])
				res[symbol] = h
			}
			h.Append(u.Date, price)
		}
	}
	return res
}

// Prices returns the latest price of every symbol as of day on.
func (s *LedgerPrices) Prices(on date.Date) (Prices, error) {
	res := make(Prices)
	for symbol, h := range s.histories() {
		if v, ok := h.ValueAsOf(on); ok {
			res[symbol] = M(v, USD)
		}
	}
	return res, nil
}

// Update merges prices into the ledger update-price transaction of day on.
func (s *LedgerPrices) Update(on date.Date, prices Prices) error {
	tx, err := s.ledger.Validate(NewUpdatePrices(on, prices.decimals()))
	if err != nil {
		return fmt.Errorf("cannot update prices: %w", err)
	}
	s.ledger.AppendOrUpdate(tx)
	return nil
}
