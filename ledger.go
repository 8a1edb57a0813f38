package lpfolio

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"slices"
	"sort"

	"github.com/etnz/lpfolio/date"
)

// Ledger represents a list of transactions.
//
// In a Ledger transactions are always in chronological order, transactions on
// the same day keep their insertion order.
type Ledger struct {
	transactions []Transaction
	assets       map[string]Declare // index declarations by symbol
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		transactions: make([]Transaction, 0),
		assets:       make(map[string]Declare),
	}
}

// Validate checks a transaction for correctness against the current ledger
// and applies quick fixes where applicable (e.g., resolving "sell all").
func (l *Ledger) Validate(tx Transaction) (Transaction, error) {
	validated, err := tx.Validate(l)
	if err != nil {
		return validated, fmt.Errorf("invalid %s transaction on %v: %w", tx.What(), tx.When(), err)
	}
	return validated, nil
}

// Append appends transactions to this ledger and maintains the chronological order of transactions.
func (l *Ledger) Append(txs ...Transaction) {
	l.transactions = append(l.transactions, txs...)
	for _, tx := range txs {
		if v, ok := tx.(Declare); ok {
			l.assets[v.Symbol] = v
		}
	}
	l.stableSort()
}

// AppendOrUpdate appends transactions, but merges an UpdatePrice into an
// existing one on the same day.
func (l *Ledger) AppendOrUpdate(txs ...Transaction) {
	for _, tx := range txs {
		newTx, ok := tx.(UpdatePrice)
		if !ok {
			l.Append(tx)
			log.Printf("%v: append %q", tx.When(), tx.What())
			continue
		}
		i := slices.IndexFunc(l.transactions, func(t Transaction) bool {
			u, ok := t.(UpdatePrice)
			return ok && u.When() == newTx.When()
		})
		if i < 0 {
			l.Append(newTx)
			log.Printf("%v: append %q", newTx.When(), newTx.What())
			continue
		}
		oldTx := l.transactions[i].(UpdatePrice)
		merged := maps.Clone(oldTx.Prices)
		for symbol, price := range newTx.Prices {
			if old, existed := merged[symbol]; !existed || !old.Equal(price) {
				log.Printf("%v: update %v price from %s to %s", newTx.Date, symbol, old, price)
				merged[symbol] = price
			}
		}
		oldTx.Prices = merged
		l.transactions[i] = oldTx
	}
}

// stableSort sorts the ledger by transaction date.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].When().Before(l.transactions[j].When())
	})
}

// Len returns the number of transactions.
func (l *Ledger) Len() int { return len(l.transactions) }

// List returns a copy of all transactions in chronological order.
func (l *Ledger) List() []Transaction { return slices.Clone(l.transactions) }

// AcceptAll is a filter that accepts every transaction.
func AcceptAll(Transaction) bool { return true }

// ByAsset returns a filter for transactions moving or declaring symbol, or
// earned from it.
func ByAsset(symbol string) func(Transaction) bool {
	return func(tx Transaction) bool {
		switch v := tx.(type) {
		case Declare:
			return v.Symbol == symbol
		case Deposit:
			return v.Asset == symbol
		case Withdraw:
			return v.Asset == symbol
		case Buy:
			return v.Asset == symbol
		case Sell:
			return v.Asset == symbol
		case Interest:
			return v.Asset == symbol || slices.Contains(v.Sources, symbol)
		case UpdatePrice:
			_, ok := v.Prices[symbol]
			return ok
		}
		return false
	}
}

// ByRange returns a filter for transactions within r.
func ByRange(r date.Range) func(Transaction) bool {
	return func(tx Transaction) bool { return r.Contains(tx.When()) }
}

// Transactions returns an iterator over the transactions accepted by all filters.
func (l *Ledger) Transactions(filters ...func(Transaction) bool) iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
	next:
		for i, tx := range l.transactions {
			for _, filter := range filters {
				if !filter(tx) {
					continue next
				}
			}
			if !yield(i, tx) {
				return
			}
		}
	}
}

// Asset returns the asset declared with this symbol, or nil if unknown.
func (l *Ledger) Asset(symbol string) *Asset {
	return l.AssetAsOf(symbol, l.LatestTransactionDate())
}

// AssetAsOf returns the asset declared with this symbol by the end of day on,
// with the capital invested in it up to that day. It returns nil if the asset
// is unknown on that day.
func (l *Ledger) AssetAsOf(symbol string, on date.Date) *Asset {
	decl, ok := l.assets[symbol]
	if !ok || decl.Date.After(on) {
		return nil
	}
	a := Asset{Symbol: decl.Symbol, Name: decl.Name, Pool: decl.Pool}
	a.TotalInvested = totalCost(symbol, fundings(l.until(on)))
	return &a
}

// Assets returns all declared assets sorted by symbol.
func (l *Ledger) Assets() []Asset {
	return l.AssetsAsOf(l.LatestTransactionDate())
}

// AssetsAsOf returns the assets declared by the end of day on, sorted by symbol.
func (l *Ledger) AssetsAsOf(on date.Date) []Asset {
	assets := make([]Asset, 0, len(l.assets))
	for _, symbol := range slices.Sorted(maps.Keys(l.assets)) {
		if a := l.AssetAsOf(symbol, on); a != nil {
			assets = append(assets, *a)
		}
	}
	return assets
}

// until returns the transactions up to the end of day on.
func (l *Ledger) until(on date.Date) []Transaction {
	i, _ := slices.BinarySearchFunc(l.transactions, on, func(tx Transaction, on date.Date) int {
		if tx.When().After(on) {
			return 1
		}
		return -1
	})
	return l.transactions[:i]
}

// totalCost sums the USD cost of the fundings of symbol. Costs in another
// currency cannot be converted and are left out.
func totalCost(symbol string, fs []Funding) Money {
	total := M(0, USD)
	for _, f := range fs {
		if f.Symbol != symbol {
			continue
		}
		if c := f.Cost.Currency(); c != USD && c != "" {
			log.Printf("ignoring %s cost of %s on %s, only %s costs are invested capital", f.Cost, symbol, f.Date, USD)
			continue
		}
		total = total.Add(f.Cost)
	}
	return total
}

// Fundings returns the funding of every deposit and buy, in chronological order.
func (l *Ledger) Fundings() []Funding {
	return fundings(l.transactions)
}

// fundings extracts the funding of deposit and buy transactions.
func fundings(txs []Transaction) []Funding {
	var res []Funding
	for _, tx := range txs {
		if f, ok := tx.(Funder); ok {
			res = append(res, f.Funding())
		}
	}
	return res
}

// Position returns the quantity of symbol held at the end of day on.
func (l *Ledger) Position(symbol string, on date.Date) Quantity {
	pos := Q(0)
	for _, tx := range l.transactions {
		if tx.When().After(on) {
			// The ledger is sorted by date, so it's safe to break.
			break
		}
		switch v := tx.(type) {
		case Deposit:
			if v.Asset == symbol {
				pos = pos.Add(v.Quantity)
			}
		case Buy:
			if v.Asset == symbol {
				pos = pos.Add(v.Quantity)
			}
		case Interest:
			if v.Asset == symbol {
				pos = pos.Add(v.Quantity)
			}
		case Withdraw:
			if v.Asset == symbol {
				pos = pos.Sub(v.Quantity)
			}
		case Sell:
			if v.Asset == symbol {
				pos = pos.Sub(v.Quantity)
			}
		}
	}
	return pos
}

// OldestTransactionDate returns the date of the earliest transaction, or the zero date.
func (l *Ledger) OldestTransactionDate() date.Date {
	if len(l.transactions) == 0 {
		return date.Date{}
	}
	return l.transactions[0].When()
}

// LatestTransactionDate returns the date of the latest transaction, or the zero date.
func (l *Ledger) LatestTransactionDate() date.Date {
	if len(l.transactions) == 0 {
		return date.Date{}
	}
	return l.transactions[len(l.transactions)-1].When()
}
