package lpfolio

import "github.com/etnz/lpfolio/date"

// LedgerStore persists a ledger.
type LedgerStore interface {
	// Load reads the whole ledger.
	Load() (*Ledger, error)
	// Append adds transactions at the end of the stored ledger.
	Append(txs ...Transaction) error
	// Save replaces the stored ledger.
	Save(ledger *Ledger) error
}

// PriceStore gives access to USD prices over time.
type PriceStore interface {
	// Prices returns the latest known price of every symbol as of day on.
	Prices(on date.Date) (Prices, error)
	// Update records prices for day on.
	Update(on date.Date, prices Prices) error
}
