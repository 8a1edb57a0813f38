package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/etnz/lpfolio"
	"github.com/etnz/lpfolio/date"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

const schema = `
CREATE TABLE IF NOT EXISTS prices (
	symbol TEXT NOT NULL,
	day    TEXT NOT NULL,
	price  TEXT NOT NULL,
	PRIMARY KEY (symbol, day)
)`

// Days are stored in their ISO format, so that text order is chronological.
const latestPrices = `
SELECT p.symbol, p.price FROM prices p
WHERE p.day = (SELECT MAX(day) FROM prices WHERE symbol = p.symbol AND day <= ?)`

const upsertPrice = `
INSERT INTO prices (symbol, day, price) VALUES (?, ?, ?)
ON CONFLICT (symbol, day) DO UPDATE SET price = excluded.price`

// SQLite is a PriceStore keeping the price history in a SQLite database.
// It is safe for concurrent use.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens, or creates, the price database at path.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("could not open price database %q: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, errors.Join(fmt.Errorf("could not create price table in %q: %w", path, err), db.Close())
	}
	return &SQLite{db: db}, nil
}

// Close closes the database.
func (s *SQLite) Close() error { return s.db.Close() }

// Prices returns the latest price of every symbol as of day on.
func (s *SQLite) Prices(on date.Date) (lpfolio.Prices, error) {
	rows, err := s.db.Query(latestPrices, on.String())
	if err != nil {
		return nil, fmt.Errorf("could not query prices as of %s: %w", on, err)
	}
	defer rows.Close()

	prices := make(lpfolio.Prices)
	for rows.Next() {
		var symbol, price string
		if err := rows.Scan(&symbol, &price); err != nil {
			return nil, err
		}
		value, err := decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("invalid price %q for %s: %w", price, symbol, err)
		}
		prices[symbol] = lpfolio.USDollars(value)
	}
	return prices, rows.Err()
}

// Update records prices for day on, replacing the prices already recorded that day.
func (s *SQLite) Update(on date.Date, prices lpfolio.Prices) (err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	for _, symbol := range prices.Symbols() {
		price := prices[symbol]
		if !price.IsPositive() {
			return fmt.Errorf("price for %s must be positive, got %s", symbol, price)
		}
		if _, err := tx.Exec(upsertPrice, symbol, on.String(), price.Decimal().String()); err != nil {
			return fmt.Errorf("could not update %s price: %w", symbol, err)
		}
		log.Printf("%v: update %v price to %s", on, symbol, price.Decimal())
	}
	return tx.Commit()
}
