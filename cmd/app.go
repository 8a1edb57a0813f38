// Package cmd implements the CLI application to manage a crypto portfolio.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/lpfolio"
	"github.com/etnz/lpfolio/date"
	"github.com/etnz/lpfolio/store"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&declareCmd{}, "transactions")
	c.Register(&depositCmd{}, "transactions")
	c.Register(&withdrawCmd{}, "transactions")
	c.Register(&buyCmd{}, "transactions")
	c.Register(&sellCmd{}, "transactions")
	c.Register(&interestCmd{}, "transactions")
	c.Register(&priceCmd{}, "transactions")
	c.Register(&importPricesCmd{}, "transactions")
	c.Register(&fmtCmd{}, "transactions")
	c.Register(&txCmd{}, "transactions")

	c.Register(&splitCmd{}, "liquidity math")
	c.Register(&solveCmd{}, "liquidity math")
	c.Register(&projectCmd{}, "liquidity math")
	c.Register(&ilCmd{}, "liquidity math")
	c.Register(&deltaCmd{}, "liquidity math")

	c.Register(&earningsCmd{}, "reports")
	c.Register(&positionsCmd{}, "reports")
	c.Register(&publishCmd{}, "reports")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to the configuration file (default .lpf.yaml in the current or home directory)")
var ledgerFile = flag.String("ledger-file", DefaultLedgerFile, "Path to the ledger file containing transactions (JSONL format)")
var pricesDB = flag.String("prices-db", "", "Path to a SQLite price database. Prices are read from the ledger when empty.")
var rawOutput = flag.Bool("raw", false, "Print reports as raw markdown")

// Verbose enables logs on stderr.
var Verbose = flag.Bool("v", false, "Verbose logs")

// pricePaths are the JSONPath of each symbol price for import-prices, from the configuration.
var pricePaths map[string]string

// ledgerStore returns the configured ledger store.
func ledgerStore() lpfolio.LedgerStore { return store.File{Path: *ledgerFile} }

// DecodeLedger loads the ledger from the app ledger file.
func DecodeLedger() (*lpfolio.Ledger, error) {
	return ledgerStore().Load()
}

// openPriceStore returns the configured price store, and a function to
// release it. Without a price database, prices are read from and written to
// ledger, that the caller must save after an update.
func openPriceStore(ledger *lpfolio.Ledger) (lpfolio.PriceStore, func() error, error) {
	if *pricesDB == "" {
		return lpfolio.NewLedgerPrices(ledger), func() error { return nil }, nil
	}
	db, err := store.OpenSQLite(*pricesDB)
	if err != nil {
		return nil, nil, err
	}
	return db, db.Close, nil
}

// loadPrices returns the prices known as of day on.
func loadPrices(ledger *lpfolio.Ledger, on date.Date) (lpfolio.Prices, error) {
	ps, release, err := openPriceStore(ledger)
	if err != nil {
		return nil, err
	}
	defer release()
	return ps.Prices(on)
}

// updatePrices records prices on day on, in the price database or in the ledger file.
func updatePrices(on date.Date, prices lpfolio.Prices) (err error) {
	ledger, err := DecodeLedger()
	if err != nil {
		return err
	}
	ps, release, err := openPriceStore(ledger)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, release()) }()

	if err := ps.Update(on, prices); err != nil {
		return err
	}
	if *pricesDB == "" {
		return ledgerStore().Save(ledger)
	}
	return nil
}

// EncodeTransaction validates a transaction against the ledger and appends it to the app ledger file.
func EncodeTransaction(tx lpfolio.Transaction) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	tx, err = ledger.Validate(tx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := ledgerStore().Append(tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended transaction to %s\n", *ledgerFile)
	return subcommands.ExitSuccess
}

// printMarkdown renders md for the terminal, or prints it as is with -raw.
func printMarkdown(md string) {
	if *rawOutput {
		fmt.Print(md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(140))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
