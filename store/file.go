// Package store persists ledgers and prices.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/etnz/lpfolio"
)

// File is a LedgerStore in a single JSONL file, one transaction per line.
type File struct {
	Path string
}

// Load reads the ledger file. A missing file is an empty ledger.
func (f File) Load() (*lpfolio.Ledger, error) {
	r, err := os.Open(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning: ledger file %q does not exist, starting with an empty ledger", f.Path)
		return lpfolio.NewLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open ledger file %q: %w", f.Path, err)
	}
	defer r.Close()

	ledger, err := lpfolio.DecodeLedger(r)
	if err != nil {
		return nil, fmt.Errorf("could not decode ledger file %q: %w", f.Path, err)
	}
	return ledger, nil
}

// Append writes transactions at the end of the ledger file, creating it if needed.
func (f File) Append(txs ...lpfolio.Transaction) (err error) {
	w, err := os.OpenFile(f.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("could not open ledger file %q: %w", f.Path, err)
	}
	defer func() { err = errors.Join(err, w.Close()) }()

	for _, tx := range txs {
		if err := lpfolio.EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}

// Save replaces the ledger file with ledger. The file is written next to its
// destination first, then renamed.
func (f File) Save(ledger *lpfolio.Ledger) error {
	tmp, err := os.CreateTemp(filepath.Dir(f.Path), filepath.Base(f.Path)+".*")
	if err != nil {
		return fmt.Errorf("could not create temporary ledger file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := lpfolio.EncodeLedger(tmp, ledger); err != nil {
		return errors.Join(err, tmp.Close())
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not write ledger file %q: %w", f.Path, err)
	}
	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		return fmt.Errorf("could not replace ledger file %q: %w", f.Path, err)
	}
	return nil
}
