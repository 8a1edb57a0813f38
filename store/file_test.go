package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/lpfolio"
	"github.com/etnz/lpfolio/date"
)

var _ lpfolio.LedgerStore = File{}

func TestFile_LoadMissing(t *testing.T) {
	f := File{Path: filepath.Join(t.TempDir(), "ledger.jsonl")}
	ledger, err := f.Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if ledger.Len() != 0 {
		t.Errorf("Load() of a missing file has %d transactions, want 0", ledger.Len())
	}
}

func TestFile_AppendAndSave(t *testing.T) {
	f := File{Path: filepath.Join(t.TempDir(), "ledger.jsonl")}
	d := date.MustParse("2025-01-01")

	if err := f.Append(
		lpfolio.NewBuy(d.Add(2), "", "ETH", lpfolio.Q(1), lpfolio.USDollars(2000)),
		lpfolio.NewDeposit(d, "", "USDC", lpfolio.Q(100), lpfolio.USDollars(100)),
	); err != nil {
		t.Fatalf("Append() unexpected error: %v", err)
	}
	if err := f.Append(lpfolio.NewInterest(d.Add(3), "", "USDC", lpfolio.Q(1), "LP-1")); err != nil {
		t.Fatalf("Append() unexpected error: %v", err)
	}

	ledger, err := f.Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if ledger.Len() != 3 {
		t.Fatalf("Load() has %d transactions, want 3", ledger.Len())
	}
	if first := ledger.List()[0]; first.What() != lpfolio.CmdDeposit {
		t.Errorf("first transaction = %v, want the deposit", first.What())
	}

	// Save rewrites the file in chronological order.
	if err := f.Save(ledger); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 || !strings.Contains(lines[0], `"command":"deposit"`) {
		t.Errorf("saved ledger = %q, want the deposit first", lines)
	}
	entries, err := os.ReadDir(filepath.Dir(f.Path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("Save() left %d files, want 1", len(entries))
	}
}

func TestFile_LoadInvalid(t *testing.T) {
	f := File{Path: filepath.Join(t.TempDir(), "ledger.jsonl")}
	if err := os.WriteFile(f.Path, []byte(`{"command":"swap","date":"2025-01-01"}`+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := f.Load(); err == nil {
		t.Errorf("Load() of an invalid ledger expected an error")
	}
}
