package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/lpfolio"
	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the ledger file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `lpf fmt

  Validates and formats the ledger file. This command reads all transactions,
  validates them, applies available quick-fixes (like resolving "sell all"),
  sorts them by date, and writes them back in a canonical JSONL format.
  The ledger is left untouched if any transaction is invalid.
`
}

func (*fmtCmd) SetFlags(f *flag.FlagSet) {}

func (*fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	// replay every transaction so that each one is validated against its past only.
	formatted := lpfolio.NewLedger()
	var errs error
	for _, tx := range ledger.List() {
		valid, err := formatted.Validate(tx)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		formatted.Append(valid)
	}
	if errs != nil {
		fmt.Fprintf(os.Stderr, "Error: ledger %q is invalid:\n%v\n", *ledgerFile, errs)
		return subcommands.ExitFailure
	}

	if err := ledgerStore().Save(formatted); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving formatted ledger %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Successfully formatted %d transactions in %s\n", formatted.Len(), *ledgerFile)
	return subcommands.ExitSuccess
}
