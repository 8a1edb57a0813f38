package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/lpfolio"
	"github.com/etnz/lpfolio/date"
	"github.com/etnz/lpfolio/renderer"
	"github.com/google/subcommands"
)

type txCmd struct {
	start string
	end   string
	asset string
	head  int
	tail  int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list all transactions in the ledger" }
func (*txCmd) Usage() string {
	return `lpf tx [-s <start_date>] [-d <end_date>] [-a <asset>] [-head <n>] [-tail <n>]

  Lists transactions from the ledger, with options for filtering and limiting the output.
`
}

func (p *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.start, "s", "", "The start date of the range.")
	f.StringVar(&p.end, "d", "", "The end date of the range.")
	f.StringVar(&p.asset, "a", "", "Only show transactions about this asset.")
	f.IntVar(&p.head, "head", 0, "Show only the first N transactions.")
	f.IntVar(&p.tail, "tail", 0, "Show only the last N transactions.")
}

func (p *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.head > 0 && p.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}

	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	filters := []func(lpfolio.Transaction) bool{lpfolio.AcceptAll}
	if p.start != "" || p.end != "" {
		r := date.Range{From: ledger.OldestTransactionDate(), To: ledger.LatestTransactionDate()}
		if p.start != "" {
			if r.From, err = date.Parse(p.start); err != nil {
				fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
				return subcommands.ExitFailure
			}
		}
		if p.end != "" {
			if r.To, err = date.Parse(p.end); err != nil {
				fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
				return subcommands.ExitFailure
			}
		}
		filters = append(filters, lpfolio.ByRange(r))
	}
	if p.asset != "" {
		filters = append(filters, lpfolio.ByAsset(p.asset))
	}

	var transactions []lpfolio.Transaction
	for _, tx := range ledger.Transactions(filters...) {
		transactions = append(transactions, tx)
	}

	if p.head > 0 && len(transactions) > p.head {
		transactions = transactions[:p.head]
	}
	if p.tail > 0 && len(transactions) > p.tail {
		transactions = transactions[len(transactions)-p.tail:]
	}

	printMarkdown(renderer.TransactionsMarkdown(transactions))

	return subcommands.ExitSuccess
}
