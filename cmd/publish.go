package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"text/template"

	"github.com/etnz/lpfolio"
	"github.com/etnz/lpfolio/date"
	"github.com/etnz/lpfolio/renderer"
	"github.com/google/subcommands"
)

// reportTask is a report to publish, it is also the front matter template data.
type reportTask struct {
	Date   date.Date
	Report string
}

type publishCmd struct {
	outputDir      string
	date           string
	frontMatterTpl string
}

func (*publishCmd) Name() string { return "publish" }

func (*publishCmd) Synopsis() string { return "writes the portfolio reports as markdown files" }

func (*publishCmd) Usage() string {
	return `lpf publish [-o <dir>] [-d <date>] [-frontmatter <file>]

  Writes the earnings and positions reports of date, and the list of all
  transactions, to a directory tree:

    <dir>/earnings/<date>.md
    <dir>/positions/<date>.md
    <dir>/transactions.md

  The front matter template is executed with the .Date and .Report of each file.
`
}

func (c *publishCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.outputDir, "o", "reports", "Root directory for the generated reports")
	f.StringVar(&c.date, "d", date.Today().String(), "Report date (YYYY-MM-DD)")
	f.StringVar(&c.frontMatterTpl, "frontmatter", "", "Path to a Go template file for the report front matter")
}

func (c *publishCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, ok := parseDay(c.date)
	if !ok {
		return subcommands.ExitUsageError
	}
	var frontMatterTpl *template.Template
	if c.frontMatterTpl != "" {
		var err error
		frontMatterTpl, err = template.ParseFiles(c.frontMatterTpl)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to parse front matter template: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	if ledger.Len() == 0 {
		fmt.Println("Ledger is empty, nothing to publish.")
		return subcommands.ExitSuccess
	}
	prices, err := loadPrices(ledger, on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading prices: %v\n", err)
		return subcommands.ExitFailure
	}

	tasks := []reportTask{{on, "earnings"}, {on, "positions"}, {on, "transactions"}}
	for _, task := range tasks {
		var md, filePath string
		switch task.Report {
		case "earnings":
			md = earningsMarkdown(ledger, prices, on)
			filePath = filepath.Join(task.Report, on.String()+".md")
		case "positions":
			positions, err := ledger.Positions(prices, on)
			if err != nil {
				fmt.Fprintf(os.Stderr, "failed to value positions on %s: %v\n", on, err)
				continue
			}
			md = renderer.RenderPositions(renderer.NewPositions(on, positions))
			filePath = filepath.Join(task.Report, on.String()+".md")
		case "transactions":
			md = renderer.TransactionsMarkdown(ledger.List())
			filePath = task.Report + ".md"
		}

		if frontMatterTpl != nil {
			fm, err := renderFrontMatter(frontMatterTpl, task)
			if err != nil {
				fmt.Fprintf(os.Stderr, "failed to render front matter for %s report: %v\n", task.Report, err)
				continue
			}
			md = fm + "\n" + md
		}

		fullPath := filepath.Join(c.outputDir, filePath)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			fmt.Fprintf(os.Stderr, "failed to create output directory for file %s: %v\n", filePath, err)
			return subcommands.ExitFailure
		}
		if err := os.WriteFile(fullPath, []byte(md), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write file %s: %v\n", filePath, err)
			return subcommands.ExitFailure
		}
		log.Printf("Generated %s report for %s", task.Report, on)
	}
	return subcommands.ExitSuccess
}

func renderFrontMatter(tpl *template.Template, task reportTask) (string, error) {
	var fmBuffer bytes.Buffer
	if err := tpl.Execute(&fmBuffer, task); err != nil {
		return "", err
	}
	return fmBuffer.String(), nil
}

// earningsMarkdown renders the earnings report of the ledger as of day on.
func earningsMarkdown(ledger *lpfolio.Ledger, prices lpfolio.Prices, on date.Date) string {
	var txs []lpfolio.Transaction
	for _, tx := range ledger.Transactions(lpfolio.ByRange(date.Range{To: on})) {
		txs = append(txs, tx)
	}
	assets := ledger.AssetsAsOf(on)
	bySource := lpfolio.EarningsBySource(assets, txs, prices)
	enhanced := lpfolio.EnhanceEarnings(bySource, assets, txs, on)
	tokens := lpfolio.TotalsByToken(bySource, prices)
	return renderer.RenderEarnings(renderer.NewEarnings(on, enhanced, tokens))
}
