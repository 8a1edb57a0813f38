package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/lpfolio"
	"github.com/etnz/lpfolio/clmath"
	"github.com/etnz/lpfolio/date"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// document is the structure of a rendered markdown report.
type document struct {
	headings []string
	rows     []int    // number of body rows per table
	cells    []string // text of every table cell, in order
}

// nodeText concatenates the text segments below n.
func nodeText(n ast.Node, source []byte) string {
	var b strings.Builder
	ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := c.(*ast.Text); ok && entering {
			b.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

// parse parses a report with the table extension.
func parse(t *testing.T, report string) document {
	t.Helper()
	if strings.HasPrefix(report, "error") {
		t.Fatalf("render failed: %s", report)
	}
	source := []byte(report)
	root := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(source))

	var doc document
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			doc.headings = append(doc.headings, nodeText(n, source))
		case *east.Table:
			rows := 0
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				if _, ok := c.(*east.TableRow); ok {
					rows++
				}
			}
			doc.rows = append(doc.rows, rows)
		case *east.TableCell:
			doc.cells = append(doc.cells, strings.TrimSpace(nodeText(n, source)))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return doc
}

func (d document) hasCell(cell string) bool {
	for _, c := range d.cells {
		if c == cell {
			return true
		}
	}
	return false
}

var testPool = Pool{Base: "ETH", Quote: "USDC", Range: clmath.PriceRange{Lower: 1500, Upper: 2500}}

func TestRenderSplit(t *testing.T) {
	d, err := clmath.RequiredAmountsForDeposit(2000, testPool.Range, 1000)
	if err != nil {
		t.Fatal(err)
	}
	doc := parse(t, RenderSplit(&Split{Pool: testPool, Price: 2000, Total: 1000, Deposit: d}))

	if len(doc.headings) != 1 || !strings.Contains(doc.headings[0], "ETH/USDC") {
		t.Errorf("headings = %q, want one ETH/USDC title", doc.headings)
	}
	if len(doc.rows) != 1 || doc.rows[0] != 2 {
		t.Errorf("tables = %v, want one table of 2 rows", doc.rows)
	}
	if !doc.hasCell("ETH") || !doc.hasCell("USDC") {
		t.Errorf("cells = %q, want ETH and USDC rows", doc.cells)
	}
}

func TestRenderSolve(t *testing.T) {
	report := RenderSolve(&Solve{Pool: testPool, Split0: 70, Price: 1750.5, Iterations: 20})
	doc := parse(t, report)
	if len(doc.headings) != 1 {
		t.Errorf("headings = %q, want 1", doc.headings)
	}
	if !strings.Contains(report, "70.00% ETH and 30.00% USDC") || !strings.Contains(report, "1750.5") {
		t.Errorf("RenderSolve() = %s, want the split and the price", report)
	}
}

func TestRenderLadder(t *testing.T) {
	const liquidity = 100
	rows := clmath.Ladder(testPool.Range, liquidity, clmath.Steps(1000, 3000, 5)...)
	doc := parse(t, RenderLadder(&Ladder{Pool: testPool, Liquidity: liquidity, Reference: rows[2].Value, Rows: rows}))

	if len(doc.rows) != 1 || doc.rows[0] != 5 {
		t.Errorf("tables = %v, want one table of 5 rows", doc.rows)
	}
	if !doc.hasCell("+0.00%") {
		t.Errorf("cells = %q, want a +0.00%% change at the reference price", doc.cells)
	}
}

func TestRenderIL(t *testing.T) {
	v, err := clmath.CalculateIL(2000, 3000, testPool.Range, 1000)
	if err != nil {
		t.Fatal(err)
	}
	report := RenderIL(&IL{Pool: testPool, EntryPrice: 2000, TargetPrice: 3000, Total: 1000, Valuation: v})
	doc := parse(t, report)
	if len(doc.rows) != 1 || doc.rows[0] != 2 {
		t.Errorf("tables = %v, want one table of 2 rows", doc.rows)
	}
	if !doc.hasCell("Hold") || !doc.hasCell("Liquidity Pool") {
		t.Errorf("cells = %q, want Hold and Liquidity Pool rows", doc.cells)
	}
	if !strings.Contains(report, "Impermanent loss: **-") {
		t.Errorf("RenderIL() = %s, want a negative loss", report)
	}
}

func TestRenderHedge(t *testing.T) {
	h := clmath.Hedge(2000, testPool.Range, 100)
	split0, _, _ := clmath.SplitAt(2000, testPool.Range)
	doc := parse(t, RenderHedge(&Hedge{Pool: testPool, Price: 2000, Liquidity: 100, Split0: split0, Size: h}))
	if len(doc.rows) != 1 || doc.rows[0] != 2 {
		t.Errorf("tables = %v, want one table of 2 rows", doc.rows)
	}
	if !doc.hasCell("Short ETH") {
		t.Errorf("cells = %q, want a Short ETH row", doc.cells)
	}
}

func TestRenderEarnings(t *testing.T) {
	d := date.MustParse("2025-01-01")
	txs := []lpfolio.Transaction{
		lpfolio.NewDeposit(d, "", "LP-1", lpfolio.Q(1), lpfolio.USDollars(1000)),
		lpfolio.NewInterest(d.Add(1), "", "USDC", lpfolio.Q(50), "LP-1"),
		lpfolio.NewInterest(d.Add(2), "", "HYPE", lpfolio.Q(10), "LP-1"),
		lpfolio.NewInterest(d.Add(2), "", "USDC", lpfolio.Q(5), "LP-2"),
	}
	prices := lpfolio.Prices{"USDC": lpfolio.USDollars(1), "HYPE": lpfolio.USDollars(5)}
	earnings := lpfolio.EarningsBySource(nil, txs, prices)
	on := d.Add(10)
	report := RenderEarnings(NewEarnings(on, lpfolio.EnhanceEarnings(earnings, nil, txs, on), lpfolio.TotalsByToken(earnings, prices)))

	doc := parse(t, report)
	wantHeadings := []string{"Earnings on 2025-01-11", "By Position", "By Token"}
	if strings.Join(doc.headings, "|") != strings.Join(wantHeadings, "|") {
		t.Errorf("headings = %q, want %q", doc.headings, wantHeadings)
	}
	// two sources plus the total, two tokens.
	if len(doc.rows) != 2 || doc.rows[0] != 3 || doc.rows[1] != 2 {
		t.Errorf("tables = %v, want [3 2]", doc.rows)
	}
	if !doc.hasCell("10 HYPE, 50 USDC") || !doc.hasCell("-") {
		t.Errorf("cells = %q, want LP-1 rewards and an unknown ROI for LP-2", doc.cells)
	}
}

func TestRenderEarnings_Empty(t *testing.T) {
	report := RenderEarnings(NewEarnings(date.MustParse("2025-01-01"), nil, nil))
	doc := parse(t, report)
	if len(doc.rows) != 0 {
		t.Errorf("tables = %v, want none", doc.rows)
	}
	if !strings.Contains(report, "No rewards earned by liquidity pools.") {
		t.Errorf("RenderEarnings() = %s, want an empty message", report)
	}
}

func TestRenderPositions(t *testing.T) {
	d := date.MustParse("2025-01-01")
	ledger := lpfolio.NewLedger()
	ledger.Append(
		lpfolio.NewDeclare(d, "", "LP-ETH-USDC", "", &lpfolio.Pool{Base: "ETH", Quote: "USDC", Lower: 1500, Upper: 2500, Entry: 2000}),
		lpfolio.NewDeposit(d, "", "LP-ETH-USDC", lpfolio.Q(1), lpfolio.USDollars(1000)),
	)
	positions, err := ledger.Positions(lpfolio.Prices{}, d)
	if err != nil {
		t.Fatal(err)
	}
	doc := parse(t, RenderPositions(NewPositions(d, positions)))
	if len(doc.rows) != 1 || doc.rows[0] != 1 {
		t.Errorf("tables = %v, want one table of 1 row", doc.rows)
	}
	if !doc.hasCell("2000 (entry)") || !doc.hasCell("in range") {
		t.Errorf("cells = %q, want a stale in range position", doc.cells)
	}
	if !doc.hasCell("1000.00") {
		t.Errorf("cells = %q, want the $1000 deposit valued in USD", doc.cells)
	}
}

func TestTransactionsMarkdown(t *testing.T) {
	d := date.MustParse("2025-01-01")
	txs := []lpfolio.Transaction{
		lpfolio.NewDeclare(d, "", "LP-1", "", &lpfolio.Pool{Base: "ETH", Quote: "USDC", Lower: 1500, Upper: 2500, Entry: 2000}),
		lpfolio.NewDeposit(d, "open", "LP-1", lpfolio.Q(1), lpfolio.USDollars(1000)),
		lpfolio.NewInterest(d, "", "USDC", lpfolio.Q(5), "LP-1"),
	}
	doc := parse(t, TransactionsMarkdown(txs))
	if len(doc.rows) != 1 || doc.rows[0] != 3 {
		t.Errorf("tables = %v, want one table of 3 rows", doc.rows)
	}
	for _, want := range []string{"Earned 5 USDC from LP-1", "open"} {
		if !doc.hasCell(want) {
			t.Errorf("cells = %q, want %q", doc.cells, want)
		}
	}
}
