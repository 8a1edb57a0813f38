package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/lpfolio"
)

// Transaction renders a transaction to a string.
func Transaction(tx lpfolio.Transaction) string {
	switch v := tx.(type) {
	case lpfolio.Declare:
		if v.Pool != nil {
			return fmt.Sprintf("Declared %s as a %s pool in [%v, %v] entered at %v", v.Symbol, v.Pool.Pair(), v.Pool.Lower, v.Pool.Upper, v.Pool.Entry)
		}
		return fmt.Sprintf("Declared %s", v.Symbol)
	case lpfolio.Deposit:
		if v.Cost.IsZero() {
			return fmt.Sprintf("Deposited %s %s", v.Quantity, v.Asset)
		}
		return fmt.Sprintf("Deposited %s %s for %s", v.Quantity, v.Asset, v.Cost)
	case lpfolio.Withdraw:
		return fmt.Sprintf("Withdrew %s %s", v.Quantity, v.Asset)
	case lpfolio.Buy:
		return fmt.Sprintf("Bought %s %s for %s", v.Quantity, v.Asset, v.Amount)
	case lpfolio.Sell:
		return fmt.Sprintf("Sold %s %s for %s", v.Quantity, v.Asset, v.Amount)
	case lpfolio.Interest:
		if len(v.Sources) == 0 {
			return fmt.Sprintf("Earned %s %s", v.Quantity, v.Asset)
		}
		return fmt.Sprintf("Earned %s %s from %s", v.Quantity, v.Asset, strings.Join(v.Sources, ", "))
	case lpfolio.UpdatePrice:
		var prices []string
		for symbol, price := range v.PricesIter() {
			prices = append(prices, fmt.Sprintf("%s %s", symbol, price))
		}
		return "Prices " + strings.Join(prices, ", ")
	default:
		return string(tx.What())
	}
}

// TransactionsMarkdown renders transactions as a markdown table.
func TransactionsMarkdown(txs []lpfolio.Transaction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Transactions\n\n")
	if len(txs) == 0 {
		fmt.Fprintln(&b, "No transactions.")
		return b.String()
	}
	fmt.Fprintln(&b, "| Date | Command | Description | Memo |")
	fmt.Fprintln(&b, "|:---|:---|:---|:---|")
	for _, tx := range txs {
		memo := ""
		if m, ok := tx.(interface{ Note() string }); ok {
			memo = m.Note()
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", tx.When(), tx.What(), Transaction(tx), memo)
	}
	return b.String()
}
