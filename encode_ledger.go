package lpfolio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// amountCmd is a specialized struct to read from ledger amount in two fields.
type amountCmd struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func (a amountCmd) Money() Money {
	return M(a.Amount, a.Currency)
}

// DecodeLedger decodes transactions from a stream of JSONL data from an io.Reader,
// decodes each line into the appropriate transaction struct, and returns a sorted Ledger.
//
// Older shapes are normalized on the fly: a deposit may carry a unit "price"
// instead of its total cost, and an interest a single "source" symbol.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)

	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}
		tx, err := decodeTransaction(lineBytes)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		ledger.Append(tx)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return ledger, nil
}

// decodeTransaction decodes a single JSON line.
func decodeTransaction(lineBytes []byte) (Transaction, error) {
	var identifier struct {
		Command CommandType `json:"command"`
	}
	if err := json.Unmarshal(lineBytes, &identifier); err != nil {
		return nil, fmt.Errorf("could not identify command in line %q: %w", string(lineBytes), err)
	}

	switch identifier.Command {
	case CmdDeclare:
		var tx Declare
		err := json.Unmarshal(lineBytes, &tx)
		return tx, err
	case CmdDeposit:
		// Use a temporary type that has all possible fields.
		var temp struct {
			assetCmd
			amountCmd
			Price *decimal.Decimal `json:"price"`
		}
		if err := json.Unmarshal(lineBytes, &temp); err != nil {
			return nil, err
		}
		cost := temp.Money()
		if temp.Price != nil && temp.Amount.IsZero() {
			cost = M(temp.Price.Mul(temp.Quantity.value), temp.Currency)
		}
		if cost.Currency() == "" && !cost.IsZero() {
			cost = cost.withCurrency(USD)
		}
		return Deposit{assetCmd: temp.assetCmd, Cost: cost}, nil
	case CmdWithdraw:
		var temp struct{ assetCmd }
		if err := json.Unmarshal(lineBytes, &temp); err != nil {
			return nil, err
		}
		return Withdraw{assetCmd: temp.assetCmd}, nil
	case CmdBuy:
		var temp struct {
			assetCmd
			amountCmd
		}
		if err := json.Unmarshal(lineBytes, &temp); err != nil {
			return nil, err
		}
		return Buy{assetCmd: temp.assetCmd, Amount: temp.Money()}, nil
	case CmdSell:
		var temp struct {
			assetCmd
			amountCmd
		}
		if err := json.Unmarshal(lineBytes, &temp); err != nil {
			return nil, err
		}
		return Sell{assetCmd: temp.assetCmd, Amount: temp.Money()}, nil
	case CmdInterest:
		var temp struct {
			assetCmd
			Source  string   `json:"source"`
			Sources []string `json:"sources"`
		}
		if err := json.Unmarshal(lineBytes, &temp); err != nil {
			return nil, err
		}
		sources := append([]string{temp.Source}, temp.Sources...)
		return Interest{assetCmd: temp.assetCmd, Sources: normalizeSources(sources)}, nil
	case CmdUpdatePrice:
		var temp struct {
			baseCmd
			Prices map[string]decimal.Decimal `json:"prices"`
		}
		if err := json.Unmarshal(lineBytes, &temp); err != nil {
			return nil, err
		}
		tx := NewUpdatePrices(temp.Date, temp.Prices)
		tx.baseCmd = temp.baseCmd
		return tx, nil
	default:
		return nil, fmt.Errorf("unknown transaction command: %q", identifier.Command)
	}
}

// EncodeTransaction marshals a single transaction to JSON and writes it to the
// writer, followed by a newline, in JSONL format.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal %s transaction: %w", tx.What(), err)
	}

	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write transaction: %w", err)
	}
	return nil
}

// EncodeLedger persists the ledger to an io.Writer in JSONL format, in
// chronological order. Transactions on the same day keep their relative order.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	ledger.stableSort()
	for _, tx := range ledger.transactions {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}
