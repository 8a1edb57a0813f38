package lpfolio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/etnz/lpfolio/date"
	"github.com/shopspring/decimal"
)

func TestEncodeDecodeLedger(t *testing.T) {
	d := date.MustParse
	ledger := NewLedger()
	ledger.Append(
		NewInterest(d("2025-01-20"), "", "USDC", Q(12.5), "LP-ETH-USDC"),
		NewDeclare(d("2025-01-01"), "", "LP-ETH-USDC", "ETH/USDC 1500-2500", testPool),
		NewDeposit(d("2025-01-01"), "open", "LP-ETH-USDC", Q(1), USDollars(1000)),
		NewBuy(d("2025-01-02"), "", "ETH", Q(0.5), USDollars(1000)),
		NewSell(d("2025-01-05"), "", "ETH", Q(0.1), USDollars(250)),
		NewWithdraw(d("2025-01-05"), "", "ETH", Q(0.1)),
		NewUpdatePrices(d("2025-01-20"), map[string]decimal.Decimal{
			"ETH":  decimal.NewFromInt(2100),
			"HYPE": decimal.RequireFromString("31.25"),
		}),
	)
	want := ledger.List()

	var buf bytes.Buffer
	if err := EncodeLedger(&buf, ledger); err != nil {
		t.Fatalf("EncodeLedger() unexpected error: %v", err)
	}
	got, err := DecodeLedger(&buf)
	if err != nil {
		t.Fatalf("DecodeLedger() unexpected error: %v", err)
	}
	if got.Len() != len(want) {
		t.Fatalf("DecodeLedger() decoded %d transactions, want %d", got.Len(), len(want))
	}
	for i, tx := range got.Transactions() {
		if !tx.Equal(want[i]) {
			t.Errorf("transaction %d = %#v, want %#v", i, tx, want[i])
		}
	}
}

func TestEncodeTransaction_KeyOrder(t *testing.T) {
	testCases := []struct {
		name string
		tx   Transaction
		want string
	}{
		{
			name: "deposit",
			tx:   NewDeposit(date.New(2025, 1, 1), "", "LP-1", Q(1), USDollars(1000)),
			want: `{"command":"deposit","date":"2025-01-01","asset":"LP-1","quantity":1,"currency":"USD","amount":1000}`,
		},
		{
			name: "deposit without cost",
			tx:   NewDeposit(date.New(2025, 1, 1), "", "USDC", Q(10), M(0, USD)),
			want: `{"command":"deposit","date":"2025-01-01","asset":"USDC","quantity":10}`,
		},
		{
			name: "interest",
			tx:   NewInterest(date.New(2025, 1, 1), "fees", "USDC", Q(2.5), "LP-1", "LP-2"),
			want: `{"command":"interest","date":"2025-01-01","memo":"fees","asset":"USDC","quantity":2.5,"sources":["LP-1","LP-2"]}`,
		},
		{
			name: "prices",
			tx: NewUpdatePrices(date.New(2025, 1, 1), map[string]decimal.Decimal{
				"ETH": decimal.NewFromInt(2000),
				"BTC": decimal.NewFromInt(90000),
			}),
			want: `{"command":"update-price","date":"2025-01-01","prices":{"BTC":90000,"ETH":2000}}`,
		},
		{
			name: "declare",
			tx:   NewDeclare(date.New(2025, 1, 1), "", "LP-1", "", testPool),
			want: `{"command":"declare","date":"2025-01-01","symbol":"LP-1","pool":{"base":"ETH","quote":"USDC","lower":1500,"upper":2500,"entry":2000}}`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := EncodeTransaction(&buf, tc.tx); err != nil {
				t.Fatalf("EncodeTransaction() unexpected error: %v", err)
			}
			if got := strings.TrimSpace(buf.String()); got != tc.want {
				t.Errorf("EncodeTransaction() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestDecodeLedger_LegacyShapes(t *testing.T) {
	jsonlStream := `
{"command":"deposit","date":"2025-01-01","asset":"ETH","quantity":2,"price":1500}
{"command":"interest","date":"2025-01-02","asset":"USDC","quantity":3,"source":"LP-1"}
{"command":"interest","date":"2025-01-03","asset":"USDC","quantity":3,"source":"LP-1","sources":["LP-2","LP-1"]}
`
	ledger, err := DecodeLedger(strings.NewReader(jsonlStream))
	if err != nil {
		t.Fatalf("DecodeLedger() unexpected error: %v", err)
	}
	txs := ledger.List()
	if len(txs) != 3 {
		t.Fatalf("DecodeLedger() decoded %d transactions, want 3", len(txs))
	}
	if got := txs[0].(Deposit).Cost; !got.Equal(USDollars(3000)) {
		t.Errorf("deposit cost = %v, want $3000", got)
	}
	if got := txs[1].(Interest).Sources; len(got) != 1 || got[0] != "LP-1" {
		t.Errorf("single source = %v, want [LP-1]", got)
	}
	if got := txs[2].(Interest).Sources; len(got) != 2 || got[0] != "LP-1" || got[1] != "LP-2" {
		t.Errorf("merged sources = %v, want [LP-1 LP-2]", got)
	}
}

func TestDecodeLedger_Errors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "unknown command", input: `{"command":"swap","date":"2025-01-01"}`},
		{name: "invalid json", input: `{"command":`},
		{name: "invalid date", input: `{"command":"buy","date":"yesterday","asset":"ETH","quantity":1}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeLedger(strings.NewReader(tc.input)); err == nil {
				t.Errorf("DecodeLedger(%s) expected an error", tc.input)
			}
		})
	}
}
