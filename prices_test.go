package lpfolio

import (
	"testing"

	"github.com/etnz/lpfolio/date"
	"github.com/shopspring/decimal"
)

func TestPrices_Value(t *testing.T) {
	prices := Prices{"ETH": USDollars(2000)}
	if got := prices.Value("ETH", Q(1.5)); !got.Equal(USDollars(3000)) {
		t.Errorf("Value(ETH, 1.5) = %v, want $3000", got)
	}
	if got := prices.Value("BTC", Q(1)); !got.IsZero() {
		t.Errorf("Value(BTC, 1) = %v, want 0", got)
	}
}

func TestLedgerPrices(t *testing.T) {
	d := date.MustParse
	ledger := NewLedger()
	ledger.Append(
		NewUpdatePrices(d("2025-01-01"), map[string]decimal.Decimal{"ETH": decimal.NewFromInt(2000), "HYPE": decimal.NewFromInt(20)}),
		NewUpdatePrices(d("2025-01-10"), map[string]decimal.Decimal{"ETH": decimal.NewFromInt(2500)}),
	)
	store := NewLedgerPrices(ledger)

	testCases := []struct {
		on       string
		wantETH  float64
		wantHYPE float64
		wantLen  int
	}{
		{on: "2024-12-31", wantLen: 0},
		{on: "2025-01-01", wantETH: 2000, wantHYPE: 20, wantLen: 2},
		{on: "2025-01-09", wantETH: 2000, wantHYPE: 20, wantLen: 2},
		{on: "2025-01-10", wantETH: 2500, wantHYPE: 20, wantLen: 2},
	}
	for _, tc := range testCases {
		t.Run(tc.on, func(t *testing.T) {
			prices, err := store.Prices(d(tc.on))
			if err != nil {
				t.Fatalf("Prices() unexpected error: %v", err)
			}
			if len(prices) != tc.wantLen {
				t.Fatalf("Prices(%s) = %v, want %d prices", tc.on, prices, tc.wantLen)
			}
			if tc.wantLen == 0 {
				return
			}
			if got := prices["ETH"]; !got.Equal(USDollars(tc.wantETH)) {
				t.Errorf("ETH = %v, want %v", got, tc.wantETH)
			}
			if got := prices["HYPE"]; !got.Equal(USDollars(tc.wantHYPE)) {
				t.Errorf("HYPE = %v, want %v", got, tc.wantHYPE)
			}
		})
	}

	if err := store.Update(d("2025-01-10"), Prices{"HYPE": USDollars(30)}); err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}
	if ledger.Len() != 2 {
		t.Errorf("Update() on an existing day added a transaction, Len() = %d", ledger.Len())
	}
	prices, _ := store.Prices(d("2025-01-10"))
	if got := prices["HYPE"]; !got.Equal(USDollars(30)) {
		t.Errorf("HYPE after update = %v, want $30", got)
	}
	if err := store.Update(d("2025-01-11"), Prices{"HYPE": USDollars(-1)}); err == nil {
		t.Errorf("Update() with a negative price expected an error")
	}
}
