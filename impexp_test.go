package lpfolio

import (
	"strings"
	"testing"
)

const priceDocument = `{
  "ethereum": {"usd": 2500.5},
  "hyperliquid": {"usd": "31.20"},
  "pairs": [{"symbol": "BTCUSDT", "price": 90000}],
  "broken": {"usd": "n/a"},
  "zero": {"usd": 0}
}`

func TestImportPrices(t *testing.T) {
	paths := map[string]string{
		"ETH":  "$.ethereum.usd",
		"HYPE": "$.hyperliquid.usd",
		"BTC":  "$.pairs[*].price",
	}
	prices, err := ImportPrices(strings.NewReader(priceDocument), paths)
	if err != nil {
		t.Fatalf("ImportPrices() unexpected error: %v", err)
	}
	want := Prices{"ETH": USDollars(2500.5), "HYPE": USDollars(31.2), "BTC": USDollars(90000)}
	for symbol, price := range want {
		if got := prices[symbol]; !got.Equal(price) {
			t.Errorf("price of %s = %v, want %v", symbol, got, price)
		}
	}
}

func TestImportPrices_Errors(t *testing.T) {
	testCases := []struct {
		name string
		path string
	}{
		{name: "unknown key", path: "$.solana.usd"},
		{name: "not a number", path: "$.broken.usd"},
		{name: "zero price", path: "$.zero.usd"},
		{name: "not a price", path: "$.ethereum"},
		{name: "no match", path: "$.pairs[?(@.symbol == \"ETHUSDT\")].price"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			prices, err := ImportPrices(strings.NewReader(priceDocument), map[string]string{"X": tc.path, "ETH": "$.ethereum.usd"})
			if err == nil {
				t.Errorf("ImportPrices(%q) expected an error", tc.path)
			}
			if _, ok := prices["ETH"]; !ok {
				t.Errorf("ImportPrices() dropped the valid prices: %v", prices)
			}
		})
	}
	if _, err := ImportPrices(strings.NewReader("{"), nil); err == nil {
		t.Errorf("ImportPrices() of an invalid document expected an error")
	}
}
