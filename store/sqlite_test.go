package store

import (
	"path/filepath"
	"testing"

	"github.com/etnz/lpfolio"
	"github.com/etnz/lpfolio/date"
)

var _ lpfolio.PriceStore = (*SQLite)(nil)

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.db")
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() unexpected error: %v", err)
	}
	d := date.MustParse

	updates := []struct {
		on     string
		prices lpfolio.Prices
	}{
		{on: "2025-01-01", prices: lpfolio.Prices{"ETH": lpfolio.USDollars(2000), "HYPE": lpfolio.USDollars(20)}},
		{on: "2025-01-10", prices: lpfolio.Prices{"ETH": lpfolio.USDollars(2500)}},
		{on: "2025-01-10", prices: lpfolio.Prices{"ETH": lpfolio.USDollars(2600.25)}}, // same day overwrites
	}
	for _, u := range updates {
		if err := s.Update(d(u.on), u.prices); err != nil {
			t.Fatalf("Update(%s) unexpected error: %v", u.on, err)
		}
	}

	testCases := []struct {
		on      string
		wantETH float64
		wantLen int
	}{
		{on: "2024-12-31", wantLen: 0},
		{on: "2025-01-05", wantETH: 2000, wantLen: 2},
		{on: "2025-01-10", wantETH: 2600.25, wantLen: 2},
		{on: "2026-01-01", wantETH: 2600.25, wantLen: 2},
	}
	for _, tc := range testCases {
		t.Run(tc.on, func(t *testing.T) {
			prices, err := s.Prices(d(tc.on))
			if err != nil {
				t.Fatalf("Prices() unexpected error: %v", err)
			}
			if len(prices) != tc.wantLen {
				t.Fatalf("Prices(%s) = %v, want %d prices", tc.on, prices, tc.wantLen)
			}
			if tc.wantLen > 0 && !prices["ETH"].Equal(lpfolio.USDollars(tc.wantETH)) {
				t.Errorf("ETH = %v, want %v", prices["ETH"], tc.wantETH)
			}
		})
	}

	if err := s.Update(d("2025-01-11"), lpfolio.Prices{"ETH": lpfolio.USDollars(-1)}); err == nil {
		t.Errorf("Update() with a negative price expected an error")
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close() unexpected error: %v", err)
	}

	// prices survive reopening.
	s, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() unexpected error: %v", err)
	}
	defer s.Close()
	prices, err := s.Prices(d("2025-01-05"))
	if err != nil || !prices["HYPE"].Equal(lpfolio.USDollars(20)) {
		t.Errorf("Prices() after reopening = %v, %v, want HYPE $20", prices, err)
	}
}
