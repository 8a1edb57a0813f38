package lpfolio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// ImportPrices reads USD prices from an arbitrary JSON document, typically a
// saved price API response.
//
// paths maps each symbol to the JSONPath of its price in the document, for
// example {"ETH": "$.ethereum.usd"}. Prices may be numbers or numeric strings.
// Every failing path is reported, prices that could be read are still returned.
func ImportPrices(r io.Reader, paths map[string]string) (Prices, error) {
	var jobj any
	if err := json.NewDecoder(r).Decode(&jobj); err != nil {
		return nil, fmt.Errorf("cannot parse price document: %w", err)
	}

	prices := make(Prices)
	var errs []error
	for symbol, path := range paths {
		price, err := priceAt(jobj, path)
		if err != nil {
			errs = append(errs, fmt.Errorf("price of %s: %w", symbol, err))
			continue
		}
		prices[symbol] = M(price, USD)
	}
	return prices, errors.Join(errs...)
}

// priceAt evaluates path in jobj and reads a positive price.
func priceAt(jobj any, path string) (decimal.Decimal, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error evaluating %q: %w", path, err)
	}
	// jsonpath returns either a single value or a list of matches: keep the
	// first one.
	if jlist, ok := jval.([]any); ok {
		if len(jlist) == 0 {
			return decimal.Zero, fmt.Errorf("no value at %q", path)
		}
		jval = jlist[0]
	}

	var price decimal.Decimal
	switch v := jval.(type) {
	case float64:
		price = decimal.NewFromFloat(v)
	case string:
		price, err = decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid price string %q at %q: %w", v, path, err)
		}
	default:
		return decimal.Zero, fmt.Errorf("value at %q is not a number: %v", path, jval)
	}
	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("price at %q must be positive, got %v", path, price)
	}
	return price, nil
}
