package lpfolio

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// USD is the reporting currency of every value computed from prices.
const USD = "USD"

// Money represents a monetary value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

func M[T float64 | int | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// USDollars is a shortcut for M(value, USD).
func USDollars[T float64 | int | int64 | decimal.Decimal](value T) Money { return M(value, USD) }

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the string representation of the money value.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

func (m Money) Currency() string              { return m.cur }
func (m Money) Equal(n Money) bool            { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                  { return m.value.IsZero() }
func (m Money) IsPositive() bool              { return m.value.IsPositive() }
func (m Money) IsNegative() bool              { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool         { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool      { return m.value.GreaterThan(n.value) }
func (m Money) Mul(q Quantity) Money          { return Money{value: m.value.Mul(q.value), cur: m.cur} }
func (m Money) Add(n Money) Money             { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money             { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }
func (m Money) Float() float64                { return m.value.InexactFloat64() }
func (m Money) Decimal() decimal.Decimal      { return m.value }
func (m Money) withCurrency(c string) Money   { return Money{value: m.value, cur: c} }
func (m Money) DivPrice(price Money) Quantity { return Quantity{value: m.value.Div(price.value)} }

// Ratio returns m/n. The caller must ensure n is not zero.
func (m Money) Ratio(n Money) float64 { return m.value.Div(n.value).InexactFloat64() }

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch " + A.cur + "!=" + B.cur)
	}
	return A.cur
}

// SignedString returns the string representation of the money value with a sign.
// 0 is represented as a "-"
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("currency", m.cur)
	w.Append("amount", m.value)
	return w.MarshalJSON()
}
