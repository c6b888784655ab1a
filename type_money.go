package capital

import (
	"encoding/json"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Toman is the display currency of the original application. It is not an
// ISO currency, so it is registered with go-money at init.
const Toman = "IRT"

func init() {
	money.AddCurrency(Toman, "تومان", "1 $", ".", ",", 0)
}

// DisplayCurrency is the currency code used by Money.String. The state itself
// is stored in a single implicit unit and never converted.
var DisplayCurrency = Toman

// Money represents a monetary value in the portfolio unit.
type Money struct {
	value decimal.Decimal
}

// M is a convenient factory for Money.
func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

// currency returns the display currency.
func (m Money) currency() *money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return money.New(0, DisplayCurrency).Currency()
}

// String returns the string representation of the money value.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.Round(0).IntPart())
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

func (m Money) Decimal() decimal.Decimal            { return m.value }
func (m Money) Equal(n Money) bool                  { return m.value.Equal(n.value) }
func (m Money) IsZero() bool                        { return m.value.IsZero() }
func (m Money) IsPositive() bool                    { return m.value.IsPositive() }
func (m Money) IsNegative() bool                    { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool               { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool            { return m.value.GreaterThan(n.value) }
func (m Money) Neg() Money                          { return Money{value: m.value.Neg()} }
func (m Money) Abs() Money                          { return Money{value: m.value.Abs()} }
func (m Money) Add(n Money) Money                   { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money                   { return Money{value: m.value.Sub(n.value)} }
func (m Money) Mul(q Quantity) Money                { return Money{value: m.value.Mul(q.value)} }
func (m Money) Div(q Quantity) Money                { return Money{value: m.value.Div(q.value)} }
func (m Money) DivMoney(n Money) Quantity           { return Quantity{value: m.value.Div(n.value)} }
func (m Money) MulRate(r decimal.Decimal) Money     { return Money{value: m.value.Mul(r)} }
func (m Money) Round(places int32) Money            { return Money{value: m.value.Round(places)} }
func (m Money) InexactFloat64() float64             { return m.value.InexactFloat64() }
func (m Money) percentOf(pct decimal.Decimal) Money { return m.MulRate(pct).Div(Q(100)) }

// Approx reports whether m and n differ by less than tolerance.
func (m Money) Approx(n Money, tolerance float64) bool {
	return m.value.Sub(n.value).Abs().LessThan(decimal.NewFromFloat(tolerance))
}

// Sum adds up a list of amounts.
func Sum(values ...Money) Money {
	total := M(0)
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// MarshalJSON writes money as a bare JSON number, the persisted document has
// always used plain numbers.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.value.String()), nil
}

// UnmarshalJSON accepts a JSON number, a quoted number or null.
func (m *Money) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		m.value = decimal.Zero
		return nil
	}
	return m.value.UnmarshalJSON(data)
}

var _ json.Marshaler = Money{}
var _ json.Unmarshaler = (*Money)(nil)
