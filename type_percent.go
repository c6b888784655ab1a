package capital

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Percent is a rate expressed in percent, like an expected annual return.
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

// Rate returns p as a fraction (25% is 0.25).
func (p Percent) Rate() decimal.Decimal {
	return decimal.NewFromFloat(float64(p)).Div(decimal.NewFromInt(100))
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" {
		return "-"
	}
	return res
}
