package normalize

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AmountPlaces is the precision of every derived currency total.
const AmountPlaces = 2

// ParseAmount converts a cell value to a decimal amount. Empty cells yield
// zero with ok=true. Values that do not parse as a number yield zero with
// ok=false; callers treat that as a coercion, not a failure.
func ParseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, true
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// RoundAmount rounds to AmountPlaces using half away from zero.
func RoundAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(AmountPlaces)
}
