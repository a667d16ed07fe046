// Package money converts between integer minor units (cents) and the
// decimal strings used on the API surface. All arithmetic elsewhere in
// the codebase happens on int64 cents; decimals exist only at the edge.
package money

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid money amount")

var hundred = decimal.NewFromInt(100)

// ParseCents converts a decimal amount like "19.90" into cents.
// Rejects negative amounts and sub-cent precision.
func ParseCents(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if d.IsNegative() {
		return 0, ErrInvalidAmount
	}
	c := d.Mul(hundred)
	if !c.Equal(c.Truncate(0)) {
		return 0, ErrInvalidAmount
	}
	return c.IntPart(), nil
}

// FormatCents renders cents as a two-decimal string: 1990 -> "19.90".
func FormatCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
