package helpers

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ToMinorUnits converts a major-unit amount (rupees) into minor units (paise).
// Amounts with more than two decimal places are rejected.
func ToMinorUnits(amount decimal.Decimal) (int64, error) {
	minor := amount.Mul(hundred)
	if !minor.Equal(minor.Truncate(0)) {
		return 0, fmt.Errorf("amount %s has more than two decimal places", amount.String())
	}
	if minor.IsNegative() {
		return 0, fmt.Errorf("amount %s is negative", amount.String())
	}
	return minor.IntPart(), nil
}
