package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits stored for amounts and budgets.
const MoneyScale = 2

// maxMoney is the exclusive bound on the magnitude of a stored amount;
// the columns are NUMERIC(12,2).
var maxMoney = decimal.New(1, 10)

// ValidateMoney rejects values the store would round or overflow.
// field names the value in the error message.
func ValidateMoney(field string, d decimal.Decimal) error {
	if !d.Equal(d.Round(MoneyScale)) {
		return fmt.Errorf("%w: %s must have at most %d decimal places", ErrValidation, field, MoneyScale)
	}
	if d.Abs().GreaterThanOrEqual(maxMoney) {
		return fmt.Errorf("%w: %s must be less than %s", ErrValidation, field, maxMoney.String())
	}
	return nil
}
