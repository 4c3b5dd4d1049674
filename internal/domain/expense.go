package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is money spent against a trip.
// SpentOn is nil when the client did not record a date.
type Expense struct {
	ID          uuid.UUID
	TripID      uuid.UUID
	Amount      decimal.Decimal
	Category    string
	Description string
	SpentOn     *time.Time
	CreatedAt   time.Time
}

// Validate rejects zero and negative amounts, and amounts the store cannot
// hold exactly.
func (e Expense) Validate() error {
	if !e.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	}
	return ValidateMoney("amount", e.Amount)
}
