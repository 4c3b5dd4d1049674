// Package domain contains the core data types for the Travel Planner application.
// It is imported by every other internal package (repo, service, handler) and
// depends only on uuid and decimal.
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TripStatus is the planning state of a trip.
type TripStatus string

const (
	TripStatusPlanning   TripStatus = "PLANNING"
	TripStatusConfirmed  TripStatus = "CONFIRMED"
	TripStatusInProgress TripStatus = "IN_PROGRESS"
	TripStatusCompleted  TripStatus = "COMPLETED"
	TripStatusCancelled  TripStatus = "CANCELLED"
)

// Valid reports whether s is one of the known statuses.
func (s TripStatus) Valid() bool {
	switch s {
	case TripStatusPlanning, TripStatusConfirmed, TripStatusInProgress,
		TripStatusCompleted, TripStatusCancelled:
		return true
	}
	return false
}

// ParseTripStatus converts the wire name of a status into a TripStatus.
// Matching is exact; "planning" is rejected.
func ParseTripStatus(s string) (TripStatus, error) {
	st := TripStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: unknown status %q", ErrValidation, s)
	}
	return st, nil
}

// Trip is a travel plan owned by exactly one user.
// Itineraries and expenses belong to a trip and are deleted with it.
type Trip struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	OwnerEmail  string
	Title       string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Destination string
	Budget      *decimal.Decimal // nil when no budget was given
	Status      TripStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TripInput carries the client-writable fields of a trip for create and update.
// Status is nil when the client did not send one.
type TripInput struct {
	Title       string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Destination string
	Budget      *decimal.Decimal
	Status      *TripStatus
}

// Validate checks required fields and the status value.
// StartDate and EndDate are not compared against each other.
func (in TripInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if in.StartDate.IsZero() {
		return fmt.Errorf("%w: startDate is required", ErrValidation)
	}
	if in.EndDate.IsZero() {
		return fmt.Errorf("%w: endDate is required", ErrValidation)
	}
	if in.Status != nil && !in.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, string(*in.Status))
	}
	if in.Budget != nil {
		return ValidateMoney("budget", *in.Budget)
	}
	return nil
}

// TripSummary is a trip augmented with aggregates over its children.
type TripSummary struct {
	Trip
	ItineraryCount int
	TotalExpenses  decimal.Decimal
}

// Authorize reports whether caller may access a resource owned by owner.
// The comparison is exact: case-sensitive and without trimming.
func Authorize(caller, owner string) bool {
	return caller == owner
}

// SumAmounts returns the exact decimal sum of amounts, or zero for none.
func SumAmounts(amounts []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
