package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExportRow is a single row in the per-user trip export.
// It is a flat view: one row per trip with its aggregates precomputed.
type ExportRow struct {
	TripID         uuid.UUID
	Title          string
	Destination    string
	StartDate      string // "2006-01-02" formatted date
	EndDate        string // "2006-01-02" formatted date
	Status         string
	Budget         string // empty when the trip has no budget
	ItineraryCount int
	TotalExpenses  decimal.Decimal
}
