package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Itinerary is one planned entry on a given day of a trip.
type Itinerary struct {
	ID        uuid.UUID
	TripID    uuid.UUID
	Day       time.Time
	Title     string
	Notes     string
	CreatedAt time.Time
}

// Validate enforces the required fields of an itinerary entry.
func (it Itinerary) Validate() error {
	if strings.TrimSpace(it.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if it.Day.IsZero() {
		return fmt.Errorf("%w: day is required", ErrValidation)
	}
	return nil
}
