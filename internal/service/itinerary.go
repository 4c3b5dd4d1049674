package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/repo"
)

// ItineraryService implements business logic for itinerary entries.
// Every operation first checks the caller owns the parent trip.
type ItineraryService struct {
	store repo.Store
}

// NewItineraryService constructs an ItineraryService backed by the provided Store.
func NewItineraryService(store repo.Store) *ItineraryService {
	return &ItineraryService{store: store}
}

// Add validates the entry and attaches it to a trip the caller owns.
func (s *ItineraryService) Add(ctx context.Context, tripID uuid.UUID, it domain.Itinerary, callerEmail string) (domain.Itinerary, error) {
	if err := it.Validate(); err != nil {
		return domain.Itinerary{}, err
	}
	it.TripID = tripID

	var created domain.Itinerary
	err := s.store.InTx(ctx, func(r repo.Repos) error {
		if _, err := ownedTrip(ctx, r, tripID, callerEmail); err != nil {
			return err
		}
		var err error
		created, err = r.Itineraries.Create(ctx, it)
		return err
	})
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Add: %w", err)
	}
	return created, nil
}

// List returns the entries of a trip the caller owns, ordered by day.
// Always returns a non-nil slice.
func (s *ItineraryService) List(ctx context.Context, tripID uuid.UUID, callerEmail string) ([]domain.Itinerary, error) {
	var out []domain.Itinerary
	err := s.store.InTx(ctx, func(r repo.Repos) error {
		if _, err := ownedTrip(ctx, r, tripID, callerEmail); err != nil {
			return err
		}
		var err error
		out, err = r.Itineraries.ListByTripID(ctx, tripID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.List: %w", err)
	}
	if out == nil {
		return []domain.Itinerary{}, nil
	}
	return out, nil
}
