// Package service contains the business logic for the Travel Planner API.
// Services validate inputs, enforce ownership, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/metrics"
	"github.com/pkordes/travel-planner/internal/repo"
)

// TripService implements business logic for Trip operations.
// Every method runs in exactly one Store transaction.
type TripService struct {
	store repo.Store
}

// NewTripService constructs a TripService backed by the provided Store.
func NewTripService(store repo.Store) *TripService {
	return &TripService{store: store}
}

// List returns the caller's trips ordered by start date descending.
// Returns domain.ErrNotFound if no user matches callerEmail.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context, callerEmail string) ([]domain.Trip, error) {
	var trips []domain.Trip
	err := s.store.InTx(ctx, func(r repo.Repos) error {
		user, err := r.Users.GetByEmail(ctx, callerEmail)
		if err != nil {
			return err
		}
		trips, err = r.Trips.ListByOwner(ctx, user.ID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Get returns a single trip the caller owns.
// Returns domain.ErrNotFound if the trip does not exist and
// domain.ErrForbidden if it belongs to someone else.
func (s *TripService) Get(ctx context.Context, id uuid.UUID, callerEmail string) (domain.Trip, error) {
	var trip domain.Trip
	err := s.store.InTx(ctx, func(r repo.Repos) error {
		var err error
		trip, err = ownedTrip(ctx, r, id, callerEmail)
		return err
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Get: %w", err)
	}
	return trip, nil
}

// Create validates the input and persists a new trip owned by the caller.
// Status defaults to PLANNING when the input does not carry one.
func (s *TripService) Create(ctx context.Context, in domain.TripInput, callerEmail string) (domain.Trip, error) {
	if err := in.Validate(); err != nil {
		return domain.Trip{}, err
	}

	var created domain.Trip
	err := s.store.InTx(ctx, func(r repo.Repos) error {
		user, err := r.Users.GetByEmail(ctx, callerEmail)
		if err != nil {
			return err
		}
		trip := domain.Trip{OwnerID: user.ID, Status: domain.TripStatusPlanning}
		applyInput(&trip, in)
		created, err = r.Trips.Create(ctx, trip)
		return err
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return created, nil
}

// Update overwrites a trip the caller owns. Title, description, dates,
// destination and budget are always replaced; status only when supplied.
func (s *TripService) Update(ctx context.Context, id uuid.UUID, in domain.TripInput, callerEmail string) (domain.Trip, error) {
	if err := in.Validate(); err != nil {
		return domain.Trip{}, err
	}

	var updated domain.Trip
	err := s.store.InTx(ctx, func(r repo.Repos) error {
		trip, err := ownedTrip(ctx, r, id, callerEmail)
		if err != nil {
			return err
		}
		applyInput(&trip, in)
		updated, err = r.Trips.Update(ctx, trip)
		return err
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a trip the caller owns together with its itineraries and expenses.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID, callerEmail string) error {
	err := s.store.InTx(ctx, func(r repo.Repos) error {
		if _, err := ownedTrip(ctx, r, id, callerEmail); err != nil {
			return err
		}
		return r.Trips.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// Summary returns a trip the caller owns with its itinerary count and the
// exact sum of its expense amounts (zero when there are none).
func (s *TripService) Summary(ctx context.Context, id uuid.UUID, callerEmail string) (domain.TripSummary, error) {
	var sum domain.TripSummary
	err := s.store.InTx(ctx, func(r repo.Repos) error {
		trip, err := ownedTrip(ctx, r, id, callerEmail)
		if err != nil {
			return err
		}
		sum, err = summarize(ctx, r, trip)
		return err
	})
	if err != nil {
		return domain.TripSummary{}, fmt.Errorf("service.TripService.Summary: %w", err)
	}
	return sum, nil
}

// ownedTrip loads a trip and checks the caller owns it. The check runs on
// every call; nothing about a previous decision is remembered.
func ownedTrip(ctx context.Context, r repo.Repos, id uuid.UUID, callerEmail string) (domain.Trip, error) {
	trip, err := r.Trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, err
	}
	if !domain.Authorize(callerEmail, trip.OwnerEmail) {
		metrics.OwnershipDenials.Inc()
		return domain.Trip{}, fmt.Errorf("%w: trip %s is not owned by caller", domain.ErrForbidden, id)
	}
	return trip, nil
}

func summarize(ctx context.Context, r repo.Repos, trip domain.Trip) (domain.TripSummary, error) {
	count, err := r.Itineraries.CountByTripID(ctx, trip.ID)
	if err != nil {
		return domain.TripSummary{}, err
	}
	amounts, err := r.Expenses.AmountsByTripID(ctx, trip.ID)
	if err != nil {
		return domain.TripSummary{}, err
	}
	return domain.TripSummary{
		Trip:           trip,
		ItineraryCount: count,
		TotalExpenses:  domain.SumAmounts(amounts),
	}, nil
}

// applyInput copies the client-writable fields onto trip.
func applyInput(trip *domain.Trip, in domain.TripInput) {
	trip.Title = in.Title
	trip.Description = in.Description
	trip.StartDate = in.StartDate
	trip.EndDate = in.EndDate
	trip.Destination = in.Destination
	trip.Budget = in.Budget
	if in.Status != nil {
		trip.Status = *in.Status
	}
}
