package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/repo"
)

// ExpenseService implements business logic for trip expenses.
type ExpenseService struct {
	store repo.Store
}

// NewExpenseService constructs an ExpenseService backed by the provided Store.
func NewExpenseService(store repo.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// Add validates the expense and records it against a trip the caller owns.
func (s *ExpenseService) Add(ctx context.Context, tripID uuid.UUID, e domain.Expense, callerEmail string) (domain.Expense, error) {
	if err := e.Validate(); err != nil {
		return domain.Expense{}, err
	}
	e.TripID = tripID

	var created domain.Expense
	err := s.store.InTx(ctx, func(r repo.Repos) error {
		if _, err := ownedTrip(ctx, r, tripID, callerEmail); err != nil {
			return err
		}
		var err error
		created, err = r.Expenses.Create(ctx, e)
		return err
	})
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Add: %w", err)
	}
	return created, nil
}

// ListPaged returns one page of a trip's expenses and the trip's expense count.
func (s *ExpenseService) ListPaged(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams, callerEmail string) ([]domain.Expense, int64, error) {
	var (
		out   []domain.Expense
		total int64
	)
	err := s.store.InTx(ctx, func(r repo.Repos) error {
		if _, err := ownedTrip(ctx, r, tripID, callerEmail); err != nil {
			return err
		}
		var err error
		out, total, err = r.Expenses.ListByTripIDPaged(ctx, tripID, p)
		return err
	})
	if err != nil {
		return nil, 0, fmt.Errorf("service.ExpenseService.ListPaged: %w", err)
	}
	if out == nil {
		out = []domain.Expense{}
	}
	return out, total, nil
}
