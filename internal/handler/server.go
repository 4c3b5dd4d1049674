// Package handler implements the HTTP handlers for the Travel Planner API.
// All handlers are methods on Server. They are split into domain-specific
// files (trip.go, itinerary.go, etc.) but share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/internal/domain"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type TripServicer interface {
	List(ctx context.Context, callerEmail string) ([]domain.Trip, error)
	Get(ctx context.Context, id uuid.UUID, callerEmail string) (domain.Trip, error)
	Create(ctx context.Context, in domain.TripInput, callerEmail string) (domain.Trip, error)
	Update(ctx context.Context, id uuid.UUID, in domain.TripInput, callerEmail string) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID, callerEmail string) error
	Summary(ctx context.Context, id uuid.UUID, callerEmail string) (domain.TripSummary, error)
	Export(ctx context.Context, callerEmail string) ([]domain.ExportRow, error)
}

// ItineraryServicer defines the itinerary operations nested under a trip.
type ItineraryServicer interface {
	Add(ctx context.Context, tripID uuid.UUID, it domain.Itinerary, callerEmail string) (domain.Itinerary, error)
	List(ctx context.Context, tripID uuid.UUID, callerEmail string) ([]domain.Itinerary, error)
}

// ExpenseServicer defines the expense operations nested under a trip.
type ExpenseServicer interface {
	Add(ctx context.Context, tripID uuid.UUID, e domain.Expense, callerEmail string) (domain.Expense, error)
	ListPaged(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams, callerEmail string) ([]domain.Expense, int64, error)
}

// Server holds the dependencies shared by every handler.
// Wire it in main.go via NewRouter.
type Server struct {
	trips       TripServicer
	itineraries ItineraryServicer
	expenses    ExpenseServicer
	log         *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// A nil logger falls back to slog.Default().
func NewServer(trips TripServicer, itineraries ItineraryServicer, expenses ExpenseServicer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{trips: trips, itineraries: itineraries, expenses: expenses, log: log}
}
