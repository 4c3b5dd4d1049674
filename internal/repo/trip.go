package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/pkordes/travel-planner/internal/domain"
)

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete Postgres implementation,
// which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with DB-generated
	// id, created_at, and updated_at populated and the owner's email joined in).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its UUID primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// ListByOwner returns the owner's trips ordered by start_date descending,
	// then id ascending for trips that start on the same day.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Trip, error)

	// Update overwrites the mutable fields of an existing trip and returns the
	// updated record. Returns domain.ErrNotFound if no trip with that ID exists.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes a trip together with its itineraries and expenses.
	// Returns domain.ErrNotFound if the trip does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production the Store passes a pgx.Tx; tests may pass their own.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// tripSelect projects a trips row aliased "t" joined with its owner "u".
// budget is read as text so it round-trips through decimal without floats.
const tripSelect = `
	SELECT t.id, t.user_id, u.email, t.title, t.description, t.start_date,
	       t.end_date, t.destination, t.budget::text, t.status,
	       t.created_at, t.updated_at`

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		WITH t AS (
			INSERT INTO trips (user_id, title, description, start_date, end_date,
			                   destination, budget, status)
			VALUES (@user_id, @title, @description, @start_date, @end_date,
			        @destination, @budget::text::numeric, @status)
			RETURNING *
		)` + tripSelect + `
		FROM t JOIN users u ON u.id = t.user_id`

	args := pgx.NamedArgs{
		"user_id":     trip.OwnerID,
		"title":       trip.Title,
		"description": trip.Description,
		"start_date":  trip.StartDate,
		"end_date":    trip.EndDate,
		"destination": trip.Destination,
		"budget":      decimalArg(trip.Budget), // nil becomes NULL
		"status":      string(trip.Status),
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = tripSelect + `
		FROM trips t JOIN users u ON u.id = t.user_id
		WHERE t.id = @id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListByOwner returns the owner's trips, most recent start date first.
func (r *pgTripRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Trip, error) {
	const q = tripSelect + `
		FROM trips t JOIN users u ON u.id = t.user_id
		WHERE t.user_id = @user_id
		ORDER BY t.start_date DESC, t.id ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByOwner: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.ListByOwner: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByOwner: rows: %w", err)
	}

	return trips, nil
}

// Update overwrites the mutable fields of a trip and returns the updated record.
// updated_at uses clock_timestamp() so it advances even when the trip was
// created earlier in the same transaction.
func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		WITH t AS (
			UPDATE trips
			SET title       = @title,
			    description = @description,
			    start_date  = @start_date,
			    end_date    = @end_date,
			    destination = @destination,
			    budget      = @budget::text::numeric,
			    status      = @status,
			    updated_at  = clock_timestamp()
			WHERE id = @id
			RETURNING *
		)` + tripSelect + `
		FROM t JOIN users u ON u.id = t.user_id`

	args := pgx.NamedArgs{
		"id":          trip.ID,
		"title":       trip.Title,
		"description": trip.Description,
		"start_date":  trip.StartDate,
		"end_date":    trip.EndDate,
		"destination": trip.Destination,
		"budget":      decimalArg(trip.Budget),
		"status":      string(trip.Status),
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes the trip's expenses and itineraries, then the trip itself.
// Callers run it inside Store.InTx so the three statements commit together.
func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := pgx.NamedArgs{"id": id}

	if _, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE trip_id = @id`, args); err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: expenses: %w", err)
	}
	if _, err := r.db.Exec(ctx, `DELETE FROM itineraries WHERE trip_id = @id`, args); err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: itineraries: %w", err)
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM trips WHERE id = @id`, args)
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scan helpers to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single tripSelect row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t         domain.Trip
		id        pgtype.UUID
		ownerID   pgtype.UUID
		startDate pgtype.Date
		endDate   pgtype.Date
		budget    pgtype.Text
		status    string
	)

	err := s.Scan(&id, &ownerID, &t.OwnerEmail, &t.Title, &t.Description, &startDate,
		&endDate, &t.Destination, &budget, &status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.OwnerID = uuid.UUID(ownerID.Bytes)
	t.StartDate = startDate.Time
	t.EndDate = endDate.Time
	t.Status = domain.TripStatus(status)
	if budget.Valid {
		b, err := decimal.NewFromString(budget.String)
		if err != nil {
			return domain.Trip{}, fmt.Errorf("parse budget %q: %w", budget.String, err)
		}
		t.Budget = &b
	}

	return t, nil
}

// decimalArg renders an optional decimal as a text query argument.
// The SQL casts it back with ::text::numeric, so no float conversion happens.
func decimalArg(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}
