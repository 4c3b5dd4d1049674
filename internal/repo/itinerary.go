package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travel-planner/internal/domain"
)

// ItineraryRepo defines the persistence operations for Itineraries.
// Every operation is scoped by tripID.
type ItineraryRepo interface {
	// Create inserts a new itinerary entry and returns the persisted record.
	Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)

	// ListByTripID returns all entries for a trip ordered by day, then creation time.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Itinerary, error)

	// CountByTripID returns the number of entries attached to a trip.
	CountByTripID(ctx context.Context, tripID uuid.UUID) (int, error)
}

type pgItineraryRepo struct {
	db db
}

// NewItineraryRepo constructs an ItineraryRepo backed by the provided db connection.
func NewItineraryRepo(db db) ItineraryRepo {
	return &pgItineraryRepo{db: db}
}

func (r *pgItineraryRepo) Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	const q = `
		INSERT INTO itineraries (trip_id, day, title, notes)
		VALUES (@trip_id, @day, @title, @notes)
		RETURNING id, trip_id, day, title, notes, created_at`

	args := pgx.NamedArgs{
		"trip_id": it.TripID,
		"day":     it.Day,
		"title":   it.Title,
		"notes":   it.Notes,
	}

	result, err := scanItinerary(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgItineraryRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Itinerary, error) {
	const q = `
		SELECT id, trip_id, day, title, notes, created_at
		FROM itineraries
		WHERE trip_id = @trip_id
		ORDER BY day ASC, created_at ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var out []domain.Itinerary
	for rows.Next() {
		it, err := scanItinerary(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ItineraryRepo.ListByTripID: scan: %w", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.ListByTripID: rows: %w", err)
	}
	return out, nil
}

func (r *pgItineraryRepo) CountByTripID(ctx context.Context, tripID uuid.UUID) (int, error) {
	const q = `SELECT count(*) FROM itineraries WHERE trip_id = @trip_id`

	var n int
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID}).Scan(&n); err != nil {
		return 0, fmt.Errorf("repo.ItineraryRepo.CountByTripID: %w", err)
	}
	return n, nil
}

func scanItinerary(s scanner) (domain.Itinerary, error) {
	var (
		it     domain.Itinerary
		id     pgtype.UUID
		tripID pgtype.UUID
		day    pgtype.Date
	)
	if err := s.Scan(&id, &tripID, &day, &it.Title, &it.Notes, &it.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Itinerary{}, domain.ErrNotFound
		}
		return domain.Itinerary{}, err
	}
	it.ID = uuid.UUID(id.Bytes)
	it.TripID = uuid.UUID(tripID.Bytes)
	it.Day = day.Time
	return it, nil
}
