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

// ExpenseRepo defines the persistence operations for Expenses.
// Amounts travel as text between Go and Postgres so they stay exact.
type ExpenseRepo interface {
	// Create inserts a new expense and returns the persisted record.
	Create(ctx context.Context, e domain.Expense) (domain.Expense, error)

	// ListByTripIDPaged returns one page of a trip's expenses ordered by
	// creation time, plus the total number of expenses on the trip.
	ListByTripIDPaged(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.Expense, int64, error)

	// AmountsByTripID returns the amount of every expense on a trip.
	AmountsByTripID(ctx context.Context, tripID uuid.UUID) ([]decimal.Decimal, error)
}

type pgExpenseRepo struct {
	db db
}

// NewExpenseRepo constructs an ExpenseRepo backed by the provided db connection.
func NewExpenseRepo(db db) ExpenseRepo {
	return &pgExpenseRepo{db: db}
}

func (r *pgExpenseRepo) Create(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	const q = `
		INSERT INTO expenses (trip_id, amount, category, description, spent_on)
		VALUES (@trip_id, @amount::text::numeric, @category, @description, @spent_on)
		RETURNING id, trip_id, amount::text, category, description, spent_on, created_at`

	args := pgx.NamedArgs{
		"trip_id":     e.TripID,
		"amount":      e.Amount.String(),
		"category":    e.Category,
		"description": e.Description,
		"spent_on":    e.SpentOn, // nil becomes NULL
	}

	result, err := scanExpense(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgExpenseRepo) ListByTripIDPaged(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.Expense, int64, error) {
	const countQ = `SELECT count(*) FROM expenses WHERE trip_id = @trip_id`
	const q = `
		SELECT id, trip_id, amount::text, category, description, spent_on, created_at
		FROM expenses
		WHERE trip_id = @trip_id
		ORDER BY created_at ASC, id ASC
		LIMIT @limit OFFSET @offset`

	var total int64
	if err := r.db.QueryRow(ctx, countQ, pgx.NamedArgs{"trip_id": tripID}).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.ExpenseRepo.ListByTripIDPaged: count: %w", err)
	}

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"trip_id": tripID,
		"limit":   p.Limit,
		"offset":  p.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ExpenseRepo.ListByTripIDPaged: %w", err)
	}
	defer rows.Close()

	var out []domain.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.ExpenseRepo.ListByTripIDPaged: scan: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.ExpenseRepo.ListByTripIDPaged: rows: %w", err)
	}
	return out, total, nil
}

func (r *pgExpenseRepo) AmountsByTripID(ctx context.Context, tripID uuid.UUID) ([]decimal.Decimal, error) {
	const q = `SELECT amount::text FROM expenses WHERE trip_id = @trip_id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ExpenseRepo.AmountsByTripID: %w", err)
	}
	defer rows.Close()

	var out []decimal.Decimal
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("repo.ExpenseRepo.AmountsByTripID: scan: %w", err)
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("repo.ExpenseRepo.AmountsByTripID: parse %q: %w", raw, err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ExpenseRepo.AmountsByTripID: rows: %w", err)
	}
	return out, nil
}

func scanExpense(s scanner) (domain.Expense, error) {
	var (
		e       domain.Expense
		id      pgtype.UUID
		tripID  pgtype.UUID
		amount  string
		spentOn pgtype.Date
	)
	if err := s.Scan(&id, &tripID, &amount, &e.Category, &e.Description, &spentOn, &e.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Expense{}, domain.ErrNotFound
		}
		return domain.Expense{}, err
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	e.ID = uuid.UUID(id.Bytes)
	e.TripID = uuid.UUID(tripID.Bytes)
	e.Amount = d
	if spentOn.Valid {
		t := spentOn.Time
		e.SpentOn = &t
	}
	return e, nil
}
