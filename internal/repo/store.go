// Package repo contains all database access logic for the Travel Planner API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// beginner starts a transaction. *pgxpool.Pool begins a real transaction;
// pgx.Tx begins a savepoint, which is what the integration tests rely on.
type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Repos bundles every repo bound to the same connection or transaction.
type Repos struct {
	Users       UserRepo
	Trips       TripRepo
	Itineraries ItineraryRepo
	Expenses    ExpenseRepo
}

// NewRepos binds all repos to db.
func NewRepos(db db) Repos {
	return Repos{
		Users:       NewUserRepo(db),
		Trips:       NewTripRepo(db),
		Itineraries: NewItineraryRepo(db),
		Expenses:    NewExpenseRepo(db),
	}
}

// Store runs a unit of work in a single transaction.
// The service layer depends on this interface so it can be unit-tested
// with in-memory repos.
type Store interface {
	// InTx calls fn with repos bound to a new transaction. The transaction
	// commits when fn returns nil and rolls back otherwise; fn's error is
	// returned unchanged.
	InTx(ctx context.Context, fn func(Repos) error) error
}

type pgStore struct {
	db beginner
}

// NewStore constructs a Store. In production pass *pgxpool.Pool.
func NewStore(db beginner) Store {
	return &pgStore{db: db}
}

func (s *pgStore) InTx(ctx context.Context, fn func(Repos) error) error {
	return pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		return fn(NewRepos(tx))
	})
}
