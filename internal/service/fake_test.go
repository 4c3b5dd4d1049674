package service_test

import (
	"bytes"
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/repo"
)

// fakeStore is an in-memory test double for repo.Store.
// It keeps just enough state to exercise the service rules end to end:
// users by email, trips by id, and the trip children.
// Set failWith to make every repo call return that error.
type fakeStore struct {
	users       map[string]domain.User
	trips       map[uuid.UUID]domain.Trip
	itineraries []domain.Itinerary
	expenses    []domain.Expense
	clock       time.Time
	failWith    error
	txCount     int
}

func newFakeStore(emails ...string) *fakeStore {
	s := &fakeStore{
		users: map[string]domain.User{},
		trips: map[uuid.UUID]domain.Trip{},
		clock: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	for _, e := range emails {
		s.users[e] = domain.User{ID: uuid.New(), Email: e, CreatedAt: s.clock}
	}
	return s
}

// compile-time check: fakeStore must satisfy repo.Store.
var _ repo.Store = (*fakeStore)(nil)

func (s *fakeStore) InTx(_ context.Context, fn func(repo.Repos) error) error {
	s.txCount++
	return fn(repo.Repos{
		Users:       fakeUsers{s},
		Trips:       fakeTrips{s},
		Itineraries: fakeItineraries{s},
		Expenses:    fakeExpenses{s},
	})
}

// tick advances the fake clock so successive writes get increasing timestamps.
func (s *fakeStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *fakeStore) ownerEmail(id uuid.UUID) string {
	for _, u := range s.users {
		if u.ID == id {
			return u.Email
		}
	}
	return ""
}

// seedTrip stores a trip owned by email directly, bypassing the service.
func (s *fakeStore) seedTrip(email string, mod func(*domain.Trip)) domain.Trip {
	now := s.tick()
	t := domain.Trip{
		ID:         uuid.New(),
		OwnerID:    s.users[email].ID,
		OwnerEmail: email,
		Title:      "Seeded",
		StartDate:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Status:     domain.TripStatusPlanning,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if mod != nil {
		mod(&t)
	}
	s.trips[t.ID] = t
	return t
}

type fakeUsers struct{ s *fakeStore }

func (f fakeUsers) GetByEmail(_ context.Context, email string) (domain.User, error) {
	if f.s.failWith != nil {
		return domain.User{}, f.s.failWith
	}
	u, ok := f.s.users[email]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (f fakeUsers) Create(_ context.Context, email string) (domain.User, error) {
	u := domain.User{ID: uuid.New(), Email: email, CreatedAt: f.s.tick()}
	f.s.users[email] = u
	return u, nil
}

type fakeTrips struct{ s *fakeStore }

func (f fakeTrips) Create(_ context.Context, t domain.Trip) (domain.Trip, error) {
	if f.s.failWith != nil {
		return domain.Trip{}, f.s.failWith
	}
	now := f.s.tick()
	t.ID = uuid.New()
	t.OwnerEmail = f.s.ownerEmail(t.OwnerID)
	t.CreatedAt = now
	t.UpdatedAt = now
	f.s.trips[t.ID] = t
	return t, nil
}

func (f fakeTrips) GetByID(_ context.Context, id uuid.UUID) (domain.Trip, error) {
	if f.s.failWith != nil {
		return domain.Trip{}, f.s.failWith
	}
	t, ok := f.s.trips[id]
	if !ok {
		return domain.Trip{}, domain.ErrNotFound
	}
	return t, nil
}

func (f fakeTrips) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]domain.Trip, error) {
	if f.s.failWith != nil {
		return nil, f.s.failWith
	}
	var out []domain.Trip
	for _, t := range f.s.trips {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.After(out[j].StartDate)
		}
		return bytes.Compare(out[i].ID[:], out[j].ID[:]) < 0
	})
	return out, nil
}

func (f fakeTrips) Update(_ context.Context, t domain.Trip) (domain.Trip, error) {
	if f.s.failWith != nil {
		return domain.Trip{}, f.s.failWith
	}
	old, ok := f.s.trips[t.ID]
	if !ok {
		return domain.Trip{}, domain.ErrNotFound
	}
	t.OwnerID = old.OwnerID
	t.OwnerEmail = old.OwnerEmail
	t.CreatedAt = old.CreatedAt
	t.UpdatedAt = f.s.tick()
	f.s.trips[t.ID] = t
	return t, nil
}

func (f fakeTrips) Delete(_ context.Context, id uuid.UUID) error {
	if f.s.failWith != nil {
		return f.s.failWith
	}
	if _, ok := f.s.trips[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.s.trips, id)

	its := f.s.itineraries[:0]
	for _, it := range f.s.itineraries {
		if it.TripID != id {
			its = append(its, it)
		}
	}
	f.s.itineraries = its

	exps := f.s.expenses[:0]
	for _, e := range f.s.expenses {
		if e.TripID != id {
			exps = append(exps, e)
		}
	}
	f.s.expenses = exps
	return nil
}

type fakeItineraries struct{ s *fakeStore }

func (f fakeItineraries) Create(_ context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	it.ID = uuid.New()
	it.CreatedAt = f.s.tick()
	f.s.itineraries = append(f.s.itineraries, it)
	return it, nil
}

func (f fakeItineraries) ListByTripID(_ context.Context, tripID uuid.UUID) ([]domain.Itinerary, error) {
	var out []domain.Itinerary
	for _, it := range f.s.itineraries {
		if it.TripID == tripID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f fakeItineraries) CountByTripID(ctx context.Context, tripID uuid.UUID) (int, error) {
	list, err := f.ListByTripID(ctx, tripID)
	return len(list), err
}

type fakeExpenses struct{ s *fakeStore }

func (f fakeExpenses) Create(_ context.Context, e domain.Expense) (domain.Expense, error) {
	e.ID = uuid.New()
	e.CreatedAt = f.s.tick()
	f.s.expenses = append(f.s.expenses, e)
	return e, nil
}

func (f fakeExpenses) ListByTripIDPaged(_ context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.Expense, int64, error) {
	var all []domain.Expense
	for _, e := range f.s.expenses {
		if e.TripID == tripID {
			all = append(all, e)
		}
	}
	total := int64(len(all))
	start := min(p.Offset(), len(all))
	end := min(start+p.Limit, len(all))
	return all[start:end], total, nil
}

func (f fakeExpenses) AmountsByTripID(_ context.Context, tripID uuid.UUID) ([]decimal.Decimal, error) {
	var out []decimal.Decimal
	for _, e := range f.s.expenses {
		if e.TripID == tripID {
			out = append(out, e.Amount)
		}
	}
	return out, nil
}
