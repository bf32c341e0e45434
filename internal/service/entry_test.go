package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripjournal/backend/internal/domain"
	"github.com/tripjournal/backend/internal/repo"
	"github.com/tripjournal/backend/internal/service"
)

// mockEntryRepo is a hand-written test double for repo.EntryRepo.
type mockEntryRepo struct {
	create       func(ctx context.Context, owner domain.Owner, entry domain.DailyEntry) (domain.DailyEntry, error)
	listByTripID func(ctx context.Context, owner domain.Owner, tripID uuid.UUID) ([]domain.DailyEntry, error)
	delete       func(ctx context.Context, owner domain.Owner, tripID, entryID uuid.UUID) error
}

func (m *mockEntryRepo) Create(ctx context.Context, owner domain.Owner, entry domain.DailyEntry) (domain.DailyEntry, error) {
	return m.create(ctx, owner, entry)
}
func (m *mockEntryRepo) ListByTripID(ctx context.Context, owner domain.Owner, tripID uuid.UUID) ([]domain.DailyEntry, error) {
	return m.listByTripID(ctx, owner, tripID)
}
func (m *mockEntryRepo) Delete(ctx context.Context, owner domain.Owner, tripID, entryID uuid.UUID) error {
	return m.delete(ctx, owner, tripID, entryID)
}

var _ repo.EntryRepo = (*mockEntryRepo)(nil)

func echoEntries() *mockEntryRepo {
	return &mockEntryRepo{
		create: func(_ context.Context, _ domain.Owner, e domain.DailyEntry) (domain.DailyEntry, error) { return e, nil },
	}
}

func validEntry(tripID uuid.UUID) domain.DailyEntry {
	return domain.DailyEntry{
		TripID:   tripID,
		Date:     time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
		Notes:    "Fushimi Inari before the crowds",
		Expense:  1200,
		Currency: domain.Currency("JPY"),
		Category: domain.Category("Activities"),
	}
}

// ---- Create tests ----------------------------------------------------------

func TestEntryService_Create_Valid(t *testing.T) {
	svc := service.NewEntryService(existingTrips(), echoEntries())

	got, err := svc.Create(context.Background(), testOwner, validEntry(uuid.New()))

	require.NoError(t, err)
	assert.Equal(t, "Fushimi Inari before the crowds", got.Notes)
	assert.Equal(t, domain.Currency("JPY"), got.Currency)
}

func TestEntryService_Create_DefaultsCurrencyAndCategory(t *testing.T) {
	svc := service.NewEntryService(existingTrips(), echoEntries())

	e := validEntry(uuid.New())
	e.Currency = ""
	e.Category = ""

	got, err := svc.Create(context.Background(), testOwner, e)

	require.NoError(t, err)
	assert.Equal(t, domain.Currencies[0], got.Currency)
	assert.Equal(t, domain.Categories[0], got.Category)
}

func TestEntryService_Create_ZeroExpenseAllowed(t *testing.T) {
	svc := service.NewEntryService(existingTrips(), echoEntries())

	e := validEntry(uuid.New())
	e.Expense = 0

	_, err := svc.Create(context.Background(), testOwner, e)

	assert.NoError(t, err)
}

func TestEntryService_Create_LargestStorableExpense(t *testing.T) {
	svc := service.NewEntryService(existingTrips(), echoEntries())

	e := validEntry(uuid.New())
	e.Expense = 9999999999.99
	got, err := svc.Create(context.Background(), testOwner, e)

	require.NoError(t, err)
	assert.Equal(t, 9999999999.99, got.Expense)
}

func TestEntryService_Create_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.DailyEntry)
		message string
	}{
		{
			name:    "blank notes",
			mutate:  func(e *domain.DailyEntry) { e.Notes = "  \n " },
			message: "notes is required",
		},
		{
			name:    "negative expense",
			mutate:  func(e *domain.DailyEntry) { e.Expense = -0.01 },
			message: "expense must not be negative",
		},
		{
			name:    "expense beyond stored precision",
			mutate:  func(e *domain.DailyEntry) { e.Expense = 1e10 },
			message: "expense must be at most 9999999999.99",
		},
		{
			name:    "unknown currency",
			mutate:  func(e *domain.DailyEntry) { e.Currency = "BTC" },
			message: `unsupported currency "BTC"`,
		},
		{
			name:    "unknown category",
			mutate:  func(e *domain.DailyEntry) { e.Category = "Gambling" },
			message: `unsupported category "Gambling"`,
		},
		{
			name:    "missing date",
			mutate:  func(e *domain.DailyEntry) { e.Date = time.Time{} },
			message: "date is required",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			entries := &mockEntryRepo{
				create: func(_ context.Context, _ domain.Owner, _ domain.DailyEntry) (domain.DailyEntry, error) {
					t.Fatal("repo must not be called for invalid input")
					return domain.DailyEntry{}, nil
				},
			}
			svc := service.NewEntryService(existingTrips(), entries)

			e := validEntry(uuid.New())
			tc.mutate(&e)
			_, err := svc.Create(context.Background(), testOwner, e)

			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.ErrorContains(t, err, tc.message)
		})
	}
}

func TestEntryService_Create_TripNotFound(t *testing.T) {
	svc := service.NewEntryService(missingTrips(), echoEntries())

	_, err := svc.Create(context.Background(), testOwner, validEntry(uuid.New()))

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, err, domain.ErrTripNotFound)
}

// ---- List tests ------------------------------------------------------------

func TestEntryService_List_WithTotals(t *testing.T) {
	tripID := uuid.New()
	entries := &mockEntryRepo{
		listByTripID: func(_ context.Context, owner domain.Owner, id uuid.UUID) ([]domain.DailyEntry, error) {
			assert.Equal(t, testOwner, owner)
			assert.Equal(t, tripID, id)
			return []domain.DailyEntry{
				{Expense: 1200, Currency: "JPY"},
				{Expense: 800, Currency: "JPY"},
				{Expense: 12.5, Currency: "USD"},
			}, nil
		},
	}
	svc := service.NewEntryService(existingTrips(), entries)

	got, totals, err := svc.List(context.Background(), testOwner, tripID)

	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.InDelta(t, 2000, totals["JPY"], 0.001)
	assert.InDelta(t, 12.5, totals["USD"], 0.001)
}

func TestEntryService_List_Empty(t *testing.T) {
	entries := &mockEntryRepo{
		listByTripID: func(_ context.Context, _ domain.Owner, _ uuid.UUID) ([]domain.DailyEntry, error) { return nil, nil },
	}
	svc := service.NewEntryService(existingTrips(), entries)

	got, totals, err := svc.List(context.Background(), testOwner, uuid.New())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, totals)
}

func TestEntryService_List_TripNotFound(t *testing.T) {
	svc := service.NewEntryService(missingTrips(), &mockEntryRepo{})

	_, _, err := svc.List(context.Background(), testOwner, uuid.New())

	assert.ErrorIs(t, err, domain.ErrTripNotFound)
}

// ---- Delete tests ----------------------------------------------------------

func TestEntryService_Delete(t *testing.T) {
	tripID, entryID := uuid.New(), uuid.New()
	var called bool
	entries := &mockEntryRepo{
		delete: func(_ context.Context, owner domain.Owner, gotTrip, gotEntry uuid.UUID) error {
			called = true
			assert.Equal(t, testOwner, owner)
			assert.Equal(t, tripID, gotTrip)
			assert.Equal(t, entryID, gotEntry)
			return nil
		},
	}
	svc := service.NewEntryService(existingTrips(), entries)

	err := svc.Delete(context.Background(), testOwner, tripID, entryID)

	require.NoError(t, err)
	assert.True(t, called)
}

func TestEntryService_Delete_OtherOwnersTrip(t *testing.T) {
	entries := &mockEntryRepo{
		delete: func(_ context.Context, _ domain.Owner, _, _ uuid.UUID) error {
			t.Fatal("entry delete must not run for a trip the caller does not own")
			return nil
		},
	}
	svc := service.NewEntryService(existingTrips(), entries)

	err := svc.Delete(context.Background(), domain.Owner{Tenant: "app-1", User: "intruder"}, uuid.New(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEntryService_Delete_TripNotFound(t *testing.T) {
	svc := service.NewEntryService(missingTrips(), &mockEntryRepo{})

	err := svc.Delete(context.Background(), testOwner, uuid.New(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrTripNotFound)
}

func TestEntryService_Delete_EntryNotFound(t *testing.T) {
	entries := &mockEntryRepo{
		delete: func(_ context.Context, _ domain.Owner, _, _ uuid.UUID) error { return domain.ErrNotFound },
	}
	svc := service.NewEntryService(existingTrips(), entries)

	err := svc.Delete(context.Background(), testOwner, uuid.New(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrTripNotFound, "the trip exists; only the entry is missing")
}

func TestEntryService_Delete_RepoError(t *testing.T) {
	repoErr := errors.New("connection reset")
	entries := &mockEntryRepo{
		delete: func(_ context.Context, _ domain.Owner, _, _ uuid.UUID) error { return repoErr },
	}
	svc := service.NewEntryService(existingTrips(), entries)

	err := svc.Delete(context.Background(), testOwner, uuid.New(), uuid.New())

	assert.ErrorIs(t, err, repoErr)
}
