package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tripjournal/backend/internal/domain"
	"github.com/tripjournal/backend/internal/repo"
)

// EntryService implements business logic for Daily Entry operations.
// It holds the trips repo because every entry operation first verifies that
// the parent trip exists and belongs to the caller.
type EntryService struct {
	trips   repo.TripRepo
	entries repo.EntryRepo
}

// NewEntryService constructs an EntryService backed by the provided repos.
func NewEntryService(trips repo.TripRepo, entries repo.EntryRepo) *EntryService {
	return &EntryService{trips: trips, entries: entries}
}

type entryInput struct {
	Date     time.Time `json:"date" validate:"required"`
	Notes    string    `json:"notes" validate:"required"`
	Expense  float64   `json:"expense" validate:"gte=0,lte=9999999999.99"`
	Currency string    `json:"currency" validate:"currency"`
	Category string    `json:"category" validate:"category"`
}

// Create validates the entry, verifies the parent trip, then persists.
// Returns domain.ErrValidation if input violates business rules.
// Returns domain.ErrTripNotFound if the parent trip does not exist for owner.
func (s *EntryService) Create(ctx context.Context, owner domain.Owner, entry domain.DailyEntry) (domain.DailyEntry, error) {
	if _, err := s.trips.GetByID(ctx, owner, entry.TripID); err != nil {
		return domain.DailyEntry{}, fmt.Errorf("service.EntryService.Create: %w", parentTripErr(err))
	}

	entry.Notes = strings.TrimSpace(entry.Notes)
	if entry.Currency == "" {
		entry.Currency = domain.Currencies[0]
	}
	if entry.Category == "" {
		entry.Category = domain.Categories[0]
	}
	in := entryInput{
		Date:     entry.Date,
		Notes:    entry.Notes,
		Expense:  entry.Expense,
		Currency: string(entry.Currency),
		Category: string(entry.Category),
	}
	if err := check(in); err != nil {
		return domain.DailyEntry{}, err
	}

	result, err := s.entries.Create(ctx, owner, entry)
	if err != nil {
		return domain.DailyEntry{}, fmt.Errorf("service.EntryService.Create: %w", err)
	}
	return result, nil
}

// List returns the trip's entries, most recent date first, together with the
// expense totals per currency.
func (s *EntryService) List(ctx context.Context, owner domain.Owner, tripID uuid.UUID) ([]domain.DailyEntry, domain.ExpenseTotals, error) {
	if _, err := s.trips.GetByID(ctx, owner, tripID); err != nil {
		return nil, nil, fmt.Errorf("service.EntryService.List: %w", parentTripErr(err))
	}
	entries, err := s.entries.ListByTripID(ctx, owner, tripID)
	if err != nil {
		return nil, nil, fmt.Errorf("service.EntryService.List: %w", err)
	}
	if entries == nil {
		entries = []domain.DailyEntry{}
	}
	return entries, domain.SumExpenses(entries), nil
}

// Delete removes an entry from a trip owned by owner.
// Returns domain.ErrTripNotFound if the trip does not exist for owner and
// domain.ErrNotFound if the entry does not exist under it.
func (s *EntryService) Delete(ctx context.Context, owner domain.Owner, tripID, entryID uuid.UUID) error {
	if _, err := s.trips.GetByID(ctx, owner, tripID); err != nil {
		return fmt.Errorf("service.EntryService.Delete: %w", parentTripErr(err))
	}
	if err := s.entries.Delete(ctx, owner, tripID, entryID); err != nil {
		return fmt.Errorf("service.EntryService.Delete: %w", err)
	}
	return nil
}
