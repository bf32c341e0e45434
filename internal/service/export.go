package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/tripjournal/backend/internal/domain"
	"github.com/tripjournal/backend/internal/repo"
)

// ExportService assembles a flat export of a trip's daily entries.
type ExportService struct {
	trips   repo.TripRepo
	entries repo.EntryRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(trips repo.TripRepo, entries repo.EntryRepo) *ExportService {
	return &ExportService{trips: trips, entries: entries}
}

// Export returns one ExportRow per daily entry in chronological order.
// A trip without entries yields an empty, non-nil slice.
func (s *ExportService) Export(ctx context.Context, owner domain.Owner, tripID uuid.UUID) ([]domain.ExportRow, error) {
	trip, err := s.trips.GetByID(ctx, owner, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", parentTripErr(err))
	}
	entries, err := s.entries.ListByTripID(ctx, owner, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := make([]domain.ExportRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, domain.ExportRow{
			TripID:   trip.ID.String(),
			TripName: trip.Name,
			Date:     e.Date,
			Category: e.Category,
			Currency: e.Currency,
			Expense:  e.Expense,
			Notes:    e.Notes,
		})
	}
	slices.SortStableFunc(rows, func(a, b domain.ExportRow) int {
		return a.Date.Compare(b.Date)
	})
	return rows, nil
}
