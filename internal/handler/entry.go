package handler

import (
	"context"
	"errors"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/tripjournal/backend/internal/auth"
	"github.com/tripjournal/backend/internal/domain"
	"github.com/tripjournal/backend/internal/handler/gen"
)

// ListEntries handles GET /trips/{tripID}/entries.
func (s *Server) ListEntries(ctx context.Context, req gen.ListEntriesRequestObject) (gen.ListEntriesResponseObject, error) {
	owner, err := auth.OwnerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	entries, totals, err := s.entries.List(ctx, owner, req.TripID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return gen.ListEntries404JSONResponse(notFoundBody("trip not found")), nil
		}
		return nil, err
	}

	resp := gen.ListEntries200JSONResponse{
		Data:   make([]gen.Entry, len(entries)),
		Totals: make(map[string]float64, len(totals)),
	}
	for i, e := range entries {
		resp.Data[i] = entryToResponse(e)
	}
	for currency, sum := range totals {
		resp.Totals[string(currency)] = sum
	}
	return resp, nil
}

// CreateEntry handles POST /trips/{tripID}/entries.
func (s *Server) CreateEntry(ctx context.Context, req gen.CreateEntryRequestObject) (gen.CreateEntryResponseObject, error) {
	owner, err := auth.OwnerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	created, err := s.entries.Create(ctx, owner, domain.DailyEntry{
		TripID:   req.TripID,
		Date:     req.Body.Date.Time,
		Notes:    req.Body.Notes,
		Expense:  req.Body.Expense,
		Currency: domain.Currency(req.Body.Currency),
		Category: domain.Category(req.Body.Category),
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return gen.CreateEntry404JSONResponse(notFoundBody("trip not found")), nil
		}
		if errors.Is(err, domain.ErrValidation) {
			return gen.CreateEntry422JSONResponse(validationBody(err)), nil
		}
		return nil, err
	}

	return gen.CreateEntry201JSONResponse(entryToResponse(created)), nil
}

// DeleteEntry handles DELETE /trips/{tripID}/entries/{entryID}.
func (s *Server) DeleteEntry(ctx context.Context, req gen.DeleteEntryRequestObject) (gen.DeleteEntryResponseObject, error) {
	owner, err := auth.OwnerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.entries.Delete(ctx, owner, req.TripID, req.EntryID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return gen.DeleteEntry404JSONResponse(missingBody(err, "entry not found")), nil
		}
		return nil, err
	}

	return gen.DeleteEntry204Response{}, nil
}

func entryToResponse(e domain.DailyEntry) gen.Entry {
	return gen.Entry{
		Id:        e.ID,
		TripId:    e.TripID,
		Date:      openapi_types.Date{Time: e.Date},
		Notes:     e.Notes,
		Expense:   e.Expense,
		Currency:  string(e.Currency),
		Category:  string(e.Category),
		CreatedAt: e.CreatedAt,
	}
}
