package handler

import (
	"context"
	"errors"

	"github.com/tripjournal/backend/internal/auth"
	"github.com/tripjournal/backend/internal/domain"
	"github.com/tripjournal/backend/internal/handler/gen"
)

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(ctx context.Context, req gen.CreateTripRequestObject) (gen.CreateTripResponseObject, error) {
	owner, err := auth.OwnerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	created, err := s.trips.Create(ctx, domain.Trip{
		Owner:    owner,
		Name:     req.Body.Name,
		ImageURL: req.Body.ImageUrl,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return gen.CreateTrip422JSONResponse(validationBody(err)), nil
		}
		return nil, err
	}

	return gen.CreateTrip201JSONResponse(tripToResponse(created)), nil
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(ctx context.Context, req gen.ListTripsRequestObject) (gen.ListTripsResponseObject, error) {
	owner, err := auth.OwnerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	params := domain.NewPaginationParams(req.Params.Page, req.Params.Limit)
	trips, total, err := s.trips.ListPaged(ctx, owner, params)
	if err != nil {
		return nil, err
	}

	data := make([]gen.Trip, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	return gen.ListTrips200JSONResponse{
		Data: data,
		Pagination: gen.Pagination{
			Page:       params.Page,
			Limit:      params.Limit,
			Total:      int(total),
			TotalPages: params.TotalPages(total),
		},
	}, nil
}

// GetTrip handles GET /trips/{tripID}.
func (s *Server) GetTrip(ctx context.Context, req gen.GetTripRequestObject) (gen.GetTripResponseObject, error) {
	owner, err := auth.OwnerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	trip, err := s.trips.GetByID(ctx, owner, req.TripID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return gen.GetTrip404JSONResponse(notFoundBody("trip not found")), nil
		}
		return nil, err
	}

	return gen.GetTrip200JSONResponse(tripToResponse(trip)), nil
}

// UpdateExperience handles PUT /trips/{tripID}/experience.
// An empty string clears the text; a missing field is rejected.
func (s *Server) UpdateExperience(ctx context.Context, req gen.UpdateExperienceRequestObject) (gen.UpdateExperienceResponseObject, error) {
	owner, err := auth.OwnerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if req.Body.Experience == nil {
		return gen.UpdateExperience422JSONResponse(requestBody("experience is required")), nil
	}

	updated, err := s.trips.UpdateExperience(ctx, owner, req.TripID, *req.Body.Experience)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return gen.UpdateExperience404JSONResponse(notFoundBody("trip not found")), nil
		}
		if errors.Is(err, domain.ErrValidation) {
			return gen.UpdateExperience422JSONResponse(validationBody(err)), nil
		}
		return nil, err
	}

	return gen.UpdateExperience200JSONResponse(tripToResponse(updated)), nil
}

// DeleteTrip handles DELETE /trips/{tripID}. The trip's entries and photos
// are removed afterwards by the cleanup job.
func (s *Server) DeleteTrip(ctx context.Context, req gen.DeleteTripRequestObject) (gen.DeleteTripResponseObject, error) {
	owner, err := auth.OwnerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.trips.Delete(ctx, owner, req.TripID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return gen.DeleteTrip404JSONResponse(notFoundBody("trip not found")), nil
		}
		return nil, err
	}

	return gen.DeleteTrip204Response{}, nil
}

// tripToResponse converts a domain.Trip into the gen.Trip wire type.
func tripToResponse(t domain.Trip) gen.Trip {
	return gen.Trip{
		Id:         t.ID,
		Name:       t.Name,
		ImageUrl:   t.ImageURL,
		Experience: t.Experience,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}
