package handler

import (
	"context"
	"errors"

	"github.com/tripjournal/backend/internal/auth"
	"github.com/tripjournal/backend/internal/domain"
	"github.com/tripjournal/backend/internal/handler/gen"
)

// ListPhotos handles GET /trips/{tripID}/photos, newest first.
func (s *Server) ListPhotos(ctx context.Context, req gen.ListPhotosRequestObject) (gen.ListPhotosResponseObject, error) {
	owner, err := auth.OwnerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	photos, err := s.photos.List(ctx, owner, req.TripID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return gen.ListPhotos404JSONResponse(notFoundBody("trip not found")), nil
		}
		return nil, err
	}

	out := make(gen.ListPhotos200JSONResponse, len(photos))
	for i, p := range photos {
		out[i] = photoToResponse(p)
	}
	return out, nil
}

// CreatePhoto handles POST /trips/{tripID}/photos.
func (s *Server) CreatePhoto(ctx context.Context, req gen.CreatePhotoRequestObject) (gen.CreatePhotoResponseObject, error) {
	owner, err := auth.OwnerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	created, err := s.photos.Create(ctx, owner, domain.Photo{
		TripID:   req.TripID,
		URL:      req.Body.Url,
		Filename: req.Body.Filename,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return gen.CreatePhoto404JSONResponse(notFoundBody("trip not found")), nil
		}
		if errors.Is(err, domain.ErrValidation) {
			return gen.CreatePhoto422JSONResponse(validationBody(err)), nil
		}
		return nil, err
	}

	return gen.CreatePhoto201JSONResponse(photoToResponse(created)), nil
}

// DeletePhoto handles DELETE /trips/{tripID}/photos/{photoID}.
func (s *Server) DeletePhoto(ctx context.Context, req gen.DeletePhotoRequestObject) (gen.DeletePhotoResponseObject, error) {
	owner, err := auth.OwnerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.photos.Delete(ctx, owner, req.TripID, req.PhotoID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return gen.DeletePhoto404JSONResponse(missingBody(err, "photo not found")), nil
		}
		return nil, err
	}

	return gen.DeletePhoto204Response{}, nil
}

func photoToResponse(p domain.Photo) gen.Photo {
	return gen.Photo{
		Id:        p.ID,
		TripId:    p.TripID,
		Url:       p.URL,
		Filename:  p.Filename,
		CreatedAt: p.CreatedAt,
	}
}
