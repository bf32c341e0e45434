package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tripjournal/backend/internal/domain"
	"github.com/tripjournal/backend/internal/repo"
)

// PhotoService implements business logic for Photo operations.
type PhotoService struct {
	trips  repo.TripRepo
	photos repo.PhotoRepo
}

// NewPhotoService constructs a PhotoService backed by the provided repos.
func NewPhotoService(trips repo.TripRepo, photos repo.PhotoRepo) *PhotoService {
	return &PhotoService{trips: trips, photos: photos}
}

type photoInput struct {
	URL string `json:"url" validate:"required,url,startswith=http"`
}

// Create stores a link to an externally hosted image.
// Returns domain.ErrValidation for a missing or non-http URL,
// domain.ErrTripNotFound if the trip does not exist for owner.
func (s *PhotoService) Create(ctx context.Context, owner domain.Owner, photo domain.Photo) (domain.Photo, error) {
	if _, err := s.trips.GetByID(ctx, owner, photo.TripID); err != nil {
		return domain.Photo{}, fmt.Errorf("service.PhotoService.Create: %w", parentTripErr(err))
	}

	photo.URL = strings.TrimSpace(photo.URL)
	if photo.Filename != nil && strings.TrimSpace(*photo.Filename) == "" {
		photo.Filename = nil
	}
	if err := check(photoInput{URL: photo.URL}); err != nil {
		return domain.Photo{}, err
	}

	result, err := s.photos.Create(ctx, owner, photo)
	if err != nil {
		return domain.Photo{}, fmt.Errorf("service.PhotoService.Create: %w", err)
	}
	return result, nil
}

// List returns the trip's photos, newest first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *PhotoService) List(ctx context.Context, owner domain.Owner, tripID uuid.UUID) ([]domain.Photo, error) {
	if _, err := s.trips.GetByID(ctx, owner, tripID); err != nil {
		return nil, fmt.Errorf("service.PhotoService.List: %w", parentTripErr(err))
	}
	photos, err := s.photos.ListByTripID(ctx, owner, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.PhotoService.List: %w", err)
	}
	if photos == nil {
		return []domain.Photo{}, nil
	}
	return photos, nil
}

// Delete removes a photo from a trip owned by owner.
func (s *PhotoService) Delete(ctx context.Context, owner domain.Owner, tripID, photoID uuid.UUID) error {
	if _, err := s.trips.GetByID(ctx, owner, tripID); err != nil {
		return fmt.Errorf("service.PhotoService.Delete: %w", parentTripErr(err))
	}
	if err := s.photos.Delete(ctx, owner, tripID, photoID); err != nil {
		return fmt.Errorf("service.PhotoService.Delete: %w", err)
	}
	return nil
}
