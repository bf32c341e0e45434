// Package service contains the business logic for the travel journal backend.
// Services validate inputs, enforce ownership, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tripjournal/backend/internal/domain"
	"github.com/tripjournal/backend/internal/event"
	"github.com/tripjournal/backend/internal/repo"
)

// TripService implements business logic for Trip operations.
type TripService struct {
	repo   repo.TripRepo
	events event.Publisher
	log    *slog.Logger
	now    func() time.Time
}

// NewTripService constructs a TripService. Deletions are announced on events.
func NewTripService(r repo.TripRepo, events event.Publisher, log *slog.Logger) *TripService {
	return &TripService{repo: r, events: events, log: log, now: time.Now}
}

type tripInput struct {
	Name     string  `json:"name" validate:"required"`
	ImageURL *string `json:"image_url" validate:"omitempty,url,startswith=http"`
}

// Create validates and persists a new trip. The name is trimmed; an empty
// image URL is treated as absent.
// Returns domain.ErrValidation if input violates business rules.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	trip.Name = strings.TrimSpace(trip.Name)
	if trip.ImageURL != nil {
		u := strings.TrimSpace(*trip.ImageURL)
		trip.ImageURL = &u
		if u == "" {
			trip.ImageURL = nil
		}
	}
	if err := check(tripInput{Name: trip.Name, ImageURL: trip.ImageURL}); err != nil {
		return domain.Trip{}, err
	}

	result, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip owned by owner.
func (s *TripService) GetByID(ctx context.Context, owner domain.Owner, id uuid.UUID) (domain.Trip, error) {
	result, err := s.repo.GetByID(ctx, owner, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of the owner's trips, newest first, and the total count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListPaged(ctx context.Context, owner domain.Owner, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.repo.ListPaged(ctx, owner, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.ListPaged: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// UpdateExperience replaces the trip's experience summary. Any text, including
// an empty string, is accepted.
func (s *TripService) UpdateExperience(ctx context.Context, owner domain.Owner, id uuid.UUID, experience string) (domain.Trip, error) {
	result, err := s.repo.UpdateExperience(ctx, owner, id, experience)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.UpdateExperience: %w", err)
	}
	return result, nil
}

// Delete removes the trip and announces the deletion so its daily entries and
// photos are drained. Once the trip row is gone the delete has succeeded for
// the user: a failure to announce it is logged, not returned, and leaves the
// children behind until someone re-runs the cleanup.
func (s *TripService) Delete(ctx context.Context, owner domain.Owner, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, owner, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}

	path := domain.Trip{ID: id, Owner: owner}.Path()
	if err := s.events.PublishTripDeleted(ctx, event.NewTripDeleted(path, s.now())); err != nil {
		s.log.ErrorContext(ctx, "failed to publish trip deletion",
			"trip_id", id,
			"user_id", owner.User,
			"error", err,
		)
	}
	return nil
}
