package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tripjournal/backend/internal/domain"
)

// PhotoRepo defines the persistence operations for Photos.
// All operations are scoped by owner and tripID.
type PhotoRepo interface {
	// Create inserts a new photo reference and returns the persisted record.
	// Returns domain.ErrNotFound if owner has no trip photo.TripID.
	Create(ctx context.Context, owner domain.Owner, photo domain.Photo) (domain.Photo, error)

	// ListByTripID returns all photos for a trip, newest first.
	ListByTripID(ctx context.Context, owner domain.Owner, tripID uuid.UUID) ([]domain.Photo, error)

	// Delete removes a photo by ID, scoped to the given trip.
	// Returns domain.ErrNotFound if no photo with that ID exists under that trip.
	Delete(ctx context.Context, owner domain.Owner, tripID, photoID uuid.UUID) error
}

type pgPhotoRepo struct {
	db db
}

// NewPhotoRepo constructs a PhotoRepo backed by the provided db connection.
func NewPhotoRepo(db db) PhotoRepo {
	return &pgPhotoRepo{db: db}
}

func (r *pgPhotoRepo) Create(ctx context.Context, owner domain.Owner, photo domain.Photo) (domain.Photo, error) {
	const q = `
		INSERT INTO photos (trip_id, url, filename)
		SELECT t.id, @url::text, @filename::text
		FROM trips t
		WHERE t.id = @trip_id AND t.tenant_id = @tenant_id AND t.user_id = @user_id
		RETURNING id, trip_id, url, filename, created_at`

	args := pgx.NamedArgs{
		"tenant_id": owner.Tenant,
		"user_id":   owner.User,
		"trip_id":   photo.TripID,
		"url":       photo.URL,
		"filename":  photo.Filename,
	}

	result, err := scanPhoto(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Photo{}, fmt.Errorf("repo.PhotoRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgPhotoRepo) ListByTripID(ctx context.Context, owner domain.Owner, tripID uuid.UUID) ([]domain.Photo, error) {
	const q = `
		SELECT p.id, p.trip_id, p.url, p.filename, p.created_at
		FROM photos p
		JOIN trips t ON t.id = p.trip_id
		WHERE p.trip_id = @trip_id AND t.tenant_id = @tenant_id AND t.user_id = @user_id
		ORDER BY p.created_at DESC, p.id`

	args := pgx.NamedArgs{"trip_id": tripID, "tenant_id": owner.Tenant, "user_id": owner.User}
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.PhotoRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	photos := []domain.Photo{}
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.PhotoRepo.ListByTripID: scan: %w", err)
		}
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.PhotoRepo.ListByTripID: rows: %w", err)
	}
	return photos, nil
}

func (r *pgPhotoRepo) Delete(ctx context.Context, owner domain.Owner, tripID, photoID uuid.UUID) error {
	const q = `
		DELETE FROM photos p
		USING trips t
		WHERE p.id = @id AND p.trip_id = @trip_id
		  AND t.id = p.trip_id AND t.tenant_id = @tenant_id AND t.user_id = @user_id`

	args := pgx.NamedArgs{"id": photoID, "trip_id": tripID, "tenant_id": owner.Tenant, "user_id": owner.User}
	tag, err := r.db.Exec(ctx, q, args)
	if err != nil {
		return fmt.Errorf("repo.PhotoRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.PhotoRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func scanPhoto(s scanner) (domain.Photo, error) {
	var (
		p          domain.Photo
		id, tripID pgtype.UUID
		filename   pgtype.Text
	)
	err := s.Scan(&id, &tripID, &p.URL, &filename, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Photo{}, domain.ErrNotFound
		}
		return domain.Photo{}, err
	}
	p.ID = uuid.UUID(id.Bytes)
	p.TripID = uuid.UUID(tripID.Bytes)
	if filename.Valid {
		f := filename.String
		p.Filename = &f
	}
	return p, nil
}
