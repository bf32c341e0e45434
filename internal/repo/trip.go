// Package repo contains all Postgres access logic for the travel journal backend.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tripjournal/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo defines the persistence operations for Trips.
// Every operation is scoped by owner: a trip belonging to someone else
// behaves exactly like a trip that does not exist.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with DB-generated
	// id, created_at, and updated_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip owned by owner.
	// Returns domain.ErrNotFound if no such trip exists.
	GetByID(ctx context.Context, owner domain.Owner, id uuid.UUID) (domain.Trip, error)

	// ListPaged returns one page of the owner's trips, newest first, and the total count.
	ListPaged(ctx context.Context, owner domain.Owner, p domain.PaginationParams) ([]domain.Trip, int64, error)

	// UpdateExperience overwrites the experience text of a trip and returns the
	// updated record. Returns domain.ErrNotFound if no such trip exists.
	UpdateExperience(ctx context.Context, owner domain.Owner, id uuid.UUID, experience string) (domain.Trip, error)

	// Delete removes the trip row only; child collections are left for the
	// cascade job. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, owner domain.Owner, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, tenant_id, user_id, name, image_url, experience, created_at, updated_at`

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (tenant_id, user_id, name, image_url, experience)
		VALUES (@tenant_id, @user_id, @name, @image_url, @experience)
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"tenant_id":  trip.Owner.Tenant,
		"user_id":    trip.Owner.User,
		"name":       trip.Name,
		"image_url":  trip.ImageURL, // nil becomes NULL
		"experience": trip.Experience,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a trip by primary key, scoped to owner.
func (r *pgTripRepo) GetByID(ctx context.Context, owner domain.Owner, id uuid.UUID) (domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE id = @id AND tenant_id = @tenant_id AND user_id = @user_id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, ownerArgs(owner, id)))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of trips ordered by created_at descending and the
// total number of trips the owner has.
func (r *pgTripRepo) ListPaged(ctx context.Context, owner domain.Owner, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	const countQ = `SELECT count(*) FROM trips WHERE tenant_id = @tenant_id AND user_id = @user_id`
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE tenant_id = @tenant_id AND user_id = @user_id
		ORDER BY created_at DESC, id
		LIMIT @limit OFFSET @offset`

	args := pgx.NamedArgs{
		"tenant_id": owner.Tenant,
		"user_id":   owner.User,
		"limit":     p.Limit,
		"offset":    p.Offset(),
	}

	var total int64
	if err := r.db.QueryRow(ctx, countQ, args).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: count: %w", err)
	}

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: rows: %w", err)
	}

	return trips, total, nil
}

// UpdateExperience overwrites the experience text and bumps updated_at.
func (r *pgTripRepo) UpdateExperience(ctx context.Context, owner domain.Owner, id uuid.UUID, experience string) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET experience = @experience,
		    updated_at = now()
		WHERE id = @id AND tenant_id = @tenant_id AND user_id = @user_id
		RETURNING ` + tripColumns

	args := ownerArgs(owner, id)
	args["experience"] = experience

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.UpdateExperience: %w", err)
	}
	return result, nil
}

// Delete removes a trip by primary key, scoped to owner.
func (r *pgTripRepo) Delete(ctx context.Context, owner domain.Owner, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id AND tenant_id = @tenant_id AND user_id = @user_id`

	tag, err := r.db.Exec(ctx, q, ownerArgs(owner, id))
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func ownerArgs(owner domain.Owner, id uuid.UUID) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":        id,
		"tenant_id": owner.Tenant,
		"user_id":   owner.User,
	}
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan helpers
// to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
// It handles the UUID and nullable image_url conversions.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t        domain.Trip
		id       pgtype.UUID
		imageURL pgtype.Text
	)

	err := s.Scan(&id, &t.Owner.Tenant, &t.Owner.User, &t.Name, &imageURL, &t.Experience, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	if imageURL.Valid {
		u := imageURL.String
		t.ImageURL = &u
	}

	return t, nil
}
