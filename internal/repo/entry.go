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

// EntryRepo defines the persistence operations for Daily Entries.
// All operations are scoped by owner and tripID.
type EntryRepo interface {
	// Create inserts a new entry and returns the persisted record.
	// Returns domain.ErrNotFound if owner has no trip entry.TripID.
	Create(ctx context.Context, owner domain.Owner, entry domain.DailyEntry) (domain.DailyEntry, error)

	// ListByTripID returns all entries for a trip, most recent date first.
	ListByTripID(ctx context.Context, owner domain.Owner, tripID uuid.UUID) ([]domain.DailyEntry, error)

	// Delete removes an entry by ID, scoped to the given trip.
	// Returns domain.ErrNotFound if no entry with that ID exists under that trip.
	Delete(ctx context.Context, owner domain.Owner, tripID, entryID uuid.UUID) error
}

// pgEntryRepo is the Postgres implementation of EntryRepo.
type pgEntryRepo struct {
	db db
}

// NewEntryRepo constructs an EntryRepo backed by the provided db connection.
func NewEntryRepo(db db) EntryRepo {
	return &pgEntryRepo{db: db}
}

func (r *pgEntryRepo) Create(ctx context.Context, owner domain.Owner, entry domain.DailyEntry) (domain.DailyEntry, error) {
	const q = `
		INSERT INTO daily_entries (trip_id, entry_date, notes, expense, currency, category)
		SELECT t.id, @entry_date::date, @notes::text, @expense::numeric, @currency::text, @category::text
		FROM trips t
		WHERE t.id = @trip_id AND t.tenant_id = @tenant_id AND t.user_id = @user_id
		RETURNING id, trip_id, entry_date, notes, expense, currency, category, created_at`

	args := pgx.NamedArgs{
		"tenant_id":  owner.Tenant,
		"user_id":    owner.User,
		"trip_id":    entry.TripID,
		"entry_date": entry.Date,
		"notes":      entry.Notes,
		"expense":    entry.Expense,
		"currency":   string(entry.Currency),
		"category":   string(entry.Category),
	}

	result, err := scanEntry(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.DailyEntry{}, fmt.Errorf("repo.EntryRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgEntryRepo) ListByTripID(ctx context.Context, owner domain.Owner, tripID uuid.UUID) ([]domain.DailyEntry, error) {
	const q = `
		SELECT e.id, e.trip_id, e.entry_date, e.notes, e.expense, e.currency, e.category, e.created_at
		FROM daily_entries e
		JOIN trips t ON t.id = e.trip_id
		WHERE e.trip_id = @trip_id AND t.tenant_id = @tenant_id AND t.user_id = @user_id
		ORDER BY e.entry_date DESC, e.created_at DESC`

	args := pgx.NamedArgs{"trip_id": tripID, "tenant_id": owner.Tenant, "user_id": owner.User}
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.EntryRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	entries := []domain.DailyEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.EntryRepo.ListByTripID: scan: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.EntryRepo.ListByTripID: rows: %w", err)
	}
	return entries, nil
}

func (r *pgEntryRepo) Delete(ctx context.Context, owner domain.Owner, tripID, entryID uuid.UUID) error {
	const q = `
		DELETE FROM daily_entries e
		USING trips t
		WHERE e.id = @id AND e.trip_id = @trip_id
		  AND t.id = e.trip_id AND t.tenant_id = @tenant_id AND t.user_id = @user_id`

	args := pgx.NamedArgs{"id": entryID, "trip_id": tripID, "tenant_id": owner.Tenant, "user_id": owner.User}
	tag, err := r.db.Exec(ctx, q, args)
	if err != nil {
		return fmt.Errorf("repo.EntryRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.EntryRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanEntry maps a single database row into a domain.DailyEntry.
func scanEntry(s scanner) (domain.DailyEntry, error) {
	var (
		e                  domain.DailyEntry
		id, tripID         pgtype.UUID
		date               pgtype.Date
		currency, category string
	)
	err := s.Scan(&id, &tripID, &date, &e.Notes, &e.Expense, &currency, &category, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DailyEntry{}, domain.ErrNotFound
		}
		return domain.DailyEntry{}, err
	}
	e.ID = uuid.UUID(id.Bytes)
	e.TripID = uuid.UUID(tripID.Bytes)
	e.Date = date.Time
	e.Currency = domain.Currency(currency)
	e.Category = domain.Category(category)
	return e, nil
}
