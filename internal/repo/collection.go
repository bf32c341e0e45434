package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tripjournal/backend/internal/domain"
)

// collectionTables maps child collection names to the tables that hold them.
// Table names cannot be bound as query parameters, so only these are accepted.
var collectionTables = map[string]string{
	domain.DailyEntriesCollection: "daily_entries",
	domain.PhotosCollection:       "photos",
}

// CollectionStore exposes the child tables of trips as id-ordered document
// collections for the cascade job. It satisfies cascade.Store.
type CollectionStore struct {
	db db
}

// NewCollectionStore constructs a CollectionStore backed by the provided db connection.
func NewCollectionStore(db db) *CollectionStore {
	return &CollectionStore{db: db}
}

// Page returns up to limit ids from the collection in ascending id order.
// Child rows are keyed by trip_id alone; trip UUIDs are globally unique, so
// the tenant and user components of the path do not narrow the query.
func (s *CollectionStore) Page(ctx context.Context, coll domain.CollectionPath, limit int) ([]string, error) {
	table, tripID, err := resolve(coll)
	if err != nil {
		return nil, fmt.Errorf("repo.CollectionStore.Page: %w", err)
	}

	q := `SELECT id FROM ` + table + ` WHERE trip_id = @trip_id ORDER BY id LIMIT @limit`

	rows, err := s.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID, "limit": limit})
	if err != nil {
		return nil, fmt.Errorf("repo.CollectionStore.Page: %w", err)
	}
	ids, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (string, error) {
		var id uuid.UUID
		err := row.Scan(&id)
		return id.String(), err
	})
	if err != nil {
		return nil, fmt.Errorf("repo.CollectionStore.Page: scan: %w", err)
	}
	return ids, nil
}

// DeleteBatch removes the given rows with a single statement, so the batch
// commits or fails as a whole.
func (s *CollectionStore) DeleteBatch(ctx context.Context, coll domain.CollectionPath, ids []string) error {
	table, tripID, err := resolve(coll)
	if err != nil {
		return fmt.Errorf("repo.CollectionStore.DeleteBatch: %w", err)
	}

	keys := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		u, err := uuid.Parse(id)
		if err != nil {
			return fmt.Errorf("repo.CollectionStore.DeleteBatch: %w: bad id %q", domain.ErrValidation, id)
		}
		keys = append(keys, u)
	}

	q := `DELETE FROM ` + table + ` WHERE trip_id = @trip_id AND id = ANY(@ids)`

	if _, err := s.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID, "ids": keys}); err != nil {
		return fmt.Errorf("repo.CollectionStore.DeleteBatch: %w", err)
	}
	return nil
}

// resolve returns the table and parent trip id addressed by coll.
func resolve(coll domain.CollectionPath) (string, uuid.UUID, error) {
	table, ok := collectionTables[coll.Name]
	if !ok {
		return "", uuid.Nil, fmt.Errorf("%w: unknown collection %q", domain.ErrValidation, coll.Name)
	}
	tripID, err := uuid.Parse(coll.Trip.TripID)
	if err != nil {
		return "", uuid.Nil, fmt.Errorf("%w: bad trip id %q", domain.ErrValidation, coll.Trip.TripID)
	}
	return table, tripID, nil
}
