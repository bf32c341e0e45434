// Package cascade removes the child collections of a deleted trip.
//
// A collection is drained by repeatedly fetching the lowest-ordered page of
// document ids and deleting that page as one atomic batch, until a fetch comes
// back empty. The id order is the only cursor: every committed batch removes
// exactly the lowest remaining ids, so re-running the same bounded query
// advances to the next page without offsets and without skipping documents.
package cascade

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/tripjournal/backend/internal/domain"
)

// BatchSize is the number of documents fetched and deleted per round trip.
const BatchSize = 100

// Store is the document store the job drains.
// Both repo.CollectionStore (Postgres) and docstore.DynamoStore satisfy it.
type Store interface {
	// Page returns up to limit document ids of the collection in ascending order.
	Page(ctx context.Context, coll domain.CollectionPath, limit int) ([]string, error)

	// DeleteBatch removes the given documents as a single atomic write.
	DeleteBatch(ctx context.Context, coll domain.CollectionPath, ids []string) error
}

// Job deletes every document under a trip's child collections.
type Job struct {
	store     Store
	batchSize int
	log       *slog.Logger
}

// NewJob constructs a Job that drains collections from store in pages of BatchSize.
func NewJob(store Store, log *slog.Logger) *Job {
	return &Job{store: store, batchSize: BatchSize, log: log}
}

// Run drains both child collections of trip concurrently and waits for both.
// The drains do not share a context: a failure in one leaves the other running
// to completion. The first failure is returned once both have stopped.
func (j *Job) Run(ctx context.Context, trip domain.TripPath) error {
	var g errgroup.Group
	for _, name := range domain.ChildCollections {
		coll := trip.Collection(name)
		g.Go(func() error {
			_, err := j.Drain(ctx, coll)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		j.log.ErrorContext(ctx, "error deleting trip subcollections",
			"trip_id", trip.TripID,
			"user_id", trip.User,
			"error", err,
		)
		return fmt.Errorf("cascade.Job.Run: trip %s: %w", trip.TripID, err)
	}

	j.log.InfoContext(ctx, "deleted trip subcollections",
		"trip_id", trip.TripID,
		"user_id", trip.User,
	)
	return nil
}

// Drain deletes every document in coll and returns how many were removed.
// Page N+1 is never fetched before page N has been committed. An error stops
// the drain at the failing page; documents already deleted stay deleted.
func (j *Job) Drain(ctx context.Context, coll domain.CollectionPath) (int, error) {
	deleted := 0
	for {
		ids, err := j.store.Page(ctx, coll, j.batchSize)
		if err != nil {
			return deleted, fmt.Errorf("query %s: %w", coll, err)
		}
		if len(ids) == 0 {
			return deleted, nil
		}

		if err := j.store.DeleteBatch(ctx, coll, ids); err != nil {
			return deleted, fmt.Errorf("delete batch from %s: %w", coll, err)
		}
		deleted += len(ids)

		j.log.DebugContext(ctx, "deleted batch",
			"collection", coll.String(),
			"batch", len(ids),
			"total", deleted,
		)
	}
}
