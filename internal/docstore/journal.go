package docstore

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/tripjournal/backend/internal/domain"
)

const dateLayout = "2006-01-02"

type entryItem struct {
	PK        string    `dynamodbav:"pk"`
	SK        string    `dynamodbav:"sk"`
	TripID    string    `dynamodbav:"trip_id"`
	Date      string    `dynamodbav:"entry_date"`
	Notes     string    `dynamodbav:"notes"`
	Expense   float64   `dynamodbav:"expense"`
	Currency  string    `dynamodbav:"currency"`
	Category  string    `dynamodbav:"category"`
	CreatedAt time.Time `dynamodbav:"created_at"`
}

type photoItem struct {
	PK        string    `dynamodbav:"pk"`
	SK        string    `dynamodbav:"sk"`
	TripID    string    `dynamodbav:"trip_id"`
	URL       string    `dynamodbav:"url"`
	Filename  *string   `dynamodbav:"filename,omitempty"`
	CreatedAt time.Time `dynamodbav:"created_at"`
}

// EntryRepo stores daily entries as documents under
// {tenant}/users/{user}/trips/{tripId}/daily_entries. The trip itself lives
// in Postgres; callers verify it before writing here.
type EntryRepo struct {
	docs collection[entryItem]
	now  func() time.Time
}

// NewEntryRepo constructs an EntryRepo over table.
func NewEntryRepo(client API, table string) *EntryRepo {
	return &EntryRepo{
		docs: collection[entryItem]{client: client, table: table, name: domain.DailyEntriesCollection},
		now:  time.Now,
	}
}

// Create assigns the entry an id and creation time, then stores it.
func (r *EntryRepo) Create(ctx context.Context, owner domain.Owner, entry domain.DailyEntry) (domain.DailyEntry, error) {
	entry.ID = uuid.New()
	entry.CreatedAt = r.now().UTC()
	entry.Date = time.Date(entry.Date.Year(), entry.Date.Month(), entry.Date.Day(), 0, 0, 0, 0, time.UTC)

	item := entryItem{
		PK:        r.docs.path(owner, entry.TripID).String(),
		SK:        entry.ID.String(),
		TripID:    entry.TripID.String(),
		Date:      entry.Date.Format(dateLayout),
		Notes:     entry.Notes,
		Expense:   entry.Expense,
		Currency:  string(entry.Currency),
		Category:  string(entry.Category),
		CreatedAt: entry.CreatedAt,
	}
	if err := r.docs.put(ctx, item); err != nil {
		return domain.DailyEntry{}, fmt.Errorf("docstore.EntryRepo.Create: %w", err)
	}
	return entry, nil
}

// ListByTripID returns the trip's entries, most recent date first.
func (r *EntryRepo) ListByTripID(ctx context.Context, owner domain.Owner, tripID uuid.UUID) ([]domain.DailyEntry, error) {
	items, err := r.docs.list(ctx, r.docs.path(owner, tripID))
	if err != nil {
		return nil, fmt.Errorf("docstore.EntryRepo.ListByTripID: %w", err)
	}

	entries := make([]domain.DailyEntry, 0, len(items))
	for _, it := range items {
		e, err := it.toDomain()
		if err != nil {
			return nil, fmt.Errorf("docstore.EntryRepo.ListByTripID: item %s: %w", it.SK, err)
		}
		entries = append(entries, e)
	}
	slices.SortFunc(entries, func(a, b domain.DailyEntry) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return entries, nil
}

// Delete removes one entry.
// Returns domain.ErrNotFound if no entry with that id exists under the trip.
func (r *EntryRepo) Delete(ctx context.Context, owner domain.Owner, tripID, entryID uuid.UUID) error {
	if err := r.docs.delete(ctx, r.docs.path(owner, tripID), entryID.String()); err != nil {
		return fmt.Errorf("docstore.EntryRepo.Delete: %w", err)
	}
	return nil
}

func (it entryItem) toDomain() (domain.DailyEntry, error) {
	id, err := uuid.Parse(it.SK)
	if err != nil {
		return domain.DailyEntry{}, err
	}
	tripID, err := uuid.Parse(it.TripID)
	if err != nil {
		return domain.DailyEntry{}, err
	}
	date, err := time.Parse(dateLayout, it.Date)
	if err != nil {
		return domain.DailyEntry{}, err
	}
	return domain.DailyEntry{
		ID:        id,
		TripID:    tripID,
		Date:      date,
		Notes:     it.Notes,
		Expense:   it.Expense,
		Currency:  domain.Currency(it.Currency),
		Category:  domain.Category(it.Category),
		CreatedAt: it.CreatedAt,
	}, nil
}

// PhotoRepo stores photo links as documents under
// {tenant}/users/{user}/trips/{tripId}/photos.
type PhotoRepo struct {
	docs collection[photoItem]
	now  func() time.Time
}

// NewPhotoRepo constructs a PhotoRepo over table.
func NewPhotoRepo(client API, table string) *PhotoRepo {
	return &PhotoRepo{
		docs: collection[photoItem]{client: client, table: table, name: domain.PhotosCollection},
		now:  time.Now,
	}
}

// Create assigns the photo an id and creation time, then stores it.
func (r *PhotoRepo) Create(ctx context.Context, owner domain.Owner, photo domain.Photo) (domain.Photo, error) {
	photo.ID = uuid.New()
	photo.CreatedAt = r.now().UTC()

	item := photoItem{
		PK:        r.docs.path(owner, photo.TripID).String(),
		SK:        photo.ID.String(),
		TripID:    photo.TripID.String(),
		URL:       photo.URL,
		Filename:  photo.Filename,
		CreatedAt: photo.CreatedAt,
	}
	if err := r.docs.put(ctx, item); err != nil {
		return domain.Photo{}, fmt.Errorf("docstore.PhotoRepo.Create: %w", err)
	}
	return photo, nil
}

// ListByTripID returns the trip's photos, newest first.
func (r *PhotoRepo) ListByTripID(ctx context.Context, owner domain.Owner, tripID uuid.UUID) ([]domain.Photo, error) {
	items, err := r.docs.list(ctx, r.docs.path(owner, tripID))
	if err != nil {
		return nil, fmt.Errorf("docstore.PhotoRepo.ListByTripID: %w", err)
	}

	photos := make([]domain.Photo, 0, len(items))
	for _, it := range items {
		id, err := uuid.Parse(it.SK)
		if err != nil {
			return nil, fmt.Errorf("docstore.PhotoRepo.ListByTripID: item %s: %w", it.SK, err)
		}
		tid, err := uuid.Parse(it.TripID)
		if err != nil {
			return nil, fmt.Errorf("docstore.PhotoRepo.ListByTripID: item %s: %w", it.SK, err)
		}
		photos = append(photos, domain.Photo{
			ID:        id,
			TripID:    tid,
			URL:       it.URL,
			Filename:  it.Filename,
			CreatedAt: it.CreatedAt,
		})
	}
	slices.SortFunc(photos, func(a, b domain.Photo) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})
	return photos, nil
}

// Delete removes one photo.
// Returns domain.ErrNotFound if no photo with that id exists under the trip.
func (r *PhotoRepo) Delete(ctx context.Context, owner domain.Owner, tripID, photoID uuid.UUID) error {
	if err := r.docs.delete(ctx, r.docs.path(owner, tripID), photoID.String()); err != nil {
		return fmt.Errorf("docstore.PhotoRepo.Delete: %w", err)
	}
	return nil
}
