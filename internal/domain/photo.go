package domain

import (
	"time"

	"github.com/google/uuid"
)

// Photo is a link to an image hosted elsewhere. Only the reference is stored.
type Photo struct {
	ID        uuid.UUID
	TripID    uuid.UUID
	URL       string
	Filename  *string // nil when the photo was added by URL only
	CreatedAt time.Time
}
