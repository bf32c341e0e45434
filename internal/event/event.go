// Package event carries trip deletions from the API to the cascade job,
// either through EventBridge (consumed by the trip-cleanup Lambda) or
// in-process when no event bus is configured.
package event

import (
	"context"
	"time"

	"github.com/tripjournal/backend/internal/domain"
)

// EventBridge envelope values for trip deletions.
const (
	Source            = "travel-journal.api"
	DetailTypeDeleted = "TripDeleted"
)

// TripDeleted is the detail payload published when a trip row is removed.
type TripDeleted struct {
	TenantID   string    `json:"tenant_id"`
	UserID     string    `json:"user_id"`
	TripID     string    `json:"trip_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewTripDeleted builds the event for a trip that was just deleted.
func NewTripDeleted(trip domain.TripPath, at time.Time) TripDeleted {
	return TripDeleted{
		TenantID:   trip.Tenant,
		UserID:     trip.User,
		TripID:     trip.TripID,
		OccurredAt: at.UTC(),
	}
}

// Path returns the path of the deleted trip.
func (e TripDeleted) Path() domain.TripPath {
	return domain.TripPath{Tenant: e.TenantID, User: e.UserID, TripID: e.TripID}
}

// Publisher announces trip deletions.
type Publisher interface {
	PublishTripDeleted(ctx context.Context, e TripDeleted) error
}

// Runner runs the cascade for one trip. *cascade.Job satisfies it.
type Runner interface {
	Run(ctx context.Context, trip domain.TripPath) error
}
