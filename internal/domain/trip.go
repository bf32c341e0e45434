// Package domain contains the core data types for the travel journal backend.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler, cascade).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Owner identifies who a trip belongs to. Tenant is the application instance
// (one deployment may host several), User is the identity provider subject.
type Owner struct {
	Tenant string
	User   string
}

// Trip is the top-level aggregate; daily entries and photos belong to a trip.
type Trip struct {
	ID         uuid.UUID
	Owner      Owner
	Name       string
	ImageURL   *string // nil when the trip has no cover image
	Experience string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Path returns the document path of the trip, used to address its child
// collections once the trip row itself is gone.
func (t Trip) Path() TripPath {
	return TripPath{Tenant: t.Owner.Tenant, User: t.Owner.User, TripID: t.ID.String()}
}
