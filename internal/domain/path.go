package domain

import (
	"fmt"
	"strings"
)

// Names of the two child collections stored under every trip.
const (
	DailyEntriesCollection = "daily_entries"
	PhotosCollection       = "photos"
)

// ChildCollections lists every collection nested directly under a trip.
// Nothing is nested deeper than this.
var ChildCollections = []string{DailyEntriesCollection, PhotosCollection}

// TripPath addresses a trip document: {tenant}/users/{user}/trips/{tripId}.
// The components are opaque; they are not validated here.
type TripPath struct {
	Tenant string
	User   string
	TripID string
}

// String renders the path in its slash-separated form.
func (p TripPath) String() string {
	return fmt.Sprintf("%s/users/%s/trips/%s", p.Tenant, p.User, p.TripID)
}

// Collection returns the path of the named child collection under the trip.
func (p TripPath) Collection(name string) CollectionPath {
	return CollectionPath{Trip: p, Name: name}
}

// ParseTripPath parses "{tenant}/users/{user}/trips/{tripId}".
// Returns ErrValidation when the path does not have that shape.
func ParseTripPath(s string) (TripPath, error) {
	parts := strings.Split(strings.Trim(s, "/"), "/")
	if len(parts) != 5 || parts[1] != "users" || parts[3] != "trips" {
		return TripPath{}, fmt.Errorf("%w: malformed trip path %q", ErrValidation, s)
	}
	return TripPath{Tenant: parts[0], User: parts[2], TripID: parts[4]}, nil
}

// CollectionPath addresses a child collection of a trip,
// e.g. {tenant}/users/{user}/trips/{tripId}/photos.
type CollectionPath struct {
	Trip TripPath
	Name string
}

func (c CollectionPath) String() string {
	return c.Trip.String() + "/" + c.Name
}
