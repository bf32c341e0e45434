// Package handler implements the HTTP handlers for the travel journal API.
// All handlers are methods on Server, which implements gen.StrictServerInterface.
// Methods are split into domain-specific files (health.go, trip.go, entry.go, ...)
// but share the same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/tripjournal/backend/internal/domain"
	"github.com/tripjournal/backend/internal/handler/gen"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, owner domain.Owner, id uuid.UUID) (domain.Trip, error)
	ListPaged(ctx context.Context, owner domain.Owner, p domain.PaginationParams) ([]domain.Trip, int64, error)
	UpdateExperience(ctx context.Context, owner domain.Owner, id uuid.UUID, experience string) (domain.Trip, error)
	Delete(ctx context.Context, owner domain.Owner, id uuid.UUID) error
}

// EntryServicer defines the daily entry operations.
type EntryServicer interface {
	Create(ctx context.Context, owner domain.Owner, entry domain.DailyEntry) (domain.DailyEntry, error)
	List(ctx context.Context, owner domain.Owner, tripID uuid.UUID) ([]domain.DailyEntry, domain.ExpenseTotals, error)
	Delete(ctx context.Context, owner domain.Owner, tripID, entryID uuid.UUID) error
}

// PhotoServicer defines the photo operations.
type PhotoServicer interface {
	Create(ctx context.Context, owner domain.Owner, photo domain.Photo) (domain.Photo, error)
	List(ctx context.Context, owner domain.Owner, tripID uuid.UUID) ([]domain.Photo, error)
	Delete(ctx context.Context, owner domain.Owner, tripID, photoID uuid.UUID) error
}

// Exporter produces the flat expense export of a trip.
type Exporter interface {
	Export(ctx context.Context, owner domain.Owner, tripID uuid.UUID) ([]domain.ExportRow, error)
}

// Server implements gen.StrictServerInterface for all API endpoints.
// Methods are in domain-specific files but all operate on this struct.
type Server struct {
	trips   TripServicer
	entries EntryServicer
	photos  PhotoServicer
	export  Exporter
	log     *slog.Logger
}

var _ gen.StrictServerInterface = (*Server)(nil)

// NewServer constructs the Server with all its dependencies.
// Any servicer may be nil when its routes are not exercised (e.g. in tests).
func NewServer(trips TripServicer, entries EntryServicer, photos PhotoServicer, export Exporter, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{trips: trips, entries: entries, photos: photos, export: export, log: log}
}

// Routes returns the API router. authn guards every operation that needs a
// bearer token; the health check and the API description stay public.
// gen.NewStrictHandlerWithOptions adapts Server to the lower-level
// ServerInterface the chi router expects.
func (s *Server) Routes(authn func(http.Handler) http.Handler) http.Handler {
	strict := gen.NewStrictHandlerWithOptions(s, nil, gen.StrictHTTPServerOptions{
		RequestErrorHandlerFunc:  requestError,
		ResponseErrorHandlerFunc: s.responseError,
	})
	return gen.HandlerWithOptions(strict, gen.ChiServerOptions{
		Middlewares:      []gen.MiddlewareFunc{securedOnly(authn)},
		ErrorHandlerFunc: paramError,
	})
}

// securedOnly applies authn to operations that declare bearer auth.
func securedOnly(authn func(http.Handler) http.Handler) gen.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		secured := authn(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Context().Value(gen.BearerAuthScopes) == nil {
				next.ServeHTTP(w, r)
				return
			}
			secured.ServeHTTP(w, r)
		})
	}
}
