// Package gen is the typed HTTP surface of the travel journal API described
// by spec/openapi.yaml. It mirrors the layout oapi-codegen produces for a chi
// strict server: wire types, one request and response object per operation,
// a StrictServerInterface for handlers to implement, and a router that binds
// path and query parameters with oapi-codegen's runtime.
package gen

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ErrorDetail carries a machine-readable code and a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// Trip is the JSON representation of a trip.
type Trip struct {
	Id         openapi_types.UUID `json:"id"`
	Name       string             `json:"name"`
	ImageUrl   *string            `json:"image_url,omitempty"`
	Experience string             `json:"experience"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// CreateTripRequest is the body of POST /trips.
type CreateTripRequest struct {
	Name     string  `json:"name"`
	ImageUrl *string `json:"image_url,omitempty"`
}

// UpdateExperienceRequest is the body of PUT /trips/{tripID}/experience.
type UpdateExperienceRequest struct {
	Experience *string `json:"experience"`
}

// Pagination describes the page returned by a list endpoint.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// TripList is the body of GET /trips.
type TripList struct {
	Data       []Trip     `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Entry is the JSON representation of a daily entry.
type Entry struct {
	Id        openapi_types.UUID `json:"id"`
	TripId    openapi_types.UUID `json:"trip_id"`
	Date      openapi_types.Date `json:"date"`
	Notes     string             `json:"notes"`
	Expense   float64            `json:"expense"`
	Currency  string             `json:"currency"`
	Category  string             `json:"category"`
	CreatedAt time.Time          `json:"created_at"`
}

// CreateEntryRequest is the body of POST /trips/{tripID}/entries.
// Currency and category take their defaults when omitted.
type CreateEntryRequest struct {
	Date     openapi_types.Date `json:"date"`
	Notes    string             `json:"notes"`
	Expense  float64            `json:"expense"`
	Currency string             `json:"currency,omitempty"`
	Category string             `json:"category,omitempty"`
}

// EntryList is the body of GET /trips/{tripID}/entries: the entries, newest
// day first, and the total spent per currency.
type EntryList struct {
	Data   []Entry            `json:"data"`
	Totals map[string]float64 `json:"totals"`
}

// Photo is the JSON representation of a photo link.
type Photo struct {
	Id        openapi_types.UUID `json:"id"`
	TripId    openapi_types.UUID `json:"trip_id"`
	Url       string             `json:"url"`
	Filename  *string            `json:"filename,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

// CreatePhotoRequest is the body of POST /trips/{tripID}/photos.
type CreatePhotoRequest struct {
	Url      string  `json:"url"`
	Filename *string `json:"filename,omitempty"`
}

// ExportRow is one line of the JSON export.
type ExportRow struct {
	TripId   openapi_types.UUID `json:"trip_id"`
	TripName string             `json:"trip_name"`
	Date     openapi_types.Date `json:"date"`
	Category string             `json:"category"`
	Currency string             `json:"currency"`
	Expense  float64            `json:"expense"`
	Notes    string             `json:"notes"`
}

// ListTripsParams defines parameters for ListTrips.
type ListTripsParams struct {
	Page  *int `form:"page,omitempty" json:"page,omitempty"`
	Limit *int `form:"limit,omitempty" json:"limit,omitempty"`
}

// GetExportParamsFormat defines the export formats.
type GetExportParamsFormat string

const (
	Csv  GetExportParamsFormat = "csv"
	Json GetExportParamsFormat = "json"
)

// GetExportParams defines parameters for GetExport.
type GetExportParams struct {
	Format *GetExportParamsFormat `form:"format,omitempty" json:"format,omitempty"`
}

// Request bodies.
type (
	CreateTripJSONRequestBody       = CreateTripRequest
	UpdateExperienceJSONRequestBody = UpdateExperienceRequest
	CreateEntryJSONRequestBody      = CreateEntryRequest
	CreatePhotoJSONRequestBody      = CreatePhotoRequest
)
