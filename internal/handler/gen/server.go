package gen

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// StrictServerInterface is implemented by the API handlers. Each operation
// receives its bound parameters and decoded body and returns one of the
// operation's response objects. A returned error becomes a response through
// StrictHTTPServerOptions.ResponseErrorHandlerFunc.
type StrictServerInterface interface {
	GetHealth(ctx context.Context, request GetHealthRequestObject) (GetHealthResponseObject, error)
	GetOpenAPI(ctx context.Context, request GetOpenAPIRequestObject) (GetOpenAPIResponseObject, error)
	ListTrips(ctx context.Context, request ListTripsRequestObject) (ListTripsResponseObject, error)
	CreateTrip(ctx context.Context, request CreateTripRequestObject) (CreateTripResponseObject, error)
	GetTrip(ctx context.Context, request GetTripRequestObject) (GetTripResponseObject, error)
	DeleteTrip(ctx context.Context, request DeleteTripRequestObject) (DeleteTripResponseObject, error)
	UpdateExperience(ctx context.Context, request UpdateExperienceRequestObject) (UpdateExperienceResponseObject, error)
	GetExport(ctx context.Context, request GetExportRequestObject) (GetExportResponseObject, error)
	ListEntries(ctx context.Context, request ListEntriesRequestObject) (ListEntriesResponseObject, error)
	CreateEntry(ctx context.Context, request CreateEntryRequestObject) (CreateEntryResponseObject, error)
	DeleteEntry(ctx context.Context, request DeleteEntryRequestObject) (DeleteEntryResponseObject, error)
	ListPhotos(ctx context.Context, request ListPhotosRequestObject) (ListPhotosResponseObject, error)
	CreatePhoto(ctx context.Context, request CreatePhotoRequestObject) (CreatePhotoResponseObject, error)
	DeletePhoto(ctx context.Context, request DeletePhotoRequestObject) (DeletePhotoResponseObject, error)
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// ---- health ----------------------------------------------------------------

type GetHealthRequestObject struct{}

type GetHealthResponseObject interface {
	VisitGetHealthResponse(w http.ResponseWriter) error
}

type GetHealth200JSONResponse HealthResponse

func (response GetHealth200JSONResponse) VisitGetHealthResponse(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusOK, response)
}

type GetOpenAPIRequestObject struct{}

type GetOpenAPIResponseObject interface {
	VisitGetOpenAPIResponse(w http.ResponseWriter) error
}

type GetOpenAPI200ApplicationyamlResponse struct {
	Body          io.Reader
	ContentLength int64
}

func (response GetOpenAPI200ApplicationyamlResponse) VisitGetOpenAPIResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/yaml")
	if response.ContentLength != 0 {
		w.Header().Set("Content-Length", fmt.Sprint(response.ContentLength))
	}
	w.WriteHeader(http.StatusOK)
	_, err := io.Copy(w, response.Body)
	return err
}

// ---- trips -----------------------------------------------------------------

type ListTripsRequestObject struct {
	Params ListTripsParams
}

type ListTripsResponseObject interface {
	VisitListTripsResponse(w http.ResponseWriter) error
}

type ListTrips200JSONResponse TripList

func (response ListTrips200JSONResponse) VisitListTripsResponse(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusOK, response)
}

type CreateTripRequestObject struct {
	Body *CreateTripJSONRequestBody
}

type CreateTripResponseObject interface {
	VisitCreateTripResponse(w http.ResponseWriter) error
}

type CreateTrip201JSONResponse Trip

func (response CreateTrip201JSONResponse) VisitCreateTripResponse(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusCreated, response)
}

type CreateTrip422JSONResponse ErrorResponse

func (response CreateTrip422JSONResponse) VisitCreateTripResponse(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusUnprocessableEntity, response)
}

type GetTripRequestObject struct {
	TripID openapi_types.UUID `json:"tripID"`
}

type GetTripResponseObject interface {
	VisitGetTripResponse(w http.ResponseWriter) error
}

type GetTrip200JSONResponse Trip

func (response GetTrip200JSONResponse) VisitGetTripResponse(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusOK, response)
}

type GetTrip404JSONResponse ErrorResponse

func (response GetTrip404JSONResponse) VisitGetTripResponse(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusNotFound, response)
}

type DeleteTripRequestObject struct {
	TripID openapi_types.UUID `json:"tripID"`
}

type DeleteTripResponseObject interface {
	VisitDeleteTripResponse(w http.ResponseWriter) error
}

type DeleteTrip204Response struct{}

func (response DeleteTrip204Response) VisitDeleteTripResponse(w http.ResponseWriter) error {
	w.WriteHeader(http.StatusNoContent)
	return nil
}

type DeleteTrip404JSONResponse ErrorResponse

func (response DeleteTrip404JSONResponse) VisitDeleteTripResponse(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusNotFound, response)
}

type UpdateExperienceRequestObject struct {
	TripID openapi_types.UUID `json:"tripID"`
	Body   *UpdateExperienceJSONRequestBody
}

type UpdateExperienceResponseObject interface {
	VisitUpdateExperienceResponse(w http.ResponseWriter) error
}

type UpdateExperience200JSONResponse Trip

func (response UpdateExperience200JSONResponse) VisitUpdateExperienceResponse(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusOK, response)
}

type UpdateExperience404JSONResponse ErrorResponse

func (response UpdateExperience404JSONResponse) VisitUpdateExperienceResponse(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusNotFound, response)
}

type UpdateExperience422JSONResponse ErrorResponse

func (response UpdateExperience422JSONResponse) VisitUpdateExperienceResponse(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusUnprocessableEntity, response)
}

// ---- export ----------------------------------------------------------------

type GetExportRequestObject struct {
	TripID openapi_types.UUID `json:"tripID"`
	Params GetExportParams
}

type GetExportResponseObject interface {
	VisitGetExportResponse(w http.ResponseWriter) error
}

type GetExport200JSONResponse []ExportRow

func (response GetExport200JSONResponse) VisitGetExportResponse(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusOK, response)
}

type GetExport200ResponseHeaders struct {
	ContentDisposition string
}

type GetExport200TextcsvResponse struct {
	Body          io.Reader
	Headers       GetExport200ResponseHeaders
	ContentLength int64
}

func (response GetExport200TextcsvResponse) VisitGetExportResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "text/csv")
	if response.ContentLength != 0 {
		w.Header().Set("Content-Length", fmt.Sprint(response.ContentLength))
	}
	if response.Headers.ContentDisposition != "" {
		w.Header().Set("Content-Disposition", response.Headers.ContentDisposition)
	}
	w.WriteHeader(http.StatusOK)
	_, err := io.Copy(w, response.Body)
	return err
}

type GetExport404JSONResponse ErrorResponse

func (response GetExport404JSONResponse) VisitGetExportResponse(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusNotFound, response)
}

type GetExport422JSONResponse ErrorResponse

func (response GetExport422JSONResponse) VisitGetExportResponse(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusUnprocessableEntity, response)
}

// ---- entries ---------------------------------------------------------------

type ListEntriesRequestObject struct {
	TripID openapi_types.UUID `json:"tripID"`
}

type ListEntriesResponseObject interface {
	VisitListEntriesResponse(w http.ResponseWriter) error
}

type ListEntries200JSONResponse EntryList

func (response ListEntries200JSONResponse) VisitListEntriesResponse(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusOK, response)
}

type ListEntries404JSONResponse ErrorResponse

func (response ListEntries404JSONResponse) VisitListEntriesResponse(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusNotFound, response)
}

type CreateEntryRequestObject struct {
	TripID openapi_types.UUID `json:"tripID"`
	Body   *CreateEntryJSONRequestBody
}

type CreateEntryResponseObject interface {
	VisitCreateEntryResponse(w http.ResponseWriter) error
}

type CreateEntry201JSONResponse Entry

func (response CreateEntry201JSONResponse) VisitCreateEntryResponse(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusCreated, response)
}

type CreateEntry404JSONResponse ErrorResponse

func (response CreateEntry404JSONResponse) VisitCreateEntryResponse(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusNotFound, response)
}

type CreateEntry422JSONResponse ErrorResponse

func (response CreateEntry422JSONResponse) VisitCreateEntryResponse(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusUnprocessableEntity, response)
}

type DeleteEntryRequestObject struct {
	TripID  openapi_types.UUID `json:"tripID"`
	EntryID openapi_types.UUID `json:"entryID"`
}

type DeleteEntryResponseObject interface {
	VisitDeleteEntryResponse(w http.ResponseWriter) error
}

type DeleteEntry204Response struct{}

func (response DeleteEntry204Response) VisitDeleteEntryResponse(w http.ResponseWriter) error {
	w.WriteHeader(http.StatusNoContent)
	return nil
}

type DeleteEntry404JSONResponse ErrorResponse

func (response DeleteEntry404JSONResponse) VisitDeleteEntryResponse(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusNotFound, response)
}

// ---- photos ----------------------------------------------------------------

type ListPhotosRequestObject struct {
	TripID openapi_types.UUID `json:"tripID"`
}

type ListPhotosResponseObject interface {
	VisitListPhotosResponse(w http.ResponseWriter) error
}

type ListPhotos200JSONResponse []Photo

func (response ListPhotos200JSONResponse) VisitListPhotosResponse(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusOK, response)
}

type ListPhotos404JSONResponse ErrorResponse

func (response ListPhotos404JSONResponse) VisitListPhotosResponse(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusNotFound, response)
}

type CreatePhotoRequestObject struct {
	TripID openapi_types.UUID `json:"tripID"`
	Body   *CreatePhotoJSONRequestBody
}

type CreatePhotoResponseObject interface {
	VisitCreatePhotoResponse(w http.ResponseWriter) error
}

type CreatePhoto201JSONResponse Photo

func (response CreatePhoto201JSONResponse) VisitCreatePhotoResponse(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusCreated, response)
}

type CreatePhoto404JSONResponse ErrorResponse

func (response CreatePhoto404JSONResponse) VisitCreatePhotoResponse(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusNotFound, response)
}

type CreatePhoto422JSONResponse ErrorResponse

func (response CreatePhoto422JSONResponse) VisitCreatePhotoResponse(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusUnprocessableEntity, response)
}

type DeletePhotoRequestObject struct {
	TripID  openapi_types.UUID `json:"tripID"`
	PhotoID openapi_types.UUID `json:"photoID"`
}

type DeletePhotoResponseObject interface {
	VisitDeletePhotoResponse(w http.ResponseWriter) error
}

type DeletePhoto204Response struct{}

func (response DeletePhoto204Response) VisitDeletePhotoResponse(w http.ResponseWriter) error {
	w.WriteHeader(http.StatusNoContent)
	return nil
}

type DeletePhoto404JSONResponse ErrorResponse

func (response DeletePhoto404JSONResponse) VisitDeletePhotoResponse(w http.ResponseWriter) error {
	return writeJSON(w, http.StatusNotFound, response)
}
