package gen

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	strictnethttp "github.com/oapi-codegen/runtime/strictmiddleware/nethttp"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type contextKey string

// BearerAuthScopes is set on the request context of every operation that
// requires a bearer token. Middlewares use it to tell secured routes from
// public ones.
const BearerAuthScopes contextKey = "bearerAuth.Scopes"

// ServerInterface is the low-level form of the API: parameters are bound,
// bodies are not.
type ServerInterface interface {
	GetHealth(w http.ResponseWriter, r *http.Request)
	GetOpenAPI(w http.ResponseWriter, r *http.Request)
	ListTrips(w http.ResponseWriter, r *http.Request, params ListTripsParams)
	CreateTrip(w http.ResponseWriter, r *http.Request)
	GetTrip(w http.ResponseWriter, r *http.Request, tripID openapi_types.UUID)
	DeleteTrip(w http.ResponseWriter, r *http.Request, tripID openapi_types.UUID)
	UpdateExperience(w http.ResponseWriter, r *http.Request, tripID openapi_types.UUID)
	GetExport(w http.ResponseWriter, r *http.Request, tripID openapi_types.UUID, params GetExportParams)
	ListEntries(w http.ResponseWriter, r *http.Request, tripID openapi_types.UUID)
	CreateEntry(w http.ResponseWriter, r *http.Request, tripID openapi_types.UUID)
	DeleteEntry(w http.ResponseWriter, r *http.Request, tripID openapi_types.UUID, entryID openapi_types.UUID)
	ListPhotos(w http.ResponseWriter, r *http.Request, tripID openapi_types.UUID)
	CreatePhoto(w http.ResponseWriter, r *http.Request, tripID openapi_types.UUID)
	DeletePhoto(w http.ResponseWriter, r *http.Request, tripID openapi_types.UUID, photoID openapi_types.UUID)
}

// InvalidParamFormatError reports a path or query parameter that could not be
// bound to its declared type.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error {
	return e.Err
}

type MiddlewareFunc func(http.Handler) http.Handler

// ServerInterfaceWrapper converts chi requests into ServerInterface calls.
// Middlewares run before parameters are bound, so a secured route rejects an
// unauthenticated caller whatever its path looks like.
type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	HandlerMiddlewares []MiddlewareFunc
	ErrorHandlerFunc   func(w http.ResponseWriter, r *http.Request, err error)
}

func (siw *ServerInterfaceWrapper) serve(w http.ResponseWriter, r *http.Request, secured bool, next http.HandlerFunc) {
	if secured {
		r = r.WithContext(context.WithValue(r.Context(), BearerAuthScopes, []string{}))
	}
	handler := http.Handler(next)
	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}
	handler.ServeHTTP(w, r)
}

func (siw *ServerInterfaceWrapper) pathUUID(w http.ResponseWriter, r *http.Request, name string) (openapi_types.UUID, bool) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: name, Err: err})
		return id, false
	}
	return id, true
}

func (siw *ServerInterfaceWrapper) queryParam(w http.ResponseWriter, r *http.Request, name string, dest any) bool {
	if err := runtime.BindRawQueryParameter("form", true, false, name, r.URL.RawQuery, dest); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: name, Err: err})
		return false
	}
	return true
}

// GetHealth operation middleware
func (siw *ServerInterfaceWrapper) GetHealth(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, false, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetHealth(w, r)
	})
}

// GetOpenAPI operation middleware
func (siw *ServerInterfaceWrapper) GetOpenAPI(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, false, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetOpenAPI(w, r)
	})
}

// ListTrips operation middleware
func (siw *ServerInterfaceWrapper) ListTrips(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, true, func(w http.ResponseWriter, r *http.Request) {
		var params ListTripsParams
		if !siw.queryParam(w, r, "page", &params.Page) || !siw.queryParam(w, r, "limit", &params.Limit) {
			return
		}
		siw.Handler.ListTrips(w, r, params)
	})
}

// CreateTrip operation middleware
func (siw *ServerInterfaceWrapper) CreateTrip(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, true, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.CreateTrip(w, r)
	})
}

// GetTrip operation middleware
func (siw *ServerInterfaceWrapper) GetTrip(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, true, func(w http.ResponseWriter, r *http.Request) {
		tripID, ok := siw.pathUUID(w, r, "tripID")
		if !ok {
			return
		}
		siw.Handler.GetTrip(w, r, tripID)
	})
}

// DeleteTrip operation middleware
func (siw *ServerInterfaceWrapper) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, true, func(w http.ResponseWriter, r *http.Request) {
		tripID, ok := siw.pathUUID(w, r, "tripID")
		if !ok {
			return
		}
		siw.Handler.DeleteTrip(w, r, tripID)
	})
}

// UpdateExperience operation middleware
func (siw *ServerInterfaceWrapper) UpdateExperience(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, true, func(w http.ResponseWriter, r *http.Request) {
		tripID, ok := siw.pathUUID(w, r, "tripID")
		if !ok {
			return
		}
		siw.Handler.UpdateExperience(w, r, tripID)
	})
}

// GetExport operation middleware
func (siw *ServerInterfaceWrapper) GetExport(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, true, func(w http.ResponseWriter, r *http.Request) {
		tripID, ok := siw.pathUUID(w, r, "tripID")
		if !ok {
			return
		}
		var params GetExportParams
		if !siw.queryParam(w, r, "format", &params.Format) {
			return
		}
		siw.Handler.GetExport(w, r, tripID, params)
	})
}

// ListEntries operation middleware
func (siw *ServerInterfaceWrapper) ListEntries(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, true, func(w http.ResponseWriter, r *http.Request) {
		tripID, ok := siw.pathUUID(w, r, "tripID")
		if !ok {
			return
		}
		siw.Handler.ListEntries(w, r, tripID)
	})
}

// CreateEntry operation middleware
func (siw *ServerInterfaceWrapper) CreateEntry(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, true, func(w http.ResponseWriter, r *http.Request) {
		tripID, ok := siw.pathUUID(w, r, "tripID")
		if !ok {
			return
		}
		siw.Handler.CreateEntry(w, r, tripID)
	})
}

// DeleteEntry operation middleware
func (siw *ServerInterfaceWrapper) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, true, func(w http.ResponseWriter, r *http.Request) {
		tripID, ok := siw.pathUUID(w, r, "tripID")
		if !ok {
			return
		}
		entryID, ok := siw.pathUUID(w, r, "entryID")
		if !ok {
			return
		}
		siw.Handler.DeleteEntry(w, r, tripID, entryID)
	})
}

// ListPhotos operation middleware
func (siw *ServerInterfaceWrapper) ListPhotos(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, true, func(w http.ResponseWriter, r *http.Request) {
		tripID, ok := siw.pathUUID(w, r, "tripID")
		if !ok {
			return
		}
		siw.Handler.ListPhotos(w, r, tripID)
	})
}

// CreatePhoto operation middleware
func (siw *ServerInterfaceWrapper) CreatePhoto(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, true, func(w http.ResponseWriter, r *http.Request) {
		tripID, ok := siw.pathUUID(w, r, "tripID")
		if !ok {
			return
		}
		siw.Handler.CreatePhoto(w, r, tripID)
	})
}

// DeletePhoto operation middleware
func (siw *ServerInterfaceWrapper) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, true, func(w http.ResponseWriter, r *http.Request) {
		tripID, ok := siw.pathUUID(w, r, "tripID")
		if !ok {
			return
		}
		photoID, ok := siw.pathUUID(w, r, "photoID")
		if !ok {
			return
		}
		siw.Handler.DeletePhoto(w, r, tripID, photoID)
	})
}

// ChiServerOptions configures HandlerWithOptions.
type ChiServerOptions struct {
	BaseURL          string
	BaseRouter       chi.Router
	Middlewares      []MiddlewareFunc
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// Handler creates an http.Handler with routing matching the API description.
func Handler(si ServerInterface) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{})
}

// HandlerWithOptions creates an http.Handler with additional options.
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	wrapper := ServerInterfaceWrapper{
		Handler:            si,
		HandlerMiddlewares: options.Middlewares,
		ErrorHandlerFunc:   options.ErrorHandlerFunc,
	}

	base := options.BaseURL
	r.Get(base+"/healthz", wrapper.GetHealth)
	r.Get(base+"/openapi.yaml", wrapper.GetOpenAPI)
	r.Get(base+"/trips", wrapper.ListTrips)
	r.Post(base+"/trips", wrapper.CreateTrip)
	r.Get(base+"/trips/{tripID}", wrapper.GetTrip)
	r.Delete(base+"/trips/{tripID}", wrapper.DeleteTrip)
	r.Put(base+"/trips/{tripID}/experience", wrapper.UpdateExperience)
	r.Get(base+"/trips/{tripID}/export", wrapper.GetExport)
	r.Get(base+"/trips/{tripID}/entries", wrapper.ListEntries)
	r.Post(base+"/trips/{tripID}/entries", wrapper.CreateEntry)
	r.Delete(base+"/trips/{tripID}/entries/{entryID}", wrapper.DeleteEntry)
	r.Get(base+"/trips/{tripID}/photos", wrapper.ListPhotos)
	r.Post(base+"/trips/{tripID}/photos", wrapper.CreatePhoto)
	r.Delete(base+"/trips/{tripID}/photos/{photoID}", wrapper.DeletePhoto)

	return r
}

// ---- strict server -----------------------------------------------------------

type StrictHandlerFunc = strictnethttp.StrictHTTPHandlerFunc
type StrictMiddlewareFunc = strictnethttp.StrictHTTPMiddlewareFunc

// StrictHTTPServerOptions maps request and response errors onto HTTP
// responses. RequestErrorHandlerFunc sees body decoding failures;
// ResponseErrorHandlerFunc sees errors returned by handlers.
type StrictHTTPServerOptions struct {
	RequestErrorHandlerFunc  func(w http.ResponseWriter, r *http.Request, err error)
	ResponseErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// NewStrictHandler adapts a StrictServerInterface to a ServerInterface.
func NewStrictHandler(ssi StrictServerInterface, middlewares []StrictMiddlewareFunc) ServerInterface {
	return &strictHandler{ssi: ssi, middlewares: middlewares, options: StrictHTTPServerOptions{
		RequestErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		},
		ResponseErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		},
	}}
}

// NewStrictHandlerWithOptions is NewStrictHandler with custom error mapping.
func NewStrictHandlerWithOptions(ssi StrictServerInterface, middlewares []StrictMiddlewareFunc, options StrictHTTPServerOptions) ServerInterface {
	return &strictHandler{ssi: ssi, middlewares: middlewares, options: options}
}

type strictHandler struct {
	ssi         StrictServerInterface
	middlewares []StrictMiddlewareFunc
	options     StrictHTTPServerOptions
}

// handle runs one operation through the strict middlewares and writes the
// response object it returns.
func handle[Req, Resp any](
	sh *strictHandler, w http.ResponseWriter, r *http.Request, operationID string, request Req,
	call func(context.Context, Req) (Resp, error),
	visit func(Resp, http.ResponseWriter) error,
) {
	handler := func(ctx context.Context, w http.ResponseWriter, r *http.Request, request interface{}) (interface{}, error) {
		return call(ctx, request.(Req))
	}
	for _, middleware := range sh.middlewares {
		handler = middleware(handler, operationID)
	}

	response, err := handler(r.Context(), w, r, request)
	if err != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, err)
	} else if validResponse, ok := response.(Resp); ok {
		if err := visit(validResponse, w); err != nil {
			sh.options.ResponseErrorHandlerFunc(w, r, err)
		}
	} else if response != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, fmt.Errorf("unexpected response type: %T", response))
	}
}

// decodeBody reads the JSON request body of an operation.
func decodeBody[T any](sh *strictHandler, w http.ResponseWriter, r *http.Request) (*T, bool) {
	var body T
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		sh.options.RequestErrorHandlerFunc(w, r, fmt.Errorf("can't decode JSON body: %w", err))
		return nil, false
	}
	return &body, true
}

func (sh *strictHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	handle(sh, w, r, "GetHealth", GetHealthRequestObject{},
		sh.ssi.GetHealth, GetHealthResponseObject.VisitGetHealthResponse)
}

func (sh *strictHandler) GetOpenAPI(w http.ResponseWriter, r *http.Request) {
	handle(sh, w, r, "GetOpenAPI", GetOpenAPIRequestObject{},
		sh.ssi.GetOpenAPI, GetOpenAPIResponseObject.VisitGetOpenAPIResponse)
}

func (sh *strictHandler) ListTrips(w http.ResponseWriter, r *http.Request, params ListTripsParams) {
	handle(sh, w, r, "ListTrips", ListTripsRequestObject{Params: params},
		sh.ssi.ListTrips, ListTripsResponseObject.VisitListTripsResponse)
}

func (sh *strictHandler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeBody[CreateTripJSONRequestBody](sh, w, r)
	if !ok {
		return
	}
	handle(sh, w, r, "CreateTrip", CreateTripRequestObject{Body: body},
		sh.ssi.CreateTrip, CreateTripResponseObject.VisitCreateTripResponse)
}

func (sh *strictHandler) GetTrip(w http.ResponseWriter, r *http.Request, tripID openapi_types.UUID) {
	handle(sh, w, r, "GetTrip", GetTripRequestObject{TripID: tripID},
		sh.ssi.GetTrip, GetTripResponseObject.VisitGetTripResponse)
}

func (sh *strictHandler) DeleteTrip(w http.ResponseWriter, r *http.Request, tripID openapi_types.UUID) {
	handle(sh, w, r, "DeleteTrip", DeleteTripRequestObject{TripID: tripID},
		sh.ssi.DeleteTrip, DeleteTripResponseObject.VisitDeleteTripResponse)
}

func (sh *strictHandler) UpdateExperience(w http.ResponseWriter, r *http.Request, tripID openapi_types.UUID) {
	body, ok := decodeBody[UpdateExperienceJSONRequestBody](sh, w, r)
	if !ok {
		return
	}
	handle(sh, w, r, "UpdateExperience", UpdateExperienceRequestObject{TripID: tripID, Body: body},
		sh.ssi.UpdateExperience, UpdateExperienceResponseObject.VisitUpdateExperienceResponse)
}

func (sh *strictHandler) GetExport(w http.ResponseWriter, r *http.Request, tripID openapi_types.UUID, params GetExportParams) {
	handle(sh, w, r, "GetExport", GetExportRequestObject{TripID: tripID, Params: params},
		sh.ssi.GetExport, GetExportResponseObject.VisitGetExportResponse)
}

func (sh *strictHandler) ListEntries(w http.ResponseWriter, r *http.Request, tripID openapi_types.UUID) {
	handle(sh, w, r, "ListEntries", ListEntriesRequestObject{TripID: tripID},
		sh.ssi.ListEntries, ListEntriesResponseObject.VisitListEntriesResponse)
}

func (sh *strictHandler) CreateEntry(w http.ResponseWriter, r *http.Request, tripID openapi_types.UUID) {
	body, ok := decodeBody[CreateEntryJSONRequestBody](sh, w, r)
	if !ok {
		return
	}
	handle(sh, w, r, "CreateEntry", CreateEntryRequestObject{TripID: tripID, Body: body},
		sh.ssi.CreateEntry, CreateEntryResponseObject.VisitCreateEntryResponse)
}

func (sh *strictHandler) DeleteEntry(w http.ResponseWriter, r *http.Request, tripID openapi_types.UUID, entryID openapi_types.UUID) {
	handle(sh, w, r, "DeleteEntry", DeleteEntryRequestObject{TripID: tripID, EntryID: entryID},
		sh.ssi.DeleteEntry, DeleteEntryResponseObject.VisitDeleteEntryResponse)
}

func (sh *strictHandler) ListPhotos(w http.ResponseWriter, r *http.Request, tripID openapi_types.UUID) {
	handle(sh, w, r, "ListPhotos", ListPhotosRequestObject{TripID: tripID},
		sh.ssi.ListPhotos, ListPhotosResponseObject.VisitListPhotosResponse)
}

func (sh *strictHandler) CreatePhoto(w http.ResponseWriter, r *http.Request, tripID openapi_types.UUID) {
	body, ok := decodeBody[CreatePhotoJSONRequestBody](sh, w, r)
	if !ok {
		return
	}
	handle(sh, w, r, "CreatePhoto", CreatePhotoRequestObject{TripID: tripID, Body: body},
		sh.ssi.CreatePhoto, CreatePhotoResponseObject.VisitCreatePhotoResponse)
}

func (sh *strictHandler) DeletePhoto(w http.ResponseWriter, r *http.Request, tripID openapi_types.UUID, photoID openapi_types.UUID) {
	handle(sh, w, r, "DeletePhoto", DeletePhotoRequestObject{TripID: tripID, PhotoID: photoID},
		sh.ssi.DeletePhoto, DeletePhotoResponseObject.VisitDeletePhotoResponse)
}
