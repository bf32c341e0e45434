package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tripjournal/backend/internal/domain"
	"github.com/tripjournal/backend/internal/handler/gen"
)

// notFoundBody returns an ErrorResponse for a missing resource.
// The caller supplies the human-readable message (e.g. "trip not found")
// because the handler is the layer that knows what was being looked up.
func notFoundBody(message string) gen.ErrorResponse {
	return gen.ErrorResponse{Error: gen.ErrorDetail{Code: "not_found", Message: message}}
}

// missingBody is notFoundBody for a lookup under a trip: when the trip itself
// is gone the message names the trip, otherwise it names what.
func missingBody(err error, what string) gen.ErrorResponse {
	if errors.Is(err, domain.ErrTripNotFound) {
		return notFoundBody("trip not found")
	}
	return notFoundBody(what)
}

// validationBody returns an ErrorResponse for a domain validation failure.
// The message is extracted from the wrapped domain.ErrValidation error.
func validationBody(err error) gen.ErrorResponse {
	return gen.ErrorResponse{Error: gen.ErrorDetail{Code: "validation_error", Message: unwrapMessage(err)}}
}

// requestBody returns an ErrorResponse for a bad request rejected before
// reaching the service layer (e.g. missing or malformed body).
func requestBody(message string) gen.ErrorResponse {
	return gen.ErrorResponse{Error: gen.ErrorDetail{Code: "validation_error", Message: message}}
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.TripService.Create: validation error: name is required" → "name is required"
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	prefix := domain.ErrValidation.Error() + ": "
	if _, rest, ok := strings.Cut(msg, prefix); ok && rest != "" {
		return rest
	}
	return msg
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// paramError answers a path or query parameter the router could not bind.
// No resource can live at a malformed id, so bad ids are a 404; bad query
// values are a 422.
func paramError(w http.ResponseWriter, _ *http.Request, err error) {
	var invalid *gen.InvalidParamFormatError
	if !errors.As(err, &invalid) {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}
	switch invalid.ParamName {
	case "tripID":
		writeJSON(w, http.StatusNotFound, notFoundBody("trip not found"))
	case "entryID":
		writeJSON(w, http.StatusNotFound, notFoundBody("entry not found"))
	case "photoID":
		writeJSON(w, http.StatusNotFound, notFoundBody("photo not found"))
	default:
		writeJSON(w, http.StatusUnprocessableEntity,
			requestBody(fmt.Sprintf("invalid value for %s", invalid.ParamName)))
	}
}

// requestError answers a JSON body that could not be decoded.
func requestError(w http.ResponseWriter, _ *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		writeJSON(w, http.StatusRequestEntityTooLarge,
			gen.ErrorResponse{Error: gen.ErrorDetail{Code: "request_too_large", Message: "request body too large"}})
	case errors.Is(err, io.EOF):
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("request body is required"))
	default:
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("malformed request body"))
	}
}

// responseError answers an error a handler returned instead of a typed
// response. Anything unexpected is logged and reported as a bare 500 so
// internals never reach the client.
func (s *Server) responseError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized,
			gen.ErrorResponse{Error: gen.ErrorDetail{Code: "unauthorized", Message: "authentication required"}})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, missingBody(err, "not found"))
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
	default:
		s.log.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeJSON(w, http.StatusInternalServerError,
			gen.ErrorResponse{Error: gen.ErrorDetail{Code: "internal_error", Message: "internal server error"}})
	}
}
