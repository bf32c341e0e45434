package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist, or does not belong to the caller.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrTripNotFound marks an ErrNotFound caused by the parent trip of an entry,
// photo or export rather than the child itself. errors.Is(err, ErrNotFound)
// still holds for it.
var ErrTripNotFound = fmt.Errorf("trip %w", ErrNotFound)

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, negative expense).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrUnauthorized is returned when a request carries no usable identity.
// Handlers should map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")
