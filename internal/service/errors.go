package service

import (
	"errors"

	"github.com/tripjournal/backend/internal/domain"
)

// parentTripErr reports a missing parent trip as domain.ErrTripNotFound so
// callers can tell it apart from a missing child.
func parentTripErr(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrTripNotFound
	}
	return err
}
