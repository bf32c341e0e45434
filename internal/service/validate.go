package service

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/tripjournal/backend/internal/domain"
)

// validate is shared by all services; *validator.Validate caches struct
// metadata and is safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names so messages match what clients sent.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	mustRegisterValidation(v, "currency", func(fl validator.FieldLevel) bool {
		return slices.Contains(domain.Currencies, domain.Currency(fl.Field().String()))
	})
	mustRegisterValidation(v, "category", func(fl validator.FieldLevel) bool {
		return slices.Contains(domain.Categories, domain.Category(fl.Field().String()))
	})
	return v
}

// mustRegisterValidation panics when a custom tag cannot be registered. A
// silently missing tag would let every value through.
func mustRegisterValidation(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("service: register %q validation: %v", tag, err))
	}
}

// check validates in and converts the first failure into a domain.ErrValidation
// with a human-readable message.
func check(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%w: %s is required", domain.ErrValidation, fe.Field())
	case "gte":
		return fmt.Errorf("%w: %s must not be negative", domain.ErrValidation, fe.Field())
	case "lte":
		return fmt.Errorf("%w: %s must be at most %s", domain.ErrValidation, fe.Field(), fe.Param())
	case "currency":
		return fmt.Errorf("%w: unsupported currency %q", domain.ErrValidation, fe.Value())
	case "category":
		return fmt.Errorf("%w: unsupported category %q", domain.ErrValidation, fe.Value())
	case "url", "startswith":
		return fmt.Errorf("%w: %s must be an http(s) URL", domain.ErrValidation, fe.Field())
	default:
		return fmt.Errorf("%w: %s is invalid", domain.ErrValidation, fe.Field())
	}
}
