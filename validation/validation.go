// Package validation wraps go-playground/validator behind a process-wide
// instance. The HTTP client uses it to check its own configuration and the
// typed decoder uses it to detect shape mismatches in decoded payloads.
package validation

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// getValidator returns the singleton validator instance.
func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Use json tag names for field names in error messages
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// Struct validates a struct using `validate` tags (required, min, max, url, ...).
// Returns validator.ValidationErrors on failure.
func Struct(s any) error {
	return getValidator().Struct(s)
}

// IsValidationError reports whether err is a field-validation failure
// (as opposed to a misuse of the validator itself).
func IsValidationError(err error) bool {
	_, ok := err.(validator.ValidationErrors)
	return ok
}
