package utils

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct checks the `validate` tags on a request DTO. Malformed
// payloads are rejected at the boundary instead of leaking zero values into
// the services.
func ValidateStruct(s any) error {
	return validate.Struct(s)
}
