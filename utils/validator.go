// utils/validator.go - Input validation
package utils

import (
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct checks the `validate` tags of a form section.
func ValidateStruct(v any) error {
	return validate.Struct(v)
}

// Sanitize returns candidate when it is one of allowed, otherwise fallback.
// Unknown enum input is never an error.
func Sanitize(candidate string, allowed []string, fallback string) string {
	if slices.Contains(allowed, candidate) {
		return candidate
	}
	return fallback
}

// SanitizeInput removes potentially harmful characters
func SanitizeInput(input string) string {
	// Remove leading/trailing spaces
	input = strings.TrimSpace(input)

	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	return input
}
