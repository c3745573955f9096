package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a referenced viewing, template or line
	// item does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when entity state forbids the operation:
	// deleting a referenced template, writing under an archived viewing.
	ErrConflict = errors.New("conflict")
)

// ValidationError carries a field-specific message for malformed input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
