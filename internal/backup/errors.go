package backup

import (
	"errors"
	"fmt"
)

// ValidationError reports a malformed snapshot document. It is always
// returned before any mutation: a snapshot that fails validation leaves
// the store byte-for-byte unchanged.
type ValidationError struct {
	// Field locates the problem ("extension", "size", "document",
	// "data", ...).
	Field string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("VALIDATION_ERROR: %s: %s", e.Field, e.Message)
}

// ImportError reports a failure while applying a snapshot. The store may be
// left inconsistent; the caller must trigger Rollback from the safety
// capture.
type ImportError struct {
	// Collection identifies where the apply stopped; "preferences" for
	// the preference phase.
	Collection string

	// Err is the underlying store error.
	Err error
}

// Error implements the error interface.
func (e *ImportError) Error() string {
	return fmt.Sprintf("IMPORT_FAILED: applying %s: %v", e.Collection, e.Err)
}

// Unwrap returns the underlying store error.
func (e *ImportError) Unwrap() error {
	return e.Err
}

// IsValidationError returns true if the error is a snapshot validation
// failure. Uses errors.As to handle wrapped errors.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsImportFailed returns true if the error is a partial-apply failure.
// Uses errors.As to handle wrapped errors.
func IsImportFailed(err error) bool {
	var ie *ImportError
	return errors.As(err, &ie)
}
