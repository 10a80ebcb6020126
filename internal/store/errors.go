package store

import (
	"errors"
	"fmt"
)

// StoreError represents a failure detected by the storage layer.
//
// Storage errors include:
//   - Storage unavailable: the platform denied access (bad path, locked db)
//   - Duplicate key: Add with an id that already exists
//   - Not found: Get for an id that does not exist
//   - Unknown collection: a collection name outside the declared schema
//
// StoreError includes structured fields for diagnostics; callers dispatch
// on Code via the Is* helpers rather than matching message text.
type StoreError struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Collection identifies the affected collection, when applicable.
	Collection string

	// ID identifies the affected record, when applicable.
	ID string

	// Err is the underlying platform error, when one exists.
	Err error
}

// ErrorCode categorizes storage errors.
type ErrorCode string

const (
	// ErrCodeStorageUnavailable indicates the platform denied access to the store.
	// Fatal for the session; surfaced to the caller, never retried silently.
	ErrCodeStorageUnavailable ErrorCode = "STORAGE_UNAVAILABLE"

	// ErrCodeDuplicateKey indicates Add was called with an existing id.
	ErrCodeDuplicateKey ErrorCode = "DUPLICATE_KEY"

	// ErrCodeNotFound indicates the requested record does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeUnknownCollection indicates a collection name outside the schema.
	ErrCodeUnknownCollection ErrorCode = "UNKNOWN_COLLECTION"
)

// Error implements the error interface.
func (e *StoreError) Error() string {
	switch {
	case e.Collection != "" && e.ID != "":
		return fmt.Sprintf("%s: %s (collection=%s, id=%s)", e.Code, e.Message, e.Collection, e.ID)
	case e.Collection != "":
		return fmt.Sprintf("%s: %s (collection=%s)", e.Code, e.Message, e.Collection)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// Unwrap returns the underlying platform error, if any.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsDuplicateKey returns true if the error is a duplicate-key error.
// Uses errors.As to handle wrapped errors.
func IsDuplicateKey(err error) bool {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Code == ErrCodeDuplicateKey
	}
	return false
}

// IsNotFound returns true if the error is a not-found error.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Code == ErrCodeNotFound
	}
	return false
}

// IsStorageUnavailable returns true if the error indicates the platform
// denied access to the store. Uses errors.As to handle wrapped errors.
func IsStorageUnavailable(err error) bool {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Code == ErrCodeStorageUnavailable
	}
	return false
}

// NewDuplicateKeyError creates a StoreError for an Add on an existing id.
func NewDuplicateKeyError(collection, id string) *StoreError {
	return &StoreError{
		Code:       ErrCodeDuplicateKey,
		Message:    "record id already exists",
		Collection: collection,
		ID:         id,
	}
}

// NewNotFoundError creates a StoreError for a missing record.
func NewNotFoundError(collection, id string) *StoreError {
	return &StoreError{
		Code:       ErrCodeNotFound,
		Message:    "record does not exist",
		Collection: collection,
		ID:         id,
	}
}

// NewUnknownCollectionError creates a StoreError for an undeclared collection.
func NewUnknownCollectionError(collection string) *StoreError {
	return &StoreError{
		Code:       ErrCodeUnknownCollection,
		Message:    "collection is not part of the declared schema",
		Collection: collection,
	}
}

// NewStorageUnavailableError wraps a platform error as STORAGE_UNAVAILABLE.
func NewStorageUnavailableError(msg string, err error) *StoreError {
	return &StoreError{
		Code:    ErrCodeStorageUnavailable,
		Message: msg,
		Err:     err,
	}
}
