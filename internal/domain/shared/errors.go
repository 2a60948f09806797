package shared

import (
	"errors"
	"fmt"
)

// Domain-specific errors
var (
	// Listing errors
	ErrListingNotFound    = errors.New("listing not found")
	ErrAttachmentNotFound = errors.New("attachment not found")

	// Permission errors
	ErrPermissionDenied = errors.New("actor is not the owner or an administrator")

	// Slug errors
	ErrSlugExhausted = errors.New("slug disambiguation attempts exhausted")

	// Database errors
	ErrDatabaseConnection = errors.New("database connection failed")
)

// ValidationError reports a malformed or out-of-range input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NewValidationError creates a field-level validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// InvalidTransitionError reports a status change outside the allowed chain.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("status transition %q -> %q is not allowed", e.From, e.To)
}

// StorageError wraps an underlying storage failure. The request that hit it
// is aborted; nothing is retried by this service.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err with the operation that failed.
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}
