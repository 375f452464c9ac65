package utils

import "errors"

var (
	// ErrValidation marks bad caller input
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks a missing or foreign-owned record
	ErrNotFound = errors.New("not found")
)

// ValidationError carries a user-facing message for bad input
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a ValidationError
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// NotFoundError names the missing resource
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a NotFoundError, e.g. NewNotFoundError("API key")
func NewNotFoundError(resource string) error {
	return &NotFoundError{Resource: resource}
}
