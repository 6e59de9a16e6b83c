// Package errs defines the error taxonomy shared by the scoring core, the
// persistence layer and the RPC surface. Callers classify errors with
// errors.Is against the sentinels or with the Is* helpers.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates that a requested team, form or statistics target has no record.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that caller-provided input failed validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDataAccess indicates that the store was unreachable or rejected a query.
	ErrDataAccess = errors.New("data access failed")

	// ErrInvalidReference indicates a write that points at a record that does not exist.
	ErrInvalidReference = errors.New("invalid reference")
)

// ValidationError reports a missing or malformed field.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// NotFoundError reports that no record matched. Callers treat it as an empty result.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ReferenceError reports a foreign-key violation, e.g. a form for an unregistered team.
type ReferenceError struct {
	Resource string
	ID       string
	Err      error
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s %s does not exist", e.Resource, e.ID)
}

func (e *ReferenceError) Unwrap() error {
	return e.Err
}

// Is matches both ErrInvalidReference and ErrInvalidInput: the caller sent a bad key.
func (e *ReferenceError) Is(target error) bool {
	return target == ErrInvalidReference || target == ErrInvalidInput
}

func NewReferenceError(resource, id string, err error) *ReferenceError {
	return &ReferenceError{Resource: resource, ID: id, Err: err}
}

// DataAccessError wraps a store failure with the operation that hit it.
type DataAccessError struct {
	Operation string
	Err       error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("data access failed during %s: %v", e.Operation, e.Err)
}

func (e *DataAccessError) Unwrap() error {
	return e.Err
}

func (e *DataAccessError) Is(target error) bool {
	return target == ErrDataAccess
}

func NewDataAccessError(operation string, err error) *DataAccessError {
	return &DataAccessError{Operation: operation, Err: err}
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

func IsDataAccess(err error) bool {
	return errors.Is(err, ErrDataAccess)
}

func IsInvalidReference(err error) bool {
	return errors.Is(err, ErrInvalidReference)
}
