package custom_error

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError reports a missing or malformed input, including a quantity
// that exceeds the stock available.
type ValidationError struct {
	Message  string `json:"message"`
	Property string `json:"property,omitempty"`
}

func (e *ValidationError) Error() string {
	if e.Property == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Property, e.Message)
}

func NewValidationError(property, message string) *ValidationError {
	return &ValidationError{Property: property, Message: message}
}

type NotFoundError struct {
	Resource string
	ID       int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

func NewNotFoundError(resource string, id int) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ConflictError reports an operation that is invalid for the current state
// of a resource, e.g. fulfilling a request that is no longer pending.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(format string, args ...any) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// TransactionError wraps a failure inside an atomic unit of work. The
// underlying error is kept for logs but never shown to API clients.
type TransactionError struct {
	Op  string
	Err error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransactionError) Unwrap() error {
	return e.Err
}

// PublicMessage is the message returned to clients.
func (e *TransactionError) PublicMessage() string {
	return "could not complete " + e.Op
}

// StatusCode maps an error to the HTTP status the API answers with.
func StatusCode(err error) int {
	var (
		validationErr *ValidationError
		notFoundErr   *NotFoundError
		conflictErr   *ConflictError
		uniqueErr     *UniqueViolationError
		foreignKeyErr *ForeignKeyViolationError
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validationErr), errors.As(err, &foreignKeyErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &conflictErr), errors.As(err, &uniqueErr):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the client-facing text for err. Internal failures
// collapse to fallback so no database detail leaks out.
func PublicMessage(err error, fallback string) string {
	var txErr *TransactionError
	if errors.As(err, &txErr) {
		var validationErr *ValidationError
		var conflictErr *ConflictError
		if !errors.As(err, &validationErr) && !errors.As(err, &conflictErr) {
			return txErr.PublicMessage()
		}
	}

	if StatusCode(err) == http.StatusInternalServerError {
		return fallback
	}

	var uniqueErr *UniqueViolationError
	if errors.As(err, &uniqueErr) {
		return uniqueErr.PublicMessage()
	}
	var foreignKeyErr *ForeignKeyViolationError
	if errors.As(err, &foreignKeyErr) {
		return foreignKeyErr.PublicMessage()
	}

	return err.Error()
}
