package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError is returned when a request is missing or has a malformed parameter.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError is returned when no row exists for the requested identity.
type NotFoundError struct {
	Resource string
	ID       any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// StoreError wraps a failure of the underlying store and names the operation
// that was in progress, e.g. "starring the recipe".
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("an error occurred while %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Validation builds a ValidationError for a query parameter.
func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NotFound builds a NotFoundError.
func NotFound(resource string, id any) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// Store wraps err in a StoreError unless it is nil.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

// IsNotFound reports whether err carries a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// Response is the JSON error body returned to clients.
type Response struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Translate maps an error to the HTTP status and body clients receive.
// Validation and not-found errors are found through any wrapping, so a
// StoreError around a NotFoundError still renders as 404.
func Translate(err error) (int, Response) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, Response{Message: ve.Message}
	}

	var nf *NotFoundError
	if errors.As(err, &nf) {
		return http.StatusNotFound, Response{Message: fmt.Sprintf("%s not found", nf.Resource)}
	}

	var se *StoreError
	if errors.As(err, &se) {
		return http.StatusInternalServerError, Response{
			Message: "An error occurred while " + se.Op,
			Error:   se.Err.Error(),
		}
	}

	return http.StatusInternalServerError, Response{
		Message: "Internal server error",
		Error:   err.Error(),
	}
}
