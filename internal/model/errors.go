package model

import (
	"fmt"
	"net/http"
	"strings"
)

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// HTTPError carries the status code and message rendered on the error page
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// NewValidationError folds field errors into a single 400 error
func NewValidationError(fields []FieldError) *HTTPError {
	msgs := make([]string, 0, len(fields))
	for _, fe := range fields {
		msgs = append(msgs, fe.Message)
	}
	return &HTTPError{
		StatusCode: http.StatusBadRequest,
		Message:    strings.Join(msgs, ", "),
	}
}

// NewNotFoundError creates a 404 error
func NewNotFoundError(message string) *HTTPError {
	return &HTTPError{StatusCode: http.StatusNotFound, Message: message}
}

// NewInternalError creates the catch-all 500 error
func NewInternalError() *HTTPError {
	return &HTTPError{StatusCode: http.StatusInternalServerError, Message: "Something went wrong"}
}
