package api

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// FieldIssue describes a single validation problem in a rejected payload.
type FieldIssue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Error is a failure response from the API.
type Error struct {
	StatusCode int
	Message    string
	Issues     []FieldIssue
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether the error is an authentication failure.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsNotFound reports whether the error is a missing-entity response.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsTransport reports whether the error is a network failure rather than a
// response from the server.
func IsTransport(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *Error
	return !errors.As(err, &apiErr)
}
