// Package apperr defines the error taxonomy shared by every service:
// typed errors carrying an HTTP-style status hint and a human-readable
// message. The HTTP layer maps them 1:1 to response codes.
package apperr

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Error is a request-scoped failure with a status hint.
type Error struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
}

func (e *Error) Error() string { return e.Message }

// Validation reports malformed or out-of-range input (400).
func Validation(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// Unauthorized reports a missing or invalid session (401).
func Unauthorized(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: message}
}

// Forbidden reports a role that is not on the allow-list (403).
func Forbidden(message string) *Error {
	return &Error{Status: http.StatusForbidden, Message: message}
}

// NotFound reports a missing team, car, part, driver or item (404).
func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

// Conflict reports a business-rule violation: duplicate name, max-cars
// exceeded, deleting a referenced item, finalizing an incomplete car (409).
func Conflict(message string) *Error {
	return &Error{Status: http.StatusConflict, Message: message}
}

// Insufficient reports a stock or budget shortfall. Surfaced as 400 so
// the caller can correct the request; the message carries the shortfall
// amounts for debuggability.
func Insufficient(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// Internal wraps unexpected failures (500).
func Internal(message string) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: message}
}

// StatusOf returns the status hint for err, defaulting to 500 for
// untyped errors.
func StatusOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// Write renders err as a JSON error response.
func Write(w http.ResponseWriter, err error) {
	status := StatusOf(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		var appErr *Error
		if !errors.As(err, &appErr) {
			message = "internal error"
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Error{Message: message})
}
