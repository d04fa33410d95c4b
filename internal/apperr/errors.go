// Package apperr defines the error kinds shared by every component and their
// mapping to HTTP statuses. Callers classify with errors.Is; the concrete
// message wrapped around a sentinel is what the user sees.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthenticated means no verified caller identity was supplied.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrInvalidArgument means a required field is missing or malformed.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound means the referenced message, item or identity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the caller is not the addressed recipient.
	ErrForbidden = errors.New("forbidden")

	// ErrAlreadyResolved means the message already reached a terminal status.
	ErrAlreadyResolved = errors.New("already resolved")

	// ErrTransient marks storage or network failures that are safe to retry
	// unchanged.
	ErrTransient = errors.New("transient storage failure")
)

// Transient wraps a storage-layer error so callers can both classify it as
// retryable and keep the underlying cause in the chain.
func Transient(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrTransient, op, err)
}

// HTTPStatus maps an error to the status code the API layer responds with.
// Unclassified errors are treated as internal.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrAlreadyResolved):
		return http.StatusConflict
	case errors.Is(err, ErrTransient):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
