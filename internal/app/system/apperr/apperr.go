// internal/app/system/apperr/apperr.go

// Package apperr defines the error taxonomy shared by all feature
// handlers: a small set of kinds, each carrying a caller-safe message,
// mapped at the boundary to an HTTP status and the uniform
// {success:false, message} body.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for HTTP mapping.
type Kind int

const (
	// Internal is the fallback for uncategorized failures.
	Internal Kind = iota
	// NotFound: entity or sub-resource absent.
	NotFound
	// Conflict: uniqueness violation (duplicate email, duplicate slug).
	Conflict
	// Unauthorized: missing or invalid credential.
	Unauthorized
	// Forbidden: authenticated but insufficient role.
	Forbidden
	// Validation: malformed input rejected at the boundary.
	Validation
	// Upstream: object storage or geocoding call failed or returned an
	// unexpected status.
	Upstream
	// RateLimited: caller exceeded the sign-in attempt budget.
	RateLimited
)

// Error is a typed error with a caller-safe message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a typed error with a caller-safe message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a typed, caller-safe message to an underlying error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the Kind from err, or Internal if err is untyped.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// SafeMessage returns the caller-safe message for err. Untyped errors
// get a generic message so internals never leak to clients.
func SafeMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Something went wrong"
}

// HTTPStatus maps an error to its HTTP status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case Validation:
		return http.StatusUnprocessableEntity
	case Upstream:
		return http.StatusBadGateway
	case RateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
