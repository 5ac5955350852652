// Package apperrors defines the domain error kinds shared by services,
// repositories and handlers. Handlers map kinds to HTTP status codes in a
// single place instead of matching on error strings.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind identifies a class of domain failure with a stable name.
type Kind int

const (
	// KindUnknown is an unexpected, unclassified failure.
	KindUnknown Kind = iota
	// KindConflict is a uniqueness violation (duplicate username, email or report id).
	KindConflict
	// KindUnauthorized is a bad credential or a missing/invalid token.
	KindUnauthorized
	// KindForbidden is an authenticated request without permission.
	KindForbidden
	// KindNotFound means no such entity exists.
	KindNotFound
	// KindInvalidInput is an enum or range violation.
	KindInvalidInput
	// KindUpstream means the blob store was unreachable or rejected the upload.
	KindUpstream
)

// String returns the stable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindInvalidInput:
		return "invalid_input"
	case KindUpstream:
		return "upstream_failure"
	default:
		return "unknown"
	}
}

// Error is a domain error carrying a kind and a human-readable message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same kind, so callers can
// compare against sentinel values like apperrors.Conflict("").
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New creates a domain error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates a domain error wrapping an underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Conflict creates a uniqueness-violation error.
func Conflict(message string) *Error { return New(KindConflict, message) }

// Unauthorized creates a bad-credential error.
func Unauthorized(message string) *Error { return New(KindUnauthorized, message) }

// Forbidden creates a permission error.
func Forbidden(message string) *Error { return New(KindForbidden, message) }

// NotFound creates a missing-entity error.
func NotFound(message string) *Error { return New(KindNotFound, message) }

// InvalidInput creates an enum/range-violation error.
func InvalidInput(message string) *Error { return New(KindInvalidInput, message) }

// Upstream creates a blob-store failure error wrapping its cause.
func Upstream(message string, err error) *Error { return Wrap(KindUpstream, message, err) }

// KindOf extracts the kind from err, returning KindUnknown for non-domain errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// MessageOf extracts the human-readable message from err. Non-domain errors
// fall back to a generic message so internal details never leak to clients.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}
