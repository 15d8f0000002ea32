// Package errors defines the application error taxonomy and its mapping onto
// HTTP status codes. Services return these errors; the HTTP adapter only
// inspects the kind.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error.
type Kind int

const (
	// KindInternal is the fallback for unclassified failures.
	KindInternal Kind = iota
	// KindValidation covers bad types, ranges and formats.
	KindValidation
	// KindNotFound covers lookups of absent resources.
	KindNotFound
	// KindConflict covers uniqueness violations.
	KindConflict
)

// Error is an application error with a kind and a human-readable message.
type Error struct {
	kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap exposes the wrapped cause, if any.
func (e *Error) Unwrap() error { return e.err }

// Kind returns the error classification.
func (e *Error) Kind() Kind { return e.kind }

// Validation builds a validation error.
func Validation(format string, args ...interface{}) *Error {
	return &Error{kind: KindValidation, msg: fmt.Sprintf(format, args...)}
}

// NotFound builds a not-found error.
func NotFound(format string, args ...interface{}) *Error {
	return &Error{kind: KindNotFound, msg: fmt.Sprintf(format, args...)}
}

// Conflict builds a conflict error.
func Conflict(format string, args ...interface{}) *Error {
	return &Error{kind: KindConflict, msg: fmt.Sprintf(format, args...)}
}

// Internal builds an internal error wrapping a cause.
func Internal(msg string, err error) *Error {
	return &Error{kind: KindInternal, msg: msg, err: err}
}

// KindOf extracts the kind from an error chain. Unclassified errors report
// KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.kind
	}
	return KindInternal
}

// IsNotFound reports whether the error chain carries a not-found error.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsValidation reports whether the error chain carries a validation error.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsConflict reports whether the error chain carries a conflict error.
func IsConflict(err error) bool { return KindOf(err) == KindConflict }

// HTTPStatus maps an error chain to the HTTP status the adapter should emit.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
