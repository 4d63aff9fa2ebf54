package apperrors

import (
	"errors"
	"fmt"
)

// Kind categorizes a failure for boundary mapping.
type Kind string

const (
	KindValidation   Kind = "VALIDATION"
	KindUnauthorized Kind = "UNAUTHORIZED"
	KindNotFound     Kind = "NOT_FOUND"
	KindProvider     Kind = "PROVIDER"
	KindDatabase     Kind = "DATABASE"
	KindInternal     Kind = "INTERNAL"
)

// Error carries the failure category alongside the wrapped cause. Provider
// and database failures keep their detail here for logging but are collapsed
// to a generic internal error at the HTTP boundary.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error of the given kind wrapping an optional cause.
func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Validation flags bad caller input; no side effect may have occurred.
func Validation(message string) *Error {
	return New(KindValidation, message, nil)
}

// NotFound covers both absent and not-owned resources so ownership is not
// leaked to the caller.
func NotFound(message string) *Error {
	return New(KindNotFound, message, nil)
}

// Provider wraps a completion gateway failure.
func Provider(message string, err error) *Error {
	return New(KindProvider, message, err)
}

// Database wraps a conversation store failure.
func Database(message string, err error) *Error {
	return New(KindDatabase, message, err)
}

// KindOf extracts the category from any error chain, defaulting to internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsNotFound reports whether the chain contains a not-found-class error.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
