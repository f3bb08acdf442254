// Package apperr defines the application error taxonomy. Services return
// *Error values; the HTTP layer maps each Kind to a status code.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an application error.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindInvalidSignature
	KindGateway
)

// Error is an application error with a classification and a user-facing message.
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

// New creates an error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an error with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap annotates err with a kind and message while keeping it unwrappable.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of err, or KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Validation reports a missing or malformed input.
func Validation(message string) *Error { return New(KindValidation, message) }

// NotFound reports a missing entity.
func NotFound(message string) *Error { return New(KindNotFound, message) }

// Forbidden reports an ownership or role mismatch.
func Forbidden(message string) *Error { return New(KindForbidden, message) }

// Conflict reports a duplicate unique field or an illegal state change.
func Conflict(message string) *Error { return New(KindConflict, message) }
