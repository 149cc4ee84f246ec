// Package apperrors defines the error taxonomy shared by the manager
// services and the HTTP boundary. Services return kinded errors; the
// handlers translate the kind into a status code and a human-readable
// message.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the HTTP boundary
type Kind int

const (
	KindServer Kind = iota // unexpected/persistence failure
	KindValidation
	KindNotFound
	KindConflict
	KindAuth
	KindGateway
)

// Error is a kinded application error
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

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports a missing or malformed required field
func Validation(format string, args ...interface{}) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports an absent user, booking, wishlist item or payment
func NotFound(format string, args ...interface{}) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict reports a duplicate where uniqueness is required
func Conflict(format string, args ...interface{}) error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Auth reports a missing, invalid or expired credential
func Auth(format string, args ...interface{}) error {
	return &Error{Kind: KindAuth, Message: fmt.Sprintf(format, args...)}
}

// Gateway reports a failed payment gateway call
func Gateway(message string, err error) error {
	return &Error{Kind: KindGateway, Message: message, Err: err}
}

// Server wraps an unexpected internal failure
func Server(message string, err error) error {
	return &Error{Kind: KindServer, Message: message, Err: err}
}

// KindOf extracts the kind from an error chain; unclassified errors are
// treated as server errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindServer
}

// MessageOf returns the client-safe message from an error chain
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}

// IsKind reports whether the error chain carries the given kind
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
