package errors

import (
	"errors"
	"fmt"
)

// Domain sentinel errors shared by the repository and service layers
var (
	ErrNotFound           = New("not found")
	ErrConflict           = New("conflict")
	ErrDatabaseConnection = New("database connection failed")
)

// Error represents a standardized error
type Error struct {
	message string
	cause   error
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// Newf creates a new formatted error
func Newf(format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: message,
		cause:   err,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: fmt.Sprintf(format, args...),
		cause:   err,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.message == t.message && e.cause == nil && t.cause == nil
}

// NotFound returns an ErrNotFound carrying the item type and identifier
func NotFound(itemType string, identifier string) error {
	return Wrapf(ErrNotFound, "%s %s", itemType, identifier)
}

// Conflict returns an ErrConflict carrying the reason
func Conflict(reason string) error {
	return Wrap(ErrConflict, reason)
}

// IsNotFound reports whether err is, or wraps, ErrNotFound
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict reports whether err is, or wraps, ErrConflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
