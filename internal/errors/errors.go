// Package errors provides coded application errors shared across the
// repository and service layers.
package errors

import (
	"errors"
	"fmt"
)

// Error codes
const (
	// Authentication errors
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"

	// Authorization errors
	ErrCodeForbidden = "FORBIDDEN"

	// Validation errors
	ErrCodeInvalidInput = "INVALID_INPUT"

	// Resource errors
	ErrCodeNotFound = "NOT_FOUND"

	// Storage errors
	ErrCodeStorageFailure = "STORAGE_FAILURE"
)

// Error is a standardized application error with a machine-readable code.
type Error struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates a new Error wrapping an underlying cause
func Wrap(code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Forbidden builds an authorization denial error.
func Forbidden(message string) *Error {
	if message == "" {
		message = "access denied"
	}
	return New(ErrCodeForbidden, message)
}

// NotFound builds a missing-resource error.
func NotFound(message string) *Error {
	if message == "" {
		message = "resource not found"
	}
	return New(ErrCodeNotFound, message)
}

// Invalid builds a validation error.
func Invalid(message string) *Error {
	if message == "" {
		message = "invalid input"
	}
	return New(ErrCodeInvalidInput, message)
}

// HasCode reports whether err is (or wraps) an *Error with the given code.
func HasCode(err error, code string) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

func IsForbidden(err error) bool { return HasCode(err, ErrCodeForbidden) }
func IsNotFound(err error) bool  { return HasCode(err, ErrCodeNotFound) }
func IsInvalid(err error) bool   { return HasCode(err, ErrCodeInvalidInput) }
