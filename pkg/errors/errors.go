// Package errors provides structured error types for inscribe.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The solver distinguishes four geometry outcomes:
//   - MALFORMED_INPUT: a line is not "x,y" or fewer than 4 vertices were given
//   - NON_RECTILINEAR_EDGE: two consecutive vertices differ in both coordinates
//   - DEGENERATE_POLYGON: zero-length edge, zero area or zero bounding extent
//   - NO_CONTAINED_RECTANGLE: the ranked search exhausted every candidate
//
// The first three abort the computation before any search starts. The last one
// is a legitimate outcome on valid input and is reported distinctly, never as
// an area of zero.
//
// POLYGON_TOO_LARGE reports a polygon with more vertices, columns or column
// breakpoints than the configured limits allow.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMalformedInput, "line %d: %q is not x,y", n, line)
//	if errors.Is(err, errors.ErrCodeMalformedInput) {
//	    // Handle bad input
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFileNotFound, origErr, "open %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Geometry errors
	ErrCodeMalformedInput       Code = "MALFORMED_INPUT"
	ErrCodeNonRectilinearEdge   Code = "NON_RECTILINEAR_EDGE"
	ErrCodeDegeneratePolygon    Code = "DEGENERATE_POLYGON"
	ErrCodeNoContainedRectangle Code = "NO_CONTAINED_RECTANGLE"

	// Input and configuration errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidOption Code = "INVALID_OPTION"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"

	// Resource limits
	ErrCodePolygonTooLarge Code = "POLYGON_TOO_LARGE"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsGeometry reports whether err was caused by the polygon itself rather than
// by I/O or configuration. Geometry errors are the caller's fault and map to
// 422 in the HTTP API.
func IsGeometry(err error) bool {
	switch GetCode(err) {
	case ErrCodeMalformedInput, ErrCodeNonRectilinearEdge, ErrCodeDegeneratePolygon, ErrCodeNoContainedRectangle:
		return true
	}
	return false
}
