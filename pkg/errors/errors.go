// Package errors provides structured error types for posterforge.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the HTTP service
//   - Machine-readable error codes for programmatic handling
//   - User-friendly messages that name the offending parameter
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The render core uses three codes:
//   - CONFIGURATION_ERROR: missing or inconsistent required input, such as a
//     custom palette requested without a colour table
//   - INVALID_PARAMETER: an out-of-range numeric parameter or malformed value,
//     such as a point count below 3
//   - RENDER_ERROR: a failure while composing layers; it wraps the cause and
//     aborts the whole poster
//
// The remaining codes are used by the outer surfaces (gallery, server, cache).
//
// # Usage
//
//	err := errors.InvalidParameter("point_count", 2, "must be >= 3")
//	if errors.Is(err, errors.ErrCodeInvalidParameter) {
//	    // prompt the user to fix the value
//	}
//
//	// Wrap existing errors
//	err := errors.Render(cause, "layer %d", i)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Render core errors
	ErrCodeConfiguration    Code = "CONFIGURATION_ERROR"
	ErrCodeInvalidParameter Code = "INVALID_PARAMETER"
	ErrCodeRender           Code = "RENDER_ERROR"

	// Input errors outside the render core
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Backend errors
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeStorage Code = "STORAGE_ERROR"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Param   string // Offending parameter name (optional)
	Value   any    // Offending value (optional, only meaningful with Param)
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Param != "" {
		msg = fmt.Sprintf("%s: %s (got %v)", e.Param, e.Message, e.Value)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
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

// Configuration reports missing or invalid required input for param.
func Configuration(param, format string, args ...any) *Error {
	return &Error{
		Code:    ErrCodeConfiguration,
		Message: fmt.Sprintf(format, args...),
		Param:   param,
		Value:   "<unset>",
	}
}

// InvalidParameter reports an out-of-range or malformed value for param.
func InvalidParameter(param string, value any, format string, args ...any) *Error {
	return &Error{
		Code:    ErrCodeInvalidParameter,
		Message: fmt.Sprintf(format, args...),
		Param:   param,
		Value:   value,
	}
}

// Render wraps a failure that aborted poster composition.
func Render(cause error, format string, args ...any) *Error {
	return Wrap(ErrCodeRender, cause, format, args...)
}

// Is reports whether any *Error in err's chain has the given code.
// A RenderError wrapping an InvalidParameterError matches both codes.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode extracts the outermost error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Param returns the innermost offending parameter name in err's chain.
// Returns empty string if no *Error in the chain names one.
func Param(err error) string {
	param := ""
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			break
		}
		if e.Param != "" {
			param = e.Param
		}
		err = e.Cause
	}
	return param
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Param != "" {
			return fmt.Sprintf("%s: %s (got %v)", e.Param, e.Message, e.Value)
		}
		if e.Cause != nil {
			return fmt.Sprintf("%s: %s", e.Message, UserMessage(e.Cause))
		}
		return e.Message
	}
	return err.Error()
}
