// Package errors provides structured error types for influencerdeck.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the generation pipeline
//   - Machine-readable error codes for programmatic handling
//   - Record- and field-level context for malformed input rows
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_* / MISSING_*: Input validation failures
//   - *_NOT_FOUND: Resource not found
//   - NETWORK_*: Network-related errors
//   - INTERNAL_* / UNSUPPORTED: Unexpected internal errors and unsupported content
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidFormat, "unsupported input: %s", ext)
//	if errors.Is(err, errors.ErrCodeInvalidFormat) {
//	    // Handle validation error
//	}
//
//	// Field-level errors carry the record index and the column name
//	err := errors.Field(3, "hindex", errors.ErrCodeMissingField, nil)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeMissingField  Code = "MISSING_FIELD"
	ErrCodeInvalidField  Code = "INVALID_FIELD"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"

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
// It unwraps the error chain looking for an *Error or *FieldError with a matching code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error carries no code.
func GetCode(err error) Code {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Code
	}
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
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.message()
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// FieldError reports a missing or malformed field in one input record.
//
// Record is the 1-based data row index; 0 refers to the header row
// (a required column is absent altogether).
type FieldError struct {
	Record int
	Field  string
	Code   Code
	Cause  error
}

// Field creates a FieldError for the given record and column.
func Field(record int, field string, code Code, cause error) *FieldError {
	return &FieldError{Record: record, Field: field, Code: code, Cause: cause}
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.message())
}

func (e *FieldError) message() string {
	var where string
	if e.Record == 0 {
		where = fmt.Sprintf("header: column %q", e.Field)
	} else {
		where = fmt.Sprintf("record %d: field %q", e.Record, e.Field)
	}
	switch {
	case e.Cause != nil:
		return fmt.Sprintf("%s: %v", where, e.Cause)
	case e.Code == ErrCodeMissingField:
		return where + " is missing"
	default:
		return where + " is invalid"
	}
}

// Unwrap returns the underlying cause.
func (e *FieldError) Unwrap() error {
	return e.Cause
}
