// Package errors defines structured error types for the persistence core.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Code classifies a failure so callers can branch without string matching.
type Code string

const (
	// CodeIO is returned when an underlying filesystem operation fails.
	CodeIO Code = "IO_ERROR"
	// CodeValidation is returned when a document parses but does not
	// conform to its declared shape.
	CodeValidation Code = "VALIDATION_FAILED"
	// CodeCorrupt is returned when a document is not valid JSON at all.
	CodeCorrupt Code = "CORRUPT_DOCUMENT"
	// CodeNotFound is returned when a record ID does not exist or points
	// at a sentinel slot.
	CodeNotFound Code = "NOT_FOUND"
	// CodeProtected is returned when an operation was refused to preserve
	// a designated default record.
	CodeProtected Code = "PROTECTED"
	// CodeNoProject is returned when a directory is not a valid project
	// root.
	CodeNoProject Code = "NO_PROJECT_LOADED"
)

// Error is the concrete error type carried across the core. It holds a
// taxonomy code, a message, the offending path when one exists, optional
// details, and the wrapped cause.
type Error struct {
	code       Code
	message    string
	path       string
	details    map[string]any
	wrappedErr error
}

// New creates an Error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

// WithPath records the offending filesystem path.
func (e *Error) WithPath(path string) *Error {
	e.path = path
	return e
}

// WithDetail adds a single detail to the error.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.details == nil {
		e.details = make(map[string]any)
	}
	e.details[key] = value
	return e
}

// Wrap wraps an underlying error.
func (e *Error) Wrap(err error) *Error {
	e.wrappedErr = err
	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.message
	if e.path != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.path)
	}
	if e.wrappedErr != nil {
		return fmt.Sprintf("%s: %v", msg, e.wrappedErr)
	}
	return msg
}

// Code returns the taxonomy code.
func (e *Error) Code() Code {
	return e.code
}

// Path returns the offending path, if any.
func (e *Error) Path() string {
	return e.path
}

// Details returns additional error details.
func (e *Error) Details() map[string]any {
	return e.details
}

// Unwrap returns the wrapped error if any.
func (e *Error) Unwrap() error {
	return e.wrappedErr
}

// Predefined constructors for common cases

// IO creates an IO_ERROR wrapping the underlying filesystem error.
func IO(message, path string, err error) *Error {
	return New(CodeIO, message).WithPath(path).Wrap(err)
}

// Corrupt creates a CORRUPT_DOCUMENT error for a file that failed to parse.
func Corrupt(path string, err error) *Error {
	return New(CodeCorrupt, "document is not valid JSON").WithPath(path).Wrap(err)
}

// Validation creates a VALIDATION_FAILED error.
func Validation(message, path string) *Error {
	return New(CodeValidation, message).WithPath(path)
}

// NotFound creates a NOT_FOUND error for a record ID.
func NotFound(resource string, id int) *Error {
	return New(CodeNotFound, fmt.Sprintf("%s %d not found", resource, id)).WithDetail("id", id)
}

// Protected creates a PROTECTED error.
func Protected(message string) *Error {
	return New(CodeProtected, message)
}

// NoProject creates a NO_PROJECT_LOADED error for a directory that is not a
// valid project root.
func NoProject(root string) *Error {
	return New(CodeNoProject, "not a valid project directory").WithPath(root)
}

// CodeOf returns the taxonomy code of err, or the empty string when err does
// not carry one.
func CodeOf(err error) Code {
	var e *Error
	if stderrors.As(err, &e) {
		return e.code
	}
	return ""
}

// HasCode reports whether err carries the given taxonomy code.
func HasCode(err error, code Code) bool {
	return CodeOf(err) == code
}
