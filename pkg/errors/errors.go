// Package errors provides code-tagged errors used across rdftab packages.
//
// Every error carries a Code ("package.name"), a human message, an optional
// cause, and free-form string context added with AddContext. Errors interop
// with the standard library through Unwrap.
package errors

import (
	"fmt"
)

// Error is the concrete error type produced by this package.
type Error struct {
	Code    Code
	Message string
	Cause   error
	Context map[string]string
}

// New creates an error with a compulsory code. The cause may be nil.
func New(code Code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Newf creates an error with a formatted message and no cause.
func Newf(code Code, format string, args ...interface{}) *Error {
	return New(code, fmt.Sprintf(format, args...), nil)
}

// AddContext attaches a key/value pair and returns the error for chaining.
func (e *Error) AddContext(key, value string) *Error {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// GetCode returns the code string of an error produced by this package,
// or "" for foreign errors.
func GetCode(err error) string {
	if e, ok := err.(*Error); ok {
		return e.Code.String()
	}
	return ""
}

// HasCode reports whether err is a package error tagged with code.
func HasCode(err error, code Code) bool {
	e, ok := err.(*Error)
	return ok && e.Code == code
}
