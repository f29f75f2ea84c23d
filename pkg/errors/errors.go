// Package errors augments the standard errors
// provided by fmt (https://golang.org/src/fmt/errors.go)
// with Wrap methods to wrap errors without resorting
// to fmt.Errorf("%w", err).
package errors

import (
	stderr "errors"

	"go.uber.org/zap"
)

var _ error = New("")

// New Error
func New(msg string) *Error {
	return &Error{msg: msg}
}

// Error augments the standard error interface with a Wrap method.
//
// Sentinel errors are declared once with New, then wrapped at the call site.
// Wrapping always returns a copy, so package-level sentinels are never mutated.
type Error struct {
	msg    string
	detail string
	err    error
	parent *Error
}

// Error message
func (e *Error) Error() string {
	msg := e.msg
	if e.detail != "" {
		msg += ": " + e.detail
	}
	if e.err != nil {
		msg += ": " + e.err.Error()
	}
	return msg
}

// Unwrap nested error
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

// Wrap a nested error
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:    e.msg,
		detail: e.detail,
		err:    err,
		parent: e.root(),
	}
}

// WrapMessage adds some formatted detail to the error message
func (e *Error) WrapMessage(detail string) *Error {
	return &Error{
		msg:    e.msg,
		detail: detail,
		err:    e.err,
		parent: e.root(),
	}
}

// WrapWithLog wraps a nested error and logs the outcome as an error with some extra fields
func (e *Error) WrapWithLog(l *zap.Logger, err error, fields ...zap.Field) *Error {
	wrapped := e.Wrap(err)
	if l != nil {
		l.Error(wrapped.msg, append(fields, zap.Error(err))...)
	}
	return wrapped
}

// Is of some error type?
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return e.err == target
	}
	return e == t || e.root() == t || (t.parent != nil && e.root() == t.parent)
}

func (e *Error) root() *Error {
	if e.parent != nil {
		return e.parent
	}
	return e
}

// As finds the first error in err's chain that matches target, and if so, sets target to that error value and returns true.
// (a shortcut to standard lib errors.As)
func As(err error, target interface{}) bool {
	return stderr.As(err, target)
}

// Is reports whether any error in err's chain matches target
// (a shortcut to standard lib errors.Is)
func Is(err, target error) bool {
	return stderr.Is(err, target)
}
