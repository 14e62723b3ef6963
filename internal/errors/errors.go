// Package errors wraps github.com/go-errors/errors so that fatal diagnostics can carry a stack
// trace, and defines the two failure kinds a cracking run can produce.
package errors

import (
	"errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// New creates a new error carrying the stack trace of its caller.
func New(message string) error {
	return goerrors.Wrap(errors.New(message), 1)
}

// Errorf creates a new error and wraps it in an Error type that contains the stack trace.
func Errorf(message string, args ...interface{}) error {
	return goerrors.Wrap(fmt.Errorf(message, args...), 1)
}

// WithStackTrace wraps err in an Error type that contains the stack trace. If err already has a
// stack trace, it is used directly. A nil err returns nil.
func WithStackTrace(err error) error {
	if err == nil {
		return nil
	}
	return goerrors.Wrap(err, 1)
}

// WithStackTraceAndPrefix is WithStackTrace with the formatted message prepended.
func WithStackTraceAndPrefix(err error, message string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return goerrors.WrapPrefix(err, fmt.Sprintf(message, args...), 1)
}

// IsError reports whether actual is, or wraps, expected.
func IsError(actual error, expected error) bool {
	return goerrors.Is(actual, expected)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// ErrorWithStackTrace returns the error message followed by the deepest recorded callstack.
func ErrorWithStackTrace(err error) string {
	if err == nil {
		return ""
	}
	return goError(err).ErrorStack()
}

func goError(err error) *goerrors.Error {
	goerr := &goerrors.Error{Err: err}
	for {
		if found := new(goerrors.Error); errors.As(err, &found) {
			goerr = found
		}
		if err = errors.Unwrap(err); err == nil {
			break
		}
	}
	return goerr
}
