// Package errors is the error toolkit used below the HTTP layer. Matching goes
// through the standard library; anything that creates or wraps an error
// records a stack trace via pkg/errors, which the error middleware logs for
// unexpected failures.
package errors

import (
	stderrors "errors"

	pkgerrors "github.com/pkg/errors"
)

// New returns an error with a stack trace.
func New(text string) error {
	return pkgerrors.New(text)
}

// Errorf is New with formatting.
func Errorf(format string, args ...any) error {
	return pkgerrors.Errorf(format, args...)
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Wrap annotates err with message and a stack trace. It returns nil for a nil err.
func Wrap(err error, message string) error {
	return pkgerrors.Wrap(err, message)
}

func Wrapf(err error, format string, args ...any) error {
	return pkgerrors.Wrapf(err, format, args...)
}

// WithStack records a stack trace without changing the message.
func WithStack(err error) error {
	return pkgerrors.WithStack(err)
}
