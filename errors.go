// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ctrans

import (
	"errors"
	"fmt"
)

// ParseError is the concrete type of hard errors reported by parsers. A
// ParseError means the input began a recognized construct that was then
// malformed; it is never a signal to try another alternative.
type ParseError struct {
	Span    Span   // the location the error is anchored to
	Message string // a human-readable description

	err error
}

// Error satisfies the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("at %s: %s", e.Span.Location(), e.Message)
}

// Unwrap supports error wrapping.
func (e *ParseError) Unwrap() error { return e.err }

// Errorf constructs a *ParseError anchored at the given span. The message is
// formatted as by fmt.Errorf, and any error wrapped by %w is available to
// errors.Is and errors.As.
func Errorf(at Span, msg string, args ...any) error {
	err := fmt.Errorf(msg, args...)
	return &ParseError{Span: at, Message: err.Error(), err: errors.Unwrap(err)}
}

// AsParseError reports whether err is or wraps a *ParseError, and if so
// returns it.
func AsParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
