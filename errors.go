// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jvalue

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is reported by Get accessors when the requested key or
	// index is absent.
	ErrNotFound = errors.New("not found")

	// ErrTypeMismatch is reported by typed accessors when the stored value
	// cannot be coerced to the requested type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrNonFinite is reported when serializing an infinite or NaN number,
	// which JSON cannot represent.
	ErrNonFinite = errors.New("non-finite number")

	// ErrInvalidArgument is reported for invalid arguments, such as a
	// negative array index or a nil value where one is required.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrExtraInput is wrapped by the SyntaxError reported when a complete
	// value is followed by additional non-space input.
	ErrExtraInput = errors.New("extra input after value")
)

// SyntaxError is the concrete type of errors reported for malformed input.
type SyntaxError struct {
	Offset  int    // byte offset in the source where the error was detected
	Message string // description of the problem

	src string
	err error
}

// Error satisfies the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s (offset %d)", e.Message, e.Offset)
}

// Unwrap supports error wrapping.
func (e *SyntaxError) Unwrap() error { return e.err }

// Source returns the complete source text being parsed when the error
// occurred. It is intended for debugging.
func (e *SyntaxError) Source() string { return e.src }

func notFoundf(msg string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(msg, args...))
}

func mismatchf(msg string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrTypeMismatch, fmt.Sprintf(msg, args...))
}
