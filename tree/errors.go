// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package tree

import (
	"errors"
	"fmt"
)

var (
	// ErrNoData is reported when no input is supplied at all.
	ErrNoData = errors.New("no JSON data available")

	// ErrEmptyInput is reported when the input is text that is empty or
	// consists only of whitespace.
	ErrEmptyInput = errors.New("empty JSON string")

	// ErrMalformed is the sentinel matched by every *MalformedError.
	ErrMalformed = errors.New("invalid JSON")

	// ErrInvalidType is reported when the input is neither text nor
	// structured data.
	ErrInvalidType = errors.New("invalid data type")
)

// MalformedError is the concrete type of errors reported when input text is
// not valid JSON. Its Message is the diagnostic from the parser.
type MalformedError struct {
	Message string
	Err     error // the underlying parse error
}

// Error satisfies the error interface.
func (m *MalformedError) Error() string { return fmt.Sprintf("invalid JSON: %s", m.Message) }

// Is reports whether target is ErrMalformed.
func (m *MalformedError) Is(target error) bool { return target == ErrMalformed }

// Unwrap supports error wrapping.
func (m *MalformedError) Unwrap() error { return m.Err }
