// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package tree

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/creachadair/jview/value"
	"github.com/tailscale/hujson"
)

// Parse converts input into a JSON value using a zero Parser.
func Parse(input any) (value.Value, error) { return Parser{}.Parse(input) }

// A Parser converts raw input into a JSON value for projection.
// A zero Parser accepts only standard JSON text.
type Parser struct {
	// If true, text input may contain comments and trailing commas (JWCC).
	AllowJWCC bool
}

// Parse converts input into a JSON value.
//
// If input is a string or []byte, it is parsed as JSON text. Text that is
// empty after trimming whitespace reports ErrEmptyInput, and text that does
// not parse reports a *MalformedError. A nil input reports ErrNoData.
//
// Any other input is treated as already-structured data: a value.Value is
// returned as-is, and other Go data are converted with value.FromAny. Data
// of a type with no JSON representation report ErrInvalidType.
func (p Parser) Parse(input any) (value.Value, error) {
	switch t := input.(type) {
	case nil:
		return nil, ErrNoData
	case string:
		return p.parseText([]byte(t))
	case []byte:
		return p.parseText(t)
	case value.Value:
		return t, nil
	}
	v, err := value.FromAny(input)
	if errors.Is(err, value.ErrUnsupported) {
		return nil, fmt.Errorf("%w: %T", ErrInvalidType, input)
	} else if err != nil {
		return nil, &MalformedError{Message: err.Error(), Err: err}
	}
	return v, nil
}

func (p Parser) parseText(text []byte) (value.Value, error) {
	text = bytes.TrimSpace(text)
	if len(text) == 0 {
		return nil, ErrEmptyInput
	}
	if p.AllowJWCC {
		std, err := hujson.Standardize(bytes.Clone(text))
		if err != nil {
			return nil, &MalformedError{Message: err.Error(), Err: err}
		}
		text = std
	}
	v, err := value.Parse(bytes.NewReader(text))
	if err != nil {
		return nil, &MalformedError{Message: err.Error(), Err: err}
	}
	return v, nil
}
