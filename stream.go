// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jview

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// An Anchor represents a location in source text. The methods of an Anchor
// will report the location, token type, and contents of the anchor.
type Anchor interface {
	Token() Token       // Returns the token type of the anchor
	Text() []byte       // Returns a view of the raw (undecoded) text of the anchor
	Copy() []byte       // Returns a copy of the raw text of the anchor
	Location() Location // Returns the full location of the anchor
}

// A Handler handles events from parsing an input stream. If a method reports
// an error, parsing stops and that error is returned to the caller.
// The parser ensures objects and arrays are correctly balanced.
type Handler interface {
	// Begin a new object, whose open brace is at loc.
	BeginObject(loc Anchor) error

	// End the most-recently-opened object, whose close brace is at loc.
	EndObject(loc Anchor) error

	// Begin a new array, whose open bracket is at loc.
	BeginArray(loc Anchor) error

	// End the most-recently-opened array, whose close bracket is at loc.
	EndArray(loc Anchor) error

	// Begin a new object member, whose key is at loc. The text of the key is
	// still quoted (see Unquote).
	BeginMember(loc Anchor) error

	// End the current object member, at the token that terminated it (either
	// Comma or RBrace).
	EndMember(loc Anchor) error

	// Report a scalar value at loc. String tokens are quoted.
	Value(loc Anchor) error

	// EndOfInput reports the end of the input stream.
	EndOfInput(loc Anchor)
}

// Stream is a stream parser that consumes input and delivers events to a
// Handler corresponding with the structure of the input.
type Stream struct {
	s *Scanner
}

// NewStream constructs a new Stream that consumes input from r.
func NewStream(r io.Reader) *Stream { return &Stream{s: NewScanner(r)} }

// NewStreamWithScanner constructs a new Stream that consumes input from s.
func NewStreamWithScanner(s *Scanner) *Stream { return &Stream{s: s} }

// Parse parses the input stream and delivers events to h until either an error
// occurs or the input is exhausted. In case of a syntax error, the returned
// error has type [*SyntaxError].
func (s *Stream) Parse(h Handler) error {
	return s.run(h, func(p *parser) error {
		for p.start() {
			p.value()
		}
		return nil
	})
}

// ParseOne parses a single value from the input stream and delivers events to
// h until the value is complete or an error occurs. If no further value is
// available from the input, ParseOne returns io.EOF. In case of a syntax
// error, the returned error has type [*SyntaxError].
func (s *Stream) ParseOne(h Handler) error {
	return s.run(h, func(p *parser) error {
		if !p.start() {
			return io.EOF
		}
		p.value()
		return nil
	})
}

// ParseSingle parses exactly one value from the input stream and delivers
// events to h. Unlike ParseOne, it reports a [*SyntaxError] if the input
// contains no value, or if any token follows the first value.
func (s *Stream) ParseSingle(h Handler) error {
	return s.run(h, func(p *parser) error {
		if !p.next() {
			p.fail(io.ErrUnexpectedEOF, "unexpected end of input")
		}
		p.value()
		if p.start() {
			p.fail(nil, "unexpected %v after value", p.s.Token())
		}
		return nil
	})
}

// run calls parse with a parser delivering events to h, and converts the
// failures it reports by panicking into errors.
func (s *Stream) run(h Handler, parse func(*parser) error) (err error) {
	defer func() {
		switch x := recover().(type) {
		case nil:
		case *SyntaxError:
			err = x
		case handlerError:
			err = x.error
		default:
			panic(x)
		}
	}()
	return parse(&parser{s: s.s, h: h})
}

// A parser is a recursive-descent parser for a single call of Parse,
// ParseOne, or ParseSingle. Its methods report failures by panicking with a
// *SyntaxError or a handlerError.
type parser struct {
	s *Scanner
	h Handler
}

// start advances to the first token of the next value. At the end of the
// input, it reports the end to the handler and returns false.
func (p *parser) start() bool {
	if !p.next() {
		p.h.EndOfInput(p.s)
		return false
	}
	return true
}

// value consumes a value of any type, whose first token is current.
func (p *parser) value() {
	switch tok := p.s.Token(); {
	case tok == LBrace:
		p.check(p.h.BeginObject(p.s))
		p.members()
		p.check(p.h.EndObject(p.s))
	case tok == LSquare:
		p.check(p.h.BeginArray(p.s))
		p.elements()
		p.check(p.h.EndArray(p.s))
	case tok.IsScalar():
		p.check(p.h.Value(p.s))
	default:
		p.fail(nil, "unexpected %v", tok)
	}
}

// members consumes the members of an object and its close brace. The open
// brace is current on entry.
func (p *parser) members() {
	if p.expect(RBrace, String) == RBrace {
		return
	}
	for {
		p.check(p.h.BeginMember(p.s))
		p.expect(Colon)
		p.expect()
		p.value()

		end := p.expect(RBrace, Comma)
		p.check(p.h.EndMember(p.s))
		if end == RBrace {
			return
		}
		p.expect(String)
	}
}

// elements consumes the elements of an array and its close bracket. The open
// bracket is current on entry.
func (p *parser) elements() {
	if p.expect() == RSquare {
		return
	}
	for {
		p.value()
		if p.expect(RSquare, Comma) == RSquare {
			return
		}
		p.expect()
	}
}

// expect advances to the next token, which must be one of want if any are
// given, and returns its type.
func (p *parser) expect(want ...Token) Token {
	ws := wantSet(want)
	if !p.next() {
		p.fail(io.ErrUnexpectedEOF, "%s", ws.label("end of input"))
	}
	tok := p.s.Token()
	if len(want) != 0 && !slices.Contains(want, tok) {
		p.fail(nil, "%s", ws.label(tok))
	}
	return tok
}

// next advances to the next token, and reports false at the end of the
// input.
func (p *parser) next() bool {
	if err := p.s.Next(); err == io.EOF {
		return false
	} else if err != nil {
		p.fail(err, "%v", err)
	}
	return true
}

func (p *parser) fail(err error, msg string, args ...any) {
	panic(&SyntaxError{
		Location: p.s.Location().First,
		Message:  fmt.Sprintf(msg, args...),
		err:      err,
	})
}

func (p *parser) check(err error) {
	if err != nil {
		panic(handlerError{err})
	}
}

type handlerError struct{ error }

func (h handlerError) Unwrap() error { return h.error }

// A wantSet is the set of token types permitted at some point of the input.
// An empty set permits the first token of any value.
type wantSet []Token

// label describes the failure to find a token of ws where got was found.
func (ws wantSet) label(got any) string {
	switch len(ws) {
	case 0:
		return fmt.Sprintf("expected value, got %v", got)
	case 1:
		return fmt.Sprintf("expected %v, got %v", ws[0], got)
	}
	names := make([]string, len(ws))
	for i, tok := range ws {
		names[i] = tok.String()
	}
	last := len(names) - 1
	return fmt.Sprintf("expected %s or %s, got %v", strings.Join(names[:last], ", "), names[last], got)
}

// SyntaxError is the concrete type of errors reported by the stream parser.
type SyntaxError struct {
	Location LineCol
	Message  string

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %v: %s", s.Location, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }
