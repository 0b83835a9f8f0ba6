// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jview

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"go4.org/mem"
)

// Token is the type of a lexical token in the JSON grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid Token = iota // invalid token
	LBrace               // left brace "{"
	RBrace               // right brace "}"
	LSquare              // left square bracket "["
	RSquare              // right square bracket "]"
	Comma                // comma ","
	Colon                // colon ":"
	Integer              // number: integer with no fraction or exponent
	Number               // number with fraction and/or exponent
	String               // quoted string
	True                 // constant: true
	False                // constant: false
	Null                 // constant: null
)

var tokenStr = [...]string{
	Invalid: "invalid token",
	LBrace:  `"{"`,
	RBrace:  `"}"`,
	LSquare: `"["`,
	RSquare: `"]"`,
	Comma:   `","`,
	Colon:   `":"`,
	Integer: "integer",
	Number:  "number",
	String:  "string",
	True:    "true",
	False:   "false",
	Null:    "null",
}

func (t Token) String() string {
	if int(t) >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[t]
}

// IsScalar reports whether t is the token of a scalar value: a string,
// number, Boolean, or null.
func (t Token) IsScalar() bool { return t >= Integer && t <= Null }

// A Scanner reads lexical tokens from an input stream. Each call to Next
// advances the scanner to the next token, or reports an error.
//
// Offsets and columns are measured in bytes.
type Scanner struct {
	r    *bufio.Reader
	text bytes.Buffer // raw text of the current token
	tok  Token
	err  error

	start mark // where the current token begins
	cur   mark // the read position
}

// A mark is a position in the input.
type mark struct {
	off, line, col int // line and col are 0-based
}

// NewScanner constructs a new lexical scanner that consumes input from r.
func NewScanner(r io.Reader) *Scanner {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Scanner{r: br}
}

// Next advances s to the next token of the input, or reports an error.
// At the end of the input, Next returns io.EOF.
func (s *Scanner) Next() error {
	s.text.Reset()
	s.tok, s.err = Invalid, nil

	if err := s.skipSpace(); err != nil {
		return s.fail(err)
	}
	b, err := s.read()
	if err == io.EOF {
		s.err = err
		return err
	} else if err != nil {
		return s.fail(err)
	}

	switch {
	case b == '"':
		return s.scanString()
	case b == '-' || isDigit(b):
		return s.scanNumber(b)
	case b == 't' || b == 'f' || b == 'n':
		return s.scanConstant(b)
	}
	if t := punct[b]; t != Invalid {
		s.text.WriteByte(b)
		s.tok = t
		return nil
	}
	return s.unexpected(b)
}

// Token returns the type of the current token.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the last error reported by Next.
func (s *Scanner) Err() error { return s.err }

// Text returns the undecoded text of the current token. The return value is
// only valid until the next call of Next.
func (s *Scanner) Text() []byte { return s.text.Bytes() }

// Copy returns a copy of the undecoded text of the current token.
func (s *Scanner) Copy() []byte { return bytes.Clone(s.text.Bytes()) }

// Span returns the location span of the current token.
func (s *Scanner) Span() Span { return Span{Pos: s.start.off, End: s.cur.off} }

// Location returns the complete location of the current token.
func (s *Scanner) Location() Location {
	return Location{
		Span:  s.Span(),
		First: LineCol{Line: s.start.line + 1, Column: s.start.col},
		Last:  LineCol{Line: s.cur.line + 1, Column: s.cur.col},
	}
}

// skipSpace consumes whitespace and marks the start of the next token.
func (s *Scanner) skipSpace() error {
	for {
		b, ok, err := s.peek()
		if err != nil || !ok || !isSpace(b) {
			s.start = s.cur
			return err
		}
		s.read()
		if b == '\n' {
			s.cur.line++
			s.cur.col = 0
		}
	}
}

// scanString scans the remainder of a string after its open quote.
func (s *Scanner) scanString() error {
	s.text.WriteByte('"')
	for {
		b, err := s.read()
		if err == io.EOF {
			return s.failf("unterminated string")
		} else if err != nil {
			return s.fail(err)
		}
		switch {
		case b == '"':
			s.text.WriteByte(b)
			s.tok = String
			return nil
		case b == '\\':
			s.text.WriteByte(b)
			if err := s.scanEscape(); err != nil {
				return err
			}
		case b < ' ':
			return s.failf("unescaped control %q", rune(b))
		default:
			s.text.WriteByte(b)
		}
	}
}

// scanEscape scans the remainder of an escape sequence after its backslash.
func (s *Scanner) scanEscape() error {
	b, err := s.read()
	if err == io.EOF {
		return s.failf("unterminated string")
	} else if err != nil {
		return s.fail(err)
	}
	s.text.WriteByte(b)
	switch b {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		return nil
	case 'u':
		for range 4 {
			if ok, err := s.accept(isHexDigit); err != nil {
				return s.fail(err)
			} else if !ok {
				return s.failf("invalid Unicode escape")
			}
		}
		return nil
	}
	return s.failf("invalid %q after escape", rune(b))
}

// scanNumber scans a number whose first byte has been read. The grammar is:
//
//	number = [ "-" ] int [ "." digits ] [ ( "e" | "E" ) [ "+" | "-" ] digits ]
//	int    = "0" | nonzero-digit { digit }
func (s *Scanner) scanNumber(first byte) error {
	s.text.WriteByte(first)
	if first == '-' {
		if ok, err := s.accept(isDigit); err != nil {
			return s.fail(err)
		} else if !ok {
			return s.want("digit")
		}
	}
	if _, err := s.acceptRun(isDigit); err != nil {
		return s.fail(err)
	}
	if hasExtraLeadingZeroes(s.text.Bytes()) {
		return s.failf("extra leading zeroes")
	}
	tok := Integer

	if ok, err := s.accept(isByte('.')); err != nil {
		return s.fail(err)
	} else if ok {
		tok = Number
		if n, err := s.acceptRun(isDigit); err != nil {
			return s.fail(err)
		} else if n == 0 {
			return s.failf("no digits after decimal point")
		}
	}

	if ok, err := s.accept(isExpMark); err != nil {
		return s.fail(err)
	} else if ok {
		tok = Number
		signed, err := s.accept(isSign)
		if err != nil {
			return s.fail(err)
		}
		if n, err := s.acceptRun(isDigit); err != nil {
			return s.fail(err)
		} else if n == 0 && signed {
			return s.failf("missing exponent digits")
		} else if n == 0 {
			return s.want("sign or digit")
		}
	}
	s.tok = tok
	return nil
}

// constants are the names of the JSON constants.
var constants = []struct {
	name mem.RO
	tok  Token
}{
	{mem.S("true"), True},
	{mem.S("false"), False},
	{mem.S("null"), Null},
}

// scanConstant scans a run of lowercase letters and checks that it names one
// of the JSON constants.
func (s *Scanner) scanConstant(first byte) error {
	s.text.WriteByte(first)
	if _, err := s.acceptRun(isLower); err != nil {
		return s.fail(err)
	}
	got := mem.B(s.text.Bytes())
	for _, c := range constants {
		if got.Equal(c.name) {
			s.tok = c.tok
			return nil
		}
	}
	return s.failf("unknown constant %q", got.StringCopy())
}

// unexpected reports an error for an input byte that cannot start a token.
func (s *Scanner) unexpected(b byte) error {
	ch := rune(b)
	if b >= utf8.RuneSelf {
		// Report the whole character, not its first byte.
		s.r.UnreadByte()
		r, n, _ := s.r.ReadRune()
		ch = r
		s.cur.off += n - 1
		s.cur.col += n - 1
	}
	return s.failf("unexpected %q", ch)
}

// read consumes the next byte of input.
func (s *Scanner) read() (byte, error) {
	b, err := s.r.ReadByte()
	if err == nil {
		s.cur.off++
		s.cur.col++
	}
	return b, err
}

// peek returns the next byte of input without consuming it. At the end of
// the input it reports ok == false and a nil error.
func (s *Scanner) peek() (_ byte, ok bool, _ error) {
	buf, err := s.r.Peek(1)
	if err == io.EOF {
		return 0, false, nil
	} else if err != nil {
		return 0, false, err
	}
	return buf[0], true, nil
}

// accept consumes the next byte of input into the token text if it
// satisfies f, and reports whether it did so.
func (s *Scanner) accept(f func(byte) bool) (bool, error) {
	b, ok, err := s.peek()
	if err != nil || !ok || !f(b) {
		return false, err
	}
	s.read()
	s.text.WriteByte(b)
	return true, nil
}

// acceptRun consumes the longest run of input bytes satisfying f into the
// token text, and reports its length.
func (s *Scanner) acceptRun(f func(byte) bool) (int, error) {
	var n int
	for {
		ok, err := s.accept(f)
		if err != nil || !ok {
			return n, err
		}
		n++
	}
}

// want reports an error for a missing input described by label.
func (s *Scanner) want(label string) error {
	b, ok, err := s.peek()
	if err != nil {
		return s.failf("want %s, got error: %w", label, err)
	} else if !ok {
		return s.failf("want %s, got end of input", label)
	}
	return s.failf("got %q, want %s", rune(b), label)
}

type posError struct {
	pos int
	err error
}

func (p posError) Error() string {
	return fmt.Sprintf("%s (offset %d)", p.err.Error(), p.pos)
}

func (p posError) Unwrap() error { return p.err }

func (s *Scanner) fail(err error) error {
	s.tok = Invalid
	s.err = posError{s.start.off, err}
	return s.err
}

func (s *Scanner) failf(msg string, args ...any) error {
	return s.fail(fmt.Errorf(msg, args...))
}

// punct maps each punctuation byte to its token.
var punct = [256]Token{
	'{': LBrace, '}': RBrace,
	'[': LSquare, ']': RSquare,
	',': Comma, ':': Colon,
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\r' || b == '\n' || b == '\t'
}

func isByte(want byte) func(byte) bool { return func(b byte) bool { return b == want } }

func isExpMark(b byte) bool { return b == 'e' || b == 'E' }
func isSign(b byte) bool    { return b == '-' || b == '+' }
func isDigit(b byte) bool   { return '0' <= b && b <= '9' }
func isLower(b byte) bool   { return 'a' <= b && b <= 'z' }

func isHexDigit(b byte) bool {
	return isDigit(b) || ('a' <= b && b <= 'f') || ('A' <= b && b <= 'F')
}

// hasExtraLeadingZeroes reports whether the integer part of the number in
// buf has redundant leading zeroes.
//
// OK: 0, 0.1, -1.0, -0.1 are all OK.
// Bad: -01, 01.2, -01.0, 00.1.
func hasExtraLeadingZeroes(buf []byte) bool {
	if buf[0] == '-' {
		buf = buf[1:]
	}
	return len(buf) > 1 && buf[0] == '0' && isDigit(buf[1])
}
