// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package jpath implements a minimal JSONPath expression parser and a matcher
// that reports whether a concrete path through a document is selected by an
// expression.
//
// The supported grammar is:
//
//	expr  = "$" { step }
//	step  = "." name | ".." name | "[" sel "]"
//	name  = word | "'" qtext "'" | "*"
//	sel   = name | index { "," index } | [ index ] ":" [ index ]
//	word  = 1*( letter | digit | "_" )
//	qtext = *( any character except "'" )
//	index = [ "-" ] 1*digit
//
// Filter steps "[?(...)]" and script steps "[(...)]" are reported as errors.
// See https://www.ietf.org/archive/id/draft-goessner-dispatch-jsonpath-00.html.
package jpath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// An Expr is a parsed JSONPath expression.
type Expr []Step

// Parse parses s as a JSONPath expression.
func Parse(s string) (Expr, error) {
	p := &parser{src: strings.TrimSpace(s)}
	if !p.consume("$") {
		return nil, errors.New("missing root marker")
	}
	var out Expr
	for !p.done() {
		step, err := p.step()
		if err != nil {
			return nil, fmt.Errorf("at offset %d: %w", p.pos, err)
		}
		out = append(out, step)
	}
	return out, nil
}

// MustParse parses s as a JSONPath expression, and panics if it is invalid.
func MustParse(s string) Expr {
	e, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("jpath.MustParse %q: %v", s, err))
	}
	return e
}

func (e Expr) String() string {
	var sb strings.Builder
	sb.WriteString("$")
	for _, s := range e {
		switch s.Op {
		case Member, Recur:
			sb.WriteString(s.Op.String())
			if s.Arg2 == QName.String() {
				sb.WriteString("'" + s.Arg1 + "'")
			} else {
				sb.WriteString(s.Arg1)
			}
		case Slice:
			sb.WriteString("[" + s.Arg1 + ":" + s.Arg2 + "]")
		case QName:
			sb.WriteString("['" + s.Arg1 + "']")
		default:
			sb.WriteString("[" + s.Arg1 + "]")
		}
	}
	return sb.String()
}

// A parser consumes the text of an expression from left to right.
type parser struct {
	src string
	pos int
}

func (p *parser) done() bool         { return p.pos >= len(p.src) }
func (p *parser) rest() string       { return p.src[p.pos:] }
func (p *parser) peek(s string) bool { return strings.HasPrefix(p.rest(), s) }

// consume advances past s and reports true if the input continues with s.
func (p *parser) consume(s string) bool {
	if p.peek(s) {
		p.pos += len(s)
		return true
	}
	return false
}

// span advances past the longest prefix of bytes satisfying f, and returns it.
func (p *parser) span(f func(byte) bool) string {
	start := p.pos
	for !p.done() && f(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *parser) step() (Step, error) {
	switch {
	case p.consume(".."):
		kind, name, err := p.name()
		if err != nil {
			return Step{}, fmt.Errorf("invalid ..name: %w", err)
		}
		return Step{Op: Recur, Arg1: name, Arg2: kind.String()}, nil

	case p.consume("."):
		kind, name, err := p.name()
		if err != nil {
			return Step{}, fmt.Errorf("invalid .name: %w", err)
		}
		return Step{Op: Member, Arg1: name, Arg2: kind.String()}, nil

	case p.consume("["):
		step, err := p.selector()
		if err != nil {
			return Step{}, err
		}
		if !p.consume("]") {
			return Step{}, errors.New("missing close bracket")
		}
		if err := step.compile(); err != nil {
			return Step{}, err
		}
		return step, nil
	}
	return Step{}, errors.New("invalid path step")
}

// name parses a word, a quoted name, or a wildcard.
func (p *parser) name() (Op, string, error) {
	if p.consume("*") {
		return Wildcard, "*", nil
	}
	if w := p.span(isWord); w != "" {
		return Name, w, nil
	}
	if p.consume("'") {
		text := p.span(func(b byte) bool { return b != '\'' })
		if !p.consume("'") {
			return Invalid, "", errors.New("unterminated quoted name")
		}
		return QName, text, nil
	}
	return Invalid, "", errors.New("invalid name")
}

// selector parses the contents of a bracketed step.
func (p *parser) selector() (Step, error) {
	switch {
	case p.peek("?("):
		return Step{}, errors.New("filter expressions are not supported")
	case p.peek("("):
		return Step{}, errors.New("script expressions are not supported")
	}

	if lo, ok := p.index(); ok {
		if p.consume(":") {
			hi, _ := p.index()
			return Step{Op: Slice, Arg1: lo, Arg2: hi}, nil
		}
		list := []string{lo}
		for p.consume(",") {
			next, ok := p.index()
			if !ok {
				return Step{}, errors.New("invalid index list")
			}
			list = append(list, next)
		}
		if p.peek(":") {
			return Step{}, errors.New("invalid slice bound")
		}
		return Step{Op: Index, Arg1: strings.Join(list, ",")}, nil
	}
	if p.consume(":") {
		hi, _ := p.index()
		return Step{Op: Slice, Arg2: hi}, nil
	}
	kind, name, err := p.name()
	if err != nil {
		return Step{}, fmt.Errorf("invalid selector: %w", err)
	}
	return Step{Op: kind, Arg1: name}, nil
}

// index parses an optionally-signed decimal integer, and reports whether one
// was found. If not, the input is not consumed.
func (p *parser) index() (string, bool) {
	start := p.pos
	p.consume("-")
	if p.span(isDigit) == "" {
		p.pos = start
		return "", false
	}
	return p.src[start:p.pos], true
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

func isWord(b byte) bool {
	return isDigit(b) || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || b == '_'
}

// An Op is a path operator.
type Op byte

const (
	Invalid  Op = iota // invalid operator
	Member             // member lookup (.)
	Index              // array index lookup
	Slice              // array slice
	Wildcard           // wildcard expansion (*)
	Name               // unquoted name expansion
	QName              // quoted name expansion
	Recur              // recur operator
)

var opText = [...]string{
	Invalid:  "invalid",
	Member:   ".",
	Index:    "index",
	Slice:    "slice",
	Wildcard: "*",
	Name:     "name",
	QName:    "qname",
	Recur:    "..",
}

func (o Op) String() string {
	if int(o) < len(opText) {
		return opText[o]
	}
	return opText[Invalid]
}

// A Step is a single step of a JSONPath expression.
//
// For Member and Recur, Arg1 is the name and Arg2 is the kind of name ("name",
// "qname", or "*"). For Index, Arg1 is a comma-separated list of indices. For
// Slice, Arg1 and Arg2 are the bounds, either of which may be empty.
type Step struct {
	Op   Op
	Arg1 string
	Arg2 string

	idx    []int // Index: selected positions
	lo, hi *int  // Slice: bounds, nil if omitted
}

// compile decodes the numeric arguments of an Index or Slice step.
func (s *Step) compile() error {
	switch s.Op {
	case Index:
		for f := range strings.SplitSeq(s.Arg1, ",") {
			v, err := strconv.Atoi(f)
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", f, err)
			}
			s.idx = append(s.idx, v)
		}
	case Slice:
		var err error
		if s.lo, err = parseBound(s.Arg1); err != nil {
			return err
		}
		if s.hi, err = parseBound(s.Arg2); err != nil {
			return err
		}
	}
	return nil
}

func parseBound(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("invalid slice bound %q: %w", s, err)
	}
	return &v, nil
}
