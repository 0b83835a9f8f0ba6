// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package value

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/creachadair/jview"
)

// A Number is a numeric value. It retains the text of its source so that
// re-encoding does not change its representation.
type Number struct {
	text  string
	isInt bool
}

func (Number) Kind() Kind { return KindNumber }

// JSON returns the source text of n.
func (n Number) JSON() string { return n.text }

// IsInt reports whether n was written as an integer, with no fraction or
// exponent.
func (n Number) IsInt() bool { return n.isInt }

// Float64 returns the value of n as a float64. Values too large to represent
// are reported as infinities.
func (n Number) Float64() float64 {
	v, _ := strconv.ParseFloat(n.text, 64)
	return v
}

// Int64 returns the value of n as an int64, and reports whether n is an
// integer that fits.
func (n Number) Int64() (int64, bool) {
	if !n.isInt {
		return 0, false
	}
	v, err := strconv.ParseInt(n.text, 10, 64)
	return v, err == nil
}

// String returns the canonical display form of n.
//
// Integers are written in decimal with no redundant sign, at any magnitude.
// Other values are written in the shortest form that round-trips through a
// float64, in plain notation when the magnitude is in [1e-6, 1e21) and in
// exponent notation (1.5e-7, 1e+21) otherwise.
func (n Number) String() string {
	if n.isInt {
		if n.text == "-0" {
			return "0"
		}
		return n.text
	}
	return formatFloat(n.Float64())
}

// ParseNumber parses text as a JSON number.
func ParseNumber(text string) (Number, error) {
	s := jview.NewScanner(strings.NewReader(text))
	if err := s.Next(); err != nil {
		return Number{}, fmt.Errorf("invalid number %q: %w", text, err)
	}
	tok := s.Token()
	if tok != jview.Integer && tok != jview.Number {
		return Number{}, fmt.Errorf("invalid number %q: got %v", text, tok)
	}
	if string(s.Text()) != text {
		return Number{}, fmt.Errorf("invalid number %q: extra input", text)
	}
	return Number{text: text, isInt: tok == jview.Integer}, nil
}

// Int returns a Number with the value of v.
func Int(v int64) Number {
	return Number{text: strconv.FormatInt(v, 10), isInt: true}
}

// Uint returns a Number with the value of v.
func Uint(v uint64) Number {
	return Number{text: strconv.FormatUint(v, 10), isInt: true}
}

// Float returns a Number with the value of v. It reports an error if v is
// not finite, since JSON has no representation for NaN or infinities.
func Float(v float64) (Number, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Number{}, errors.New("non-finite number")
	}
	text := formatFloat(v)
	return Number{text: text, isInt: !strings.ContainsAny(text, ".e")}, nil
}

func formatFloat(v float64) string {
	switch {
	case v == 0:
		return "0"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	if abs := math.Abs(v); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	// Go writes at least two exponent digits ("1e-07"); drop the padding.
	s := strconv.FormatFloat(v, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	return mant + "e" + sign + digits
}
