// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package value defines an immutable model for JSON values, and a parser that
// constructs values from JSON source.
//
// A Value is one of Null, Bool, Number, String, Array, or Object. Objects
// preserve the order of their members as given in the source text.
package value

import (
	"fmt"
	"strings"

	"github.com/creachadair/jview"
)

// A Kind classifies a Value.
type Kind byte

// Constants defining the kinds of JSON values.
const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

var kindStr = [...]string{
	KindNull:   "null",
	KindBool:   "boolean",
	KindNumber: "number",
	KindString: "string",
	KindArray:  "array",
	KindObject: "object",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return fmt.Sprintf("Kind(%d)", k)
	}
	return kindStr[k]
}

// IsContainer reports whether k is the kind of an array or an object.
func (k Kind) IsContainer() bool { return k == KindArray || k == KindObject }

// A Value is an arbitrary JSON value.
type Value interface {
	// Kind reports the kind of the value.
	Kind() Kind

	// JSON renders the value as compact JSON text.
	JSON() string
}

// KindOf reports the kind of v. A nil Value is reported as KindNull.
func KindOf(v Value) Kind {
	if v == nil {
		return KindNull
	}
	return v.Kind()
}

// Null represents the null constant.
type Null struct{}

func (Null) Kind() Kind     { return KindNull }
func (Null) JSON() string   { return "null" }
func (Null) String() string { return "null" }

// A Bool is a Boolean constant, true or false.
type Bool bool

func (Bool) Kind() Kind { return KindBool }

func (b Bool) JSON() string {
	if b {
		return "true"
	}
	return "false"
}

// A String is a decoded string value.
type String string

func (String) Kind() Kind { return KindString }

// JSON renders s as a quoted and escaped JSON string.
func (s String) JSON() string { return jview.Quote(string(s)) }

// An Array is an ordered sequence of values.
type Array []Value

func (Array) Kind() Kind { return KindArray }

// Len reports the number of elements in a.
func (a Array) Len() int { return len(a) }

func (a Array) JSON() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range a {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(encode(v))
	}
	sb.WriteByte(']')
	return sb.String()
}

// An Object is an ordered collection of key-value members.
type Object []*Member

func (Object) Kind() Kind { return KindObject }

// Len reports the number of members in o.
func (o Object) Len() int { return len(o) }

// Find returns the member of o with the given key, or nil.
func (o Object) Find(key string) *Member {
	for _, m := range o {
		if m.Key == key {
			return m
		}
	}
	return nil
}

// Keys returns the keys of o in order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, m := range o {
		keys[i] = m.Key
	}
	return keys
}

func (o Object) JSON() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(m.JSON())
	}
	sb.WriteByte('}')
	return sb.String()
}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

// JSON renders the member as "key":value.
func (m *Member) JSON() string { return jview.Quote(m.Key) + ":" + encode(m.Value) }

// Field constructs an object member with the given key and value.
// The value must be acceptable to ToValue.
func Field(key string, value any) *Member {
	return &Member{Key: key, Value: ToValue(value)}
}

// encode renders v as JSON, treating a nil Value as null.
func encode(v Value) string {
	if v == nil {
		return "null"
	}
	return v.JSON()
}
