// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package value

import (
	"fmt"
	"io"
	"strings"

	"github.com/creachadair/jview"
)

// Parse parses and returns a single JSON value from r. It reports an error if
// r does not contain exactly one value. Syntax errors have concrete type
// *jview.SyntaxError.
func Parse(r io.Reader) (Value, error) {
	h := new(parseHandler)
	if err := jview.NewStream(r).ParseSingle(h); err != nil {
		return nil, err
	}
	return h.result, nil
}

// ParseString parses a single JSON value from the text of s.
func ParseString(s string) (Value, error) { return Parse(strings.NewReader(s)) }

// A parseHandler implements the jview.Handler interface to construct values.
// Incomplete arrays, objects, and members are kept on a stack, and each
// completed value is reduced into the container atop the stack.
type parseHandler struct {
	stk    []any // *arrayStub, *objectStub, or *Member
	result Value
}

// arrayStub is a stack placeholder for an incomplete array.
type arrayStub struct{ values Array }

// objectStub is a stack placeholder for an incomplete object. It remembers
// where each key was first seen so that a repeated key replaces the value of
// the earlier member in its original position.
type objectStub struct {
	members Object
	seen    map[string]int
}

func (o *objectStub) add(m *Member) {
	if i, ok := o.seen[m.Key]; ok {
		o.members[i].Value = m.Value
		return
	}
	if o.seen == nil {
		o.seen = make(map[string]int)
	}
	o.seen[m.Key] = len(o.members)
	o.members = append(o.members, m)
}

func (h *parseHandler) push(v any) { h.stk = append(h.stk, v) }

func (h *parseHandler) pop() any {
	last := h.stk[len(h.stk)-1]
	h.stk = h.stk[:len(h.stk)-1]
	return last
}

// reduce adds a completed value v to the incomplete value atop the stack, or
// records it as the result if the stack is empty.
func (h *parseHandler) reduce(v Value) error {
	if len(h.stk) == 0 {
		h.result = v
		return nil
	}
	switch top := h.stk[len(h.stk)-1].(type) {
	case *Member:
		top.Value = v
		h.pop()
		h.stk[len(h.stk)-1].(*objectStub).add(top)
	case *arrayStub:
		top.values = append(top.values, v)
	default:
		return fmt.Errorf("unexpected %T on parse stack", top)
	}
	return nil
}

func (h *parseHandler) BeginObject(jview.Anchor) error {
	h.push(&objectStub{members: Object{}})
	return nil
}

func (h *parseHandler) EndObject(jview.Anchor) error {
	return h.reduce(h.pop().(*objectStub).members)
}

func (h *parseHandler) BeginArray(jview.Anchor) error {
	h.push(&arrayStub{values: Array{}})
	return nil
}

func (h *parseHandler) EndArray(jview.Anchor) error {
	return h.reduce(h.pop().(*arrayStub).values)
}

func (h *parseHandler) BeginMember(loc jview.Anchor) error {
	key, err := jview.Unquote(loc.Text())
	if err != nil {
		return fmt.Errorf("at %v: invalid key: %w", loc.Location().First, err)
	}
	h.push(&Member{Key: string(key)})
	return nil
}

// EndMember is a no-op: the member was reduced into its object when its
// value was complete.
func (h *parseHandler) EndMember(jview.Anchor) error { return nil }

func (h *parseHandler) Value(loc jview.Anchor) error {
	v, err := AnchorValue(loc)
	if err != nil {
		return err
	}
	return h.reduce(v)
}

func (h *parseHandler) EndOfInput(jview.Anchor) {}

// AnchorValue converts the scalar token at loc into a Value.
func AnchorValue(loc jview.Anchor) (Value, error) {
	switch tok := loc.Token(); tok {
	case jview.String:
		s, err := jview.Unquote(loc.Text())
		if err != nil {
			return nil, fmt.Errorf("at %v: invalid string: %w", loc.Location().First, err)
		}
		return String(s), nil
	case jview.Integer, jview.Number:
		return Number{text: string(loc.Text()), isInt: tok == jview.Integer}, nil
	case jview.True, jview.False:
		return Bool(tok == jview.True), nil
	case jview.Null:
		return Null{}, nil
	default:
		return nil, fmt.Errorf("unknown value %v", tok)
	}
}
