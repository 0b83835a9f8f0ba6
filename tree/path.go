// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package tree

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/creachadair/jview"
	"github.com/creachadair/jview/value"
)

// A Step is a single step of a Path: either an object key or an array index.
type Step struct {
	key   string
	index int // -1 for a key step
}

// Key returns a path step that selects the object member with key k.
func Key(k string) Step { return Step{key: k, index: -1} }

// Index returns a path step that selects offset i of an array.
// It panics if i < 0.
func Index(i int) Step {
	if i < 0 {
		panic(fmt.Sprintf("tree.Index: negative index %d", i))
	}
	return Step{index: i}
}

// IsIndex reports whether s is an array index step.
func (s Step) IsIndex() bool { return s.index >= 0 }

// Key returns the object key selected by s, or "" if s is an index step.
func (s Step) Key() string { return s.key }

// Index returns the array offset selected by s, or -1 if s is a key step.
func (s Step) Index() int { return s.index }

// Any returns the key of s as a string, or its index as an int.
func (s Step) Any() any {
	if s.IsIndex() {
		return s.index
	}
	return s.key
}

func (s Step) String() string {
	if s.IsIndex() {
		return "[" + strconv.Itoa(s.index) + "]"
	}
	return s.key
}

// A Path is the sequence of steps from the root of a document to one of its
// values. The empty path denotes the root itself.
//
// Paths compare by their steps, so keys that contain "." or "[n]" do not
// collide with structurally different paths.
type Path []Step

// Root is the path of the root value.
var Root = Path{}

// IsRoot reports whether p is the root path.
func (p Path) IsRoot() bool { return len(p) == 0 }

// Append returns a new path extending p by s. The receiver is not modified.
func (p Path) Append(s Step) Path { return append(slices.Clip(p), s) }

// Parent returns the path of the parent of p. The parent of the root is the
// root.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return p
	}
	return p[:len(p)-1]
}

// Last returns the final step of p, and reports whether p has one.
func (p Path) Last() (Step, bool) {
	if len(p) == 0 {
		return Step{}, false
	}
	return p[len(p)-1], true
}

// Equal reports whether p and q have the same steps.
func (p Path) Equal(q Path) bool { return slices.Equal(p, q) }

// Steps returns the steps of p as strings (keys) and ints (indices), the
// form used by jpath.Expr.Match.
func (p Path) Steps() []any {
	out := make([]any, len(p))
	for i, s := range p {
		out[i] = s.Any()
	}
	return out
}

// String renders p in the dotted display form: "root" for the root, the bare
// key for a member of the root object, parent.key for deeper members, and
// parent[i] for array elements. This form is for display only, since
// different paths may render the same way; use Encode for a unique key.
func (p Path) String() string {
	var sb strings.Builder
	sb.WriteString("root")
	for i, s := range p {
		switch {
		case s.IsIndex():
			fmt.Fprintf(&sb, "[%d]", s.index)
		case i == 0:
			sb.Reset()
			sb.WriteString(s.key)
		default:
			sb.WriteByte('.')
			sb.WriteString(s.key)
		}
	}
	return sb.String()
}

// KeyDisplay returns the label shown for the value at p: "root" for the
// root, "[i]" for an array element, and the key for an object member.
func (p Path) KeyDisplay() string {
	last, ok := p.Last()
	if !ok {
		return "root"
	}
	return last.String()
}

// JSONPath renders p as a JSONPath expression, for example $['a'][0].
func (p Path) JSONPath() string {
	var sb strings.Builder
	sb.WriteString("$")
	for _, s := range p {
		if s.IsIndex() {
			fmt.Fprintf(&sb, "[%d]", s.index)
		} else {
			sb.WriteString("['")
			sb.WriteString(quoteRepl.Replace(s.key))
			sb.WriteString("']")
		}
	}
	return sb.String()
}

var quoteRepl = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// Encode renders p as a JSON array of its keys (strings) and indices
// (numbers), for example ["a",0]. The root encodes as []. Distinct paths
// have distinct encodings, and DecodePath inverts Encode.
func (p Path) Encode() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, s := range p {
		if i > 0 {
			sb.WriteByte(',')
		}
		if s.IsIndex() {
			sb.WriteString(strconv.Itoa(s.index))
		} else {
			sb.WriteString(jview.Quote(s.key))
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

// DecodePath parses the encoding of a path produced by Encode.
func DecodePath(s string) (Path, error) {
	v, err := value.ParseString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	arr, ok := v.(value.Array)
	if !ok {
		return nil, fmt.Errorf("invalid path: got %v, want array", value.KindOf(v))
	}
	out := make(Path, len(arr))
	for i, elt := range arr {
		switch t := elt.(type) {
		case value.String:
			out[i] = Key(string(t))
		case value.Number:
			n, ok := t.Int64()
			if !ok || n < 0 || n > int64(maxIndex) {
				return nil, fmt.Errorf("invalid path index %s", t.JSON())
			}
			out[i] = Index(int(n))
		default:
			return nil, fmt.Errorf("invalid path step %v", value.KindOf(elt))
		}
	}
	return out, nil
}

const maxIndex = int(^uint(0) >> 1)

// ErrNotFound is reported by Resolve when a path does not address a value.
var ErrNotFound = errors.New("path not found")

// Resolve returns the value addressed by p within root.
func Resolve(root value.Value, p Path) (value.Value, error) {
	cur := root
	for i, s := range p {
		switch t := cur.(type) {
		case value.Object:
			if s.IsIndex() {
				return nil, fmt.Errorf("%w: cannot index object at %v with %v", ErrNotFound, p[:i], s)
			}
			m := t.Find(s.key)
			if m == nil {
				return nil, fmt.Errorf("%w: key %q not found at %v", ErrNotFound, s.key, p[:i])
			}
			cur = m.Value
		case value.Array:
			if !s.IsIndex() {
				return nil, fmt.Errorf("%w: cannot traverse array at %v with key %q", ErrNotFound, p[:i], s.key)
			} else if s.index >= len(t) {
				return nil, fmt.Errorf("%w: array index %d out of bounds (n=%d) at %v", ErrNotFound, s.index, len(t), p[:i])
			}
			cur = t[s.index]
		default:
			return nil, fmt.Errorf("%w: cannot traverse %v at %v", ErrNotFound, value.KindOf(cur), p[:i])
		}
	}
	return cur, nil
}

var trailingIndex = regexp.MustCompile(`\[\d+\]$`)

// DisplayKey returns the label for a value given its path in the dotted
// display form produced by Path.String: "root" for the root, "[i]" when the
// path ends in an array index, and otherwise the text after the last ".".
func DisplayKey(path string) string {
	if path == "root" {
		return path
	}
	if m := trailingIndex.FindString(path); m != "" {
		return m
	}
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i+1:]
	}
	return path
}

// A Child is an immediate child of a container value.
type Child struct {
	Key   string // the object key, or the decimal array index
	Path  Path   // the path of the child
	Value value.Value
}

// Children returns the immediate children of v, whose path is p, in array
// index order or object member order. It returns nil for a scalar.
func Children(v value.Value, p Path) []Child {
	switch t := v.(type) {
	case value.Object:
		out := make([]Child, len(t))
		for i, m := range t {
			out[i] = Child{Key: m.Key, Path: p.Append(Key(m.Key)), Value: m.Value}
		}
		return out
	case value.Array:
		out := make([]Child, len(t))
		for i, elt := range t {
			out[i] = Child{Key: strconv.Itoa(i), Path: p.Append(Index(i)), Value: elt}
		}
		return out
	}
	return nil
}
