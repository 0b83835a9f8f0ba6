// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package tree

import (
	"iter"
	"slices"

	"github.com/creachadair/jview/value"
)

// A Node is a single visible row of a projected document.
type Node struct {
	Path       Path        // the structured path of the value
	Key        string      // the display label, see Path.KeyDisplay
	Kind       value.Kind  // the kind of the value
	Depth      int         // nesting level; the root has depth 0
	Expandable bool        // whether the value is an array or object
	Count      int         // number of children, if Expandable
	Expanded   bool        // whether the children are visible, if Expandable
	Display    string      // display text, if not Expandable; see FormatScalar
	Value      value.Value // the underlying value
}

// NodeOf constructs the node for v at path p, given the expansion state.
func NodeOf(v value.Value, p Path, st State) Node {
	n := Node{
		Path:  p,
		Key:   p.KeyDisplay(),
		Kind:  value.KindOf(v),
		Depth: len(p),
		Value: v,
	}
	switch t := v.(type) {
	case value.Array:
		n.Expandable, n.Count = true, len(t)
	case value.Object:
		n.Expandable, n.Count = true, len(t)
	default:
		n.Display = FormatScalar(v)
	}
	n.Expanded = n.Expandable && st.Has(p)
	return n
}

// Visible returns a sequence of the nodes of root that are visible in the
// given expansion state, in pre-order: the root first, then the children of
// each expanded container in array index or object member order. The
// descendants of a collapsed container are not visited.
//
// The sequence is computed on demand, and may be iterated any number of
// times with the same result.
func Visible(root value.Value, st State) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		type frame struct {
			path Path
			v    value.Value
		}
		stk := []frame{{path: Root, v: root}}
		for len(stk) != 0 {
			top := stk[len(stk)-1]
			stk = stk[:len(stk)-1]

			n := NodeOf(top.v, top.path, st)
			if !yield(n) {
				return
			}
			if !n.Expanded {
				continue
			}
			kids := Children(top.v, top.path)
			for i := len(kids) - 1; i >= 0; i-- {
				stk = append(stk, frame{path: kids[i].Path, v: kids[i].Value})
			}
		}
	}
}

// Project parses input and returns the nodes visible in the given expansion
// state. It is a convenience wrapper for Parse and Visible.
func Project(input any, st State) ([]Node, error) {
	root, err := Parse(input)
	if err != nil {
		return nil, err
	}
	return slices.Collect(Visible(root, st)), nil
}
