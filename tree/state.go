// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package tree

import (
	"maps"
	"slices"
	"strings"

	"github.com/creachadair/jview/jpath"
	"github.com/creachadair/jview/value"
	"github.com/creachadair/mds/mapset"
)

// A State is an immutable set of expanded paths. A container whose path is
// in the state shows its children; any other container is collapsed.
//
// The zero State is empty, meaning every container including the root is
// collapsed. Methods that change the state return a new State and leave the
// receiver unmodified, so a State may be shared freely.
type State struct {
	open mapset.Set[string] // encoded paths
}

// NewState returns a state in which only the root is expanded.
func NewState() State { return State{open: mapset.New(Root.Encode())} }

// StateOf returns a state in which exactly the given paths are expanded.
func StateOf(paths ...Path) State {
	s := mapset.New[string]()
	for _, p := range paths {
		s.Add(p.Encode())
	}
	return State{open: s}
}

// Has reports whether p is expanded in s.
func (s State) Has(p Path) bool { return s.open.Has(p.Encode()) }

// Len reports the number of expanded paths in s.
func (s State) Len() int { return s.open.Len() }

// Toggle returns a copy of s in which the membership of p is inverted.
// Toggling a path does not change the membership of any other path, so
// collapsing a container preserves the state of its descendants. The path
// is not checked against any document.
func (s State) Toggle(p Path) State {
	next := s.clone()
	if key := p.Encode(); next.Has(key) {
		next.Remove(key)
	} else {
		next.Add(key)
	}
	return State{open: next}
}

// Expand returns a copy of s in which p is expanded.
func (s State) Expand(p Path) State {
	if s.Has(p) {
		return s
	}
	return s.Toggle(p)
}

// Collapse returns a copy of s in which p is collapsed.
func (s State) Collapse(p Path) State {
	if !s.Has(p) {
		return s
	}
	return s.Toggle(p)
}

// Paths returns the expanded paths of s in order of their encodings.
func (s State) Paths() []Path {
	keys := slices.Sorted(maps.Keys(s.open))
	out := make([]Path, 0, len(keys))
	for _, key := range keys {
		p, err := DecodePath(key)
		if err != nil {
			panic("tree: invalid path in state: " + key) // should not be possible
		}
		out = append(out, p)
	}
	return out
}

// Equal reports whether s and o expand exactly the same paths.
func (s State) Equal(o State) bool { return maps.Equal(s.open, o.open) }

func (s State) String() string {
	keys := slices.Sorted(maps.Keys(s.open))
	return "{" + strings.Join(keys, " ") + "}"
}

func (s State) clone() mapset.Set[string] {
	if s.open == nil {
		return mapset.New[string]()
	}
	return maps.Clone(s.open)
}

// ExpandAll returns a state in which every container of root is expanded.
func ExpandAll(root value.Value) State { return ExpandDepth(root, -1) }

// CollapseAll returns a state in which every container is collapsed,
// including the root.
func CollapseAll() State { return State{} }

// ExpandDepth returns a state in which every container of root at depth less
// than n is expanded, where the root has depth 0. ExpandDepth(root, 1)
// expands only the root. If n < 0, all containers are expanded.
func ExpandDepth(root value.Value, n int) State {
	s := mapset.New[string]()
	walkContainers(root, func(p Path, _ value.Value, _ []int) bool {
		if n >= 0 && len(p) >= n {
			return false
		}
		s.Add(p.Encode())
		return true
	})
	return State{open: s}
}

// ExpandMatching returns a copy of s in which every container of root whose
// path is selected by expr is expanded, along with all its ancestors, so
// that the children of each selected container are visible.
func (s State) ExpandMatching(root value.Value, expr jpath.Expr) State {
	next := s.clone()
	walkContainers(root, func(p Path, _ value.Value, lens []int) bool {
		if expr.MatchLen(p.Steps(), lens) {
			for i := range len(p) + 1 {
				next.Add(p[:i].Encode())
			}
		}
		return true
	})
	return State{open: next}
}

// walkContainers calls f for each container in root in pre-order, with its
// path, its value, and the lengths of the arrays indexed along the path (-1
// for object steps). If f returns false, the descendants of that container
// are skipped.
func walkContainers(root value.Value, f func(Path, value.Value, []int) bool) {
	type frame struct {
		path Path
		v    value.Value
		lens []int
	}
	stk := []frame{{path: Root, v: root}}
	for len(stk) != 0 {
		top := stk[len(stk)-1]
		stk = stk[:len(stk)-1]
		if !value.KindOf(top.v).IsContainer() || !f(top.path, top.v, top.lens) {
			continue
		}
		n := -1
		if a, ok := top.v.(value.Array); ok {
			n = len(a)
		}
		kids := Children(top.v, top.path)
		for i := len(kids) - 1; i >= 0; i-- {
			lens := append(slices.Clip(top.lens), n)
			stk = append(stk, frame{path: kids[i].Path, v: kids[i].Value, lens: lens})
		}
	}
}
