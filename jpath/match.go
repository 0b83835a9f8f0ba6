// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jpath

import "slices"

// Match reports whether e selects the concrete path through a document whose
// steps are given by path. Each element of path must be a string (an object
// key) or an int (an array index); elements of other types never match.
//
// Match does not know the lengths of the arrays along the path, so negative
// indices and slice bounds never match. Use MatchLen to supply lengths.
func (e Expr) Match(path []any) bool { return e.MatchLen(path, nil) }

// MatchLen is like Match, but lens[i] gives the length of the array indexed
// by path[i], allowing negative indices and slice bounds to be resolved from
// the end of the array. A missing or negative entry means the length is not
// known.
func (e Expr) MatchLen(path []any, lens []int) bool {
	m := matcher{path: path, lens: lens}
	return m.match(e, 0)
}

type matcher struct {
	path []any
	lens []int
}

// match reports whether steps match the path from offset pos to its end.
func (m matcher) match(steps []Step, pos int) bool {
	if len(steps) == 0 {
		return pos == len(m.path)
	}
	step, rest := steps[0], steps[1:]
	if step.Op == Recur {
		// A descendant step matches at any depth at or below pos.
		for i := pos; i < len(m.path); i++ {
			if m.matchOne(step, i) && m.match(rest, i+1) {
				return true
			}
		}
		return false
	}
	if pos >= len(m.path) || !m.matchOne(step, pos) {
		return false
	}
	return m.match(rest, pos+1)
}

// matchOne reports whether step selects the single path element at pos.
func (m matcher) matchOne(step Step, pos int) bool {
	switch step.Op {
	case Member, Recur, Name, QName, Wildcard:
		if step.Op == Wildcard || step.Arg2 == "*" {
			return true
		}
		key, ok := m.path[pos].(string)
		return ok && key == step.Arg1

	case Index:
		i, ok := m.path[pos].(int)
		if !ok {
			return false
		}
		n := m.length(pos)
		return slices.ContainsFunc(step.idx, func(want int) bool {
			w, ok := resolve(want, n)
			return ok && w == i
		})

	case Slice:
		i, ok := m.path[pos].(int)
		if !ok {
			return false
		}
		n := m.length(pos)
		if step.lo != nil {
			lo, ok := resolve(*step.lo, n)
			if !ok || i < lo {
				return false
			}
		}
		if step.hi != nil {
			hi, ok := resolve(*step.hi, n)
			if !ok || i >= hi {
				return false
			}
		}
		return true
	}
	return false
}

func (m matcher) length(pos int) int {
	if pos < len(m.lens) {
		return m.lens[pos]
	}
	return -1
}

// resolve converts a possibly-negative index v into an absolute offset in an
// array of length n, where n < 0 means the length is unknown.
func resolve(v, n int) (int, bool) {
	if v >= 0 {
		return v, true
	} else if n < 0 {
		return 0, false
	}
	return n + v, true
}
