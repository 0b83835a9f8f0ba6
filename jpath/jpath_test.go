// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jpath_test

import (
	"testing"

	"github.com/creachadair/jview/jpath"
	"github.com/creachadair/mds/mtest"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
	}{
		{"$"},
		{"$.store.book[*]..author"},
		{"$..author"},
		{"$.store.*"},
		{"$.store..price"},
		{"$..book[2]"},
		{"$..book[-1:]"},
		{"$..book[0,1]"},
		{"$..book[:2]"},
		{"$..book[1:3]"},
		{"$..*"},
		{"$['apple sauce'].pearPlum..'cherry apple'"},
		{"$[a][1:3][b]['c d e']"},
	}
	for _, test := range tests {
		e, err := jpath.Parse(test.input)
		if err != nil {
			t.Errorf("Parse %q: %v", test.input, err)
			continue
		}

		want := test.input
		if got := e.String(); got != want {
			t.Errorf("Parse %q:\n got %q\nwant %q", test.input, got, want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		"",
		"store.book",
		"$.",
		"$..",
		"$[",
		"$[1",
		"$['open",
		"$..book[(@.length-1)]",
		"$..book[?(@.isbn)]",
		"$..book[?(@price<10)]",
		"$[1,2:3]",
		"$[1:2,3]",
		"$ x",
	}
	for _, input := range tests {
		if e, err := jpath.Parse(input); err == nil {
			t.Errorf("Parse %q: got %v, want error", input, e)
		} else {
			t.Logf("Parse %q: got expected error: %v", input, err)
		}
	}
	mtest.MustPanic(t, func() { jpath.MustParse("$[?(@.x)]") })
}

func TestMatch(t *testing.T) {
	tests := []struct {
		expr string
		path []any
		want bool
	}{
		{"$", nil, true},
		{"$", []any{"a"}, false},
		{"$.a", []any{"a"}, true},
		{"$.a", []any{"b"}, false},
		{"$.a", []any{"a", "b"}, false},
		{"$.a.b", []any{"a", "b"}, true},
		{"$['a b']", []any{"a b"}, true},
		{"$.'a b'", []any{"a b"}, true},
		{"$[a]", []any{"a"}, true},
		{"$.0", []any{0}, false},
		{"$.0", []any{"0"}, true},

		{"$.*", []any{"x"}, true},
		{"$.*", []any{3}, true},
		{"$[*]", []any{3}, true},
		{"$.*", nil, false},
		{"$.*.id", []any{"q", "id"}, true},

		{"$.items[1]", []any{"items", 1}, true},
		{"$.items[1]", []any{"items", 0}, false},
		{"$.items[1]", []any{"items", "1"}, false},
		{"$.items[0,2]", []any{"items", 2}, true},
		{"$.items[0,2]", []any{"items", 1}, false},
		{"$.items[-1]", []any{"items", 4}, false}, // length unknown

		{"$[1:3]", []any{0}, false},
		{"$[1:3]", []any{1}, true},
		{"$[1:3]", []any{2}, true},
		{"$[1:3]", []any{3}, false},
		{"$[:2]", []any{1}, true},
		{"$[:2]", []any{2}, false},
		{"$[2:]", []any{100}, true},
		{"$[-2:]", []any{100}, false}, // length unknown

		{"$..id", []any{"id"}, true},
		{"$..id", []any{"a", 3, "id"}, true},
		{"$..id", []any{"a", 3, "id", "x"}, false},
		{"$..id", []any{"a", "ids"}, false},
		{"$..*", []any{"a"}, true},
		{"$..*", []any{"a", 1, "b"}, true},
		{"$..*", nil, false},
		{"$.a..b", []any{"a", "b"}, true},
		{"$.a..b", []any{"a", 0, "x", "b"}, true},
		{"$.a..b", []any{"c", "b"}, false},
		{"$..a..b", []any{"x", "a", "y", "b"}, true},
		{"$..items[0]", []any{"order", "items", 0}, true},
		{"$..items[0]", []any{"order", "items", 1}, false},

		{"$.a", []any{1.5}, false},
	}
	for _, test := range tests {
		e := jpath.MustParse(test.expr)
		if got := e.Match(test.path); got != test.want {
			t.Errorf("Match(%q, %v): got %v, want %v", test.expr, test.path, got, test.want)
		}
	}
}

func TestMatchLen(t *testing.T) {
	tests := []struct {
		expr string
		path []any
		lens []int
		want bool
	}{
		{"$[-1]", []any{4}, []int{5}, true},
		{"$[-1]", []any{3}, []int{5}, false},
		{"$[-1]", []any{4}, []int{-1}, false},
		{"$[-1]", []any{4}, nil, false},
		{"$[-2:]", []any{3}, []int{5}, true},
		{"$[-2:]", []any{2}, []int{5}, false},
		{"$[:-1]", []any{3}, []int{5}, true},
		{"$[:-1]", []any{4}, []int{5}, false},
		{"$.a[-1]", []any{"a", 1}, []int{-1, 2}, true},
		{"$..x[-1]", []any{"q", "x", 0}, []int{-1, -1, 1}, true},
	}
	for _, test := range tests {
		e := jpath.MustParse(test.expr)
		if got := e.MatchLen(test.path, test.lens); got != test.want {
			t.Errorf("MatchLen(%q, %v, %v): got %v, want %v",
				test.expr, test.path, test.lens, got, test.want)
		}
	}
}
