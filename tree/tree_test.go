// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package tree_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/creachadair/jview/internal/testutil"
	"github.com/creachadair/jview/jpath"
	"github.com/creachadair/jview/tree"
	"github.com/creachadair/jview/value"
	"github.com/creachadair/mds/mtest"
	"github.com/google/go-cmp/cmp"
)

// rows summarizes the visible nodes of root in st, one per node, as
// path:display for scalars and path:kind(count) for containers.
func rows(root value.Value, st tree.State) []string {
	var out []string
	for n := range tree.Visible(root, st) {
		if n.Expandable {
			out = append(out, fmt.Sprintf("%s:%s(%d)", n.Path, n.Kind, n.Count))
		} else {
			out = append(out, fmt.Sprintf("%s:%s", n.Path, n.Display))
		}
	}
	return out
}

func p(steps ...any) tree.Path {
	var out tree.Path
	for _, s := range steps {
		switch t := s.(type) {
		case string:
			out = append(out, tree.Key(t))
		case int:
			out = append(out, tree.Index(t))
		default:
			panic(fmt.Sprintf("invalid step %T", s))
		}
	}
	return out
}

func TestParse(t *testing.T) {
	t.Run("NoData", func(t *testing.T) {
		if v, err := tree.Parse(nil); !errors.Is(err, tree.ErrNoData) {
			t.Errorf("Parse(nil): got (%v, %v), want %v", v, err, tree.ErrNoData)
		}
	})
	t.Run("Empty", func(t *testing.T) {
		for _, input := range []any{"", "   ", "\n\t ", []byte(" ")} {
			if v, err := tree.Parse(input); !errors.Is(err, tree.ErrEmptyInput) {
				t.Errorf("Parse(%q): got (%v, %v), want %v", input, v, err, tree.ErrEmptyInput)
			}
		}
	})
	t.Run("Malformed", func(t *testing.T) {
		for _, input := range []string{"{bad", `{"a":}`, "[1,]", "1 2", `"x`, "nope"} {
			v, err := tree.Parse(input)
			var merr *tree.MalformedError
			if !errors.As(err, &merr) {
				t.Errorf("Parse(%q): got (%v, %v), want *MalformedError", input, v, err)
				continue
			}
			if merr.Message == "" {
				t.Errorf("Parse(%q): empty diagnostic", input)
			}
			if !errors.Is(err, tree.ErrMalformed) {
				t.Errorf("Parse(%q): error %v does not match ErrMalformed", input, err)
			}
			if !strings.HasPrefix(err.Error(), "invalid JSON: ") {
				t.Errorf("Parse(%q): error %q lacks prefix", input, err)
			}
		}
	})
	t.Run("InvalidType", func(t *testing.T) {
		for _, input := range []any{func() {}, make(chan int), struct{ X int }{1}, map[string]any{"f": 1i}} {
			if v, err := tree.Parse(input); !errors.Is(err, tree.ErrInvalidType) {
				t.Errorf("Parse(%T): got (%v, %v), want %v", input, v, err, tree.ErrInvalidType)
			}
		}
	})
	t.Run("Text", func(t *testing.T) {
		v, err := tree.Parse("  \n" + testutil.OrderJSON + "\n")
		if err != nil {
			t.Fatalf("Parse: unexpected error: %v", err)
		}
		if got := value.KindOf(v); got != value.KindObject {
			t.Errorf("Parse: got %v, want object", got)
		}
		b, err := tree.Parse([]byte(`[1, "two"]`))
		if err != nil {
			t.Fatalf("Parse: unexpected error: %v", err)
		} else if got := b.JSON(); got != `[1,"two"]` {
			t.Errorf("Parse: got %#q, want %#q", got, `[1,"two"]`)
		}
	})
	t.Run("Structured", func(t *testing.T) {
		in := map[string]any{"b": []any{true, nil}, "a": 1.5}
		v, err := tree.Parse(in)
		if err != nil {
			t.Fatalf("Parse: unexpected error: %v", err)
		}
		if got, want := v.JSON(), `{"a":1.5,"b":[true,null]}`; got != want {
			t.Errorf("Parse: got %#q, want %#q", got, want)
		}
		orig := value.ArrayOf("x", "y")
		if got, err := tree.Parse(orig); err != nil || got.JSON() != orig.JSON() {
			t.Errorf("Parse(Value): got (%v, %v), want %v", got, err, orig)
		}
		if got, err := tree.Parse(false); err != nil || got.JSON() != "false" {
			t.Errorf("Parse(false): got (%v, %v)", got, err)
		}
	})
	t.Run("JWCC", func(t *testing.T) {
		const input = `{
  // The name of the thing.
  "name": "widget",
  "sizes": [1, 2, 3,], /* trailing commas */
}`
		if _, err := tree.Parse(input); !errors.Is(err, tree.ErrMalformed) {
			t.Errorf("Parse without JWCC: got %v, want %v", err, tree.ErrMalformed)
		}
		text := []byte(input)
		v, err := tree.Parser{AllowJWCC: true}.Parse(text)
		if err != nil {
			t.Fatalf("Parse with JWCC: unexpected error: %v", err)
		}
		if got, want := v.JSON(), `{"name":"widget","sizes":[1,2,3]}`; got != want {
			t.Errorf("Parse with JWCC: got %#q, want %#q", got, want)
		}
		if string(text) != input {
			t.Error("Parse with JWCC modified its input")
		}
		if _, err := (tree.Parser{AllowJWCC: true}).Parse(`{"a": /* open`); !errors.Is(err, tree.ErrMalformed) {
			t.Errorf("Parse bad JWCC: got %v, want %v", err, tree.ErrMalformed)
		}
	})
}

func TestPathString(t *testing.T) {
	tests := []struct {
		path tree.Path
		want string
		key  string
	}{
		{nil, "root", "root"},
		{tree.Root, "root", "root"},
		{p("a"), "a", "a"},
		{p(0), "root[0]", "[0]"},
		{p(3, 1), "root[3][1]", "[1]"},
		{p("a", "b"), "a.b", "b"},
		{p("a", 2), "a[2]", "[2]"},
		{p("a", 2, "c"), "a[2].c", "c"},
		{p(0, "x", "y"), "root[0].x.y", "y"},
		{p("a.b"), "a.b", "a.b"},
		{p(""), "", ""},
	}
	for _, test := range tests {
		if got := test.path.String(); got != test.want {
			t.Errorf("String %#v: got %q, want %q", test.path.Steps(), got, test.want)
		}
		if got := test.path.KeyDisplay(); got != test.key {
			t.Errorf("KeyDisplay %q: got %q, want %q", test.want, got, test.key)
		}
	}
}

func TestDisplayKey(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"root", "root"},
		{"a", "a"},
		{"a.b", "b"},
		{"a.b.c", "c"},
		{"root[0]", "[0]"},
		{"a[12]", "[12]"},
		{"a[2].c", "c"},
		{"a[2][5]", "[5]"},
		{"x[y]", "x[y]"},
	}
	for _, test := range tests {
		if got := tree.DisplayKey(test.input); got != test.want {
			t.Errorf("DisplayKey(%q): got %q, want %q", test.input, got, test.want)
		}
	}
}

func TestPathEncoding(t *testing.T) {
	tests := []struct {
		path     tree.Path
		encoded  string
		jsonPath string
	}{
		{tree.Root, `[]`, `$`},
		{p("a"), `["a"]`, `$['a']`},
		{p("a", 0, "b c"), `["a",0,"b c"]`, `$['a'][0]['b c']`},
		{p("a.b"), `["a.b"]`, `$['a.b']`},
		{p("a", "b"), `["a","b"]`, `$['a']['b']`},
		{p("[0]"), `["[0]"]`, `$['[0]']`},
		{p("it's", `x"y`), `["it's","x\"y"]`, `$['it\'s']['x"y']`},
		{p(10), `[10]`, `$[10]`},
	}
	for _, test := range tests {
		enc := test.path.Encode()
		if enc != test.encoded {
			t.Errorf("Encode %v: got %#q, want %#q", test.path, enc, test.encoded)
		}
		dec, err := tree.DecodePath(enc)
		if err != nil {
			t.Errorf("DecodePath(%#q): unexpected error: %v", enc, err)
		} else if !dec.Equal(test.path) {
			t.Errorf("DecodePath(%#q): got %v, want %v", enc, dec.Steps(), test.path.Steps())
		}
		if got := test.path.JSONPath(); got != test.jsonPath {
			t.Errorf("JSONPath %v: got %#q, want %#q", test.path, got, test.jsonPath)
		}
	}

	for _, bad := range []string{``, `{}`, `"a"`, `[true]`, `[-1]`, `[1.5]`, `[null]`, `[[0]]`, `["a"`} {
		if got, err := tree.DecodePath(bad); err == nil {
			t.Errorf("DecodePath(%#q): got %v, want error", bad, got)
		}
	}

	// Paths that render alike in display form are still distinct.
	if a, b := p("a.b"), p("a", "b"); a.String() != b.String() || a.Encode() == b.Encode() {
		t.Errorf("Paths %v and %v: encodings should differ", a.Steps(), b.Steps())
	}
}

func TestPathOps(t *testing.T) {
	base := make(tree.Path, 1, 8)
	base[0] = tree.Key("a")
	x := base.Append(tree.Key("x"))
	y := base.Append(tree.Key("y"))
	if x.String() != "a.x" || y.String() != "a.y" {
		t.Errorf("Append aliased: got %v and %v", x, y)
	}
	if got := x.Parent(); !got.Equal(base) {
		t.Errorf("Parent: got %v, want %v", got, base)
	}
	if got := tree.Root.Parent(); !got.IsRoot() {
		t.Errorf("Parent of root: got %v", got)
	}
	if _, ok := tree.Root.Last(); ok {
		t.Error("Last of root: got a step")
	}
	if s, ok := p("a", 3).Last(); !ok || !s.IsIndex() || s.Index() != 3 {
		t.Errorf("Last: got %v, %v", s, ok)
	}
	if s := tree.Key("k"); s.IsIndex() || s.Key() != "k" || s.Index() != -1 {
		t.Errorf("Key step: got %#v", s)
	}
	mtest.MustPanic(t, func() { tree.Index(-1) })
}

func TestResolve(t *testing.T) {
	root := testutil.MustParse(t, testutil.OrderJSON)
	tests := []struct {
		path tree.Path
		want string
	}{
		{tree.Root, root.JSON()},
		{p("id"), "1042"},
		{p("customer", "name"), `"Ada"`},
		{p("items", 1, "sku"), `"B-7"`},
		{p("items", 1, "tags"), `[]`},
	}
	for _, test := range tests {
		v, err := tree.Resolve(root, test.path)
		if err != nil {
			t.Errorf("Resolve %v: unexpected error: %v", test.path, err)
		} else if got := v.JSON(); got != test.want {
			t.Errorf("Resolve %v: got %#q, want %#q", test.path, got, test.want)
		}
	}

	for _, bad := range []tree.Path{
		p("nonesuch"),
		p(0),
		p("items", 2),
		p("items", "x"),
		p("id", "x"),
		p("notes", 0),
	} {
		if v, err := tree.Resolve(root, bad); !errors.Is(err, tree.ErrNotFound) {
			t.Errorf("Resolve %v: got (%v, %v), want %v", bad, v, err, tree.ErrNotFound)
		}
	}
}

func TestChildren(t *testing.T) {
	root := testutil.MustParse(t, `{"z": 1, "a": [true, null]}`)
	kids := tree.Children(root, tree.Root)
	var got []string
	for _, c := range kids {
		got = append(got, c.Key+"="+c.Path.Encode()+"="+c.Value.JSON())
	}
	if diff := cmp.Diff([]string{`z=["z"]=1`, `a=["a"]=[true,null]`}, got); diff != "" {
		t.Errorf("Children (-want, +got):\n%s", diff)
	}

	elts := tree.Children(kids[1].Value, kids[1].Path)
	got = got[:0]
	for _, c := range elts {
		got = append(got, c.Key+"="+c.Path.Encode()+"="+c.Value.JSON())
	}
	if diff := cmp.Diff([]string{`0=["a",0]=true`, `1=["a",1]=null`}, got); diff != "" {
		t.Errorf("Children (-want, +got):\n%s", diff)
	}

	if kids := tree.Children(value.String("s"), tree.Root); kids != nil {
		t.Errorf("Children of scalar: got %v, want nil", kids)
	}
	if kids := tree.Children(value.Object{}, tree.Root); len(kids) != 0 {
		t.Errorf("Children of empty object: got %v", kids)
	}
}

func TestFormatScalar(t *testing.T) {
	tests := []struct {
		input value.Value
		want  string
	}{
		{nil, "null"},
		{value.Null{}, "null"},
		{value.Bool(true), "true"},
		{value.Bool(false), "false"},
		{value.String("hi"), `"hi"`},
		{value.String(`say "hi"`), `"say "hi""`},
		{value.String("a\nb"), "\"a\nb\""},
		{value.String(""), `""`},
		{value.Int(-7), "-7"},
		{testutil.MustParse(t, "1.50"), "1.5"},
		{testutil.MustParse(t, "1e21"), "1e+21"},
		{testutil.MustParse(t, "0.0000001"), "1e-7"},
		{testutil.MustParse(t, "12345678901234567890"), "12345678901234567890"},
	}
	for _, test := range tests {
		if got := tree.FormatScalar(test.input); got != test.want {
			t.Errorf("FormatScalar(%#v): got %q, want %q", test.input, got, test.want)
		}
	}
	if got := tree.KindOf(nil); got != value.KindNull {
		t.Errorf("KindOf(nil): got %v, want null", got)
	}
}

func TestVisibleExample(t *testing.T) {
	root := testutil.MustParse(t, `{"a":1,"b":[2,3]}`)

	st := tree.CollapseAll()
	if diff := cmp.Diff([]string{"root:object(2)"}, rows(root, st)); diff != "" {
		t.Errorf("Collapsed (-want, +got):\n%s", diff)
	}

	st = st.Toggle(tree.Root)
	if diff := cmp.Diff([]string{
		"root:object(2)", "a:1", "b:array(2)",
	}, rows(root, st)); diff != "" {
		t.Errorf("Root expanded (-want, +got):\n%s", diff)
	}
	if !st.Equal(tree.NewState()) {
		t.Errorf("State: got %v, want %v", st, tree.NewState())
	}

	st = st.Toggle(p("b"))
	if diff := cmp.Diff([]string{
		"root:object(2)", "a:1", "b:array(2)", "b[0]:2", "b[1]:3",
	}, rows(root, st)); diff != "" {
		t.Errorf("b expanded (-want, +got):\n%s", diff)
	}
}

func TestVisibleNodes(t *testing.T) {
	root := testutil.MustParse(t, `{"a":[{"b":"x"}]}`)
	st := tree.StateOf(tree.Root, p("a"), p("a", 0))
	var got []tree.Node
	for n := range tree.Visible(root, st) {
		n.Value = nil // checked separately
		got = append(got, n)
	}
	want := []tree.Node{
		{Path: tree.Root, Key: "root", Kind: value.KindObject, Depth: 0, Expandable: true, Count: 1, Expanded: true},
		{Path: p("a"), Key: "a", Kind: value.KindArray, Depth: 1, Expandable: true, Count: 1, Expanded: true},
		{Path: p("a", 0), Key: "[0]", Kind: value.KindObject, Depth: 2, Expandable: true, Count: 1, Expanded: true},
		{Path: p("a", 0, "b"), Key: "b", Kind: value.KindString, Depth: 3, Display: `"x"`},
	}
	opt := cmp.Comparer(func(a, b tree.Path) bool { return a.Equal(b) })
	if diff := cmp.Diff(want, got, opt); diff != "" {
		t.Errorf("Visible (-want, +got):\n%s", diff)
	}

	// An expanded empty container has no visible children.
	empty := testutil.MustParse(t, `{"e":{},"f":[]}`)
	st = tree.ExpandAll(empty)
	if diff := cmp.Diff([]string{"root:object(2)", "e:object(0)", "f:array(0)"}, rows(empty, st)); diff != "" {
		t.Errorf("Empty containers (-want, +got):\n%s", diff)
	}
}

func TestVisibleScalarRoot(t *testing.T) {
	states := []tree.State{
		tree.CollapseAll(),
		tree.NewState(),
		tree.StateOf(tree.Root, p("a"), p(0)),
	}
	for _, input := range []string{`null`, `true`, `-3.25`, `"text"`} {
		root := testutil.MustParse(t, input)
		for _, st := range states {
			got := rows(root, st)
			if len(got) != 1 {
				t.Errorf("Visible %s in %v: got %d nodes, want 1", input, st, len(got))
			}
		}
	}
}

func TestVisibleCollapsedRoot(t *testing.T) {
	root := testutil.MustParse(t, testutil.OrderJSON)
	st := tree.CollapseAll().Toggle(p("items")).Toggle(p("customer"))
	if diff := cmp.Diff([]string{"root:object(7)"}, rows(root, st)); diff != "" {
		t.Errorf("Collapsed root (-want, +got):\n%s", diff)
	}
}

func TestVisibleRestartable(t *testing.T) {
	root := testutil.MustParse(t, testutil.OrderJSON)
	seq := tree.Visible(root, tree.ExpandAll(root))

	var first, second []string
	for n := range seq {
		first = append(first, n.Path.Encode())
	}
	for n := range seq {
		second = append(second, n.Path.Encode())
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Second iteration differs (-first, +second):\n%s", diff)
	}

	// Early termination stops the walk.
	var n int
	for range seq {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Errorf("Early break: got %d nodes, want 3", n)
	}
}

func TestToggle(t *testing.T) {
	root := testutil.MustParse(t, testutil.OrderJSON)
	base := tree.StateOf(tree.Root, p("items"), p("items", 1))
	before := rows(root, base)

	t.Run("Involution", func(t *testing.T) {
		for _, path := range []tree.Path{tree.Root, p("items"), p("customer"), p("nonesuch", 5)} {
			got := base.Toggle(path).Toggle(path)
			if !got.Equal(base) {
				t.Errorf("Toggle %v twice: got %v, want %v", path, got, base)
			}
		}
	})

	t.Run("Immutable", func(t *testing.T) {
		next := base.Toggle(p("customer"))
		if base.Has(p("customer")) {
			t.Error("Toggle modified its receiver")
		}
		if !next.Has(p("customer")) || next.Len() != base.Len()+1 {
			t.Errorf("Toggle: got %v", next)
		}
	})

	t.Run("CollapsePreserves", func(t *testing.T) {
		collapsed := base.Toggle(p("items"))
		got := rows(root, collapsed)
		for _, r := range got {
			if strings.HasPrefix(r, "items[") {
				t.Errorf("Collapsed items: descendant %q is visible", r)
			}
		}
		if !collapsed.Has(p("items", 1)) {
			t.Error("Collapsing items dropped the state of items[1]")
		}
		if collapsed.Len() != base.Len()-1 {
			t.Errorf("Collapse: got %d paths, want %d", collapsed.Len(), base.Len()-1)
		}
		restored := collapsed.Toggle(p("items"))
		if diff := cmp.Diff(before, rows(root, restored)); diff != "" {
			t.Errorf("Re-expand (-want, +got):\n%s", diff)
		}
	})

	t.Run("ExpandCollapse", func(t *testing.T) {
		if got := base.Expand(p("items")); !got.Equal(base) {
			t.Errorf("Expand of expanded path: got %v", got)
		}
		if got := base.Collapse(p("customer")); !got.Equal(base) {
			t.Errorf("Collapse of collapsed path: got %v", got)
		}
		if got := base.Collapse(p("items")); got.Has(p("items")) {
			t.Errorf("Collapse: got %v", got)
		}
	})

	t.Run("Unambiguous", func(t *testing.T) {
		weird := testutil.MustParse(t, `{"a.b": [1], "a": {"b": [2]}}`)
		st := tree.NewState().Toggle(p("a.b"))
		if st.Has(p("a", "b")) {
			t.Error("Key a.b collides with path a.b")
		}
		if diff := cmp.Diff([]string{
			"root:object(2)", "a.b:array(1)", "a.b[0]:1", "a:object(1)",
		}, rows(weird, st)); diff != "" {
			t.Errorf("Visible (-want, +got):\n%s", diff)
		}
	})
}

func TestStatePaths(t *testing.T) {
	st := tree.StateOf(p("b"), tree.Root, p("a", 1))
	var got []string
	for _, path := range st.Paths() {
		got = append(got, path.Encode())
	}
	if diff := cmp.Diff([]string{`["a",1]`, `["b"]`, `[]`}, got); diff != "" {
		t.Errorf("Paths (-want, +got):\n%s", diff)
	}
	if n := tree.CollapseAll().Len(); n != 0 {
		t.Errorf("CollapseAll: got %d paths", n)
	}
	if !tree.CollapseAll().Equal(tree.StateOf()) {
		t.Error("Empty states are not equal")
	}
	var zero tree.State
	if zero.Has(tree.Root) || zero.Toggle(tree.Root).Len() != 1 {
		t.Error("Zero state is not usable")
	}
}

func TestExpandDepth(t *testing.T) {
	root := testutil.MustParse(t, `{"a":{"b":{"c":[1]}},"d":[[2]]}`)
	tests := []struct {
		depth int
		want  []string
	}{
		{0, nil},
		{1, []string{`[]`}},
		{2, []string{`["a"]`, `["d"]`, `[]`}},
		{3, []string{`["a","b"]`, `["a"]`, `["d",0]`, `["d"]`, `[]`}},
		{-1, []string{`["a","b","c"]`, `["a","b"]`, `["a"]`, `["d",0]`, `["d"]`, `[]`}},
	}
	for _, test := range tests {
		var got []string
		for _, path := range tree.ExpandDepth(root, test.depth).Paths() {
			got = append(got, path.Encode())
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("ExpandDepth(%d) (-want, +got):\n%s", test.depth, diff)
		}
	}
	if !tree.ExpandAll(root).Equal(tree.ExpandDepth(root, -1)) {
		t.Error("ExpandAll differs from ExpandDepth(-1)")
	}
	if n := tree.ExpandAll(value.Int(1)).Len(); n != 0 {
		t.Errorf("ExpandAll of scalar: got %d paths", n)
	}
}

func TestExpandMatching(t *testing.T) {
	root := testutil.MustParse(t, testutil.OrderJSON)
	tests := []struct {
		expr string
		want []string
	}{
		{"$.customer", []string{`["customer"]`, `[]`}},
		{"$.items[1]", []string{`["items",1]`, `["items"]`, `[]`}},
		{"$.items[-1]", []string{`["items",1]`, `["items"]`, `[]`}},
		{"$..tags", []string{`["items",1,"tags"]`, `["items",1]`, `["items"]`, `[]`}},
		{"$.nonesuch", nil},
		{"$.id", nil}, // scalars are not expanded
	}
	for _, test := range tests {
		st := tree.CollapseAll().ExpandMatching(root, jpath.MustParse(test.expr))
		var got []string
		for _, path := range st.Paths() {
			got = append(got, path.Encode())
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("ExpandMatching(%q) (-want, +got):\n%s", test.expr, diff)
		}
	}

	base := tree.NewState().Toggle(p("customer"))
	got := base.ExpandMatching(root, jpath.MustParse("$.items"))
	if !got.Has(p("customer")) || !got.Has(p("items")) || base.Has(p("items")) {
		t.Errorf("ExpandMatching: got %v from %v", got, base)
	}
}

func TestProject(t *testing.T) {
	nodes, err := tree.Project(`[1, [2]]`, tree.NewState())
	if err != nil {
		t.Fatalf("Project: unexpected error: %v", err)
	}
	var got []string
	for _, n := range nodes {
		got = append(got, n.Key)
	}
	if diff := cmp.Diff([]string{"root", "[0]", "[1]"}, got); diff != "" {
		t.Errorf("Project (-want, +got):\n%s", diff)
	}
	if _, err := tree.Project("", tree.NewState()); !errors.Is(err, tree.ErrEmptyInput) {
		t.Errorf("Project empty: got %v, want %v", err, tree.ErrEmptyInput)
	}
}
