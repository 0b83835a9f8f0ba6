// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package textview renders the visible nodes of a projected JSON document as
// indented lines of terminal text.
//
// Each node is written on its own line, indented by its depth:
//
//	▾ root: Object (2)
//	    a: 1
//	  ▸ b: Array (2)
//
// Containers show a caret (▾ when expanded, ▸ when collapsed), their type,
// and their child count. Scalars show their display value.
package textview

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/creachadair/jview/tree"
	"github.com/creachadair/jview/value"
	"github.com/muesli/termenv"
)

// Glyphs marking expanded and collapsed containers.
const (
	GlyphExpanded  = "▾"
	GlyphCollapsed = "▸"
)

var (
	colorKey    = lipgloss.Color("75")  // light blue
	colorString = lipgloss.Color("35")  // green
	colorNumber = lipgloss.Color("36")  // teal
	colorBool   = lipgloss.Color("220") // amber
	colorNull   = lipgloss.Color("240") // dim gray
	colorType   = lipgloss.Color("255") // bright white
	colorCount  = lipgloss.Color("245") // gray
	colorError  = lipgloss.Color("167") // soft red
)

// A Renderer renders tree nodes as text. A zero Renderer indents by two
// spaces per level and styles its output only when writing to a terminal.
type Renderer struct {
	Indent     int  // spaces per nesting level; 0 means 2
	Plain      bool // if true, never style the output
	ForceColor bool // if true, style the output even when not a terminal
}

// Render writes one line for each node in nodes to w.
func (r Renderer) Render(w io.Writer, nodes iter.Seq[tree.Node]) error {
	st := r.styles(w)
	for n := range nodes {
		if _, err := io.WriteString(w, st.line(n, r.indent())+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// Line renders a single node without a trailing newline. Line styles its
// result only if r.ForceColor is set.
func (r Renderer) Line(n tree.Node) string { return r.styles(io.Discard).line(n, r.indent()) }

// RenderError writes a one-line description of an error from tree.Parse to
// w. Missing and empty input are reported as notices; other errors are
// reported as failures.
func (r Renderer) RenderError(w io.Writer, err error) error {
	st := r.styles(w)
	var msg string
	switch {
	case errors.Is(err, tree.ErrNoData):
		msg = st.muted.Render("No JSON data available")
	case errors.Is(err, tree.ErrEmptyInput):
		msg = st.muted.Render("Empty JSON string")
	case errors.Is(err, tree.ErrInvalidType):
		msg = st.danger.Render("Invalid data type for JSON viewer")
	default:
		msg = st.danger.Render(capitalize(err.Error()))
	}
	_, werr := fmt.Fprintln(w, msg)
	return werr
}

func (r Renderer) indent() int {
	if r.Indent <= 0 {
		return 2
	}
	return r.Indent
}

type styles struct {
	key, sep, typ, count lipgloss.Style
	muted, danger        lipgloss.Style
	kinds                map[value.Kind]lipgloss.Style
}

func (r Renderer) styles(w io.Writer) styles {
	lr := lipgloss.NewRenderer(w)
	if r.Plain {
		lr.SetColorProfile(termenv.Ascii)
	} else if r.ForceColor {
		lr.SetColorProfile(termenv.ANSI256)
	}
	fg := func(c lipgloss.Color) lipgloss.Style { return lr.NewStyle().Foreground(c) }
	return styles{
		key:    fg(colorKey),
		sep:    fg(colorCount),
		typ:    fg(colorType).Bold(true),
		count:  fg(colorCount),
		muted:  fg(colorNull),
		danger: fg(colorError),
		kinds: map[value.Kind]lipgloss.Style{
			value.KindString: fg(colorString),
			value.KindNumber: fg(colorNumber),
			value.KindBool:   fg(colorBool),
			value.KindNull:   fg(colorNull).Italic(true),
		},
	}
}

func (s styles) line(n tree.Node, indent int) string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", n.Depth*indent))
	switch {
	case !n.Expandable:
		sb.WriteString("  ")
	case n.Expanded:
		sb.WriteString(GlyphExpanded + " ")
	default:
		sb.WriteString(GlyphCollapsed + " ")
	}
	sb.WriteString(s.key.Render(n.Key))
	sb.WriteString(s.sep.Render(":"))
	sb.WriteByte(' ')
	if n.Expandable {
		sb.WriteString(s.typ.Render(TypeLabel(n.Kind)))
		sb.WriteByte(' ')
		sb.WriteString(s.count.Render(fmt.Sprintf("(%d)", n.Count)))
	} else {
		sb.WriteString(s.kinds[n.Kind].Render(n.Display))
	}
	return sb.String()
}

// TypeLabel returns the label shown for a container of kind k: "Array" or
// "Object". It returns "" for other kinds.
func TypeLabel(k value.Kind) string {
	switch k {
	case value.KindArray:
		return "Array"
	case value.KindObject:
		return "Object"
	}
	return ""
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
