// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package htmlview renders the visible nodes of a projected JSON document as
// HTML markup for an expandable tree widget.
//
// Each node becomes a div of class json-node, indented by its depth.
// Containers carry a json-toggle element whose data-path attribute holds the
// encoded path of the container (see tree.Path.Encode), so a host can map a
// click back to a toggle of the expansion state.
package htmlview

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"iter"
	"strconv"
	"sync"

	"github.com/creachadair/jview/render/textview"
	"github.com/creachadair/jview/tree"
	"github.com/tdewolff/minify/v2"
	mhtml "github.com/tdewolff/minify/v2/html"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultIndentPx is the indentation in pixels per nesting level used by a
// Renderer with no IndentPx setting.
const DefaultIndentPx = 20

// A Renderer renders tree nodes as HTML.
type Renderer struct {
	// Indentation per nesting level, in pixels; 0 means DefaultIndentPx.
	IndentPx int

	// If true, minify the generated markup.
	Minify bool

	// If set, the toggle of each container is rendered as a link to the URL
	// returned by ToggleURL for the path of the container.
	ToggleURL func(tree.Path) string
}

// Render writes the markup for nodes to w.
func (r Renderer) Render(w io.Writer, nodes iter.Seq[tree.Node]) error {
	var buf bytes.Buffer
	for n := range nodes {
		if err := html.Render(&buf, r.node(n)); err != nil {
			return err
		}
		buf.WriteByte('\n')
	}
	return r.emit(w, buf.Bytes())
}

// Fragment returns the markup for nodes as a string.
func (r Renderer) Fragment(nodes iter.Seq[tree.Node]) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, nodes); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderError writes the markup describing an error from tree.Parse to w.
// Missing and empty input are shown as muted notices; other errors are shown
// as failures.
func (r Renderer) RenderError(w io.Writer, err error) error {
	class, msg := "text-danger", ""
	var merr *tree.MalformedError
	switch {
	case errors.Is(err, tree.ErrNoData):
		class, msg = "text-muted", "No JSON data available"
	case errors.Is(err, tree.ErrEmptyInput):
		class, msg = "text-muted", "Empty JSON string"
	case errors.Is(err, tree.ErrInvalidType):
		msg = "Invalid data type for JSON viewer"
	case errors.As(err, &merr):
		msg = "Invalid JSON: " + merr.Message
	default:
		msg = "Error: " + err.Error()
	}
	div := elem(atom.Div, "class", class)
	div.AppendChild(text(msg))

	var buf bytes.Buffer
	if err := html.Render(&buf, div); err != nil {
		return err
	}
	buf.WriteByte('\n')
	return r.emit(w, buf.Bytes())
}

// Page writes a complete HTML document to w with the given title, whose body
// is the given markup fragment, styled for the tree widget.
func (r Renderer) Page(w io.Writer, title string, body []byte) error {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := elem(atom.Html, "lang", "en")
	head := elem(atom.Head)
	head.AppendChild(elem(atom.Meta, "charset", "utf-8"))
	tnode := elem(atom.Title)
	tnode.AppendChild(text(title))
	head.AppendChild(tnode)
	style := elem(atom.Style)
	style.AppendChild(text(pageCSS))
	head.AppendChild(style)
	root.AppendChild(head)

	bodyNode := elem(atom.Body)
	view := elem(atom.Div, "class", "json-tree-viewer")
	view.AppendChild(&html.Node{Type: html.RawNode, Data: string(body)})
	bodyNode.AppendChild(view)
	root.AppendChild(bodyNode)
	doc.AppendChild(root)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return err
	}
	buf.WriteByte('\n')
	return r.emit(w, buf.Bytes())
}

func (r Renderer) indentPx() int {
	if r.IndentPx <= 0 {
		return DefaultIndentPx
	}
	return r.IndentPx
}

// node constructs the markup for a single tree node.
func (r Renderer) node(n tree.Node) *html.Node {
	div := elem(atom.Div, "class", "json-node",
		"style", "padding-left: "+strconv.Itoa(n.Depth*r.indentPx())+"px;")

	if n.Expandable {
		caret := "fa-caret-right"
		if n.Expanded {
			caret = "fa-caret-down"
		}
		var toggle *html.Node
		if r.ToggleURL != nil {
			toggle = elem(atom.A, "class", "json-toggle", "data-path", n.Path.Encode(), "href", r.ToggleURL(n.Path))
		} else {
			toggle = elem(atom.Span, "class", "json-toggle", "data-path", n.Path.Encode())
		}
		toggle.AppendChild(elem(atom.I, "class", "fa "+caret))
		div.AppendChild(toggle)
		div.AppendChild(span("json-key", n.Key))
		div.AppendChild(span("json-type", textview.TypeLabel(n.Kind)))
		div.AppendChild(span("json-count", fmt.Sprintf("(%d)", n.Count)))
		return div
	}

	div.AppendChild(span("json-key", n.Key))
	div.AppendChild(span("json-separator", ":"))
	div.AppendChild(span("json-value json-value-"+n.Kind.String(), n.Display))
	return div
}

func (r Renderer) emit(w io.Writer, data []byte) error {
	if r.Minify {
		out, err := minifier().Bytes("text/html", data)
		if err != nil {
			return fmt.Errorf("minify: %w", err)
		}
		data = out
	}
	_, err := w.Write(data)
	return err
}

var minifier = sync.OnceValue(func() *minify.M {
	m := minify.New()
	m.AddFunc("text/html", mhtml.Minify)
	return m
})

// elem constructs an element node with the given attributes, which are
// alternating keys and values.
func elem(tag atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: tag, Data: tag.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func text(s string) *html.Node { return &html.Node{Type: html.TextNode, Data: s} }

func span(class, s string) *html.Node {
	n := elem(atom.Span, "class", class)
	n.AppendChild(text(s))
	return n
}

const pageCSS = `
body { font-family: ui-monospace, Menlo, Consolas, monospace; font-size: 14px; margin: 1em; }
.json-node { line-height: 1.6; white-space: pre; }
.json-toggle { cursor: pointer; display: inline-block; width: 1em; color: #666; text-decoration: none; }
.fa-caret-down::before { content: "\25be"; }
.fa-caret-right::before { content: "\25b8"; }
.json-key { color: #0451a5; font-weight: 600; }
.json-separator { margin: 0 0.4em 0 0.1em; color: #666; }
.json-type { margin-left: 0.5em; color: #333; font-style: italic; }
.json-count { margin-left: 0.3em; color: #888; }
.json-value-string { color: #a31515; }
.json-value-number { color: #098658; }
.json-value-boolean { color: #0000ff; }
.json-value-null { color: #808080; font-style: italic; }
.text-muted { color: #888; }
.text-danger { color: #c00; }
`
