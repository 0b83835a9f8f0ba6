// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package tree projects a JSON value into the flat list of rows shown by an
// expandable tree view.
//
// A document is parsed with Parse (or a configured Parser) into a
// value.Value. Each value in the document is addressed by a Path of keys and
// indices from the root. A State records which containers are expanded, and
// Visible walks the document in pre-order yielding a Node for each visible
// row:
//
//	root, err := tree.Parse(`{"a": 1, "b": [2, 3]}`)
//	if err != nil {
//	   log.Fatal(err)
//	}
//	st := tree.NewState() // the root is expanded
//	st = st.Toggle(tree.Path{tree.Key("b")})
//	for n := range tree.Visible(root, st) {
//	   fmt.Println(strings.Repeat("  ", n.Depth), n.Key, n.Display)
//	}
//
// A State is immutable: Toggle returns a new state, so a host can keep the
// previous state for undo, or share a state between goroutines.
//
// # Errors
//
// Parse reports ErrNoData for nil input, ErrEmptyInput for blank text,
// ErrInvalidType for input that is neither text nor JSON-shaped data, and a
// *MalformedError (matching ErrMalformed) for text that is not valid JSON.
package tree
