// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package jview is the lexical and syntactic layer of an expandable JSON tree
// viewer. It turns JSON text into a sequence of tokens (Scanner) or a sequence
// of structural events (Stream), each carrying its location in the source.
//
// # Tokens
//
// A Scanner reads from an io.Reader. Each call to Next moves to the next
// token, which is then available from Token, Text, and Location:
//
//	s := jview.NewScanner(r)
//	for s.Next() == nil {
//	   fmt.Println(s.Location(), s.Token(), string(s.Text()))
//	}
//	if err := s.Err(); err != io.EOF {
//	   return err
//	}
//
// Next returns io.EOF at the end of the input, and any other error describes
// a read failure or malformed input.
//
// # Events
//
// A Stream drives a Handler with one call per structural element:
//
//	Event                     | Input
//	------------------------- | ---------------------------------
//	BeginObject, EndObject    | { ... }
//	BeginArray, EndArray      | [ ... ]
//	BeginMember, EndMember    | "key": value
//	Value                     | true, false, null, number, string
//	EndOfInput                | end of input
//
// Parse consumes every value in the input, ParseOne consumes the next value,
// and ParseSingle requires the input to hold exactly one value. Malformed
// input is reported as a *SyntaxError giving the line and column of the
// offending token.
//
// Each Anchor passed to a Handler is valid only during that call, so a
// handler that retains token text must Copy it.
//
// The value package builds a document model from these events, the tree
// package projects that model through an expansion state into visible nodes,
// and the render packages present the nodes as text or HTML.
package jview
