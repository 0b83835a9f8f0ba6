// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package value

import "strings"

// Indent renders v as JSON text with each nested array element and object
// member on its own line, indented by one copy of indent per level. Empty
// arrays and objects are written as [] and {}. If indent is empty, Indent is
// equivalent to v.JSON().
func Indent(v Value, indent string) string {
	if indent == "" {
		return encode(v)
	}
	var sb strings.Builder
	writeIndent(&sb, v, indent, "")
	return sb.String()
}

func writeIndent(sb *strings.Builder, v Value, indent, prefix string) {
	inner := prefix + indent
	switch t := v.(type) {
	case Array:
		if len(t) == 0 {
			sb.WriteString("[]")
			return
		}
		sb.WriteString("[\n")
		for i, elt := range t {
			sb.WriteString(inner)
			writeIndent(sb, elt, indent, inner)
			if i < len(t)-1 {
				sb.WriteByte(',')
			}
			sb.WriteByte('\n')
		}
		sb.WriteString(prefix)
		sb.WriteByte(']')

	case Object:
		if len(t) == 0 {
			sb.WriteString("{}")
			return
		}
		sb.WriteString("{\n")
		for i, m := range t {
			sb.WriteString(inner)
			sb.WriteString(String(m.Key).JSON())
			sb.WriteString(": ")
			writeIndent(sb, m.Value, indent, inner)
			if i < len(t)-1 {
				sb.WriteByte(',')
			}
			sb.WriteByte('\n')
		}
		sb.WriteString(prefix)
		sb.WriteByte('}')

	default:
		sb.WriteString(encode(v))
	}
}
