// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package tree

import "github.com/creachadair/jview/value"

// KindOf reports the kind of v. A nil value is reported as null.
func KindOf(v value.Value) value.Kind { return value.KindOf(v) }

// FormatScalar returns the display text of a scalar value: "null" for null
// or a nil value, a string wrapped in double quotes without escaping its
// contents, a number in canonical form, and "true" or "false" for Booleans.
//
// Containers are not scalars; FormatScalar renders them as compact JSON.
func FormatScalar(v value.Value) string {
	switch t := v.(type) {
	case nil, value.Null:
		return "null"
	case value.String:
		return `"` + string(t) + `"`
	case value.Number:
		return t.String()
	case value.Bool:
		if t {
			return "true"
		}
		return "false"
	}
	return v.JSON()
}
