// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package testutil defines support code for unit tests.
package testutil

import (
	"testing"

	"github.com/creachadair/jview/value"
)

// OrderJSON is a small document exercising every kind of JSON value.
const OrderJSON = `{
  "id": 1042,
  "status": "shipped",
  "customer": {"name": "Ada", "email": "ada@example.com", "vip": true},
  "items": [
    {"sku": "A-1", "qty": 2, "price": 9.5},
    {"sku": "B-7", "qty": 1, "price": 120, "tags": []}
  ],
  "total": 139.0,
  "paid": false,
  "notes": null
}`

// MustParse parses input as a single JSON value, or fails t.
func MustParse(t testing.TB, input string) value.Value {
	t.Helper()
	v, err := value.ParseString(input)
	if err != nil {
		t.Fatalf("Parse %q: %v", input, err)
	}
	return v
}
