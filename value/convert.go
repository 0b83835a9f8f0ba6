// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package value

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
)

// ErrUnsupported is reported by FromAny for Go values that have no JSON
// representation.
var ErrUnsupported = errors.New("unsupported type")

// FromAny converts structured Go data into a Value. It accepts nil, a Value,
// bool, string, json.Number, any integer or floating-point type, []any,
// []map[string]any, and map[string]any, nested to any depth.
//
// Go maps are unordered, so the members of an object converted from a map
// are sorted by key.
func FromAny(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		return ParseNumber(string(t))
	case int:
		return Int(int64(t)), nil
	case int8:
		return Int(int64(t)), nil
	case int16:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint:
		return Uint(uint64(t)), nil
	case uint8:
		return Uint(uint64(t)), nil
	case uint16:
		return Uint(uint64(t)), nil
	case uint32:
		return Uint(uint64(t)), nil
	case uint64:
		return Uint(t), nil
	case float32:
		return Float(float64(t))
	case float64:
		return Float(t)
	case []any:
		return convertSlice(t)
	case []map[string]any:
		out := make(Array, len(t))
		for i, m := range t {
			obj, err := convertMap(m)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			out[i] = obj
		}
		return out, nil
	case map[string]any:
		return convertMap(t)
	default:
		return nil, fmt.Errorf("%w %T", ErrUnsupported, v)
	}
}

func convertSlice(vs []any) (Array, error) {
	out := make(Array, len(vs))
	for i, elt := range vs {
		ev, err := FromAny(elt)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		out[i] = ev
	}
	return out, nil
}

func convertMap(m map[string]any) (Object, error) {
	out := make(Object, 0, len(m))
	for _, key := range slices.Sorted(maps.Keys(m)) {
		ev, err := FromAny(m[key])
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		out = append(out, &Member{Key: key, Value: ev})
	}
	return out, nil
}

// ToValue converts v to a Value as FromAny does, but panics if v cannot be
// converted.
func ToValue(v any) Value {
	out, err := FromAny(v)
	if err != nil {
		panic(fmt.Sprintf("value.ToValue: %v", err))
	}
	return out
}

// ArrayOf constructs an array of the given values, each of which must be
// acceptable to ToValue.
func ArrayOf[T any](vs ...T) Array {
	out := make(Array, len(vs))
	for i, v := range vs {
		out[i] = ToValue(v)
	}
	return out
}
