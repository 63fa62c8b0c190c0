// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jvalue

import "fmt"

// ToValue converts a Go value into a Value. It accepts nil (Null), bool,
// string, the built-in integer and floating-point types, []any, []string,
// map[string]any, and values that already implement Value. Elements of
// slices and maps are converted recursively.
//
// ToValue panics if v or any element has another type.
func ToValue(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null{}
	case Value:
		return t
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case int:
		return Int(t)
	case int8:
		return Int(t)
	case int16:
		return Int(t)
	case int32:
		return Int(t)
	case int64:
		return Int(t)
	case uint8:
		return Int(t)
	case uint16:
		return Int(t)
	case uint32:
		return Int(t)
	case float32:
		return Float(t)
	case float64:
		return Float(t)
	case []any:
		a := &Array{vals: make([]Value, len(t))}
		for i, elt := range t {
			a.vals[i] = ToValue(elt)
		}
		return a
	case []string:
		a := &Array{vals: make([]Value, len(t))}
		for i, elt := range t {
			a.vals[i] = String(elt)
		}
		return a
	case map[string]any:
		o := &Object{m: make(map[string]Value, len(t))}
		for k, elt := range t {
			o.m[k] = ToValue(elt)
		}
		return o
	default:
		panic(fmt.Sprintf("cannot convert %T to a value", v))
	}
}
