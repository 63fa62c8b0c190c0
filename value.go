// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jvalue

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies the concrete type of a Value.
type Kind byte

// Constants defining the valid Kind values.
const (
	NullKind   Kind = iota // the null constant
	BoolKind               // true or false
	IntKind                // integer
	FloatKind              // floating-point number
	StringKind             // string
	ArrayKind              // array of values
	ObjectKind             // object with string keys
)

var kindStr = [...]string{
	NullKind:   "null",
	BoolKind:   "boolean",
	IntKind:    "integer",
	FloatKind:  "number",
	StringKind: "string",
	ArrayKind:  "array",
	ObjectKind: "object",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return "invalid kind"
	}
	return kindStr[k]
}

// A Value is an arbitrary JSON value. The concrete type is one of Null, Bool,
// Int, Float, String, *Array, or *Object; no other types implement Value.
//
// A nil Value means "absent" and is never stored inside a container. The
// distinguished null constant is represented by Null{}.
type Value interface {
	Kind() Kind

	isValue()
}

// Null is the JSON null constant. All Null values are equal.
type Null struct{}

// Kind satisfies the Value interface.
func (Null) Kind() Kind { return NullKind }

func (Null) String() string { return "null" }

// A Bool is a Boolean value.
type Bool bool

// Kind satisfies the Value interface.
func (Bool) Kind() Kind { return BoolKind }

// An Int is an integer value.
type Int int64

// Kind satisfies the Value interface.
func (Int) Kind() Kind { return IntKind }

// A Float is a floating-point value.
type Float float64

// Kind satisfies the Value interface.
func (Float) Kind() Kind { return FloatKind }

// A String is a string value.
type String string

// Kind satisfies the Value interface.
func (String) Kind() Kind { return StringKind }

// Kind satisfies the Value interface.
func (*Array) Kind() Kind { return ArrayKind }

// Kind satisfies the Value interface.
func (*Object) Kind() Kind { return ObjectKind }

func (Null) isValue()    {}
func (Bool) isValue()    {}
func (Int) isValue()     {}
func (Float) isValue()   {}
func (String) isValue()  {}
func (*Array) isValue()  {}
func (*Object) isValue() {}

// IsNull reports whether v is absent (nil) or the null constant.
func IsNull(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(Null)
	return ok
}

// asBool coerces v to a bool. Strings "true" and "false" are accepted
// without regard to case.
func asBool(v Value) (bool, bool) {
	switch t := v.(type) {
	case Bool:
		return bool(t), true
	case String:
		if strings.EqualFold(string(t), "true") {
			return true, true
		} else if strings.EqualFold(string(t), "false") {
			return false, true
		}
	}
	return false, false
}

// asFloat coerces v to a float64. Strings are parsed.
func asFloat(v Value) (float64, bool) {
	switch t := v.(type) {
	case Int:
		return float64(t), true
	case Float:
		return float64(t), true
	case String:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(t)), 64)
		return f, err == nil
	}
	return 0, false
}

// asInt coerces v to an int64. Floating-point values are truncated toward
// zero; non-finite values and values outside the int64 range do not convert.
func asInt(v Value) (int64, bool) {
	switch t := v.(type) {
	case Int:
		return int64(t), true
	case String:
		s := strings.TrimSpace(string(t))
		if z, err := strconv.ParseInt(s, 10, 64); err == nil {
			return z, true
		}
	}
	f, ok := asFloat(v)
	if !ok || math.IsNaN(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

// asString coerces v to a string. Strings are returned verbatim, and
// Booleans and numbers are rendered as their JSON text.
func asString(v Value) (string, bool) {
	switch t := v.(type) {
	case String:
		return string(t), true
	case Bool:
		return strconv.FormatBool(bool(t)), true
	case Int:
		return strconv.FormatInt(int64(t), 10), true
	case Float:
		s, err := NumberToString(float64(t))
		return s, err == nil
	}
	return "", false
}

// Equal reports whether a and b are structurally equal. Numbers compare by
// value, so Int(2) and Float(2) are equal. Object comparison ignores key
// order. Two nil values are equal; nil is not equal to Null{}.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		y, ok := b.(Bool)
		return ok && x == y
	case String:
		y, ok := b.(String)
		return ok && x == y
	case Int:
		switch y := b.(type) {
		case Int:
			return x == y
		case Float:
			return float64(x) == float64(y)
		}
		return false
	case Float:
		switch y := b.(type) {
		case Int:
			return float64(x) == float64(y)
		case Float:
			return x == y
		}
		return false
	case *Array:
		y, ok := b.(*Array)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for i, v := range x.vals {
			if !Equal(v, y.vals[i]) {
				return false
			}
		}
		return true
	case *Object:
		y, ok := b.(*Object)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for k, v := range x.m {
			if !Equal(v, y.m[k]) {
				return false
			}
		}
		return true
	default:
		panic("unknown value type")
	}
}
