// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jvalue

import (
	"fmt"
	"iter"
	"slices"
)

// An Array is an ordered sequence of values. A zero Array is empty and ready
// for use. Nested arrays and objects are stored by reference, so values
// returned by accessors alias the contents of the array.
type Array struct {
	vals []Value
}

// NewArray constructs an array containing vs in order. Nil entries are stored
// as Null.
func NewArray(vs ...Value) *Array {
	a := &Array{vals: make([]Value, 0, len(vs))}
	for _, v := range vs {
		a.Put(v)
	}
	return a
}

// ParseArray parses src as a single JSON array. Input other than spaces and
// comments after the closing bracket is reported as an error.
func ParseArray(src string) (*Array, error) {
	t := NewTokener(src)
	a, err := t.ParseArray()
	if err != nil {
		return nil, err
	}
	return a, t.checkEnd()
}

// Len reports the number of elements in a.
func (a *Array) Len() int {
	if a == nil {
		return 0
	}
	return len(a.vals)
}

// Values returns a copy of the elements of a.
func (a *Array) Values() []Value {
	if a == nil {
		return nil
	}
	return slices.Clone(a.vals)
}

// All returns an iterator over the indices and elements of a.
func (a *Array) All() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		for i := 0; i < a.Len(); i++ {
			if !yield(i, a.vals[i]) {
				return
			}
		}
	}
}

// Get returns the value at index i, or reports ErrNotFound if i is out of
// range.
func (a *Array) Get(i int) (Value, error) {
	if v := a.Opt(i); v != nil {
		return v, nil
	}
	return nil, notFoundf("%v not found", index(i))
}

// Opt returns the value at index i, or nil if i is out of range.
func (a *Array) Opt(i int) Value {
	if i < 0 || i >= a.Len() {
		return nil
	}
	return a.vals[i]
}

// IsNull reports whether index i is out of range or holds Null.
func (a *Array) IsNull(i int) bool { return IsNull(a.Opt(i)) }

// GetBool returns the value at index i as a bool. Besides Boolean values, the
// strings "true" and "false" are accepted.
func (a *Array) GetBool(i int) (bool, error) {
	v, err := a.Get(i)
	return coerce(v, err, asBool, index(i), BoolKind)
}

// GetInt returns the value at index i as an int. Numbers are truncated and
// numeric strings are parsed.
func (a *Array) GetInt(i int) (int, error) {
	z, err := a.GetInt64(i)
	return int(z), err
}

// GetInt64 returns the value at index i as an int64.
func (a *Array) GetInt64(i int) (int64, error) {
	v, err := a.Get(i)
	return coerce(v, err, asInt, index(i), IntKind)
}

// GetFloat returns the value at index i as a float64.
func (a *Array) GetFloat(i int) (float64, error) {
	v, err := a.Get(i)
	return coerce(v, err, asFloat, index(i), FloatKind)
}

// GetString returns the value at index i as a string. Booleans and numbers
// are rendered as text; Null, arrays, and objects are not strings.
func (a *Array) GetString(i int) (string, error) {
	v, err := a.Get(i)
	return coerce(v, err, asString, index(i), StringKind)
}

// GetArray returns the array at index i.
func (a *Array) GetArray(i int) (*Array, error) {
	v, err := a.Get(i)
	return coerce(v, err, asArray, index(i), ArrayKind)
}

// GetObject returns the object at index i.
func (a *Array) GetObject(i int) (*Object, error) {
	v, err := a.Get(i)
	return coerce(v, err, asObject, index(i), ObjectKind)
}

// OptBool returns the value at index i as a bool, or def.
func (a *Array) OptBool(i int, def bool) bool { return orDefault(a.GetBool(i))(def) }

// OptInt returns the value at index i as an int, or def.
func (a *Array) OptInt(i int, def int) int { return orDefault(a.GetInt(i))(def) }

// OptInt64 returns the value at index i as an int64, or def.
func (a *Array) OptInt64(i int, def int64) int64 { return orDefault(a.GetInt64(i))(def) }

// OptFloat returns the value at index i as a float64, or def.
func (a *Array) OptFloat(i int, def float64) float64 { return orDefault(a.GetFloat(i))(def) }

// OptString returns the value at index i as a string, or def.
func (a *Array) OptString(i int, def string) string { return orDefault(a.GetString(i))(def) }

// OptArray returns the array at index i, or nil.
func (a *Array) OptArray(i int) *Array { sub, _ := asArray(a.Opt(i)); return sub }

// OptObject returns the object at index i, or nil.
func (a *Array) OptObject(i int) *Object { sub, _ := asObject(a.Opt(i)); return sub }

// Put appends v to the end of a and returns a. A nil v is stored as Null.
func (a *Array) Put(v Value) *Array {
	if v == nil {
		v = Null{}
	}
	a.vals = append(a.vals, v)
	return a
}

// Set stores v at index i. If i is past the end of the array, the array is
// padded with Null up to i. Set reports ErrInvalidArgument if i < 0 or v is
// nil.
func (a *Array) Set(i int, v Value) error {
	if i < 0 {
		return fmt.Errorf("%w: %v is negative", ErrInvalidArgument, index(i))
	} else if v == nil {
		return fmt.Errorf("%w: nil value for %v", ErrInvalidArgument, index(i))
	}
	for len(a.vals) <= i {
		a.vals = append(a.vals, Null{})
	}
	a.vals[i] = v
	return nil
}

// Join renders the elements of a as compact JSON separated by sep. The
// enclosing brackets are not included.
func (a *Array) Join(sep string) (string, error) {
	var buf []byte
	for i, v := range a.All() {
		if i > 0 {
			buf = append(buf, sep...)
		}
		var err error
		buf, err = appendValue(buf, v, 0, 0)
		if err != nil {
			return "", err
		}
	}
	return string(buf), nil
}

// ToObject constructs an object whose keys are the elements of names and whose
// values are the corresponding elements of a. Keys without a corresponding
// element are omitted. ToObject returns nil if either array is empty.
func (a *Array) ToObject(names *Array) (*Object, error) {
	if names.Len() == 0 || a.Len() == 0 {
		return nil, nil
	}
	o := NewObject()
	for i := range names.Len() {
		key, err := names.GetString(i)
		if err != nil {
			return nil, err
		}
		o.Put(key, a.Opt(i))
	}
	return o, nil
}

// String renders a as compact JSON. If a contains a value that cannot be
// rendered, String returns an empty string.
func (a *Array) String() string {
	s, err := Marshal(a)
	if err != nil {
		return ""
	}
	return s
}

// Indent renders a as indented JSON with n spaces per level.
func (a *Array) Indent(n int) (string, error) { return MarshalIndent(a, n) }

// MarshalJSON implements the json.Marshaler interface.
func (a *Array) MarshalJSON() ([]byte, error) { return appendValue(nil, a, 0, 0) }

// UnmarshalJSON implements the json.Unmarshaler interface. It accepts the
// same lenient syntax as ParseArray.
func (a *Array) UnmarshalJSON(data []byte) error {
	v, err := ParseArray(string(data))
	if err != nil {
		return err
	}
	*a = *v
	return nil
}

// index labels an array element in error messages.
type index int

func (i index) String() string { return fmt.Sprintf("Array[%d]", int(i)) }

func asArray(v Value) (*Array, bool)   { a, ok := v.(*Array); return a, ok }
func asObject(v Value) (*Object, bool) { o, ok := v.(*Object); return o, ok }

// coerce applies conv to v, or passes through an error from the lookup that
// produced v. A failed conversion reports ErrTypeMismatch naming loc.
func coerce[T any](v Value, err error, conv func(Value) (T, bool), loc fmt.Stringer, want Kind) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if t, ok := conv(v); ok {
		return t, nil
	}
	return zero, mismatchf("%v has %v, want %v", loc, v.Kind(), want)
}

// orDefault returns a function yielding t if err == nil, or else its argument.
func orDefault[T any](t T, err error) func(T) T {
	return func(def T) T {
		if err != nil {
			return def
		}
		return t
	}
}
