// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jvalue

import (
	"fmt"
	"iter"
	"maps"
	"slices"
)

// An Object is an unordered collection of values indexed by string keys. Each
// key appears at most once. A zero Object is empty and ready for use.
//
// The order of keys is not significant; Keys and the serialized forms of an
// object list its keys in sorted order.
type Object struct {
	m map[string]Value
}

// NewObject constructs a new empty object.
func NewObject() *Object { return &Object{m: make(map[string]Value)} }

// ObjectOf constructs an object containing the entries of m. Entries with a
// nil value are skipped.
func ObjectOf(m map[string]Value) *Object {
	o := &Object{m: make(map[string]Value, len(m))}
	for k, v := range m {
		o.Put(k, v)
	}
	return o
}

// ParseObject parses src as a single JSON object. Input other than spaces and
// comments after the closing brace is reported as an error.
func ParseObject(src string) (*Object, error) {
	t := NewTokener(src)
	o, err := t.ParseObject()
	if err != nil {
		return nil, err
	}
	return o, t.checkEnd()
}

// Len reports the number of keys in o.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.m)
}

// Has reports whether o contains key.
func (o *Object) Has(key string) bool { return o.Opt(key) != nil }

// Keys returns the keys of o in sorted order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(o.m))
}

// All returns an iterator over the keys and values of o in sorted key order.
func (o *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, k := range o.Keys() {
			if !yield(k, o.m[k]) {
				return
			}
		}
	}
}

// Names returns an array of the keys of o, or nil if o is empty.
func (o *Object) Names() *Array {
	if o.Len() == 0 {
		return nil
	}
	a := &Array{vals: make([]Value, 0, o.Len())}
	for _, k := range o.Keys() {
		a.Put(String(k))
	}
	return a
}

// Get returns the value of key, or reports ErrNotFound if o does not
// contain key.
func (o *Object) Get(key string) (Value, error) {
	if v := o.Opt(key); v != nil {
		return v, nil
	}
	return nil, notFoundf("%v not found", name(key))
}

// Opt returns the value of key, or nil if o does not contain key.
func (o *Object) Opt(key string) Value {
	if o == nil {
		return nil
	}
	return o.m[key]
}

// IsNull reports whether key is absent from o or has the value Null.
func (o *Object) IsNull(key string) bool { return IsNull(o.Opt(key)) }

// GetBool returns the value of key as a bool. Besides Boolean values, the
// strings "true" and "false" are accepted.
func (o *Object) GetBool(key string) (bool, error) {
	v, err := o.Get(key)
	return coerce(v, err, asBool, name(key), BoolKind)
}

// GetInt returns the value of key as an int. Numbers are truncated and
// numeric strings are parsed.
func (o *Object) GetInt(key string) (int, error) {
	z, err := o.GetInt64(key)
	return int(z), err
}

// GetInt64 returns the value of key as an int64.
func (o *Object) GetInt64(key string) (int64, error) {
	v, err := o.Get(key)
	return coerce(v, err, asInt, name(key), IntKind)
}

// GetFloat returns the value of key as a float64.
func (o *Object) GetFloat(key string) (float64, error) {
	v, err := o.Get(key)
	return coerce(v, err, asFloat, name(key), FloatKind)
}

// GetString returns the value of key as a string. Booleans and numbers are
// rendered as text; Null, arrays, and objects are not strings.
func (o *Object) GetString(key string) (string, error) {
	v, err := o.Get(key)
	return coerce(v, err, asString, name(key), StringKind)
}

// GetArray returns the array stored under key.
func (o *Object) GetArray(key string) (*Array, error) {
	v, err := o.Get(key)
	return coerce(v, err, asArray, name(key), ArrayKind)
}

// GetObject returns the object stored under key.
func (o *Object) GetObject(key string) (*Object, error) {
	v, err := o.Get(key)
	return coerce(v, err, asObject, name(key), ObjectKind)
}

// OptBool returns the value of key as a bool, or def.
func (o *Object) OptBool(key string, def bool) bool { return orDefault(o.GetBool(key))(def) }

// OptInt returns the value of key as an int, or def.
func (o *Object) OptInt(key string, def int) int { return orDefault(o.GetInt(key))(def) }

// OptInt64 returns the value of key as an int64, or def.
func (o *Object) OptInt64(key string, def int64) int64 { return orDefault(o.GetInt64(key))(def) }

// OptFloat returns the value of key as a float64, or def.
func (o *Object) OptFloat(key string, def float64) float64 { return orDefault(o.GetFloat(key))(def) }

// OptString returns the value of key as a string, or def.
func (o *Object) OptString(key string, def string) string { return orDefault(o.GetString(key))(def) }

// OptArray returns the array stored under key, or nil.
func (o *Object) OptArray(key string) *Array { a, _ := asArray(o.Opt(key)); return a }

// OptObject returns the object stored under key, or nil.
func (o *Object) OptObject(key string) *Object { sub, _ := asObject(o.Opt(key)); return sub }

// Put sets the value of key to v and returns o. If v == nil, key is removed.
func (o *Object) Put(key string, v Value) *Object {
	if v == nil {
		delete(o.m, key)
		return o
	}
	if o.m == nil {
		o.m = make(map[string]Value)
	}
	o.m[key] = v
	return o
}

// PutOpt sets the value of key to v if v != nil. Otherwise o is unchanged.
func (o *Object) PutOpt(key string, v Value) *Object {
	if v != nil {
		o.Put(key, v)
	}
	return o
}

// Remove removes key from o and returns its previous value, or nil.
func (o *Object) Remove(key string) Value {
	old := o.Opt(key)
	delete(o.m, key)
	return old
}

// Accumulate adds v to the values of key and returns o.
//
// If key is absent, Accumulate is the same as Put. If the existing value is
// an array, v is appended to it. Otherwise the existing value and v are
// replaced by a new two-element array. A nil v leaves o unchanged.
func (o *Object) Accumulate(key string, v Value) *Object {
	if v == nil {
		return o
	}
	switch old := o.Opt(key).(type) {
	case nil:
		o.Put(key, v)
	case *Array:
		old.Put(v)
	default:
		o.Put(key, NewArray(old, v))
	}
	return o
}

// ToArray returns an array of the values of o for each key in names, in the
// same order. Keys absent from o produce Null. ToArray returns nil if names
// is empty.
func (o *Object) ToArray(names *Array) (*Array, error) {
	if names.Len() == 0 {
		return nil, nil
	}
	a := &Array{vals: make([]Value, 0, names.Len())}
	for i := range names.Len() {
		key, err := names.GetString(i)
		if err != nil {
			return nil, err
		}
		a.Put(o.Opt(key))
	}
	return a, nil
}

// String renders o as compact JSON. If o contains a value that cannot be
// rendered, String returns an empty string.
func (o *Object) String() string {
	s, err := Marshal(o)
	if err != nil {
		return ""
	}
	return s
}

// Indent renders o as indented JSON with n spaces per level.
func (o *Object) Indent(n int) (string, error) { return MarshalIndent(o, n) }

// MarshalJSON implements the json.Marshaler interface.
func (o *Object) MarshalJSON() ([]byte, error) { return appendValue(nil, o, 0, 0) }

// UnmarshalJSON implements the json.Unmarshaler interface. It accepts the
// same lenient syntax as ParseObject.
func (o *Object) UnmarshalJSON(data []byte) error {
	v, err := ParseObject(string(data))
	if err != nil {
		return err
	}
	*o = *v
	return nil
}

// name labels an object member in error messages.
type name string

func (n name) String() string { return fmt.Sprintf("Object[%q]", string(n)) }
