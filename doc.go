// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jvalue implements a JSON value model with a lenient parser and a
// strict serializer.
//
// # Values
//
// A Value is one of Null, Bool, Int, Float, String, *Array, or *Object. A nil
// Value denotes an absent key or index, which is distinct from the null
// constant Null{}:
//
//	o := jvalue.NewObject().Put("a", jvalue.Null{})
//	o.Has("a")    // true
//	o.IsNull("a") // true
//	o.IsNull("b") // true: absent
//	o.Opt("b")    // nil
//
// Arrays and objects are mutable and hold nested containers by reference.
// They are not safe for concurrent mutation.
//
// # Parsing
//
// Parse, ParseObject, and ParseArray accept a superset of JSON:
//
//   - strings may use single or double quotes;
//   - an unquoted token that is not a number or constant is a string;
//   - object keys may be unquoted;
//   - a trailing comma is allowed before ] and };
//   - an omitted array element, as in [1,,3], is null;
//   - comments in the forms // ... and /* ... */ may appear between tokens.
//
// For example:
//
//	v, err := jvalue.Parse(`{a: 1, b: 'x', /* note */ c: [true,,],}`)
//
// In case of malformed input, the error has concrete type *SyntaxError and
// reports the byte offset where the problem was detected.
//
// The Tokener type exposes the underlying character reader, which the jhttp,
// jxml, and jcookie packages use to read other formats.
//
// # Serialization
//
// Marshal renders a value as compact JSON with double-quoted strings (see
// Quote) and the shortest numeric form (see NumberToString). MarshalIndent
// renders each element on its own line. Object keys are written in sorted
// order. Infinite and NaN numbers cannot be serialized and report
// ErrNonFinite.
//
// # Accessors
//
// The Get methods of Array and Object report ErrNotFound for a missing index
// or key, and the typed variants (GetBool, GetInt, ...) report
// ErrTypeMismatch for a value that cannot be converted. The corresponding Opt
// methods return a default value instead.
package jvalue
