// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package query implements structural queries over JSON values.
//
// A query describes a substructure of a JSON value, such as an object member,
// array element, or a path through the tree. Evaluating a query against a
// concrete value traverses the structure described by the query and returns
// the resulting value.
//
// The simplest query is for a "path", a sequence of object keys and/or array
// indices that describes a path from the root of a value. For example, given
// the JSON value:
//
//	[{"a": 1, "b": 2}, {"c": {"d": true}, "e": false}]
//
// the query
//
//	query.Path(1, "c", "d")
//
// yields the value true. The same value is selected by the JSON Pointer
// "/1/c/d", see Pointer.
//
// Queries that construct arrays or objects return new containers, but the
// values they select are shared with the input.
package query

import (
	"errors"
	"fmt"

	"github.com/creachadair/jvalue"
)

// Eval evaluates the given query beginning from root, returning the resulting
// value or an error. Errors for missing keys and out-of-range indices wrap
// jvalue.ErrNotFound; errors for values of the wrong kind wrap
// jvalue.ErrTypeMismatch.
func Eval(root jvalue.Value, q Query) (jvalue.Value, error) {
	return q.eval(root)
}

// A Query describes a traversal of a JSON value.
type Query interface {
	eval(jvalue.Value) (jvalue.Value, error)
}

// Path traverses a sequence of nested object keys or array indices from the
// root. If no keys are specified, the root is returned. Each key must be a
// string, an int, or a Query.
func Path(keys ...any) Query {
	if len(keys) == 1 {
		return pathElem(keys[0])
	}
	pq := make(Seq, 0, len(keys))
	for _, key := range keys {
		q := pathElem(key)
		if sq, ok := q.(Seq); ok {
			pq = append(pq, sq...)
		} else {
			pq = append(pq, q)
		}
	}
	return pq
}

func pathElem(key any) Query {
	switch t := key.(type) {
	case string:
		return objKey(t)
	case int:
		return nthQuery(t)
	case Query:
		return t
	default:
		panic(fmt.Sprintf("invalid path element %T", key))
	}
}

func wantKind(v jvalue.Value, want jvalue.Kind) error {
	if v == nil {
		return fmt.Errorf("%w: no value, want %v", jvalue.ErrNotFound, want)
	}
	return fmt.Errorf("%w: got %v, want %v", jvalue.ErrTypeMismatch, v.Kind(), want)
}

// with calls f with v if v has concrete type T, or reports an error.
func with[T jvalue.Value](v jvalue.Value, want jvalue.Kind, f func(T) (jvalue.Value, error)) (jvalue.Value, error) {
	if t, ok := v.(T); ok {
		return f(t)
	}
	return nil, wantKind(v, want)
}

func outOfRange(idx, n int) error {
	return fmt.Errorf("%w: index %d out of range (0..%d)", jvalue.ErrNotFound, idx, n)
}

type objKey string

func (o objKey) eval(v jvalue.Value) (jvalue.Value, error) {
	return with(v, jvalue.ObjectKind, func(obj *jvalue.Object) (jvalue.Value, error) {
		return obj.Get(string(o))
	})
}

type nthQuery int

func (nq nthQuery) eval(v jvalue.Value) (jvalue.Value, error) {
	return with(v, jvalue.ArrayKind, func(arr *jvalue.Array) (jvalue.Value, error) {
		idx := int(nq)
		if idx < 0 {
			idx += arr.Len()
		}
		if idx < 0 || idx >= arr.Len() {
			return nil, outOfRange(int(nq), arr.Len())
		}
		return arr.Opt(idx), nil
	})
}

// Selection constructs an array of the elements of its input array for which
// the specified function returns true.
type Selection func(jvalue.Value) bool

func (q Selection) eval(v jvalue.Value) (jvalue.Value, error) {
	return with(v, jvalue.ArrayKind, func(a *jvalue.Array) (jvalue.Value, error) {
		out := jvalue.NewArray()
		for _, elt := range a.Values() {
			if q(elt) {
				out.Put(elt)
			}
		}
		return out, nil
	})
}

// Mapping constructs an array in which each value is replaced by the result of
// calling the specified function on the corresponding input value.
type Mapping func(jvalue.Value) jvalue.Value

func (q Mapping) eval(v jvalue.Value) (jvalue.Value, error) {
	return with(v, jvalue.ArrayKind, func(a *jvalue.Array) (jvalue.Value, error) {
		out := jvalue.NewArray()
		for _, elt := range a.Values() {
			out.Put(q(elt))
		}
		return out, nil
	})
}

// Slice selects a slice of an array from offsets lo to hi. The range includes
// lo but excludes hi. Negative offsets select from the end of the array.
// If hi == 0, the length of the array is used.
func Slice(lo, hi int) Query { return sliceQuery{lo, hi} }

type sliceQuery struct{ lo, hi int }

func (q sliceQuery) eval(v jvalue.Value) (jvalue.Value, error) {
	return with(v, jvalue.ArrayKind, func(arr *jvalue.Array) (jvalue.Value, error) {
		n := arr.Len()
		lox := q.lo
		if lox < 0 {
			lox += n
		}
		hix := q.hi
		if hix <= 0 {
			hix += n
		}
		if lox < 0 || lox >= n {
			return nil, outOfRange(q.lo, n)
		} else if hix < 0 || hix > n {
			return nil, outOfRange(q.hi, n)
		} else if lox > hix {
			return nil, fmt.Errorf("%w: index start %d > end %d", jvalue.ErrInvalidArgument, q.lo, q.hi)
		}
		return jvalue.NewArray(arr.Values()[lox:hix]...), nil
	})
}

// Pick constructs an array by picking the designated offsets from an array.
// Negative offsets select from the end of the input array.
func Pick(offsets ...int) Query { return pickQuery(offsets) }

type pickQuery []int

func (q pickQuery) eval(v jvalue.Value) (jvalue.Value, error) {
	return with(v, jvalue.ArrayKind, func(arr *jvalue.Array) (jvalue.Value, error) {
		out := jvalue.NewArray()
		for _, off := range q {
			pos := off
			if pos < 0 {
				pos += arr.Len()
			}
			if pos < 0 || pos >= arr.Len() {
				return nil, outOfRange(off, arr.Len())
			}
			out.Put(arr.Opt(pos))
		}
		return out, nil
	})
}

// Len returns an integer representing the length of the root.
//
// For an object, the length is the number of members.
// For an array, the length is the number of elements.
// For a string, the length is the length of the string in bytes.
// For null, the length is zero.
func Len() Query { return lenQuery{} }

type lenQuery struct{}

func (lenQuery) eval(v jvalue.Value) (jvalue.Value, error) {
	switch t := v.(type) {
	case *jvalue.Object:
		return jvalue.Int(t.Len()), nil
	case *jvalue.Array:
		return jvalue.Int(t.Len()), nil
	case jvalue.String:
		return jvalue.Int(len(t)), nil
	case jvalue.Null:
		return jvalue.Int(0), nil
	}
	return nil, fmt.Errorf("%w: cannot take length of %v", jvalue.ErrTypeMismatch, kindOf(v))
}

func kindOf(v jvalue.Value) string {
	if v == nil {
		return "nothing"
	}
	return v.Kind().String()
}

// Seq is a sequential composition of queries. An empty sequence selects the
// root; otherwise, each query is applied to the result selected by the
// previous query in the sequence.
type Seq []Query

func (q Seq) eval(v jvalue.Value) (jvalue.Value, error) {
	cur := v
	for _, sq := range q {
		next, err := sq.eval(cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// Alt is a query that selects among a sequence of alternatives. The result of
// the first alternative that does not report an error is returned. If there
// are no alternatives, the query fails on all inputs.
type Alt []Query

func (q Alt) eval(v jvalue.Value) (jvalue.Value, error) {
	for _, alt := range q {
		if w, err := alt.eval(v); err == nil {
			return w, nil
		}
	}
	return nil, fmt.Errorf("%w: no matching alternatives", jvalue.ErrNotFound)
}

// Recur applies a query to each recursive descendant of its input, including
// the input itself, and returns an array of the resulting values. Object
// members are visited in key order. The arguments have the same constraints
// as Path.
func Recur(keys ...any) Query { return recQuery{Path(keys...)} }

type recQuery struct{ Query }

func (q recQuery) eval(v jvalue.Value) (jvalue.Value, error) {
	out := jvalue.NewArray()

	stk := []jvalue.Value{v}
	for len(stk) != 0 {
		next := stk[len(stk)-1]
		stk = stk[:len(stk)-1]

		if r, err := q.Query.eval(next); err == nil {
			out.Put(r)
		}

		// N.B. Push in reverse order, so we visit in lexical order.
		var kids []jvalue.Value
		switch t := next.(type) {
		case *jvalue.Object:
			for _, key := range t.Keys() {
				kids = append(kids, t.Opt(key))
			}
		case *jvalue.Array:
			kids = t.Values()
		}
		for i := len(kids) - 1; i >= 0; i-- {
			stk = append(stk, kids[i])
		}
	}

	if out.Len() == 0 {
		return nil, errors.New("no matches")
	}
	return out, nil
}

// Each applies a query to each element of an array and returns an array of the
// resulting values. It fails if the input is not an array. The arguments have
// the same constraints as Path.
func Each(keys ...any) Query { return eachQuery{Path(keys...)} }

type eachQuery struct{ Query }

func (q eachQuery) eval(v jvalue.Value) (jvalue.Value, error) {
	return with(v, jvalue.ArrayKind, func(arr *jvalue.Array) (jvalue.Value, error) {
		out := jvalue.NewArray()
		for i, elt := range arr.Values() {
			r, err := q.Query.eval(elt)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			out.Put(r)
		}
		return out, nil
	})
}

// Object constructs an object with the given keys mapped to the results of
// matching the query values against its input.
type Object map[string]Query

func (o Object) eval(v jvalue.Value) (jvalue.Value, error) {
	out := jvalue.NewObject()
	for key, q := range o {
		val, err := q.eval(v)
		if err != nil {
			return nil, fmt.Errorf("match %q: %w", key, err)
		}
		out.Put(key, val)
	}
	return out, nil
}

// Array constructs an array with the values produced by matching the given
// queries against its input.
type Array []Query

func (a Array) eval(v jvalue.Value) (jvalue.Value, error) {
	out := jvalue.NewArray()
	for i, q := range a {
		val, err := q.eval(v)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		out.Put(val)
	}
	return out, nil
}

// A Value query ignores its input and returns the given value, which is
// converted as by jvalue.ToValue.
func Value(v any) Query { return constQuery{jvalue.ToValue(v)} }

type constQuery struct{ jvalue.Value }

func (c constQuery) eval(_ jvalue.Value) (jvalue.Value, error) { return c.Value, nil }

// A Glob query returns an array of the members of an object, in key order, or
// of the elements of an array.
func Glob() Query { return globQuery{} }

type globQuery struct{}

func (globQuery) eval(v jvalue.Value) (jvalue.Value, error) {
	switch t := v.(type) {
	case *jvalue.Object:
		out := jvalue.NewArray()
		for _, val := range t.All() {
			out.Put(val)
		}
		return out, nil
	case *jvalue.Array:
		return t, nil
	default:
		return nil, fmt.Errorf("%w: no matching values in %v", jvalue.ErrTypeMismatch, kindOf(v))
	}
}
