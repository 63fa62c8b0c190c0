// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jvalue

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/creachadair/jvalue/internal/escape"

	"go4.org/mem"
)

// Quote encodes src as a JSON string value. The contents are escaped and
// double quotation marks are added.
//
// Backslash, double quote, and "/" are escaped with a backslash. The control
// characters backspace, tab, newline, form feed, and carriage return use
// their two-character escapes, and other characters below U+0020 are written
// as \u00XX. All other characters are copied verbatim.
func Quote(src string) string {
	q := escape.Quote(mem.S(src))
	buf := make([]byte, 0, len(q)+2)
	buf = append(buf, '"')
	buf = append(buf, q...)
	return string(append(buf, '"'))
}

// Unescape decodes form-style escapes in s: "+" is replaced by a space and
// each "%hh" by the byte with hexadecimal value hh. Other characters,
// including a "%" not followed by two hex digits, are left as they are.
func Unescape(s string) string { return string(escape.Unescape(mem.S(s))) }

// Escape is the inverse of Unescape for cookie text. It trims leading and
// trailing spaces from s and replaces control characters and the characters
// "+", "%", "=", and ";" with "%hh" escapes.
func Escape(s string) string { return string(escape.Escape(mem.S(s))) }

// NumberToString renders f in the shortest decimal form that round-trips.
// Trailing zeroes in the fraction and a bare trailing decimal point are
// removed. Magnitudes below 1e-6 or at least 1e21 use exponent notation.
// It reports ErrNonFinite if f is infinite or NaN.
func NumberToString(f float64) (string, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return "", fmt.Errorf("%w: %v", ErrNonFinite, f)
	}
	return string(appendFloat(nil, f)), nil
}

func appendFloat(dst []byte, f float64) []byte {
	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	start := len(dst)
	dst = strconv.AppendFloat(dst, f, format, -1, 64)
	if format == 'e' {
		// Clean up e-09 to e-9.
		n := len(dst)
		if n >= 4 && dst[n-4] == 'e' && dst[n-3] == '-' && dst[n-2] == '0' {
			dst[n-2] = dst[n-1]
			dst = dst[:n-1]
		}
		return dst
	}
	if strings.IndexByte(string(dst[start:]), '.') >= 0 {
		for dst[len(dst)-1] == '0' {
			dst = dst[:len(dst)-1]
		}
		if dst[len(dst)-1] == '.' {
			dst = dst[:len(dst)-1]
		}
	}
	return dst
}

// Marshal renders v as compact JSON text, with no added whitespace. Object
// keys are written in sorted order. It reports ErrNonFinite if v contains an
// infinite or NaN number.
func Marshal(v Value) (string, error) {
	buf, err := appendValue(nil, v, 0, 0)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// MarshalIndent renders v as JSON text with each array element and object
// member on its own line, indented by n spaces per level of nesting. Empty
// arrays and objects are written as [] and {}.
func MarshalIndent(v Value, n int) (string, error) {
	if n < 0 {
		return "", fmt.Errorf("%w: negative indent %d", ErrInvalidArgument, n)
	}
	buf, err := appendValue(nil, v, n, 0)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// appendValue appends the JSON encoding of v to buf. If indent > 0, nested
// values are written one per line, indented by indent spaces per level; depth
// is the level of v itself.
func appendValue(buf []byte, v Value, indent, depth int) ([]byte, error) {
	var err error
	switch t := v.(type) {
	case nil, Null:
		return append(buf, "null"...), nil
	case Bool:
		return strconv.AppendBool(buf, bool(t)), nil
	case Int:
		return strconv.AppendInt(buf, int64(t), 10), nil
	case Float:
		f := float64(t)
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, fmt.Errorf("%w: %v", ErrNonFinite, f)
		}
		return appendFloat(buf, f), nil
	case String:
		buf = append(buf, '"')
		buf = append(buf, escape.Quote(mem.S(string(t)))...)
		return append(buf, '"'), nil
	case *Array:
		if t.Len() == 0 {
			return append(buf, "[]"...), nil
		}
		buf = append(buf, '[')
		for i, elt := range t.vals {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = appendNewline(buf, indent, depth+1)
			if buf, err = appendValue(buf, elt, indent, depth+1); err != nil {
				return nil, err
			}
		}
		buf = appendNewline(buf, indent, depth)
		return append(buf, ']'), nil
	case *Object:
		if t.Len() == 0 {
			return append(buf, "{}"...), nil
		}
		buf = append(buf, '{')
		for i, key := range t.Keys() {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = appendNewline(buf, indent, depth+1)
			buf = append(buf, '"')
			buf = append(buf, escape.Quote(mem.S(key))...)
			buf = append(buf, '"', ':')
			if indent > 0 {
				buf = append(buf, ' ')
			}
			if buf, err = appendValue(buf, t.m[key], indent, depth+1); err != nil {
				return nil, err
			}
		}
		buf = appendNewline(buf, indent, depth)
		return append(buf, '}'), nil
	default:
		panic(fmt.Sprintf("unknown value type %T", v))
	}
}

// appendNewline appends a newline and depth*indent spaces to buf, if indent
// is positive.
func appendNewline(buf []byte, indent, depth int) []byte {
	if indent <= 0 {
		return buf
	}
	buf = append(buf, '\n')
	for range indent * depth {
		buf = append(buf, ' ')
	}
	return buf
}
