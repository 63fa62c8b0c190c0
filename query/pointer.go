// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/creachadair/jvalue"
)

// Pointer parses s as a JSON Pointer (RFC 6901) and returns a query that
// evaluates it. The empty pointer selects the root. A pointer beginning with
// "#" is in URI fragment form, and is percent-decoded before parsing.
//
// Each reference token selects an object member by name, or an array element
// by a decimal index without leading zeros. The token "-" refers to the
// position past the end of an array, and is never found.
func Pointer(s string) (Query, error) {
	if frag, ok := strings.CutPrefix(s, "#"); ok {
		dec, err := url.PathUnescape(frag)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid pointer fragment: %w", jvalue.ErrInvalidArgument, err)
		}
		s = dec
	}
	if s == "" {
		return Seq{}, nil
	}
	rest, ok := strings.CutPrefix(s, "/")
	if !ok {
		return nil, fmt.Errorf("%w: pointer %q does not begin with '/'", jvalue.ErrInvalidArgument, s)
	}
	var pq Seq
	for _, tok := range strings.Split(rest, "/") {
		name, err := unescapeToken(tok)
		if err != nil {
			return nil, err
		}
		pq = append(pq, ptrStep(name))
	}
	return pq, nil
}

// MustPointer is as Pointer, but panics if s is not a valid pointer.
func MustPointer(s string) Query {
	q, err := Pointer(s)
	if err != nil {
		panic(err)
	}
	return q
}

// FormatPointer renders the given reference tokens as a JSON Pointer.
func FormatPointer(tokens ...string) string {
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteByte('/')
		sb.WriteString(tokenEscaper.Replace(tok))
	}
	return sb.String()
}

var tokenEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func unescapeToken(tok string) (string, error) {
	if !strings.Contains(tok, "~") {
		return tok, nil
	}
	var sb strings.Builder
	for i := 0; i < len(tok); i++ {
		if tok[i] != '~' {
			sb.WriteByte(tok[i])
			continue
		}
		if i+1 < len(tok) {
			switch tok[i+1] {
			case '0':
				sb.WriteByte('~')
				i++
				continue
			case '1':
				sb.WriteByte('/')
				i++
				continue
			}
		}
		return "", fmt.Errorf("%w: invalid escape in pointer token %q", jvalue.ErrInvalidArgument, tok)
	}
	return sb.String(), nil
}

// ptrStep is a single reference token of a pointer. Unlike a path key, its
// interpretation depends on the value it is applied to.
type ptrStep string

func (p ptrStep) eval(v jvalue.Value) (jvalue.Value, error) {
	switch t := v.(type) {
	case *jvalue.Object:
		return t.Get(string(p))
	case *jvalue.Array:
		idx, ok := arrayIndex(string(p))
		if !ok {
			return nil, fmt.Errorf("%w: invalid array index %q", jvalue.ErrNotFound, string(p))
		}
		return t.Get(idx)
	}
	return nil, wantKind(v, jvalue.ObjectKind)
}

// arrayIndex parses a pointer array index. The token "-" is parsed as an
// index that no array contains.
func arrayIndex(s string) (int, bool) {
	if s == "-" {
		return -1, true
	} else if s == "" || (len(s) > 1 && s[0] == '0') {
		return 0, false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}
