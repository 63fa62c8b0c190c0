// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package jhttp converts between HTTP message headers and JSON objects.
//
// A request header is represented as an object with the keys "Method",
// "Request-URI", and "HTTP-Version", and a response header with the keys
// "HTTP-Version", "Status-Code", and "Reason-Phrase". Each header field is an
// additional key whose value is the field text:
//
//	GET /index.html HTTP/1.1
//	Host: example.com
//
// becomes
//
//	{"HTTP-Version":"HTTP/1.1","Host":"example.com","Method":"GET","Request-URI":"/index.html"}
package jhttp

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/creachadair/jvalue"
)

// CRLF is the line terminator written by String.
const CRLF = "\r\n"

// Keys used for the parts of the start line.
const (
	Method       = "Method"
	RequestURI   = "Request-URI"
	HTTPVersion  = "HTTP-Version"
	StatusCode   = "Status-Code"
	ReasonPhrase = "Reason-Phrase"
)

var startKeys = []string{Method, RequestURI, HTTPVersion, StatusCode, ReasonPhrase}

// A Tokener reads the tokens of an HTTP header.
type Tokener struct {
	*jvalue.Tokener
}

// NewTokener constructs a Tokener that reads from src.
func NewTokener(src string) *Tokener { return &Tokener{Tokener: jvalue.NewTokener(src)} }

// NextToken skips leading whitespace and reads the next token. A token that
// begins with a single or double quote extends to the matching quote, and the
// quotes are removed; a control character before the closing quote is an
// error. Otherwise the token extends to the next whitespace character, which
// is consumed. At the end of the input NextToken returns "".
func (t *Tokener) NextToken() (string, error) {
	c := t.Next()
	for unicode.IsSpace(c) {
		c = t.Next()
	}

	var sb strings.Builder
	if c == '"' || c == '\'' {
		q := c
		for {
			c = t.Next()
			if c < ' ' {
				return "", t.SyntaxError("unterminated string")
			} else if c == q {
				return sb.String(), nil
			}
			sb.WriteRune(c)
		}
	}
	for c != 0 && !unicode.IsSpace(c) {
		sb.WriteRune(c)
		c = t.Next()
	}
	return sb.String(), nil
}

// endLine consumes a line terminator (CRLF, LF, or CR) and reports whether
// one was found.
func (t *Tokener) endLine() bool {
	switch t.Next() {
	case '\r':
		if t.Next() != '\n' {
			t.Back()
		}
		return true
	case '\n':
		return true
	}
	t.Back()
	return false
}

// ToObject parses an HTTP request or response header. If the first token
// begins with "HTTP" the start line is a status line, otherwise it is a
// request line. Parsing stops at the first blank line.
func ToObject(header string) (*jvalue.Object, error) {
	t := NewTokener(header)
	first, err := t.NextToken()
	if err != nil {
		return nil, err
	} else if first == "" {
		return nil, t.SyntaxError("missing start line")
	}

	o := jvalue.NewObject()
	if strings.HasPrefix(strings.ToUpper(first), "HTTP") {
		code, err := t.NextToken()
		if err != nil {
			return nil, err
		}
		o.Put(HTTPVersion, jvalue.String(first))
		o.Put(StatusCode, jvalue.String(code))
		o.Put(ReasonPhrase, jvalue.String(t.NextTo("")))
	} else {
		uri, err := t.NextToken()
		if err != nil {
			return nil, err
		}
		o.Put(Method, jvalue.String(first))
		o.Put(RequestURI, jvalue.String(uri))
		o.Put(HTTPVersion, jvalue.String(t.NextTo("")))
	}
	t.endLine()

	for t.More() {
		if t.endLine() {
			break // blank line: end of header
		}
		name := t.NextTo(":")
		if _, err := t.NextExpect(':'); err != nil {
			return nil, err
		}
		o.Put(name, jvalue.String(t.NextTo("")))
		t.endLine()
	}
	return o, nil
}

// String renders o as an HTTP header, the inverse of ToObject. The header
// ends with an empty line. Fields are written in sorted order by name, and
// each field value must be convertible to a string.
func String(o *jvalue.Object) (string, error) {
	var sb strings.Builder
	switch {
	case o.Has(StatusCode) && o.Has(ReasonPhrase):
		if err := writeLine(&sb, o, HTTPVersion, StatusCode, ReasonPhrase); err != nil {
			return "", err
		}
	case o.Has(Method) && o.Has(RequestURI):
		if err := writeLine(&sb, o, Method, RequestURI, HTTPVersion); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("%w: not enough material for an HTTP header", jvalue.ErrInvalidArgument)
	}

	for _, key := range o.Keys() {
		if slices.Contains(startKeys, key) {
			continue
		}
		val, err := o.GetString(key)
		if err != nil {
			return "", err
		}
		sb.WriteString(key)
		sb.WriteString(": ")
		sb.WriteString(val)
		sb.WriteString(CRLF)
	}
	sb.WriteString(CRLF)
	return sb.String(), nil
}

func writeLine(sb *strings.Builder, o *jvalue.Object, keys ...string) error {
	for i, key := range keys {
		val, err := o.GetString(key)
		if err != nil {
			return err
		}
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(val)
	}
	sb.WriteString(CRLF)
	return nil
}
