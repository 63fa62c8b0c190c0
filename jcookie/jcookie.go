// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package jcookie converts between HTTP cookie text and JSON objects.
//
// A cookie list, as sent in a Cookie request header, is a sequence of
// name=value pairs separated by semicolons. ListToObject maps each name to
// its value, and ListString does the reverse. A single Set-Cookie header is
// handled by ToObject and String, which represent the cookie as an object
// with keys "name" and "value" plus one key per attribute. Names and values
// are decoded with jvalue.Unescape and encoded with jvalue.Escape.
package jcookie

import (
	"fmt"
	"slices"
	"strings"

	"github.com/creachadair/jvalue"
)

// ListToObject parses a cookie list into an object mapping each cookie name
// to its value. Later values for the same name replace earlier ones.
func ListToObject(s string) (*jvalue.Object, error) {
	t := jvalue.NewTokener(s)
	o := jvalue.NewObject()
	for t.More() {
		name := jvalue.Unescape(t.NextTo("="))
		if _, err := t.NextExpect('='); err != nil {
			return nil, err
		}
		o.Put(name, jvalue.String(jvalue.Unescape(t.NextTo(";"))))
		t.Next()
	}
	return o, nil
}

// ListString renders o as a cookie list, the inverse of ListToObject. Keys
// whose values are null are omitted. Each remaining value must be convertible
// to a string.
func ListString(o *jvalue.Object) (string, error) {
	var parts []string
	for key, val := range o.All() {
		if jvalue.IsNull(val) {
			continue
		}
		s, err := o.GetString(key)
		if err != nil {
			return "", err
		}
		parts = append(parts, jvalue.Escape(key)+"="+jvalue.Escape(s))
	}
	return strings.Join(parts, ";"), nil
}

// Keys of a cookie object. Attribute names are stored in lower case.
const (
	Name     = "name"
	Value    = "value"
	Expires  = "expires"
	Domain   = "domain"
	Path     = "path"
	MaxAge   = "max-age"
	SameSite = "samesite"
	Secure   = "secure"
	HTTPOnly = "httponly"
)

// flags are attributes that may appear without a value.
var flags = []string{Secure, HTTPOnly}

// ToObject parses a single Set-Cookie header value. The cookie name and
// value are stored under "name" and "value". Each attribute is stored under
// its lower-cased name; the flag attributes secure and httponly are stored as
// true. Any other attribute without a value is an error.
func ToObject(s string) (*jvalue.Object, error) {
	t := jvalue.NewTokener(s)
	o := jvalue.NewObject()
	o.Put(Name, jvalue.String(jvalue.Unescape(t.NextTo("="))))
	if _, err := t.NextExpect('='); err != nil {
		return nil, err
	}
	o.Put(Value, jvalue.String(jvalue.Unescape(t.NextTo(";"))))
	t.Next()

	for t.More() {
		attr := strings.ToLower(jvalue.Unescape(t.NextTo("=;")))
		if t.Next() != '=' {
			if !slices.Contains(flags, attr) {
				return nil, t.SyntaxError(fmt.Sprintf("missing '=' in cookie parameter %q", attr))
			}
			o.Put(attr, jvalue.Bool(true))
			continue
		}
		o.Put(attr, jvalue.String(jvalue.Unescape(t.NextTo(";"))))
		t.Next()
	}
	return o, nil
}

// String renders a cookie object as a Set-Cookie header value, the inverse
// of ToObject. The name and value are required. The attributes expires,
// domain, path, max-age, and samesite are written if present, followed by
// the flags secure and httponly if they are true. Other keys are ignored.
func String(o *jvalue.Object) (string, error) {
	name, err := o.GetString(Name)
	if err != nil {
		return "", err
	}
	value, err := o.GetString(Value)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString(jvalue.Escape(name))
	sb.WriteByte('=')
	sb.WriteString(jvalue.Escape(value))

	for _, attr := range []string{Expires, Domain, Path, MaxAge, SameSite} {
		if !o.Has(attr) {
			continue
		}
		s, err := o.GetString(attr)
		if err != nil {
			return "", err
		}
		sb.WriteByte(';')
		sb.WriteString(attr)
		sb.WriteByte('=')
		if attr == Expires {
			sb.WriteString(s) // dates contain spaces and commas
		} else {
			sb.WriteString(jvalue.Escape(s))
		}
	}
	for _, flag := range flags {
		if o.OptBool(flag, false) {
			sb.WriteByte(';')
			sb.WriteString(flag)
		}
	}
	return sb.String(), nil
}
