// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jvalue

import "fmt"

// Parse parses src as a single JSON value in the lenient syntax accepted by
// Tokener.NextValue. Input other than spaces and comments after the value is
// reported as an error. In case of a syntax error, the returned error has
// concrete type [*SyntaxError].
func Parse(src string) (Value, error) {
	t := NewTokener(src)
	v, err := t.NextValue()
	if err != nil {
		return nil, err
	}
	return v, t.checkEnd()
}

// ParseObject reads an object from the input, beginning with its open
// brace. If percent encoding is enabled (see AllowPercentEncoding) and the
// next character is "%", the remaining input is unescaped first.
//
// Keys may be given as any value, not only a quoted string; a key that is not
// a string is converted to its JSON text. If a key is repeated, the last value
// wins. A trailing comma before the close brace is allowed.
func (t *Tokener) ParseObject() (*Object, error) {
	if t.pct {
		if t.Next() == '%' {
			t.pos -= t.last
			t.Unescape()
		} else {
			t.Back()
		}
	}
	return t.parseObject()
}

// ParseArray reads an array from the input, beginning with its open bracket.
//
// An element omitted between two commas is Null, so that [1,,3] has three
// elements. A trailing comma before the close bracket is allowed.
func (t *Tokener) ParseArray() (*Array, error) { return t.parseArray() }

func (t *Tokener) parseObject() (*Object, error) {
	if c, err := t.NextClean(); err != nil {
		return nil, err
	} else if c != '{' {
		return nil, t.SyntaxError("an object must begin with '{'")
	}
	o := NewObject()
	for {
		c, err := t.NextClean()
		if err != nil {
			return nil, err
		}
		switch c {
		case 0:
			return nil, t.SyntaxError("an object must end with '}'")
		case '}':
			return o, nil
		}
		t.Back()

		kv, err := t.NextValue()
		if err != nil {
			return nil, err
		}
		key, err := keyString(kv)
		if err != nil {
			return nil, err
		}

		if c, err := t.NextClean(); err != nil {
			return nil, err
		} else if c != ':' {
			return nil, t.SyntaxError(fmt.Sprintf("expected ':' after key %q", key))
		}
		v, err := t.NextValue()
		if err != nil {
			return nil, err
		}
		o.Put(key, v)

		c, err = t.NextClean()
		if err != nil {
			return nil, err
		}
		switch c {
		case ',':
			if c, err := t.NextClean(); err != nil {
				return nil, err
			} else if c == '}' {
				return o, nil
			}
			t.Back()
		case '}':
			return o, nil
		default:
			return nil, t.SyntaxError("expected ',' or '}'")
		}
	}
}

func (t *Tokener) parseArray() (*Array, error) {
	if c, err := t.NextClean(); err != nil {
		return nil, err
	} else if c != '[' {
		return nil, t.SyntaxError("an array must begin with '['")
	}
	a := new(Array)
	if c, err := t.NextClean(); err != nil {
		return nil, err
	} else if c == ']' {
		return a, nil
	}
	t.Back()
	for {
		c, err := t.NextClean()
		if err != nil {
			return nil, err
		}
		t.Back()
		if c == ',' {
			a.Put(Null{})
		} else {
			v, err := t.NextValue()
			if err != nil {
				return nil, err
			}
			a.Put(v)
		}

		c, err = t.NextClean()
		if err != nil {
			return nil, err
		}
		switch c {
		case ',':
			if c, err := t.NextClean(); err != nil {
				return nil, err
			} else if c == ']' {
				return a, nil
			}
			t.Back()
		case ']':
			return a, nil
		default:
			return nil, t.SyntaxError("expected ',' or ']'")
		}
	}
}

// keyString converts a value read in key position to a string key.
func keyString(v Value) (string, error) {
	if s, ok := v.(String); ok {
		return string(s), nil
	}
	return Marshal(v)
}
