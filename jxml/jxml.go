// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package jxml converts between XML documents and JSON objects.
//
// The conversion is lossy: an element becomes a key of its parent object,
// attributes and child elements become keys of the element's object, and
// text content is stored under the key "content". Repeated elements with the
// same name are collected into an array. Text and attribute values are
// converted with jvalue.StringToValue, so "5" becomes a number. Comments,
// processing instructions, and declarations are discarded.
//
//	<a x="1"><b>hi</b><b>there</b>text</a>
//
// becomes
//
//	{"a":{"b":["hi","there"],"content":"text","x":1}}
package jxml

import (
	"fmt"
	"strings"

	"github.com/creachadair/jvalue"
)

// ContentKey is the key under which text content is stored.
const ContentKey = "content"

// ToObject parses an XML document into an object.
func ToObject(src string) (*jvalue.Object, error) {
	t := NewTokener(src)
	root := jvalue.NewObject()
	for t.More() && t.SkipPast("<") {
		if _, err := t.parse(root, ""); err != nil {
			return nil, err
		}
	}
	return root, nil
}

// parse reads an element, close tag, or markup declaration whose opening '<'
// has been consumed, and adds any element found to ctx. The name is that of
// the enclosing element, or "" at the top level. It reports true if it
// consumed the close tag for name.
func (t *Tokener) parse(ctx *jvalue.Object, name string) (bool, error) {
	tok, err := t.NextToken()
	if err != nil {
		return false, err
	}
	switch {
	case tok.Is('!'):
		return false, t.parseBang(ctx)

	case tok.Is('?'):
		t.SkipPast("?>")
		return false, nil

	case tok.Is('/'):
		tok, err := t.NextToken()
		if err != nil {
			return false, err
		} else if name == "" {
			return false, t.SyntaxError(fmt.Sprintf("mismatched close tag %v", tok))
		} else if tok.Kind != Text || tok.Text != name {
			return false, t.SyntaxError(fmt.Sprintf("mismatched %s and %v", name, tok))
		}
		if end, err := t.NextToken(); err != nil {
			return false, err
		} else if !end.Is('>') {
			return false, t.SyntaxError("misshaped close tag")
		}
		return true, nil

	case tok.Kind == Symbol:
		return false, t.SyntaxError("misshaped tag")
	}
	return false, t.parseElement(ctx, tok.Text)
}

// parseBang handles a comment, CDATA section, or declaration following "<!".
func (t *Tokener) parseBang(ctx *jvalue.Object) error {
	switch t.Next() {
	case '-':
		if t.Next() == '-' {
			t.SkipPast("-->")
			return nil
		}
		t.Back()
	case '[':
		tok, err := t.NextToken()
		if err != nil {
			return err
		}
		if tok.Kind == Text && tok.Text == "CDATA" && t.Next() == '[' {
			s, err := t.NextCDATA()
			if err != nil {
				return err
			}
			if s != "" {
				ctx.Accumulate(ContentKey, jvalue.String(s))
			}
			return nil
		}
		return t.SyntaxError("expected 'CDATA['")
	}

	// Skip a declaration, including any nested markup.
	for depth := 1; depth > 0; {
		tok, err := t.NextMeta()
		if err != nil {
			return t.SyntaxError("missing '>' after '<!'")
		}
		if tok.Is('<') {
			depth++
		} else if tok.Is('>') {
			depth--
		}
	}
	return nil
}

// parseElement reads the attributes and body of an element whose name has
// been consumed, and accumulates the result into ctx under the tag name.
func (t *Tokener) parseElement(ctx *jvalue.Object, tag string) error {
	elt := jvalue.NewObject()
	var tok Token
	var err error
	pending := false
	for {
		if !pending {
			if tok, err = t.NextToken(); err != nil {
				return err
			}
		}
		pending = false

		switch {
		case tok.Kind == Text:
			attr := tok.Text
			if tok, err = t.NextToken(); err != nil {
				return err
			}
			if !tok.Is('=') {
				elt.Accumulate(attr, jvalue.String(""))
				pending = true
				continue
			}
			val, err := t.NextToken()
			if err != nil {
				return err
			} else if val.Kind != Text {
				return t.SyntaxError("missing value")
			}
			elt.Accumulate(attr, jvalue.StringToValue(val.Text))

		case tok.Is('/'):
			// Empty-element tag.
			if end, err := t.NextToken(); err != nil {
				return err
			} else if !end.Is('>') {
				return t.SyntaxError("misshaped tag")
			}
			if elt.Len() > 0 {
				ctx.Accumulate(tag, elt)
			} else {
				ctx.Accumulate(tag, jvalue.String(""))
			}
			return nil

		case tok.Is('>'):
			return t.parseBody(ctx, elt, tag)

		default:
			return t.SyntaxError("misshaped tag")
		}
	}
}

// parseBody reads the content of elt up to its close tag.
func (t *Tokener) parseBody(ctx, elt *jvalue.Object, tag string) error {
	for {
		tok, err := t.NextContent()
		if err != nil {
			return err
		}
		switch tok.Kind {
		case End:
			return t.SyntaxError(fmt.Sprintf("unclosed tag %s", tag))

		case Text:
			if tok.Text != "" {
				elt.Accumulate(ContentKey, jvalue.StringToValue(tok.Text))
			}

		case Symbol:
			closed, err := t.parse(elt, tag)
			if err != nil {
				return err
			} else if !closed {
				continue
			}
			switch elt.Len() {
			case 0:
				ctx.Accumulate(tag, jvalue.String(""))
			case 1:
				if c := elt.Opt(ContentKey); c != nil {
					ctx.Accumulate(tag, c)
					break
				}
				ctx.Accumulate(tag, elt)
			default:
				ctx.Accumulate(tag, elt)
			}
			return nil
		}
	}
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// Escape replaces the characters & < > " ' in s with their entity
// references.
func Escape(s string) string { return escaper.Replace(s) }

// String renders v as XML, the inverse of ToObject. If tag is not empty, the
// result is wrapped in an element with that name. An array renders as one
// element per value, named by tag or "array" if tag is empty. A scalar with
// no tag renders as a quoted string.
func String(v jvalue.Value, tag string) (string, error) {
	var sb strings.Builder
	if err := writeXML(&sb, v, tag); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func writeXML(sb *strings.Builder, v jvalue.Value, tag string) error {
	switch t := v.(type) {
	case *jvalue.Object:
		if tag != "" {
			fmt.Fprintf(sb, "<%s>", tag)
		}
		for key, val := range t.All() {
			if err := writeField(sb, key, val); err != nil {
				return err
			}
		}
		if tag != "" {
			fmt.Fprintf(sb, "</%s>", tag)
		}
		return nil

	case *jvalue.Array:
		if tag == "" {
			tag = "array"
		}
		for _, elt := range t.Values() {
			if err := writeXML(sb, elt, tag); err != nil {
				return err
			}
		}
		return nil
	}

	s, err := scalarText(v)
	if err != nil {
		return err
	}
	s = Escape(s)
	switch {
	case tag == "":
		sb.WriteString(`"` + s + `"`)
	case s == "":
		fmt.Fprintf(sb, "<%s/>", tag)
	default:
		fmt.Fprintf(sb, "<%s>%s</%s>", tag, s, tag)
	}
	return nil
}

// writeField renders a single member of an object.
func writeField(sb *strings.Builder, key string, val jvalue.Value) error {
	arr, isArray := val.(*jvalue.Array)
	switch {
	case key == ContentKey && isArray:
		for i, elt := range arr.Values() {
			s, err := scalarText(elt)
			if err != nil {
				return err
			}
			if i > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString(Escape(s))
		}

	case key == ContentKey:
		s, err := scalarText(val)
		if err != nil {
			return err
		}
		sb.WriteString(Escape(s))

	case isArray:
		for _, elt := range arr.Values() {
			if sub, ok := elt.(*jvalue.Array); ok {
				fmt.Fprintf(sb, "<%s>", key)
				if err := writeXML(sb, sub, ""); err != nil {
					return err
				}
				fmt.Fprintf(sb, "</%s>", key)
			} else if err := writeXML(sb, elt, key); err != nil {
				return err
			}
		}

	case val == jvalue.String(""):
		fmt.Fprintf(sb, "<%s/>", key)

	default:
		return writeXML(sb, val, key)
	}
	return nil
}

// scalarText returns the text of a value as it appears in XML content. Text
// is written without quotes, and containers are written as JSON.
func scalarText(v jvalue.Value) (string, error) {
	if s, ok := v.(jvalue.String); ok {
		return string(s), nil
	}
	return jvalue.Marshal(v)
}
