// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jxml

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/creachadair/jvalue"
	"github.com/creachadair/mds/mapset"
)

// Kind identifies the kind of a Token.
type Kind byte

// Constants defining the valid Kind values.
const (
	End    Kind = iota // end of input
	Symbol             // a markup character, see Token.Sym
	Text               // a name, quoted string, or content text
)

var kindStr = [...]string{End: "end", Symbol: "symbol", Text: "text"}

func (k Kind) String() string {
	if int(k) < len(kindStr) {
		return kindStr[k]
	}
	return "invalid"
}

// A Token is a lexical element of an XML document.
type Token struct {
	Kind Kind
	Sym  rune   // for Symbol: one of < > / = ! ?
	Text string // for Text
}

func (t Token) String() string {
	switch t.Kind {
	case Symbol:
		return string(t.Sym)
	case Text:
		return strconv.Quote(t.Text)
	}
	return t.Kind.String()
}

// Is reports whether t is the symbol c.
func (t Token) Is(c rune) bool { return t.Kind == Symbol && t.Sym == c }

func sym(c rune) Token      { return Token{Kind: Symbol, Sym: c} }
func text(s string) Token   { return Token{Kind: Text, Text: s} }
func isSpace(c rune) bool   { return unicode.IsSpace(c) }
func isSymbol(c rune) bool  { return symbols.Has(c) }
func isNameEnd(c rune) bool { return nameEnd.Has(c) }

var (
	symbols = mapset.New('<', '>', '/', '=', '!', '?')
	nameEnd = mapset.New('>', '/', '=', '!', '?', '[', ']')

	entities = map[string]string{
		"amp":  "&",
		"apos": "'",
		"gt":   ">",
		"lt":   "<",
		"quot": `"`,
	}
)

// A Tokener reads the tokens of an XML document.
type Tokener struct {
	*jvalue.Tokener
}

// NewTokener constructs a Tokener that reads from src.
func NewTokener(src string) *Tokener { return &Tokener{Tokener: jvalue.NewTokener(src)} }

func (t *Tokener) skipSpace() rune {
	c := t.Next()
	for isSpace(c) {
		c = t.Next()
	}
	return c
}

// NextContent reads the text up to the next '<', translating entities. It
// returns an End token at the end of the input, the symbol '<' if the next
// significant character is '<', and otherwise the text with surrounding
// whitespace removed. The '<' ending a text is not consumed.
func (t *Tokener) NextContent() (Token, error) {
	c := t.skipSpace()
	switch c {
	case 0:
		return Token{}, nil
	case '<':
		return sym(c), nil
	}
	var sb strings.Builder
	for c != '<' && c != 0 {
		if c == '&' {
			e, err := t.NextEntity()
			if err != nil {
				return Token{}, err
			}
			sb.WriteString(e)
		} else {
			sb.WriteRune(c)
		}
		c = t.Next()
	}
	t.Back()
	return text(strings.TrimSpace(sb.String())), nil
}

// NextEntity reads an entity reference whose '&' has already been consumed,
// through the closing ';', and returns its replacement text. The names amp,
// apos, gt, lt, and quot and numeric references (&#NN; or &#xHH;) are
// translated; any other entity is returned unchanged.
func (t *Tokener) NextEntity() (string, error) {
	var sb strings.Builder
	for {
		c := t.Next()
		if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '#' {
			sb.WriteRune(unicode.ToLower(c))
		} else if c == ';' {
			break
		} else {
			return "", t.SyntaxError(fmt.Sprintf("missing ';' in XML entity: &%s", sb.String()))
		}
	}
	name := sb.String()
	if s, ok := entities[name]; ok {
		return s, nil
	} else if r, ok := charRef(name); ok {
		return string(r), nil
	}
	return "&" + name + ";", nil
}

// charRef decodes the name of a numeric character reference, without the
// '&' and ';' delimiters.
func charRef(name string) (rune, bool) {
	num, ok := strings.CutPrefix(name, "#")
	if !ok || num == "" {
		return 0, false
	}
	base := 10
	if hex, ok := strings.CutPrefix(num, "x"); ok {
		num, base = hex, 16
	}
	v, err := strconv.ParseUint(num, base, 32)
	if err != nil || v > unicode.MaxRune {
		return 0, false
	}
	return rune(v), true
}

// NextMeta reads the next token inside a <! ... > declaration. Quoted strings
// and names are returned as Text, with no entity translation; markup
// characters are returned as symbols. Reaching the end of the input is an
// error.
func (t *Tokener) NextMeta() (Token, error) {
	c := t.skipSpace()
	switch {
	case c == 0:
		return Token{}, t.SyntaxError("misshaped meta tag")
	case isSymbol(c):
		return sym(c), nil
	case c == '"' || c == '\'':
		q := c
		var sb strings.Builder
		for {
			c = t.Next()
			if c == 0 {
				return Token{}, t.SyntaxError("unterminated string")
			} else if c == q {
				return text(sb.String()), nil
			}
			sb.WriteRune(c)
		}
	}
	var sb strings.Builder
	for {
		sb.WriteRune(c)
		c = t.Next()
		if isSpace(c) {
			return text(sb.String()), nil
		} else if c == 0 || isSymbol(c) || c == '"' || c == '\'' {
			t.Back()
			return text(sb.String()), nil
		}
	}
}

// NextToken reads the next token inside a tag. Quoted strings have their
// entities translated. A name ends at whitespace or at one of the characters
// > / = ! ? [ ], which is not consumed. It is an error to reach the end of the
// input, to find '<' outside a string, or to find '<' or a quote inside a
// name.
func (t *Tokener) NextToken() (Token, error) {
	c := t.skipSpace()
	switch {
	case c == 0:
		return Token{}, t.SyntaxError("misshaped element")
	case c == '<':
		return Token{}, t.SyntaxError("misplaced '<'")
	case isSymbol(c):
		return sym(c), nil
	case c == '"' || c == '\'':
		q := c
		var sb strings.Builder
		for {
			c = t.Next()
			if c == 0 {
				return Token{}, t.SyntaxError("unterminated string")
			} else if c == q {
				return text(sb.String()), nil
			} else if c == '&' {
				e, err := t.NextEntity()
				if err != nil {
					return Token{}, err
				}
				sb.WriteString(e)
			} else {
				sb.WriteRune(c)
			}
		}
	}
	var sb strings.Builder
	for {
		sb.WriteRune(c)
		c = t.Next()
		switch {
		case isSpace(c) || c == 0:
			return text(sb.String()), nil
		case isNameEnd(c):
			t.Back()
			return text(sb.String()), nil
		case c == '<' || c == '"' || c == '\'':
			return Token{}, t.SyntaxError("bad character in a name")
		}
	}
}

// NextCDATA reads the contents of a CDATA section whose opening "<![CDATA["
// has already been consumed, through the closing "]]>". The delimiter is not
// included in the result.
func (t *Tokener) NextCDATA() (string, error) {
	var sb strings.Builder
	for {
		c := t.Next()
		if c == 0 {
			return "", t.SyntaxError("unclosed CDATA")
		}
		sb.WriteRune(c)
		if s := sb.String(); strings.HasSuffix(s, "]]>") {
			return s[:len(s)-3], nil
		}
	}
}
