// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jvalue

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/creachadair/mds/mapset"
	"go4.org/mem"
)

// A Tokener reads characters and lexical tokens from a source string. It
// supports a single character of pushback via Back.
//
// Offsets are byte offsets into the source. A Tokener is not safe for
// concurrent use by multiple goroutines.
type Tokener struct {
	src  mem.RO
	pos  int  // current read offset, 0 ≤ pos ≤ src.Len()
	last int  // size in bytes of the last-read rune, 0 if none
	pct  bool // decode a leading "%" before parsing an object
}

// NewTokener constructs a Tokener that reads from src.
func NewTokener(src string) *Tokener { return &Tokener{src: mem.S(src)} }

// AllowPercentEncoding configures whether ParseObject decodes percent
// escapes. If enabled and the first character read by ParseObject is "%",
// the remainder of the source is passed through Unescape before parsing
// continues. This is disabled by default.
func (t *Tokener) AllowPercentEncoding(ok bool) { t.pct = ok }

// Offset returns the current read offset of t.
func (t *Tokener) Offset() int { return t.pos }

// More reports whether any unread input remains.
func (t *Tokener) More() bool { return t.pos < t.src.Len() }

// Next returns the next character of the input and advances past it.
// At the end of the input, Next returns 0.
func (t *Tokener) Next() rune {
	if !t.More() {
		t.last = 0
		return 0
	}
	r, n := mem.DecodeRune(t.src.SliceFrom(t.pos))
	t.pos += n
	t.last = n
	return r
}

// Back moves the read offset back by one character, so that the character
// most recently returned by Next is read again. Only one level of pushback is
// supported: a second Back without an intervening Next has no effect, as does
// Back at the end of the input.
func (t *Tokener) Back() {
	t.pos -= t.last
	t.last = 0
}

// NextExpect reads the next character and reports an error if it is not c.
func (t *Tokener) NextExpect(c rune) (rune, error) {
	if r := t.Next(); r != c {
		return r, t.SyntaxError(fmt.Sprintf("expected %q and instead saw %q", c, r))
	}
	return c, nil
}

// NextN reads the next n characters and returns them as a string. If fewer
// than n characters remain, NextN reports an error and does not advance.
func (t *Tokener) NextN(n int) (string, error) {
	start := t.pos
	for range n {
		if !t.More() {
			t.pos, t.last = start, 0
			return "", t.SyntaxError(fmt.Sprintf("substring bounds error: want %d characters", n))
		}
		t.Next()
	}
	return t.src.Slice(start, t.pos).StringCopy(), nil
}

// NextClean skips whitespace and comments and returns the next significant
// character, or 0 at the end of the input. Any character at or below U+0020
// counts as whitespace. Comments are either // to the end of the line, or
// /* ... */; an unterminated block comment is an error.
func (t *Tokener) NextClean() (rune, error) {
	for {
		c := t.Next()
		if c == '/' {
			switch t.Next() {
			case '/':
				for c = t.Next(); c != 0 && c != '\n' && c != '\r'; c = t.Next() {
				}
			case '*':
				if err := t.skipBlockComment(); err != nil {
					return 0, err
				}
			default:
				t.Back()
				t.last = 1 // so that Back re-reads the '/'
				return '/', nil
			}
		} else if c == 0 || c > ' ' {
			return c, nil
		}
	}
}

func (t *Tokener) skipBlockComment() error {
	for {
		switch t.Next() {
		case 0:
			return t.SyntaxError("unclosed comment")
		case '*':
			if t.Next() == '/' {
				return nil
			}
			t.Back()
		}
	}
}

// NextString reads a quoted string whose opening quote has already been
// consumed, up to and including the closing quote. The escapes \b, \t, \n,
// \f, \r, \uXXXX, and \xXX are decoded; any other escaped character stands
// for itself. A UTF-16 surrogate pair written as two \u escapes is decoded to
// a single character. Bytes that are not valid UTF-8 are copied unchanged.
// Reaching a newline, carriage return, or the end of the
// input before the closing quote is an error.
func (t *Tokener) NextString(quote rune) (string, error) {
	var sb strings.Builder
	for {
		c := t.Next()
		switch c {
		case 0, '\n', '\r':
			return "", t.SyntaxError("unterminated string")
		case quote:
			return sb.String(), nil
		case '\\':
			c = t.Next()
			switch c {
			case 0:
				return "", t.SyntaxError("unterminated string")
			case 'b':
				sb.WriteByte('\b')
			case 't':
				sb.WriteByte('\t')
			case 'n':
				sb.WriteByte('\n')
			case 'f':
				sb.WriteByte('\f')
			case 'r':
				sb.WriteByte('\r')
			case 'u':
				r, err := t.nextHex(4)
				if err != nil {
					return "", err
				}
				if utf16.IsSurrogate(r) {
					r = t.lowSurrogate(r)
				}
				sb.WriteRune(r)
			case 'x':
				r, err := t.nextHex(2)
				if err != nil {
					return "", err
				}
				sb.WriteRune(r)
			default:
				sb.WriteRune(c)
			}
		default:
			if c == utf8.RuneError && t.last == 1 {
				sb.WriteByte(t.src.At(t.pos - 1)) // invalid UTF-8 is kept as-is
			} else {
				sb.WriteRune(c)
			}
		}
	}
}

// nextHex reads n hexadecimal digits and returns their value.
func (t *Tokener) nextHex(n int) (rune, error) {
	s, err := t.NextN(n)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, t.SyntaxError(fmt.Sprintf("illegal escape %q", s))
	}
	return rune(v), nil
}

// lowSurrogate attempts to complete the surrogate pair begun by hi with a
// following \uXXXX escape. If that fails, the input is not consumed and the
// replacement character is returned.
func (t *Tokener) lowSurrogate(hi rune) rune {
	start := t.pos
	if t.Next() == '\\' && t.Next() == 'u' {
		if lo, err := t.nextHex(4); err == nil {
			if r := utf16.DecodeRune(hi, lo); r != unicode.ReplacementChar {
				return r
			}
		}
	}
	t.pos, t.last = start, 0
	return unicode.ReplacementChar
}

// NextTo reads characters up to but not including the first character in
// delims, a newline, a carriage return, or the end of the input. The
// delimiter, if any, is not consumed. The result is trimmed of leading and
// trailing whitespace.
func (t *Tokener) NextTo(delims string) string {
	var sb strings.Builder
	for {
		c := t.Next()
		if c == 0 || c == '\n' || c == '\r' || strings.ContainsRune(delims, c) {
			t.Back()
			return strings.TrimSpace(sb.String())
		}
		sb.WriteRune(c)
	}
}

// SkipTo advances to the next occurrence of c and returns c; the following
// call to Next will return c. If c does not occur in the rest of the input,
// the read offset is not changed and SkipTo returns 0.
func (t *Tokener) SkipTo(c rune) rune {
	start := t.pos
	for {
		r := t.Next()
		if r == 0 {
			t.pos, t.last = start, 0
			return 0
		} else if r == c {
			t.Back()
			return c
		}
	}
}

// SkipPast advances past the end of the first occurrence of s and reports
// whether s was found. If not, the read offset is moved to the end of the
// input.
func (t *Tokener) SkipPast(s string) bool {
	t.last = 0
	i := mem.Index(t.src.SliceFrom(t.pos), mem.S(s))
	if i < 0 {
		t.pos = t.src.Len()
		return false
	}
	t.pos += i + len(s)
	return true
}

// Unescape replaces the unread portion of the input with the result of
// passing it through the package Unescape function.
func (t *Tokener) Unescape() {
	head := t.src.SliceTo(t.pos).StringCopy()
	tail := Unescape(t.src.SliceFrom(t.pos).StringCopy())
	t.src = mem.S(head + tail)
	t.last = 0
}

// SyntaxError returns a *SyntaxError with the given message at the current
// read offset of t.
func (t *Tokener) SyntaxError(msg string) *SyntaxError {
	return &SyntaxError{Offset: t.pos, Message: msg, src: t.src.StringCopy()}
}

// String describes the state of t, for debugging.
func (t *Tokener) String() string {
	return fmt.Sprintf("at offset %d of %q", t.pos, t.src.StringCopy())
}

// valueStop is the set of characters that end an unquoted value token, in
// addition to whitespace and control characters.
var valueStop = mapset.New(':', ',', ']', '}', '/')

// NextValue reads the next value from the input. The value may be a quoted
// string (with either single or double quotes), an object, an array, or an
// unquoted token. Unquoted tokens are interpreted by StringToValue.
func (t *Tokener) NextValue() (Value, error) {
	c, err := t.NextClean()
	if err != nil {
		return nil, err
	}
	switch c {
	case '"', '\'':
		s, err := t.NextString(c)
		if err != nil {
			return nil, err
		}
		return String(s), nil
	case '{':
		t.Back()
		return t.parseObject()
	case '[':
		t.Back()
		return t.parseArray()
	}

	var sb strings.Builder
	for c > ' ' && !valueStop.Has(c) {
		sb.WriteRune(c)
		c = t.Next()
	}
	t.Back()

	s := strings.TrimSpace(sb.String())
	if s == "" {
		return nil, t.SyntaxError("missing value")
	}
	return StringToValue(s), nil
}

// StringToValue interprets an unquoted token. The words true, false, and null
// denote the corresponding constants. A token beginning with a digit, ".",
// "-", or "+" that parses as an integer is an Int, or else as a finite
// floating-point number is a Float. Anything else is a String.
func StringToValue(s string) Value {
	switch s {
	case "":
		return String(s)
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	case "null":
		return Null{}
	}
	if b := s[0]; (b >= '0' && b <= '9') || b == '.' || b == '-' || b == '+' {
		if z, err := strconv.ParseInt(s, 10, 64); err == nil {
			return Int(z)
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			return Float(f)
		}
	}
	return String(s)
}

// checkEnd reports an error if any input other than whitespace and comments
// remains.
func (t *Tokener) checkEnd() error {
	c, err := t.NextClean()
	if err != nil {
		return err
	} else if c != 0 {
		t.Back()
		e := t.SyntaxError(fmt.Sprintf("unexpected %q after value", c))
		e.err = ErrExtraInput
		return e
	}
	return nil
}
