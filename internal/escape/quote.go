// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting of JSON strings and the percent encoding
// used by cookie and form values.
package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// Quote encodes a string to escape characters for inclusion in a JSON string.
// The enclosing quotation marks are not added.
//
// Backslash, double quote, and solidus are escaped with a backslash; control
// characters use their short forms where JSON has one and \u00XX otherwise.
// All other runes are copied verbatim.
func Quote(src mem.RO) []byte {
	buf := make([]byte, 0, src.Len())
	putByte := func(bs ...byte) { buf = append(buf, bs...) }

	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		if r < utf8.RuneSelf {
			if r < ' ' {
				if b := controlEsc[r]; b != 0 {
					putByte('\\', b)
				} else {
					putByte('\\', 'u', '0', '0', hexDigit[int(r>>4)], hexDigit[int(r&15)])
				}
			} else if r == '\\' || r == '"' || r == '/' {
				putByte('\\', byte(r))
			} else {
				putByte(byte(r))
			}
		} else if r == utf8.RuneError && n == 1 {
			// Pass invalid bytes through unchanged.
			putByte(src.At(0))
		} else {
			var rbuf [utf8.UTFMax]byte
			m := utf8.EncodeRune(rbuf[:], r)
			putByte(rbuf[:m]...)
		}
		src = src.SliceFrom(n)
	}
	return buf
}
