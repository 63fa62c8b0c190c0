// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"go4.org/mem"
)

// Unescape decodes form-style escapes in src: "+" becomes a space and "%hh"
// becomes the byte with hexadecimal value hh. A "%" not followed by two hex
// digits is copied unchanged, as are all other bytes.
func Unescape(src mem.RO) []byte {
	dec := make([]byte, 0, src.Len())
	for i := 0; i < src.Len(); i++ {
		b := src.At(i)
		switch {
		case b == '+':
			b = ' '
		case b == '%' && i+2 < src.Len():
			hi, lo := unhex(src.At(i+1)), unhex(src.At(i+2))
			if hi >= 0 && lo >= 0 {
				b = byte(hi<<4 | lo)
				i += 2
			}
		}
		dec = append(dec, b)
	}
	return dec
}

// Escape encodes the bytes of src that are not safe in a cookie name or
// value: control characters, "+", "%", "=", and ";" become "%hh". Leading and
// trailing spaces are removed first.
func Escape(src mem.RO) []byte {
	src = mem.TrimSpace(src)
	enc := make([]byte, 0, src.Len())
	for i := 0; i < src.Len(); i++ {
		b := src.At(i)
		if b < ' ' || b == '+' || b == '%' || b == '=' || b == ';' {
			enc = append(enc, '%', hexDigit[b>>4], hexDigit[b&15])
		} else {
			enc = append(enc, b)
		}
	}
	return enc
}

// unhex returns the value of the hexadecimal digit b, or -1.
func unhex(b byte) int {
	switch {
	case '0' <= b && b <= '9':
		return int(b - '0')
	case 'a' <= b && b <= 'f':
		return int(b-'a') + 10
	case 'A' <= b && b <= 'F':
		return int(b-'A') + 10
	}
	return -1
}
