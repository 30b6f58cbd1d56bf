// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package escape handles scanning and quoting of string literal text.
package escape

import "go4.org/mem"

// Terminator returns the offset in src of the first byte that ends the body
// of a C string literal, either a double quotation mark or a backslash, and
// that byte. If neither occurs, Terminator returns -1 and 0.
func Terminator(src mem.RO) (int, byte) {
	for i := 0; i < src.Len(); i++ {
		if c := src.At(i); c == '"' || c == '\\' {
			return i, c
		}
	}
	return -1, 0
}

// HasNUL reports whether src contains a NUL byte.
func HasNUL(src mem.RO) bool { return mem.IndexByte(src, 0) >= 0 }
