// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

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

// Quote encodes src as a double-quoted string using JSON escapes, so that it
// can be included in a JSON document. Invalid UTF-8 is replaced by the
// Unicode replacement rune.
func Quote(src mem.RO) []byte {
	buf := make([]byte, 0, src.Len()+2)
	putByte := func(bs ...byte) { buf = append(buf, bs...) }

	putByte('"')
	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		if n == 0 {
			n = 1
		}
		switch {
		case r < ' ':
			if b := controlEsc[r]; b != 0 {
				putByte('\\', b)
			} else {
				putByte('\\', 'u', '0', '0', hexDigit[int(r>>4)], hexDigit[int(r&15)])
			}
		case r == '\\' || r == '"':
			putByte('\\', byte(r))
		case r < utf8.RuneSelf:
			putByte(byte(r))
		case r == '\u2028' || r == '\u2029': // line and paragraph separators
			buf = append(buf, `\u202`...)
			putByte(hexDigit[r&15])
		default:
			buf = utf8.AppendRune(buf, r)
		}
		src = src.SliceFrom(n)
	}
	putByte('"')
	return buf
}
