// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ctrans

import (
	"github.com/creachadair/ctrans/internal/escape"

	"go4.org/mem"
)

// A StringLiteral is a double-quoted string literal. Escape sequences are
// not supported, so the value of the literal is exactly its quoted text.
type StringLiteral struct {
	span  Span   // the text between the quotes
	value []byte // a private copy of the text
}

// Span returns the location of the content of the literal, excluding the
// quotation marks.
func (s StringLiteral) Span() Span { return s.span }

// Bytes returns a copy of the value of the literal.
func (s StringLiteral) Bytes() []byte { return append([]byte(nil), s.value...) }

// String returns the value of the literal.
func (s StringLiteral) String() string { return string(s.value) }

// CString returns a copy of the value of the literal with a terminating NUL.
func (s StringLiteral) CString() []byte {
	return append(append(make([]byte, 0, len(s.value)+1), s.value...), 0)
}

// Quoted returns the value of the literal quoted as a JSON string.
func (s StringLiteral) Quoted() string { return string(escape.Quote(mem.B(s.value))) }

func (StringLiteral) isLiteral() {}

// TryParseString attempts to parse a string literal at the front of in. It
// implements the Parser contract (see Parser). Input that does not begin with
// a double quotation mark is a clean non-match.
func TryParseString(in Span) (Span, StringLiteral, bool, error) {
	if in.IsEmpty() || in.At(0) != '"' {
		return in, StringLiteral{}, false, nil
	}
	body := in.SliceFrom(1)
	i, term := escape.Terminator(body.Text())
	switch term {
	case 0:
		return in, StringLiteral{}, false, Errorf(in.Head(), "unterminated string literal")
	case '\\':
		return in, StringLiteral{}, false, Errorf(body.Slice(i, i+1), "escapes aren't supported")
	}
	content, rest := body.SplitAt(i)
	if escape.HasNUL(content.Text()) {
		panic("ctrans: string literal contains NUL")
	}
	lit := StringLiteral{span: content, value: mem.Append(nil, content.Text())}
	return rest.SliceFrom(1), lit, true, nil
}

// StringRule is a Parser for string literals.
var StringRule = Rule("string literal", TryParseString)
