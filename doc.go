// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package ctrans implements the lexical core of a translator for C header
// declarations: spans over source text, a backtracking parser contract, and
// parsers for integer and string literals with C-compatible typing.
//
// # Spans
//
// A Source holds the text of one input. A Span is a view of a range of a
// source, and is the unit of input for every parser. Spans are small values
// and copying one is the way to keep a position for backtracking:
//
//	src := ctrans.NewSourceString("defs.h", text)
//	in := src.Span()
//
// The Location method of a Span reports its line and column offsets, for
// use in diagnostics.
//
// # Parsers
//
// A Parser recognizes a value at the front of a span. Its TryParse method
// reports one of three outcomes: a match, with the remaining input; a clean
// non-match, meaning the construct does not start here and another
// alternative may be tried; or a hard error of concrete type *ParseError,
// meaning the construct started here but was malformed:
//
//	rest, lit, ok, err := ctrans.TryParseLiteral(in)
//	if err != nil {
//	   return err // malformed literal; do not try alternatives
//	} else if !ok {
//	   // not a literal; try something else on in
//	}
//
// Parsers compose with OneOf, Map, and Lexeme. Parse requires a match and
// reports "expected X" when there is none.
//
// # Integer literals
//
// Integer literals are written in decimal, octal (leading 0), or hexadecimal
// (leading 0x), with an optional minus sign and ' digit separators. Each
// literal is classified by the narrowest kind that holds its value:
//
//	Kind    | Values
//	------- | ------------------------
//	Uint31  | 0 ≤ v < 1<<31
//	Int32   | -1<<31 ≤ v < 0
//	Uint32  | 1<<31 ≤ v < 1<<32
//	Int64   | -1<<63 ≤ v < -1<<31
//	Uint63  | 1<<32 ≤ v < 1<<63
//	Uint64  | 1<<63 ≤ v < 1<<64
//
// The type parameter of IntegerLiteralT is a Policy that restricts which
// kinds a grammar position accepts; a literal of any other kind is an error.
// IntegerLiteral accepts all kinds, and UintLiteral only unsigned values.
//
// # String literals
//
// String literals are double-quoted, and may not contain escape sequences.
package ctrans
