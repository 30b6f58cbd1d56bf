// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ctrans

// Op returns a parser that matches the operator or punctuation text exactly,
// for example "-" or "::". The matched value is the span of the operator.
func Op(text string) Parser[Span] {
	if text == "" {
		panic("ctrans: empty operator")
	}
	return Rule("`"+text+"`", func(in Span) (Span, Span, bool, error) {
		if !in.HasPrefix(text) {
			return in, Span{}, false, nil
		}
		op, rest := in.SplitAt(len(text))
		return rest, op, true, nil
	})
}

// Keyword returns a parser that matches word when it is not immediately
// followed by another identifier byte, so that "enum" does not match the
// front of "enumerate".
func Keyword(word string) Parser[Span] {
	return Rule("`"+word+"`", func(in Span) (Span, Span, bool, error) {
		n := len(word)
		if !in.HasPrefix(word) || (in.Len() > n && isIdentByte(in.At(n))) {
			return in, Span{}, false, nil
		}
		kw, rest := in.SplitAt(n)
		return rest, kw, true, nil
	})
}

// Ident matches a C identifier: a letter or underscore followed by any number
// of letters, digits, and underscores.
var Ident = Rule("identifier", func(in Span) (Span, Span, bool, error) {
	if in.IsEmpty() || !isIdentStart(in.At(0)) {
		return in, Span{}, false, nil
	}
	i := 1
	for i < in.Len() && isIdentByte(in.At(i)) {
		i++
	}
	id, rest := in.SplitAt(i)
	return rest, id, true, nil
})

// minus matches the unary sign of an integer literal.
var minus = Op("-")

func isIdentStart(b byte) bool { return b == '_' || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') }
func isIdentByte(b byte) bool  { return isIdentStart(b) || isDigit(b) }
