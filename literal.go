// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ctrans

// A Literal is either an IntegerLiteral or a StringLiteral.
type Literal interface {
	// Span returns the location of the literal's value.
	Span() Span

	isLiteral()
}

var (
	_ Literal = IntegerLiteral{}
	_ Literal = StringLiteral{}
)

// TryParseLiteral attempts to parse an integer or string literal at the
// front of in. It implements the Parser contract (see Parser). Integers are
// parsed with the AnyInt policy.
func TryParseLiteral(in Span) (Span, Literal, bool, error) {
	if rest, s, ok, err := TryParseString(in); err != nil {
		return in, nil, false, err
	} else if ok {
		return rest, s, true, nil
	}
	if rest, z, ok, err := TryParseInteger[AnyInt](in); err != nil {
		return in, nil, false, err
	} else if ok {
		return rest, z, true, nil
	}
	return in, nil, false, nil
}

// LiteralRule is a Parser for integer and string literals.
var LiteralRule = Rule("literal", TryParseLiteral)
