// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ctrans

import "go4.org/mem"

// SkipSpace returns the remainder of in after any leading whitespace and
// comments. Both C block comments (/* ... */) and line comments (// ...) are
// recognized. An unterminated block comment is reported as an error anchored
// at its opening "/*".
func SkipSpace(in Span) (Span, error) {
	for {
		i := 0
		for i < in.Len() && isSpace(in.At(i)) {
			i++
		}
		in = in.SliceFrom(i)

		switch {
		case in.HasPrefix("//"):
			// A line comment runs to, but does not include, the next LF.
			end := mem.IndexByte(in.Text(), '\n')
			if end < 0 {
				end = in.Len()
			}
			in = in.SliceFrom(end)

		case in.HasPrefix("/*"):
			end := mem.Index(in.Text().SliceFrom(2), mem.S("*/"))
			if end < 0 {
				return in, Errorf(in.SliceTo(2), "unterminated block comment")
			}
			in = in.SliceFrom(end + 4)

		default:
			return in, nil
		}
	}
}

// Space is a parser that always matches, consuming any leading whitespace
// and comments. The matched value is the span of the skipped text.
var Space = Rule("whitespace", func(in Span) (Span, Span, bool, error) {
	rest, err := SkipSpace(in)
	if err != nil {
		return in, Span{}, false, err
	}
	return rest, in.Through(rest), true, nil
})

// SkipHSpace returns the remainder of in after any leading horizontal
// whitespace (spaces and tabs). It does not skip comments or newlines, and
// is meant for line-oriented constructs such as preprocessor directives.
func SkipHSpace(in Span) Span {
	i := 0
	for i < in.Len() && (in.At(i) == ' ' || in.At(i) == '\t') {
		i++
	}
	return in.SliceFrom(i)
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\r' || b == '\n' || b == '\t' || b == '\v' || b == '\f'
}
