// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ctrans

import (
	"strings"
)

// A Parser recognizes a value of type T at the front of a span.
//
// TryParse has three possible outcomes:
//
//   - A match: ok is true, err is nil, and rest is the remainder of in
//     following the consumed text.
//   - A clean non-match: ok is false, err is nil, and rest == in. The caller
//     may try another alternative on the same input.
//   - A hard error: err is non-nil. The input began the construct but was
//     malformed; the caller must propagate the error rather than try other
//     alternatives.
//
// Desc returns a human-readable name for the construct, used to build
// "expected X" messages.
type Parser[T any] interface {
	TryParse(in Span) (rest Span, v T, ok bool, err error)
	Desc() string
}

type rule[T any] struct {
	desc string
	f    func(Span) (Span, T, bool, error)
}

func (r rule[T]) TryParse(in Span) (Span, T, bool, error) { return r.f(in) }
func (r rule[T]) Desc() string                            { return r.desc }

// Rule adapts f to a Parser described by desc.
func Rule[T any](desc string, f func(Span) (Span, T, bool, error)) Parser[T] { return rule[T]{desc: desc, f: f} }

// Parse applies p to in and requires a match. A clean non-match is reported
// as an error anchored at the first byte of in following any whitespace and
// comments.
func Parse[T any](p Parser[T], in Span) (Span, T, error) {
	rest, v, ok, err := p.TryParse(in)
	if err != nil {
		return in, v, err
	} else if !ok {
		at := in
		if next, err := SkipSpace(in); err == nil {
			at = next
		}
		return in, v, Errorf(at.Head(), "%s", expected(at, p.Desc()))
	}
	return rest, v, nil
}

func expected(in Span, desc string) string {
	if in.IsEmpty() {
		return "expected " + desc + ", got end of input"
	}
	return "expected " + desc
}

// OneOf returns a parser that tries each of ps in order and reports the first
// match. A hard error from any alternative ends the search.
func OneOf[T any](ps ...Parser[T]) Parser[T] {
	descs := make([]string, len(ps))
	for i, p := range ps {
		descs[i] = p.Desc()
	}
	return Rule(descLabel(descs), func(in Span) (Span, T, bool, error) {
		for _, p := range ps {
			rest, v, ok, err := p.TryParse(in)
			if err != nil || ok {
				return rest, v, ok, err
			}
		}
		var zero T
		return in, zero, false, nil
	})
}

// Map returns a parser that transforms the matches of p with f.
func Map[T, U any](p Parser[T], f func(T) U) Parser[U] {
	return Rule(p.Desc(), func(in Span) (Span, U, bool, error) {
		rest, v, ok, err := p.TryParse(in)
		if err != nil || !ok {
			var zero U
			return in, zero, false, err
		}
		return rest, f(v), true, nil
	})
}

// Lexeme returns a parser that skips insignificant input (see SkipSpace)
// before applying p. If p does not match, the original input is returned.
func Lexeme[T any](p Parser[T]) Parser[T] {
	return Rule(p.Desc(), func(in Span) (Span, T, bool, error) {
		var zero T
		next, err := SkipSpace(in)
		if err != nil {
			return in, zero, false, err
		}
		rest, v, ok, err := p.TryParse(next)
		if err != nil || !ok {
			return in, zero, false, err
		}
		return rest, v, true, nil
	})
}

// descLabel makes a human-readable summary string for the given descriptions.
func descLabel(descs []string) string {
	switch len(descs) {
	case 0:
		return "nothing"
	case 1:
		return descs[0]
	}
	last := len(descs) - 1
	return strings.Join(descs[:last], ", ") + " or " + descs[last]
}
