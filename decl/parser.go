// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package decl

import (
	"github.com/creachadair/ctrans"
	"github.com/creachadair/mds/mapset"
)

// Parse parses the declarations of src. In case of error, any complete
// declarations already parsed are returned along with the error, which has
// concrete type *ctrans.ParseError.
func Parse(src *ctrans.Source) (*File, error) {
	p := &parser{seen: mapset.New[string]()}
	rule := ctrans.OneOf(
		ctrans.Rule("directive", p.directive),
		ctrans.Rule("linkage", p.linkage),
		ctrans.Rule("enum", p.enum),
		ctrans.Rule("declaration", p.opaque),
	)

	f := &File{Source: src}
	in := src.Span()
	for {
		next, err := ctrans.SkipSpace(in)
		if err != nil {
			return f, err
		} else if next.IsEmpty() {
			if n := len(p.open); n > 0 {
				return f, ctrans.Errorf(p.open[n-1].span, "unclosed linkage block")
			}
			return f, nil
		}
		rest, d, err := ctrans.Parse(rule, next)
		if err != nil {
			return f, err
		}
		f.Decls = append(f.Decls, d)
		in = rest
	}
}

var (
	hash      = ctrans.Op("#")
	lparen    = ctrans.Lexeme(ctrans.Op("("))
	rparen    = ctrans.Lexeme(ctrans.Op(")"))
	lbrace    = ctrans.Lexeme(ctrans.Op("{"))
	rbrace    = ctrans.Lexeme(ctrans.Op("}"))
	comma     = ctrans.Lexeme(ctrans.Op(","))
	equals    = ctrans.Lexeme(ctrans.Op("="))
	semi      = ctrans.Lexeme(ctrans.Op(";"))
	ident     = ctrans.Lexeme(ctrans.Ident)
	kwEnum    = ctrans.Lexeme(ctrans.Keyword("enum"))
	kwTypedef = ctrans.Keyword("typedef")
	kwExtern  = ctrans.Keyword("extern")
	langName  = ctrans.Lexeme(ctrans.StringRule)
	kwPack    = ctrans.Keyword("pack")
	kwPush    = ctrans.Lexeme(ctrans.Keyword("push"))
	kwPop     = ctrans.Lexeme(ctrans.Keyword("pop"))

	// Enumerator values may be any integer; alignments must be unsigned.
	enumValue = ctrans.Lexeme(ctrans.IntegerRule[ctrans.AnyInt]())
	packAlign = ctrans.Lexeme(ctrans.IntegerRule[ctrans.UnsignedInt]())

	endEnumerator = ctrans.OneOf(comma, rbrace)
)

type parser struct {
	seen mapset.Set[string] // enumerator names defined so far
	open []*Linkage         // linkage blocks not yet closed
}

// directive parses a preprocessor line beginning with "#".
func (p *parser) directive(in ctrans.Span) (ctrans.Span, Decl, bool, error) {
	rest, _, ok, _ := hash.TryParse(in)
	if !ok {
		return in, nil, false, nil
	}
	line, after := splitLine(rest)
	span := in.Through(after)
	line = ctrans.SkipHSpace(line)
	if line.IsEmpty() {
		return after, &Directive{span: span, Body: line}, true, nil // null directive
	}
	body, name, err := ctrans.Parse(ctrans.Ident, line)
	if err != nil {
		return in, nil, false, err
	}
	body = ctrans.SkipHSpace(body)

	switch name.String() {
	case "define":
		d, err := p.define(span, body)
		if err != nil {
			return in, nil, false, err
		}
		return after, d, true, nil

	case "pragma":
		pk, ok, err := p.pragma(span, body)
		if err != nil {
			return in, nil, false, err
		} else if ok {
			return after, pk, true, nil
		}
	}
	return after, &Directive{span: span, Name: name.String(), Body: body}, true, nil
}

// define parses the body of a #define directive.
func (p *parser) define(span, body ctrans.Span) (*Define, error) {
	rest, name, err := ctrans.Parse(ctrans.Ident, body)
	if err != nil {
		return nil, err
	}
	d := &Define{span: span, Name: name.String()}
	if !rest.IsEmpty() && rest.At(0) == '(' {
		d.Function = true
		d.Body = rest
		return d, nil
	}
	d.Body, err = ctrans.SkipSpace(rest)
	if err != nil {
		return nil, err
	}

	// The macro has a value only if its whole body is one literal.
	vrest, v, ok, err := ctrans.TryParseLiteral(d.Body)
	if err != nil {
		return nil, err
	} else if ok {
		tail, err := ctrans.SkipSpace(vrest)
		if err != nil {
			return nil, err
		} else if tail.IsEmpty() {
			d.Value = v
		}
	}
	return d, nil
}

// pragma parses the body of a #pragma directive. It reports false without
// error for pragmas other than pack.
func (p *parser) pragma(span, body ctrans.Span) (*Pack, bool, error) {
	rest, _, ok, _ := kwPack.TryParse(body)
	if !ok {
		return nil, false, nil
	}
	rest, _, err := ctrans.Parse(lparen, rest)
	if err != nil {
		return nil, false, err
	}

	pk := &Pack{span: span}
	if r, _, ok, _ := kwPush.TryParse(rest); ok {
		pk.Op, rest = PackPush, r
		if r, _, ok, _ := comma.TryParse(rest); ok {
			rest, pk.Align, err = parseAlign(r)
		}
	} else if r, _, ok, _ := kwPop.TryParse(rest); ok {
		pk.Op, rest = PackPop, r
	} else if _, _, ok, _ := rparen.TryParse(rest); ok {
		pk.Op = PackReset
		return pk, true, nil
	} else {
		pk.Op = PackSet
		rest, pk.Align, err = parseAlign(rest)
	}
	if err != nil {
		return nil, false, err
	}
	if _, _, err := ctrans.Parse(rparen, rest); err != nil {
		return nil, false, err
	}
	return pk, true, nil
}

// parseAlign parses a packing alignment, which must be a power of two.
func parseAlign(in ctrans.Span) (ctrans.Span, uint32, error) {
	rest, z, err := ctrans.Parse(packAlign, in)
	if err != nil {
		return in, 0, err
	}
	v, err := z.U32()
	if err != nil {
		return in, 0, err
	} else if v == 0 || v&(v-1) != 0 {
		return in, 0, ctrans.Errorf(z.Span(), "alignment %d is not a power of two", v)
	}
	return rest, v, nil
}

// linkage parses the opening `extern "lang" {` of a linkage specification,
// or its closing brace if one is open. The declarations between them are
// parsed by the caller.
func (p *parser) linkage(in ctrans.Span) (ctrans.Span, Decl, bool, error) {
	if n := len(p.open); n > 0 {
		if rest, _, ok, _ := rbrace.TryParse(in); ok {
			k := &Linkage{span: in.Through(rest), Lang: p.open[n-1].Lang, End: true}
			p.open = p.open[:n-1]
			return rest, k, true, nil
		}
	}
	rest, _, ok, _ := kwExtern.TryParse(in)
	if !ok {
		return in, nil, false, nil
	}
	rest, lang, ok, err := langName.TryParse(rest)
	if err != nil || !ok {
		return in, nil, false, err
	}
	rest, _, ok, err = lbrace.TryParse(rest)
	if err != nil || !ok {
		return in, nil, false, err // e.g., extern "C" int f(void);
	}
	k := &Linkage{span: in.Through(rest), Lang: lang.String()}
	p.open = append(p.open, k)
	return rest, k, true, nil
}

// enum parses an enumeration definition, optionally preceded by "typedef".
// A declaration that names an enum type without defining it is a non-match.
func (p *parser) enum(in ctrans.Span) (ctrans.Span, Decl, bool, error) {
	e := new(Enum)
	rest := in
	typedef := false
	if r, _, ok, _ := kwTypedef.TryParse(rest); ok {
		typedef, rest = true, r
	}
	rest, _, ok, err := kwEnum.TryParse(rest)
	if err != nil || !ok {
		return in, nil, false, err
	}
	if r, tag, ok, err := ident.TryParse(rest); err != nil {
		return in, nil, false, err
	} else if ok {
		e.Tag, rest = tag.String(), r
	}
	rest, _, ok, err = lbrace.TryParse(rest)
	if err != nil || !ok {
		return in, nil, false, err
	}

	var prev *Enumerator
	for {
		r, _, ok, err := rbrace.TryParse(rest)
		if err != nil {
			return in, nil, false, err
		} else if ok {
			rest = r
			break
		}
		v, r, err := p.enumerator(rest, prev)
		if err != nil {
			return in, nil, false, err
		}
		e.Enumerators = append(e.Enumerators, v)
		prev = v

		r, sep, err := ctrans.Parse(endEnumerator, r)
		if err != nil {
			return in, nil, false, err
		}
		rest = r
		if sep.String() == "}" {
			break
		}
	}

	// Check for a typedef name or a declarator, then the end of the declaration.
	if typedef {
		r, name, err := ctrans.Parse(ident, rest)
		if err != nil {
			return in, nil, false, err
		}
		e.Typedef, rest = name.String(), r
	} else if r, _, ok, err := ident.TryParse(rest); err != nil {
		return in, nil, false, err
	} else if ok {
		rest = r
	}
	rest, _, err = ctrans.Parse(semi, rest)
	if err != nil {
		return in, nil, false, err
	}
	e.span = in.Through(rest)
	return rest, e, true, nil
}

// enumerator parses a single enumerator, whose value follows prev if it is
// not given explicitly. The first enumerator of an enum has prev == nil.
func (p *parser) enumerator(in ctrans.Span, prev *Enumerator) (*Enumerator, ctrans.Span, error) {
	rest, name, err := ctrans.Parse(ident, in)
	if err != nil {
		return nil, in, err
	}
	v := &Enumerator{Name: name.String()}
	if p.seen.Has(v.Name) {
		return nil, in, ctrans.Errorf(name, "duplicate enumerator %q", v.Name)
	}
	p.seen.Add(v.Name)

	if r, _, ok, err := equals.TryParse(rest); err != nil {
		return nil, in, err
	} else if ok {
		r, z, err := ctrans.Parse(enumValue, r)
		if err != nil {
			return nil, in, err
		}
		v.Value, rest = z, r
	} else if prev == nil {
		v.Value, v.Implicit = ctrans.MakeInt(name, 0), true
	} else {
		next, ok := prev.Value.CheckedAdd1()
		if !ok {
			return nil, in, ctrans.Errorf(name, "enumerator value out of range")
		}
		v.Value, v.Implicit = next.WithSpan(name), true
	}
	v.span = name.Merge(v.Value.Span())
	return v, rest, nil
}

// opaque consumes a declaration the parser does not interpret: everything up
// to a semicolon outside any brackets, or a closing brace that returns to the
// top level and either ends a function body or is not followed by a
// declarator. Directives that begin a line inside the declaration are parsed
// and recorded in the result.
func (p *parser) opaque(in ctrans.Span) (ctrans.Span, Decl, bool, error) {
	o := new(Opaque)
	var depth int
	var last byte  // the last significant byte
	var fbody bool // the outermost brace opens a function body
	var bol bool   // only space precedes offset i on its line
	for i := 0; i < in.Len(); i++ {
		c := in.At(i)
		if isSpace(c) {
			bol = bol || c == '\n'
			continue
		} else if c == '/' && i+1 < in.Len() && (in.At(i+1) == '/' || in.At(i+1) == '*') {
			end, err := commentEnd(in, i)
			if err != nil {
				return in, nil, false, err
			}
			i = end - 1
			continue
		} else if c == '#' && bol {
			rest, d, _, err := p.directive(in.SliceFrom(i))
			if err != nil {
				return in, nil, false, err
			}
			o.Directives = append(o.Directives, d)
			i = rest.Pos - in.Pos - 1
			continue
		}
		bol = false

		switch c {
		case '"', '\'':
			end, err := skipQuoted(in, i)
			if err != nil {
				return in, nil, false, err
			}
			i = end - 1

		case '{', '(', '[':
			if c == '{' && depth == 0 {
				fbody = last == ')'
			}
			depth++

		case '}', ')', ']':
			depth--
			if depth < 0 {
				return in, nil, false, ctrans.Errorf(in.Slice(i, i+1), "unexpected %q", c)
			} else if c == '}' && depth == 0 {
				next, err := ctrans.SkipSpace(in.SliceFrom(i + 1))
				if err != nil {
					return in, nil, false, err
				}
				if fbody || !continuesDecl(next) {
					rest := in.SliceFrom(i + 1)
					o.span = in.Through(rest)
					return rest, o, true, nil
				}
			}

		case ';':
			if depth == 0 {
				rest := in.SliceFrom(i + 1)
				o.span = in.Through(rest)
				return rest, o, true, nil
			}
		}
		last = c
	}
	return in, nil, false, ctrans.Errorf(in.Head(), "unterminated declaration")
}

// commentEnd returns the offset in in just past the comment beginning at
// offset i. A line comment ends before its newline.
func commentEnd(in ctrans.Span, i int) (int, error) {
	if in.At(i+1) == '/' {
		for j := i + 2; j < in.Len(); j++ {
			if in.At(j) == '\n' {
				return j, nil
			}
		}
		return in.Len(), nil
	}
	if end := blockEnd(in, i); end >= 0 {
		return end, nil
	}
	return 0, ctrans.Errorf(in.Slice(i, i+2), "unterminated block comment")
}

// blockEnd returns the offset in in just past the block comment beginning at
// offset i, or -1 if the comment is not closed.
func blockEnd(in ctrans.Span, i int) int {
	for j := i + 2; j+1 < in.Len(); j++ {
		if in.At(j) == '*' && in.At(j+1) == '/' {
			return j + 2
		}
	}
	return -1
}

// continuesDecl reports whether in, following a closing brace, continues the
// same declaration, as in "struct s { ... } *p;".
func continuesDecl(in ctrans.Span) bool {
	if in.IsEmpty() {
		return false
	}
	switch in.At(0) {
	case ';', '*', '[', '(', ',':
		return true
	}
	_, _, ok, _ := ctrans.Ident.TryParse(in)
	return ok
}

// skipQuoted returns the offset in in just past the quoted string or
// character constant beginning at offset i. Escapes are skipped without
// interpretation.
func skipQuoted(in ctrans.Span, i int) (int, error) {
	q := in.At(i)
	for j := i + 1; j < in.Len(); j++ {
		switch in.At(j) {
		case '\\':
			j++
		case '\n':
			return 0, ctrans.Errorf(in.Slice(i, i+1), "unterminated %s", quoteLabel(q))
		case q:
			return j + 1, nil
		}
	}
	return 0, ctrans.Errorf(in.Slice(i, i+1), "unterminated %s", quoteLabel(q))
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f' }

func quoteLabel(q byte) string {
	if q == '"' {
		return "string literal"
	}
	return "character constant"
}

// splitLine splits in at the end of its first logical line. A backslash
// immediately before a newline continues the line, as does a newline inside a
// block comment. The line excludes the terminating newline; rest begins with
// it.
func splitLine(in ctrans.Span) (line, rest ctrans.Span) {
	for i := 0; i < in.Len(); i++ {
		switch in.At(i) {
		case '"', '\'':
			i = lineQuoteEnd(in, i) - 1

		case '/':
			if tail := in.SliceFrom(i); tail.HasPrefix("//") {
				for i+1 < in.Len() && in.At(i+1) != '\n' {
					i++
				}
			} else if tail.HasPrefix("/*") {
				if end := blockEnd(in, i); end >= 0 {
					i = end - 1
				}
			}

		case '\n':
			j := i
			if j > 0 && in.At(j-1) == '\r' {
				j--
			}
			if j > 0 && in.At(j-1) == '\\' {
				continue
			}
			return in.SplitAt(j)
		}
	}
	return in, in.SliceFrom(in.Len())
}

// lineQuoteEnd returns the offset in in just past the quoted text beginning
// at offset i, or the offset of the newline that ends an unterminated quote.
func lineQuoteEnd(in ctrans.Span, i int) int {
	q := in.At(i)
	for j := i + 1; j < in.Len(); j++ {
		switch in.At(j) {
		case '\\':
			j++
		case '\n':
			return j
		case q:
			return j + 1
		}
	}
	return in.Len()
}
