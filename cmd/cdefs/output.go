// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/creachadair/ctrans"
	"github.com/creachadair/ctrans/decl"
	"github.com/creachadair/ctrans/internal/escape"

	"go4.org/mem"
)

// describe returns the kind and value of lit as display strings. String
// values are quoted.
func describe(lit ctrans.Literal) (kind, value string) {
	switch t := lit.(type) {
	case ctrans.IntegerLiteral:
		return t.Kind().String(), t.String()
	case ctrans.StringLiteral:
		return "string", t.Quoted()
	default:
		panic(fmt.Sprintf("unexpected literal %T", lit))
	}
}

// selectConstants returns the constants of f selected by cfg.
func selectConstants(f *decl.File, cfg *config) []decl.Constant {
	var out []decl.Constant
	for _, c := range f.Constants() {
		switch c.From.(type) {
		case *decl.Define:
			if !cfg.Defines {
				continue
			}
		case *decl.Enumerator:
			if !cfg.Enums {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

// writeConstants writes a listing of cs, defined in the named file, to w in
// the given format.
func writeConstants(w io.Writer, name string, cs []decl.Constant, format string) error {
	var buf bytes.Buffer
	for _, c := range cs {
		kind, value := describe(c.Value)
		line := c.From.Span().Location().First.Line
		switch format {
		case "json":
			buf.WriteString(`{"file":`)
			buf.Write(escape.Quote(mem.S(name)))
			buf.WriteString(`,"line":`)
			buf.WriteString(strconv.Itoa(line))
			buf.WriteString(`,"name":`)
			buf.Write(escape.Quote(mem.S(c.Name)))
			buf.WriteString(`,"kind":`)
			buf.Write(escape.Quote(mem.S(kind)))
			buf.WriteString(`,"value":`)
			buf.WriteString(value) // a JSON number or quoted string
			buf.WriteString("}\n")
		default:
			fmt.Fprintf(&buf, "%s:%d\t%s\t%s\t%s\n", name, line, c.Name, kind, value)
		}
	}
	_, err := w.Write(buf.Bytes())
	return err
}
