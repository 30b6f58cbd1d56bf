// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package diag renders parse errors for display, with an excerpt of the
// source text marking the location of the error:
//
//	error: expected hexadecimal digit
//	  --> defs.h:3:15
//	  |
//	3 | #define MASK 0xZZ
//	  |                ^
package diag

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/creachadair/ctrans"
	"github.com/fatih/color"
)

// Options control the rendering of diagnostics.
type Options struct {
	// Color enables terminal colors in the output.
	Color bool

	// Label is the severity label, "error" if empty.
	Label string
}

func (o Options) label() string {
	if o.Label == "" {
		return "error"
	}
	return o.Label
}

type palette struct {
	label, margin, focus func(...any) string
}

func (o Options) palette() palette {
	mk := func(attrs ...color.Attribute) func(...any) string {
		c := color.New(attrs...)
		if o.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return palette{
		label:  mk(color.FgRed, color.Bold),
		margin: mk(color.FgBlue),
		focus:  mk(color.FgRed, color.Bold),
	}
}

// Render writes a description of err to w. If err is or wraps a
// *ctrans.ParseError whose span refers to a source, the description includes
// the source line with the span marked; otherwise only the error text is
// written.
func Render(w io.Writer, err error, opts Options) error {
	_, werr := io.WriteString(w, Format(err, opts))
	return werr
}

// Format returns the description of err that Render would write.
func Format(err error, opts Options) string {
	p := opts.palette()
	pe, ok := ctrans.AsParseError(err)
	if !ok || pe.Span.Source() == nil {
		return p.label(opts.label()+":") + " " + err.Error() + "\n"
	}

	src := pe.Span.Source()
	loc := pe.Span.Location()
	num := strconv.Itoa(loc.First.Line)
	pad := strings.Repeat(" ", len(num))

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", p.label(opts.label()+":"), pe.Message)
	fmt.Fprintf(&sb, "%s%s %s:%s\n", pad, p.margin(" -->"), src.Name(), loc.First)
	fmt.Fprintf(&sb, "%s %s\n", pad, p.margin("|"))

	line := src.Line(loc.First.Line).StringCopy()
	fmt.Fprintf(&sb, "%s %s %s\n", p.margin(num), p.margin("|"), line)
	fmt.Fprintf(&sb, "%s %s %s\n", pad, p.margin("|"), p.focus(marker(line, loc)))
	return sb.String()
}

// marker returns a line of carets under the portion of line covered by loc.
// Tabs in the prefix are preserved so that the carets align with the text.
func marker(line string, loc ctrans.Location) string {
	col := min(loc.First.Column, len(line))
	end := len(line)
	if loc.Last.Line == loc.First.Line {
		end = min(loc.Last.Column, len(line))
	}
	var sb strings.Builder
	for _, c := range []byte(line[:col]) {
		if c == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
	}
	sb.WriteString(strings.Repeat("^", max(1, end-col)))
	return sb.String()
}
