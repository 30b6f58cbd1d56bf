// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ctrans_test

import (
	"testing"

	"github.com/creachadair/ctrans"
	"github.com/creachadair/mds/mtest"
	"github.com/google/go-cmp/cmp"
)

const sourceText = "#define A 1\r\nenum e {\n\tX = 2,\n};"

func TestSourceLines(t *testing.T) {
	src := ctrans.NewSourceString("defs.h", sourceText)
	if got := src.Name(); got != "defs.h" {
		t.Errorf("Name: got %q, want defs.h", got)
	}
	if got := src.Len(); got != len(sourceText) {
		t.Errorf("Len: got %d, want %d", got, len(sourceText))
	}

	lines := []string{"#define A 1", "enum e {", "\tX = 2,", "};"}
	for i, want := range lines {
		if got := src.Line(i + 1).StringCopy(); got != want {
			t.Errorf("Line(%d): got %q, want %q", i+1, got, want)
		}
	}
	for _, n := range []int{0, -1, len(lines) + 1} {
		if got := src.Line(n); got.Len() != 0 {
			t.Errorf("Line(%d): got %q, want empty", n, got.StringCopy())
		}
	}

	tests := []struct {
		offset int
		want   ctrans.LineCol
	}{
		{0, ctrans.LineCol{Line: 1, Column: 0}},
		{8, ctrans.LineCol{Line: 1, Column: 8}},
		{12, ctrans.LineCol{Line: 1, Column: 12}}, // the LF
		{13, ctrans.LineCol{Line: 2, Column: 0}},
		{23, ctrans.LineCol{Line: 3, Column: 1}},
		{len(sourceText), ctrans.LineCol{Line: 4, Column: 2}},
	}
	for _, test := range tests {
		if got := src.LineCol(test.offset); got != test.want {
			t.Errorf("LineCol(%d): got %v, want %v", test.offset, got, test.want)
		}
	}
}

func TestSpan(t *testing.T) {
	text := []byte("enum color { RED };")
	src := ctrans.NewSource("x.h", text)
	all := src.Span()

	if all.Source() != src || all.Pos != 0 || all.End != len(text) {
		t.Fatalf("Span: got %+v, want the whole source", all)
	}
	if got := all.String(); got != string(text) {
		t.Errorf("String: got %q, want %q", got, text)
	}

	kw, rest := all.SplitAt(4)
	if kw.String() != "enum" || rest.String() != " color { RED };" {
		t.Errorf("SplitAt: got %q, %q", kw, rest)
	}
	if got := all.Through(rest); got != kw {
		t.Errorf("Through: got %v, want %v", got, kw)
	}
	if !all.HasPrefix("enum ") || all.HasPrefix("enumx") || rest.HasPrefix("color") {
		t.Error("HasPrefix: wrong result")
	}
	if got := all.At(5); got != 'c' {
		t.Errorf("At(5): got %q, want 'c'", got)
	}

	name := all.Slice(5, 10)
	brace := all.Slice(11, 12)
	if got := name.Merge(brace).String(); got != "color {" {
		t.Errorf("Merge: got %q, want %q", got, "color {")
	}
	if got := brace.Merge(name).String(); got != "color {" {
		t.Errorf("Merge: got %q, want %q", got, "color {")
	}

	end := all.SliceFrom(all.Len())
	if !end.IsEmpty() || end.Head() != end {
		t.Errorf("Head of empty span: got %v, want %v", end.Head(), end)
	}
	if got := all.Head().String(); got != "e" {
		t.Errorf("Head: got %q, want e", got)
	}

	// Spans share the source text.
	if got := name.Text().StringCopy(); got != "color" {
		t.Errorf("Text: got %q, want color", got)
	}

	var zero ctrans.Span
	if zero.Source() != nil || !zero.IsEmpty() || zero.String() != "" {
		t.Errorf("Zero span: got %+v", zero)
	}
}

func TestSpanPanics(t *testing.T) {
	in := ctrans.NewSourceString("p", "abc").Span()
	other := ctrans.NewSourceString("q", "abc").Span()

	mtest.MustPanic(t, func() { in.At(3) })
	mtest.MustPanic(t, func() { in.At(-1) })
	mtest.MustPanic(t, func() { in.Slice(2, 1) })
	mtest.MustPanic(t, func() { in.SliceFrom(4) })
	mtest.MustPanic(t, func() { in.SliceTo(-1) })
	mtest.MustPanic(t, func() { in.Merge(other) })
}

func TestLocation(t *testing.T) {
	src := ctrans.NewSourceString("defs.h", sourceText)
	all := src.Span()

	tests := []struct {
		span ctrans.Span
		want string
	}{
		{all.Slice(8, 9), "defs.h:1:8-9"},
		{all.Slice(13, 17), "defs.h:2:0-4"},
		{all.Slice(20, 25), "defs.h:2:7-3:3"},
		{all.Slice(13, 13), "defs.h:2:0"},
		{all.SliceFrom(all.Len()), "defs.h:4:2"},
		{ctrans.NewSourceString("", "ab").Span(), "1:0-2"},
		{ctrans.Span{Pos: 3, End: 5}, "3-5"},
	}
	for _, test := range tests {
		if got := test.span.Location().String(); got != test.want {
			t.Errorf("Location %d..%d: got %q, want %q", test.span.Pos, test.span.End, got, test.want)
		}
	}

	got := all.Slice(20, 25).Location()
	want := ctrans.Location{
		Name:  "defs.h",
		Pos:   20,
		End:   25,
		First: ctrans.LineCol{Line: 2, Column: 7},
		Last:  ctrans.LineCol{Line: 3, Column: 3},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Location (-want, +got)\n%s", diff)
	}
}

func TestParseError(t *testing.T) {
	src := ctrans.NewSourceString("defs.h", sourceText)
	err := ctrans.Errorf(src.Span().Slice(13, 17), "expected %s", "identifier")
	if got, want := err.Error(), "at defs.h:2:0-4: expected identifier"; got != want {
		t.Errorf("Error: got %q, want %q", got, want)
	}
	pe, ok := ctrans.AsParseError(err)
	if !ok {
		t.Fatalf("AsParseError(%v): not a *ParseError", err)
	}
	if pe.Message != "expected identifier" || pe.Span.String() != "enum" {
		t.Errorf("ParseError: got %q at %q", pe.Message, pe.Span)
	}
}
