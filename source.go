// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ctrans

import (
	"fmt"
	"slices"

	"go4.org/mem"
)

// A Source is an immutable input buffer. All the spans derived from a source
// share its contents; none of them copy the text.
type Source struct {
	name  string
	text  mem.RO
	lines []int // offsets of the first byte of each line
}

// NewSource constructs a Source named name over text. The caller must not
// modify text after it has been passed to NewSource.
func NewSource(name string, text []byte) *Source { return newSource(name, mem.B(text)) }

// NewSourceString constructs a Source named name over text.
func NewSourceString(name, text string) *Source { return newSource(name, mem.S(text)) }

func newSource(name string, text mem.RO) *Source {
	lines := []int{0}
	for i := 0; i < text.Len(); i++ {
		if text.At(i) == '\n' {
			lines = append(lines, i+1)
		}
	}
	return &Source{name: name, text: text, lines: lines}
}

// Name reports the name of the source, as given to the constructor.
func (s *Source) Name() string { return s.name }

// Len reports the length of the source text in bytes.
func (s *Source) Len() int { return s.text.Len() }

// Span returns a span covering the complete source text.
func (s *Source) Span() Span { return Span{src: s, Pos: 0, End: s.text.Len()} }

// LineCol returns the line and column of the given byte offset.
func (s *Source) LineCol(offset int) LineCol {
	i, ok := slices.BinarySearch(s.lines, offset)
	if !ok {
		i-- // offset is inside line i-1
	}
	return LineCol{Line: i + 1, Column: offset - s.lines[i]}
}

// Line returns the text of the given 1-based line number, without its
// trailing newline. It returns an empty view if line is out of range.
func (s *Source) Line(line int) mem.RO {
	if line < 1 || line > len(s.lines) {
		return mem.RO{}
	}
	start, end := s.lines[line-1], s.text.Len()
	if line < len(s.lines) {
		end = s.lines[line] - 1
	}
	if end > start && s.text.At(end-1) == '\r' {
		end--
	}
	return s.text.Slice(start, end)
}

// A Span describes a contiguous span of a source input. A zero Span is empty
// and has no source.
//
// Spans are values: copying a span is cheap, and narrowing one does not
// affect any other span over the same source.
type Span struct {
	src *Source

	Pos int // the start offset, 0-based
	End int // the end offset, 0-based (noninclusive)
}

func (s *Source) span(pos, end int) Span {
	if pos < 0 || end < pos || end > s.text.Len() {
		panic(fmt.Sprintf("ctrans: invalid span [%d:%d] of %d bytes", pos, end, s.text.Len()))
	}
	return Span{src: s, Pos: pos, End: end}
}

// Source returns the source s refers to, or nil for a zero Span.
func (s Span) Source() *Source { return s.src }

// Len reports the length of s in bytes.
func (s Span) Len() int { return s.End - s.Pos }

// IsEmpty reports whether s is empty.
func (s Span) IsEmpty() bool { return s.End == s.Pos }

// At returns the byte at offset i of s. It panics if i is out of range.
func (s Span) At(i int) byte {
	if i < 0 || i >= s.Len() {
		panic(fmt.Sprintf("ctrans: index %d out of range for span of length %d", i, s.Len()))
	}
	return s.src.text.At(s.Pos + i)
}

// Text returns a read-only view of the text of s. The view shares storage
// with the source.
func (s Span) Text() mem.RO {
	if s.src == nil {
		return mem.RO{}
	}
	return s.src.text.Slice(s.Pos, s.End)
}

// String returns a copy of the text of s.
func (s Span) String() string { return s.Text().StringCopy() }

// HasPrefix reports whether the text of s begins with prefix.
func (s Span) HasPrefix(prefix string) bool { return mem.HasPrefix(s.Text(), mem.S(prefix)) }

// Slice returns the subspan of s from offset i to offset j.
func (s Span) Slice(i, j int) Span {
	if i < 0 || j < i || j > s.Len() {
		panic(fmt.Sprintf("ctrans: invalid slice [%d:%d] of span of length %d", i, j, s.Len()))
	}
	return Span{src: s.src, Pos: s.Pos + i, End: s.Pos + j}
}

// SliceFrom returns the subspan of s starting at offset i.
func (s Span) SliceFrom(i int) Span { return s.Slice(i, s.Len()) }

// SliceTo returns the subspan of s ending at offset i.
func (s Span) SliceTo(i int) Span { return s.Slice(0, i) }

// SplitAt splits s at offset i, returning the portions before and after i.
func (s Span) SplitAt(i int) (head, tail Span) { return s.SliceTo(i), s.SliceFrom(i) }

// Head returns the first byte of s, or the empty span at its end if s is
// empty. It is the usual anchor for errors about what comes next.
func (s Span) Head() Span { return s.SliceTo(min(1, s.Len())) }

// Through returns the span from the start of s to the end of rest, which
// must be a suffix of s. It is used to recover what a parser consumed.
func (s Span) Through(rest Span) Span {
	return Span{src: s.src, Pos: s.Pos, End: rest.Pos}
}

// Merge returns the smallest span covering both s and t. It panics if s and t
// refer to different sources.
func (s Span) Merge(t Span) Span {
	if s.src != t.src {
		panic("ctrans: merge of spans from different sources")
	}
	return Span{src: s.src, Pos: min(s.Pos, t.Pos), End: max(s.End, t.End)}
}

// Location returns the complete location of s.
func (s Span) Location() Location {
	if s.src == nil {
		return Location{Pos: s.Pos, End: s.End}
	}
	return Location{
		Name:  s.src.name,
		Pos:   s.Pos,
		End:   s.End,
		First: s.src.LineCol(s.Pos),
		Last:  s.src.LineCol(s.End),
	}
}

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 0-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// A Location describes the complete location of a range of source text,
// including line and column offsets.
type Location struct {
	Name     string // the name of the source, if known
	Pos, End int    // byte offsets, as in Span

	First, Last LineCol
}

func (loc Location) String() string {
	var pfx string
	if loc.Name != "" {
		pfx = loc.Name + ":"
	}
	switch {
	case loc.First.Line == 0:
		return fmt.Sprintf("%s%d-%d", pfx, loc.Pos, loc.End)
	case loc.First == loc.Last:
		return pfx + loc.First.String()
	case loc.First.Line == loc.Last.Line:
		return fmt.Sprintf("%s%s-%d", pfx, loc.First, loc.Last.Column)
	default:
		return fmt.Sprintf("%s%s-%s", pfx, loc.First, loc.Last)
	}
}
