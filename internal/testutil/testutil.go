// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package testutil defines support code for unit tests.
package testutil

import (
	"testing"

	"github.com/creachadair/ctrans"
)

// Input returns a span covering text in a new source named "test".
func Input(text string) ctrans.Span { return ctrans.NewSourceString("test", text).Span() }

// An Anchor summarizes a *ctrans.ParseError for comparison in tests: its
// message and the byte offsets of the span it is anchored to.
type Anchor struct {
	Message  string
	Pos, End int
}

// MustAnchor reports a fatal error unless err is a *ctrans.ParseError, and
// returns its summary.
func MustAnchor(t *testing.T, err error) Anchor {
	t.Helper()
	pe, ok := ctrans.AsParseError(err)
	if !ok {
		t.Fatalf("Got error %v (%T), want *ParseError", err, err)
	}
	return Anchor{Message: pe.Message, Pos: pe.Span.Pos, End: pe.Span.End}
}
