// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package diag_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/creachadair/ctrans"
	"github.com/creachadair/ctrans/decl"
	"github.com/creachadair/ctrans/diag"
	"github.com/google/go-cmp/cmp"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name, input string
		want        []string
	}{
		{"Literal", "#define A 1\n#define B 2\n#define MASK 0xZZ\n", []string{
			"error: expected hexadecimal digit",
			"  --> defs.h:3:15",
			"  |",
			"3 | #define MASK 0xZZ",
			"  |                ^",
		}},
		{"Tabs", "enum e {\n\tA = 5,\n\tA,\n};", []string{
			`error: duplicate enumerator "A"`,
			"  --> defs.h:3:1",
			"  |",
			"3 | \tA,",
			"  | \t^",
		}},
		{"Wide", "#pragma pack(push, 0x100000000)", []string{
			"error: expected uint32 or uint64",
			"  --> defs.h:1:19",
			"  |",
			"1 | #pragma pack(push, 0x100000000)",
			"  |                    ^^^^^^^^^^^",
		}},
		{"EndOfInput", "enum e { A }", []string{
			"error: expected `;`, got end of input",
			"  --> defs.h:1:12",
			"  |",
			"1 | enum e { A }",
			"  |             ^",
		}},
		{"Comment", "/* one\n two", []string{
			"error: unterminated block comment",
			"  --> defs.h:1:0",
			"  |",
			"1 | /* one",
			"  | ^^",
		}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := decl.Parse(ctrans.NewSourceString("defs.h", test.input))
			if err == nil {
				t.Fatal("Parse: got nil, want error")
			}
			got := strings.Split(strings.TrimSuffix(diag.Format(err, diag.Options{}), "\n"), "\n")
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Format (-want, +got)\n%s", diff)
			}
		})
	}
}

func TestFormat_margin(t *testing.T) {
	input := strings.Repeat("\n", 11) + "int x = 1);"
	_, err := decl.Parse(ctrans.NewSourceString("big.h", input))
	if err == nil {
		t.Fatal("Parse: got nil, want error")
	}
	got := strings.Split(strings.TrimSuffix(diag.Format(err, diag.Options{Label: "warning"}), "\n"), "\n")
	want := []string{
		"warning: unexpected ')'",
		"   --> big.h:12:9",
		"   |",
		"12 | int x = 1);",
		"   |          ^",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Format (-want, +got)\n%s", diff)
	}
}

func TestFormat_plain(t *testing.T) {
	got := diag.Format(errors.New("file not found"), diag.Options{})
	if want := "error: file not found\n"; got != want {
		t.Errorf("Format: got %q, want %q", got, want)
	}

	// A span without a source has no excerpt.
	err := ctrans.Errorf(ctrans.Span{Pos: 1, End: 2}, "bad")
	if got, want := diag.Format(err, diag.Options{}), "error: at 1-2: bad\n"; got != want {
		t.Errorf("Format: got %q, want %q", got, want)
	}
}

func TestRender(t *testing.T) {
	_, err := decl.Parse(ctrans.NewSourceString("x.h", "#pragma pack(3)"))
	if err == nil {
		t.Fatal("Parse: got nil, want error")
	}

	var plain, color strings.Builder
	if err := diag.Render(&plain, err, diag.Options{}); err != nil {
		t.Fatalf("Render: unexpected error: %v", err)
	}
	if err := diag.Render(&color, err, diag.Options{Color: true}); err != nil {
		t.Fatalf("Render: unexpected error: %v", err)
	}
	if strings.Contains(plain.String(), "\x1b[") {
		t.Errorf("Plain output contains escapes:\n%s", plain.String())
	}
	if !strings.Contains(color.String(), "\x1b[") {
		t.Errorf("Color output has no escapes:\n%s", color.String())
	}
	if !strings.Contains(plain.String(), "alignment 3 is not a power of two") {
		t.Errorf("Plain output lacks the message:\n%s", plain.String())
	}
}
