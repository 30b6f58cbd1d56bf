// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package decl defines the declarations a translator reads from C header
// text, and a parser that extracts them.
//
// The parser understands only the constructs whose values are literals:
// object-like macros, enumerations, and packing pragmas. Everything else is
// passed through as an Opaque declaration or an uninterpreted Directive.
// No preprocessing is done, but the contents of an extern "C" block are
// parsed as top-level declarations.
package decl

import "github.com/creachadair/ctrans"

// A Decl is a top-level declaration.
type Decl interface{ Span() ctrans.Span }

// A File is the sequence of declarations parsed from one source.
type File struct {
	Source *ctrans.Source
	Decls  []Decl
}

// A Define is an object-like or function-like macro definition.
type Define struct {
	span ctrans.Span

	Name     string
	Function bool           // a function-like macro, NAME(...)
	Value    ctrans.Literal // the value, or nil if the body is not one literal
	Body     ctrans.Span    // the replacement text
}

// Span satisfies the Decl interface.
func (d *Define) Span() ctrans.Span { return d.span }

// A Directive is a preprocessor directive other than #define and
// #pragma pack. Its body is not interpreted.
type Directive struct {
	span ctrans.Span

	Name string
	Body ctrans.Span
}

// Span satisfies the Decl interface.
func (d *Directive) Span() ctrans.Span { return d.span }

// PackOp is the operation of a packing pragma.
type PackOp byte

// Constants defining the valid PackOp values.
const (
	PackSet   PackOp = iota // pack(N)
	PackReset               // pack()
	PackPush                // pack(push) or pack(push, N)
	PackPop                 // pack(pop)
)

var packOpStr = [...]string{PackSet: "set", PackReset: "reset", PackPush: "push", PackPop: "pop"}

func (p PackOp) String() string {
	if int(p) >= len(packOpStr) {
		return "invalid pack op"
	}
	return packOpStr[p]
}

// A Pack is a #pragma pack directive.
type Pack struct {
	span ctrans.Span

	Op    PackOp
	Align uint32 // 0 if no alignment was given
}

// Span satisfies the Decl interface.
func (p *Pack) Span() ctrans.Span { return p.span }

// An Enum is an enumeration definition, possibly named by a typedef.
type Enum struct {
	span ctrans.Span

	Tag         string // the enum tag, or ""
	Typedef     string // the typedef name, or ""
	Enumerators []*Enumerator
}

// Span satisfies the Decl interface.
func (e *Enum) Span() ctrans.Span { return e.span }

// Find returns the enumerator of e with the given name, or nil.
func (e *Enum) Find(name string) *Enumerator {
	for _, v := range e.Enumerators {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// An Enumerator is a single named constant of an Enum.
type Enumerator struct {
	span ctrans.Span

	Name     string
	Value    ctrans.IntegerLiteral
	Implicit bool // the value was not written, and follows the previous one
}

// Span satisfies the Decl interface.
func (e *Enumerator) Span() ctrans.Span { return e.span }

// An Opaque is a declaration the parser does not interpret, such as a
// function prototype or a struct definition.
type Opaque struct {
	span ctrans.Span

	// Preprocessor directives that occur inside the declaration, as in a
	// struct body with conditional members.
	Directives []Decl
}

// Span satisfies the Decl interface.
func (o *Opaque) Span() ctrans.Span { return o.span }

// A Linkage is the opening or closing brace of a linkage specification,
// extern "C" { ... }.
type Linkage struct {
	span ctrans.Span

	Lang string // the language named by the specification, e.g., "C"
	End  bool   // this is the closing brace
}

// Span satisfies the Decl interface.
func (k *Linkage) Span() ctrans.Span { return k.span }

// A Constant is a named literal value defined by a File.
type Constant struct {
	Name  string
	Value ctrans.Literal
	From  Decl // the *Define or *Enumerator that defines the constant
}

// Constants returns the named constants defined by f, in order of
// definition. Macros whose bodies are not a single literal are omitted.
// Macros defined inside an Opaque declaration are included.
func (f *File) Constants() []Constant { return appendConstants(nil, f.Decls) }

func appendConstants(out []Constant, decls []Decl) []Constant {
	for _, d := range decls {
		switch t := d.(type) {
		case *Define:
			if t.Value != nil {
				out = append(out, Constant{Name: t.Name, Value: t.Value, From: t})
			}
		case *Enum:
			for _, e := range t.Enumerators {
				out = append(out, Constant{Name: e.Name, Value: e.Value, From: e})
			}
		case *Opaque:
			out = appendConstants(out, t.Directives)
		}
	}
	return out
}
