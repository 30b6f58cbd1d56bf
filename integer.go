// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ctrans

import (
	"math"
	"math/bits"
	"strconv"
	"strings"
)

// Kind is the classification of an integer literal: the narrowest C integer
// type that represents its value.
type Kind byte

// Constants defining the valid Kind values, narrowest first.
const (
	Int32  Kind = iota // negative, fits int32
	Uint31             // non-negative, fits int32
	Uint32             // non-negative, fits uint32 but not int32
	Int64              // negative, fits int64 but not int32
	Uint63             // non-negative, fits int64 but not uint32
	Uint64             // non-negative, fits uint64 but not int64
)

var kindStr = [...]string{
	Int32:  "int32",
	Uint31: "uint31",
	Uint32: "uint32",
	Int64:  "int64",
	Uint63: "uint63",
	Uint64: "uint64",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return "invalid kind"
	}
	return kindStr[k]
}

// Signed reports whether k is a negative kind.
func (k Kind) Signed() bool { return k == Int32 || k == Int64 }

// A Mask is a set of integer capabilities a grammar position accepts.
type Mask byte

// Constants defining the capability bits of a Mask.
const (
	AllowInt32  Mask = 1 << iota // int32 values
	AllowUint32                  // uint32 values
	AllowInt64                   // int64 values
	AllowUint64                  // uint64 values

	AllowAll = AllowInt32 | AllowUint32 | AllowInt64 | AllowUint64
)

var maskStr = [...]string{"int32", "uint32", "int64", "uint64"}

// Permits reports whether a literal of kind k may be produced under m.
func (m Mask) Permits(k Kind) bool {
	switch k {
	case Int32:
		return m&AllowInt32 != 0
	case Uint31:
		return m&(AllowInt32|AllowUint32) != 0
	case Uint32:
		return m&AllowUint32 != 0
	case Int64:
		return m&AllowInt64 != 0
	case Uint63:
		const both = AllowInt64 | AllowUint64
		return m&both == both
	case Uint64:
		return m&AllowUint64 != 0
	}
	return false
}

// String renders the capabilities of m as an alternation, "int32 or uint32".
func (m Mask) String() string {
	var names []string
	for i, name := range maskStr {
		if m&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "nothing"
	}
	return strings.Join(names, " or ")
}

// A Policy selects which kinds of integer literal a grammar position accepts.
// Policies are used as type parameters, so that the accepted set is fixed by
// the type of the value a grammar rule produces.
type Policy interface {
	Allow() Mask
}

// AnyInt is the Policy accepting every kind of integer literal.
type AnyInt struct{}

// Allow implements Policy.
func (AnyInt) Allow() Mask { return AllowAll }

// UnsignedInt is the Policy accepting only unsigned 32- and 64-bit values.
type UnsignedInt struct{}

// Allow implements Policy.
func (UnsignedInt) Allow() Mask { return AllowUint32 | AllowUint64 }

// IntegerLiteralT is an integer literal whose kind is permitted by the policy
// P. Values are produced by parsing, and are immutable.
type IntegerLiteralT[P Policy] struct {
	span Span
	kind Kind
	bits uint64 // the value; two's complement for the signed kinds
}

type (
	// IntegerLiteral is an integer literal of any kind.
	IntegerLiteral = IntegerLiteralT[AnyInt]

	// UintLiteral is an integer literal restricted to unsigned 32- and 64-bit
	// kinds.
	UintLiteral = IntegerLiteralT[UnsignedInt]
)

// MakeInt returns an IntegerLiteral with value v anchored at the given span,
// classified as if v had been parsed from its decimal text.
func MakeInt(at Span, v int64) IntegerLiteral {
	w := wide{lo: uint64(v)}
	if v < 0 {
		w = wide{lo: -uint64(v), neg: true}
	}
	k, _ := w.classify()
	return IntegerLiteral{span: at, kind: k, bits: w.bits()}
}

// MakeUint returns an IntegerLiteral with value v anchored at the given span,
// classified as if v had been parsed from its decimal text.
func MakeUint(at Span, v uint64) IntegerLiteral {
	w := wide{lo: v}
	k, _ := w.classify()
	return IntegerLiteral{span: at, kind: k, bits: v}
}

// WithSpan returns a copy of z anchored at the given span.
func (z IntegerLiteralT[P]) WithSpan(at Span) IntegerLiteralT[P] {
	z.span = at
	return z
}

// Span returns the location of the literal text, including any sign.
func (z IntegerLiteralT[P]) Span() Span { return z.span }

// Kind returns the classification of z.
func (z IntegerLiteralT[P]) Kind() Kind { return z.kind }

// IntoAll returns z as an unrestricted IntegerLiteral, with the same kind,
// value, and span.
func (z IntegerLiteralT[P]) IntoAll() IntegerLiteral {
	return IntegerLiteral{span: z.span, kind: z.kind, bits: z.bits}
}

// String renders the value of z in decimal.
func (z IntegerLiteralT[P]) String() string {
	if z.kind.Signed() {
		return strconv.FormatInt(int64(z.bits), 10)
	}
	return strconv.FormatUint(z.bits, 10)
}

func (z IntegerLiteralT[P]) isLiteral() {}

// I32 returns the value of z as an int32, or reports an error anchored at
// the literal if it is out of range.
func (z IntegerLiteralT[P]) I32() (int32, error) {
	switch z.kind {
	case Int32, Uint31:
		return int32(z.bits), nil
	}
	return 0, Errorf(z.span, "expected 32-bit signed int")
}

// U32 returns the value of z as a uint32, or reports an error anchored at the
// literal if it is out of range.
func (z IntegerLiteralT[P]) U32() (uint32, error) {
	switch z.kind {
	case Uint31, Uint32:
		return uint32(z.bits), nil
	}
	return 0, Errorf(z.span, "expected 32-bit unsigned int")
}

// I64 returns the value of z as an int64, or reports an error anchored at the
// literal if it is out of range.
func (z IntegerLiteralT[P]) I64() (int64, error) {
	if z.kind == Uint64 {
		return 0, Errorf(z.span, "expected 64-bit signed int")
	}
	return int64(z.bits), nil
}

// U64 returns the value of z as a uint64, or reports an error anchored at the
// literal if it is negative.
func (z IntegerLiteralT[P]) U64() (uint64, error) {
	if z.kind.Signed() {
		return 0, Errorf(z.span, "expected 64-bit unsigned int")
	}
	return z.bits, nil
}

// CheckedAdd1 returns the value of z plus one, classified afresh, and true;
// or false if the result would exceed the range of uint64. The result keeps
// the span of z. The classification may cross kind boundaries: -1 (Int32)
// becomes 0 (Uint31), and 1<<32-1 (Uint32) becomes 1<<32 (Uint63).
func (z IntegerLiteralT[P]) CheckedAdd1() (IntegerLiteral, bool) {
	var w wide
	if z.kind.Signed() {
		// The magnitude of a negative value is at least 1, so the sum is -(m-1).
		w = wide{lo: -z.bits}.sub1()
		w.neg = !w.isZero()
	} else {
		w = wide{lo: z.bits}.add1()
	}
	k, ok := w.classify()
	if !ok {
		return IntegerLiteral{}, false
	}
	return IntegerLiteral{span: z.span, kind: k, bits: w.bits()}, true
}

// TryParseInteger attempts to parse an integer literal at the front of in,
// permitting the kinds allowed by the policy P. It implements the Parser
// contract (see Parser).
//
// The literal may be decimal (123), octal (0173), or hexadecimal (0x7b),
// optionally preceded by a minus sign, which may be separated from the digits
// by whitespace and comments. Digits may be separated by single quotes
// (1'000). A hexadecimal literal may carry one "u" suffix, which does not
// affect its classification.
func TryParseInteger[P Policy](in Span) (Span, IntegerLiteralT[P], bool, error) {
	var zero IntegerLiteralT[P]
	fail := func(err error) (Span, IntegerLiteralT[P], bool, error) { return in, zero, false, err }

	cur := in
	var neg bool
	if rest, sign, ok, _ := minus.TryParse(in); ok {
		next, err := SkipSpace(rest)
		if err != nil {
			return fail(err)
		} else if next.IsEmpty() || !isDigit(next.At(0)) {
			return fail(Errorf(sign, "expected integer after `-`"))
		}
		neg, cur = true, next
	} else if cur.IsEmpty() {
		return in, zero, false, nil
	} else if c := cur.At(0); c == '\'' && cur.Len() > 1 && isDigit(cur.At(1)) {
		// A separator cannot begin the digits of a literal.
		return fail(Errorf(cur.Head(), "expected decimal digit"))
	} else if !isDigit(c) {
		return in, zero, false, nil
	}

	// Choose the base and the offset of the first digit.
	b, start := decimal, 0
	if cur.At(0) == '0' {
		switch {
		case cur.Len() > 1 && isDigit(cur.At(1)):
			b, start = octal, 1
		case cur.Len() > 1 && (cur.At(1) == 'x' || cur.At(1) == 'X'):
			b, start = hexadecimal, 2
		default:
			// A lone zero, possibly at the end of the input.
			return finishInteger[P](in, cur.SliceFrom(1), wide{})
		}
	}

	var acc wide
	var nd int      // number of digits consumed
	var suffix bool // a "u" suffix has been consumed
	var digit bool  // the previous byte was a digit
	end := start    // offset in cur following the last byte consumed
	for end < cur.Len() {
		c := cur.At(end)
		if c == '\'' {
			if !digit {
				return fail(Errorf(cur.Slice(end, end+1), "expected %s digit", b))
			} else if end+1 == cur.Len() {
				return fail(Errorf(cur.SliceFrom(end+1), "expected %s digit", b))
			} else if _, ok := b.digit(cur.At(end + 1)); !ok {
				return fail(Errorf(cur.Slice(end+1, end+2), "expected %s digit", b))
			}
			digit = false
			end++
			continue
		}
		if b == hexadecimal && c == 'u' && nd != 0 {
			if suffix {
				return fail(Errorf(cur.Slice(end, end+1), "double `u` suffix"))
			}
			suffix, digit = true, false
			end++
			continue
		}
		d, ok := b.digit(c)
		if !ok {
			if b == octal && isDigit(c) {
				return fail(Errorf(cur.Slice(end, end+1), "expected octal digit"))
			}
			break
		} else if suffix {
			return fail(Errorf(cur.Slice(end, end+1), "digit after suffix"))
		}
		acc, ok = acc.mulAdd(b.radix(), uint64(d))
		if !ok {
			return fail(Errorf(in.Through(cur.SliceFrom(end+1)), "%s literal overflow", b))
		}
		nd++
		digit = true
		end++
	}
	if nd == 0 {
		// Only possible for hexadecimal, where the prefix is not a digit.
		return fail(Errorf(cur.SliceFrom(end).Head(), "expected %s digit", b))
	}
	acc.neg = neg && !acc.isZero()
	return finishInteger[P](in, cur.SliceFrom(end), acc)
}

// finishInteger classifies the value v of the literal spanning from the start
// of in to the start of rest, and checks it against the policy P.
func finishInteger[P Policy](in, rest Span, v wide) (Span, IntegerLiteralT[P], bool, error) {
	var zero IntegerLiteralT[P]
	lit := in.Through(rest)
	k, ok := v.classify()
	if !ok {
		return in, zero, false, Errorf(lit, "integer literal out of range")
	}
	var p P
	if m := p.Allow(); !m.Permits(k) {
		return in, zero, false, Errorf(lit, "expected %s", m)
	}
	return rest, IntegerLiteralT[P]{span: lit, kind: k, bits: v.bits()}, true, nil
}

// IntegerRule returns a Parser for integer literals permitted by P.
func IntegerRule[P Policy]() Parser[IntegerLiteralT[P]] {
	var p P
	desc := "integer literal"
	if m := p.Allow(); m != AllowAll {
		desc += " (" + m.String() + ")"
	}
	return Rule(desc, TryParseInteger[P])
}

// base is the radix of an integer literal.
type base byte

const (
	decimal base = iota
	octal
	hexadecimal
)

func (b base) String() string {
	switch b {
	case octal:
		return "octal"
	case hexadecimal:
		return "hexadecimal"
	}
	return "decimal"
}

func (b base) radix() uint64 {
	switch b {
	case octal:
		return 8
	case hexadecimal:
		return 16
	}
	return 10
}

// digit reports the value of c as a digit in base b, if it is one.
func (b base) digit(c byte) (byte, bool) {
	var d byte
	switch {
	case '0' <= c && c <= '9':
		d = c - '0'
	case b == hexadecimal && 'a' <= c && c <= 'f':
		d = c - 'a' + 10
	case b == hexadecimal && 'A' <= c && c <= 'F':
		d = c - 'A' + 10
	default:
		return 0, false
	}
	return d, uint64(d) < b.radix()
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// wide is a signed 128-bit accumulator in sign-magnitude form. Its magnitude
// is kept below 1<<127 so that it always has a representable negation.
type wide struct {
	hi, lo uint64
	neg    bool
}

func (w wide) isZero() bool { return w.hi == 0 && w.lo == 0 }

// mulAdd returns w*m + d, or false if the magnitude would reach 1<<127.
func (w wide) mulAdd(m, d uint64) (wide, bool) {
	hh, hl := bits.Mul64(w.hi, m)
	lh, ll := bits.Mul64(w.lo, m)
	hi, c1 := bits.Add64(hl, lh, 0)
	lo, c2 := bits.Add64(ll, d, 0)
	hi, c3 := bits.Add64(hi, 0, c2)
	if hh != 0 || c1 != 0 || c3 != 0 || hi>>63 != 0 {
		return w, false
	}
	return wide{hi: hi, lo: lo, neg: w.neg}, true
}

// add1 and sub1 adjust the magnitude of w, ignoring its sign.
func (w wide) add1() wide {
	lo, c := bits.Add64(w.lo, 1, 0)
	return wide{hi: w.hi + c, lo: lo, neg: w.neg}
}

func (w wide) sub1() wide {
	lo, b := bits.Sub64(w.lo, 1, 0)
	return wide{hi: w.hi - b, lo: lo, neg: w.neg}
}

// classify returns the narrowest kind that represents w, or false if w does
// not fit in 64 bits.
func (w wide) classify() (Kind, bool) {
	if w.hi != 0 {
		return 0, false
	}
	if w.neg {
		switch {
		case w.lo <= -math.MinInt32:
			return Int32, true
		case w.lo <= 1<<63:
			return Int64, true
		}
		return 0, false
	}
	switch {
	case w.lo <= math.MaxInt32:
		return Uint31, true
	case w.lo <= math.MaxUint32:
		return Uint32, true
	case w.lo <= math.MaxInt64:
		return Uint63, true
	}
	return Uint64, true
}

// bits returns the 64-bit two's complement representation of w, which must
// fit in 64 bits.
func (w wide) bits() uint64 {
	if w.neg {
		return -w.lo
	}
	return w.lo
}
