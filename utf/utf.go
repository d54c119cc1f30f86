// Package utf decodes, encodes and transcodes UTF-8, UTF-16 and UTF-32
// text held in slices of code units.
//
// Unlike [unicode/utf8] and [unicode/utf16], which assume well-formed input
// or silently substitute, every operation here takes a [Policy] that
// decides what happens to malformed input:
//
//   - [Ignore] trusts the input and never reports anything.
//   - [Replace] substitutes U+FFFD (in the destination's own encoding)
//     for every maximal ill-formed subsequence.
//   - [Strict] stops at the first malformed unit with an [*EncodingError].
//
// The code unit width is a type parameter. Slices of uint8 hold UTF-8,
// uint16 hold UTF-16 and uint32 hold UTF-32:
//
//	wide, err := utf.Recode[uint8, uint16]([]byte("hello"), utf.Strict)
//	back, err := utf.Recode[uint16, uint8](wide, utf.Strict)
//
// Iterators and writers borrow the slice they are built on. The slice must
// not be modified while an iterator over it is in use.
package utf

// Unit is the set of code unit types: uint8 (UTF-8), uint16 (UTF-16) and
// uint32 (UTF-32).
type Unit interface {
	uint8 | uint16 | uint32
}

// Unicode limits and special values.
const (
	MaxRune     rune = 0x10FFFF // largest scalar value
	Replacement rune = 0xFFFD   // REPLACEMENT CHARACTER

	// Invalid is returned by decoders for malformed input.
	// It never satisfies IsScalar.
	Invalid rune = -1
)

const (
	surrogateMin = 0xD800
	highMax      = 0xDBFF
	lowMin       = 0xDC00
	surrogateMax = 0xDFFF
)

// IsScalar reports whether r is a Unicode scalar value: a code point in
// [0, 0x10FFFF] outside the surrogate range.
func IsScalar(r rune) bool {
	return r >= 0 && r <= MaxRune && (r < surrogateMin || r > surrogateMax)
}

// IsSurrogate reports whether u is a UTF-16 surrogate unit.
func IsSurrogate(u uint32) bool {
	return u >= surrogateMin && u <= surrogateMax
}

// IsHighSurrogate reports whether u is a leading (high) surrogate.
func IsHighSurrogate(u uint32) bool {
	return u >= surrogateMin && u <= highMax
}

// IsLowSurrogate reports whether u is a trailing (low) surrogate.
func IsLowSurrogate(u uint32) bool {
	return u >= lowMin && u <= surrogateMax
}

// IsNoncharacter reports whether r is one of the 66 permanently reserved
// noncharacters: U+FDD0..U+FDEF and the last two code points of every
// plane.
func IsNoncharacter(r rune) bool {
	if r < 0 || r > MaxRune {
		return false
	}
	return (r >= 0xFDD0 && r <= 0xFDEF) || r&0xFFFE == 0xFFFE
}

// Policy selects how malformed input is handled.
type Policy int

const (
	// Replace substitutes the replacement character for malformed input.
	Replace Policy = iota
	// Ignore trusts the input; malformed input produces unspecified
	// (but memory-safe) output.
	Ignore
	// Strict fails with an *EncodingError on malformed input.
	Strict
)

func (p Policy) String() string {
	switch p {
	case Ignore:
		return "ignore"
	case Replace:
		return "replace"
	case Strict:
		return "strict"
	}
	return "Policy(?)"
}

// sizeOf returns the width of U in bytes.
func sizeOf[U Unit]() int {
	switch any(U(0)).(type) {
	case uint8:
		return 1
	case uint16:
		return 2
	}
	return 4
}
