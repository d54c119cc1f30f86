package utf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsScalar(t *testing.T) {
	tests := []struct {
		r    rune
		want bool
	}{
		{0, true},
		{'a', true},
		{0xD7FF, true},
		{0xD800, false},
		{0xDBFF, false},
		{0xDC00, false},
		{0xDFFF, false},
		{0xE000, true},
		{0xFFFD, true},
		{0x10FFFF, true},
		{0x110000, false},
		{-1, false},
		{Invalid, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsScalar(tt.r), "IsScalar(%#x)", tt.r)
	}
}

func TestIsNoncharacter(t *testing.T) {
	assert.True(t, IsNoncharacter(0xFDD0))
	assert.True(t, IsNoncharacter(0xFDEF))
	assert.True(t, IsNoncharacter(0xFFFE))
	assert.True(t, IsNoncharacter(0x1FFFF))
	assert.True(t, IsNoncharacter(0x10FFFF))
	assert.False(t, IsNoncharacter(0xFDCF))
	assert.False(t, IsNoncharacter(0xFFFD))
	assert.False(t, IsNoncharacter(0x110000))
}

func TestSurrogatePredicates(t *testing.T) {
	assert.True(t, IsSurrogate(0xD800))
	assert.True(t, IsSurrogate(0xDFFF))
	assert.False(t, IsSurrogate(0xE000))
	assert.True(t, IsHighSurrogate(0xDBFF))
	assert.False(t, IsHighSurrogate(0xDC00))
	assert.True(t, IsLowSurrogate(0xDC00))
	assert.False(t, IsLowSurrogate(0xDBFF))
}

func TestUTF8Decode(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  rune
		units int
	}{
		{"ASCII", "A", 'A', 1},
		{"TwoByte", "\xC3\xA9", 'é', 2},
		{"ThreeByte", "\xE2\x82\xAC", '€', 3},
		{"FourByte", "\xF0\x9F\x98\x80", '😀', 4},
		{"LoneContinuation", "\x80", Invalid, 1},
		{"OverlongLead", "\xC0\x80", Invalid, 1},
		{"Truncated", "\xE2\x82", Invalid, 2},
		{"TruncatedThenASCII", "\xE2\x82A", Invalid, 2},
		{"EncodedSurrogate", "\xED\xA0\x80", Invalid, 1},
		{"AboveMax", "\xF4\x90\x80\x80", Invalid, 1},
		{"BadLead", "\xF5\x80", Invalid, 1},
		{"TruncatedFour", "\xF0\x9F\x98", Invalid, 3},
		{"Empty", "", Invalid, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, n := UTF8{}.Decode([]byte(tt.in))
			assert.Equal(t, tt.want, r)
			assert.Equal(t, tt.units, n)
		})
	}
}

func TestUTF8DecodeFast(t *testing.T) {
	r, n := UTF8{}.DecodeFast([]byte("\xE2\x82\xAC"))
	assert.Equal(t, '€', r)
	assert.Equal(t, 3, n)

	// Encoded surrogates pass through untouched.
	r, n = UTF8{}.DecodeFast([]byte("\xED\xA0\x80"))
	assert.Equal(t, rune(0xD800), r)
	assert.Equal(t, 3, n)

	// Never reads past the end.
	_, n = UTF8{}.DecodeFast([]byte("\xF0\x9F"))
	assert.Equal(t, 2, n)
}

func TestUTF8DecodePrev(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  rune
		units int
	}{
		{"ASCII", "ab", 'b', 1},
		{"FourByte", "a\xF0\x9F\x98\x80", '😀', 4},
		{"TruncatedTail", "a\xE2\x82", Invalid, 2},
		{"LoneContinuations", "\x80\x80\x80\x80\x80", Invalid, 1},
		{"AfterMalformed", "\xE2\x82A", 'A', 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, n := UTF8{}.DecodePrev([]byte(tt.in))
			assert.Equal(t, tt.want, r)
			assert.Equal(t, tt.units, n)
		})
	}
}

func TestUTF8Encode(t *testing.T) {
	var buf [4]byte
	for _, r := range []rune{'A', 'é', '€', '😀', 0x10FFFF} {
		n := UTF8{}.Encode(buf[:], r)
		assert.Equal(t, string(r), string(buf[:n]))
	}
	n := UTF8{}.Encode(buf[:], 0x110000)
	assert.Equal(t, "�", string(buf[:n]))
}

func TestUTF16(t *testing.T) {
	enc := UTF16{}

	r, n := enc.Decode([]uint16{0xD83D, 0xDE00})
	assert.Equal(t, '😀', r)
	assert.Equal(t, 2, n)

	r, n = enc.Decode([]uint16{0xD83D, 'x'})
	assert.False(t, IsScalar(r))
	assert.Equal(t, 1, n)

	r, n = enc.Decode([]uint16{0xDE00})
	assert.False(t, IsScalar(r))
	assert.Equal(t, 1, n)

	r, n = enc.DecodePrev([]uint16{'a', 0xD83D, 0xDE00})
	assert.Equal(t, '😀', r)
	assert.Equal(t, 2, n)

	r, n = enc.DecodePrev([]uint16{'a', 0xDE00})
	assert.Equal(t, rune(0xDE00), r)
	assert.Equal(t, 1, n)

	var buf [2]uint16
	n = enc.Encode(buf[:], '😀')
	assert.Equal(t, []uint16{0xD83D, 0xDE00}, buf[:n])
	n = enc.Encode(buf[:], 'é')
	assert.Equal(t, []uint16{0xE9}, buf[:n])
}

func TestUTF32(t *testing.T) {
	enc := UTF32{}
	r, n := enc.Decode([]uint32{0x1F600})
	assert.Equal(t, '😀', r)
	assert.Equal(t, 1, n)

	r, _ = enc.Decode([]uint32{0xD800})
	assert.False(t, IsScalar(r))

	r, _ = enc.Decode([]uint32{0xFFFFFFFF})
	assert.Equal(t, Invalid, r)

	r, n = enc.DecodePrev([]uint32{'a', 'b'})
	assert.Equal(t, 'b', r)
	assert.Equal(t, 1, n)
}

func TestEncodingOf(t *testing.T) {
	assert.Equal(t, "UTF-8", EncodingOf[uint8]().Name())
	assert.Equal(t, "UTF-16", EncodingOf[uint16]().Name())
	assert.Equal(t, "UTF-32", EncodingOf[uint32]().Name())
	assert.Equal(t, 4, EncodingOf[uint8]().MaxUnits())
	assert.Equal(t, 2, EncodingOf[uint16]().MaxUnits())
	assert.Equal(t, 1, EncodingOf[uint32]().MaxUnits())
}

func TestEncodingError(t *testing.T) {
	err := &EncodingError{
		Encoding: "UTF-8", Offset: 3, Units: []uint32{0xE2, 0x82},
	}
	assert.Equal(t, "invalid UTF-8 at offset 3: e2 82", err.Error())
}
