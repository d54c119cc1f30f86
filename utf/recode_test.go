package utf

import (
	"encoding/binary"
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// randomScalars returns n random scalar values weighted towards the
// boundaries between encoding lengths.
func randomScalars(rng *rand.Rand, n int) []rune {
	bounds := [][2]rune{
		{0, 0x7F},
		{0x80, 0x7FF},
		{0x800, 0xD7FF},
		{0xE000, 0xFFFF},
		{0x10000, MaxRune},
	}
	out := make([]rune, n)
	for i := range out {
		b := bounds[rng.IntN(len(bounds))]
		out[i] = b[0] + rng.Int32N(b[1]-b[0]+1)
	}
	return out
}

func roundTrip[A, B Unit](t *testing.T, src []A) {
	t.Helper()
	mid, err := Recode[A, B](src, Strict)
	require.NoError(t, err)
	back, err := Recode[B, A](mid, Strict)
	require.NoError(t, err)
	require.True(t, slices.Equal(src, back),
		"round trip of %x through %T gave %x", src, mid, back)
}

func TestRecodeRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for range 200 {
		s := randomScalars(rng, rng.IntN(40))
		u8 := []byte(string(s))
		u16, err := Recode[uint8, uint16](u8, Strict)
		require.NoError(t, err)
		u32, err := Recode[uint8, uint32](u8, Strict)
		require.NoError(t, err)

		roundTrip[uint8, uint16](t, u8)
		roundTrip[uint8, uint32](t, u8)
		roundTrip[uint16, uint8](t, u16)
		roundTrip[uint16, uint32](t, u16)
		roundTrip[uint32, uint8](t, u32)
		roundTrip[uint32, uint16](t, u32)
		roundTrip[uint8, uint8](t, u8)

		want := make([]uint32, len(s))
		for i, r := range s {
			want[i] = uint32(r)
		}
		assert.True(t, slices.Equal(want, u32), "%x != %x", want, u32)
	}
}

func TestRecodeMatchesXText(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	enc16 := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	enc32 := utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM)
	for range 100 {
		s := string(randomScalars(rng, rng.IntN(30)))

		u16, err := FromString[uint16](s, Strict)
		require.NoError(t, err)
		want16, err := enc16.NewEncoder().Bytes([]byte(s))
		require.NoError(t, err)
		got16 := make([]byte, 0, 2*len(u16))
		for _, u := range u16 {
			got16 = binary.LittleEndian.AppendUint16(got16, u)
		}
		assert.Equal(t, want16, got16)

		u32, err := FromString[uint32](s, Strict)
		require.NoError(t, err)
		want32, err := enc32.NewEncoder().Bytes([]byte(s))
		require.NoError(t, err)
		got32 := make([]byte, 0, 4*len(u32))
		for _, u := range u32 {
			got32 = binary.LittleEndian.AppendUint32(got32, u)
		}
		assert.Equal(t, want32, got32)
	}
}

var malformed8 = []string{
	"",
	"plain",
	"\x80",
	"a\x80b",
	"\xC0\x80",
	"\xE2\x82",
	"x\xE2\x82",
	"\xED\xA0\x80",
	"\xF4\x90\x80\x80",
	"\xF0\x9F\x98",
	"ok\xF0\x9F\x98\x80\xFF",
}

var malformed16 = [][]uint16{
	{},
	{'a', 'b'},
	{0xD800},
	{0xDC00, 'a'},
	{'a', 0xD83D, 'b'},
	{0xD83D, 0xDE00, 0xDE00},
}

var malformed32 = [][]uint32{
	{},
	{'a'},
	{0xD800},
	{0x110000, 'b'},
	{0xFFFFFFFF},
}

func sameAsGeneral[F, T Unit](t *testing.T, src []F, p Policy) {
	t.Helper()
	want, wantErr := appendGeneral[F, T](nil, src, p)
	got, gotErr := Recode[F, T](src, p)
	if wantErr != nil {
		require.Error(t, gotErr)
		assert.Equal(t, wantErr, gotErr)
		assert.Empty(t, got)
		return
	}
	require.NoError(t, gotErr)
	assert.Equal(t, want, got, "input %x policy %v", src, p)
}

func TestRecodeEquivalence(t *testing.T) {
	for _, p := range []Policy{Ignore, Replace, Strict} {
		for _, s := range malformed8 {
			src := []byte(s)
			sameAsGeneral[uint8, uint8](t, src, p)
			sameAsGeneral[uint8, uint16](t, src, p)
			sameAsGeneral[uint8, uint32](t, src, p)
		}
		for _, src := range malformed16 {
			sameAsGeneral[uint16, uint8](t, src, p)
			sameAsGeneral[uint16, uint16](t, src, p)
			sameAsGeneral[uint16, uint32](t, src, p)
		}
		for _, src := range malformed32 {
			sameAsGeneral[uint32, uint8](t, src, p)
			sameAsGeneral[uint32, uint16](t, src, p)
			sameAsGeneral[uint32, uint32](t, src, p)
		}
	}
}

func TestRecodeIgnoreSameWidth(t *testing.T) {
	// Without validation, same-width output is what the trusting decoder
	// reads, encoded again: valid runs are copied, the rest is not.
	tests := []struct {
		in   string
		want string
	}{
		{"héllo wörld 😀", "héllo wörld 😀"},
		{"\x80", "\xC2\x80"},
		{"a\xE2\x82", "a\xC2\x82"},
		{"\xC0\xAF", "/"},
	}
	for _, tt := range tests {
		got, err := Recode[uint8, uint8]([]byte(tt.in), Ignore)
		require.NoError(t, err)
		assert.Equal(t, tt.want, string(got), "input %q", tt.in)
	}
}

func TestRecodeReplace(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a\x80b", "a�b"},
		{"\xC0\x80", "��"},
		{"x\xE2\x82y", "x�y"},
		{"\xED\xA0\x80", "���"},
		{"\xF0\x9F\x98", "�"},
	}
	for _, tt := range tests {
		got, err := Recode[uint8, uint8]([]byte(tt.in), Replace)
		require.NoError(t, err)
		assert.Equal(t, tt.want, string(got), "input %q", tt.in)
		assert.True(t, Valid(got))

		wide, err := Recode[uint8, uint16]([]byte(tt.in), Replace)
		require.NoError(t, err)
		back, err := ToString(wide, Strict)
		require.NoError(t, err)
		assert.Equal(t, tt.want, back)
	}
}

func TestRecodeStrictLeavesDestination(t *testing.T) {
	dst := []uint16{'x', 'y'}
	got, err := Append(dst, []byte("ok\x80"), Strict)

	var encErr *EncodingError
	require.True(t, errors.As(err, &encErr))
	assert.Equal(t, 2, encErr.Offset)
	assert.Equal(t, []uint16{'x', 'y'}, got)

	got8, err := Append([]byte("pre"), []byte("ok\x80"), Strict)
	require.Error(t, err)
	assert.Equal(t, "pre", string(got8))
}

func TestRecodeLoneSurrogateIgnore(t *testing.T) {
	// Lone surrogates survive a UTF-16 -> UTF-8 -> UTF-16 trip when
	// nothing is validated.
	src := []uint16{'a', 0xD800, 'b'}
	mid, err := Recode[uint16, uint8](src, Ignore)
	require.NoError(t, err)
	assert.Equal(t, "a\xED\xA0\x80b", string(mid))
	back, err := Recode[uint8, uint16](mid, Ignore)
	require.NoError(t, err)
	assert.Equal(t, src, back)
}

func TestValidCheckSanitizeCount(t *testing.T) {
	assert.True(t, Valid([]byte("héllo")))
	assert.False(t, Valid([]byte("h\xFFllo")))
	assert.True(t, Valid([]uint16{0xD83D, 0xDE00}))
	assert.False(t, Valid([]uint16{0xDE00}))
	assert.False(t, Valid([]uint32{0x110000}))

	err := Check([]byte("abc\xFF"))
	var encErr *EncodingError
	require.True(t, errors.As(err, &encErr))
	assert.Equal(t, 3, encErr.Offset)
	assert.NoError(t, Check([]uint32{'a'}))

	assert.Equal(t, "h�llo", string(Sanitize([]byte("h\xFFllo"))))
	assert.Equal(t, []uint16{'a', 0xFFFD}, Sanitize([]uint16{'a', 0xD800}))

	n, err := Count([]byte("a😀b"), Strict)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	n, err = Count([]uint16{0xD83D, 0xDE00}, Strict)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	_, err = Count([]byte("a\xFF"), Strict)
	assert.Error(t, err)
}
