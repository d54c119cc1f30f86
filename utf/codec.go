package utf

// Encoding decodes and encodes one character at a time in a fixed code
// unit width. Implementations are stateless.
type Encoding[U Unit] interface {
	// Name returns the encoding name used in error messages.
	Name() string

	// MaxUnits returns the largest number of units one character needs.
	MaxUnits() int

	// Decode decodes the character at the start of src. On malformed
	// input r does not satisfy IsScalar and n is the length of the
	// maximal ill-formed subsequence, at least 1. Decode never reads past
	// len(src). An empty src returns (Invalid, 0).
	Decode(src []U) (r rune, n int)

	// DecodeFast is Decode for input known to be well formed. Malformed
	// input gives an unspecified r but never reads past len(src).
	DecodeFast(src []U) (r rune, n int)

	// DecodePrev decodes the character that ends at len(src), returning
	// the number of units it occupies.
	DecodePrev(src []U) (r rune, n int)

	// Encode writes r to dst and returns the number of units written.
	// dst must have room for MaxUnits units.
	Encode(dst []U, r rune) int

	// Replacement returns the encoded replacement character.
	Replacement() []U
}

// EncodingOf returns the encoding for the unit type U.
func EncodingOf[U Unit]() Encoding[U] {
	var enc any
	switch any(U(0)).(type) {
	case uint8:
		enc = UTF8{}
	case uint16:
		enc = UTF16{}
	default:
		enc = UTF32{}
	}
	return enc.(Encoding[U])
}

// UTF8 is the UTF-8 encoding over uint8 units.
type UTF8 struct{}

var _ Encoding[uint8] = UTF8{}

func (UTF8) Name() string  { return "UTF-8" }
func (UTF8) MaxUnits() int { return 4 }

func (UTF8) Replacement() []uint8 { return []uint8{0xEF, 0xBF, 0xBD} }

// utf8Lead returns the number of continuation bytes a lead byte requires
// and the valid range of the first continuation byte. need is 0 for bytes
// that cannot start a sequence.
func utf8Lead(b uint8) (need int, lo, hi uint8) {
	switch {
	case b < 0x80:
		return 0, 0, 0
	case b < 0xC2:
		return 0, 0, 0
	case b < 0xE0:
		return 1, 0x80, 0xBF
	case b == 0xE0:
		return 2, 0xA0, 0xBF
	case b == 0xED:
		return 2, 0x80, 0x9F
	case b < 0xF0:
		return 2, 0x80, 0xBF
	case b == 0xF0:
		return 3, 0x90, 0xBF
	case b < 0xF4:
		return 3, 0x80, 0xBF
	case b == 0xF4:
		return 3, 0x80, 0x8F
	}
	return 0, 0, 0
}

func (UTF8) Decode(src []uint8) (rune, int) {
	if len(src) == 0 {
		return Invalid, 0
	}
	b0 := src[0]
	if b0 < 0x80 {
		return rune(b0), 1
	}
	need, lo, hi := utf8Lead(b0)
	if need == 0 {
		return Invalid, 1
	}
	r := rune(b0) & (0x7F >> (need + 1))
	for i := 1; i <= need; i++ {
		if i >= len(src) {
			return Invalid, i
		}
		c := src[i]
		if c < lo || c > hi {
			return Invalid, i
		}
		lo, hi = 0x80, 0xBF
		r = r<<6 | rune(c&0x3F)
	}
	return r, need + 1
}

func (UTF8) DecodeFast(src []uint8) (rune, int) {
	if len(src) == 0 {
		return Invalid, 0
	}
	b0 := src[0]
	var n int
	var r rune
	switch {
	case b0 < 0xC0:
		return rune(b0), 1
	case b0 < 0xE0:
		n, r = 2, rune(b0&0x1F)
	case b0 < 0xF0:
		n, r = 3, rune(b0&0x0F)
	default:
		n, r = 4, rune(b0&0x07)
	}
	n = min(n, len(src))
	for i := 1; i < n; i++ {
		r = r<<6 | rune(src[i]&0x3F)
	}
	return r, n
}

func (e UTF8) DecodePrev(src []uint8) (rune, int) {
	end := len(src)
	if end == 0 {
		return Invalid, 0
	}
	start := end - 1
	for start > 0 && end-start < 4 && src[start]&0xC0 == 0x80 {
		start--
	}
	// Regroup forward from the earliest candidate lead byte so that
	// malformed runs split the same way they do going forward.
	r, n := Invalid, 0
	for i := start; i < end; i += n {
		r, n = e.Decode(src[i:end])
	}
	return r, n
}

func (e UTF8) Encode(dst []uint8, r rune) int {
	switch {
	case r < 0:
	case r < 0x80:
		dst[0] = uint8(r)
		return 1
	case r < 0x800:
		dst[0] = 0xC0 | uint8(r>>6)
		dst[1] = 0x80 | uint8(r)&0x3F
		return 2
	case r < 0x10000:
		dst[0] = 0xE0 | uint8(r>>12)
		dst[1] = 0x80 | uint8(r>>6)&0x3F
		dst[2] = 0x80 | uint8(r)&0x3F
		return 3
	case r <= MaxRune:
		dst[0] = 0xF0 | uint8(r>>18)
		dst[1] = 0x80 | uint8(r>>12)&0x3F
		dst[2] = 0x80 | uint8(r>>6)&0x3F
		dst[3] = 0x80 | uint8(r)&0x3F
		return 4
	}
	return copy(dst, e.Replacement())
}

// UTF16 is the UTF-16 encoding over uint16 units in host order.
type UTF16 struct{}

var _ Encoding[uint16] = UTF16{}

func (UTF16) Name() string          { return "UTF-16" }
func (UTF16) MaxUnits() int         { return 2 }
func (UTF16) Replacement() []uint16 { return []uint16{uint16(Replacement)} }

func combine(hi, lo uint16) rune {
	return (rune(hi)-surrogateMin)<<10 + (rune(lo) - lowMin) + 0x10000
}

func (UTF16) Decode(src []uint16) (rune, int) {
	if len(src) == 0 {
		return Invalid, 0
	}
	u := src[0]
	if !IsSurrogate(uint32(u)) {
		return rune(u), 1
	}
	if IsHighSurrogate(uint32(u)) && len(src) > 1 &&
		IsLowSurrogate(uint32(src[1])) {
		return combine(u, src[1]), 2
	}
	// A lone surrogate is returned as itself; it fails IsScalar.
	return rune(u), 1
}

func (UTF16) DecodeFast(src []uint16) (rune, int) {
	if len(src) == 0 {
		return Invalid, 0
	}
	u := src[0]
	if IsHighSurrogate(uint32(u)) && len(src) > 1 &&
		IsLowSurrogate(uint32(src[1])) {
		return combine(u, src[1]), 2
	}
	return rune(u), 1
}

func (UTF16) DecodePrev(src []uint16) (rune, int) {
	end := len(src)
	if end == 0 {
		return Invalid, 0
	}
	u := src[end-1]
	if IsLowSurrogate(uint32(u)) && end > 1 &&
		IsHighSurrogate(uint32(src[end-2])) {
		return combine(src[end-2], u), 2
	}
	return rune(u), 1
}

func (UTF16) Encode(dst []uint16, r rune) int {
	switch {
	case r < 0:
	case r < 0x10000:
		dst[0] = uint16(r)
		return 1
	case r <= MaxRune:
		r -= 0x10000
		dst[0] = uint16(surrogateMin + r>>10)
		dst[1] = uint16(lowMin + r&0x3FF)
		return 2
	}
	dst[0] = uint16(Replacement)
	return 1
}

// UTF32 is the UTF-32 encoding over uint32 units in host order.
type UTF32 struct{}

var _ Encoding[uint32] = UTF32{}

func (UTF32) Name() string          { return "UTF-32" }
func (UTF32) MaxUnits() int         { return 1 }
func (UTF32) Replacement() []uint32 { return []uint32{uint32(Replacement)} }

func (UTF32) Decode(src []uint32) (rune, int) {
	if len(src) == 0 {
		return Invalid, 0
	}
	if src[0] > uint32(MaxRune) {
		return Invalid, 1
	}
	return rune(src[0]), 1
}

func (UTF32) DecodeFast(src []uint32) (rune, int) {
	if len(src) == 0 {
		return Invalid, 0
	}
	return rune(src[0]), 1
}

func (e UTF32) DecodePrev(src []uint32) (rune, int) {
	if len(src) == 0 {
		return Invalid, 0
	}
	return e.Decode(src[len(src)-1:])
}

func (UTF32) Encode(dst []uint32, r rune) int {
	dst[0] = uint32(r)
	return 1
}
