package utf

import "slices"

// Recode converts src from the encoding of F to the encoding of T.
//
// Under the Strict policy the first malformed character stops the
// conversion with an *EncodingError and no output.
func Recode[F, T Unit](src []F, p Policy) ([]T, error) {
	return Append[F, T](nil, src, p)
}

// Append converts src from the encoding of F to the encoding of T and
// appends the result to dst. On error dst is returned unchanged.
func Append[F, T Unit](dst []T, src []F, p Policy) ([]T, error) {
	start := len(dst)
	var err error
	switch {
	case sizeOf[F]() == sizeOf[T]():
		// Unit sets are disjoint by size, so F and T are the same type.
		dst, err = appendSame(dst, any(src).([]T), p)
	case sizeOf[T]() == 4:
		dst, err = appendScalars(dst, src, p)
	default:
		dst, err = appendGeneral(dst, src, p)
	}
	if err != nil {
		return dst[:start], err
	}
	return dst, nil
}

// appendGeneral pumps an Iterator into a Writer. The other append
// functions must produce the same output.
func appendGeneral[F, T Unit](dst []T, src []F, p Policy) ([]T, error) {
	w := NewWriter(&dst, p)
	it, err := Begin(src, p)
	for ; err == nil && !it.Done(); err = it.Next() {
		if _, werr := w.WriteRune(it.Rune()); werr != nil {
			return dst, werr
		}
	}
	return dst, err
}

// appendSame copies well-formed runs of src unchanged.
func appendSame[U Unit](dst, src []U, p Policy) ([]U, error) {
	enc := EncodingOf[U]()
	if p == Ignore {
		return appendSameFast(dst, src, enc), nil
	}
	run := 0
	for i := 0; i < len(src); {
		r, n := enc.Decode(src[i:])
		if IsScalar(r) {
			i += n
			continue
		}
		dst = append(dst, src[run:i]...)
		if p == Strict {
			return dst, newEncodingError(enc, i, src[i:i+n])
		}
		dst = append(dst, enc.Replacement()...)
		i += n
		run = i
	}
	return append(dst, src[run:]...), nil
}

// appendSameFast copies runs of src that the trusting decoder reads back
// unchanged, and re-encodes the characters it does not.
func appendSameFast[U Unit](dst, src []U, enc Encoding[U]) []U {
	var buf [4]U
	run := 0
	for i := 0; i < len(src); {
		r, n := enc.DecodeFast(src[i:])
		m := enc.Encode(buf[:], r)
		if slices.Equal(buf[:m], src[i:i+n]) {
			i += n
			continue
		}
		dst = append(dst, src[run:i]...)
		dst = append(dst, buf[:m]...)
		i += n
		run = i
	}
	return append(dst, src[run:]...)
}

// appendScalars decodes straight into UTF-32, for which encoding is the
// identity. T must be uint32.
func appendScalars[F, T Unit](dst []T, src []F, p Policy) ([]T, error) {
	enc := EncodingOf[F]()
	for i := 0; i < len(src); {
		var r rune
		var n int
		if p == Ignore {
			r, n = enc.DecodeFast(src[i:])
		} else {
			r, n = enc.Decode(src[i:])
			if !IsScalar(r) {
				if p == Strict {
					return dst, newEncodingError(enc, i, src[i:i+n])
				}
				r = Replacement
			}
		}
		dst = append(dst, T(r))
		i += n
	}
	return dst, nil
}

// Valid reports whether src is entirely well formed.
func Valid[U Unit](src []U) bool {
	return Check(src) == nil
}

// Check returns an *EncodingError describing the first malformed
// character of src, or nil.
func Check[U Unit](src []U) error {
	enc := EncodingOf[U]()
	for i := 0; i < len(src); {
		r, n := enc.Decode(src[i:])
		if !IsScalar(r) {
			return newEncodingError(enc, i, src[i:i+n])
		}
		i += n
	}
	return nil
}

// Sanitize returns a copy of src with every malformed sequence replaced
// by the replacement character.
func Sanitize[U Unit](src []U) []U {
	out, _ := appendSame(make([]U, 0, len(src)), src, Replace)
	return out
}

// Count returns the number of characters in src.
func Count[U Unit](src []U, p Policy) (int, error) {
	n := 0
	for _, err := range Runes(src, p) {
		if err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// FromString converts the UTF-8 string s to the encoding of U.
func FromString[U Unit](s string, p Policy) ([]U, error) {
	return Recode[uint8, U]([]uint8(s), p)
}

// ToString converts src to a UTF-8 string.
func ToString[U Unit](src []U, p Policy) (string, error) {
	b, err := Recode[U, uint8](src, p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
