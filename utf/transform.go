package utf

import "golang.org/x/text/transform"

// A Transformer applies a Policy to a UTF-8 byte stream. It implements
// [transform.Transformer], so it can sit under a line reader or writer:
//
//	r := transform.NewReader(f, utf.NewTransformer(utf.Replace))
//
// Sequences split across chunk boundaries are held back until the rest
// arrives or the stream ends.
type Transformer struct {
	policy Policy
	offset int
}

var _ transform.Transformer = (*Transformer)(nil)

// NewTransformer returns a Transformer for the given policy.
func NewTransformer(p Policy) *Transformer {
	return &Transformer{policy: p}
}

// Reset implements transform.Transformer.
func (t *Transformer) Reset() { t.offset = 0 }

// Transform implements transform.Transformer.
func (t *Transformer) Transform(
	dst, src []byte, atEOF bool,
) (nDst, nSrc int, err error) {
	defer func() { t.offset += nSrc }()
	var enc UTF8
	rep := enc.Replacement()
	for nSrc < len(src) {
		rest := src[nSrc:]
		r, n := enc.Decode(rest)
		out := rest[:n]
		if !IsScalar(r) {
			if !atEOF && truncated(rest, n) {
				return nDst, nSrc, transform.ErrShortSrc
			}
			switch t.policy {
			case Strict:
				return nDst, nSrc, newEncodingError[uint8](
					enc, t.offset+nSrc, out,
				)
			case Replace:
				out = rep
			}
		}
		if len(dst)-nDst < len(out) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], out)
		nSrc += n
	}
	return nDst, nSrc, nil
}

// truncated reports whether the malformed prefix of rest, n units long,
// is an incomplete sequence cut off by the end of rest.
func truncated(rest []byte, n int) bool {
	need, _, _ := utf8Lead(rest[0])
	return n == len(rest) && need >= n
}
