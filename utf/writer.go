package utf

// A Writer encodes characters onto the end of a slice of code units.
type Writer[U Unit] struct {
	dst    *[]U
	enc    Encoding[U]
	policy Policy
	buf    [4]U
}

// NewWriter returns a writer that appends to *dst.
func NewWriter[U Unit](dst *[]U, p Policy) *Writer[U] {
	return &Writer[U]{dst: dst, enc: EncodingOf[U](), policy: p}
}

// WriteRune encodes r and appends it to the destination, returning the
// number of units appended.
//
// Unless the policy is Ignore, r must be a scalar value: under Replace an
// invalid r appends the replacement character, under Strict it returns an
// *EncodingError and appends nothing.
func (w *Writer[U]) WriteRune(r rune) (int, error) {
	if w.policy != Ignore && !IsScalar(r) {
		if w.policy == Strict {
			return 0, &EncodingError{
				Encoding: w.enc.Name(),
				Offset:   len(*w.dst),
				Units:    []uint32{uint32(r)},
			}
		}
		rep := w.enc.Replacement()
		*w.dst = append(*w.dst, rep...)
		return len(rep), nil
	}
	n := w.enc.Encode(w.buf[:], r)
	*w.dst = append(*w.dst, w.buf[:n]...)
	return n, nil
}

// Len returns the current length of the destination.
func (w *Writer[U]) Len() int { return len(*w.dst) }
