package utf

import "iter"

// An Iterator decodes a slice of code units one character at a time in
// either direction.
//
// An Iterator is always positioned either on a character or at the end of
// its source. Two iterators are equal when their offsets are equal; the
// end position of a slice is the offset len(src).
//
// The iterator aliases its source. Modifying the source while the iterator
// is in use gives unspecified results.
type Iterator[U Unit] struct {
	src    []U
	enc    Encoding[U]
	policy Policy
	ofs    int
	n      int
	r      rune
	valid  bool
}

// Begin returns an iterator positioned on the first character of src.
// Under the Strict policy an error is returned if that character is
// malformed; the iterator is still usable.
func Begin[U Unit](src []U, p Policy) (*Iterator[U], error) {
	it := &Iterator[U]{src: src, enc: EncodingOf[U](), policy: p}
	return it, it.decode(len(src))
}

// End returns an iterator positioned at the end of src.
func End[U Unit](src []U, p Policy) *Iterator[U] {
	return &Iterator[U]{
		src:    src,
		enc:    EncodingOf[U](),
		policy: p,
		ofs:    len(src),
		r:      Invalid,
		valid:  true,
	}
}

// decode decodes the character at it.ofs without reading at or past limit.
func (it *Iterator[U]) decode(limit int) error {
	it.n, it.r, it.valid = 0, Invalid, true
	if it.ofs >= len(it.src) {
		it.ofs = len(it.src)
		return nil
	}
	chunk := it.src[it.ofs:limit]
	if it.policy == Ignore {
		it.r, it.n = it.enc.DecodeFast(chunk)
		return nil
	}
	it.r, it.n = it.enc.Decode(chunk)
	if IsScalar(it.r) {
		return nil
	}
	it.valid = false
	if it.policy == Strict {
		return newEncodingError(it.enc, it.ofs, chunk[:it.n])
	}
	it.r = Replacement
	return nil
}

// Next advances to the following character. At the end it does nothing.
func (it *Iterator[U]) Next() error {
	if it.ofs >= len(it.src) {
		return nil
	}
	it.ofs += it.n
	return it.decode(len(it.src))
}

// Prev steps back to the preceding character. At offset 0 it does
// nothing.
func (it *Iterator[U]) Prev() error {
	if it.ofs == 0 {
		return nil
	}
	end := it.ofs
	_, n := it.enc.DecodePrev(it.src[:end])
	it.ofs -= n
	return it.decode(end)
}

// Rune returns the current character. Malformed input under the Replace
// policy reads as Replacement. At the end Rune returns Invalid.
func (it *Iterator[U]) Rune() rune { return it.r }

// Offset returns the unit offset of the current character.
func (it *Iterator[U]) Offset() int { return it.ofs }

// Count returns the number of units in the current character.
func (it *Iterator[U]) Count() int { return it.n }

// Units returns the units of the current character.
func (it *Iterator[U]) Units() []U { return it.src[it.ofs : it.ofs+it.n] }

// Valid reports whether the current character was well formed.
// It is always true under the Ignore policy.
func (it *Iterator[U]) Valid() bool { return it.valid }

// Done reports whether the iterator is at the end of its source.
func (it *Iterator[U]) Done() bool { return it.ofs >= len(it.src) }

// Source returns the slice the iterator reads.
func (it *Iterator[U]) Source() []U { return it.src }

// Equal reports whether it and o are at the same offset.
func (it *Iterator[U]) Equal(o *Iterator[U]) bool { return it.ofs == o.ofs }

// Runes returns an iterator over the characters of src. Under the Strict
// policy the sequence ends with (Invalid, err) at the first malformed
// character.
func Runes[U Unit](src []U, p Policy) iter.Seq2[rune, error] {
	return func(yield func(rune, error) bool) {
		it, err := Begin(src, p)
		for ; err == nil && !it.Done(); err = it.Next() {
			if !yield(it.Rune(), nil) {
				return
			}
		}
		if err != nil {
			yield(Invalid, err)
		}
	}
}

// Backward returns an iterator over the characters of src from last to
// first.
func Backward[U Unit](src []U, p Policy) iter.Seq2[rune, error] {
	return func(yield func(rune, error) bool) {
		it := End(src, p)
		for it.Offset() > 0 {
			if err := it.Prev(); err != nil {
				yield(Invalid, err)
				return
			}
			if !yield(it.Rune(), nil) {
				return
			}
		}
	}
}
