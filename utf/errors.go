package utf

import (
	"fmt"
	"strings"
)

// An EncodingError reports malformed input found under the [Strict]
// policy.
//
// When decoding, Offset is the unit offset of the malformed sequence in
// the source and Units holds its units. When encoding, Offset is the
// length of the destination at the time of the failure and Units holds
// the rejected code point.
type EncodingError struct {
	Encoding string
	Offset   int
	Units    []uint32
}

func (e *EncodingError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "invalid %s at offset %d", e.Encoding, e.Offset)
	if len(e.Units) > 0 {
		b.WriteString(":")
		for _, u := range e.Units {
			fmt.Fprintf(&b, " %02x", u)
		}
	}
	return b.String()
}

func newEncodingError[U Unit](
	enc Encoding[U], offset int, units []U,
) *EncodingError {
	e := &EncodingError{Encoding: enc.Name(), Offset: offset}
	for _, u := range units {
		e.Units = append(e.Units, uint32(u))
	}
	return e
}
