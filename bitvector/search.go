package bitvector

import (
	"fmt"

	"github.com/psygate/bitvectors/shared"
)

// SubVector returns an independent copy of length bits starting at pos.
func (v *BitVector) SubVector(pos, length int) (*BitVector, error) {
	if err := checkSpan("subvector", v.Len(), pos, length); err != nil {
		return nil, err
	}
	return v.subVector(pos, length), nil
}

// SubVectorFrom returns an independent copy of the bits from pos to the end.
func (v *BitVector) SubVectorFrom(pos int) (*BitVector, error) {
	return v.SubVector(pos, v.Len()-pos)
}

// Range returns an independent copy of the bits in [from, to).
func (v *BitVector) Range(from, to int) (*BitVector, error) {
	if from < 0 || from > v.Len() {
		return nil, &shared.BoundsError{Op: "range", Index: from, Size: v.Len()}
	}
	if to < 0 || to > v.Len() {
		return nil, &shared.BoundsError{Op: "range", Index: to, Size: v.Len()}
	}
	if from > to {
		return nil, fmt.Errorf("%w: range from %d is larger than to %d", shared.ErrInvalidArgument, from, to)
	}
	return v.subVector(from, to-from), nil
}

func (v *BitVector) subVector(pos, length int) *BitVector {
	out := New()
	for i := 0; i < length; i++ {
		out.s.appendBit(v.s.get(pos + i))
	}
	return out
}

// Matches reports whether other occurs in v at start.
func (v *BitVector) Matches(start int, other Readable) bool {
	return Matches(v, start, other)
}

// IndexOf returns the first position at or after start where other occurs,
// or -1. An empty other is always found at 0.
func (v *BitVector) IndexOf(start int, other Readable) int {
	return IndexOf(v, start, other)
}

// ReplaceFirst returns a new vector in which the first occurrence of find at
// or after index is replaced by replace. When find does not occur the result
// is a copy of v. An empty find matches at 0, so replace is prepended, the
// same way a textual replace-first of the empty string behaves. v itself is
// never modified.
func (v *BitVector) ReplaceFirst(index int, find, replace Readable) *BitVector {
	if v.IsEmpty() {
		return New()
	}

	found := v.IndexOf(index, find)
	if found == -1 {
		return v.Copy()
	}

	tail := found + find.Len()
	out := v.subVector(0, found)
	out.Write(replace)
	for i := tail; i < v.Len(); i++ {
		out.s.appendBit(v.s.get(i))
	}
	return out
}
