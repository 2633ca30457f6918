package bitvector

import (
	"fmt"

	"github.com/psygate/bitvectors/shared"
)

// Or returns a new vector with bit i set to v[i] || other[i].
func (v *BitVector) Or(other Readable) (*BitVector, error) {
	return v.combine("or", other, func(a, b uint64) uint64 { return a | b })
}

// And returns a new vector with bit i set to v[i] && other[i].
func (v *BitVector) And(other Readable) (*BitVector, error) {
	return v.combine("and", other, func(a, b uint64) uint64 { return a & b })
}

// Xor returns a new vector with bit i set to v[i] != other[i].
func (v *BitVector) Xor(other Readable) (*BitVector, error) {
	return v.combine("xor", other, func(a, b uint64) uint64 { return a ^ b })
}

// Not returns a new vector with every bit inverted.
func (v *BitVector) Not() *BitVector {
	out := v.Copy()
	for i := range out.s.words {
		out.s.words[i] = ^out.s.words[i]
	}
	out.s.trim()
	return out
}

func (v *BitVector) combine(op string, other Readable, fn func(a, b uint64) uint64) (*BitVector, error) {
	if other.Len() != v.Len() {
		return nil, fmt.Errorf("%w: %s size mismatch: %d/%d", shared.ErrInvalidArgument, op, v.Len(), other.Len())
	}

	out := NewSized(v.Len())
	if o, ok := other.(*BitVector); ok {
		for i := range out.s.words {
			out.s.words[i] = fn(v.s.words[i], o.s.words[i])
		}
		return out, nil
	}

	for i := 0; i < v.Len(); i++ {
		var a, b uint64
		if v.s.get(i) {
			a = 1
		}
		if other.BitAt(i) {
			b = 1
		}
		if fn(a, b)&1 == 1 {
			out.s.set(i, true)
		}
	}
	return out, nil
}
