package bitvector

import (
	"github.com/psygate/bitvectors/shared"
)

// WriteBit appends bit and returns v.
func (v *BitVector) WriteBit(bit bool) *BitVector {
	v.s.appendBit(bit)
	return v
}

// AppendBit appends bit.
func (v *BitVector) AppendBit(bit bool) {
	v.s.appendBit(bit)
}

// WriteBools appends values in order and returns v.
func (v *BitVector) WriteBools(values []bool) *BitVector {
	for _, value := range values {
		v.s.appendBit(value)
	}
	return v
}

// WriteBytes appends data, 8 bits per byte, LSB first, and returns v.
func (v *BitVector) WriteBytes(data []byte) *BitVector {
	for _, b := range data {
		v.writeBits(uint64(b), 8)
	}
	return v
}

// Write appends all bits of other and returns v.
func (v *BitVector) Write(other Readable) *BitVector {
	n := other.Len()
	for i := 0; i < n; i++ {
		v.s.appendBit(other.BitAt(i))
	}
	return v
}

// WriteRange appends amount bits of other starting at offset.
func (v *BitVector) WriteRange(other Readable, offset, amount int) error {
	if err := checkSpan("write range", other.Len(), offset, amount); err != nil {
		return err
	}
	for i := 0; i < amount; i++ {
		v.s.appendBit(other.BitAt(offset + i))
	}
	return nil
}

// WriteBits appends the n low bits of value, n in [0, 32], LSB first.
func (v *BitVector) WriteBits(value uint32, n int) error {
	if err := shared.ValidateWidth("write bits", n, shared.IntBits); err != nil {
		return err
	}
	v.writeBits(uint64(value), n)
	return nil
}

// WriteBitsLong appends the n low bits of value, n in [0, 64], LSB first.
func (v *BitVector) WriteBitsLong(value uint64, n int) error {
	if err := shared.ValidateWidth("write bits long", n, shared.LongBits); err != nil {
		return err
	}
	v.writeBits(value, n)
	return nil
}

func (v *BitVector) writeBits(value uint64, n int) {
	for i := 0; i < n; i++ {
		v.s.appendBit((value>>uint(i))&1 == 1)
	}
}

// SetBit overwrites the bit at index. The index must be an existing
// position; SetBit never grows the vector.
func (v *BitVector) SetBit(index int, bit bool) error {
	if index < 0 || index >= v.Len() {
		return &shared.BoundsError{Op: "set bit", Index: index, Size: v.Len()}
	}
	v.s.set(index, bit)
	return nil
}

// SetBits overwrites n bits, n in [0, 32], starting at index with the low
// bits of value.
func (v *BitVector) SetBits(index int, value uint32, n int) error {
	if err := shared.ValidateWidth("set bits", n, shared.IntBits); err != nil {
		return err
	}
	return v.setBits("set bits", index, uint64(value), n)
}

// SetBitsLong overwrites n bits, n in [0, 64], starting at index with the
// low bits of value.
func (v *BitVector) SetBitsLong(index int, value uint64, n int) error {
	if err := shared.ValidateWidth("set bits long", n, shared.LongBits); err != nil {
		return err
	}
	return v.setBits("set bits long", index, value, n)
}

func (v *BitVector) setBits(op string, index int, value uint64, n int) error {
	if err := checkSpan(op, v.Len(), index, n); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		v.s.set(index+i, (value>>uint(i))&1 == 1)
	}
	return nil
}

// Set overwrites other.Len() bits starting at index with the bits of other.
func (v *BitVector) Set(index int, other Readable) error {
	return v.SetRange(index, other, 0, other.Len())
}

// SetRange overwrites amount bits starting at index with the bits of other
// starting at offset.
func (v *BitVector) SetRange(index int, other Readable, offset, amount int) error {
	if err := checkSpan("set range", other.Len(), offset, amount); err != nil {
		return err
	}
	if err := checkSpan("set range", v.Len(), index, amount); err != nil {
		return err
	}
	// Read first so that overlapping ranges of the same vector behave as a copy.
	bits := make([]bool, amount)
	for i := range bits {
		bits[i] = other.BitAt(offset + i)
	}
	for i, bit := range bits {
		v.s.set(index+i, bit)
	}
	return nil
}
