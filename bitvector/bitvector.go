// Package bitvector provides a growable, bit-addressable vector backed by
// packed 64-bit words.
//
// Bit i of the vector is bit i%64 of word i/64. Multi-bit values are read and
// written least-significant bit first, and byte packing is little-endian at
// both the byte and the bit level.
//
// A BitVector is not safe for concurrent use.
package bitvector

import (
	"encoding/binary"
	"fmt"
	"math/bits"

	"github.com/psygate/bitvectors/shared"
)

// BitVector is a dense bit sequence. The zero value is an empty vector ready
// to use.
type BitVector struct {
	s storage
}

// New returns an empty vector.
func New() *BitVector {
	return &BitVector{}
}

// NewSized returns a vector of n zero bits.
func NewSized(n int) *BitVector {
	if n < 0 {
		panic(fmt.Sprintf("bitvector: negative size %d", n))
	}
	return &BitVector{s: newStorage(n)}
}

// FromWords returns a vector holding the first n bits of words. The words are
// copied.
func FromWords(words []uint64, n int) (*BitVector, error) {
	if n < 0 || n > len(words)*wordBits {
		return nil, fmt.Errorf("%w: %d bits do not fit in %d words", shared.ErrInvalidArgument, n, len(words))
	}
	v := NewSized(n)
	copy(v.s.words, words)
	v.s.trim()
	return v, nil
}

// OfBools returns a vector with bit i set to values[i].
func OfBools(values []bool) *BitVector {
	return New().WriteBools(values)
}

// OfBytes returns a vector of len(values)*8 bits.
func OfBytes(values []byte) *BitVector {
	v := NewSized(len(values) * 8)
	var buf [8]byte
	for i := range v.s.words {
		n := copy(buf[:], values[i*8:])
		for j := n; j < len(buf); j++ {
			buf[j] = 0
		}
		v.s.words[i] = binary.LittleEndian.Uint64(buf[:])
	}
	return v
}

// OfUint16s returns a vector of len(values)*16 bits.
func OfUint16s(values []uint16) *BitVector {
	v := NewSized(len(values) * 16)
	for i, value := range values {
		v.s.words[i/4] |= uint64(value) << (uint(i%4) * 16)
	}
	return v
}

// OfUint32s returns a vector of len(values)*32 bits.
func OfUint32s(values []uint32) *BitVector {
	v := NewSized(len(values) * 32)
	for i, value := range values {
		v.s.words[i/2] |= uint64(value) << (uint(i%2) * 32)
	}
	return v
}

// OfUint64s returns a vector of len(values)*64 bits. The values are copied.
func OfUint64s(values []uint64) *BitVector {
	v, _ := FromWords(values, len(values)*wordBits)
	return v
}

func OfBool(value bool) *BitVector {
	return New().WriteBit(value)
}

func OfByte(value byte) *BitVector {
	return ofWord(uint64(value), 8)
}

func OfUint16(value uint16) *BitVector {
	return ofWord(uint64(value), 16)
}

func OfUint32(value uint32) *BitVector {
	return ofWord(uint64(value), 32)
}

func OfUint64(value uint64) *BitVector {
	return ofWord(value, 64)
}

// OfBits returns a vector of the n low bits of value, n in [0, 64].
func OfBits(value uint64, n int) (*BitVector, error) {
	if err := shared.ValidateWidth("of bits", n, shared.LongBits); err != nil {
		return nil, err
	}
	return ofWord(value, n), nil
}

// OfIntBits returns a vector of the n low bits of value, n in [0, 32].
func OfIntBits(value uint32, n int) (*BitVector, error) {
	if err := shared.ValidateWidth("of int bits", n, shared.IntBits); err != nil {
		return nil, err
	}
	return ofWord(uint64(value), n), nil
}

func ofWord(value uint64, n int) *BitVector {
	v := NewSized(n)
	if n > 0 {
		v.s.words[0] = value & shared.FitMask(n)
	}
	return v
}

// OfBinaryString parses a string of '0' and '1' characters, character i
// becoming bit i.
func OfBinaryString(value string) (*BitVector, error) {
	v := NewSized(len(value))
	for i := 0; i < len(value); i++ {
		switch value[i] {
		case '0':
		case '1':
			v.s.set(i, true)
		default:
			return nil, fmt.Errorf("%w: cannot parse %q as a binary string; unexpected %q at %d",
				shared.ErrInvalidArgument, value, value[i], i)
		}
	}
	return v, nil
}

// Len returns the number of bits in the vector.
func (v *BitVector) Len() int {
	return v.s.length
}

func (v *BitVector) IsEmpty() bool {
	return v.s.length == 0
}

// Get returns the bit at pos.
func (v *BitVector) Get(pos int) (bool, error) {
	if err := checkGet("get", v, pos); err != nil {
		return false, err
	}
	return v.s.get(pos), nil
}

// BitAt returns the bit at pos. It panics if pos is outside [0, Len()).
func (v *BitVector) BitAt(pos int) bool {
	if pos < 0 || pos >= v.s.length {
		panic(&shared.BoundsError{Op: "bit at", Index: pos, Size: v.s.length})
	}
	return v.s.get(pos)
}

// GetBits returns n bits, n in [0, 32], starting at pos, LSB first.
func (v *BitVector) GetBits(pos, n int) (uint32, error) {
	value, err := getBits("get bits", v, pos, n, shared.IntBits)
	return uint32(value), err
}

// GetBitsLong returns n bits, n in [0, 64], starting at pos, LSB first.
func (v *BitVector) GetBitsLong(pos, n int) (uint64, error) {
	return getBits("get bits long", v, pos, n, shared.LongBits)
}

// GetBytes returns count bytes read from consecutive 8-bit groups starting
// at pos.
func (v *BitVector) GetBytes(pos, count int) ([]byte, error) {
	if count < 0 {
		return nil, &shared.BoundsError{Op: "get bytes", Index: pos, Length: count, Size: v.Len()}
	}
	if err := checkSpan("get bytes", v.Len(), pos, count*8); err != nil {
		return nil, err
	}
	out := make([]byte, count)
	for i := range out {
		b, _ := v.GetBits(pos+i*8, 8)
		out[i] = byte(b)
	}
	return out, nil
}

// Words returns a copy of the backing words.
func (v *BitVector) Words() []uint64 {
	words := make([]uint64, len(v.s.words))
	copy(words, v.s.words)
	return words
}

// ToBytes packs the vector into bytes, LSB first.
func (v *BitVector) ToBytes() []byte {
	out := make([]byte, (v.Len()+7)/8)
	var buf [8]byte
	for i, word := range v.s.words {
		binary.LittleEndian.PutUint64(buf[:], word)
		copy(out[i*8:], buf[:])
	}
	return out
}

func (v *BitVector) ToBools() []bool {
	out := make([]bool, v.Len())
	for i := range out {
		out[i] = v.s.get(i)
	}
	return out
}

func (v *BitVector) ToBinaryString() string {
	return ToBinaryString(v)
}

// Count returns the number of set bits.
func (v *BitVector) Count() int {
	var n int
	for _, word := range v.s.words {
		n += bits.OnesCount64(word)
	}
	return n
}

// NextSetBit returns the position of the first set bit at or after from,
// or -1.
func (v *BitVector) NextSetBit(from int) int {
	return v.next(from, true)
}

// NextUnsetBit returns the position of the first clear bit at or after from,
// or -1.
func (v *BitVector) NextUnsetBit(from int) int {
	return v.next(from, false)
}

func (v *BitVector) next(from int, bit bool) int {
	if from < 0 {
		from = 0
	}
	for i := from; i < v.Len(); i++ {
		if v.s.get(i) == bit {
			return i
		}
	}
	return -1
}

// Equal reports whether other holds the same bits as v.
func (v *BitVector) Equal(other Readable) bool {
	if o, ok := other.(*BitVector); ok {
		if o.Len() != v.Len() {
			return false
		}
		for i := range v.s.words {
			if v.s.words[i] != o.s.words[i] {
				return false
			}
		}
		return true
	}
	return Equal(v, other)
}

// Copy returns an independent copy of v.
func (v *BitVector) Copy() *BitVector {
	return &BitVector{s: v.s.clone()}
}

// Empty returns a new empty vector.
func (v *BitVector) Empty() *BitVector {
	return New()
}

func (v *BitVector) String() string {
	return "BitVector{" + v.ToBinaryString() + "}"
}
