package bitvector

import (
	"strings"

	"github.com/psygate/bitvectors/shared"
)

// Readable is the read-only contract shared by dense and sparse vectors.
type Readable interface {
	// Len returns the number of bits in the vector.
	Len() int
	// Get returns the bit at pos, or a bounds error if pos is outside [0, Len()).
	Get(pos int) (bool, error)
	// BitAt returns the bit at pos without an error result.
	// It panics if pos is outside [0, Len()).
	BitAt(pos int) bool
	// GetBits packs n bits starting at pos into the low bits of the result,
	// bit pos+i becoming bit i. n must lie within [0, 32].
	GetBits(pos, n int) (uint32, error)
	// GetBitsLong is the 64-bit variant of GetBits.
	GetBitsLong(pos, n int) (uint64, error)
}

// Writable is a Readable that can be appended to and modified in place.
type Writable interface {
	Readable
	// AppendBit writes bit at position Len(), growing the vector by one.
	AppendBit(bit bool)
	// SetBit overwrites the bit at index, which must lie within [0, Len()).
	SetBit(index int, bit bool) error
}

// A compile time check to ensure that both representations fully implement Writable.
var (
	_ Writable = (*BitVector)(nil)
	_ Writable = (*Sparse)(nil)
)

func checkGet(op string, r Readable, pos int) error {
	if pos < 0 || pos >= r.Len() {
		return &shared.BoundsError{Op: op, Index: pos, Size: r.Len()}
	}
	return nil
}

func checkSpan(op string, size, pos, n int) error {
	if pos < 0 || n < 0 || pos > size || n > size-pos {
		return &shared.BoundsError{Op: op, Index: pos, Length: n, Size: size}
	}
	return nil
}

func getBits(op string, r Readable, pos, n, max int) (uint64, error) {
	if err := shared.ValidateWidth(op, n, max); err != nil {
		return 0, err
	}
	if err := checkSpan(op, r.Len(), pos, n); err != nil {
		return 0, err
	}

	var value uint64
	for i := 0; i < n; i++ {
		if r.BitAt(pos + i) {
			value |= 1 << uint(i)
		}
	}
	return value, nil
}

// Equal reports whether a and b hold the same bits.
func Equal(a, b Readable) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		if a.BitAt(i) != b.BitAt(i) {
			return false
		}
	}
	return true
}

// Matches reports whether pattern occurs in r at start. An empty pattern
// matches at any start within [0, r.Len()].
func Matches(r Readable, start int, pattern Readable) bool {
	if start < 0 || start > r.Len() || pattern.Len() > r.Len()-start {
		return false
	}
	for i := 0; i < pattern.Len(); i++ {
		if r.BitAt(start+i) != pattern.BitAt(i) {
			return false
		}
	}
	return true
}

// IndexOf returns the first position at or after start where pattern occurs
// in r, or -1. Searching for an empty pattern always returns 0, whatever
// start is.
func IndexOf(r Readable, start int, pattern Readable) int {
	if pattern.Len() == 0 {
		return 0
	}
	if start < 0 {
		return -1
	}
	for i := start; i <= r.Len()-pattern.Len(); i++ {
		if Matches(r, i, pattern) {
			return i
		}
	}
	return -1
}

// ToBytes packs r into bytes, LSB first, zero-filling the unused high bits of
// a trailing partial byte.
func ToBytes(r Readable) []byte {
	out := make([]byte, (r.Len()+7)/8)
	for i := 0; i < r.Len(); i++ {
		if r.BitAt(i) {
			out[i/8] |= 1 << uint(i%8)
		}
	}
	return out
}

// ToBinaryString maps bit i of r to character i of the result.
func ToBinaryString(r Readable) string {
	var sb strings.Builder
	sb.Grow(r.Len())
	for i := 0; i < r.Len(); i++ {
		if r.BitAt(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
