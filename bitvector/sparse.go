package bitvector

import (
	"math/bits"

	"github.com/psygate/bitvectors/shared"
)

// Sparse is a bit sequence that stores only its non-zero words. It suits
// long vectors that are mostly clear.
type Sparse struct {
	words  map[int]uint64
	length int
}

func NewSparse() *Sparse {
	return &Sparse{words: make(map[int]uint64)}
}

// NewSparseSized returns a sparse vector of n zero bits.
func NewSparseSized(n int) *Sparse {
	s := NewSparse()
	if n > 0 {
		s.length = n
	}
	return s
}

func (s *Sparse) Len() int {
	return s.length
}

func (s *Sparse) Get(pos int) (bool, error) {
	if err := checkGet("get", s, pos); err != nil {
		return false, err
	}
	return s.get(pos), nil
}

func (s *Sparse) BitAt(pos int) bool {
	if pos < 0 || pos >= s.length {
		panic(&shared.BoundsError{Op: "bit at", Index: pos, Size: s.length})
	}
	return s.get(pos)
}

func (s *Sparse) get(pos int) bool {
	return (s.words[pos/wordBits]>>(uint(pos)%wordBits))&1 == 1
}

func (s *Sparse) GetBits(pos, n int) (uint32, error) {
	value, err := getBits("get bits", s, pos, n, shared.IntBits)
	return uint32(value), err
}

func (s *Sparse) GetBitsLong(pos, n int) (uint64, error) {
	return getBits("get bits long", s, pos, n, shared.LongBits)
}

func (s *Sparse) AppendBit(bit bool) {
	s.length++
	s.set(s.length-1, bit)
}

// WriteBit appends bit and returns s.
func (s *Sparse) WriteBit(bit bool) *Sparse {
	s.AppendBit(bit)
	return s
}

func (s *Sparse) SetBit(index int, bit bool) error {
	if index < 0 || index >= s.length {
		return &shared.BoundsError{Op: "set bit", Index: index, Size: s.length}
	}
	s.set(index, bit)
	return nil
}

func (s *Sparse) set(pos int, bit bool) {
	idx := pos / wordBits
	mask := uint64(1) << (uint(pos) % wordBits)
	word := s.words[idx]
	if bit {
		word |= mask
	} else {
		word &^= mask
	}
	if word == 0 {
		delete(s.words, idx)
	} else {
		s.words[idx] = word
	}
}

// StoredWords returns the number of non-zero words held.
func (s *Sparse) StoredWords() int {
	return len(s.words)
}

// Count returns the number of set bits.
func (s *Sparse) Count() int {
	var n int
	for _, word := range s.words {
		n += bits.OnesCount64(word)
	}
	return n
}

// Dense converts s into a BitVector.
func (s *Sparse) Dense() *BitVector {
	v := NewSized(s.length)
	for idx, word := range s.words {
		v.s.words[idx] = word
	}
	return v
}

// SparseOf converts any readable vector into a Sparse one.
func SparseOf(r Readable) *Sparse {
	s := NewSparseSized(r.Len())
	for i := 0; i < r.Len(); i++ {
		if r.BitAt(i) {
			s.set(i, true)
		}
	}
	return s
}

func (s *Sparse) Copy() *Sparse {
	out := &Sparse{words: make(map[int]uint64, len(s.words)), length: s.length}
	for idx, word := range s.words {
		out.words[idx] = word
	}
	return out
}

func (s *Sparse) String() string {
	return "Sparse{" + ToBinaryString(s) + "}"
}
