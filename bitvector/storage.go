package bitvector

import "github.com/psygate/bitvectors/shared"

const wordBits = shared.LongBits

// storage is a packed sequence of 64-bit words holding length bits,
// least-significant bit first within each word.
//
// len(words) is always the minimum number of words needed for length bits,
// and the bits of the last word beyond length are always zero.
type storage struct {
	words  []uint64
	length int
}

func wordsFor(length int) int {
	return (length + wordBits - 1) / wordBits
}

func newStorage(length int) storage {
	return storage{words: make([]uint64, wordsFor(length)), length: length}
}

// get returns the bit at pos. pos must lie within [0, length).
func (s *storage) get(pos int) bool {
	return (s.words[pos/wordBits]>>(uint(pos)%wordBits))&1 == 1
}

// set writes the bit at pos in place. pos must lie within [0, length).
func (s *storage) set(pos int, bit bool) {
	mask := uint64(1) << (uint(pos) % wordBits)
	if bit {
		s.words[pos/wordBits] |= mask
	} else {
		s.words[pos/wordBits] &^= mask
	}
}

// appendBit writes bit at position length, growing the word slice by
// exactly one word when it is full.
func (s *storage) appendBit(bit bool) {
	if s.length == len(s.words)*wordBits {
		grown := make([]uint64, len(s.words)+1)
		copy(grown, s.words)
		s.words = grown
	}
	s.length++
	s.set(s.length-1, bit)
}

func (s *storage) word(i int) uint64 {
	return s.words[i]
}

// trim clears the bits of the last word that lie beyond length.
func (s *storage) trim() {
	if rem := s.length % wordBits; rem != 0 {
		s.words[len(s.words)-1] &= shared.FitMask(rem)
	}
}

func (s *storage) clone() storage {
	words := make([]uint64, len(s.words))
	copy(words, s.words)
	return storage{words: words, length: s.length}
}
