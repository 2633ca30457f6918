package shared

import (
	"fmt"
	"math/bits"
)

const (
	IntBits  = 32
	LongBits = 64
)

// FitMask returns a value with the n low bits set, for n in [0, 64].
func FitMask(n int) uint64 {
	if n == 0 {
		return 0
	}
	if n < 0 || n > LongBits {
		panic(fmt.Sprintf("mask width out of range: %d", n))
	}
	return ^uint64(0) >> (LongBits - n)
}

// FitIntegerMask is the 32-bit analogue of FitMask, for n in [0, 32].
func FitIntegerMask(n int) uint32 {
	if n == 0 {
		return 0
	}
	if n < 0 || n > IntBits {
		panic(fmt.Sprintf("mask width out of range: %d", n))
	}
	return ^uint32(0) >> (IntBits - n)
}

// HighestBit returns the index of the most significant set bit of v,
// or -1 if v is zero.
func HighestBit(v uint64) int {
	return bits.Len64(v) - 1
}

// NumBits returns the number of bits required to represent v.
func NumBits(v uint64) int {
	return HighestBit(v) + 1
}
