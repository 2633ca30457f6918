package persistence

import (
	"fmt"

	"github.com/psygate/bitvectors/bitvector"
	"github.com/psygate/bitvectors/shared"
)

// A vector file holds the bit length as a 64-bit LSB-first header followed
// by the bits themselves, zero-padded to a whole byte.
const lengthBits = shared.LongBits

// WriteVector stores v in the file name, replacing its contents.
func WriteVector(name string, v bitvector.Readable, opts ...Option) error {
	return WithWriter(name, func(w *FileWriter) error {
		if err := w.WriteBitsLong(uint64(v.Len()), lengthBits); err != nil {
			return err
		}
		for pos := 0; pos < v.Len(); pos += shared.LongBits {
			n := min(shared.LongBits, v.Len()-pos)
			word, err := v.GetBitsLong(pos, n)
			if err != nil {
				return err
			}
			if err := w.WriteBitsLong(word, n); err != nil {
				return err
			}
		}
		return nil
	}, opts...)
}

// ReadVector loads a vector stored by WriteVector.
func ReadVector(name string, opts ...Option) (*bitvector.BitVector, error) {
	var v *bitvector.BitVector
	err := WithReader(name, func(r *FileReader) error {
		length, err := r.ReadBitsLong(lengthBits)
		if err != nil {
			return fmt.Errorf("failed to read vector length: %w", err)
		}
		remaining, err := r.Remaining()
		if err != nil {
			return err
		}
		if length > remaining {
			return fmt.Errorf("%w: vector of %d bits does not fit in the %d bits left in %v",
				shared.ErrInvalidArgument, length, remaining, name)
		}

		v = bitvector.New()
		for done := uint64(0); done < length; {
			n := min(uint64(shared.LongBits), length-done)
			word, err := r.ReadBitsLong(int(n))
			if err != nil {
				return err
			}
			if err := v.WriteBitsLong(word, int(n)); err != nil {
				return err
			}
			done += n
		}
		return nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	return v, nil
}
