package bitstream

import (
	"io"

	"go.uber.org/multierr"

	"github.com/psygate/bitvectors/shared"
)

// BitWriter writes bits to an io.Writer. After the first error from the
// underlying writer, all subsequent writes return that error.
type BitWriter struct {
	stream   io.Writer
	pending  [1]byte
	bits     uint8 // bits held in pending, always < 8 between calls
	position uint64
	err      error
}

// NewWriter returns a new instance of BitWriter.
func NewWriter(w io.Writer) *BitWriter {
	bw := new(BitWriter)
	bw.stream = w
	return bw
}

// WriteBits writes the n LS bits of val, n in [0, 32], LSB first.
func (bw *BitWriter) WriteBits(val uint32, n int) error {
	if err := shared.ValidateWidth("write bits", n, shared.IntBits); err != nil {
		return err
	}
	return bw.write(uint64(val), n)
}

// WriteBitsLong writes the n LS bits of val, n in [0, 64], LSB first.
func (bw *BitWriter) WriteBitsLong(val uint64, n int) error {
	if err := shared.ValidateWidth("write bits long", n, shared.LongBits); err != nil {
		return err
	}
	return bw.write(val, n)
}

// WriteBit writes a single bit to the stream.
func (bw *BitWriter) WriteBit(bit Bit) error {
	var val uint64
	if bit {
		val = 1
	}
	return bw.write(val, 1)
}

// WriteByte writes a single byte to the stream, regardless of the alignment.
// If the byte is to be split due to alignment, the LSB pattern is followed in bit-groups.
func (bw *BitWriter) WriteByte(byt byte) error {
	return bw.write(uint64(byt), 8)
}

// WriteBytes writes the first numBits of data to the stream, regardless of the alignment.
// The trailing numBits%8 bits are taken from the LS bits of the last byte used.
func (bw *BitWriter) WriteBytes(data []byte, numBits int) error {
	if numBits < 0 || numBits > len(data)*8 {
		return &shared.BoundsError{Op: "write bytes", Index: 0, Length: numBits, Size: len(data) * 8}
	}

	for idx := 0; numBits > 0; idx++ {
		n := min(numBits, 8)
		if err := bw.write(uint64(data[idx]), n); err != nil {
			return err
		}
		numBits -= n
	}
	return nil
}

// Pad fills the currently pending byte with bit and writes it out. Padding
// does not count towards the position.
func (bw *BitWriter) Pad(bit Bit) error {
	if bw.err != nil {
		return bw.err
	}
	if bw.bits == 0 {
		return nil
	}
	if bit {
		bw.pending[0] |= byte(shared.FitMask(8) << bw.bits)
	}
	return bw.emit()
}

// Flush zero-pads the pending byte, writes it out and flushes the
// underlying writer if it buffers.
func (bw *BitWriter) Flush() error {
	if err := bw.Pad(Zero); err != nil {
		return err
	}
	if f, ok := bw.stream.(Flusher); ok {
		if err := f.Flush(); err != nil {
			bw.err = err
			return err
		}
	}
	return nil
}

// Close flushes the writer and closes the underlying writer if it is an
// io.Closer. Errors from both steps are reported.
func (bw *BitWriter) Close() error {
	err := bw.Flush()
	if c, ok := bw.stream.(io.Closer); ok {
		err = multierr.Append(err, c.Close())
	}
	return err
}

// Position returns the number of bits written so far, excluding padding.
func (bw *BitWriter) Position() uint64 {
	return bw.position
}

// Buffered returns the number of bits waiting for a full byte.
func (bw *BitWriter) Buffered() int {
	return int(bw.bits)
}

func (bw *BitWriter) write(val uint64, n int) error {
	if bw.err != nil {
		return bw.err
	}

	for remaining := n; remaining > 0; {
		take := min(remaining, 8-int(bw.bits))

		// Fill the pending byte MS bits with the LS bits of val.
		bw.pending[0] |= byte((val & shared.FitMask(take)) << bw.bits)
		bw.bits += uint8(take)
		val >>= uint(take)
		remaining -= take

		if bw.bits == 8 {
			if err := bw.emit(); err != nil {
				return err
			}
		}
	}

	bw.position += uint64(n)
	return nil
}

func (bw *BitWriter) emit() error {
	n, err := bw.stream.Write(bw.pending[:])
	if err == nil && n != 1 {
		err = io.ErrShortWrite
	}
	if err != nil {
		bw.err = err
		return err
	}
	bw.pending[0], bw.bits = 0, 0
	return nil
}
