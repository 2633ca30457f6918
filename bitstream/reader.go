package bitstream

import (
	"io"

	"github.com/psygate/bitvectors/shared"
)

// BitReader reads bits from an io.Reader.
type BitReader struct {
	stream     io.Reader
	byteReader io.ByteReader
	pending    [1]byte
	bits       uint8 // unread bits held in pending, always < 8 between calls
	position   uint64
}

// NewReader returns a new instance of BitReader. When r is also an
// io.ByteReader (bufio.Reader, bytes.Reader) bytes are pulled through it.
func NewReader(r io.Reader) *BitReader {
	br := new(BitReader)
	br.stream = r
	br.byteReader, _ = r.(io.ByteReader)
	return br
}

// ReadBits reads the next n bits, n in [0, 32], LSB first.
func (br *BitReader) ReadBits(n int) (uint32, error) {
	if err := shared.ValidateWidth("read bits", n, shared.IntBits); err != nil {
		return 0, err
	}
	val, err := br.read(n)
	return uint32(val), err
}

// ReadBitsLong reads the next n bits, n in [0, 64], LSB first.
func (br *BitReader) ReadBitsLong(n int) (uint64, error) {
	if err := shared.ValidateWidth("read bits long", n, shared.LongBits); err != nil {
		return 0, err
	}
	return br.read(n)
}

// ReadBit reads the next single bit from the stream.
func (br *BitReader) ReadBit() (Bit, error) {
	val, err := br.read(1)
	return val == 1, err
}

// ReadByte reads the next 8 bits from the stream, regardless of the
// alignment. If the byte is split, the LSB pattern is followed in bit-groups.
func (br *BitReader) ReadByte() (byte, error) {
	val, err := br.read(8)
	return byte(val), err
}

// ReadBytes reads the next numBits from the stream, regardless of the
// alignment. The last byte holds the trailing numBits%8 bits in its LS bits.
func (br *BitReader) ReadBytes(numBits int) ([]byte, error) {
	if numBits < 0 {
		return nil, &shared.BoundsError{Op: "read bytes", Index: int(br.position), Length: numBits}
	}

	data := make([]byte, (numBits+7)/8)
	var done int
	for i := range data {
		n := min(numBits-done, 8)
		val, err := br.next(n)
		if err != nil {
			if err == io.EOF && done > 0 {
				err = io.ErrUnexpectedEOF
			}
			return nil, err
		}
		data[i] = byte(val)
		done += n
	}

	br.position += uint64(numBits)
	return data, nil
}

// Align drops the bits left over from a partially consumed byte, so the
// next read starts at a byte boundary of the source. It returns the number
// of bits skipped.
func (br *BitReader) Align() int {
	skipped := int(br.bits)
	br.position += uint64(skipped)
	br.pending[0], br.bits = 0, 0
	return skipped
}

// Position returns the number of bits consumed so far.
func (br *BitReader) Position() uint64 {
	return br.position
}

// Buffered returns the number of bits held from the last byte pulled.
func (br *BitReader) Buffered() int {
	return int(br.bits)
}

// Close releases the source if it is an io.Closer.
func (br *BitReader) Close() error {
	if c, ok := br.stream.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (br *BitReader) read(n int) (uint64, error) {
	val, err := br.next(n)
	if err != nil {
		return 0, err
	}
	br.position += uint64(n)
	return val, nil
}

// next assembles n bits, n in [0, 64], without moving the position. A
// source that ends before the first bit gives io.EOF, one that ends midway
// gives io.ErrUnexpectedEOF; either way the bits gathered are discarded.
func (br *BitReader) next(n int) (uint64, error) {
	var val uint64
	var got int

	for got < n {
		if br.bits == 0 {
			byt, err := br.fill()
			if err != nil {
				if err == io.EOF && got > 0 {
					err = io.ErrUnexpectedEOF
				}
				return 0, err
			}
			br.pending[0] = byt
			br.bits = 8
		}

		take := min(n-got, int(br.bits))
		val |= (uint64(br.pending[0]) & shared.FitMask(take)) << uint(got)

		// Remove the consumed LS bits.
		br.pending[0] = byte(uint(br.pending[0]) >> uint(take))
		br.bits -= uint8(take)
		got += take
	}

	return val, nil
}

func (br *BitReader) fill() (byte, error) {
	if br.byteReader != nil {
		return br.byteReader.ReadByte()
	}
	var buf [1]byte
	if _, err := io.ReadFull(br.stream, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}
