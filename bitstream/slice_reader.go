package bitstream

import (
	"errors"
	"fmt"
	"io"

	"github.com/psygate/bitvectors/shared"
)

// ErrNoMark is returned by SliceReader.Reset when no mark was set.
var ErrNoMark = errors.New("mark not set")

// SliceReader reads bits from an in-memory byte slice. Unlike BitReader it
// supports random access, and a read that cannot be satisfied leaves the
// position untouched.
type SliceReader struct {
	data     []byte
	position uint64
	mark     uint64
	marked   bool
}

// NewSliceReader returns a reader positioned at the first bit of data. The
// slice is not copied.
func NewSliceReader(data []byte) *SliceReader {
	return &SliceReader{data: data}
}

// ReadAll drains r into a new SliceReader.
func ReadAll(r io.Reader) (*SliceReader, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewSliceReader(data), nil
}

// Copy returns a reader over the same data with the same position and mark.
func (sr *SliceReader) Copy() *SliceReader {
	cp := *sr
	return &cp
}

func (sr *SliceReader) size() uint64 {
	return uint64(len(sr.data)) * 8
}

// AvailableBits returns the number of bits left to read.
func (sr *SliceReader) AvailableBits() uint64 {
	return sr.size() - sr.position
}

func (sr *SliceReader) Position() uint64 {
	return sr.position
}

// SetPosition moves the reader to pos, which may equal the end of the data.
func (sr *SliceReader) SetPosition(pos uint64) error {
	if pos > sr.size() {
		return &shared.BoundsError{Op: "set position", Index: int(pos), Size: int(sr.size())}
	}
	sr.position = pos
	return nil
}

// Mark remembers the current position for a later Reset.
func (sr *SliceReader) Mark() {
	sr.mark = sr.position
	sr.marked = true
}

// Reset returns to the last marked position.
func (sr *SliceReader) Reset() error {
	if !sr.marked {
		return ErrNoMark
	}
	sr.position = sr.mark
	return nil
}

func (sr *SliceReader) ReadBit() (Bit, error) {
	val, err := sr.read(1)
	return val == 1, err
}

func (sr *SliceReader) ReadByte() (byte, error) {
	val, err := sr.read(8)
	return byte(val), err
}

// ReadBits reads the next n bits, n in [0, 32], LSB first.
func (sr *SliceReader) ReadBits(n int) (uint32, error) {
	if err := shared.ValidateWidth("read bits", n, shared.IntBits); err != nil {
		return 0, err
	}
	val, err := sr.read(n)
	return uint32(val), err
}

// ReadBitsLong reads the next n bits, n in [0, 64], LSB first.
func (sr *SliceReader) ReadBitsLong(n int) (uint64, error) {
	if err := shared.ValidateWidth("read bits long", n, shared.LongBits); err != nil {
		return 0, err
	}
	return sr.read(n)
}

// Read implements io.Reader over the remaining whole bytes. Fewer than 8
// remaining bits read as io.EOF.
func (sr *SliceReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	avail := int(sr.AvailableBits() / 8)
	if avail == 0 {
		return 0, io.EOF
	}
	n := min(len(p), avail)
	for i := 0; i < n; i++ {
		p[i], _ = sr.ReadByte()
	}
	return n, nil
}

// Rest returns the remaining bits packed into bytes, and their number. The
// reader is left at the end of the data.
func (sr *SliceReader) Rest() ([]byte, uint64) {
	size := sr.AvailableBits()
	out := make([]byte, (size+7)/8)
	for i := range out {
		n := min(sr.AvailableBits(), 8)
		val, _ := sr.read(int(n))
		out[i] = byte(val)
	}
	return out, size
}

func (sr *SliceReader) read(n int) (uint64, error) {
	if uint64(n) > sr.AvailableBits() {
		if sr.AvailableBits() == 0 {
			return 0, io.EOF
		}
		return 0, fmt.Errorf("%w: cannot read %d bits at %d; end is at %d",
			io.ErrUnexpectedEOF, n, sr.position, sr.size())
	}

	var val uint64
	for i := 0; i < n; i++ {
		pos := sr.position + uint64(i)
		val |= uint64(sr.data[pos/8]>>(pos%8)&1) << uint(i)
	}
	sr.position += uint64(n)
	return val, nil
}
