package bitstream_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/psygate/bitvectors/bitstream"
	"github.com/psygate/bitvectors/shared"
)

func TestSliceReader_ReadBits(t *testing.T) {
	req := require.New(t)

	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}
	sr := bitstream.NewSliceReader(data)

	for i := 0; i < len(data); i++ {
		val, err := sr.ReadBits(2)
		req.NoError(err)
		req.Equal(uint32(data[i]&0x3), val)
		val, err = sr.ReadBits(6)
		req.NoError(err)
		req.Equal(uint32(data[i]>>2), val)
	}
	req.Zero(sr.AvailableBits())

	_, err := sr.ReadBit()
	req.Equal(io.EOF, err)
}

func TestSliceReader_ReadBitsLong(t *testing.T) {
	req := require.New(t)

	sr := bitstream.NewSliceReader([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9})
	val, err := sr.ReadBitsLong(64)
	req.NoError(err)
	req.Equal(uint64(0x0807060504030201), val)

	_, err = sr.ReadBits(33)
	req.ErrorIs(err, shared.ErrInvalidWidth)
}

func TestSliceReader_FailedReadKeepsPosition(t *testing.T) {
	req := require.New(t)

	sr := bitstream.NewSliceReader([]byte{0xFF})
	_, err := sr.ReadBits(3)
	req.NoError(err)

	_, err = sr.ReadBits(9)
	req.ErrorIs(err, io.ErrUnexpectedEOF)
	req.Equal(uint64(3), sr.Position())

	val, err := sr.ReadBits(5)
	req.NoError(err)
	req.Equal(uint32(0x1F), val)
}

func TestSliceReader_MarkReset(t *testing.T) {
	req := require.New(t)

	sr := bitstream.NewSliceReader([]byte{0xA5, 0x3C})
	req.ErrorIs(sr.Reset(), bitstream.ErrNoMark)

	_, err := sr.ReadBits(4)
	req.NoError(err)
	sr.Mark()

	first, err := sr.ReadBits(8)
	req.NoError(err)
	req.NoError(sr.Reset())
	req.Equal(uint64(4), sr.Position())

	again, err := sr.ReadBits(8)
	req.NoError(err)
	req.Equal(first, again)
	req.Equal(uint32(0xCA), first)
}

func TestSliceReader_SetPosition(t *testing.T) {
	req := require.New(t)

	sr := bitstream.NewSliceReader([]byte{0x00, 0x80})
	req.NoError(sr.SetPosition(15))
	bit, err := sr.ReadBit()
	req.NoError(err)
	req.Equal(bitstream.One, bit)

	req.NoError(sr.SetPosition(16))
	req.Zero(sr.AvailableBits())
	req.ErrorIs(sr.SetPosition(17), shared.ErrOutOfBounds)
}

func TestSliceReader_Rest(t *testing.T) {
	req := require.New(t)

	sr := bitstream.NewSliceReader([]byte{0xF0, 0x0F})
	_, err := sr.ReadBits(4)
	req.NoError(err)

	rest, size := sr.Rest()
	req.Equal(uint64(12), size)
	req.Equal([]byte{0xFF, 0x00}, rest)
	req.Zero(sr.AvailableBits())
}

func TestSliceReader_Copy(t *testing.T) {
	req := require.New(t)

	sr := bitstream.NewSliceReader([]byte{0x01, 0x02})
	cp := sr.Copy()
	_, err := cp.ReadByte()
	req.NoError(err)

	req.Zero(sr.Position())
	req.Equal(uint64(8), cp.Position())
}

// SliceReader is an io.Reader, so a BitReader can be stacked on top of it.
func TestSliceReader_AsSource(t *testing.T) {
	req := require.New(t)

	sr, err := bitstream.ReadAll(bytes.NewReader([]byte("bits")))
	req.NoError(err)

	br := bitstream.NewReader(sr)
	data, err := br.ReadBytes(32)
	req.NoError(err)
	req.Equal("bits", string(data))
	_, err = br.ReadBit()
	req.Equal(io.EOF, err)
}
