package bitstream_test

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/psygate/bitvectors/bitstream"
	"github.com/psygate/bitvectors/shared"
)

const (
	Zero = bitstream.Zero
	One  = bitstream.One
)

var (
	NewWriter = bitstream.NewWriter
	NewReader = bitstream.NewReader
	NumBits   = shared.NumBits
)

func TestBitsLong(t *testing.T) {
	req := require.New(t)

	buf := bytes.NewBuffer(nil)
	w := NewWriter(buf)
	r := NewReader(buf)
	from := uint64(1)
	to := uint64(1 << 15)

	// Write.
	for i := from; i < to; i++ {
		err := w.WriteBitsLong(i, NumBits(i))
		req.NoError(err)
		err = w.WriteBitsLong(i, 64)
		req.NoError(err)
	}
	err := w.Flush()
	req.NoError(err)

	// Read.
	for i := from; i < to; i++ {
		num, err := r.ReadBitsLong(NumBits(i))
		req.NoError(err)
		req.Equal(i, num)
		num, err = r.ReadBitsLong(64)
		req.NoError(err)
		req.Equal(i, num)
	}
}

func TestBitsLong_Mixed(t *testing.T) {
	req := require.New(t)

	from := uint64(1)
	to := uint64(1 << 12)

	for i := from; i < to; i++ {
		buf := bytes.NewBuffer(nil)
		w := NewWriter(buf)
		r := NewReader(buf)

		// Write 3 arbitrary bits.
		req.NoError(w.WriteBit(One))
		req.NoError(w.WriteBit(Zero))
		req.NoError(w.WriteBit(One))

		// Write i.
		numBits := NumBits(i)
		req.NoError(w.WriteBitsLong(i, numBits))

		// Write the 3 LS bits of 0xFF.
		req.NoError(w.WriteBytes([]byte{0xFF}, 3))

		// Write i again.
		req.NoError(w.WriteBits(uint32(i), numBits))

		req.NoError(w.WriteBit(One))
		req.NoError(w.Flush())

		// Read.
		bit, err := r.ReadBit()
		req.NoError(err)
		req.Equal(One, bit)
		bit, err = r.ReadBit()
		req.NoError(err)
		req.Equal(Zero, bit)
		bit, err = r.ReadBit()
		req.NoError(err)
		req.Equal(One, bit)

		num, err := r.ReadBitsLong(numBits)
		req.NoError(err)
		req.Equal(i, num)

		data, err := r.ReadBytes(3)
		req.NoError(err)
		req.Equal([]byte{0x07}, data)

		num32, err := r.ReadBits(numBits)
		req.NoError(err)
		req.Equal(uint32(i), num32)

		bit, err = r.ReadBit()
		req.NoError(err)
		req.Equal(One, bit)

		req.Equal(uint64(3+numBits+3+numBits+1), r.Position())
	}
}

func TestString(t *testing.T) {
	req := require.New(t)

	s := "a string"
	br := NewReader(strings.NewReader(s))
	buf := bytes.NewBuffer(nil)
	bw := NewWriter(buf)

	for {
		bit, err := br.ReadBit()
		if err == io.EOF {
			break
		}
		req.NoError(err)
		req.NoError(bw.WriteBit(bit))
	}

	req.Equal(s, buf.String())
	req.Equal(uint64(len(s)*8), br.Position())
	req.Equal(uint64(len(s)*8), bw.Position())
}

func TestAlignment(t *testing.T) {
	req := require.New(t)

	s := "a string!" // 9 bytes, 72 bits.
	batchSize := 3   // 72 is divisible by 3.
	br := NewReader(strings.NewReader(s))
	buf := bytes.NewBuffer(nil)
	bw := NewWriter(buf)

	for {
		data, err := br.ReadBytes(batchSize)
		if err == io.EOF {
			break
		}
		req.NoError(err)
		req.NoError(bw.WriteBytes(data, batchSize))
	}

	req.Equal(s, buf.String())
}

// A source without io.ByteReader goes through the one-byte read path.
func TestReader_PlainSource(t *testing.T) {
	req := require.New(t)

	br := NewReader(iotest.OneByteReader(bytes.NewReader([]byte{0x01, 0x02, 0x03, 0x04})))
	val, err := br.ReadBits(32)
	req.NoError(err)
	req.Equal(uint32(0x04030201), val)

	_, err = br.ReadBit()
	req.Equal(io.EOF, err)
}

func TestReadBits_SplitByte(t *testing.T) {
	req := require.New(t)

	br := NewReader(bytes.NewReader([]byte{0xFF, 0x01}))
	val, err := br.ReadBits(2)
	req.NoError(err)
	req.Equal(uint32(0x3), val)
	val, err = br.ReadBits(6)
	req.NoError(err)
	req.Equal(uint32(0xFF>>2), val)
	val, err = br.ReadBits(8)
	req.NoError(err)
	req.Equal(uint32(1), val)
}

func TestReadBits_Shifted(t *testing.T) {
	req := require.New(t)

	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}
	br := NewReader(bytes.NewReader(data))

	val, err := br.ReadBits(4)
	req.NoError(err)
	req.Equal(uint32(data[0]&0xF), val)
	req.Equal(uint64(4), br.Position())

	for i := 0; i < len(data)-1; i++ {
		val, err := br.ReadBits(8)
		req.NoError(err)
		req.Equal(uint64(4+(i+1)*8), br.Position())

		want := uint32(data[i]>>4) | uint32(data[i+1]&0xF)<<4
		req.Equal(want, val, "byte %d", i)
	}
	req.Equal(4, br.Buffered())
}

func TestReadBits_ZeroWidth(t *testing.T) {
	req := require.New(t)

	br := NewReader(iotest.ErrReader(errors.New("must not be read")))
	val, err := br.ReadBits(0)
	req.NoError(err)
	req.Zero(val)
	val64, err := br.ReadBitsLong(0)
	req.NoError(err)
	req.Zero(val64)
	req.Zero(br.Position())
}

func TestReadBits_InvalidWidth(t *testing.T) {
	req := require.New(t)

	br := NewReader(bytes.NewReader(make([]byte, 16)))
	_, err := br.ReadBits(33)
	req.ErrorIs(err, shared.ErrInvalidWidth)
	_, err = br.ReadBitsLong(65)
	req.ErrorIs(err, shared.ErrInvalidWidth)
	_, err = br.ReadBits(-1)
	req.ErrorIs(err, shared.ErrInvalidWidth)
	req.Zero(br.Position())
}

func TestEOF_0(t *testing.T) {
	req := require.New(t)

	_, err := NewReader(bytes.NewReader(nil)).ReadBit()
	req.Equal(io.EOF, err)
	_, err = NewReader(bytes.NewReader(nil)).ReadByte()
	req.Equal(io.EOF, err)
	_, err = NewReader(bytes.NewReader([]byte{})).ReadBits(1)
	req.Equal(io.EOF, err)
	_, err = NewReader(bytes.NewReader([]byte{})).ReadBytes(3)
	req.Equal(io.EOF, err)
}

func TestEOF_1(t *testing.T) {
	req := require.New(t)

	br := NewReader(strings.NewReader("abc"))

	b, err := br.ReadByte()
	req.NoError(err)
	req.Equal(byte('a'), b)
	b, err = br.ReadByte()
	req.NoError(err)
	req.Equal(byte('b'), b)
	b, err = br.ReadByte()
	req.NoError(err)
	req.Equal(byte('c'), b)

	b, err = br.ReadByte()
	req.Equal(io.EOF, err)
	req.Equal(byte(0), b)
}

func TestEOF_Partial(t *testing.T) {
	req := require.New(t)

	br := NewReader(bytes.NewReader([]byte{0xAB}))
	_, err := br.ReadBits(4)
	req.NoError(err)

	_, err = br.ReadBits(9)
	req.ErrorIs(err, io.ErrUnexpectedEOF)
	req.Equal(uint64(4), br.Position(), "failed read does not move the position")

	br = NewReader(bytes.NewReader([]byte{0x00}))
	_, err = br.ReadBits(9)
	req.ErrorIs(err, io.ErrUnexpectedEOF)
	req.Zero(br.Position())

	br = NewReader(bytes.NewReader([]byte{0x00}))
	_, err = br.ReadBytes(12)
	req.ErrorIs(err, io.ErrUnexpectedEOF)
	req.Zero(br.Position())
}

func TestEOF_2(t *testing.T) {
	req := require.New(t)

	br := NewReader(bytes.NewReader([]byte{0x0F}))
	buf := bytes.NewBuffer(nil)
	bw := NewWriter(buf)

	for i := 0; i < 4; i++ {
		bit, err := br.ReadBit()
		req.NoError(err)
		req.NoError(bw.WriteBit(bit))
	}

	req.NoError(bw.Pad(One))
	req.NoError(bw.WriteByte(0xAA))

	req.Equal([]byte{0xFF, 0xAA}, buf.Bytes())
	req.Equal(uint64(12), bw.Position(), "padding is not counted")
}

func TestAlign(t *testing.T) {
	req := require.New(t)

	br := NewReader(bytes.NewReader([]byte{0xFF, 0x5A}))
	_, err := br.ReadBits(3)
	req.NoError(err)
	req.Equal(5, br.Buffered())

	req.Equal(5, br.Align())
	req.Equal(uint64(8), br.Position())
	req.Zero(br.Align())

	b, err := br.ReadByte()
	req.NoError(err)
	req.Equal(byte(0x5A), b)
}

func TestWriter_FourBitsThenClose(t *testing.T) {
	req := require.New(t)

	buf := bytes.NewBuffer(nil)
	w := NewWriter(buf)
	req.NoError(w.WriteBits(0xA, 4))
	req.Empty(buf.Bytes(), "partial byte is buffered")
	req.Equal(4, w.Buffered())
	req.Equal(uint64(4), w.Position())

	req.NoError(w.Close())
	req.Equal([]byte{0x0A}, buf.Bytes())
}

func TestWriter_LittleEndian(t *testing.T) {
	req := require.New(t)

	buf := bytes.NewBuffer(nil)
	w := NewWriter(buf)
	req.NoError(w.WriteBitsLong(0x0807060504030201, 64))
	req.Equal([]byte{1, 2, 3, 4, 5, 6, 7, 8}, buf.Bytes())

	req.NoError(w.WriteBits(0xFFFFFFFF, 32))
	req.Equal(uint64(96), w.Position())
}

func TestWriter_InvalidArguments(t *testing.T) {
	req := require.New(t)

	buf := bytes.NewBuffer(nil)
	w := NewWriter(buf)

	req.ErrorIs(w.WriteBits(0, 33), shared.ErrInvalidWidth)
	req.ErrorIs(w.WriteBitsLong(0, 65), shared.ErrInvalidWidth)
	req.ErrorIs(w.WriteBytes([]byte{0}, 9), shared.ErrOutOfBounds)
	req.Zero(w.Position())

	// Width errors are not sticky.
	req.NoError(w.WriteByte(0x42))
	req.Equal([]byte{0x42}, buf.Bytes())
}

func TestWriter_FlushesBufferedSink(t *testing.T) {
	req := require.New(t)

	buf := bytes.NewBuffer(nil)
	sink := bufio.NewWriter(buf)
	w := NewWriter(sink)

	req.NoError(w.WriteBits(0x3, 2))
	req.NoError(w.WriteByte(0xFF))
	req.Zero(buf.Len())

	req.NoError(w.Flush())
	req.Equal([]byte{0xFF, 0x03}, buf.Bytes())
}

func TestRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		widths := rapid.SliceOfN(rapid.IntRange(0, 64), 1, 50).Draw(t, "widths")
		values := make([]uint64, len(widths))

		buf := bytes.NewBuffer(nil)
		w := NewWriter(buf)
		for i, width := range widths {
			values[i] = rapid.Uint64().Draw(t, "value")
			if err := w.WriteBitsLong(values[i], width); err != nil {
				t.Fatal(err)
			}
		}
		if err := w.Close(); err != nil {
			t.Fatal(err)
		}

		r := NewReader(buf)
		for i, width := range widths {
			got, err := r.ReadBitsLong(width)
			if err != nil {
				t.Fatal(err)
			}
			if want := values[i] & shared.FitMask(width); got != want {
				t.Fatalf("value %d: got %#x, expected %#x", i, got, want)
			}
		}
		if r.Position() != w.Position() {
			t.Fatalf("reader at %d, writer at %d", r.Position(), w.Position())
		}
	})
}

func TestBadWriter_0(t *testing.T) {
	req := require.New(t)

	bw := NewWriter(&badWriter{})
	for i := 0; i < 7; i++ {
		req.NoError(bw.WriteBit(One))
	}
	err := bw.WriteBit(One)
	req.Equal(ErrBadWriter, err)

	// The error is sticky.
	req.Equal(ErrBadWriter, bw.WriteBit(Zero))
	req.Equal(ErrBadWriter, bw.Flush())
}

func TestBadWriter_1(t *testing.T) {
	req := require.New(t)

	bw := NewWriter(&badWriter{})
	err := bw.WriteBitsLong(256, 9)
	req.Equal(ErrBadWriter, err)
}

func TestBadWriter_ShortWrite(t *testing.T) {
	req := require.New(t)

	bw := NewWriter(&shortWriter{})
	err := bw.WriteByte(0xFF)
	req.ErrorIs(err, io.ErrShortWrite)
}

func TestClose_ReportsBothErrors(t *testing.T) {
	req := require.New(t)

	bw := NewWriter(&badCloser{})
	req.NoError(bw.WriteBit(One))

	err := bw.Close()
	req.ErrorIs(err, ErrBadWriter)
	req.ErrorIs(err, errBadClose)
}

type badWriter struct{}

var ErrBadWriter = errors.New("bad writer")

func (w *badWriter) Write(p []byte) (n int, err error) {
	return 0, ErrBadWriter
}

type shortWriter struct{}

func (w *shortWriter) Write(p []byte) (n int, err error) {
	return 0, nil
}

var errBadClose = errors.New("bad close")

type badCloser struct {
	badWriter
}

func (c *badCloser) Close() error {
	return errBadClose
}
