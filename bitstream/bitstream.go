// Package bitstream provides wrappers for io.Writer and io.Reader to allow
// bit-granularity access to the stream, following the LSB pattern, where
// least-significant bits are written/read first.
package bitstream

type Bit bool

const (
	Zero Bit = false
	One  Bit = true
)

// Reader is the sequential read contract shared by BitReader and
// SliceReader.
type Reader interface {
	ReadBit() (Bit, error)
	ReadByte() (byte, error)
	ReadBits(n int) (uint32, error)
	ReadBitsLong(n int) (uint64, error)
	Position() uint64
}

// Compile time check.
var (
	_ Reader = (*BitReader)(nil)
	_ Reader = (*SliceReader)(nil)
)

// Flusher is implemented by sinks that buffer, such as bufio.Writer.
type Flusher interface {
	Flush() error
}
