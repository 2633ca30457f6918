package persistence

import (
	"bufio"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/psygate/bitvectors/bitstream"
)

// FileReader reads bits from a file through a buffered BitReader.
type FileReader struct {
	*bitstream.BitReader

	file   *os.File
	logger *zap.Logger
}

// A compile time check to ensure that FileReader fully implements the bitstream.Reader interface.
var _ bitstream.Reader = (*FileReader)(nil)

func NewFileReader(name string, opts ...Option) (*FileReader, error) {
	o := applyOptions(opts)

	file, err := os.OpenFile(name, os.O_RDONLY, OwnerReadWrite)
	if err != nil {
		return nil, fmt.Errorf("failed to open file for bit reader: %w", err)
	}
	o.logger.Debug("opened bit reader", zap.String("file", name))

	return &FileReader{
		BitReader: bitstream.NewReader(bufio.NewReaderSize(file, o.bufferSize)),
		file:      file,
		logger:    o.logger,
	}, nil
}

// Width returns the size of the file in bits.
func (r *FileReader) Width() (uint64, error) {
	info, err := r.file.Stat()
	if err != nil {
		return 0, err
	}
	return uint64(info.Size()) * 8, nil
}

// Remaining returns the number of bits not yet consumed.
func (r *FileReader) Remaining() (uint64, error) {
	width, err := r.Width()
	if err != nil {
		return 0, err
	}
	return width - r.Position(), nil
}

func (r *FileReader) Close() error {
	r.logger.Debug("closing bit reader", zap.String("file", r.file.Name()), zap.Uint64("position", r.Position()))
	return r.file.Close()
}
