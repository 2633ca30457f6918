package persistence

import (
	"bufio"
	"fmt"
	"os"

	"code.cloudfoundry.org/bytefmt"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/psygate/bitvectors/bitstream"
)

// FileWriter writes bits to a file through a buffered BitWriter. The file
// is truncated on open.
type FileWriter struct {
	*bitstream.BitWriter

	file   *os.File
	logger *zap.Logger
}

func NewFileWriter(name string, opts ...Option) (*FileWriter, error) {
	o := applyOptions(opts)

	f, err := os.OpenFile(name, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, OwnerReadWrite)
	if err != nil {
		return nil, fmt.Errorf("failed to open file for bit writer: %w", err)
	}
	o.logger.Debug("opened bit writer", zap.String("file", name))

	return &FileWriter{
		BitWriter: bitstream.NewWriter(bufio.NewWriterSize(f, o.bufferSize)),
		file:      f,
		logger:    o.logger,
	}, nil
}

// Close zero-pads the last partial byte, flushes the buffer and closes the
// file. The file is closed even when flushing fails.
func (w *FileWriter) Close() error {
	err := w.BitWriter.Flush()
	if err != nil {
		err = fmt.Errorf("failed to flush bit writer: %w", err)
	}
	err = multierr.Append(err, w.file.Close())

	w.logger.Debug("closed bit writer",
		zap.String("file", w.file.Name()),
		zap.Uint64("bits", w.Position()),
		zap.String("size", bytefmt.ByteSize((w.Position()+7)/8)),
		zap.Error(err),
	)
	return err
}
