// Package persistence stores bit streams and vectors in files.
package persistence

import (
	"go.uber.org/zap"
)

// OwnerReadWriteExec is a standard owner read / write / exec file permission.
const OwnerReadWriteExec = 0o700

// OwnerReadWrite is a standard owner read / write file permission.
const OwnerReadWrite = 0o600

const defaultBufferSize = 4096

type options struct {
	logger     *zap.Logger
	bufferSize int
}

type Option func(*options)

// WithLogger sets the logger used to report file lifecycle events.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithBufferSize sets the size of the buffer between the bit stream and
// the file. Values below 16 fall back to bufio's minimum.
func WithBufferSize(size int) Option {
	return func(o *options) {
		o.bufferSize = size
	}
}

func applyOptions(opts []Option) *options {
	o := &options{
		logger:     zap.NewNop(),
		bufferSize: defaultBufferSize,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
