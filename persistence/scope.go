package persistence

import (
	"go.uber.org/multierr"
)

// WithWriter opens name for writing, passes the writer to fn and closes it
// afterwards. The writer is flushed and closed whether fn returns normally,
// returns an error or panics.
func WithWriter(name string, fn func(w *FileWriter) error, opts ...Option) (err error) {
	w, err := NewFileWriter(name, opts...)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, w.Close())
	}()

	return fn(w)
}

// WithReader opens name for reading, passes the reader to fn and closes it
// afterwards.
func WithReader(name string, fn func(r *FileReader) error, opts ...Option) (err error) {
	r, err := NewFileReader(name, opts...)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, r.Close())
	}()

	return fn(r)
}
