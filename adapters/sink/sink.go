// Package sink provides Sink implementations that write identifiers as text.
package sink

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/artpar/taxid/domain/taxid"
	"github.com/artpar/taxid/ports"
)

// DefaultBufferSize is the write buffer used when none is configured.
const DefaultBufferSize = 64 * 1024

// Lines writes one identifier per line to an io.Writer.
// Not safe for concurrent use.
type Lines struct {
	w       *bufio.Writer
	closer  io.Closer
	line    [taxid.Length + 1]byte
	written int64
}

// NewLines creates a line sink over w with the given buffer size.
func NewLines(w io.Writer, bufSize int) *Lines {
	if bufSize <= 0 {
		bufSize = DefaultBufferSize
	}
	s := &Lines{w: bufio.NewWriterSize(w, bufSize)}
	s.line[taxid.Length] = '\n'
	return s
}

// Create creates (or truncates) the file at path and returns a sink
// writing to it. Close flushes and closes the file.
func Create(path string, bufSize int) (*Lines, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	s := NewLines(f, bufSize)
	s.closer = f
	return s, nil
}

// Write appends id and a newline.
func (s *Lines) Write(id taxid.ID) error {
	for i, d := range id.Digits() {
		s.line[i] = '0' + d
	}
	if _, err := s.w.Write(s.line[:]); err != nil {
		return err
	}
	s.written++
	return nil
}

// Flush writes buffered lines to the underlying writer.
func (s *Lines) Flush() error {
	return s.w.Flush()
}

// Written returns the number of identifiers accepted so far.
func (s *Lines) Written() int64 {
	return s.written
}

// Close flushes and, for sinks created by Create, closes the file.
func (s *Lines) Close() error {
	err := s.Flush()
	if s.closer != nil {
		if cerr := s.closer.Close(); err == nil {
			err = cerr
		}
		s.closer = nil
	}
	return err
}

// Ensure interface compliance.
var (
	_ ports.Sink    = (*Lines)(nil)
	_ ports.Flusher = (*Lines)(nil)
)
