// Package memory provides in-memory implementations for testing.
package memory

import (
	"errors"
	"sync"

	"github.com/artpar/taxid/domain/taxid"
	"github.com/artpar/taxid/ports"
)

// ErrSinkFull is returned once a Sink configured with FailAfter is full.
var ErrSinkFull = errors.New("memory sink: write limit reached")

// Sink is an in-memory implementation of ports.Sink that records
// identifiers in arrival order.
type Sink struct {
	mu        sync.RWMutex
	ids       []taxid.ID
	failAfter int // 0 = never fail
	flushErr  error
	flushes   int
}

// NewSink creates a new in-memory sink.
func NewSink() *Sink {
	return &Sink{}
}

// FailAfter makes Write return ErrSinkFull once n identifiers are stored.
func (s *Sink) FailAfter(n int) *Sink {
	s.failAfter = n
	return s
}

// FailFlush makes Flush return err.
func (s *Sink) FailFlush(err error) *Sink {
	s.flushErr = err
	return s
}

// Write records id.
func (s *Sink) Write(id taxid.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failAfter > 0 && len(s.ids) >= s.failAfter {
		return ErrSinkFull
	}
	s.ids = append(s.ids, id)
	return nil
}

// Flush counts flushes and returns the configured flush error.
func (s *Sink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushes++
	return s.flushErr
}

// IDs returns a copy of the recorded identifiers in arrival order.
func (s *Sink) IDs() []taxid.ID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]taxid.ID, len(s.ids))
	copy(result, s.ids)
	return result
}

// Len returns the number of recorded identifiers.
func (s *Sink) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

// Flushes returns how many times Flush was called.
func (s *Sink) Flushes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flushes
}

// Ensure interface compliance.
var (
	_ ports.Sink    = (*Sink)(nil)
	_ ports.Flusher = (*Sink)(nil)
)
