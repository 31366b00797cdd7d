// Package random provides Random implementations.
package random

import (
	crand "crypto/rand"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"

	"github.com/artpar/taxid/ports"
)

// New returns a ChaCha8 generator seeded from crypto/rand.
// The result is not safe for concurrent use.
func New() *rand.Rand {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		panic(fmt.Sprintf("crypto/rand failed: %v", err))
	}
	return rand.New(rand.NewChaCha8(seed))
}

// Factory creates independently seeded generators, one per call.
func Factory() ports.RandomFactory {
	return func() ports.Random {
		return New()
	}
}

// NewSeeded returns a deterministic PCG generator.
func NewSeeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// SeededFactory creates deterministic generators; the n-th call is seeded
// with seed+n.
func SeededFactory(seed uint64) ports.RandomFactory {
	var n atomic.Uint64
	return func() ports.Random {
		return NewSeeded(seed + n.Add(1) - 1)
	}
}

// Fake provides deterministic randomness for testing.
type Fake struct {
	mu      sync.Mutex
	counter int
	values  []int // Preset values to return from IntN
	index   int
}

// NewFake creates a fake random source.
func NewFake() *Fake {
	return &Fake{}
}

// WithValues sets preset values to return from IntN, reduced mod n.
func (f *Fake) WithValues(values ...int) *Fake {
	f.values = values
	f.index = 0
	return f
}

// IntN returns the next preset value or a counter-based one.
func (f *Fake) IntN(n int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.nextLocked(n)
}

// Shuffle runs a Fisher-Yates shuffle driven by IntN.
func (f *Fake) Shuffle(n int, swap func(i, j int)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := n - 1; i > 0; i-- {
		swap(i, f.nextLocked(i+1))
	}
}

func (f *Fake) nextLocked(n int) int {
	if f.index < len(f.values) {
		v := f.values[f.index]
		f.index++
		return v % n
	}

	f.counter++
	return f.counter % n
}

// Remaining returns how many preset values have not been consumed.
func (f *Fake) Remaining() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.values) - f.index
}

// Reset resets the fake to initial state.
func (f *Fake) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counter = 0
	f.index = 0
}

// Ensure interface compliance.
var (
	_ ports.Random = (*rand.Rand)(nil)
	_ ports.Random = (*Fake)(nil)
)
