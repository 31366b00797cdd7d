// Package ports defines interfaces (contracts) between layers.
// These interfaces enable dependency injection and testability.
// Implementations live in adapters/.
package ports

import (
	"time"

	"github.com/artpar/taxid/domain/taxid"
)

// -----------------------------------------------------------------------------
// Infrastructure Ports
// -----------------------------------------------------------------------------

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

// Random abstracts randomness for testability.
// Implementations are not required to be safe for concurrent use; the
// generator gives every worker its own source.
type Random interface {
	taxid.Source
}

// RandomFactory creates an independent Random for one worker.
type RandomFactory func() Random

// IDGenerator generates unique identifiers for generation runs.
type IDGenerator interface {
	New() string
}

// -----------------------------------------------------------------------------
// Output Ports
// -----------------------------------------------------------------------------

// Sink receives generated identifiers. The generator calls Write from a
// single goroutine only.
type Sink interface {
	Write(id taxid.ID) error
}

// Flusher is implemented by sinks that buffer writes.
type Flusher interface {
	Flush() error
}
