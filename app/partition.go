package app

import (
	"fmt"

	"github.com/artpar/taxid/domain/taxid"
)

// partition is one worker's slice of the identifier space: the leading
// digits it owns and how many unique identifiers it must deliver.
type partition struct {
	worker int // 1-based tag
	owns   [10]bool
	digits int
	share  int
}

// planPartitions deals the leading digits 1-9 round-robin over workers
// and splits n evenly, giving the remainder to the first workers. Owned
// digit sets are pairwise disjoint, so per-worker dedup is sufficient.
func planPartitions(n, workers int) ([]partition, error) {
	if workers < 1 || workers > MaxWorkers {
		return nil, ErrInvalidWorkers
	}

	parts := make([]partition, workers)
	for w := range parts {
		parts[w].worker = w + 1
	}
	for d := 1; d <= 9; d++ {
		p := &parts[(d-1)%workers]
		p.owns[d] = true
		p.digits++
	}

	for w := range parts {
		p := &parts[w]
		p.share = n / workers
		if w < n%workers {
			p.share++
		}
		if capacity := p.digits * taxid.PartitionCapacity; p.share > capacity {
			return nil, fmt.Errorf("%w: worker %d needs %d of %d", ErrCountExceedsCapacity, p.worker, p.share, capacity)
		}
	}

	return parts, nil
}
