// Package app provides application services that orchestrate domain logic.
package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/artpar/taxid/adapters/metrics"
	"github.com/artpar/taxid/domain/taxid"
	"github.com/artpar/taxid/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Generation modes.
const (
	ModeConcurrent = "concurrent"
	ModeSequential = "sequential"
)

const (
	// MaxWorkers is the number of leading-digit partitions.
	MaxWorkers = 9
	// DefaultBufferSize is the writer channel capacity.
	DefaultBufferSize = 4096

	// Workers publish their counters and check for cancellation this often.
	flushEvery = 1 << 14
)

var (
	ErrInvalidCount         = errors.New("count must not be negative")
	ErrCountExceedsCapacity = errors.New("count exceeds the number of distinct identifiers")
	ErrInvalidWorkers       = fmt.Errorf("workers must be between 1 and %d", MaxWorkers)
	ErrInvalidMode          = errors.New("mode must be 'concurrent' or 'sequential'")
)

// GenerateService produces sets of distinct valid identifiers.
type GenerateService struct {
	random  ports.RandomFactory
	clock   ports.Clock
	idGen   ports.IDGenerator
	metrics *metrics.Collector
	logger  zerolog.Logger

	mode          string
	workers       int
	bufferSize    int
	progressEvery int64
}

// GenerateDeps contains dependencies for GenerateService.
type GenerateDeps struct {
	Random  ports.RandomFactory
	Clock   ports.Clock
	IDGen   ports.IDGenerator
	Metrics *metrics.Collector // nil = private registry
	Logger  zerolog.Logger
}

// GenerateConfig contains configuration for GenerateService.
type GenerateConfig struct {
	Mode          string // "concurrent" (default) or "sequential"
	Workers       int    // 1-9, default 9
	BufferSize    int    // writer channel capacity
	ProgressEvery int64  // log progress every N written identifiers (0 = off)
}

// GenerateResult summarizes one generation run.
type GenerateResult struct {
	RunID           string
	Mode            string
	Workers         int
	Requested       int
	Written         int64
	Generated       int64
	Collisions      int64
	PartitionMisses int64
	Elapsed         time.Duration
}

// NewGenerateService creates a new generate service.
func NewGenerateService(deps GenerateDeps, cfg GenerateConfig) *GenerateService {
	if cfg.Mode == "" {
		cfg.Mode = ModeConcurrent
	}
	if cfg.Workers == 0 {
		cfg.Workers = MaxWorkers
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultBufferSize
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.NewWithRegistry(prometheus.NewRegistry())
	}

	return &GenerateService{
		random:        deps.Random,
		clock:         deps.Clock,
		idGen:         deps.IDGen,
		metrics:       deps.Metrics,
		logger:        deps.Logger,
		mode:          cfg.Mode,
		workers:       cfg.Workers,
		bufferSize:    cfg.BufferSize,
		progressEvery: cfg.ProgressEvery,
	}
}

// runStats is shared by the workers and the writer of one run.
type runStats struct {
	generated  atomic.Int64
	collisions atomic.Int64
	misses     atomic.Int64
	written    atomic.Int64
}

// Generate writes exactly n distinct identifiers to sink. Collisions are
// discarded silently. A sink failure aborts the run and is returned.
// If sink implements ports.Flusher it is flushed after the last write.
func (s *GenerateService) Generate(ctx context.Context, n int, sink ports.Sink) (GenerateResult, error) {
	result := GenerateResult{
		RunID:     s.idGen.New(),
		Mode:      s.mode,
		Workers:   s.workers,
		Requested: n,
	}
	if s.mode == ModeSequential {
		result.Workers = 1
	}

	if err := s.Check(n); err != nil {
		return result, err
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	log := s.logger.With().Str("run_id", result.RunID).Str("mode", s.mode).Logger()
	log.Info().Int("count", n).Int("workers", result.Workers).Msg("generation started")

	var st runStats
	start := s.clock.Now()

	var err error
	if s.mode == ModeSequential {
		err = s.generateSequential(ctx, n, sink, &st, log)
	} else {
		err = s.generateConcurrent(ctx, n, sink, &st, log)
	}

	if err == nil {
		if f, ok := sink.(ports.Flusher); ok {
			if ferr := f.Flush(); ferr != nil {
				s.metrics.WriteErrors.Inc()
				err = fmt.Errorf("flush sink: %w", ferr)
			}
		}
	}

	result.Elapsed = s.clock.Now().Sub(start)
	result.Written = st.written.Load()
	result.Generated = st.generated.Load()
	result.Collisions = st.collisions.Load()
	result.PartitionMisses = st.misses.Load()

	s.metrics.RunDuration.WithLabelValues(s.mode).Observe(result.Elapsed.Seconds())

	if err != nil {
		s.metrics.Runs.WithLabelValues(s.mode, "error").Inc()
		log.Error().Err(err).
			Int64("written", result.Written).
			Int64("elapsed_ms", result.Elapsed.Milliseconds()).
			Msg("generation failed")
		return result, err
	}

	s.metrics.Runs.WithLabelValues(s.mode, "ok").Inc()
	log.Info().
		Int64("written", result.Written).
		Int64("generated", result.Generated).
		Int64("collisions", result.Collisions).
		Int64("partition_misses", result.PartitionMisses).
		Int64("elapsed_ms", result.Elapsed.Milliseconds()).
		Msg("generation finished")

	return result, nil
}

// Check reports whether Generate would accept n with the service's mode and
// worker count, without generating anything.
func (s *GenerateService) Check(n int) error {
	if n < 0 {
		return ErrInvalidCount
	}
	if s.mode != ModeConcurrent && s.mode != ModeSequential {
		return fmt.Errorf("%w, got %q", ErrInvalidMode, s.mode)
	}
	if n > taxid.RandomCapacity {
		return fmt.Errorf("%w: %d > %d", ErrCountExceedsCapacity, n, taxid.RandomCapacity)
	}
	if s.mode == ModeConcurrent {
		// per-worker shares and worker count
		_, err := planPartitions(n, s.workers)
		return err
	}
	return nil
}

// generateConcurrent fans workers into one channel drained by one writer.
func (s *GenerateService) generateConcurrent(ctx context.Context, n int, sink ports.Sink, st *runStats, log zerolog.Logger) error {
	parts, err := planPartitions(n, s.workers)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	out := make(chan taxid.ID, s.bufferSize)

	var producers sync.WaitGroup
	for _, p := range parts {
		if p.share == 0 {
			continue
		}
		producers.Add(1)
		g.Go(func() error {
			defer producers.Done()
			return s.produce(gctx, p, out, st, log)
		})
	}

	go func() {
		producers.Wait()
		close(out)
	}()

	g.Go(func() error {
		return s.consume(gctx, out, sink, st, log)
	})

	return g.Wait()
}

// produce draws identifiers until the partition's share of unique values
// has been forwarded.
func (s *GenerateService) produce(ctx context.Context, p partition, out chan<- taxid.ID, st *runStats, log zerolog.Logger) error {
	s.metrics.WorkersActive.Inc()
	defer s.metrics.WorkersActive.Dec()

	label := strconv.Itoa(p.worker)
	c := newWorkerCounters(s.metrics, label, st)
	defer c.publish()

	rng := s.random()
	seen := taxid.NewSet(p.share)

	for seen.Len() < p.share {
		id := taxid.Random(rng)
		if c.draw() {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		if !p.owns[id.Leading()] {
			c.misses++
			continue
		}
		if !seen.Add(id) {
			c.collisions++
			continue
		}

		select {
		case out <- id:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	log.Debug().Int("worker", p.worker).Int("share", p.share).Msg("worker finished")
	return nil
}

// consume is the only goroutine that touches the sink.
func (s *GenerateService) consume(ctx context.Context, in <-chan taxid.ID, sink ports.Sink, st *runStats, log zerolog.Logger) error {
	defer s.metrics.QueueDepth.Set(0)

	for id := range in {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.write(sink, id); err != nil {
			return err
		}
		queued := len(in)
		s.metrics.QueueDepth.Set(float64(queued))
		s.progress(st.written.Add(1), queued, log)
	}
	return nil
}

// generateSequential uses one set and writes in insertion order.
func (s *GenerateService) generateSequential(ctx context.Context, n int, sink ports.Sink, st *runStats, log zerolog.Logger) error {
	c := newWorkerCounters(s.metrics, "0", st)
	defer c.publish()

	rng := s.random()
	seen := taxid.NewSet(n)

	for seen.Len() < n {
		id := taxid.Random(rng)
		if c.draw() {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		if !seen.Add(id) {
			c.collisions++
			continue
		}
		if err := s.write(sink, id); err != nil {
			return err
		}
		s.progress(st.written.Add(1), 0, log)
	}
	return nil
}

func (s *GenerateService) write(sink ports.Sink, id taxid.ID) error {
	if err := sink.Write(id); err != nil {
		s.metrics.WriteErrors.Inc()
		return fmt.Errorf("write identifier: %w", err)
	}
	s.metrics.Written.Inc()
	return nil
}

func (s *GenerateService) progress(written int64, queued int, log zerolog.Logger) {
	if s.progressEvery <= 0 || written%s.progressEvery != 0 {
		return
	}
	log.Info().Int64("written", written).Int("queued", queued).Msg("progress")
}

// workerCounters batches a worker's counts before publishing them to the
// shared stats and the metrics collector.
type workerCounters struct {
	st                               *runStats
	generated, collisions, misses    int64
	generatedM, collisionsM, missesM prometheus.Counter
}

func newWorkerCounters(m *metrics.Collector, label string, st *runStats) *workerCounters {
	return &workerCounters{
		st:          st,
		generatedM:  m.Generated.WithLabelValues(label),
		collisionsM: m.Collisions.WithLabelValues(label),
		missesM:     m.PartitionMisses.WithLabelValues(label),
	}
}

// draw counts one drawn identifier and reports whether a flush happened.
func (c *workerCounters) draw() bool {
	c.generated++
	if c.generated%flushEvery != 0 {
		return false
	}
	c.publish()
	return true
}

func (c *workerCounters) publish() {
	c.st.generated.Add(c.generated)
	c.st.collisions.Add(c.collisions)
	c.st.misses.Add(c.misses)
	c.generatedM.Add(float64(c.generated))
	c.collisionsM.Add(float64(c.collisions))
	c.missesM.Add(float64(c.misses))
	c.generated, c.collisions, c.misses = 0, 0, 0
}
