// Package sweeper removes captured artifacts and media past the retention
// horizon.
package sweeper

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"guard_bot/internal/blobstore"
	"guard_bot/internal/storage"
)

// Retention is how long captured content is kept before a sweep removes it.
const Retention = 24 * time.Hour

const defaultTick = time.Hour

// Result aggregates what one sweep removed.
type Result struct {
	ItemsRemoved int
	FilesRemoved int
	BytesFreed   int64

	// Skipped is true when the sweep was coalesced into a no-op because
	// another sweep was already running.
	Skipped bool
}

// Stats is a snapshot of sweeper activity for reporting.
type Stats struct {
	Sweeps       int
	ItemsRemoved int
	FilesRemoved int
	BytesFreed   int64
	LastSweep    time.Time
}

// Sweeper deletes artifacts older than the retention horizon, on an hourly
// timer and on demand. Sweeps never overlap: a trigger that arrives while a
// sweep is running is a no-op.
type Sweeper struct {
	store storage.Storage
	blobs *blobstore.Store
	log   *slog.Logger
	tick  time.Duration

	running atomic.Bool

	mu    sync.Mutex
	stats Stats
}

// New creates a Sweeper.
func New(store storage.Storage, blobs *blobstore.Store, log *slog.Logger) *Sweeper {
	return &Sweeper{
		store: store,
		blobs: blobs,
		log:   log,
		tick:  defaultTick,
	}
}

// SetTickInterval overrides the default 1-hour timer, for tests.
func (s *Sweeper) SetTickInterval(d time.Duration) {
	s.tick = d
}

// Run starts the periodic sweep loop, blocking until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			res, err := s.Sweep(ctx)
			if err != nil {
				s.log.Error("sweep", "error", err)
				continue
			}
			if !res.Skipped && (res.ItemsRemoved > 0 || res.FilesRemoved > 0) {
				s.log.Info("sweep completed",
					"items", res.ItemsRemoved,
					"files", res.FilesRemoved,
					"bytes", res.BytesFreed,
				)
			}
		}
	}
}

// Sweep runs one retention pass: artifacts and media blobs modified before
// now-24h are removed. Per-item failures are logged and do not abort the
// rest of the sweep.
func (s *Sweeper) Sweep(ctx context.Context) (Result, error) {
	if !s.running.CompareAndSwap(false, true) {
		return Result{Skipped: true}, nil
	}
	defer s.running.Store(false)

	cutoff := time.Now().Add(-Retention)
	var res Result

	items, err := s.store.DeleteArtifactsBefore(ctx, cutoff)
	if err != nil {
		s.log.Error("delete expired artifacts", "error", err)
	}
	res.ItemsRemoved = items

	files, bytes, err := s.blobs.DeleteBefore(cutoff)
	if err != nil {
		s.log.Error("delete expired media", "error", err)
	}
	res.FilesRemoved = files
	res.BytesFreed = bytes

	s.mu.Lock()
	s.stats.Sweeps++
	s.stats.ItemsRemoved += res.ItemsRemoved
	s.stats.FilesRemoved += res.FilesRemoved
	s.stats.BytesFreed += res.BytesFreed
	s.stats.LastSweep = time.Now()
	s.mu.Unlock()

	return res, nil
}

// Stats returns a snapshot of lifetime sweep counters.
func (s *Sweeper) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}
