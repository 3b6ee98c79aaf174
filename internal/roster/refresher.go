// Package roster maintains the read model the dashboard worklists are
// derived from: a periodically re-pulled snapshot of all driver records.
//
// The snapshot is eventually consistent by design — a concurrent officer's
// transition becomes visible here only after the next poll tick. Nothing in
// this package mutates records; transitions go through the gate service and
// are never blocked by or merged with an in-flight refresh.
package roster

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/Andrna09/B2B-CHECK-IN/internal/domain"
)

// Lister is the single repo operation the refresher depends on.
type Lister interface {
	List(ctx context.Context) ([]domain.DriverRecord, error)
}

// DefaultInterval matches the dashboard's refresh cadence.
const DefaultInterval = 5 * time.Second

// Refresher re-pulls the full roster on a fixed interval and exposes the
// latest successful pull as an immutable snapshot. Transient pull failures
// are retried with capped exponential backoff inside the tick; a tick that
// still fails keeps the previous snapshot and logs the error.
type Refresher struct {
	lister   Lister
	interval time.Duration
	log      *slog.Logger

	mu       sync.RWMutex
	snapshot []domain.DriverRecord
	syncedAt time.Time
}

// New constructs a Refresher. A non-positive interval falls back to
// DefaultInterval.
func New(lister Lister, interval time.Duration, log *slog.Logger) *Refresher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Refresher{lister: lister, interval: interval, log: log}
}

// Run pulls once immediately, then on every tick until ctx is cancelled.
// Always returns nil on cancellation so it slots into an errgroup without
// tearing the group down on shutdown.
func (r *Refresher) Run(ctx context.Context) error {
	r.pull(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.pull(ctx)
		}
	}
}

// pull fetches the roster with retries and swaps the snapshot on success.
func (r *Refresher) pull(ctx context.Context) {
	backoff := retry.WithMaxRetries(3, retry.NewExponential(200*time.Millisecond))

	var records []domain.DriverRecord
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var listErr error
		records, listErr = r.lister.List(ctx)
		if listErr != nil {
			return retry.RetryableError(listErr)
		}
		return nil
	})
	if err != nil {
		if ctx.Err() == nil {
			r.log.Warn("roster refresh failed", "error", err)
		}
		return
	}

	r.mu.Lock()
	r.snapshot = records
	r.syncedAt = time.Now()
	r.mu.Unlock()
}

// Snapshot returns a copy of the latest successfully pulled roster.
// Safe for concurrent use; callers may filter and slice freely.
func (r *Refresher) Snapshot() []domain.DriverRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.DriverRecord, len(r.snapshot))
	copy(out, r.snapshot)
	return out
}

// SyncedAt returns the time of the last successful pull, zero before the
// first one completes.
func (r *Refresher) SyncedAt() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.syncedAt
}
