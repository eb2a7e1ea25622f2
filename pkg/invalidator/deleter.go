package invalidator

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/sweep/pkg/backend"
	"github.com/dmitrymomot/sweep/pkg/settings"
)

// Deleter splits key sets into chunks of the configured batch size and
// issues one bulk delete per chunk, tolerating partial failure. It knows
// nothing about triggers or modes; it is the pure deletion primitive both
// the dispatcher and the job worker share.
type Deleter struct {
	backend  backend.Backend
	settings *settings.Settings
	logger   *slog.Logger
	parallel int
}

// DeleterOption configures a Deleter.
type DeleterOption func(*Deleter)

// WithDeleterLogger sets the logger for per-chunk outcomes.
func WithDeleterLogger(l *slog.Logger) DeleterOption {
	return func(d *Deleter) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithParallelism deletes up to n chunks concurrently. Chunks carry no
// ordering guarantee between each other, so concurrency only changes
// throughput. Default: sequential.
func WithParallelism(n int) DeleterOption {
	return func(d *Deleter) {
		if n > 1 {
			d.parallel = n
		}
	}
}

// NewDeleter creates a deleter over the given backend. The batch size is
// read from settings on every call, so reconfiguration applies to in-flight
// workloads' next call.
func NewDeleter(b backend.Backend, s *settings.Settings, opts ...DeleterOption) *Deleter {
	d := &Deleter{
		backend:  b,
		settings: s,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DeleteKeys deletes keys in chunks and returns how many were deleted.
// A failed chunk is logged with its contents and skipped, never retried;
// remaining chunks still run. Callers derive the failure count as
// len(keys) - deleted. Duplicate keys are harmless: deletion is idempotent.
func (d *Deleter) DeleteKeys(ctx context.Context, keys []string, label string) int {
	if len(keys) == 0 {
		return 0
	}
	size := max(d.settings.BatchSize(), 1)

	if d.parallel <= 1 {
		deleted := 0
		for chunk := range slices.Chunk(keys, size) {
			deleted += d.deleteChunk(ctx, chunk, label)
		}
		return deleted
	}

	var deleted atomic.Int64
	var g errgroup.Group
	g.SetLimit(d.parallel)
	for chunk := range slices.Chunk(keys, size) {
		g.Go(func() error {
			deleted.Add(int64(d.deleteChunk(ctx, chunk, label)))
			return nil
		})
	}
	// Chunk failures are logged, not returned, so Wait never yields an error.
	_ = g.Wait()
	return int(deleted.Load())
}

// deleteChunk issues one bulk delete and returns the number of keys removed
// (the whole chunk on success, zero on failure).
func (d *Deleter) deleteChunk(ctx context.Context, chunk []string, label string) int {
	if err := d.backend.DeleteMulti(ctx, chunk); err != nil {
		d.logger.Error("bulk delete failed",
			slog.String("context", label),
			slog.Any("keys", chunk),
			slog.Any("error", err))
		return 0
	}
	d.logger.Debug("bulk delete succeeded",
		slog.String("context", label),
		slog.Int("keys", len(chunk)))
	return len(chunk)
}
