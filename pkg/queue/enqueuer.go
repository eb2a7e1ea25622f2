package queue

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
)

// Enqueuer inserts invalidation jobs without processing them. Use it in web
// processes; a separate [Worker] process executes the jobs. Enqueue is
// fire-and-forget: it returns once the job is accepted, never waiting for
// execution.
type Enqueuer struct {
	pool   *pgxpool.Pool
	client *river.Client[pgx.Tx]
	logger *slog.Logger
}

// EnqueuerOption configures the enqueuer.
type EnqueuerOption func(*enqueuerConfig)

type enqueuerConfig struct {
	logger *slog.Logger
}

// WithEnqueuerLogger sets the logger passed to the underlying queue client.
func WithEnqueuerLogger(l *slog.Logger) EnqueuerOption {
	return func(c *enqueuerConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewEnqueuer creates an insert-only queue client over the given pool.
func NewEnqueuer(pool *pgxpool.Pool, opts ...EnqueuerOption) (*Enqueuer, error) {
	if pool == nil {
		return nil, ErrPoolRequired
	}

	cfg := &enqueuerConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	// Insert-only mode: no Workers, no Queues.
	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Logger: cfg.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("queue: create enqueuer client: %w", err)
	}

	return &Enqueuer{pool: pool, client: client, logger: cfg.logger}, nil
}

// Enqueue inserts an invalidation job for the given keys. The trigger labels
// which path enqueued the job ("instant" or "deferred"); the worker logs it
// but deletes identically either way. Job options are translated into insert
// options, see [pkg/queue] docs for the recognized keys.
func (e *Enqueuer) Enqueue(ctx context.Context, keys []string, trigger string, jobOptions map[string]any) error {
	if len(keys) == 0 {
		return nil
	}

	_, err := e.client.Insert(ctx,
		invalidationArgs{Keys: keys, Trigger: trigger},
		insertOptsFromMap(jobOptions))
	if err != nil {
		return fmt.Errorf("queue: enqueue: %w", err)
	}
	return nil
}

// EnqueueTx inserts an invalidation job within a transaction. The job only
// becomes visible after the transaction commits, which gives post-commit
// rules atomicity between the entity write and its invalidation.
func (e *Enqueuer) EnqueueTx(ctx context.Context, tx pgx.Tx, keys []string, trigger string, jobOptions map[string]any) error {
	if len(keys) == 0 {
		return nil
	}

	_, err := e.client.InsertTx(ctx, tx,
		invalidationArgs{Keys: keys, Trigger: trigger},
		insertOptsFromMap(jobOptions))
	if err != nil {
		return fmt.Errorf("queue: enqueue tx: %w", err)
	}
	return nil
}
