package queue

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"

	"github.com/dmitrymomot/sweep/pkg/invalidator"
)

const defaultMaxWorkers = 10

// Worker hosts the queue consumers that execute invalidation jobs.
// Run it in a dedicated process, or Start it alongside the web server for
// single-process deployments.
type Worker struct {
	pool   *pgxpool.Pool
	client *river.Client[pgx.Tx]
	logger *slog.Logger

	mu      sync.Mutex
	started bool
}

// WorkerOption configures the worker host.
type WorkerOption func(*workerConfig)

type workerConfig struct {
	logger     *slog.Logger
	queues     map[string]int
	maxWorkers int
}

// WithWorkerLogger sets the logger for job processing.
func WithWorkerLogger(l *slog.Logger) WorkerOption {
	return func(c *workerConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithQueue adds a named queue with its own consumer count. Rules route jobs
// here through their resolved queue setting.
func WithQueue(name string, workers int) WorkerOption {
	return func(c *workerConfig) {
		if name != "" && workers > 0 {
			c.queues[name] = workers
		}
	}
}

// WithMaxWorkers sets the consumer count for the default queue.
// Defaults to 10; invalidation jobs are light.
func WithMaxWorkers(n int) WorkerOption {
	return func(c *workerConfig) {
		if n > 0 {
			c.maxWorkers = n
		}
	}
}

// invalidationWorker executes one job: bulk-delete the payload keys.
type invalidationWorker struct {
	river.WorkerDefaults[invalidationArgs]
	deleter *invalidator.Deleter
	logger  *slog.Logger
}

// Work deletes the job's keys and reports partial failure in the log.
// It always returns nil: chunk failures were already logged by the deleter,
// and invalidation is fire-once, so the job must not retry.
func (w *invalidationWorker) Work(ctx context.Context, job *river.Job[invalidationArgs]) error {
	requested := len(job.Args.Keys)
	deleted := w.deleter.DeleteKeys(ctx, job.Args.Keys, "job:"+job.Args.Trigger)

	if deleted < requested {
		w.logger.Warn("invalidation job completed with failures",
			slog.String("trigger", job.Args.Trigger),
			slog.Int("requested", requested),
			slog.Int("deleted", deleted),
			slog.Int("failed", requested-deleted))
		return nil
	}

	w.logger.Debug("invalidation job completed",
		slog.String("trigger", job.Args.Trigger),
		slog.Int("deleted", deleted))
	return nil
}

// NewWorker creates a worker host executing invalidation jobs through the
// given deleter. Call Start to begin consuming.
func NewWorker(pool *pgxpool.Pool, deleter *invalidator.Deleter, opts ...WorkerOption) (*Worker, error) {
	if pool == nil {
		return nil, ErrPoolRequired
	}
	if deleter == nil {
		return nil, ErrDeleterRequired
	}

	cfg := &workerConfig{queues: make(map[string]int)}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.maxWorkers == 0 {
		cfg.maxWorkers = defaultMaxWorkers
	}

	queues := map[string]river.QueueConfig{
		river.QueueDefault: {MaxWorkers: cfg.maxWorkers},
	}
	for name, workers := range cfg.queues {
		queues[name] = river.QueueConfig{MaxWorkers: workers}
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, &invalidationWorker{
		deleter: deleter,
		logger:  cfg.logger,
	})

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues:  queues,
		Workers: workers,
		Logger:  cfg.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("queue: create worker client: %w", err)
	}

	return &Worker{pool: pool, client: client, logger: cfg.logger}, nil
}

// Start begins consuming jobs. It returns once consumption is running.
func (w *Worker) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started {
		return ErrAlreadyStarted
	}
	if err := w.client.Start(ctx); err != nil {
		return fmt.Errorf("queue: start worker: %w", err)
	}
	w.started = true
	return nil
}

// Stop drains in-flight jobs and stops consumption.
func (w *Worker) Stop(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.started {
		return ErrNotStarted
	}
	if err := w.client.Stop(ctx); err != nil {
		return fmt.Errorf("queue: stop worker: %w", err)
	}
	w.started = false
	return nil
}

// Healthcheck returns a readiness probe for the worker. It verifies the
// worker is started and the queue's database is reachable.
func Healthcheck(w *Worker) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if w == nil {
			return ErrHealthcheckFailed
		}

		w.mu.Lock()
		started := w.started
		w.mu.Unlock()
		if !started {
			return errors.Join(ErrHealthcheckFailed, ErrNotStarted)
		}

		// The worker shares the pool with the queue tables, so a ping covers
		// both connectivity and queue access.
		if err := w.pool.Ping(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
