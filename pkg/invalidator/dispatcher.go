package invalidator

import (
	"context"
	"io"
	"log/slog"

	"github.com/dmitrymomot/sweep/pkg/rules"
	"github.com/dmitrymomot/sweep/pkg/settings"
)

// Enqueuer is the async execution backend surface: fire-and-forget insertion
// of an invalidation job carrying (keys, trigger). Implemented by pkg/queue;
// any queue that later calls back into a Deleter works.
type Enqueuer interface {
	Enqueue(ctx context.Context, keys []string, trigger string, jobOptions map[string]any) error
}

// Dispatcher routes resolved invalidations to immediate deletion, the job
// queue, or the request scope buffer. Every failure is logged and swallowed:
// invalidation is best-effort and must never abort the host transaction.
type Dispatcher struct {
	resolver *settings.Resolver
	registry *rules.Registry
	deleter  *Deleter
	enqueuer Enqueuer
	logger   *slog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithEnqueuer wires the async execution backend. Without one, async
// invalidations degrade to inline deletion.
func WithEnqueuer(e Enqueuer) DispatcherOption {
	return func(d *Dispatcher) {
		d.enqueuer = e
	}
}

// WithDispatcherLogger sets the logger for dispatch outcomes.
func WithDispatcherLogger(l *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(resolver *settings.Resolver, registry *rules.Registry, deleter *Deleter, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		resolver: resolver,
		registry: registry,
		deleter:  deleter,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Invalidate applies the resolved policy to the generated keys.
//
// Deferred trigger buffers a [BatchEntry] in the context's scope; no cache
// mutation happens yet. With no active scope the entry would be lost at
// flush time, so dispatch degrades to instant instead. Instant async hands
// the keys to the enqueuer; an enqueue failure loses this invalidation (a
// stale read-through repairs the key later), while an absent enqueuer
// degrades to inline deletion. Instant inline deletes now.
func (d *Dispatcher) Invalidate(ctx context.Context, keys []string, b rules.Binding) {
	if len(keys) == 0 {
		return
	}

	res := d.resolver.Resolve(b.Rule.Overrides, d.registry.GroupSettings(b.Group))
	label := b.Label()

	if res.Trigger == settings.TriggerDeferred {
		if sc := ScopeFrom(ctx); sc != nil {
			sc.Append(BatchEntry{Keys: keys, Mode: res.Mode, JobOptions: res.JobOptions})
			d.logger.Debug("invalidation buffered",
				slog.String("rule", label),
				slog.String("scope_id", sc.ID()),
				slog.Int("keys", len(keys)))
			return
		}
		d.logger.Debug("no active scope, dispatching instantly",
			slog.String("rule", label))
	}

	d.execute(ctx, keys, res.Mode, res.JobOptions, string(settings.TriggerInstant), label)
}

// Flush drains the scope attached to ctx and executes each buffered entry.
// Entries run independently in append order; one entry's failure never
// blocks the rest, and the scope is cleared even when entries fail.
func (d *Dispatcher) Flush(ctx context.Context) {
	sc := ScopeFrom(ctx)
	if sc == nil {
		return
	}

	entries := sc.Drain()
	if len(entries) == 0 {
		d.logger.Debug("flush: nothing buffered", slog.String("scope_id", sc.ID()))
		return
	}

	d.logger.Debug("flushing buffered invalidations",
		slog.String("scope_id", sc.ID()),
		slog.Int("entries", len(entries)))

	for _, e := range entries {
		d.execute(ctx, e.Keys, e.Mode, e.JobOptions, string(settings.TriggerDeferred), "flush:"+sc.ID())
	}
}

// execute runs one resolved invalidation: enqueue for async when a queue is
// wired, otherwise delete inline. Both paths use the canonical job payload
// (keys, trigger).
func (d *Dispatcher) execute(ctx context.Context, keys []string, mode settings.Mode, jobOptions map[string]any, trigger, label string) {
	if mode == settings.ModeAsync {
		d.resolver.ValidateMode(mode, label)
		if d.enqueuer != nil {
			if err := d.enqueuer.Enqueue(ctx, keys, trigger, jobOptions); err != nil {
				d.logger.Error("enqueue failed, invalidation lost",
					slog.String("context", label),
					slog.String("trigger", trigger),
					slog.Int("keys", len(keys)),
					slog.Any("error", err))
			}
			return
		}
		// No queue backend wired: degrade to synchronous deletion once.
	}

	d.deleter.DeleteKeys(ctx, keys, label)
}
