package sweep

import (
	"context"

	"github.com/dmitrymomot/sweep/pkg/backend"
	"github.com/dmitrymomot/sweep/pkg/invalidator"
	"github.com/dmitrymomot/sweep/pkg/rules"
	"github.com/dmitrymomot/sweep/pkg/settings"
)

// Type aliases - public API
type (
	// Rule declares which cache keys one kind of change invalidates.
	Rule = rules.Rule

	// Group declares the rules owned by one entity kind.
	Group = rules.Group

	// Entity is the minimal surface the engine needs from a domain object.
	Entity = rules.Entity

	// Change describes one entity lifecycle event.
	Change = rules.Change

	// Event is an entity lifecycle transition.
	Event = rules.Event

	// CallbackPoint positions a rule relative to the persistence transaction.
	CallbackPoint = rules.CallbackPoint

	// KeyGenerator produces the cache keys to invalidate for an entity.
	KeyGenerator = rules.KeyGenerator

	// Predicate gates a rule against the changed entity.
	Predicate = rules.Predicate

	// AssociationResolver is the host ORM surface for association rules.
	AssociationResolver = rules.AssociationResolver

	// Overrides is a partial settings layer for groups and rules.
	Overrides = settings.Overrides

	// Trigger is the timing policy: instant or deferred.
	Trigger = settings.Trigger

	// Mode is the execution policy: async or inline.
	Mode = settings.Mode

	// Settings holds the process-wide invalidation defaults.
	Settings = settings.Settings

	// SettingsOption configures global settings.
	SettingsOption = settings.Option

	// Backend is the cache-store deletion surface.
	Backend = backend.Backend

	// Enqueuer is the async execution backend surface.
	Enqueuer = invalidator.Enqueuer

	// Scope accumulates deferred invalidations for one logical request.
	Scope = invalidator.Scope
)

// Re-exported constants.
const (
	EventCreate  = rules.EventCreate
	EventUpdate  = rules.EventUpdate
	EventDestroy = rules.EventDestroy

	PreCommit  = rules.PreCommit
	PostCommit = rules.PostCommit

	TriggerInstant  = settings.TriggerInstant
	TriggerDeferred = settings.TriggerDeferred

	ModeAsync  = settings.ModeAsync
	ModeInline = settings.ModeInline
)

// PredicateFunc wraps a bound predicate function.
func PredicateFunc(fn func(Entity) bool) Predicate { return rules.PredicateFunc(fn) }

// PredicateMethod references a predicate answered by the entity through
// rules.NamedPredicator.
func PredicateMethod(name string) Predicate { return rules.PredicateMethod(name) }

// Engine wires the registry, resolver, dispatcher and deleter into one
// invalidation pipeline. Create it once at startup, register groups at their
// definition points, and hand the host collaborators its entrypoints:
// Notify for the ORM, BeginScope/Flush for the request lifecycle.
type Engine struct {
	settings   *settings.Settings
	registry   *rules.Registry
	resolver   *settings.Resolver
	deleter    *invalidator.Deleter
	dispatcher *invalidator.Dispatcher
	listener   *invalidator.Listener
}

// New creates an engine over the given cache backend.
//
// Example:
//
//	client := backend.MustOpen(ctx, os.Getenv("REDIS_URL"))
//	engine, err := sweep.New(backend.NewRedis(client),
//	    sweep.WithLogger(log),
//	    sweep.WithEnqueuer(enqueuer),
//	)
func New(b backend.Backend, opts ...Option) (*Engine, error) {
	if b == nil {
		return nil, ErrBackendRequired
	}

	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.settings == nil {
		s, err := settings.New()
		if err != nil {
			return nil, err
		}
		cfg.settings = s
	}

	registry := rules.NewRegistry(
		rules.WithRegistryLogger(cfg.logger),
		rules.WithAssociations(cfg.associations),
	)
	resolver := settings.NewResolver(cfg.settings,
		settings.WithResolverLogger(cfg.logger),
		settings.WithAsyncProbe(func() bool { return cfg.enqueuer != nil }),
	)
	deleter := invalidator.NewDeleter(b, cfg.settings,
		invalidator.WithDeleterLogger(cfg.logger),
		invalidator.WithParallelism(cfg.parallelism),
	)
	dispatcher := invalidator.NewDispatcher(resolver, registry, deleter,
		invalidator.WithEnqueuer(cfg.enqueuer),
		invalidator.WithDispatcherLogger(cfg.logger),
	)
	listener := invalidator.NewListener(registry, dispatcher,
		invalidator.WithListenerLogger(cfg.logger),
	)

	return &Engine{
		settings:   cfg.settings,
		registry:   registry,
		resolver:   resolver,
		deleter:    deleter,
		dispatcher: dispatcher,
		listener:   listener,
	}, nil
}

// Register stores a group's rules. Call it once per group at definition
// time; registering the same kind again replaces the previous rules.
func (e *Engine) Register(g Group) error {
	return e.registry.Register(g)
}

// Notify reports one entity change. The host ORM calls it at each callback
// point it supports; Notify never returns an error and never panics, so the
// host transaction proceeds regardless of invalidation outcomes.
func (e *Engine) Notify(ctx context.Context, point CallbackPoint, ch Change) {
	e.listener.Notify(ctx, point, ch)
}

// BeginScope attaches a fresh request scope to the context. Deferred
// invalidations dispatched with the returned context buffer in this scope
// until Flush.
func (e *Engine) BeginScope(ctx context.Context) context.Context {
	return invalidator.WithScope(ctx, invalidator.NewScope())
}

// Flush drains the context's scope, executing each buffered invalidation.
// Call it once at the natural end of each request, unconditionally; without
// an active scope it is a no-op.
func (e *Engine) Flush(ctx context.Context) {
	e.dispatcher.Flush(ctx)
}

// DeleteKeys deletes the given keys immediately, bypassing rules and
// resolution. Use for one-off imperative busting (console, backfills).
// Returns the number of keys deleted.
func (e *Engine) DeleteKeys(ctx context.Context, keys ...string) int {
	return e.deleter.DeleteKeys(ctx, keys, "manual")
}

// Settings returns the engine's global settings for later reconfiguration.
func (e *Engine) Settings() *settings.Settings {
	return e.settings
}

// Deleter exposes the batch deleter so a worker process can execute jobs
// with the same chunking configuration.
func (e *Engine) Deleter() *invalidator.Deleter {
	return e.deleter
}

// Rules returns the effective rules registered for a group, excluding rules
// skipped at registration time.
func (e *Engine) Rules(group string) []Rule {
	return e.registry.RulesFor(group)
}
