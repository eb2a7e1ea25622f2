package invalidator

import (
	"context"
	"io"
	"log/slog"

	"github.com/dmitrymomot/sweep/pkg/rules"
)

// Listener receives change notifications from the host ORM and evaluates
// the registered rules against them. It is the inbound edge of the engine:
// the host calls Notify at each configured callback point and the listener
// guarantees no error or panic ever propagates back into the host's
// persistence transaction.
type Listener struct {
	registry   *rules.Registry
	dispatcher *Dispatcher
	logger     *slog.Logger
}

// ListenerOption configures a Listener.
type ListenerOption func(*Listener)

// WithListenerLogger sets the logger for rule evaluation diagnostics.
func WithListenerLogger(l *slog.Logger) ListenerOption {
	return func(ln *Listener) {
		if l != nil {
			ln.logger = l
		}
	}
}

// NewListener creates a listener over the registry and dispatcher.
func NewListener(registry *rules.Registry, dispatcher *Dispatcher, opts ...ListenerOption) *Listener {
	ln := &Listener{
		registry:   registry,
		dispatcher: dispatcher,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(ln)
	}
	return ln
}

// Notify evaluates every rule observing the changed entity's kind, in
// registration order. Each rule fires independently: a failing rule is
// logged and skipped so sibling rules still run.
func (ln *Listener) Notify(ctx context.Context, point rules.CallbackPoint, ch rules.Change) {
	if ch.Entity == nil {
		return
	}
	for _, b := range ln.registry.BindingsFor(ch.Entity.EntityKind()) {
		ln.fire(ctx, point, ch, b)
	}
}

// fire evaluates one rule against one change. Panics from user-supplied
// key generators and predicates are contained here.
func (ln *Listener) fire(ctx context.Context, point rules.CallbackPoint, ch rules.Change, b rules.Binding) {
	label := b.Label()
	defer func() {
		if r := recover(); r != nil {
			ln.logger.Error("rule panicked",
				slog.String("rule", label),
				slog.String("kind", ch.Entity.EntityKind()),
				slog.Any("panic", r))
		}
	}()

	rule := b.Rule
	if !rule.MatchesEvent(ch.Event) || !rule.MatchesPoint(point) {
		return
	}
	if !rule.MatchesAttributes(ch.Event, ch.Changed) {
		return
	}

	if !rule.Condition.IsZero() {
		ok, err := rule.Condition.Evaluate(ch.Entity)
		if err != nil {
			ln.logger.Warn("condition not evaluable",
				slog.String("rule", label),
				slog.String("condition", rule.Condition.String()),
				slog.Any("error", err))
			return
		}
		if !ok {
			return
		}
	}

	targets := []rules.Entity{ch.Entity}
	if rule.Association != "" {
		// Unknown associations were already dropped at registration time;
		// reaching here means the relation resolved, so lookup errors are
		// per-event and transient.
		parents, err := ln.registry.Associations().Parents(ctx, b.Group, rule.Association, ch.Entity)
		if err != nil {
			ln.logger.Error("association lookup failed",
				slog.String("rule", label),
				slog.String("association", rule.Association),
				slog.String("kind", ch.Entity.EntityKind()),
				slog.Any("error", err))
			return
		}
		targets = parents
	}

	// One invalidation per resolved key set: direct rules have one target,
	// association rules one per affected owner entity.
	for _, target := range targets {
		keys, err := rule.Keys(target)
		if err != nil {
			ln.logger.Error("key generation failed",
				slog.String("rule", label),
				slog.String("kind", target.EntityKind()),
				slog.Any("error", err))
			continue
		}
		if len(keys) == 0 {
			continue
		}
		ln.dispatcher.Invalidate(ctx, keys, b)
	}
}
