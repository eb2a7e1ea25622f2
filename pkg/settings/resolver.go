package settings

import (
	"io"
	"log/slog"
	"maps"
)

// Resolution is the effective policy computed for one invalidation event.
type Resolution struct {
	Trigger    Trigger
	Mode       Mode
	Queue      string
	JobOptions map[string]any
}

// Resolver computes effective settings with rule > group > global precedence,
// field by field: a rule may override the mode and still inherit the queue.
type Resolver struct {
	settings       *Settings
	logger         *slog.Logger
	asyncAvailable func() bool
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithResolverLogger sets the logger used for mode validation warnings.
func WithResolverLogger(l *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithAsyncProbe sets the probe reporting whether an async execution backend
// is wired. Without a probe, async is assumed unavailable and ValidateMode
// warns for every async resolution.
func WithAsyncProbe(fn func() bool) ResolverOption {
	return func(r *Resolver) {
		if fn != nil {
			r.asyncAvailable = fn
		}
	}
}

// NewResolver creates a resolver over the given settings.
func NewResolver(s *Settings, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		settings: s,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve merges the rule overrides, group settings and global settings into
// one effective policy. Trigger, mode and queue take the first set value in
// that order, falling back to hard defaults (instant, inline, "default").
//
// JobOptions is a shallow merge rather than override-wins-all: global options
// first, group options over them, rule options over that. A rule can add one
// option without discarding group-level ones. The resolved queue is injected
// into the merged map when it is not the default queue.
func (r *Resolver) Resolve(rule, group Overrides) Resolution {
	snap := r.settings.Snapshot()

	res := Resolution{
		Trigger: first(rule.Trigger, group.Trigger, snap.Trigger, TriggerInstant),
		Mode:    first(rule.Mode, group.Mode, snap.Mode, ModeInline),
		Queue:   first(rule.Queue, group.Queue, snap.Queue, DefaultQueue),
	}

	merged := make(map[string]any)
	maps.Copy(merged, snap.JobOptions)
	maps.Copy(merged, group.JobOptions)
	maps.Copy(merged, rule.JobOptions)
	if res.Queue != DefaultQueue {
		merged["queue"] = res.Queue
	}
	res.JobOptions = merged

	return res
}

// ValidateMode warns when async execution is requested but no queue backend
// is wired. Such invalidations silently degrade to synchronous deletion; the
// warning is the only signal.
func (r *Resolver) ValidateMode(mode Mode, label string) {
	if mode != ModeAsync {
		return
	}
	if r.asyncAvailable != nil && r.asyncAvailable() {
		return
	}
	r.logger.Warn("async mode requested without a queue backend, deletions will run inline",
		slog.String("context", label))
}

// first returns the first non-zero value.
func first[T comparable](vals ...T) T {
	var zero T
	for _, v := range vals {
		if v != zero {
			return v
		}
	}
	return zero
}
