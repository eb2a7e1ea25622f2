package sweep

import (
	"log/slog"

	"github.com/dmitrymomot/sweep/pkg/invalidator"
	"github.com/dmitrymomot/sweep/pkg/rules"
	"github.com/dmitrymomot/sweep/pkg/settings"
)

// Option configures the engine.
type Option func(*config)

type config struct {
	logger       *slog.Logger
	settings     *settings.Settings
	enqueuer     invalidator.Enqueuer
	associations rules.AssociationResolver
	parallelism  int
}

// WithLogger sets the logger shared by every engine component.
// If not set, logging is disabled.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithSettings sets the global settings object. Defaults to built-in
// defaults (instant, inline, "default" queue, batch size 100).
func WithSettings(s *settings.Settings) Option {
	return func(c *config) {
		if s != nil {
			c.settings = s
		}
	}
}

// WithEnqueuer wires the async execution backend. Without one, async
// invalidations degrade to inline deletion with a warning.
func WithEnqueuer(e invalidator.Enqueuer) Option {
	return func(c *config) {
		c.enqueuer = e
	}
}

// WithAssociationResolver wires the host ORM's association lookup.
// Required for rules declaring an association; such rules are skipped at
// registration time otherwise.
func WithAssociationResolver(r rules.AssociationResolver) Option {
	return func(c *config) {
		c.associations = r
	}
}

// WithDeleterParallelism deletes up to n chunks concurrently per key set.
// Defaults to sequential.
func WithDeleterParallelism(n int) Option {
	return func(c *config) {
		if n > 1 {
			c.parallelism = n
		}
	}
}
