// Package settings holds the three-level configuration model of the
// invalidation engine: process-wide global settings, per-group settings and
// per-rule overrides, plus the Resolver that merges them.
//
// # Layers
//
// Global [Settings] are created once at startup and mutated afterwards only
// through [Settings.Configure]. Group settings and rule overrides are both
// expressed as [Overrides], whose zero-valued fields mean "inherit from the
// layer below".
//
// # Resolution
//
// [Resolver.Resolve] computes the effective policy for one invalidation
// event. Trigger, mode and queue resolve field by field with
// rule > group > global precedence and hard defaults (instant, inline,
// "default"). Job options resolve by shallow merge, most specific layer
// last, so global {a:1}, group {b:2} and rule {c:3} yield {a:1, b:2, c:3}.
//
// # Configuration sources
//
// Settings accept functional options, environment variables via [FromEnv]
// (SWEEP_TRIGGER, SWEEP_MODE, SWEEP_QUEUE, SWEEP_BATCH_SIZE,
// SWEEP_LOG_LEVEL) and YAML files via [LoadFile]. Invalid values are fatal
// at the point of setting:
//
//	s, err := settings.New(
//	    settings.WithTrigger(settings.TriggerDeferred),
//	    settings.FromEnv(),
//	)
package settings
