// Package logger builds the slog loggers the engine reports through.
//
// Invalidation failures never propagate as errors, so the log stream is the
// only observable record of lost deletions. [New] creates a leveled JSON
// logger; [NewWithSentry] additionally forwards warnings and errors to
// Sentry; [NewNope] discards everything and is the default inside engine
// components.
//
// [ContextExtractor] functions add request-scoped attributes (such as the
// invalidation scope ID) to every record logged with a context.
package logger
