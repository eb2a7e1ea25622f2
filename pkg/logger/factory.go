package logger

import (
	"log/slog"
	"os"
)

// New creates a JSON-formatted logger at the given level with optional
// context extractors. The level usually comes from the engine settings:
//
//	log := logger.New(s.LogLevel(), middlewares.ScopeExtractor())
func New(level slog.Level, extractors ...ContextExtractor) *slog.Logger {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(NewContextHandler(h, extractors...))
}
