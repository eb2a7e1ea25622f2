package middlewares

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/sweep"
	"github.com/dmitrymomot/sweep/pkg/invalidator"
	"github.com/dmitrymomot/sweep/pkg/logger"
)

// Invalidation opens a deferred-invalidation scope for each request and
// flushes it after the handler returns. The flush runs unconditionally,
// including when the handler panics, so buffered invalidations are never
// silently dropped.
func Invalidation(engine *sweep.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := engine.BeginScope(r.Context())
			defer engine.Flush(ctx)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ScopeExtractor returns a logger.ContextExtractor that stamps every log
// record with the active invalidation scope ID, correlating deferred
// deletions with the request that buffered them.
func ScopeExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		sc := invalidator.ScopeFrom(ctx)
		if sc == nil {
			return slog.Attr{}, false
		}
		return slog.String("scope_id", sc.ID()), true
	}
}
