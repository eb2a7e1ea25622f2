package invalidator

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/sweep/pkg/settings"
)

// BatchEntry is one deferred invalidation buffered in a request scope.
// Mode and job options are resolved at append time; flush only executes them.
type BatchEntry struct {
	Keys       []string
	Mode       settings.Mode
	JobOptions map[string]any
}

// Scope accumulates deferred invalidations for one logical request.
// A scope must never be shared between concurrent requests; sharing leaks
// keys across requests. The HTTP middleware creates one per request and the
// flush entrypoint drains it exactly once.
type Scope struct {
	id      string
	mu      sync.Mutex
	entries []BatchEntry
}

// NewScope creates an empty scope with a unique ID for log correlation.
func NewScope() *Scope {
	return &Scope{id: uuid.NewString()}
}

// ID returns the scope's correlation ID.
func (s *Scope) ID() string {
	return s.id
}

// Append buffers one entry. Safe to call any number of times per request.
func (s *Scope) Append(e BatchEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
}

// Len returns the number of buffered entries.
func (s *Scope) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Drain returns the buffered entries in append order and clears the scope
// unconditionally, so a failing flush can never leak keys into a reused
// scope. A drained scope is empty and reusable.
func (s *Scope) Drain() []BatchEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.entries
	s.entries = nil
	return entries
}

// scopeKey is the context key carrying the active scope.
type scopeKey struct{}

// WithScope attaches a scope to the context.
func WithScope(ctx context.Context, s *Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, s)
}

// ScopeFrom returns the scope attached to the context, or nil when no
// request scope is active.
func ScopeFrom(ctx context.Context) *Scope {
	s, _ := ctx.Value(scopeKey{}).(*Scope)
	return s
}
