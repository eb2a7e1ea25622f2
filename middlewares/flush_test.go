package middlewares_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sweep"
	"github.com/dmitrymomot/sweep/middlewares"
	"github.com/dmitrymomot/sweep/pkg/backend"
	"github.com/dmitrymomot/sweep/pkg/invalidator"
)

type product struct{ id int }

func (p *product) EntityKind() string { return "product" }

func newEngine(t *testing.T, store *backend.Memory) *sweep.Engine {
	t.Helper()

	engine, err := sweep.New(store)
	require.NoError(t, err)
	require.NoError(t, engine.Register(sweep.Group{
		Kind:     "product",
		Settings: sweep.Overrides{Trigger: sweep.TriggerDeferred},
		Rules: []sweep.Rule{{Name: "show", Keys: func(e sweep.Entity) ([]string, error) {
			return []string{fmt.Sprintf("product/%d", e.(*product).id)}, nil
		}}},
	}))
	return engine
}

func TestInvalidation(t *testing.T) {
	t.Parallel()

	t.Run("flushes deferred invalidations after the handler", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		store := backend.NewMemory()
		engine := newEngine(t, store)
		store.Set(ctx, "product/1", "cached")

		handler := middlewares.Invalidation(engine)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			engine.Notify(r.Context(), sweep.PostCommit, sweep.Change{
				Entity: &product{id: 1}, Event: sweep.EventUpdate,
			})
			// Buffered, not yet deleted while the handler runs.
			assert.True(t, store.Has(r.Context(), "product/1"))
			w.WriteHeader(http.StatusOK)
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, store.Has(ctx, "product/1"), "flushed after the handler returned")
	})

	t.Run("flushes even when the handler panics", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		store := backend.NewMemory()
		engine := newEngine(t, store)
		store.Set(ctx, "product/2", "cached")

		handler := middlewares.Invalidation(engine)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			engine.Notify(r.Context(), sweep.PostCommit, sweep.Change{
				Entity: &product{id: 2}, Event: sweep.EventUpdate,
			})
			panic("handler blew up")
		}))

		assert.Panics(t, func() {
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		})
		assert.False(t, store.Has(ctx, "product/2"), "deferred work not lost to the panic")
	})

	t.Run("each request gets its own scope", func(t *testing.T) {
		t.Parallel()

		store := backend.NewMemory()
		engine := newEngine(t, store)

		var ids []string
		handler := middlewares.Invalidation(engine)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sc := invalidator.ScopeFrom(r.Context())
			require.NotNil(t, sc)
			ids = append(ids, sc.ID())
		}))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		require.Len(t, ids, 2)
		assert.NotEqual(t, ids[0], ids[1])
	})
}

func TestScopeExtractor(t *testing.T) {
	t.Parallel()

	extract := middlewares.ScopeExtractor()

	t.Run("with scope", func(t *testing.T) {
		t.Parallel()

		sc := invalidator.NewScope()
		ctx := invalidator.WithScope(context.Background(), sc)

		attr, ok := extract(ctx)
		require.True(t, ok)
		assert.Equal(t, "scope_id", attr.Key)
		assert.Equal(t, sc.ID(), attr.Value.String())
	})

	t.Run("without scope", func(t *testing.T) {
		t.Parallel()

		_, ok := extract(context.Background())
		assert.False(t, ok)
	})
}
