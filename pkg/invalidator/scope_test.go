package invalidator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sweep/pkg/invalidator"
	"github.com/dmitrymomot/sweep/pkg/settings"
)

func TestScope(t *testing.T) {
	t.Parallel()

	t.Run("append and drain in order", func(t *testing.T) {
		t.Parallel()

		sc := invalidator.NewScope()
		sc.Append(invalidator.BatchEntry{Keys: []string{"a"}, Mode: settings.ModeInline})
		sc.Append(invalidator.BatchEntry{Keys: []string{"b"}, Mode: settings.ModeAsync})
		require.Equal(t, 2, sc.Len())

		entries := sc.Drain()
		require.Len(t, entries, 2)
		assert.Equal(t, []string{"a"}, entries[0].Keys)
		assert.Equal(t, []string{"b"}, entries[1].Keys)
	})

	t.Run("drain clears unconditionally", func(t *testing.T) {
		t.Parallel()

		sc := invalidator.NewScope()
		sc.Append(invalidator.BatchEntry{Keys: []string{"a"}})

		_ = sc.Drain()
		assert.Zero(t, sc.Len())
		assert.Empty(t, sc.Drain(), "second drain is empty")
	})

	t.Run("unique ids", func(t *testing.T) {
		t.Parallel()

		a, b := invalidator.NewScope(), invalidator.NewScope()
		assert.NotEmpty(t, a.ID())
		assert.NotEqual(t, a.ID(), b.ID())
	})
}

func TestScopeContext(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		sc := invalidator.NewScope()
		ctx := invalidator.WithScope(context.Background(), sc)
		assert.Same(t, sc, invalidator.ScopeFrom(ctx))
	})

	t.Run("absent scope", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, invalidator.ScopeFrom(context.Background()))
	})
}
