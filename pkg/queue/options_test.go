package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertOptsFromMap(t *testing.T) {
	t.Parallel()

	t.Run("empty map", func(t *testing.T) {
		t.Parallel()

		opts := insertOptsFromMap(nil)
		require.NotNil(t, opts)
		assert.Empty(t, opts.Queue)
		assert.Zero(t, opts.Priority)
	})

	t.Run("recognized keys", func(t *testing.T) {
		t.Parallel()

		opts := insertOptsFromMap(map[string]any{
			"queue":        "low_priority",
			"priority":     2,
			"max_attempts": 3,
			"unique_for":   time.Minute,
			"tags":         []string{"cache", "product"},
		})

		assert.Equal(t, "low_priority", opts.Queue)
		assert.Equal(t, 2, opts.Priority)
		assert.Equal(t, 3, opts.MaxAttempts)
		assert.Equal(t, time.Minute, opts.UniqueOpts.ByPeriod)
		assert.Equal(t, []string{"cache", "product"}, opts.Tags)
	})

	t.Run("scheduled_in sets a future time", func(t *testing.T) {
		t.Parallel()

		before := time.Now()
		opts := insertOptsFromMap(map[string]any{"scheduled_in": "5m"})
		assert.WithinDuration(t, before.Add(5*time.Minute), opts.ScheduledAt, 2*time.Second)
	})

	t.Run("numeric values from yaml or json decoding", func(t *testing.T) {
		t.Parallel()

		opts := insertOptsFromMap(map[string]any{
			"priority":     float64(3),
			"max_attempts": int64(7),
		})
		assert.Equal(t, 3, opts.Priority)
		assert.Equal(t, 7, opts.MaxAttempts)
	})

	t.Run("tags decoded as any slice", func(t *testing.T) {
		t.Parallel()

		opts := insertOptsFromMap(map[string]any{"tags": []any{"a", "b"}})
		assert.Equal(t, []string{"a", "b"}, opts.Tags)
	})

	t.Run("unknown and malformed keys ignored", func(t *testing.T) {
		t.Parallel()

		opts := insertOptsFromMap(map[string]any{
			"custom_annotation": "kept elsewhere",
			"priority":          "high",
			"scheduled_in":      "soon",
			"tags":              []any{"a", 42},
		})
		assert.Zero(t, opts.Priority)
		assert.True(t, opts.ScheduledAt.IsZero())
		assert.Empty(t, opts.Tags)
	})
}

func TestInvalidationArgsKind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "cache_invalidation", invalidationArgs{}.Kind())
}
