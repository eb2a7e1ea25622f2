package invalidator_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sweep/pkg/invalidator"
	"github.com/dmitrymomot/sweep/pkg/settings"
)

// fakeBackend records bulk deletes and fails chunks on demand.
type fakeBackend struct {
	mu     sync.Mutex
	chunks [][]string
	failOn func(chunk []string) bool
}

func (f *fakeBackend) Delete(ctx context.Context, key string) error {
	return f.DeleteMulti(ctx, []string{key})
}

func (f *fakeBackend) DeleteMulti(_ context.Context, keys []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chunks = append(f.chunks, keys)
	if f.failOn != nil && f.failOn(keys) {
		return errors.New("backend down")
	}
	return nil
}

func (f *fakeBackend) calls() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]string, len(f.chunks))
	copy(out, f.chunks)
	return out
}

func (f *fakeBackend) deletedKeys() []string {
	var out []string
	for _, chunk := range f.calls() {
		out = append(out, chunk...)
	}
	return out
}

func TestDeleteKeys(t *testing.T) {
	t.Parallel()

	t.Run("chunks by batch size", func(t *testing.T) {
		t.Parallel()

		fb := &fakeBackend{}
		d := invalidator.NewDeleter(fb, settings.MustNew(settings.WithBatchSize(2)))

		deleted := d.DeleteKeys(context.Background(), []string{"a", "b", "c", "d", "e"}, "test")
		assert.Equal(t, 5, deleted)

		chunks := fb.calls()
		require.Len(t, chunks, 3)
		assert.Equal(t, []string{"a", "b"}, chunks[0])
		assert.Equal(t, []string{"c", "d"}, chunks[1])
		assert.Equal(t, []string{"e"}, chunks[2])
	})

	t.Run("single chunk when keys fit", func(t *testing.T) {
		t.Parallel()

		fb := &fakeBackend{}
		d := invalidator.NewDeleter(fb, settings.MustNew())

		deleted := d.DeleteKeys(context.Background(), []string{"a", "b"}, "test")
		assert.Equal(t, 2, deleted)
		assert.Len(t, fb.calls(), 1)
	})

	t.Run("failed chunk skipped, rest still runs", func(t *testing.T) {
		t.Parallel()

		fb := &fakeBackend{failOn: func(chunk []string) bool {
			return chunk[0] == "c"
		}}
		d := invalidator.NewDeleter(fb, settings.MustNew(settings.WithBatchSize(2)))

		deleted := d.DeleteKeys(context.Background(), []string{"a", "b", "c", "d", "e"}, "test")
		assert.Equal(t, 3, deleted, "failed chunk keys not counted")
		assert.Len(t, fb.calls(), 3, "every chunk attempted exactly once")
	})

	t.Run("empty key set is a no-op", func(t *testing.T) {
		t.Parallel()

		fb := &fakeBackend{}
		d := invalidator.NewDeleter(fb, settings.MustNew())

		assert.Zero(t, d.DeleteKeys(context.Background(), nil, "test"))
		assert.Empty(t, fb.calls())
	})

	t.Run("parallel deletes all chunks", func(t *testing.T) {
		t.Parallel()

		fb := &fakeBackend{}
		d := invalidator.NewDeleter(fb, settings.MustNew(settings.WithBatchSize(1)),
			invalidator.WithParallelism(4))

		keys := []string{"a", "b", "c", "d", "e", "f"}
		deleted := d.DeleteKeys(context.Background(), keys, "test")
		assert.Equal(t, 6, deleted)
		assert.ElementsMatch(t, keys, fb.deletedKeys())
	})

	t.Run("batch size change applies to next call", func(t *testing.T) {
		t.Parallel()

		fb := &fakeBackend{}
		cfg := settings.MustNew(settings.WithBatchSize(10))
		d := invalidator.NewDeleter(fb, cfg)

		d.DeleteKeys(context.Background(), []string{"a", "b", "c"}, "test")
		require.Len(t, fb.calls(), 1)

		require.NoError(t, cfg.Configure(settings.WithBatchSize(1)))
		d.DeleteKeys(context.Background(), []string{"a", "b", "c"}, "test")
		assert.Len(t, fb.calls(), 4)
	})
}
