package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sweep/pkg/logger"
)

type ctxKey struct{}

func requestIDExtractor(ctx context.Context) (slog.Attr, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	if !ok {
		return slog.Attr{}, false
	}
	return slog.String("request_id", id), true
}

func logged(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestContextHandler(t *testing.T) {
	t.Parallel()

	t.Run("injects extracted attributes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := slog.New(logger.NewContextHandler(
			slog.NewJSONHandler(&buf, nil),
			requestIDExtractor,
		))

		ctx := context.WithValue(context.Background(), ctxKey{}, "req-42")
		log.InfoContext(ctx, "hello")

		out := logged(t, &buf)
		assert.Equal(t, "req-42", out["request_id"])
		assert.Equal(t, "hello", out["msg"])
	})

	t.Run("skips absent values", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := slog.New(logger.NewContextHandler(
			slog.NewJSONHandler(&buf, nil),
			requestIDExtractor,
		))

		log.Info("hello")

		out := logged(t, &buf)
		_, ok := out["request_id"]
		assert.False(t, ok)
	})

	t.Run("nil extractors filtered", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := slog.New(logger.NewContextHandler(
			slog.NewJSONHandler(&buf, nil),
			nil,
			requestIDExtractor,
		))

		assert.NotPanics(t, func() { log.Info("hello") })
	})

	t.Run("preserves WithAttrs", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := slog.New(logger.NewContextHandler(
			slog.NewJSONHandler(&buf, nil),
			requestIDExtractor,
		)).With(slog.String("component", "deleter"))

		ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")
		log.InfoContext(ctx, "hello")

		out := logged(t, &buf)
		assert.Equal(t, "deleter", out["component"])
		assert.Equal(t, "req-1", out["request_id"])
	})
}

func TestNewNope(t *testing.T) {
	t.Parallel()

	log := logger.NewNope()
	require.NotNil(t, log)
	assert.NotPanics(t, func() { log.Error("dropped") })
}
