package logger_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"sharednotes/pkg/logger"
)

func TestNewLogger(t *testing.T) {
	levels := []string{"debug", "info", "warn", "warning", "error", "invalid", ""}

	for _, env := range []logger.Environment{logger.Development, logger.Production} {
		for _, level := range levels {
			t.Run(string(env)+"/level="+level, func(t *testing.T) {
				log, err := logger.NewLogger(env, level)
				require.NoError(t, err)
				require.NotNil(t, log)

				assert.NotPanics(t, func() {
					log.Debug(context.Background(), "debug message")
					log.Info(context.Background(), "info message")
				})
			})
		}
	}
}

func TestLoggerWith(t *testing.T) {
	log, err := logger.NewLogger(logger.Development, "info")
	require.NoError(t, err)

	derived := log.With(zap.String("component", "test"))
	assert.NotSame(t, log, derived)
}

func TestRequestIDIsAttached(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := logger.NewFromZap(zap.New(core))

	ctx := logger.NewRequestIDContext(context.Background(), "req-42")
	log.Info(ctx, "with id")
	log.Info(context.Background(), "without id")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "req-42", entries[0].ContextMap()[logger.RequestID])
	_, present := entries[1].ContextMap()[logger.RequestID]
	assert.False(t, present)
}

func TestWithRequestID(t *testing.T) {
	log, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)

	t.Run("returns same logger without request id", func(t *testing.T) {
		assert.Same(t, log, log.WithRequestID(context.Background()))
	})

	t.Run("returns new logger with request id", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "abc")
		assert.NotSame(t, log, log.WithRequestID(ctx))
	})
}

func TestNewRequestIDContext(t *testing.T) {
	t.Run("keeps provided id", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "fixed")
		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		assert.Equal(t, "fixed", id)
	})

	t.Run("generates uuid for empty id", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "")
		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	})

	t.Run("replaces unsafe ids", func(t *testing.T) {
		for _, id := range []string{"a b", "line\nbreak", "тест", strings.Repeat("x", logger.MaxRequestIDLength+1)} {
			ctx := logger.NewRequestIDContext(context.Background(), id)
			got, ok := logger.GetRequestID(ctx)
			require.True(t, ok)
			assert.NotEqual(t, id, got)
			_, err := uuid.Parse(got)
			assert.NoError(t, err)
		}
	})

	t.Run("keeps id at max length", func(t *testing.T) {
		id := strings.Repeat("x", logger.MaxRequestIDLength)
		got, _ := logger.GetRequestID(logger.NewRequestIDContext(context.Background(), id))
		assert.Equal(t, id, got)
	})

	t.Run("absent in plain context", func(t *testing.T) {
		_, ok := logger.GetRequestID(context.Background())
		assert.False(t, ok)
	})
}

func TestFromContext(t *testing.T) {
	t.Run("logger present", func(t *testing.T) {
		testLogger, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		ctx := logger.NewContext(context.Background(), testLogger)
		got, err := logger.FromContext(ctx)
		require.NoError(t, err)
		assert.Same(t, testLogger, got)
	})

	t.Run("logger missing", func(t *testing.T) {
		got, err := logger.FromContext(context.Background())
		require.Error(t, err)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, logger.ErrLoggerNotFound)
	})
}

func TestLogFallbackOrder(t *testing.T) {
	logger.SetGlobalLogger(nil)
	t.Cleanup(func() { logger.SetGlobalLogger(nil) })

	fallback := logger.Log(context.Background())
	require.NotNil(t, fallback)

	require.NoError(t, logger.InitGlobalLoggerWithLevel(logger.Production, "info"))
	global := logger.Log(context.Background())
	assert.NotSame(t, fallback, global)

	require.NoError(t, logger.InitGlobalLoggerWithLevel(logger.Development, "debug"))
	assert.Same(t, global, logger.Log(context.Background()), "second init must keep the first global logger")

	ctxLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	ctx := logger.NewContext(context.Background(), ctxLogger)
	assert.Same(t, ctxLogger, logger.Log(ctx))
}
