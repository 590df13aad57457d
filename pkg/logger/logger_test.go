package logger_test

import (
	"context"
	"shortener/pkg/logger"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetup(t *testing.T) {
	for _, env := range []string{logger.DevelopmentEnvironment, logger.ProductionEnvironment, "staging"} {
		t.Run(env, func(t *testing.T) {
			require.NotPanics(t, func() { logger.Setup(env) })
			require.NotNil(t, logger.Get(context.Background()))
		})
	}

	logger.Setup(logger.DevelopmentEnvironment)
	require.True(t, logger.IsDebug(context.Background()))

	logger.Setup(logger.ProductionEnvironment)
	require.False(t, logger.IsDebug(context.Background()))
}

func TestGet_fromContext(t *testing.T) {
	custom := zap.NewExample()
	ctx := logger.WithLogger(context.Background(), custom)

	require.Equal(t, custom, logger.Get(ctx))
}

func TestWithFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ctx := logger.WithLogger(context.Background(), zap.New(core))

	ctx = logger.WithFields(ctx, zap.String("code", "c984d06a"))
	logger.Info(ctx, "resolved", zap.Int("attempt", 1))
	logger.Debug(ctx, "debug")
	logger.Warn(ctx, "warn")
	logger.Error(ctx, "error")

	entries := logs.All()
	require.Len(t, entries, 4)
	require.Equal(t, "resolved", entries[0].Message)
	require.Equal(t, map[string]any{"code": "c984d06a", "attempt": int64(1)}, entries[0].ContextMap())
	for _, e := range entries {
		require.Equal(t, "c984d06a", e.ContextMap()["code"])
	}
	require.Equal(t, zapcore.ErrorLevel, entries[3].Level)
}

func TestIsDebug_infoLogger(t *testing.T) {
	core, _ := observer.New(zapcore.InfoLevel)
	ctx := logger.WithLogger(context.Background(), zap.New(core))

	require.False(t, logger.IsDebug(ctx))
}
