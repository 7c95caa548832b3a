package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedZap(t *testing.T) (*ZapLogger, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	return NewZapLogger(zap.New(core)), logs
}

func TestZapLogger_LevelsAndFields(t *testing.T) {
	log, logs := newObservedZap(t)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	entries := logs.All()
	require.Len(t, entries, 4)

	want := []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel}
	for i, e := range entries {
		require.Equal(t, want[i], e.Level)
		require.Len(t, e.Context, 1)
	}
	require.Equal(t, "inf", entries[1].Message)
	require.Equal(t, int64(2), entries[1].ContextMap()["b"])
}

func TestZapLogger_With_AddsFields(t *testing.T) {
	log, logs := newObservedZap(t)

	log.With("req_id", "123").Info(context.Background(), "hello", "k", "v")

	entries := logs.All()
	require.Len(t, entries, 1)
	m := entries[0].ContextMap()
	require.Equal(t, "123", m["req_id"])
	require.Equal(t, "v", m["k"])
}

func TestNewProductionZapLogger_BadLevel(t *testing.T) {
	_, err := NewProductionZapLogger("loud")
	require.Error(t, err)

	l, err := NewProductionZapLogger("warn")
	require.NoError(t, err)
	require.NotNil(t, l)
}

func TestNop_Discards(t *testing.T) {
	var l Logger = Nop{}
	l.Info(context.Background(), "ignored", "k", "v")
	require.NotNil(t, l.With("a", 1))
}
