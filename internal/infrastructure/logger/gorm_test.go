package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGormLogger(level gormlogger.LogLevel) (*GormLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level), logs
}

func TestGormLoggerTrace(t *testing.T) {
	ctx := context.Background()
	fc := func() (string, int64) { return "SELECT 1", 1 }

	t.Run("failed query is logged with the statement", func(t *testing.T) {
		l, logs := newObservedGormLogger(gormlogger.Warn)

		l.Trace(ctx, time.Now(), fc, errors.New("connection reset"))

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, zapcore.ErrorLevel, entry.Level)
		assert.Equal(t, "query failed", entry.Message)
		assert.Equal(t, "SELECT 1", entry.ContextMap()["sql"])
	})

	t.Run("record not found is not an error", func(t *testing.T) {
		l, logs := newObservedGormLogger(gormlogger.Warn)

		l.Trace(ctx, time.Now(), fc, gormlogger.ErrRecordNotFound)

		assert.Equal(t, 0, logs.Len())
	})

	t.Run("slow query is flagged at warn", func(t *testing.T) {
		l, logs := newObservedGormLogger(gormlogger.Warn)

		l.Trace(ctx, time.Now().Add(-time.Second), fc, nil)

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, zapcore.WarnLevel, entry.Level)
		assert.Equal(t, "slow query", entry.Message)
	})

	t.Run("silent level swallows everything", func(t *testing.T) {
		l, logs := newObservedGormLogger(gormlogger.Silent)

		l.Trace(ctx, time.Now(), fc, errors.New("connection reset"))

		assert.Equal(t, 0, logs.Len())
	})

	t.Run("request id from the context is attached", func(t *testing.T) {
		l, logs := newObservedGormLogger(gormlogger.Info)

		l.Trace(WithRequestID(ctx, "req-9"), time.Now(), fc, nil)

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, zapcore.DebugLevel, entry.Level)
		assert.Equal(t, "query", entry.Message)
		assert.Equal(t, "req-9", entry.ContextMap()["request_id"])
	})
}

func TestGormLoggerLogMode(t *testing.T) {
	l, logs := newObservedGormLogger(gormlogger.Error)
	ctx := context.Background()

	l.Info(ctx, "suppressed %s", "message")
	assert.Equal(t, 0, logs.Len())

	lowered := l.LogMode(gormlogger.Info)
	lowered.Info(ctx, "hello %s", "world")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "hello world", logs.All()[0].Message)

	// the original keeps its level
	l.Info(ctx, "still suppressed")
	assert.Equal(t, 1, logs.Len())
}
