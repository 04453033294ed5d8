package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/amirhossein-jamali/transaction-processor/internal/domain/port/core"
)

func TestZapLogger_Levels(t *testing.T) {
	zapCore, logs := observer.New(zapcore.DebugLevel)
	log := NewZapLoggerWithCore(zapCore, core.LogLevelInfo)

	log.Debug("hidden", nil)
	log.Info("Transaction created", map[string]any{"transaction_id": "tx-1"})
	log.Warn("Duplicate reference detected", nil)

	require.Equal(t, 2, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Transaction created", entry.Message)
	assert.Equal(t, zapcore.InfoLevel, entry.Level)
	assert.Equal(t, "tx-1", entry.ContextMap()["transaction_id"])

	log.SetLevel(core.LogLevelDebug)
	assert.Equal(t, core.LogLevelDebug, log.GetLevel())
	log.Debug("visible", nil)
	assert.Equal(t, 3, logs.Len())

	log.SetLevel(core.LogLevelError)
	log.Warn("suppressed", nil)
	log.Error("Status transition failed", nil)
	assert.Equal(t, 4, logs.Len())
}

func TestZapLogger_WithSharesLevel(t *testing.T) {
	zapCore, logs := observer.New(zapcore.DebugLevel)
	log := NewZapLoggerWithCore(zapCore, core.LogLevelInfo)

	child := log.With(map[string]any{"component": "worker"})
	child.Info("Dispatcher loop started", map[string]any{"loop": 0})

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "worker", fields["component"])
	assert.EqualValues(t, 0, fields["loop"])

	log.SetLevel(core.LogLevelWarn)
	child.Info("dropped", nil)
	assert.Equal(t, 1, logs.Len())
}

func TestNewZapLogger(t *testing.T) {
	log, err := NewZapLogger(Options{Production: true, Level: "warn"})
	require.NoError(t, err)
	assert.Equal(t, core.LogLevelWarn, log.GetLevel())

	nop := NewNopLogger()
	assert.NotPanics(t, func() {
		nop.Error("ignored", map[string]any{"k": "v"})
	})
}
