package logger

import (
	"testing"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_LevelFiltering(t *testing.T) {
	obsCore, logs := observer.New(zap.DebugLevel)
	log := NewZapLoggerWithCore(obsCore, core.LogLevelInfo)

	log.Debug("hidden", nil)
	log.Info("Request created", map[string]any{"requestId": "r-1"})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Request created", entry.Message)
	assert.Equal(t, "r-1", entry.ContextMap()["requestId"])

	log.SetLevel(core.LogLevelDebug)
	assert.Equal(t, core.LogLevelDebug, log.GetLevel())
	log.Debug("now visible", nil)
	assert.Equal(t, 2, logs.Len())

	log.SetLevel(core.LogLevelError)
	log.Warn("dropped", nil)
	log.Error("kept", nil)
	assert.Equal(t, 3, logs.Len())
	assert.Equal(t, core.LogLevelError, log.GetLevel())
}

func TestToZapLevel(t *testing.T) {
	tests := []struct {
		in   core.LogLevel
		want string
	}{
		{core.LogLevelDebug, "debug"},
		{core.LogLevelInfo, "info"},
		{core.LogLevelWarn, "warn"},
		{core.LogLevelError, "error"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, toZapLevel(tt.in).String())
		})
	}
}
