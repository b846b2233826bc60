package logger

import (
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/core"
)

// NoopLogger discards everything. Tests use it where log output is not asserted.
type NoopLogger struct {
	level core.LogLevel
}

// NewNoopLogger creates a new no-op logger
func NewNoopLogger() *NoopLogger {
	return &NoopLogger{level: core.LogLevelInfo}
}

func (l *NoopLogger) SetLevel(level core.LogLevel) { l.level = level }
func (l *NoopLogger) GetLevel() core.LogLevel { return l.level }
func (l *NoopLogger) Debug(string, map[string]any) {}
func (l *NoopLogger) Info(string, map[string]any) {}
func (l *NoopLogger) Warn(string, map[string]any) {}
func (l *NoopLogger) Error(string, map[string]any) {}
func (l *NoopLogger) Flush() error { return nil }
