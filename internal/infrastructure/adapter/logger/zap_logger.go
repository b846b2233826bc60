package logger

import (
	"os"
	"strings"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/core"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects encoding and destination for NewZapLogger
type Options struct {
	Level      string
	Format     string // json or console
	Output     string // stdout, stderr or a file path
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	CallerInfo bool
}

// ZapLogger implements the Logger interface using Zap
type ZapLogger struct {
	logger *zap.Logger
	level  zap.AtomicLevel
}

// NewZapLogger builds a logger from opts. File outputs rotate through lumberjack.
func NewZapLogger(opts Options) *ZapLogger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.MessageKey = "message"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if strings.ToLower(opts.Format) == "console" {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	level := zap.NewAtomicLevelAt(toZapLevel(core.ParseLogLevel(strings.ToLower(opts.Level))))
	zapCore := zapcore.NewCore(encoder, writerFor(opts), level)

	var zapOpts []zap.Option
	if opts.CallerInfo {
		zapOpts = append(zapOpts, zap.AddCaller(), zap.AddCallerSkip(1))
	}

	return &ZapLogger{
		logger: zap.New(zapCore, zapOpts...),
		level:  level,
	}
}

// NewZapLoggerWithCore wraps an existing zap core, e.g. an observer in tests
func NewZapLoggerWithCore(zapCore zapcore.Core, level core.LogLevel) *ZapLogger {
	atomic := zap.NewAtomicLevelAt(toZapLevel(level))
	return &ZapLogger{
		logger: zap.New(zapCore),
		level:  atomic,
	}
}

// NewDefaultLogger creates a console logger on stdout at info level
func NewDefaultLogger() core.Logger {
	return NewZapLogger(Options{Level: "info", Format: "console", Output: "stdout"})
}

func writerFor(opts Options) zapcore.WriteSyncer {
	switch opts.Output {
	case "", "stdout":
		return zapcore.Lock(os.Stdout)
	case "stderr":
		return zapcore.Lock(os.Stderr)
	default:
		return zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.Output,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   true,
		})
	}
}

func toZapLevel(level core.LogLevel) zapcore.Level {
	switch level {
	case core.LogLevelDebug:
		return zap.DebugLevel
	case core.LogLevelWarn:
		return zap.WarnLevel
	case core.LogLevelError:
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

// SetLevel sets the minimum log level
func (l *ZapLogger) SetLevel(level core.LogLevel) {
	l.level.SetLevel(toZapLevel(level))
}

// GetLevel gets the current log level
func (l *ZapLogger) GetLevel() core.LogLevel {
	switch l.level.Level() {
	case zap.DebugLevel:
		return core.LogLevelDebug
	case zap.WarnLevel:
		return core.LogLevelWarn
	case zap.ErrorLevel:
		return core.LogLevelError
	default:
		return core.LogLevelInfo
	}
}

// mapToZapFields converts a map of fields to zap fields
func mapToZapFields(fields map[string]any) []zap.Field {
	zapFields := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zapFields = append(zapFields, zap.Any(k, v))
	}
	return zapFields
}

// Debug logs debug messages
func (l *ZapLogger) Debug(message string, fields map[string]any) {
	l.logger.Debug(message, mapToZapFields(fields)...)
}

// Info logs informational messages
func (l *ZapLogger) Info(message string, fields map[string]any) {
	l.logger.Info(message, mapToZapFields(fields)...)
}

// Warn logs warning messages
func (l *ZapLogger) Warn(message string, fields map[string]any) {
	l.logger.Warn(message, mapToZapFields(fields)...)
}

// Error logs error messages
func (l *ZapLogger) Error(message string, fields map[string]any) {
	l.logger.Error(message, mapToZapFields(fields)...)
}

// Flush ensures all buffered logs are written. Syncing a terminal fails on
// some platforms, which is not worth reporting.
func (l *ZapLogger) Flush() error {
	if err := l.logger.Sync(); err != nil && !strings.Contains(err.Error(), "invalid argument") &&
		!strings.Contains(err.Error(), "inappropriate ioctl") {
		return err
	}
	return nil
}
