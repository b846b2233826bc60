package database

import (
	"context"
	"errors"
	"strings"
	"time"

	coreport "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/core"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DatabaseLogger is a custom GORM logger that uses our core logger
type DatabaseLogger struct {
	coreLogger    coreport.Logger
	logLevel      logger.LogLevel
	slowThreshold time.Duration
	timeProvider  coreport.TimeProvider
}

// NewDatabaseLogger creates a GORM logger writing through coreLogger
func NewDatabaseLogger(coreLogger coreport.Logger, timeProvider coreport.TimeProvider, level string) logger.Interface {
	var logLevel logger.LogLevel
	switch strings.ToLower(level) {
	case "silent":
		logLevel = logger.Silent
	case "error":
		logLevel = logger.Error
	case "warn":
		logLevel = logger.Warn
	default:
		logLevel = logger.Info
	}

	return &DatabaseLogger{
		coreLogger:    coreLogger,
		logLevel:      logLevel,
		slowThreshold: 200 * time.Millisecond,
		timeProvider:  timeProvider,
	}
}

// LogMode sets the log level for the logger
func (l *DatabaseLogger) LogMode(level logger.LogLevel) logger.Interface {
	newLogger := *l
	newLogger.logLevel = level
	return &newLogger
}

// Info logs info messages
func (l *DatabaseLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.logLevel >= logger.Info {
		l.coreLogger.Info(msg, map[string]any{"source": "database"})
	}
}

// Warn logs warn messages
func (l *DatabaseLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.logLevel >= logger.Warn {
		l.coreLogger.Warn(msg, map[string]any{"source": "database"})
	}
}

// Error logs error messages
func (l *DatabaseLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.logLevel >= logger.Error {
		l.coreLogger.Error(msg, map[string]any{"source": "database"})
	}
}

// Trace logs SQL operations. Record-not-found is a normal outcome and never
// logged as an error.
func (l *DatabaseLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.logLevel <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	if l.timeProvider != nil {
		elapsed = l.timeProvider.Since(begin).Std()
	}

	sql, rows := fc()
	fields := map[string]any{
		"elapsed": elapsed.String(),
		"rows":    rows,
		"sql":     sql,
		"source":  "database",
	}
	if queryType := extractQueryType(sql); queryType != "" {
		fields["type"] = queryType
	}
	if tableName := extractTableName(sql); tableName != "" {
		fields["table"] = tableName
	}
	if err != nil {
		fields["error"] = err.Error()
	}

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.logLevel >= logger.Error:
		l.coreLogger.Error("SQL Error", fields)
	case elapsed > l.slowThreshold && l.slowThreshold > 0 && l.logLevel >= logger.Warn:
		l.coreLogger.Warn("Slow SQL Query", fields)
	case l.logLevel >= logger.Info:
		l.coreLogger.Debug("SQL Query", fields)
	}
}

// extractQueryType determines the type of SQL query (SELECT, INSERT, UPDATE, DELETE)
func extractQueryType(sql string) string {
	sqlUpper := strings.ToUpper(strings.TrimSpace(sql))
	for _, kind := range []string{"SELECT", "INSERT", "UPDATE", "DELETE"} {
		if strings.HasPrefix(sqlUpper, kind) {
			return kind
		}
	}
	return ""
}

// extractTableName returns the first identifier after FROM, INTO or UPDATE
func extractTableName(sql string) string {
	sqlUpper := strings.ToUpper(strings.TrimSpace(sql))

	var fromIndex int
	switch {
	case strings.HasPrefix(sqlUpper, "UPDATE "):
		fromIndex = len("UPDATE ")
	case strings.Contains(sqlUpper, " FROM "):
		fromIndex = strings.Index(sqlUpper, " FROM ") + 6
	case strings.Contains(sqlUpper, " INTO "):
		fromIndex = strings.Index(sqlUpper, " INTO ") + 6
	default:
		return ""
	}

	remainder := strings.TrimSpace(sqlUpper[fromIndex:])
	if spaceIndex := strings.IndexAny(remainder, " ("); spaceIndex != -1 {
		remainder = remainder[:spaceIndex]
	}
	return strings.Trim(remainder, `"`+"`")
}
