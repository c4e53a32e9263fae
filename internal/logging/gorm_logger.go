package logger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// slowQueryThreshold is the latency beyond which a query is logged as slow.
const slowQueryThreshold = 200 * time.Millisecond

// QueryLogger adapts GORM's logging interface onto zap so session and
// analysis persistence shares the application's log files.
type QueryLogger struct {
	zap      *zap.Logger
	LogLevel gormlogger.LogLevel
}

func NewQueryLogger(log *zap.Logger) *QueryLogger {
	return &QueryLogger{zap: log, LogLevel: gormlogger.Warn}
}

// LogMode returns a copy at the given level, per the gorm logger contract.
func (l *QueryLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.LogLevel = level
	return &clone
}

func (l *QueryLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormlogger.Info {
		l.zap.Sugar().Infof(msg, data...)
	}
}

func (l *QueryLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormlogger.Warn {
		l.zap.Sugar().Warnf(msg, data...)
	}
}

func (l *QueryLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormlogger.Error {
		l.zap.Sugar().Errorf(msg, data...)
	}
}

// Trace logs each query with its latency and row count. Failed queries log at
// Error except record-not-found, which handlers treat as a normal outcome
// (unknown session or empty history).
func (l *QueryLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.LogLevel <= gormlogger.Silent {
		return
	}

	latency := time.Since(begin)
	sql, rows := fc()
	fields := []zap.Field{
		zap.Duration("latency", latency),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
	}

	switch {
	case err != nil && l.LogLevel >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		l.zap.Error("Query failed", append(fields, zap.Error(err))...)
	case latency > slowQueryThreshold && l.LogLevel >= gormlogger.Warn:
		l.zap.Warn("Slow query", fields...)
	case l.LogLevel >= gormlogger.Info:
		l.zap.Debug("Query executed", fields...)
	}
}
