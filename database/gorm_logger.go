package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Dragomitch/HDVParserDofus2Python-sub002/metrics"
)

// Queries slower than this are logged at warn level and counted.
const slowQueryThreshold = 200 * time.Millisecond

// GormLogger forwards GORM log output to slog and flags slow queries.
type GormLogger struct {
	log       *slog.Logger
	level     logger.LogLevel
	slowQuery time.Duration
}

// NewGormLogger creates a GORM logger backed by the given slog logger.
func NewGormLogger(log *slog.Logger) *GormLogger {
	return &GormLogger{
		log:       log,
		level:     logger.Warn,
		slowQuery: slowQueryThreshold,
	}
}

// LogMode implements logger.Interface
func (l *GormLogger) LogMode(level logger.LogLevel) logger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

// Info implements logger.Interface
func (l *GormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Info {
		l.log.InfoContext(ctx, fmt.Sprintf(msg, args...))
	}
}

// Warn implements logger.Interface
func (l *GormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Warn {
		l.log.WarnContext(ctx, fmt.Sprintf(msg, args...))
	}
}

// Error implements logger.Interface
func (l *GormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Error {
		l.log.ErrorContext(ctx, fmt.Sprintf(msg, args...))
	}
}

// Trace implements logger.Interface
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		l.log.ErrorContext(ctx, "query failed", "error", err, "duration", elapsed, "rows", rows, "sql", sql)
	case elapsed >= l.slowQuery:
		sql, rows := fc()
		metrics.SlowQueriesTotal.Inc()
		l.log.WarnContext(ctx, "slow query", "duration", elapsed, "rows", rows, "sql", sql)
	case l.level >= logger.Info:
		sql, rows := fc()
		l.log.DebugContext(ctx, "query", "duration", elapsed, "rows", rows, "sql", sql)
	}
}
