package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	applogger "github.com/wonny/influroi/internal/pkg/logger"
)

const slowQueryThreshold = 100 * time.Millisecond

type queryTraceKey struct{}

// queryTrace 시작 시각과 SQL. 종료 데이터에는 SQL 이 없어 시작 시점에 보관
type queryTrace struct {
	start time.Time
	sql   string
}

// QueryLogger pgx.QueryTracer 구현. 실행 시간과 요청 ID 를 남김
type QueryLogger struct {
	logger zerolog.Logger
}

// NewQueryLogger creates a new query logger
func NewQueryLogger(logger zerolog.Logger) *QueryLogger {
	return &QueryLogger{logger: logger}
}

// TraceQueryStart is called at the beginning of Query, QueryRow, and Exec calls
func (ql *QueryLogger) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryTraceKey{}, queryTrace{start: time.Now(), sql: data.SQL})
}

// TraceQueryEnd is called at the end of Query, QueryRow, and Exec calls
func (ql *QueryLogger) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	trace, ok := ctx.Value(queryTraceKey{}).(queryTrace)
	if !ok {
		trace.start = time.Now()
	}
	duration := time.Since(trace.start)

	var event *zerolog.Event
	msg := "Query executed"
	switch {
	case data.Err != nil:
		event = ql.logger.Error().Err(data.Err)
		msg = "Query failed"
	case duration > slowQueryThreshold:
		event = ql.logger.Warn()
		msg = "⚠️  Slow query detected"
	default:
		event = ql.logger.Debug()
	}

	if id := applogger.RequestIDFrom(ctx); id != "" {
		event = event.Str("request_id", id)
	}

	event.
		Str("sql", trace.sql).
		Int64("duration_ms", duration.Milliseconds()).
		Str("command_tag", data.CommandTag.String()).
		Msg(msg)
}

// PgxZerologAdapter adapts zerolog.Logger to pgx's Logger interface
type PgxZerologAdapter struct {
	logger zerolog.Logger
}

// NewPgxZerologAdapter creates a new adapter
func NewPgxZerologAdapter(logger zerolog.Logger) *PgxZerologAdapter {
	return &PgxZerologAdapter{logger: logger}
}

// Log implements pgx Logger interface
func (l *PgxZerologAdapter) Log(_ context.Context, level tracelog.LogLevel, msg string, data map[string]interface{}) {
	var event *zerolog.Event

	switch level {
	case tracelog.LogLevelTrace:
		event = l.logger.Trace()
	case tracelog.LogLevelDebug:
		event = l.logger.Debug()
	case tracelog.LogLevelWarn:
		event = l.logger.Warn()
	case tracelog.LogLevelError:
		event = l.logger.Error()
	default:
		event = l.logger.Info()
	}

	event.Fields(data).Msg(msg)
}
