package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logger configuration
type Config struct {
	Level          string // debug, info, warn, error
	Format         string // json, pretty
	FileEnabled    bool
	FilePath       string // logs directory path
	RotationSize   int    // MB
	RetentionDays  int
	ServiceName    string
	ServiceVersion string
}

// Init initializes the global logger
func Init(cfg Config) error {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	var writers []io.Writer

	if cfg.Format == "pretty" || cfg.Format == "console" {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: "15:04:05",
		})
	} else {
		writers = append(writers, os.Stderr)
	}

	if cfg.FileEnabled {
		if err := os.MkdirAll(cfg.FilePath, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}

		writers = append(writers, rotatingFile(cfg.FilePath, "app.log", cfg.RotationSize, cfg.RetentionDays, 10))

		// error.log 에는 ERROR 이상만
		writers = append(writers, &zerolog.FilteredLevelWriter{
			Writer: zerolog.LevelWriterAdapter{
				Writer: rotatingFile(cfg.FilePath, "error.log", cfg.RotationSize, cfg.RetentionDays, 10),
			},
			Level: zerolog.ErrorLevel,
		})
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Str("version", cfg.ServiceVersion).
		Logger()

	log.Info().
		Str("level", cfg.Level).
		Str("format", cfg.Format).
		Bool("file_enabled", cfg.FileEnabled).
		Msg("Logger initialized")

	return nil
}

func rotatingFile(dir, name string, sizeMB, days, backups int) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   filepath.Join(dir, name),
		MaxSize:    sizeMB,
		MaxAge:     days,
		MaxBackups: backups,
		Compress:   true,
	}
}

// NewQueryLogger creates a logger for database queries
func NewQueryLogger(logPath string, rotationSize int, retentionDays int) zerolog.Logger {
	return fileLogger(logPath, "query.log", "query", rotationSize, retentionDays, 5)
}

// NewAccessLogger creates a logger for HTTP access logs
func NewAccessLogger(logPath string, rotationSize int, retentionDays int) zerolog.Logger {
	return fileLogger(logPath, "access.log", "access", rotationSize, retentionDays, 10)
}

// fileLogger 경로가 없거나 디렉터리 생성 실패 시 전역 로거 사용
func fileLogger(logPath, name, kind string, rotationSize, retentionDays, backups int) zerolog.Logger {
	if logPath == "" {
		return log.Logger
	}

	if err := os.MkdirAll(logPath, 0755); err != nil {
		log.Warn().Err(err).Str("type", kind).Msg("Failed to create log directory, using default logger")
		return log.Logger
	}

	return zerolog.New(rotatingFile(logPath, name, rotationSize, retentionDays, backups)).With().
		Timestamp().
		Str("type", kind).
		Logger()
}

type requestIDKey struct{}

// WithRequestID 요청 ID 를 context 에 저장 (쿼리 로그 연계)
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom context 의 요청 ID (없으면 "")
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
