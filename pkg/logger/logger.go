// Package logger provides a simple, clean logging interface backed by zerolog.
package logger

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Logger defines the logging interface.
type Logger interface {
	// Context-aware variants
	Info(ctx context.Context, msg string, fields ...Field)
	Error(ctx context.Context, msg string, fields ...Field)
	Debug(ctx context.Context, msg string, fields ...Field)
	Warn(ctx context.Context, msg string, fields ...Field)
	Fatal(ctx context.Context, msg string, fields ...Field)

	Named(name string) Logger
}

// Field represents a key-value pair for structured logging.
type Field struct {
	Key   string
	Value interface{}
}

// Field constructors.
func String(key, val string) Field          { return Field{Key: key, Value: val} }
func Int(key string, val int) Field         { return Field{Key: key, Value: val} }
func Float64(key string, val float64) Field { return Field{Key: key, Value: val} }
func Any(key string, val interface{}) Field { return Field{Key: key, Value: val} }
func Error(err error) Field                 { return Field{Key: "error", Value: err} }

// zeroLogger implements Logger using zerolog.
type zeroLogger struct {
	l zerolog.Logger
}

func (z *zeroLogger) Named(name string) Logger {
	return &zeroLogger{l: z.l.With().Str("component", name).Logger()}
}

func (z *zeroLogger) Info(ctx context.Context, msg string, fields ...Field) {
	emit(z.l.Info().Ctx(ctx), msg, fields)
}

func (z *zeroLogger) Error(ctx context.Context, msg string, fields ...Field) {
	emit(z.l.Error().Ctx(ctx), msg, fields)
}

func (z *zeroLogger) Debug(ctx context.Context, msg string, fields ...Field) {
	emit(z.l.Debug().Ctx(ctx), msg, fields)
}

func (z *zeroLogger) Warn(ctx context.Context, msg string, fields ...Field) {
	emit(z.l.Warn().Ctx(ctx), msg, fields)
}

func (z *zeroLogger) Fatal(ctx context.Context, msg string, fields ...Field) {
	emit(z.l.Fatal().Ctx(ctx), msg, fields)
}

func emit(e *zerolog.Event, msg string, fields []Field) {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			e = e.Str(f.Key, v)
		case int:
			e = e.Int(f.Key, v)
		case float64:
			e = e.Float64(f.Key, v)
		case error:
			e = e.AnErr(f.Key, v)
		default:
			e = e.Interface(f.Key, v)
		}
	}
	e.Msg(msg)
}

var global atomic.Pointer[zeroLogger]

// Init initializes the global logger writing JSON lines to stdout.
// Default level is info; change it with SetLevelString.
func Init() error {
	zl := zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	global.Store(&zeroLogger{l: zl})
	return nil
}

// Get returns the global logger.
func Get() Logger {
	l := global.Load()
	if l == nil {
		// Don't auto-initialize with production settings
		// The logger should be explicitly initialized by the application
		panic("logger not initialized. Call logger.Init() first")
	}
	return l
}

// Named creates a named logger.
func Named(name string) Logger {
	return Get().Named(name)
}

// Sync flushes buffered log entries.
func Sync() error {
	// zerolog writes synchronously; nothing to flush
	return nil
}

// SetLevelString parses and sets the global logging level.
// Accepts: debug, info, warn/warning, error (case-insensitive).
func SetLevelString(level string) error {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "", "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn", "warning":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		return fmt.Errorf("unknown log level: %s", level)
	}
	return nil
}
