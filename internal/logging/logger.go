package logging

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type loggerKey struct{}

// New builds a structured logger with sane defaults for JSON logs.
// In production the console writer keeps plain output suitable for log
// collectors; elsewhere it stays colorized for local reading.
func New(appName, env string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339Nano,
		NoColor:    env == "production",
	}
	level := zerolog.InfoLevel
	if env == "development" {
		level = zerolog.DebugLevel
	}
	return zerolog.New(output).Level(level).With().
		Timestamp().
		Str("app", appName).
		Str("env", env).
		Logger()
}

// IntoContext injects a logger into context for downstream use.
func IntoContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns a zerolog.Logger stored in context, or a no-op logger.
func FromContext(ctx context.Context) zerolog.Logger {
	if ctx == nil {
		return zerolog.Nop()
	}
	if logger, ok := ctx.Value(loggerKey{}).(zerolog.Logger); ok {
		return logger
	}
	return zerolog.Nop()
}
