package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/kurakampus/kurakampus-cli/internal/config"
)

// New builds the application logger from the logging configuration.
// A single instance is created at startup and passed to every component
// that needs one; there is no package-level logger.
func New(cfg config.LoggingConfig) zerolog.Logger {
	return NewWithOutput(cfg, os.Stderr)
}

// NewWithOutput is New with an explicit output, used by tests to capture logs.
func NewWithOutput(cfg config.LoggingConfig, out io.Writer) zerolog.Logger {
	level := parseLogLevel(cfg.Level)

	if strings.ToLower(cfg.Format) == "json" {
		return zerolog.New(out).Level(level).With().
			Timestamp().
			Logger()
	}

	console := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(console).Level(level).With().
		Timestamp().
		Logger()
}

// parseLogLevel parses string log level to zerolog level
func parseLogLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	default:
		return zerolog.InfoLevel
	}
}
