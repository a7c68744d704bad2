package infra

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger constructs a zerolog.Logger for the given environment. Development
// gets a human readable console writer at debug level, everything else emits
// JSON at info level.
func NewLogger(appEnv string) zerolog.Logger {
	return NewLoggerTo(appEnv, os.Stdout)
}

// NewLoggerTo is NewLogger writing to out.
func NewLoggerTo(appEnv string, out io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	if appEnv == "development" {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", "imageprocessor").
		Logger()

	if appEnv == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339})
	}

	return logger
}

// Logger aliases the zerolog.Logger so packages can accept it without
// importing the third-party module directly.
type Logger = zerolog.Logger

// NopLogger returns a logger that discards everything.
func NopLogger() Logger {
	return zerolog.Nop()
}
