// Package logger builds the zerolog logger shared across story-cli.
package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New creates a console logger writing to stderr so log lines never mix with
// the JSON command output on stdout. Level comes from LOG_LEVEL and defaults
// to warn, keeping normal CLI runs quiet.
func New() zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	level := zerolog.WarnLevel
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Str("service", "story-cli").
		Logger()
}
