// Package logger configures the application's structured logging.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New returns a console logger at the level selected by the environment:
// LOG_LEVEL=debug|info|warn|error, with DEBUG=1 as a shorthand for debug.
func New() zerolog.Logger {
	return NewWithWriter(zerolog.ConsoleWriter{Out: os.Stderr}, levelFromEnv())
}

// NewWithWriter builds a logger on an explicit writer and level.
func NewWithWriter(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func levelFromEnv() zerolog.Level {
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "info":
		return zerolog.InfoLevel
	default:
		if os.Getenv("DEBUG") == "1" {
			return zerolog.DebugLevel
		}
		return zerolog.InfoLevel
	}
}
