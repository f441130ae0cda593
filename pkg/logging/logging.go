// Package logging configures the process-wide structured logger used
// across the boundary, cache, and generation layers.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Level names the minimum severity a logger emits.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Format selects the on-wire log encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatConsole Format = "console"
)

// Options configures Init.
type Options struct {
	Level  Level
	Format Format
	Output io.Writer
}

// Init configures the global zerolog logger used by log.Logger and the
// package-level helpers below.
func Init(opts Options) {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	var writer io.Writer = out
	if opts.Format == FormatConsole {
		writer = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	log.Logger = zerolog.New(writer).With().Timestamp().Caller().Logger()
	zerolog.SetGlobalLevel(levelToZerolog(opts.Level))
}

func levelToZerolog(l Level) zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Component returns a child logger tagged with a "component" field, the
// convention used to scope log lines to cache/deltalog/anticheat/etc.
func Component(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
