// Package logging builds the charmbracelet loggers used across grid-quest.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Options controls logger construction.
type Options struct {
	Level  string // debug, info, warn, error; empty means info
	Format string // text, json, logfmt; empty means text
	Prefix string
	Output io.Writer // Defaults to os.Stderr
}

// New creates a logger with timestamps and the given prefix.
func New(opts Options) *log.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	return log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          opts.Prefix,
		Level:           ParseLevel(opts.Level),
		Formatter:       parseFormatter(opts.Format),
	})
}

// FromEnv fills empty level and format from GRIDQUEST_LOG_LEVEL and
// GRIDQUEST_LOG_FORMAT.
func FromEnv(opts Options) Options {
	if opts.Level == "" {
		opts.Level = os.Getenv("GRIDQUEST_LOG_LEVEL")
	}
	if opts.Format == "" {
		opts.Format = os.Getenv("GRIDQUEST_LOG_FORMAT")
	}
	return opts
}

// ParseLevel resolves a level name, falling back to info.
func ParseLevel(s string) log.Level {
	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return log.InfoLevel
	}
	return level
}

func parseFormatter(s string) log.Formatter {
	switch strings.ToLower(s) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
