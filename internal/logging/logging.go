// Package logging provides JSON-lines structured logging for flowbridge.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Config configures the structured logger.
type Config struct {
	// Output is the writer for log output (default: os.Stderr)
	Output io.Writer

	// Level is the minimum log level (default: LevelInfo)
	Level slog.Level

	// Debug enables debug level logging (overrides Level)
	Debug bool
}

// DefaultConfig returns the default logging configuration.
func DefaultConfig() *Config {
	return &Config{
		Output: os.Stderr,
		Level:  slog.LevelInfo,
		Debug:  false,
	}
}

// New creates a new JSON-lines structured logger. Log format is one object
// per line:
//
//	{"ts":"2024-01-15T10:30:00Z","level":"info","msg":"subprocess succeeded","argv":[...]}
//
// Log levels:
//   - debug: Verbose, per-subprocess detail (enabled via FLOWBRIDGE_DEBUG=1)
//   - info: Operation start and completion
//   - warn: Non-fatal issues (swallowed cleanup failures, cache errors)
//   - error: Fatal issues requiring attention
func New(cfg *Config) *slog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	level := cfg.Level
	if cfg.Debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Rename "time" to "ts" to keep lines compact
			if a.Key == slog.TimeKey {
				a.Key = "ts"
			}
			return a
		},
	}

	return slog.New(slog.NewJSONHandler(output, opts))
}

// ParseLevel maps a config level string to a slog level. Unknown strings map
// to info.
func ParseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewFromEnv creates a logger configured from environment variables.
// FLOWBRIDGE_DEBUG=1 enables debug logging.
func NewFromEnv() *slog.Logger {
	cfg := DefaultConfig()
	if os.Getenv("FLOWBRIDGE_DEBUG") == "1" {
		cfg.Debug = true
	}
	return New(cfg)
}
