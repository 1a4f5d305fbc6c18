// Package logging constructs the leveled logger shared by the CLI and gateway.
package logging

import (
	"strings"

	"github.com/tryfix/log"
)

// DefaultLevel is used when no level, or an unknown one, is requested.
const DefaultLevel = "info"

// New returns a logger that emits entries at or above level
// (trace, debug, info, warn, error).
func New(level string) log.Logger {
	return log.Constructor.Log(
		log.WithColors(false),
		log.WithLevel(parseLevel(level)),
		log.WithFilePath(false),
	)
}

func parseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return log.Level("TRACE")
	case "debug":
		return log.Level("DEBUG")
	case "warn", "warning":
		return log.Level("WARN")
	case "error":
		return log.Level("ERROR")
	default:
		return log.Level("INFO")
	}
}
