// Package logging configures charmbracelet/log loggers for richtext and
// carries them through contexts.
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // process-wide fallback logger
var defaultLogger atomic.Pointer[log.Logger]

// New returns a stderr logger at level. Level names are those of
// log.ParseLevel plus "warning"; anything unknown means info.
func New(level string) *log.Logger {
	return newLogger(os.Stderr, ParseLevel(level))
}

// NewInteractive returns the logger used for command feedback such as the
// init prompt. It always logs at info level.
func NewInteractive() *log.Logger {
	return newLogger(os.Stderr, log.InfoLevel)
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{Level: level})
}

// ParseLevel maps a level name to a log.Level, defaulting to info.
func ParseLevel(name string) log.Level {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "warning" {
		return log.WarnLevel
	}
	level, err := log.ParseLevel(name)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Default returns the process-wide logger, creating an info logger on first
// use.
func Default() *log.Logger {
	if logger := defaultLogger.Load(); logger != nil {
		return logger
	}
	defaultLogger.CompareAndSwap(nil, New("info"))
	return defaultLogger.Load()
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *log.Logger) {
	defaultLogger.Store(logger)
}

// SetLevel changes the level of the process-wide logger.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}
