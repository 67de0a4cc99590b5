// Package logger holds the process-wide zerolog logger.
//
// Call Init once at startup, then Get anywhere else.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

type Options struct {
	// trace, debug, info, warn, error. Anything else falls back to info.
	Level  string
	Pretty bool
	Output io.Writer
}

var (
	initMu   sync.Mutex
	instance atomic.Pointer[zerolog.Logger]
)

// Init builds the singleton. Only the first call has any effect.
func Init(opts Options) zerolog.Logger {
	initMu.Lock()
	defer initMu.Unlock()

	if l := instance.Load(); l != nil {
		return *l
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	l := zerolog.New(out).
		Level(ParseLevel(opts.Level)).
		With().
		Timestamp().
		Logger()

	instance.Store(&l)
	return l
}

// Get returns the singleton, or a disabled logger when Init was never called
// (tests and the CLI before setup).
func Get() zerolog.Logger {
	if l := instance.Load(); l != nil {
		return *l
	}
	return zerolog.Nop()
}

// Reset drops the singleton so the next Init rebuilds it. Tests only.
func Reset() {
	initMu.Lock()
	defer initMu.Unlock()
	instance.Store(nil)
}

func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
