// Package zerolog implements the domain Logger on top of rs/zerolog.
package zerolog

import (
	"fmt"
	"io"
	"time"

	"github.com/ochairo/salestax/internal/domain/interfaces"
	"github.com/rs/zerolog"
)

// Output formats
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

var levels = map[string]zerolog.Level{
	"debug": zerolog.DebugLevel,
	"info":  zerolog.InfoLevel,
	"warn":  zerolog.WarnLevel,
	"error": zerolog.ErrorLevel,
}

// Logger implements interfaces.Logger
type Logger struct {
	zl zerolog.Logger
}

// New creates a logger writing to w at the given level ("debug", "info", "warn", "error")
// in "console" or "json" format
func New(w io.Writer, level, format string) (*Logger, error) {
	lvl, ok := levels[level]
	if !ok {
		return nil, fmt.Errorf("unknown log level %q (want debug, info, warn or error)", level)
	}

	switch format {
	case FormatConsole:
		w = zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.TimeOnly}
	case FormatJSON:
	default:
		return nil, fmt.Errorf("unknown log format %q (want console or json)", format)
	}

	return &Logger{zl: zerolog.New(w).Level(lvl).With().Timestamp().Logger()}, nil
}

// Debug logs debug-level messages
func (l *Logger) Debug(msg string, fields ...interfaces.Field) {
	write(l.zl.Debug(), msg, fields)
}

// Info logs informational messages
func (l *Logger) Info(msg string, fields ...interfaces.Field) {
	write(l.zl.Info(), msg, fields)
}

// Warn logs warning messages
func (l *Logger) Warn(msg string, fields ...interfaces.Field) {
	write(l.zl.Warn(), msg, fields)
}

// Error logs error messages
func (l *Logger) Error(msg string, fields ...interfaces.Field) {
	write(l.zl.Error(), msg, fields)
}

// write is a no-op when the level is disabled (zerolog hands back a nil event)
func write(e *zerolog.Event, msg string, fields []interfaces.Field) {
	if e == nil {
		return
	}

	for _, f := range fields {
		switch v := f.Value.(type) {
		case error:
			e = e.AnErr(f.Key, v)
		case fmt.Stringer:
			e = e.Stringer(f.Key, v)
		default:
			e = e.Interface(f.Key, v)
		}
	}

	e.Msg(msg)
}
