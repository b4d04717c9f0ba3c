package main

import (
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
)

// levelFor maps output flags to a log level. Quiet wins over verbose.
func levelFor(verbose, quiet bool) slog.Level {
	switch {
	case quiet:
		return slog.LevelError
	case verbose:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// newLogger returns a tint logger writing to w. Colors are used only when
// w is a terminal.
func newLogger(w io.Writer, level slog.Level, color bool) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    !color,
	}))
}
