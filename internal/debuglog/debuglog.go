// Package debuglog constructs the zerolog loggers used by the command-line
// tools. The library itself takes any zerolog.Logger; this package only
// standardizes how the commands build theirs.
package debuglog

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console logger writing to w. With verbose false only
// warnings and errors pass; verbose true opens the Debug level, which is
// where the collector reports its passes.
func New(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	return zerolog.New(cw).Level(level).With().Timestamp().Logger()
}

// NewJSON returns a structured JSON logger, for machine consumption.
func NewJSON(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
