// Package rlog builds the single zerolog.Logger every compgraph command
// shares, so CLI diagnostics (graph start/finish, row counts, errors)
// come out in one consistent structured form regardless of which
// algorithm is being run.
package rlog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New builds a logger writing to w at the given level. verbose, when
// true, lowers the level to debug regardless of levelName.
func New(w io.Writer, levelName string, verbose bool) zerolog.Logger {
	level, err := zerolog.ParseLevel(levelName)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Default builds the standard console-oriented logger used by cmd/ when
// no output override is supplied.
func Default(verbose bool) zerolog.Logger {
	return New(os.Stderr, zerolog.LevelInfoValue, verbose)
}
