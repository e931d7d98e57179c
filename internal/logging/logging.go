// Package logging builds the slog loggers used across sitenav.
//
// The CLI creates one logger at startup and installs it with
// slog.SetDefault; library packages accept an optional *slog.Logger and fall
// back to slog.Default when none is given.
package logging

import (
	"io"
	"log/slog"
)

// Format selects the handler used by New.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// New creates a logger writing to w. Verbose lowers the level to Debug;
// otherwise Info and above are written.
func New(w io.Writer, format Format, verbose bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: Level(verbose)}

	var handler slog.Handler
	switch format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// Level maps the verbose flag to a slog level.
func Level(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// Discard returns a logger that drops everything. Useful in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
