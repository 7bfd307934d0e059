// Package logging assembles structured slog loggers for prettycue.
//
// It owns the console and JSON handlers, level parsing, and output routing.
// Diagnostics never go to stdout, which carries normalized cue sheets; the
// default sink is stderr with an optional append-only log file alongside.
// A no-op logger is provided for tests and for callers that pass nil.
package logging
