// Package logging constructs the slog loggers used across pipet.
//
// Loggers are built from config defaults or explicit Options and write to
// stdout plus an optional pipet.log file under the configured log directory.
// Two formats are supported: a compact human-readable console format and
// line-delimited JSON.
package logging
