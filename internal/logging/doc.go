// Package logging builds slog loggers for batch runs: a console handler with
// compact key=value output plus an optional timestamped log file, or JSON
// when configured.
package logging
