// Package logging builds the organizer's slog loggers: a compact console
// handler for interactive use, JSON for log files and scripting, and shared
// attribute helpers so field names stay consistent across components.
package logging
