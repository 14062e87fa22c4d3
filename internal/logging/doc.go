// Package logging assembles the structured slog loggers used across Sift.
//
// It owns level parsing, console/JSON handler selection, and output plumbing,
// and exposes attribute helper aliases so pipeline code can tag log lines
// consistently. A no-op logger is provided for tests and wiring code that
// cannot fail.
package logging
