// Package logging assembles the structured slog loggers used across keygrip.
//
// It owns the pretty console handler and the JSON handler, centralizes level
// parsing, and exposes attr helpers so components emit log lines with the
// same shape. Detection code tags every line of a probe pass with a probe_id
// so interleaved concurrent runs stay readable. The package also provides a
// no-op logger for tests and wiring code that cannot fail.
package logging
