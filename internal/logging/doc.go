// Package logging assembles the structured slog loggers used across the
// seekbar daemon and CLI.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes typed attribute helpers plus the standardized field
// names (component, event_type, error_hint, impact) that warning and
// degradation logs are expected to carry. The package also provides a no-op
// logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so new components
// emit data with the same shape and routing as the rest of the system.
package logging
