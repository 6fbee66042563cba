// Package logging assembles the structured slog loggers used across guise.
//
// It owns the console and JSON handlers, level and output plumbing, and the
// component tagging convention: every subsystem logs through a logger
// carrying a "component" attribute, which the console handler lifts into a
// line prefix. A no-op logger is available for tests and wiring code that
// cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so all components
// emit lines with the same shape and routing.
package logging
