// Package logging assembles structured slog loggers and formatting helpers used
// across speakersplit.
//
// It owns the console (key=value) and JSON handlers, centralizes level and
// output plumbing, and exposes context helpers so reconstruction code tags
// log lines with run ids and speakers. The package also provides a no-op
// logger for tests and wiring code that cannot fail.
package logging
