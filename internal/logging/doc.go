// Package logging wraps log/slog with filmsort's output conventions.
//
// It provides a console handler for interactive use, a JSON handler for
// machine consumption, typed attribute helpers, and a no-op logger for tests.
// Components obtain their logger through NewComponentLogger so every line
// carries a component prefix.
package logging
