// Package config loads, normalizes, and validates the TOML configuration
// that drives parsing tables, transfer policy, and directory layout.
package config
