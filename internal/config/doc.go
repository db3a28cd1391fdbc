// Package config loads, validates, and normalizes organizer configuration
// from TOML with embedded sample defaults.
package config
