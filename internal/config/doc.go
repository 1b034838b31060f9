// Package config loads and validates node monitor configuration.
//
// Config files are JSON (the original config.json layout) or YAML, selected
// by file extension. ${VAR} references are expanded from the environment
// before parsing. Validation failures are reported as *Error before any
// network activity happens.
package config
