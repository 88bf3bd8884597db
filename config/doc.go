// Package config loads the sevenguis configuration and builds the infrastructure it describes:
// slog handlers and Postgres connections for the journal.
//
// Values come from built-in defaults, an optional YAML file, and environment overrides, in that order.
package config
