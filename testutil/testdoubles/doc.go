// Package testdoubles provides spies for the observability interfaces of package eventstore:
// a slog.Handler capturing records, a MetricsCollector and a TracingCollector capturing calls.
//
// All spies are safe for concurrent use.
package testdoubles
