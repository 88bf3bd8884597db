// Package oteladapters implements the eventstore observability interfaces on top of OpenTelemetry.
//
// SlogBridgeLogger and OTelLogger serve as loggers, MetricsCollector maps metrics to instruments
// of a metric.Meter, and TracingCollector wraps a trace.Tracer.
// The journal engines and the circle drawer session accept all of them through functional options.
package oteladapters
