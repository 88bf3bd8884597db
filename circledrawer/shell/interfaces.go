package shell

import (
	"context"

	"github.com/AntonStoeckl/sevenguis-eventsourced/eventstore"
)

// EventStore is the journal a Session appends to and restores from.
// Both memoryengine.EventStore and postgresengine.EventStore satisfy it.
type EventStore interface {
	Query(ctx context.Context, filter eventstore.Filter) (
		eventstore.StorableEvents,
		eventstore.MaxSequenceNumberUint,
		error,
	)

	Append(
		ctx context.Context,
		filter eventstore.Filter,
		expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
		event eventstore.StorableEvent,
		additionalEvents ...eventstore.StorableEvent,
	) error
}

// Interface aliases, so callers can configure a Session without importing eventstore.
type (
	Logger           = eventstore.Logger
	ContextualLogger = eventstore.ContextualLogger
	MetricsCollector = eventstore.MetricsCollector
	TracingCollector = eventstore.TracingCollector
	SpanContext      = eventstore.SpanContext
)
