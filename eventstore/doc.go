// Package eventstore provides the storage-agnostic abstractions used to journal
// editing sessions as dynamic event streams.
//
// The engines (postgresengine, memoryengine) implement the same two operations:
//
//	events, maxSeq, err := store.Query(ctx, filter)
//	err = store.Append(ctx, filter, maxSeq, newEvent)
//
// Append only succeeds if no other event matching the same filter was appended
// after maxSeq was observed, which gives optimistic concurrency per session.
//
// A filter selects events by type and by top-level string fields of the JSON payload:
//
//	filter := BuildEventFilter().
//		Matching().
//		AnyEventTypeOf("CircleCreated", "CircleSelected").
//		AndAllPredicatesOf(P("SessionID", sessionID.String())).
//		Finalize()
package eventstore
