// Package memoryengine provides an in-process implementation of the event store contract.
//
// It follows the semantics of postgresengine (global sequence numbers, filters over event
// types and top-level string fields of the payload, optimistic concurrency on the maximum
// sequence number of the filtered stream) and is meant for single-process hosts and tests.
package memoryengine
