package memoryengine

import (
	"context"
	"errors"
	"slices"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/sevenguis-eventsourced/eventstore"
)

const (
	logMsgQueryCompleted      = "eventstore operation: query completed"
	logMsgEventsAppended      = "eventstore operation: events appended"
	logMsgConcurrencyConflict = "eventstore operation: concurrency conflict detected"
	logAttrEventCount         = "event_count"
	logAttrExpectedSequence   = "expected_sequence"
	logAttrActualSequence     = "actual_sequence"
)

var ErrDecodingPayloadFailed = errors.New("decoding the payload for filtering failed")

type storedEvent struct {
	sequenceNumber eventstore.MaxSequenceNumberUint
	event          eventstore.StorableEvent
	fields         map[string]any
}

// EventStore keeps all events in memory, guarded by a RWMutex.
type EventStore struct {
	mu     sync.RWMutex
	events []storedEvent
	logger eventstore.Logger
}

// Option defines a functional option for configuring EventStore.
type Option func(*EventStore)

// WithLogger sets the logger for the EventStore.
func WithLogger(logger eventstore.Logger) Option {
	return func(es *EventStore) {
		es.logger = logger
	}
}

// NewEventStore creates an empty EventStore.
func NewEventStore(options ...Option) *EventStore {
	es := &EventStore{}

	for _, option := range options {
		option(es)
	}

	return es
}

// Query returns the events matching filter in sequence order
// and the MaxSequenceNumberUint of the matched "dynamic event stream".
func (es *EventStore) Query(ctx context.Context, filter eventstore.Filter) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	if err := ctx.Err(); err != nil {
		return nil, 0, errors.Join(eventstore.ErrQueryingEventsFailed, err)
	}

	es.mu.RLock()
	defer es.mu.RUnlock()

	result := make(eventstore.StorableEvents, 0)
	maxSequenceNumber := eventstore.MaxSequenceNumberUint(0)

	for _, stored := range es.events {
		if !matches(filter, stored) {
			continue
		}

		result = append(result, stored.event)
		maxSequenceNumber = stored.sequenceNumber
	}

	es.logInfo(logMsgQueryCompleted, logAttrEventCount, len(result))

	return result, maxSequenceNumber, nil
}

// Append appends the events atomically if no event matching filter was appended after expectedMaxSequenceNumber.
func (es *EventStore) Append(
	ctx context.Context,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	event eventstore.StorableEvent,
	additionalEvents ...eventstore.StorableEvent,
) error {

	if err := ctx.Err(); err != nil {
		return errors.Join(eventstore.ErrAppendingEventFailed, err)
	}

	allEvents := append(eventstore.StorableEvents{event}, additionalEvents...)
	toStore := make([]storedEvent, 0, len(allEvents))

	for _, e := range allEvents {
		fields, err := decodeFields(e.PayloadJSON)
		if err != nil {
			return errors.Join(eventstore.ErrAppendingEventFailed, err)
		}

		toStore = append(toStore, storedEvent{event: e, fields: fields})
	}

	es.mu.Lock()
	defer es.mu.Unlock()

	actualMaxSequenceNumber := es.maxSequenceNumberFor(filter.WithSequenceNumberHigherThan(0))
	if actualMaxSequenceNumber != expectedMaxSequenceNumber {
		es.logInfo(
			logMsgConcurrencyConflict,
			logAttrExpectedSequence, expectedMaxSequenceNumber,
			logAttrActualSequence, actualMaxSequenceNumber,
		)

		return eventstore.ErrConcurrencyConflict
	}

	next := eventstore.MaxSequenceNumberUint(len(es.events))
	for i := range toStore {
		next++
		toStore[i].sequenceNumber = next
	}

	es.events = append(es.events, toStore...)
	es.logInfo(logMsgEventsAppended, logAttrEventCount, len(toStore))

	return nil
}

// Len returns the number of stored events across all streams.
func (es *EventStore) Len() int {
	es.mu.RLock()
	defer es.mu.RUnlock()

	return len(es.events)
}

func (es *EventStore) maxSequenceNumberFor(filter eventstore.Filter) eventstore.MaxSequenceNumberUint {
	for i := len(es.events) - 1; i >= 0; i-- {
		if matches(filter, es.events[i]) {
			return es.events[i].sequenceNumber
		}
	}

	return 0
}

func (es *EventStore) logInfo(msg string, args ...any) {
	if es.logger != nil {
		es.logger.Info(msg, args...)
	}
}

func decodeFields(payloadJSON []byte) (map[string]any, error) {
	fields := make(map[string]any)

	if err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, &fields); err != nil {
		return nil, errors.Join(ErrDecodingPayloadFailed, err)
	}

	return fields, nil
}

// matches mirrors the WHERE clause postgresengine builds for the same filter.
func matches(filter eventstore.Filter, stored storedEvent) bool {
	if stored.sequenceNumber <= filter.SequenceNumberHigherThan() {
		return false
	}

	if len(filter.Items()) == 0 {
		return true
	}

	return slices.ContainsFunc(filter.Items(), func(item eventstore.FilterItem) bool {
		return matchesItem(item, stored)
	})
}

func matchesItem(item eventstore.FilterItem, stored storedEvent) bool {
	if len(item.EventTypes()) > 0 && !slices.Contains(item.EventTypes(), stored.event.EventType) {
		return false
	}

	if len(item.Predicates()) == 0 {
		return true
	}

	predicateMatches := func(p eventstore.FilterPredicate) bool {
		val, ok := stored.fields[p.Key()].(string)

		return ok && val == p.Val()
	}

	if item.AllPredicatesMustMatch() {
		for _, p := range item.Predicates() {
			if !predicateMatches(p) {
				return false
			}
		}

		return true
	}

	return slices.ContainsFunc(item.Predicates(), predicateMatches)
}
