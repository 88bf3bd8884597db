package shell

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/AntonStoeckl/sevenguis-eventsourced/circledrawer/core"
	"github.com/AntonStoeckl/sevenguis-eventsourced/circledrawer/editor"
	"github.com/AntonStoeckl/sevenguis-eventsourced/eventstore"
)

var (
	// ErrEmptySessionID is returned when a Session is created without an ID.
	ErrEmptySessionID = errors.New("session id must not be empty")

	// ErrNilEventStore is returned when a nil journal is configured.
	ErrNilEventStore = errors.New("event store must not be nil")

	// ErrJournalingFailed wraps errors of the journal, the State is left unchanged in that case.
	ErrJournalingFailed = errors.New("journaling the transition failed")

	// ErrRestoringSessionFailed wraps errors while replaying a journal.
	ErrRestoringSessionFailed = errors.New("restoring the session failed")
)

// Session owns the editor.State of one editing session. It is safe for concurrent use,
// dispatches are applied one at a time in arrival order.
type Session struct {
	mu sync.Mutex

	id       SessionID
	state    editor.State
	policies []editor.Policy

	journal           EventStore
	maxSequenceNumber eventstore.MaxSequenceNumberUint
	maxSequenceStale  bool
	lastMessageID     MessageID

	clock            func() time.Time
	logger           Logger
	contextualLogger ContextualLogger
	metricsCollector MetricsCollector
	tracingCollector TracingCollector
}

// Option defines a functional option for configuring a Session.
type Option func(*Session) error

// WithJournal makes the Session append every history-changing transition to store.
func WithJournal(store EventStore) Option {
	return func(s *Session) error {
		if store == nil {
			return ErrNilEventStore
		}

		s.journal = store

		return nil
	}
}

// WithPolicies configures the filtering policies passed to editor.Decide.
// A restored Session must use the same policies as the one that wrote the journal.
func WithPolicies(policies ...editor.Policy) Option {
	return func(s *Session) error {
		s.policies = policies
		return nil
	}
}

// WithClock replaces time.Now for the OccurredAt of journaled events.
func WithClock(clock func() time.Time) Option {
	return func(s *Session) error {
		s.clock = clock
		return nil
	}
}

// WithLogger sets a logger which receives one debug record per dispatch.
func WithLogger(logger Logger) Option {
	return func(s *Session) error {
		s.logger = logger
		return nil
	}
}

// WithContextualLogger sets a context-aware logger, it takes precedence over WithLogger.
func WithContextualLogger(logger ContextualLogger) Option {
	return func(s *Session) error {
		s.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(collector MetricsCollector) Option {
	return func(s *Session) error {
		s.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector. Its spans become parents of the journal engine spans.
func WithTracing(collector TracingCollector) Option {
	return func(s *Session) error {
		s.tracingCollector = collector
		return nil
	}
}

// NewSession creates a Session with an empty history.
func NewSession(sessionID SessionID, options ...Option) (*Session, error) {
	if sessionID == "" {
		return nil, ErrEmptySessionID
	}

	s := &Session{
		id:    sessionID,
		state: editor.NewState(),
		clock: time.Now,
	}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// RestoreSession rebuilds a Session from its journal in store and keeps journaling to it.
// A session without journaled events restores to the initial State.
func RestoreSession(ctx context.Context, store EventStore, sessionID SessionID, options ...Option) (*Session, error) {
	s, err := NewSession(sessionID, append(slices.Clip(options), WithJournal(store))...)
	if err != nil {
		return nil, err
	}

	storableEvents, maxSequenceNumber, err := store.Query(ctx, journalFilter(sessionID))
	if err != nil {
		return nil, errors.Join(ErrRestoringSessionFailed, err)
	}

	appEvents, err := AppEventsFrom(storableEvents)
	if err != nil {
		return nil, errors.Join(ErrRestoringSessionFailed, err)
	}

	state := editor.NewState()
	for _, appEvent := range appEvents {
		state = editor.Apply(state, appEvent, s.policies...)
	}

	s.state = state
	s.maxSequenceNumber = maxSequenceNumber

	if len(storableEvents) > 0 {
		metadata, metadataErr := EventMetadataFrom(storableEvents[len(storableEvents)-1])
		if metadataErr != nil {
			return nil, errors.Join(ErrRestoringSessionFailed, metadataErr)
		}

		s.lastMessageID = metadata.MessageID
	}

	s.logInfo(
		ctx,
		LogMsgSessionRestored,
		LogAttrSessionID, sessionID,
		LogAttrEventCount, len(storableEvents),
		LogAttrCursor, state.Cursor,
		LogAttrLogLength, len(state.Log),
	)

	return s, nil
}

// ID returns the SessionID.
func (s *Session) ID() SessionID {
	return s.id
}

// State returns the current State. The returned value is never mutated by later dispatches.
func (s *Session) State() editor.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Canvas returns the circles the UI currently renders.
func (s *Session) Canvas() core.Canvas {
	return s.State().Canvas
}

// Dispatch runs event through editor.Decide and, with a journal configured, appends it if the history changed.
//
// If the append fails, the State stays as it was and the error wraps ErrJournalingFailed,
// a concurrent writer on the same journal surfaces as eventstore.ErrConcurrencyConflict.
// Once the append succeeded, the transition is applied even if reading back the journal position fails,
// the position is then refreshed before the next append.
func (s *Session) Dispatch(ctx context.Context, event editor.AppEvent) (editor.Transition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.dispatch(ctx, event)
}

// Click is the canvas click of the circle drawer: a hit selects the topmost circle under the pointer,
// a miss creates a new circle there. Hit test and dispatch see the same State.
func (s *Session) Click(ctx context.Context, x, y float64) (editor.Transition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if hit := s.state.Canvas.HitTest(core.Position{X: x, Y: y}); hit != core.NoSelection {
		return s.dispatch(ctx, core.BuildCircleSelected(hit))
	}

	return s.dispatch(ctx, core.BuildCircleCreated(x, y))
}

// dispatch must be called with s.mu held.
func (s *Session) dispatch(ctx context.Context, event editor.AppEvent) (editor.Transition, error) {
	start := time.Now()
	ctx, span := s.startDispatchSpan(ctx, event.EventType())

	transition := editor.Decide(s.state, event, s.policies...)

	if transition.Outcome.ChangesHistory() && s.journal != nil {
		appended, err := s.appendToJournal(ctx, event)

		switch {
		case err != nil && !appended:
			s.logError(ctx, LogMsgJournalFailed, err, LogAttrSessionID, s.id, LogAttrEventType, event.EventType())
			s.recordDispatch(ctx, event.EventType(), StatusError, time.Since(start))
			s.finishDispatchSpan(span, StatusError, s.state, err)

			return editor.Transition{State: s.state, Outcome: editor.OutcomeIgnored}, errors.Join(ErrJournalingFailed, err)

		case err != nil:
			s.logWarn(ctx, LogMsgJournalPositionUnknown, err, LogAttrSessionID, s.id, LogAttrEventType, event.EventType())
		}
	}

	s.state = transition.State

	duration := time.Since(start)
	s.logDebug(
		ctx,
		LogMsgTransition,
		LogAttrSessionID, s.id,
		LogAttrEventType, event.EventType(),
		LogAttrOutcome, string(transition.Outcome),
		LogAttrCursor, transition.State.Cursor,
		LogAttrLogLength, len(transition.State.Log),
		LogAttrCircleCount, len(transition.State.Canvas.Circles),
		LogAttrDurationMS, toMilliseconds(duration),
	)
	s.recordDispatch(ctx, event.EventType(), string(transition.Outcome), duration)
	s.finishDispatchSpan(span, string(transition.Outcome), transition.State, nil)

	return transition, nil
}

// appendToJournal must be called with s.mu held. It reports whether the event was stored,
// an error with appended == true means only the journal position could not be read back.
func (s *Session) appendToJournal(ctx context.Context, event editor.AppEvent) (bool, error) {
	if s.maxSequenceStale {
		if err := s.refreshMaxSequenceNumber(ctx); err != nil {
			return false, err
		}
	}

	metadata := BuildEventMetadata(s.id, s.lastMessageID)

	storableEvent, err := StorableEventFrom(event, metadata, s.clock())
	if err != nil {
		return false, err
	}

	if err = s.journal.Append(ctx, journalFilter(s.id), s.maxSequenceNumber, storableEvent); err != nil {
		return false, err
	}

	s.lastMessageID = metadata.MessageID

	return true, s.refreshMaxSequenceNumber(ctx)
}

// refreshMaxSequenceNumber reads the events appended after the known position.
// The position only moves if the newest of them is the one this Session wrote last,
// otherwise another writer got in between and the next Append reports the conflict.
func (s *Session) refreshMaxSequenceNumber(ctx context.Context) error {
	storableEvents, maxSequenceNumber, err := s.journal.Query(ctx, journalFilter(s.id).WithSequenceNumberHigherThan(s.maxSequenceNumber))
	if err != nil {
		s.maxSequenceStale = true
		return err
	}

	s.maxSequenceStale = false

	if len(storableEvents) == 0 {
		return nil
	}

	metadata, err := EventMetadataFrom(storableEvents[len(storableEvents)-1])
	if err != nil || metadata.MessageID != s.lastMessageID {
		return nil //nolint:nilerr // a foreign or unreadable event is reported by the next Append as a conflict
	}

	s.maxSequenceNumber = maxSequenceNumber

	return nil
}

// journalFilter selects all journaled events of one session.
func journalFilter(sessionID SessionID) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.CircleCreatedEventType,
			core.CircleSelectedEventType,
			core.CircleResizedEventType,
			editor.UndoEventType,
			editor.RedoEventType,
		).
		AndAnyPredicateOf(eventstore.P(payloadKeySessionID, sessionID)).
		Finalize()
}
