package shell

import (
	"context"
	"strconv"
	"time"

	"github.com/AntonStoeckl/sevenguis-eventsourced/circledrawer/editor"
	"github.com/AntonStoeckl/sevenguis-eventsourced/eventstore"
)

const (
	// SessionDispatchDurationMetric tracks how long a Dispatch takes, journaling included.
	SessionDispatchDurationMetric = "session_dispatch_duration_seconds"
	// SessionTransitionsMetric counts dispatched events per outcome.
	SessionTransitionsMetric = "session_transitions_total"

	// StatusError marks a failed Dispatch in metrics and spans.
	StatusError = "error"

	LogMsgTransition             = "circle drawer transition"
	LogMsgJournalFailed          = "journaling the transition failed"
	LogMsgJournalPositionUnknown = "reading the journal position failed, it is refreshed before the next append"
	LogMsgSessionRestored        = "session restored"

	LogAttrSessionID   = "session_id"
	LogAttrEventType   = "event_type"
	LogAttrOutcome     = "outcome"
	LogAttrCursor      = "cursor"
	LogAttrLogLength   = "log_length"
	LogAttrCircleCount = "circle_count"
	LogAttrEventCount  = "event_count"
	LogAttrDurationMS  = "duration_ms"
	LogAttrError       = "error"

	SpanNameDispatch = "session.dispatch"
)

func (s *Session) logDebug(ctx context.Context, msg string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.DebugContext(ctx, msg, args...)
	} else if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *Session) logInfo(ctx context.Context, msg string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.InfoContext(ctx, msg, args...)
	} else if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

func (s *Session) logWarn(ctx context.Context, msg string, err error, args ...any) {
	allArgs := append([]any{LogAttrError, err.Error()}, args...)

	if s.contextualLogger != nil {
		s.contextualLogger.WarnContext(ctx, msg, allArgs...)
	} else if s.logger != nil {
		s.logger.Warn(msg, allArgs...)
	}
}

func (s *Session) logError(ctx context.Context, msg string, err error, args ...any) {
	allArgs := append([]any{LogAttrError, err.Error()}, args...)

	if s.contextualLogger != nil {
		s.contextualLogger.ErrorContext(ctx, msg, allArgs...)
	} else if s.logger != nil {
		s.logger.Error(msg, allArgs...)
	}
}

func (s *Session) recordDispatch(ctx context.Context, eventType, status string, duration time.Duration) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{LogAttrEventType: eventType, LogAttrOutcome: status}

	if contextual, ok := s.metricsCollector.(eventstore.ContextualMetricsCollector); ok {
		contextual.RecordDurationContext(ctx, SessionDispatchDurationMetric, duration, labels)
		contextual.IncrementCounterContext(ctx, SessionTransitionsMetric, labels)

		return
	}

	s.metricsCollector.RecordDuration(SessionDispatchDurationMetric, duration, labels)
	s.metricsCollector.IncrementCounter(SessionTransitionsMetric, labels)
}

func (s *Session) startDispatchSpan(ctx context.Context, eventType string) (context.Context, SpanContext) {
	if s.tracingCollector == nil {
		return ctx, nil
	}

	return s.tracingCollector.StartSpan(ctx, SpanNameDispatch, map[string]string{
		LogAttrSessionID: s.id,
		LogAttrEventType: eventType,
	})
}

func (s *Session) finishDispatchSpan(span SpanContext, status string, state editor.State, err error) {
	if s.tracingCollector == nil || span == nil {
		return
	}

	attrs := map[string]string{
		LogAttrCursor:    strconv.Itoa(state.Cursor),
		LogAttrLogLength: strconv.Itoa(len(state.Log)),
	}

	if err != nil {
		attrs[LogAttrError] = err.Error()
	}

	s.tracingCollector.FinishSpan(span, status, attrs)
}

func toMilliseconds(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}
