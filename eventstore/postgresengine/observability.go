package postgresengine

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/AntonStoeckl/sevenguis-eventsourced/eventstore"
)

const (
	logMsgBuildSelectQueryFailed   = "failed to build select query"
	logMsgDBQueryFailed            = "database query execution failed"
	logMsgCloseRowsFailed          = "failed to close database rows"
	logMsgScanRowFailed            = "failed to scan database row"
	logMsgBuildStorableEventFailed = "failed to build storable event from database row"
	logMsgBuildInsertQueryFailed   = "failed to build insert query"
	logMsgDBExecFailed             = "database execution failed during event append"
	logMsgRowsAffectedFailed       = "failed to get rows affected count"
	logMsgQueryCompleted           = "query completed"
	logMsgEventsAppended           = "events appended"
	logMsgConcurrencyConflict      = "concurrency conflict detected"
	logMsgSQLExecuted              = "executed sql for: "
	logMsgOperation                = "eventstore operation: "

	logAttrError            = "error"
	logAttrQuery            = "query"
	logAttrEventType        = "event_type"
	logAttrEventCount       = "event_count"
	logAttrDurationMS       = "duration_ms"
	logAttrExpectedEvents   = "expected_events"
	logAttrRowsAffected     = "rows_affected"
	logAttrExpectedSequence = "expected_sequence"

	operationQuery  = "query"
	operationAppend = "append"

	spanNameQuery  = "eventstore.query"
	spanNameAppend = "eventstore.append"

	spanAttrOperation   = "operation"
	spanAttrEventCount  = "event_count"
	spanAttrMaxSequence = "max_sequence_number"
	spanAttrErrorType   = "error_type"
	spanAttrTable       = "table"

	labelStatus       = "status"
	labelConflictType = "conflict_type"

	statusSuccess  = "success"
	statusError    = "error"
	statusConflict = "conflict"

	errorTypeBuildQuery    = "build_query"
	errorTypeDatabase      = "database"
	errorTypeScan          = "scan"
	errorTypeStorableEvent = "storable_event"
	errorTypeRowsAffected  = "rows_affected"
	errorTypeConcurrency   = "concurrency"

	metricQueryDuration        = "eventstore_query_duration_seconds"
	metricAppendDuration       = "eventstore_append_duration_seconds"
	metricEventsQueried        = "eventstore_events_queried_total"
	metricEventsAppended       = "eventstore_events_appended_total"
	metricConcurrencyConflicts = "eventstore_concurrency_conflicts_total"
	metricDatabaseErrors       = "eventstore_database_errors_total"
)

// logQueryWithDuration logs SQL statements with execution time at debug level.
func (es *EventStore) logQueryWithDuration(ctx context.Context, sqlQuery string, action string, duration time.Duration) {
	args := []any{logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery}

	if es.logger != nil {
		es.logger.Debug(logMsgSQLExecuted+action, args...)
	}

	if es.contextualLogger != nil {
		es.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+action, args...)
	}
}

// logOperation logs operational information at info level.
func (es *EventStore) logOperation(ctx context.Context, action string, args ...any) {
	if es.logger != nil {
		es.logger.Info(logMsgOperation+action, args...)
	}

	if es.contextualLogger != nil {
		es.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
	}
}

// logWarning logs non-critical problems at warn level.
func (es *EventStore) logWarning(ctx context.Context, message string, err error) {
	if es.logger != nil {
		es.logger.Warn(message, logAttrError, err.Error())
	}

	if es.contextualLogger != nil {
		es.contextualLogger.WarnContext(ctx, message, logAttrError, err.Error())
	}
}

// logError logs failures at error level.
func (es *EventStore) logError(ctx context.Context, message string, err error, args ...any) {
	allArgs := append([]any{logAttrError, err.Error()}, args...)

	if es.logger != nil {
		es.logger.Error(message, allArgs...)
	}

	if es.contextualLogger != nil {
		es.contextualLogger.ErrorContext(ctx, message, allArgs...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

func (es *EventStore) recordDuration(ctx context.Context, metric string, duration time.Duration, operation, status string) {
	if es.metricsCollector == nil {
		return
	}

	labels := map[string]string{spanAttrOperation: operation, labelStatus: status}

	if contextual, ok := es.metricsCollector.(eventstore.ContextualMetricsCollector); ok {
		contextual.RecordDurationContext(ctx, metric, duration, labels)
		return
	}

	es.metricsCollector.RecordDuration(metric, duration, labels)
}

func (es *EventStore) recordValue(ctx context.Context, metric string, value float64, operation string) {
	if es.metricsCollector == nil {
		return
	}

	labels := map[string]string{spanAttrOperation: operation, labelStatus: statusSuccess}

	if contextual, ok := es.metricsCollector.(eventstore.ContextualMetricsCollector); ok {
		contextual.RecordValueContext(ctx, metric, value, labels)
		return
	}

	es.metricsCollector.RecordValue(metric, value, labels)
}

func (es *EventStore) incrementCounter(ctx context.Context, metric string, labels map[string]string) {
	if es.metricsCollector == nil {
		return
	}

	if contextual, ok := es.metricsCollector.(eventstore.ContextualMetricsCollector); ok {
		contextual.IncrementCounterContext(ctx, metric, labels)
		return
	}

	es.metricsCollector.IncrementCounter(metric, labels)
}

func (es *EventStore) recordError(ctx context.Context, operation, errorType string) {
	es.incrementCounter(ctx, metricDatabaseErrors, map[string]string{
		spanAttrOperation: operation,
		labelStatus:       statusError,
		spanAttrErrorType: errorType,
	})
}

func (es *EventStore) recordConcurrencyConflict(ctx context.Context) {
	es.incrementCounter(ctx, metricConcurrencyConflicts, map[string]string{
		spanAttrOperation: operationAppend,
		labelConflictType: errorTypeConcurrency,
	})
}

// startSpan starts a tracing span if a tracing collector is configured.
func (es *EventStore) startSpan(ctx context.Context, name, operation string) (context.Context, eventstore.SpanContext) {
	if es.tracingCollector == nil {
		return ctx, nil
	}

	return es.tracingCollector.StartSpan(ctx, name, map[string]string{
		spanAttrOperation: operation,
		spanAttrTable:     es.eventTableName,
	})
}

func (es *EventStore) finishSpanSuccess(span eventstore.SpanContext, eventCount int, maxSequenceNumber eventstore.MaxSequenceNumberUint) {
	if es.tracingCollector == nil || span == nil {
		return
	}

	es.tracingCollector.FinishSpan(span, statusSuccess, map[string]string{
		spanAttrEventCount:  strconv.Itoa(eventCount),
		spanAttrMaxSequence: strconv.FormatUint(uint64(maxSequenceNumber), 10),
	})
}

func (es *EventStore) finishSpanError(span eventstore.SpanContext, status, errorType string) {
	if es.tracingCollector == nil || span == nil {
		return
	}

	es.tracingCollector.FinishSpan(span, status, map[string]string{spanAttrErrorType: errorType})
}
