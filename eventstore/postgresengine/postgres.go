package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/sevenguis-eventsourced/eventstore"
	"github.com/AntonStoeckl/sevenguis-eventsourced/eventstore/postgresengine/internal/adapters"
)

const defaultEventTableName = "events"

// EventStore persists StorableEvents in a Postgres table and queries them back as "dynamic event streams".
type EventStore struct {
	db               adapters.DBAdapter
	eventTableName   string
	logger           eventstore.Logger
	contextualLogger eventstore.ContextualLogger
	metricsCollector eventstore.MetricsCollector
	tracingCollector eventstore.TracingCollector
}

type queryResultRow struct {
	eventType      string
	payload        []byte
	metadata       []byte
	occurredAt     time.Time
	sequenceNumber eventstore.MaxSequenceNumberUint
}

// NewEventStoreFromPGXPool creates a new EventStore using a pgx Pool with optional configuration.
func NewEventStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (*EventStore, error) {
	if db == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewPGXAdapter(db), options...)
}

// NewEventStoreFromSQLDB creates a new EventStore using a sql.DB with optional configuration.
func NewEventStoreFromSQLDB(db *sql.DB, options ...Option) (*EventStore, error) {
	if db == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewSQLAdapter(db), options...)
}

// NewEventStoreFromSQLX creates a new EventStore using a sqlx.DB with optional configuration.
func NewEventStoreFromSQLX(db *sqlx.DB, options ...Option) (*EventStore, error) {
	if db == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewSQLXAdapter(db), options...)
}

func newEventStore(db adapters.DBAdapter, options ...Option) (*EventStore, error) {
	es := &EventStore{
		db:             db,
		eventTableName: defaultEventTableName,
	}

	for _, option := range options {
		if err := option(es); err != nil {
			return nil, err
		}
	}

	return es, nil
}

// TableName returns the configured events table.
func (es *EventStore) TableName() string {
	return es.eventTableName
}

// CreateTable creates the events table and its indexes if they do not exist yet.
func (es *EventStore) CreateTable(ctx context.Context) error {
	start := time.Now()
	_, err := es.db.Exec(ctx, CreateTableSQL(es.eventTableName))
	es.logQueryWithDuration(ctx, CreateTableSQL(es.eventTableName), "create table", time.Since(start))

	if err != nil {
		es.logError(ctx, logMsgDBExecFailed, err)
		return err
	}

	return nil
}

// Query retrieves the events matching filter in sequence order
// as well as the MaxSequenceNumberUint of the returned events.
//
// With a sequence number lower bound on the filter and no newer events, the returned MaxSequenceNumberUint is 0.
func (es *EventStore) Query(ctx context.Context, filter eventstore.Filter) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	ctx, span := es.startSpan(ctx, spanNameQuery, operationQuery)
	start := time.Now()

	sqlQuery, buildQueryErr := es.buildSelectQuery(filter)
	if buildQueryErr != nil {
		es.logError(ctx, logMsgBuildSelectQueryFailed, buildQueryErr)
		es.recordError(ctx, operationQuery, errorTypeBuildQuery)
		es.finishSpanError(span, statusError, errorTypeBuildQuery)

		return nil, 0, buildQueryErr
	}

	rows, queryErr := es.db.Query(ctx, sqlQuery)
	es.logQueryWithDuration(ctx, sqlQuery, operationQuery, time.Since(start))

	if queryErr != nil {
		es.logError(ctx, logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)
		es.recordError(ctx, operationQuery, errorTypeDatabase)
		es.finishSpanError(span, statusError, errorTypeDatabase)

		return nil, 0, errors.Join(eventstore.ErrQueryingEventsFailed, queryErr)
	}
	defer es.closeRows(ctx, rows)

	eventStream, maxSequenceNumber, errorType, scanErr := es.processQueryResults(ctx, rows)
	if scanErr != nil {
		es.recordError(ctx, operationQuery, errorType)
		es.finishSpanError(span, statusError, errorType)

		return nil, 0, scanErr
	}

	duration := time.Since(start)
	es.recordDuration(ctx, metricQueryDuration, duration, operationQuery, statusSuccess)
	es.recordValue(ctx, metricEventsQueried, float64(len(eventStream)), operationQuery)
	es.finishSpanSuccess(span, len(eventStream), maxSequenceNumber)
	es.logOperation(
		ctx,
		logMsgQueryCompleted,
		logAttrEventCount, len(eventStream),
		logAttrDurationMS, toMilliseconds(duration),
	)

	return eventStream, maxSequenceNumber, nil
}

func (es *EventStore) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		es.logWarning(ctx, logMsgCloseRowsFailed, closeErr)
	}
}

func (es *EventStore) processQueryResults(ctx context.Context, rows adapters.DBRows) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	string,
	error,
) {

	result := queryResultRow{}
	eventStream := make(eventstore.StorableEvents, 0)
	maxSequenceNumber := eventstore.MaxSequenceNumberUint(0)

	for rows.Next() {
		rowScanErr := rows.Scan(&result.eventType, &result.occurredAt, &result.payload, &result.metadata, &result.sequenceNumber)
		if rowScanErr != nil {
			es.logError(ctx, logMsgScanRowFailed, rowScanErr)
			return nil, 0, errorTypeScan, errors.Join(eventstore.ErrScanningDBRowFailed, rowScanErr)
		}

		event, buildStorableErr := eventstore.BuildStorableEvent(result.eventType, result.occurredAt, result.payload, result.metadata)
		if buildStorableErr != nil {
			es.logError(ctx, logMsgBuildStorableEventFailed, buildStorableErr, logAttrEventType, result.eventType)
			return nil, 0, errorTypeStorableEvent, errors.Join(eventstore.ErrBuildingStorableEventFailed, buildStorableErr)
		}

		eventStream = append(eventStream, event)
		maxSequenceNumber = result.sequenceNumber
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		es.logError(ctx, logMsgScanRowFailed, rowsErr)
		return nil, 0, errorTypeScan, errors.Join(eventstore.ErrScanningDBRowFailed, rowsErr)
	}

	return eventStream, maxSequenceNumber, "", nil
}

// Append appends one or multiple StorableEvents atomically, but only if the "dynamic event stream" selected by filter
// still ends at expectedMaxSequenceNumber. Otherwise, it returns eventstore.ErrConcurrencyConflict.
//
// The filter should be the one used for the Query the decision was based on.
// A sequence number lower bound on the filter is ignored, the check always covers the whole stream.
func (es *EventStore) Append(
	ctx context.Context,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	event eventstore.StorableEvent,
	additionalEvents ...eventstore.StorableEvent,
) error {

	ctx, span := es.startSpan(ctx, spanNameAppend, operationAppend)
	start := time.Now()
	allEvents := append(eventstore.StorableEvents{event}, additionalEvents...)

	var sqlQuery string
	var buildQueryErr error

	switch len(allEvents) {
	case 1:
		sqlQuery, buildQueryErr = es.buildInsertQueryForSingleEvent(event, filter, expectedMaxSequenceNumber)
	default:
		sqlQuery, buildQueryErr = es.buildInsertQueryForMultipleEvents(allEvents, filter, expectedMaxSequenceNumber)
	}

	if buildQueryErr != nil {
		es.logError(ctx, logMsgBuildInsertQueryFailed, buildQueryErr, logAttrEventCount, len(allEvents))
		es.recordError(ctx, operationAppend, errorTypeBuildQuery)
		es.finishSpanError(span, statusError, errorTypeBuildQuery)

		return buildQueryErr
	}

	tag, execErr := es.db.Exec(ctx, sqlQuery)
	es.logQueryWithDuration(ctx, sqlQuery, operationAppend, time.Since(start))

	if execErr != nil {
		es.logError(ctx, logMsgDBExecFailed, execErr, logAttrQuery, sqlQuery)
		es.recordError(ctx, operationAppend, errorTypeDatabase)
		es.finishSpanError(span, statusError, errorTypeDatabase)

		return errors.Join(eventstore.ErrAppendingEventFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := tag.RowsAffected()
	if rowsAffectedErr != nil {
		es.logError(ctx, logMsgRowsAffectedFailed, rowsAffectedErr)
		es.recordError(ctx, operationAppend, errorTypeRowsAffected)
		es.finishSpanError(span, statusError, errorTypeRowsAffected)

		return errors.Join(eventstore.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	if rowsAffected < int64(len(allEvents)) {
		es.logOperation(
			ctx,
			logMsgConcurrencyConflict,
			logAttrExpectedEvents, len(allEvents),
			logAttrRowsAffected, rowsAffected,
			logAttrExpectedSequence, expectedMaxSequenceNumber,
		)
		es.recordConcurrencyConflict(ctx)
		es.finishSpanError(span, statusConflict, errorTypeConcurrency)

		return eventstore.ErrConcurrencyConflict
	}

	duration := time.Since(start)
	es.recordDuration(ctx, metricAppendDuration, duration, operationAppend, statusSuccess)
	es.recordValue(ctx, metricEventsAppended, float64(len(allEvents)), operationAppend)
	es.finishSpanSuccess(span, len(allEvents), 0)
	es.logOperation(
		ctx,
		logMsgEventsAppended,
		logAttrEventCount, len(allEvents),
		logAttrDurationMS, toMilliseconds(duration),
	)

	return nil
}
