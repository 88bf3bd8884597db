package postgresengine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/sevenguis-eventsourced/eventstore"
	"github.com/AntonStoeckl/sevenguis-eventsourced/eventstore/postgresengine/internal/adapters"
)

type fakeRow struct {
	eventType      string
	occurredAt     time.Time
	payload        []byte
	metadata       []byte
	sequenceNumber uint
}

type fakeRows struct {
	rows []fakeRow
	pos  int
}

func (f *fakeRows) Next() bool {
	f.pos++
	return f.pos <= len(f.rows)
}

func (f *fakeRows) Scan(dest ...any) error {
	row := f.rows[f.pos-1]
	*dest[0].(*string) = row.eventType
	*dest[1].(*time.Time) = row.occurredAt
	*dest[2].(*[]byte) = row.payload
	*dest[3].(*[]byte) = row.metadata
	*dest[4].(*eventstore.MaxSequenceNumberUint) = row.sequenceNumber

	return nil
}

func (f *fakeRows) Err() error   { return nil }
func (f *fakeRows) Close() error { return nil }

type fakeResult struct {
	rowsAffected int64
}

func (f fakeResult) RowsAffected() (int64, error) {
	return f.rowsAffected, nil
}

type fakeDB struct {
	rows         []fakeRow
	rowsAffected int64
	err          error
	statements   []string
}

func (f *fakeDB) Query(_ context.Context, query string) (adapters.DBRows, error) {
	f.statements = append(f.statements, query)
	if f.err != nil {
		return nil, f.err
	}

	return &fakeRows{rows: f.rows}, nil
}

func (f *fakeDB) Exec(_ context.Context, query string) (adapters.DBResult, error) {
	f.statements = append(f.statements, query)
	if f.err != nil {
		return nil, f.err
	}

	return fakeResult{rowsAffected: f.rowsAffected}, nil
}

type spyLogger struct {
	infos  []string
	errors []string
}

func (s *spyLogger) Debug(string, ...any)     {}
func (s *spyLogger) Info(msg string, _ ...any) { s.infos = append(s.infos, msg) }
func (s *spyLogger) Warn(string, ...any)      {}
func (s *spyLogger) Error(msg string, _ ...any) {
	s.errors = append(s.errors, msg)
}

type spyMetrics struct {
	counters map[string]int
}

func (s *spyMetrics) RecordDuration(string, time.Duration, map[string]string) {}
func (s *spyMetrics) IncrementCounter(metric string, _ map[string]string) {
	s.counters[metric]++
}
func (s *spyMetrics) RecordValue(string, float64, map[string]string) {}

func storableEvent(t *testing.T) eventstore.StorableEvent {
	t.Helper()

	event, err := eventstore.BuildStorableEventWithEmptyMetadata(
		"CircleCreated",
		time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		[]byte(`{"SessionID":"s-1","X":10,"Y":10}`),
	)
	require.NoError(t, err)

	return event
}

func Test_NewEventStore_WithNilConnections(t *testing.T) {
	_, pgxErr := NewEventStoreFromPGXPool(nil)
	_, sqlErr := NewEventStoreFromSQLDB(nil)
	_, sqlxErr := NewEventStoreFromSQLX(nil)

	assert.ErrorIs(t, pgxErr, eventstore.ErrNilDatabaseConnection)
	assert.ErrorIs(t, sqlErr, eventstore.ErrNilDatabaseConnection)
	assert.ErrorIs(t, sqlxErr, eventstore.ErrNilDatabaseConnection)
}

func Test_NewEventStore_WithEmptyTableName(t *testing.T) {
	// act
	es, err := newEventStore(&fakeDB{}, WithTableName(""))

	// assert
	assert.Nil(t, es)
	assert.ErrorIs(t, err, eventstore.ErrEmptyEventsTableName)
}

func Test_NewEventStore_AppliesOptions(t *testing.T) {
	// act
	es, err := newEventStore(&fakeDB{}, WithTableName("circle_journal"), WithLogger(&spyLogger{}))

	// assert
	require.NoError(t, err)
	assert.Equal(t, "circle_journal", es.TableName())
	assert.NotNil(t, es.logger)
}

func Test_Query_ReturnsEventsAndMaxSequenceNumber(t *testing.T) {
	// arrange
	occurredAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	db := &fakeDB{rows: []fakeRow{
		{eventType: "CircleCreated", occurredAt: occurredAt, payload: []byte(`{"X":1}`), metadata: []byte(`{}`), sequenceNumber: 3},
		{eventType: "EditUndone", occurredAt: occurredAt, payload: []byte(`{}`), metadata: []byte(`{}`), sequenceNumber: 9},
	}}
	logger := &spyLogger{}
	es, err := newEventStore(db, WithLogger(logger))
	require.NoError(t, err)

	// act
	events, maxSequenceNumber, err := es.Query(context.Background(), eventstore.BuildEventFilter().MatchingAnyEvent())

	// assert
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "CircleCreated", events[0].EventType)
	assert.Equal(t, "EditUndone", events[1].EventType)
	assert.Equal(t, eventstore.MaxSequenceNumberUint(9), maxSequenceNumber)
	assert.Contains(t, logger.infos, logMsgOperation+logMsgQueryCompleted)
}

func Test_Query_WithInvalidPayloadInRow(t *testing.T) {
	// arrange
	db := &fakeDB{rows: []fakeRow{{eventType: "CircleCreated", payload: []byte(`{`), metadata: []byte(`{}`), sequenceNumber: 1}}}
	metrics := &spyMetrics{counters: map[string]int{}}
	es, err := newEventStore(db, WithMetrics(metrics))
	require.NoError(t, err)

	// act
	_, _, err = es.Query(context.Background(), eventstore.BuildEventFilter().MatchingAnyEvent())

	// assert
	assert.ErrorIs(t, err, eventstore.ErrBuildingStorableEventFailed)
	assert.Equal(t, 1, metrics.counters[metricDatabaseErrors])
}

func Test_Query_WhenDatabaseFails(t *testing.T) {
	// arrange
	dbErr := errors.New("connection reset")
	logger := &spyLogger{}
	es, err := newEventStore(&fakeDB{err: dbErr}, WithLogger(logger))
	require.NoError(t, err)

	// act
	_, _, err = es.Query(context.Background(), eventstore.BuildEventFilter().MatchingAnyEvent())

	// assert
	assert.ErrorIs(t, err, eventstore.ErrQueryingEventsFailed)
	assert.ErrorIs(t, err, dbErr)
	assert.Equal(t, []string{logMsgDBQueryFailed}, logger.errors)
}

func Test_Append_Succeeds(t *testing.T) {
	// arrange
	db := &fakeDB{rowsAffected: 2}
	es, err := newEventStore(db)
	require.NoError(t, err)

	// act
	err = es.Append(context.Background(), eventstore.BuildEventFilter().MatchingAnyEvent(), 0, storableEvent(t), storableEvent(t))

	// assert
	require.NoError(t, err)
	require.Len(t, db.statements, 1)
	assert.Contains(t, db.statements[0], "UNION ALL")
}

func Test_Append_DetectsConcurrencyConflict(t *testing.T) {
	// arrange
	metrics := &spyMetrics{counters: map[string]int{}}
	logger := &spyLogger{}
	es, err := newEventStore(&fakeDB{rowsAffected: 0}, WithMetrics(metrics), WithLogger(logger))
	require.NoError(t, err)

	// act
	err = es.Append(context.Background(), eventstore.BuildEventFilter().MatchingAnyEvent(), 4, storableEvent(t))

	// assert
	assert.ErrorIs(t, err, eventstore.ErrConcurrencyConflict)
	assert.Equal(t, 1, metrics.counters[metricConcurrencyConflicts])
	assert.Contains(t, logger.infos, logMsgOperation+logMsgConcurrencyConflict)
}

func Test_Append_WhenDatabaseFails(t *testing.T) {
	// arrange
	es, err := newEventStore(&fakeDB{err: errors.New("boom")})
	require.NoError(t, err)

	// act
	err = es.Append(context.Background(), eventstore.BuildEventFilter().MatchingAnyEvent(), 0, storableEvent(t))

	// assert
	assert.ErrorIs(t, err, eventstore.ErrAppendingEventFailed)
}

func Test_CreateTable_ExecutesDDL(t *testing.T) {
	// arrange
	db := &fakeDB{}
	es, err := newEventStore(db, WithTableName("circle_journal"))
	require.NoError(t, err)

	// act
	err = es.CreateTable(context.Background())

	// assert
	require.NoError(t, err)
	assert.Equal(t, []string{CreateTableSQL("circle_journal")}, db.statements)
}
