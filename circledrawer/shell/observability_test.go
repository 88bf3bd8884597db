package shell_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/sevenguis-eventsourced/circledrawer/core"
	"github.com/AntonStoeckl/sevenguis-eventsourced/circledrawer/editor"
	"github.com/AntonStoeckl/sevenguis-eventsourced/circledrawer/shell"
	"github.com/AntonStoeckl/sevenguis-eventsourced/eventstore/memoryengine"
	"github.com/AntonStoeckl/sevenguis-eventsourced/eventstore/oteladapters"
	"github.com/AntonStoeckl/sevenguis-eventsourced/testutil/testdoubles"
)

func Test_Session_Dispatch_Observability(t *testing.T) {
	// arrange
	logSpy := testdoubles.NewLogHandlerSpy()
	metricsSpy := testdoubles.NewMetricsCollectorSpy()
	tracingSpy := testdoubles.NewTracingCollectorSpy()

	session, err := shell.NewSession(
		"s-observed",
		shell.WithJournal(memoryengine.NewEventStore()),
		shell.WithContextualLogger(oteladapters.NewSlogBridgeLoggerWithHandler(logSpy)),
		shell.WithMetrics(metricsSpy),
		shell.WithTracing(tracingSpy),
	)
	require.NoError(t, err)

	// act
	_, err = session.Dispatch(context.Background(), core.BuildCircleCreated(10, 10))
	require.NoError(t, err)

	// assert
	assert.True(t, logSpy.HasLog(slog.LevelDebug, shell.LogMsgTransition).
		WithAttrValue(shell.LogAttrSessionID, "s-observed").
		WithAttrValue(shell.LogAttrOutcome, string(editor.OutcomeCommitted)).
		WithAttr(shell.LogAttrDurationMS).
		Assert())

	durations := metricsSpy.DurationRecords(shell.SessionDispatchDurationMetric)
	require.Len(t, durations, 1)
	assert.Equal(t, map[string]string{
		shell.LogAttrEventType: core.CircleCreatedEventType,
		shell.LogAttrOutcome:   string(editor.OutcomeCommitted),
	}, durations[0].Labels)
	assert.Len(t, metricsSpy.CounterRecords(shell.SessionTransitionsMetric), 1)

	spans := tracingSpy.Spans(shell.SpanNameDispatch)
	require.Len(t, spans, 1)
	assert.True(t, spans[0].Finished)
	assert.Equal(t, string(editor.OutcomeCommitted), spans[0].Status)
	assert.Equal(t, "s-observed", spans[0].StartAttributes[shell.LogAttrSessionID])
	assert.Equal(t, "1", spans[0].EndAttributes[shell.LogAttrLogLength])
	assert.Equal(t, "0", spans[0].EndAttributes[shell.LogAttrCursor])
}

func Test_Session_Dispatch_ObservabilityOnJournalFailure(t *testing.T) {
	// arrange
	logSpy := testdoubles.NewLogHandlerSpy()
	metricsSpy := testdoubles.NewMetricsCollectorSpy()
	tracingSpy := testdoubles.NewTracingCollectorSpy()

	session, err := shell.NewSession(
		"s-failing",
		shell.WithJournal(failingStore{err: errors.New("connection refused")}),
		shell.WithContextualLogger(oteladapters.NewSlogBridgeLoggerWithHandler(logSpy)),
		shell.WithMetrics(metricsSpy),
		shell.WithTracing(tracingSpy),
	)
	require.NoError(t, err)

	// act
	_, err = session.Dispatch(context.Background(), core.BuildCircleCreated(10, 10))

	// assert
	require.ErrorIs(t, err, shell.ErrJournalingFailed)
	assert.True(t, logSpy.HasLog(slog.LevelError, shell.LogMsgJournalFailed).
		WithAttrValue(shell.LogAttrError, "connection refused").
		Assert())

	counters := metricsSpy.CounterRecords(shell.SessionTransitionsMetric)
	require.Len(t, counters, 1)
	assert.Equal(t, shell.StatusError, counters[0].Labels[shell.LogAttrOutcome])

	spans := tracingSpy.Spans(shell.SpanNameDispatch)
	require.Len(t, spans, 1)
	assert.Equal(t, shell.StatusError, spans[0].Status)
	assert.Equal(t, "0", spans[0].EndAttributes[shell.LogAttrLogLength])
}

func Test_Session_Dispatch_PreviewIsObservedButNotJournaled(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	metricsSpy := testdoubles.NewMetricsCollectorSpy()

	session, err := shell.NewSession("s-preview", shell.WithJournal(store), shell.WithMetrics(metricsSpy))
	require.NoError(t, err)
	dispatchAll(t, session, core.BuildCircleCreated(10, 10), core.BuildCircleSelected(0))

	// act
	transition, err := session.Dispatch(context.Background(), core.BuildCircleResizePreview(30))

	// assert
	require.NoError(t, err)
	assert.Equal(t, editor.OutcomePreviewed, transition.Outcome)
	assert.Equal(t, 2, store.Len())

	counters := metricsSpy.CounterRecords(shell.SessionTransitionsMetric)
	require.Len(t, counters, 3)
	assert.Equal(t, string(editor.OutcomePreviewed), counters[2].Labels[shell.LogAttrOutcome])
}
