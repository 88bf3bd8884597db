package oteladapters_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/embedded"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/AntonStoeckl/sevenguis-eventsourced/eventstore/oteladapters"
)

type emitted struct {
	record      log.Record
	spanContext trace.SpanContext
}

type recordingLogger struct {
	embedded.Logger

	mu      sync.Mutex
	records []emitted
}

func (r *recordingLogger) Emit(ctx context.Context, record log.Record) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = append(r.records, emitted{record: record, spanContext: trace.SpanContextFromContext(ctx)})
}

func (r *recordingLogger) Enabled(context.Context, log.EnabledParameters) bool {
	return true
}

func attributesOf(record log.Record) map[string]log.Value {
	attrs := make(map[string]log.Value)
	record.WalkAttributes(func(kv log.KeyValue) bool {
		attrs[kv.Key] = kv.Value
		return true
	})

	return attrs
}

func Test_SlogBridgeLogger_AllLevels(t *testing.T) {
	// arrange
	var buf bytes.Buffer
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := context.Background()

	// act
	logger.DebugContext(ctx, "debug message")
	logger.InfoContext(ctx, "info message")
	logger.WarnContext(ctx, "warn message")
	logger.ErrorContext(ctx, "error message", "session_id", "s-1")
	logger.Info("plain info message", "event_count", 3)

	// assert
	output := buf.String()
	assert.Contains(t, output, `"level":"DEBUG","msg":"debug message"`)
	assert.Contains(t, output, `"level":"INFO","msg":"info message"`)
	assert.Contains(t, output, `"level":"WARN","msg":"warn message"`)
	assert.Contains(t, output, `"level":"ERROR","msg":"error message","session_id":"s-1"`)
	assert.Contains(t, output, `"msg":"plain info message","event_count":3`)
}

func Test_SlogBridgeLogger_RespectsHandlerLevel(t *testing.T) {
	// arrange
	var buf bytes.Buffer
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	// act
	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")

	// assert
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.NotNil(t, logger.Slog())
}

func Test_NewSlogBridgeLogger_UsesGlobalProvider(t *testing.T) {
	logger := oteladapters.NewSlogBridgeLogger("sevenguis")

	assert.NotPanics(t, func() {
		logger.InfoContext(context.Background(), "info message", "key", "value")
	})
}

func Test_OTelLogger_EmitsTypedAttributes(t *testing.T) {
	// arrange
	recorder := &recordingLogger{}
	logger := oteladapters.NewOTelLogger(recorder)

	// act
	logger.WarnContext(
		context.Background(),
		"circle drawer transition",
		"outcome", "forked",
		"cursor", 0,
		"radius", 12.5,
		"can_undo", true,
		"error", errors.New("boom"),
		42, "non-string key",
		"dangling",
	)

	// assert
	require.Len(t, recorder.records, 1)
	record := recorder.records[0].record
	assert.Equal(t, log.SeverityWarn, record.Severity())
	assert.Equal(t, "circle drawer transition", record.Body().AsString())

	attrs := attributesOf(record)
	assert.Len(t, attrs, 5)
	assert.Equal(t, "forked", attrs["outcome"].AsString())
	assert.Equal(t, int64(0), attrs["cursor"].AsInt64())
	assert.InDelta(t, 12.5, attrs["radius"].AsFloat64(), 0.0001)
	assert.True(t, attrs["can_undo"].AsBool())
	assert.Equal(t, "boom", attrs["error"].AsString())
}

func Test_OTelLogger_AllLevels(t *testing.T) {
	// arrange
	recorder := &recordingLogger{}
	logger := oteladapters.NewOTelLogger(recorder)
	ctx := context.Background()

	// act
	logger.DebugContext(ctx, "d")
	logger.InfoContext(ctx, "i")
	logger.WarnContext(ctx, "w")
	logger.ErrorContext(ctx, "e")

	// assert
	require.Len(t, recorder.records, 4)
	assert.Equal(t, log.SeverityDebug, recorder.records[0].record.Severity())
	assert.Equal(t, log.SeverityInfo, recorder.records[1].record.Severity())
	assert.Equal(t, log.SeverityWarn, recorder.records[2].record.Severity())
	assert.Equal(t, log.SeverityError, recorder.records[3].record.Severity())
}

func Test_OTelLogger_PassesTraceContext(t *testing.T) {
	// arrange
	provider := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	ctx, span := provider.Tracer("test").Start(context.Background(), "session.dispatch")
	defer span.End()

	recorder := &recordingLogger{}
	logger := oteladapters.NewOTelLogger(recorder)

	// act
	logger.InfoContext(ctx, "with trace")

	// assert
	require.Len(t, recorder.records, 1)
	assert.True(t, recorder.records[0].spanContext.IsValid())
	assert.Equal(t, span.SpanContext().TraceID(), recorder.records[0].spanContext.TraceID())
}
