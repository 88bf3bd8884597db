package config_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/sevenguis-eventsourced/config"
)

func Test_Observability_StdoutExporter(t *testing.T) {
	// arrange
	var buf bytes.Buffer
	obs, err := config.ObservabilityConfig{Exporter: config.ExporterStdout, ServiceName: "sevenguis-test"}.NewObservability(&buf)
	require.NoError(t, err)

	counter, err := obs.Meter("test").Int64Counter("session_transitions_total")
	require.NoError(t, err)

	// act
	_, span := obs.Tracer("test").Start(context.Background(), "session.dispatch")
	counter.Add(context.Background(), 1)
	span.End()
	require.NoError(t, obs.Shutdown(context.Background()))

	// assert
	assert.Contains(t, buf.String(), "session.dispatch")
	assert.Contains(t, buf.String(), "session_transitions_total")
	assert.Contains(t, buf.String(), "sevenguis-test")
}

func Test_Observability_NoneExporterWritesNothing(t *testing.T) {
	// arrange
	var buf bytes.Buffer
	obs, err := config.Default().Observability.NewObservability(&buf)
	require.NoError(t, err)

	// act
	_, span := obs.Tracer("test").Start(context.Background(), "session.dispatch")
	span.End()
	require.NoError(t, obs.Shutdown(context.Background()))

	// assert
	assert.Empty(t, buf.String())
	assert.True(t, span.SpanContext().IsValid())
}
