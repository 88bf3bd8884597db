package eventstore_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/sevenguis-eventsourced/eventstore"
)

func Test_BuildStorableEvent_ErrorCases(t *testing.T) {
	occurredAt := time.Unix(0, 0).UTC()
	validJSON := []byte(`{"SessionID": "abc"}`)

	tests := []struct {
		name         string
		payloadJSON  []byte
		metadataJSON []byte
		expectedErr  error
	}{
		{name: "invalid payload JSON", payloadJSON: []byte(`{"X": }`), metadataJSON: validJSON, expectedErr: eventstore.ErrInvalidPayloadJSON},
		{name: "empty payload JSON", payloadJSON: []byte(``), metadataJSON: validJSON, expectedErr: eventstore.ErrInvalidPayloadJSON},
		{name: "nil payload JSON", payloadJSON: nil, metadataJSON: validJSON, expectedErr: eventstore.ErrInvalidPayloadJSON},
		{name: "invalid metadata JSON", payloadJSON: validJSON, metadataJSON: []byte(`{"MessageID"`), expectedErr: eventstore.ErrInvalidMetadataJSON},
		{name: "nil metadata JSON", payloadJSON: validJSON, metadataJSON: nil, expectedErr: eventstore.ErrInvalidMetadataJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := eventstore.BuildStorableEvent("CircleCreated", occurredAt, tt.payloadJSON, tt.metadataJSON)
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func Test_BuildStorableEvent_Success(t *testing.T) {
	occurredAt := time.Unix(0, 0).UTC()
	payload := []byte(`{"SessionID": "abc", "X": 10, "Y": 10, "Radius": 10}`)
	metadata := []byte(`{"MessageID": "m1"}`)

	event, err := eventstore.BuildStorableEvent("CircleCreated", occurredAt, payload, metadata)

	assert.NoError(t, err)
	assert.Equal(t, "CircleCreated", event.EventType)
	assert.Equal(t, occurredAt, event.OccurredAt)
	assert.Equal(t, payload, event.PayloadJSON)
	assert.Equal(t, metadata, event.MetadataJSON)
}

func Test_BuildStorableEventWithEmptyMetadata(t *testing.T) {
	event, err := eventstore.BuildStorableEventWithEmptyMetadata("EditUndone", time.Now(), []byte(`{}`))

	assert.NoError(t, err)
	assert.Equal(t, []byte("{}"), event.MetadataJSON)

	_, err = eventstore.BuildStorableEventWithEmptyMetadata("EditUndone", time.Now(), []byte(`nope`))
	assert.ErrorIs(t, err, eventstore.ErrInvalidPayloadJSON)
}
