package shell

import (
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/sevenguis-eventsourced/circledrawer/core"
	"github.com/AntonStoeckl/sevenguis-eventsourced/circledrawer/editor"
	"github.com/AntonStoeckl/sevenguis-eventsourced/eventstore"
)

var (
	// ErrMappingToStorableEventFailedForAppEvent is returned when app event serialization fails.
	ErrMappingToStorableEventFailedForAppEvent = errors.New("mapping to storable event failed for app event")

	// ErrMappingToStorableEventFailedForMetadata is returned when metadata serialization fails.
	ErrMappingToStorableEventFailedForMetadata = errors.New("mapping to storable event failed for metadata")

	// ErrResizePreviewIsNotStorable is returned for resize previews, they never enter the history.
	ErrResizePreviewIsNotStorable = errors.New("resize previews are not storable")
)

// The payloads carry the SessionID, so a journal can be selected with a payload predicate.
const payloadKeySessionID = "SessionID"

type circleCreatedPayload struct {
	SessionID SessionID
	X         float64
	Y         float64
	Radius    float64
}

type circleSelectedPayload struct {
	SessionID SessionID
	Index     int
}

type circleResizedPayload struct {
	SessionID SessionID
	Radius    float64
}

type historyPayload struct {
	SessionID SessionID
}

// StorableEventFrom converts an AppEvent and its EventMetadata to a StorableEvent.
func StorableEventFrom(event editor.AppEvent, metadata EventMetadata, occurredAt time.Time) (eventstore.StorableEvent, error) {
	payload, err := payloadFor(event, metadata.SessionID)
	if err != nil {
		return eventstore.StorableEvent{}, err
	}

	payloadJSON, err := jsoniter.ConfigFastest.Marshal(payload)
	if err != nil {
		return eventstore.StorableEvent{}, errors.Join(ErrMappingToStorableEventFailedForAppEvent, err)
	}

	metadataJSON, err := jsoniter.ConfigFastest.Marshal(metadata)
	if err != nil {
		return eventstore.StorableEvent{}, errors.Join(ErrMappingToStorableEventFailedForMetadata, err)
	}

	storableEvent, err := eventstore.BuildStorableEvent(event.EventType(), occurredAt.UTC(), payloadJSON, metadataJSON)
	if err != nil {
		return eventstore.StorableEvent{}, errors.Join(ErrMappingToStorableEventFailedForAppEvent, err)
	}

	return storableEvent, nil
}

func payloadFor(event editor.AppEvent, sessionID SessionID) (any, error) {
	switch e := event.(type) {
	case core.CircleCreated:
		return circleCreatedPayload{SessionID: sessionID, X: e.Circle.X, Y: e.Circle.Y, Radius: e.Circle.Radius}, nil

	case core.CircleSelected:
		return circleSelectedPayload{SessionID: sessionID, Index: e.Index}, nil

	case core.CircleResized:
		if e.Preview {
			return nil, errors.Join(ErrMappingToStorableEventFailedForAppEvent, ErrResizePreviewIsNotStorable)
		}

		return circleResizedPayload{SessionID: sessionID, Radius: e.Radius}, nil

	case editor.Undo, editor.Redo:
		return historyPayload{SessionID: sessionID}, nil

	default:
		return nil, errors.Join(ErrMappingToStorableEventFailedForAppEvent, ErrMappingToAppEventUnknownEventType)
	}
}
