package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/sevenguis-eventsourced/circledrawer/core"
	"github.com/AntonStoeckl/sevenguis-eventsourced/circledrawer/editor"
	"github.com/AntonStoeckl/sevenguis-eventsourced/eventstore"
)

var (
	// ErrMappingToAppEventFailed is returned when app event conversion fails.
	ErrMappingToAppEventFailed = errors.New("mapping to app event failed")

	// ErrMappingToAppEventUnknownEventType is returned for unrecognized event types.
	ErrMappingToAppEventUnknownEventType = errors.New("unknown event type")
)

// AppEventsFrom converts multiple StorableEvents to AppEvents.
func AppEventsFrom(storableEvents eventstore.StorableEvents) ([]editor.AppEvent, error) {
	appEvents := make([]editor.AppEvent, 0, len(storableEvents))

	for _, storableEvent := range storableEvents {
		appEvent, err := AppEventFrom(storableEvent)
		if err != nil {
			return nil, err
		}

		appEvents = append(appEvents, appEvent)
	}

	return appEvents, nil
}

// AppEventFrom converts a StorableEvent to its corresponding AppEvent.
func AppEventFrom(storableEvent eventstore.StorableEvent) (editor.AppEvent, error) {
	switch storableEvent.EventType {
	case core.CircleCreatedEventType:
		payload := circleCreatedPayload{}
		if err := unmarshalPayload(storableEvent, &payload); err != nil {
			return nil, err
		}

		return core.CircleCreated{
			Circle: core.Circle{Position: core.Position{X: payload.X, Y: payload.Y}, Radius: payload.Radius},
		}, nil

	case core.CircleSelectedEventType:
		payload := circleSelectedPayload{}
		if err := unmarshalPayload(storableEvent, &payload); err != nil {
			return nil, err
		}

		return core.BuildCircleSelected(payload.Index), nil

	case core.CircleResizedEventType:
		payload := circleResizedPayload{}
		if err := unmarshalPayload(storableEvent, &payload); err != nil {
			return nil, err
		}

		return core.BuildCircleResized(payload.Radius), nil

	case editor.UndoEventType:
		return editor.Undo{}, nil

	case editor.RedoEventType:
		return editor.Redo{}, nil
	}

	return nil, errors.Join(ErrMappingToAppEventFailed, ErrMappingToAppEventUnknownEventType)
}

func unmarshalPayload(storableEvent eventstore.StorableEvent, payload any) error {
	if err := jsoniter.ConfigFastest.Unmarshal(storableEvent.PayloadJSON, payload); err != nil {
		return errors.Join(ErrMappingToAppEventFailed, err)
	}

	return nil
}
