package shell

import (
	"errors"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/sevenguis-eventsourced/eventstore"
)

// ErrMappingToEventMetadataFailed is returned when metadata conversion fails.
var ErrMappingToEventMetadataFailed = errors.New("mapping to event metadata failed")

// SessionID identifies one editing session and its journal.
type SessionID = string

// MessageID represents a unique message identifier.
type MessageID = string

// CausationID represents the ID of the journaled event that preceded this one in the session.
type CausationID = string

// EventMetadata contains event tracking information.
type EventMetadata struct {
	SessionID   SessionID
	MessageID   MessageID
	CausationID CausationID
}

// NewSessionID creates a random SessionID.
func NewSessionID() SessionID {
	return uuid.NewString()
}

// BuildEventMetadata creates EventMetadata with a fresh MessageID.
// The first event of a session is caused by the session itself.
func BuildEventMetadata(sessionID SessionID, causationID CausationID) EventMetadata {
	if causationID == "" {
		causationID = sessionID
	}

	return EventMetadata{
		SessionID:   sessionID,
		MessageID:   uuid.NewString(),
		CausationID: causationID,
	}
}

// EventMetadataFrom extracts EventMetadata from a StorableEvent.
func EventMetadataFrom(storableEvent eventstore.StorableEvent) (EventMetadata, error) {
	metadata := EventMetadata{}

	if err := jsoniter.ConfigFastest.Unmarshal(storableEvent.MetadataJSON, &metadata); err != nil {
		return EventMetadata{}, errors.Join(ErrMappingToEventMetadataFailed, err)
	}

	return metadata, nil
}
