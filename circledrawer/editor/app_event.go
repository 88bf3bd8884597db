package editor

import (
	"github.com/AntonStoeckl/sevenguis-eventsourced/circledrawer/core"
)

const (
	UndoEventType = "EditUndone"
	RedoEventType = "EditRedone"
)

// AppEvent is either a core.DomainEvent or one of the history events Undo and Redo.
type AppEvent interface {
	EventType() string
}

// Undo moves the cursor one event back in history.
type Undo struct{}

// EventType returns the event type identifier.
func (Undo) EventType() string {
	return UndoEventType
}

// Redo moves the cursor one event forward in history.
type Redo struct{}

// EventType returns the event type identifier.
func (Redo) EventType() string {
	return RedoEventType
}

var (
	_ AppEvent = Undo{}
	_ AppEvent = Redo{}
	_ AppEvent = core.CircleCreated{}
	_ AppEvent = core.CircleSelected{}
	_ AppEvent = core.CircleResized{}
)
