package editor

import (
	"github.com/AntonStoeckl/sevenguis-eventsourced/circledrawer/core"
)

// State is the application state of one editing session.
//
// Invariants:
//   - -len(Log) <= Cursor <= 0
//   - Canvas equals core.Rebuild(Log, Cursor) unless a resize preview is being shown
type State struct {
	Canvas core.Canvas
	Log    core.DomainEvents
	Cursor int
}

// NewState returns the State a session starts with: empty log, cursor 0, empty Canvas.
func NewState() State {
	return State{
		Canvas: core.NewCanvas(),
		Cursor: 0,
	}
}

// CanUndo reports whether Undo would move the cursor. The UI disables its undo control otherwise.
func (s State) CanUndo() bool {
	return s.Cursor > -len(s.Log)
}

// CanRedo reports whether Redo would move the cursor. The UI disables its redo control otherwise.
func (s State) CanRedo() bool {
	return s.Cursor < 0
}

// Undone returns how many trailing events of the log are currently undone.
func (s State) Undone() int {
	return -s.Cursor
}

// Committed returns the materialized prefix of the log.
func (s State) Committed() core.DomainEvents {
	return s.Log[:core.PrefixLength(len(s.Log), s.Cursor)]
}
