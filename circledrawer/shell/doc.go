// Package shell hosts circle drawer sessions.
//
// A Session owns the editor.State of one user and serialises its dispatches.
// With a journal configured, every transition that changes the history is appended as a
// StorableEvent, and RestoreSession replays the journal through editor.Decide.
package shell
