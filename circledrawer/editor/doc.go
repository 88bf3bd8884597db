// Package editor wraps the circle drawer domain with history: an append-only log of
// committed domain events, an undo cursor into that log, and the policies deciding which
// incoming events are worth recording.
//
// Decide is a pure transition function from (State, AppEvent) to a Transition. State is a
// value; callers keep the returned State and drop the old one. The Canvas inside a State is
// always a cached Rebuild of the log at the cursor, except while a resize preview is shown.
package editor
