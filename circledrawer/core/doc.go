// Package core contains the domain of the circle drawer:
// circles on a drawing surface and the selection of one of them.
//
// The domain is modelled as value types plus a pure reducer. Apply folds one
// DomainEvent into a Canvas and Rebuild replays a prefix of an event log from
// the empty Canvas. Neither function mutates its input, so every Canvas ever
// handed out stays valid for the rest of the session.
//
// History, undo/redo and the filtering policies live one layer up in package editor.
package core
