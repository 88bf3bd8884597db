// Package script drives a circle drawer Session from a YAML script of user actions
// and renders the resulting state as text.
//
// A script replaces the mouse: each Step is one gesture (a click, a resize dialog, an undo),
// so a whole editing session can be replayed from the command line or a test.
package script
