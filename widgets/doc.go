// Package widgets groups the remaining 7GUIs tasks next to the circle drawer.
//
// Every widget is a value State plus a pure Apply over its events, the host owns the State
// and replaces it with the result of Apply.
package widgets
