package core

// PrefixLength returns how many events of a log with logLength entries are materialized at cursor.
//
// A cursor >= 0 materializes the whole log, a negative cursor k leaves the last -k events undone.
// The result is clamped to [0, logLength].
func PrefixLength(logLength int, cursor int) int {
	if cursor >= 0 {
		return logLength
	}

	return max(0, logLength+cursor)
}

// Rebuild replays the first PrefixLength(len(log), cursor) events onto the empty Canvas.
//
// This is the only way earlier states are reconstructed, there is no stack of snapshots.
// It is deterministic: the same (log, cursor) always produces an equal Canvas.
func Rebuild(log DomainEvents, cursor int) Canvas {
	canvas := NewCanvas()

	for _, event := range log[:PrefixLength(len(log), cursor)] {
		canvas = Apply(canvas, event)
	}

	if canvas.Selected != NoSelection && !canvas.IsValidIndex(canvas.Selected) {
		canvas.Selected = NoSelection
	}

	return canvas
}
