package script

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/AntonStoeckl/sevenguis-eventsourced/circledrawer/editor"
)

// Render writes a summary line plus one row per circle, the selected circle is marked with '*'.
func Render(w io.Writer, state editor.State) error {
	canvas := state.Canvas

	if _, err := fmt.Fprintf(
		w,
		"circles: %d  log: %d  cursor: %d  undo: %t  redo: %t\n",
		len(canvas.Circles), len(state.Log), state.Cursor, state.CanUndo(), state.CanRedo(),
	); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	for i, circle := range canvas.Circles {
		marker := " "
		if i == canvas.Selected {
			marker = "*"
		}

		if _, err := fmt.Fprintf(tw, "%s\t#%d\tx=%.1f\ty=%.1f\tr=%.1f\n", marker, i, circle.X, circle.Y, circle.Radius); err != nil {
			return err
		}
	}

	return tw.Flush()
}

// RenderResults writes one line per StepResult.
func RenderResults(w io.Writer, results []StepResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	for _, result := range results {
		if _, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", result.Step, result.Action, result.EventType, result.Outcome); err != nil {
			return err
		}
	}

	return tw.Flush()
}
