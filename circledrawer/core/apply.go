package core

import (
	"slices"
)

// Apply is the domain reducer: it returns the Canvas after event happened on canvas.
//
// It is pure and total. Inputs that would break the Canvas invariants are absorbed:
//   - a CircleSelected outside [NoSelection, len(Circles)) clears the selection
//   - a CircleResized without a selection, or with a radius <= 0, changes nothing
func Apply(canvas Canvas, event DomainEvent) Canvas {
	switch e := event.(type) {
	case CircleCreated:
		canvas.Circles = append(slices.Clip(canvas.Circles), e.Circle)
		canvas.Selected = NoSelection

	case CircleSelected:
		canvas.Selected = e.Index
		if !canvas.IsValidIndex(e.Index) {
			canvas.Selected = NoSelection
		}

	case CircleResized:
		if !canvas.IsValidIndex(canvas.Selected) || !(e.Radius > 0) {
			return canvas
		}

		canvas.Circles = slices.Clone(canvas.Circles)
		canvas.Circles[canvas.Selected].Radius = e.Radius
	}

	return canvas
}
