package core

import (
	"math"
	"slices"
)

// NoSelection is the value of Canvas.Selected when no circle is selected.
const NoSelection = -1

// DefaultRadius is the radius of a freshly created circle.
const DefaultRadius = 10.0

// Position is a point in pixel space, relative to the origin of the drawing surface.
type Position struct {
	X float64
	Y float64
}

// DistanceTo returns the Euclidean distance between p and other.
func (p Position) DistanceTo(other Position) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}

// Circle is identified by its index in Canvas.Circles, it has no stable ID.
type Circle struct {
	Position
	Radius float64
}

// Contains reports whether p lies inside or on the border of the circle.
func (c Circle) Contains(p Position) bool {
	return c.DistanceTo(p) <= c.Radius
}

// Canvas is the domain state: the ordered circles and the selected index (or NoSelection).
type Canvas struct {
	Circles  []Circle
	Selected int
}

// NewCanvas returns the empty initial Canvas.
func NewCanvas() Canvas {
	return Canvas{Selected: NoSelection}
}

// IsValidIndex reports whether i addresses one of the circles.
func (c Canvas) IsValidIndex(i int) bool {
	return i >= 0 && i < len(c.Circles)
}

// Selection returns the selected circle, if any.
func (c Canvas) Selection() (Circle, bool) {
	if !c.IsValidIndex(c.Selected) {
		return Circle{}, false
	}

	return c.Circles[c.Selected], true
}

// LastCreated returns the most recently created circle, if any.
func (c Canvas) LastCreated() (Circle, bool) {
	if len(c.Circles) == 0 {
		return Circle{}, false
	}

	return c.Circles[len(c.Circles)-1], true
}

// HitTest returns the index of the topmost circle containing p, or NoSelection.
// Later circles are painted over earlier ones, so the search runs backwards.
func (c Canvas) HitTest(p Position) int {
	for i := len(c.Circles) - 1; i >= 0; i-- {
		if c.Circles[i].Contains(p) {
			return i
		}
	}

	return NoSelection
}

// Clone returns a deep copy of the Canvas.
func (c Canvas) Clone() Canvas {
	c.Circles = slices.Clone(c.Circles)

	return c
}
