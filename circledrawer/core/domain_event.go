package core

const (
	CircleCreatedEventType  = "CircleCreated"
	CircleSelectedEventType = "CircleSelected"
	CircleResizedEventType  = "CircleResized"
)

// DomainEvents is a slice of DomainEvent instances.
type DomainEvents = []DomainEvent

// DomainEvent is a user-meaningful change to the circles on the Canvas.
//
// The set of implementations is closed: CircleCreated, CircleSelected and CircleResized.
type DomainEvent interface {
	EventType() string
	isDomainEvent()
}

// CircleCreated appends a circle and clears the selection.
type CircleCreated struct {
	Circle Circle
}

// BuildCircleCreated creates a CircleCreated event for a circle of DefaultRadius at (x, y).
func BuildCircleCreated(x, y float64) CircleCreated {
	return CircleCreated{
		Circle: Circle{Position: Position{X: x, Y: y}, Radius: DefaultRadius},
	}
}

// EventType returns the event type identifier.
func (e CircleCreated) EventType() string {
	return CircleCreatedEventType
}

func (e CircleCreated) isDomainEvent() {}

// CircleSelected sets the selection, NoSelection clears it.
type CircleSelected struct {
	Index int
}

// BuildCircleSelected creates a CircleSelected event.
func BuildCircleSelected(index int) CircleSelected {
	return CircleSelected{Index: index}
}

// EventType returns the event type identifier.
func (e CircleSelected) EventType() string {
	return CircleSelectedEventType
}

func (e CircleSelected) isDomainEvent() {}

// CircleResized replaces the radius of the currently selected circle.
//
// Preview marks a live update while a radius control is being dragged.
// Previews are rendered but never become part of the history.
type CircleResized struct {
	Radius  float64
	Preview bool
}

// BuildCircleResized creates a committed CircleResized event.
func BuildCircleResized(radius float64) CircleResized {
	return CircleResized{Radius: radius}
}

// BuildCircleResizePreview creates a preview CircleResized event.
func BuildCircleResizePreview(radius float64) CircleResized {
	return CircleResized{Radius: radius, Preview: true}
}

// EventType returns the event type identifier.
func (e CircleResized) EventType() string {
	return CircleResizedEventType
}

func (e CircleResized) isDomainEvent() {}
