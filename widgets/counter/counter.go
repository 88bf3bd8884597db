// Package counter is the 7GUIs counter: a read-only number and a button that increments it.
package counter

// State holds the current count, the zero value is the initial State.
type State struct {
	Count int
}

// Event is an input of the counter.
type Event interface {
	isCounterEvent()
}

// Increment is a click on the count button.
type Increment struct{}

func (Increment) isCounterEvent() {}

// Apply returns the State after event.
func Apply(state State, event Event) State {
	switch event.(type) {
	case Increment:
		state.Count++
	}

	return state
}
