package editor

import (
	"slices"

	"github.com/AntonStoeckl/sevenguis-eventsourced/circledrawer/core"
)

// Outcome names what Decide did with an AppEvent.
type Outcome string

const (
	// OutcomeIgnored means a policy dropped the event, the State is unchanged.
	OutcomeIgnored Outcome = "ignored"

	// OutcomePreviewed means a resize preview changed the Canvas but not the history.
	OutcomePreviewed Outcome = "previewed"

	// OutcomeCommitted means the event was appended to a log without pending undo.
	OutcomeCommitted Outcome = "committed"

	// OutcomeForked means the undone suffix of the log was discarded before appending the event.
	OutcomeForked Outcome = "forked"

	// OutcomeUndone means the cursor moved one event back.
	OutcomeUndone Outcome = "undone"

	// OutcomeRedone means the cursor moved one event forward.
	OutcomeRedone Outcome = "redone"

	// OutcomeSaturated means an Undo or Redo hit the boundary of the history, the State is unchanged.
	OutcomeSaturated Outcome = "saturated"
)

// ChangesHistory reports whether the transition changed the log or the cursor.
// Exactly these transitions have to be journaled to restore a session.
func (o Outcome) ChangesHistory() bool {
	switch o {
	case OutcomeCommitted, OutcomeForked, OutcomeUndone, OutcomeRedone:
		return true
	default:
		return false
	}
}

// Transition is the result of Decide: the next State and what happened to get there.
type Transition struct {
	State   State
	Outcome Outcome
}

// Apply returns the State after event, see Decide.
func Apply(state State, event AppEvent, policies ...Policy) State {
	return Decide(state, event, policies...).State
}

// Decide is the application reducer. It is pure and total.
//
//   - Undo: cursor = max(-len(log), cursor-1), Canvas is rebuilt
//   - Redo: no-op at cursor 0, else cursor+1, Canvas is rebuilt
//   - domain events pass the filtering policies first (duplicate select, duplicate position,
//     invalid select, non-positive radius), then resize previews only touch the Canvas, and everything
//     else is appended to the log; with pending undo the undone suffix is discarded first
func Decide(state State, event AppEvent, policies ...Policy) Transition {
	switch e := event.(type) {
	case Undo:
		return undo(state)

	case Redo:
		return redo(state)

	case core.DomainEvent:
		return decideDomainEvent(state, e, buildPolicies(policies...))

	default:
		return Transition{State: state, Outcome: OutcomeIgnored}
	}
}

func undo(state State) Transition {
	if !state.CanUndo() {
		return Transition{State: state, Outcome: OutcomeSaturated}
	}

	state.Cursor--
	state.Canvas = core.Rebuild(state.Log, state.Cursor)

	return Transition{State: state, Outcome: OutcomeUndone}
}

func redo(state State) Transition {
	if !state.CanRedo() {
		return Transition{State: state, Outcome: OutcomeSaturated}
	}

	state.Cursor++
	state.Canvas = core.Rebuild(state.Log, state.Cursor)

	return Transition{State: state, Outcome: OutcomeRedone}
}

func decideDomainEvent(state State, event core.DomainEvent, policies Policies) Transition {
	if !policies.isWorthRecording(state.Canvas, event) {
		return Transition{State: state, Outcome: OutcomeIgnored}
	}

	if resized, ok := event.(core.CircleResized); ok && resized.Preview {
		state.Canvas = core.Apply(state.Canvas, resized)

		return Transition{State: state, Outcome: OutcomePreviewed}
	}

	if state.Cursor == 0 {
		state.Log = append(slices.Clip(state.Log), event)
		state.Canvas = core.Apply(state.Canvas, event)

		return Transition{State: state, Outcome: OutcomeCommitted}
	}

	kept := slices.Clip(state.Log[:core.PrefixLength(len(state.Log), state.Cursor)])
	state.Log = append(kept, event)
	state.Canvas = core.Apply(core.Rebuild(kept, 0), event)
	state.Cursor = 0

	return Transition{State: state, Outcome: OutcomeForked}
}
