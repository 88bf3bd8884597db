// Package timer is the 7GUIs timer: a progress bar filling up over an adjustable duration.
//
// Time is never read from a global clock. Every event carries the instant it happened,
// Run produces Tick events from an injected Clock.
package timer

import (
	"time"
)

// MaxDuration is the upper bound of the duration slider.
const MaxDuration = 100 * time.Second

// DefaultTickInterval is how often Run emits a Tick.
const DefaultTickInterval = 50 * time.Millisecond

// State of the timer. Active means the bar is still filling up.
type State struct {
	Active   bool
	Start    time.Time
	Duration time.Duration
	Elapsed  time.Duration
}

// NewState returns an active timer started at now with MaxDuration.
func NewState(now time.Time) State {
	return State{Active: true, Start: now, Duration: MaxDuration}
}

// Progress returns Elapsed relative to Duration in [0, 1]. A zero Duration counts as complete.
func (s State) Progress() float64 {
	if s.Duration <= 0 {
		return 1
	}

	return min(1, max(0, float64(s.Elapsed)/float64(s.Duration)))
}

// Event is an input of the timer.
type Event interface {
	isTimerEvent()
}

// Tick advances Elapsed to Now.
type Tick struct {
	Now time.Time
}

// Reset restarts the timer at Now.
type Reset struct {
	Now time.Time
}

// UpdateDuration is a move of the duration slider at Now.
type UpdateDuration struct {
	Duration time.Duration
	Now      time.Time
}

func (Tick) isTimerEvent()           {}
func (Reset) isTimerEvent()          {}
func (UpdateDuration) isTimerEvent() {}

// Apply returns the State after event.
//
// While active, Tick moves Elapsed forward and deactivates the timer once Duration is reached.
// While inactive, Tick does nothing, and raising the Duration above Elapsed resumes the timer from Elapsed.
// Reset always restarts at zero.
func Apply(state State, event Event) State {
	switch e := event.(type) {
	case Reset:
		state.Active = true
		state.Start = e.Now
		state.Elapsed = 0

	case Tick:
		if !state.Active {
			return state
		}

		elapsed := e.Now.Sub(state.Start)
		state.Active = elapsed < state.Duration
		state.Elapsed = min(elapsed, state.Duration)

	case UpdateDuration:
		duration := clampDuration(e.Duration)

		if state.Active {
			elapsed := e.Now.Sub(state.Start)
			state.Duration = duration
			state.Active = elapsed < duration
			state.Elapsed = min(elapsed, duration)

			return state
		}

		state.Duration = duration
		state.Active = state.Elapsed < duration
		state.Elapsed = min(state.Elapsed, duration)
		state.Start = e.Now.Add(-state.Elapsed)
	}

	return state
}

func clampDuration(d time.Duration) time.Duration {
	return min(MaxDuration, max(0, d))
}
