package script

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/AntonStoeckl/sevenguis-eventsourced/circledrawer/core"
	"github.com/AntonStoeckl/sevenguis-eventsourced/circledrawer/editor"
)

// Action names one user gesture.
type Action string

const (
	ActionClick    Action = "click"
	ActionCreate   Action = "create"
	ActionSelect   Action = "select"
	ActionDeselect Action = "deselect"
	ActionResize   Action = "resize"
	ActionUndo     Action = "undo"
	ActionRedo     Action = "redo"
)

var (
	ErrParsingScriptFailed    = errors.New("parsing the script failed")
	ErrValidatingScriptFailed = errors.New("validating the script failed")
	ErrStepFailed             = errors.New("script step failed")
)

// Script is a sequence of steps, optionally bound to the session it continues.
type Script struct {
	SessionID string `yaml:"session_id"`
	Steps     []Step `yaml:"steps" validate:"min=1,dive"`
}

// Step is one gesture. Which fields are used depends on Action:
//   - click, create: X and Y
//   - select: Index
//   - resize: the Preview radii are dragged through before Radius is committed
type Step struct {
	Action  Action    `yaml:"action" validate:"oneof=click create select deselect resize undo redo"`
	X       float64   `yaml:"x"`
	Y       float64   `yaml:"y"`
	Index   *int      `yaml:"index" validate:"required_if=Action select"`
	Radius  float64   `yaml:"radius" validate:"required_if=Action resize"`
	Preview []float64 `yaml:"preview"`
}

// StepResult is the outcome of one dispatched AppEvent. A resize step yields one result per preview.
type StepResult struct {
	Step      int
	Action    Action
	EventType string
	Outcome   editor.Outcome
}

// Dispatcher is what Play drives, *shell.Session implements it.
type Dispatcher interface {
	Dispatch(ctx context.Context, event editor.AppEvent) (editor.Transition, error)
	Click(ctx context.Context, x, y float64) (editor.Transition, error)
}

// Parse decodes and validates a script. Unknown keys are rejected.
func Parse(data []byte) (Script, error) {
	var s Script

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&s); err != nil {
		return Script{}, errors.Join(ErrParsingScriptFailed, err)
	}

	if err := validator.New().Struct(s); err != nil {
		return Script{}, errors.Join(ErrValidatingScriptFailed, err)
	}

	return s, nil
}

// Play runs the steps in order and stops at the first error.
// The results of all dispatches before the error are returned either way.
func Play(ctx context.Context, dispatcher Dispatcher, s Script) ([]StepResult, error) {
	results := make([]StepResult, 0, len(s.Steps))

	for i, step := range s.Steps {
		if step.Action == ActionClick {
			transition, err := dispatcher.Click(ctx, step.X, step.Y)
			if err != nil {
				return results, stepError(i, step, err)
			}

			results = append(results, StepResult{Step: i, Action: step.Action, EventType: "Click", Outcome: transition.Outcome})

			continue
		}

		for _, event := range step.AppEvents() {
			transition, err := dispatcher.Dispatch(ctx, event)
			if err != nil {
				return results, stepError(i, step, err)
			}

			results = append(results, StepResult{Step: i, Action: step.Action, EventType: event.EventType(), Outcome: transition.Outcome})
		}
	}

	return results, nil
}

// AppEvents translates a step into the AppEvents it dispatches. A click depends on the Canvas
// and is resolved by the Dispatcher, so it yields nil here.
func (s Step) AppEvents() []editor.AppEvent {
	switch s.Action {
	case ActionCreate:
		return []editor.AppEvent{core.BuildCircleCreated(s.X, s.Y)}

	case ActionSelect:
		if s.Index == nil {
			return nil
		}

		return []editor.AppEvent{core.BuildCircleSelected(*s.Index)}

	case ActionDeselect:
		return []editor.AppEvent{core.BuildCircleSelected(core.NoSelection)}

	case ActionResize:
		events := make([]editor.AppEvent, 0, len(s.Preview)+1)
		for _, radius := range s.Preview {
			events = append(events, core.BuildCircleResizePreview(radius))
		}

		return append(events, core.BuildCircleResized(s.Radius))

	case ActionUndo:
		return []editor.AppEvent{editor.Undo{}}

	case ActionRedo:
		return []editor.AppEvent{editor.Redo{}}

	default:
		return nil
	}
}

func stepError(index int, step Step, err error) error {
	return errors.Join(ErrStepFailed, fmt.Errorf("step %d (%s): %w", index, step.Action, err))
}
