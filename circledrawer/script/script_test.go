package script_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/sevenguis-eventsourced/circledrawer/core"
	"github.com/AntonStoeckl/sevenguis-eventsourced/circledrawer/editor"
	"github.com/AntonStoeckl/sevenguis-eventsourced/circledrawer/script"
	"github.com/AntonStoeckl/sevenguis-eventsourced/circledrawer/shell"
	"github.com/AntonStoeckl/sevenguis-eventsourced/eventstore/memoryengine"
)

const editingScript = `
session_id: 7a0c1a57-5d0e-4a54-9b77-000000000001
steps:
  - action: click
    x: 10
    y: 10
  - action: click
    x: 12
    y: 11
  - action: resize
    preview: [15, 20]
    radius: 25
  - action: undo
  - action: click
    x: 100
    y: 100
`

type failingDispatcher struct{}

func (failingDispatcher) Dispatch(context.Context, editor.AppEvent) (editor.Transition, error) {
	return editor.Transition{}, errors.New("journal unavailable")
}

func (failingDispatcher) Click(context.Context, float64, float64) (editor.Transition, error) {
	return editor.Transition{}, errors.New("journal unavailable")
}

func Test_Parse_ValidScript(t *testing.T) {
	// act
	s, err := script.Parse([]byte(editingScript))

	// assert
	require.NoError(t, err)
	assert.Equal(t, "7a0c1a57-5d0e-4a54-9b77-000000000001", s.SessionID)
	require.Len(t, s.Steps, 5)
	assert.Equal(t, script.ActionResize, s.Steps[2].Action)
	assert.Equal(t, []float64{15, 20}, s.Steps[2].Preview)
	assert.Equal(t, 25.0, s.Steps[2].Radius)
}

func Test_Parse_InvalidScripts(t *testing.T) {
	testCases := []struct {
		description string
		data        string
		expected    error
	}{
		{description: "empty document", data: "", expected: script.ErrParsingScriptFailed},
		{description: "unknown key", data: "steps:\n  - action: undo\n    colour: red\n", expected: script.ErrParsingScriptFailed},
		{description: "no steps", data: "steps: []\n", expected: script.ErrValidatingScriptFailed},
		{description: "unknown action", data: "steps:\n  - action: paint\n", expected: script.ErrValidatingScriptFailed},
		{description: "select without index", data: "steps:\n  - action: select\n", expected: script.ErrValidatingScriptFailed},
		{description: "resize without radius", data: "steps:\n  - action: resize\n", expected: script.ErrValidatingScriptFailed},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// act
			_, err := script.Parse([]byte(tc.data))

			// assert
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}

func Test_Parse_SelectIndexZeroIsValid(t *testing.T) {
	// act
	s, err := script.Parse([]byte("steps:\n  - action: select\n    index: 0\n"))

	// assert
	require.NoError(t, err)
	assert.Equal(t, []editor.AppEvent{core.BuildCircleSelected(0)}, s.Steps[0].AppEvents())
}

func Test_Step_AppEvents(t *testing.T) {
	assert.Equal(t,
		[]editor.AppEvent{core.BuildCircleResizePreview(12), core.BuildCircleResized(14)},
		script.Step{Action: script.ActionResize, Preview: []float64{12}, Radius: 14}.AppEvents(),
	)
	assert.Equal(t,
		[]editor.AppEvent{core.BuildCircleSelected(core.NoSelection)},
		script.Step{Action: script.ActionDeselect}.AppEvents(),
	)
	assert.Equal(t, []editor.AppEvent{editor.Undo{}}, script.Step{Action: script.ActionUndo}.AppEvents())
	assert.Equal(t, []editor.AppEvent{editor.Redo{}}, script.Step{Action: script.ActionRedo}.AppEvents())
	assert.Nil(t, script.Step{Action: script.ActionClick}.AppEvents())
}

func Test_Play_DrivesSessionAndJournal(t *testing.T) {
	// arrange
	s, err := script.Parse([]byte(editingScript))
	require.NoError(t, err)

	store := memoryengine.NewEventStore()
	session, err := shell.NewSession(shell.SessionID(s.SessionID), shell.WithJournal(store))
	require.NoError(t, err)

	// act
	results, err := script.Play(context.Background(), session, s)

	// assert
	require.NoError(t, err)

	outcomes := make([]editor.Outcome, 0, len(results))
	for _, result := range results {
		outcomes = append(outcomes, result.Outcome)
	}

	assert.Equal(t, []editor.Outcome{
		editor.OutcomeCommitted, // click creates
		editor.OutcomeCommitted, // click hits and selects
		editor.OutcomePreviewed,
		editor.OutcomePreviewed,
		editor.OutcomeCommitted,
		editor.OutcomeUndone,
		editor.OutcomeForked,
	}, outcomes)

	state := session.State()
	assert.Len(t, state.Log, 3)
	assert.Equal(t, 0, state.Cursor)
	require.Len(t, state.Canvas.Circles, 2)
	assert.Equal(t, core.DefaultRadius, state.Canvas.Circles[0].Radius)
	assert.Equal(t, core.NoSelection, state.Canvas.Selected)

	// create, select, resize, undo, create
	assert.Equal(t, 5, store.Len())
}

func Test_Play_StopsAtFirstError(t *testing.T) {
	// arrange
	s := script.Script{Steps: []script.Step{{Action: script.ActionUndo}, {Action: script.ActionRedo}}}

	// act
	results, err := script.Play(context.Background(), failingDispatcher{}, s)

	// assert
	assert.ErrorIs(t, err, script.ErrStepFailed)
	assert.Contains(t, err.Error(), "step 0 (undo)")
	assert.Empty(t, results)
}

func Test_Render(t *testing.T) {
	// arrange
	state := editor.State{
		Canvas: core.Canvas{
			Circles: []core.Circle{
				{Position: core.Position{X: 10, Y: 20}, Radius: 10},
				{Position: core.Position{X: 50, Y: 60}, Radius: 25},
			},
			Selected: 1,
		},
		Log: core.DomainEvents{
			core.BuildCircleCreated(10, 20),
			core.BuildCircleCreated(50, 60),
			core.BuildCircleSelected(1),
			core.BuildCircleResized(25),
			core.BuildCircleResized(30),
		},
		Cursor: -1,
	}
	var buf bytes.Buffer

	// act
	err := script.Render(&buf, state)

	// assert
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "circles: 2  log: 5  cursor: -1  undo: true  redo: true", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], " "))
	assert.Contains(t, lines[1], "#0")
	assert.Contains(t, lines[1], "r=10.0")
	assert.True(t, strings.HasPrefix(lines[2], "*"))
	assert.Contains(t, lines[2], "#1")
	assert.Contains(t, lines[2], "x=50.0")
	assert.Contains(t, lines[2], "r=25.0")
}

func Test_RenderResults(t *testing.T) {
	// arrange
	var buf bytes.Buffer

	// act
	err := script.RenderResults(&buf, []script.StepResult{
		{Step: 0, Action: script.ActionUndo, EventType: editor.UndoEventType, Outcome: editor.OutcomeSaturated},
	})

	// assert
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "undo")
	assert.Contains(t, buf.String(), editor.UndoEventType)
	assert.Contains(t, buf.String(), string(editor.OutcomeSaturated))
}
