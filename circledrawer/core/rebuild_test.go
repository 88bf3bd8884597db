package core_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/sevenguis-eventsourced/circledrawer/core"
)

func Test_PrefixLength(t *testing.T) {
	tests := []struct {
		logLength int
		cursor    int
		expected  int
	}{
		{logLength: 4, cursor: 0, expected: 4},
		{logLength: 4, cursor: 3, expected: 4},
		{logLength: 4, cursor: -1, expected: 3},
		{logLength: 4, cursor: -4, expected: 0},
		{logLength: 4, cursor: -9, expected: 0},
		{logLength: 0, cursor: 0, expected: 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, core.PrefixLength(tt.logLength, tt.cursor), "len=%d cursor=%d", tt.logLength, tt.cursor)
	}
}

func Test_Rebuild_ReplaysPrefix(t *testing.T) {
	log := givenLog()

	tests := []struct {
		name     string
		cursor   int
		expected core.Canvas
	}{
		{
			name:     "whole log",
			cursor:   0,
			expected: core.Canvas{Circles: []core.Circle{circle(10, 10, 10), circle(20, 20, 15)}, Selected: 1},
		},
		{
			name:     "resize undone",
			cursor:   -1,
			expected: core.Canvas{Circles: []core.Circle{circle(10, 10, 10), circle(20, 20, 10)}, Selected: 1},
		},
		{
			name:     "selection undone",
			cursor:   -2,
			expected: core.Canvas{Circles: []core.Circle{circle(10, 10, 10), circle(20, 20, 10)}, Selected: core.NoSelection},
		},
		{
			name:     "everything undone",
			cursor:   -4,
			expected: core.NewCanvas(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, core.Rebuild(log, tt.cursor))
		})
	}
}

func Test_Rebuild_IsDeterministic(t *testing.T) {
	log := givenLog()

	for cursor := -len(log); cursor <= 0; cursor++ {
		first := core.Rebuild(log, cursor)
		second := core.Rebuild(log, cursor)

		if diff := cmp.Diff(first, second, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("rebuild at cursor %d is not deterministic (-first +second):\n%s", cursor, diff)
		}
	}
}

func Test_Rebuild_SelectionNeverPointsPastTheCircles(t *testing.T) {
	// arrange: the second circle is selected, then the history is rewound past its creation
	log := core.DomainEvents{
		core.BuildCircleCreated(10, 10),
		core.BuildCircleCreated(40, 40),
		core.BuildCircleSelected(1),
	}

	for cursor := -len(log); cursor <= 0; cursor++ {
		// act
		canvas := core.Rebuild(log, cursor)

		// assert
		if canvas.Selected != core.NoSelection {
			assert.True(t, canvas.IsValidIndex(canvas.Selected), "cursor %d", cursor)
		}
	}
}

func givenLog() core.DomainEvents {
	return core.DomainEvents{
		core.BuildCircleCreated(10, 10),
		core.BuildCircleCreated(20, 20),
		core.BuildCircleSelected(1),
		core.BuildCircleResized(15),
	}
}
