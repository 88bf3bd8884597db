package timer_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/sevenguis-eventsourced/widgets/timer"
)

var t0 = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func Test_Tick_WhileActive(t *testing.T) {
	// arrange
	state := timer.NewState(t0)

	// act
	state = timer.Apply(state, timer.Tick{Now: t0.Add(25 * time.Second)})

	// assert
	assert.True(t, state.Active)
	assert.Equal(t, 25*time.Second, state.Elapsed)
	assert.InDelta(t, 0.25, state.Progress(), 1e-9)
}

func Test_Tick_ReachesDuration(t *testing.T) {
	// arrange
	state := timer.Apply(timer.NewState(t0), timer.UpdateDuration{Duration: 10 * time.Second, Now: t0})

	// act
	state = timer.Apply(state, timer.Tick{Now: t0.Add(12 * time.Second)})
	afterMoreTicks := timer.Apply(state, timer.Tick{Now: t0.Add(20 * time.Second)})

	// assert
	assert.False(t, state.Active)
	assert.Equal(t, 10*time.Second, state.Elapsed)
	assert.InDelta(t, 1.0, state.Progress(), 1e-9)
	assert.Equal(t, state, afterMoreTicks)
}

func Test_UpdateDuration_IsClamped(t *testing.T) {
	tooLong := timer.Apply(timer.NewState(t0), timer.UpdateDuration{Duration: 5 * time.Minute, Now: t0})
	negative := timer.Apply(timer.NewState(t0), timer.UpdateDuration{Duration: -time.Second, Now: t0})

	assert.Equal(t, timer.MaxDuration, tooLong.Duration)
	assert.Equal(t, time.Duration(0), negative.Duration)
	assert.False(t, negative.Active)
	assert.InDelta(t, 1.0, negative.Progress(), 1e-9)
}

func Test_UpdateDuration_WhileActiveBelowElapsed(t *testing.T) {
	// arrange
	state := timer.NewState(t0)

	// act
	state = timer.Apply(state, timer.UpdateDuration{Duration: 5 * time.Second, Now: t0.Add(8 * time.Second)})

	// assert
	assert.False(t, state.Active)
	assert.Equal(t, 5*time.Second, state.Elapsed)
}

func Test_UpdateDuration_WhileInactiveResumes(t *testing.T) {
	// arrange
	state := timer.Apply(timer.NewState(t0), timer.UpdateDuration{Duration: 10 * time.Second, Now: t0})
	state = timer.Apply(state, timer.Tick{Now: t0.Add(15 * time.Second)})
	resumeAt := t0.Add(30 * time.Second)

	// act
	state = timer.Apply(state, timer.UpdateDuration{Duration: 20 * time.Second, Now: resumeAt})
	state = timer.Apply(state, timer.Tick{Now: resumeAt.Add(4 * time.Second)})

	// assert
	assert.True(t, state.Active)
	assert.Equal(t, 14*time.Second, state.Elapsed)
}

func Test_UpdateDuration_WhileInactiveBelowElapsedStaysInactive(t *testing.T) {
	// arrange
	state := timer.Apply(timer.NewState(t0), timer.UpdateDuration{Duration: 10 * time.Second, Now: t0})
	state = timer.Apply(state, timer.Tick{Now: t0.Add(15 * time.Second)})

	// act
	state = timer.Apply(state, timer.UpdateDuration{Duration: 5 * time.Second, Now: t0.Add(20 * time.Second)})

	// assert
	assert.False(t, state.Active)
	assert.Equal(t, 5*time.Second, state.Duration)
	assert.Equal(t, 5*time.Second, state.Elapsed)
	assert.InDelta(t, 1.0, state.Progress(), 1e-9)
}

func Test_Reset(t *testing.T) {
	// arrange
	state := timer.Apply(timer.NewState(t0), timer.UpdateDuration{Duration: 10 * time.Second, Now: t0})
	state = timer.Apply(state, timer.Tick{Now: t0.Add(15 * time.Second)})
	resetAt := t0.Add(time.Minute)

	// act
	state = timer.Apply(state, timer.Reset{Now: resetAt})

	// assert
	assert.True(t, state.Active)
	assert.Equal(t, resetAt, state.Start)
	assert.Equal(t, time.Duration(0), state.Elapsed)
	assert.Equal(t, 10*time.Second, state.Duration)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(time.Second)

	return c.now
}

func Test_Run_DispatchesTicksUntilCanceled(t *testing.T) {
	// arrange
	ctx, cancel := context.WithCancel(context.Background())
	clock := &fakeClock{now: t0}
	ticks := make(chan timer.Event, 16)

	// act
	done := make(chan error, 1)
	go func() {
		done <- timer.Run(ctx, clock, time.Millisecond, func(e timer.Event) {
			select {
			case ticks <- e:
			default:
			}
		})
	}()

	first := <-ticks
	cancel()
	err := <-done

	// assert
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, timer.Tick{Now: t0.Add(time.Second)}, first)
}
