package timer

import (
	"context"
	"time"
)

// Clock is the source of the current time for Run.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// Run calls dispatch with a Tick every interval until ctx is done and returns ctx.Err().
// An interval <= 0 means DefaultTickInterval.
func Run(ctx context.Context, clock Clock, interval time.Duration, dispatch func(Event)) error {
	if interval <= 0 {
		interval = DefaultTickInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			dispatch(Tick{Now: clock.Now()})
		}
	}
}
