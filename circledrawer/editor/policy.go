package editor

import (
	"github.com/AntonStoeckl/sevenguis-eventsourced/circledrawer/core"
)

// DefaultDuplicatePositionEpsilon is the distance below which a new circle counts as a double submit.
const DefaultDuplicatePositionEpsilon = 1.0

// Policies holds the tunables of the filtering policies.
type Policies struct {
	duplicatePositionEpsilon float64
}

// Policy defines a functional option for configuring Policies.
type Policy func(*Policies)

// WithDuplicatePositionEpsilon sets the distance below which a CircleCreated is dropped as a duplicate
// of the most recently created circle. Zero or a negative value disables the check.
func WithDuplicatePositionEpsilon(epsilon float64) Policy {
	return func(p *Policies) {
		p.duplicatePositionEpsilon = epsilon
	}
}

func buildPolicies(policies ...Policy) Policies {
	p := Policies{
		duplicatePositionEpsilon: DefaultDuplicatePositionEpsilon,
	}

	for _, policy := range policies {
		policy(&p)
	}

	return p
}

// isWorthRecording applies the filtering policies which run before any history bookkeeping.
// Events rejected here change nothing, neither the Canvas nor the log.
func (p Policies) isWorthRecording(canvas core.Canvas, event core.DomainEvent) bool {
	switch e := event.(type) {
	case core.CircleCreated:
		if p.duplicatePositionEpsilon <= 0 {
			return true
		}

		last, ok := canvas.LastCreated()

		return !ok || last.DistanceTo(e.Circle.Position) >= p.duplicatePositionEpsilon

	case core.CircleSelected:
		if e.Index == canvas.Selected {
			return false // duplicate select
		}

		return e.Index == core.NoSelection || canvas.IsValidIndex(e.Index)

	case core.CircleResized:
		return e.Radius > 0 // without a selection it commits as a domain no-op

	default:
		return false
	}
}
