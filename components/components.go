// Package components defines ECS components for the simulation.
package components

// TaskState is an ant's top-level foraging task.
type TaskState uint8

const (
	Searching    TaskState = iota // looking for food, following food scent
	CarryingFood                  // returning to the colony, following home scent
)

func (s TaskState) String() string {
	switch s {
	case Searching:
		return "searching"
	case CarryingFood:
		return "carrying"
	default:
		return "unknown"
	}
}

// Position represents an entity's world position.
type Position struct {
	X, Y float32
}

// Rotation represents an entity's heading in radians, kept in (-pi, pi].
type Rotation struct {
	Heading float32
}

// Ant holds ant-specific state.
// Panic is not a third task state: it is an override that is active
// while PanicTimer > 0, regardless of State.
type Ant struct {
	State      TaskState
	Patience   int32 // remaining on-trail tolerance, in [0, MaxPatience]
	PanicTimer int32 // remaining panic ticks, in [0, PanicDuration]
}

// Panicking reports whether the panic override is active.
func (a *Ant) Panicking() bool {
	return a.PanicTimer > 0
}
