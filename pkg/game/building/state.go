package building

import (
	"stationbuilder/pkg/engine/world"
	"stationbuilder/pkg/game/rooms"
)

// State is a step of a build attempt.
type State int

// Build states. An attempt always ends in Committed or RolledBack.
const (
	Validating State = iota
	ResourceCheck
	Committing
	Decorating
	Committed
	RolledBack
)

// String returns the string representation of a state
func (s State) String() string {
	switch s {
	case Validating:
		return "Validating"
	case ResourceCheck:
		return "ResourceCheck"
	case Committing:
		return "Committing"
	case Decorating:
		return "Decorating"
	case Committed:
		return "Committed"
	case RolledBack:
		return "RolledBack"
	default:
		return "Unknown"
	}
}

// IsTerminal returns true for Committed and RolledBack
func (s State) IsTerminal() bool {
	return s == Committed || s == RolledBack
}

// Attempt records the states a build attempt passed through.
type Attempt struct {
	RoomType string
	Anchor   world.Coord
	Trace    []State
	Room     rooms.ID // set when committed
	Err      error
}

// Final returns the last state reached, Validating for an empty trace
func (a Attempt) Final() State {
	if len(a.Trace) == 0 {
		return Validating
	}
	return a.Trace[len(a.Trace)-1]
}

func (a *Attempt) enter(s State) {
	a.Trace = append(a.Trace, s)
}
