package building

import (
	"errors"
	"fmt"

	"stationbuilder/pkg/engine/world"
)

// Build and demolition failures. A *BuildError unwraps to one of these or to
// world.ErrOutOfBounds, rooms.ErrInvalidDoorPlacement or decor.ErrPlacementInfeasible.
var (
	ErrUnknownRoomType       = errors.New("unknown room type")
	ErrOverlap               = errors.New("overlap")
	ErrInsufficientResources = errors.New("insufficient resources")
	ErrDisconnected          = errors.New("disconnected")
	ErrUnknownRoom           = errors.New("unknown room")
	ErrStartingRoom          = errors.New("starting room cannot be demolished")
)

// BuildError describes a failed TryBuild and the state it failed in.
type BuildError struct {
	RoomType string
	Anchor   world.Coord
	State    State
	Err      error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build %s at %v failed during %v: %v", e.RoomType, e.Anchor, e.State, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}
