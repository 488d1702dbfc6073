package rooms

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"stationbuilder/pkg/engine/world"
	"stationbuilder/pkg/game/config"
	"stationbuilder/pkg/logger"
)

// ErrInvalidDoorPlacement is returned when a door breaks the door rules.
var ErrInvalidDoorPlacement = errors.New("invalid door placement")

// Door is an opening in one of a room's walls.
type Door struct {
	Side   world.Direction
	Offset int // cells from the segment's first (corner) cell
	Size   int
	Cells  []world.Coord
	To     ID // room on the other side, or world.NoOwner
}

// Segment is one straight wall of a room, corners included.
type Segment struct {
	Side   world.Direction
	Start  world.Coord
	Length int
}

// At returns the coordinate offset cells along the segment
func (s Segment) At(offset int) world.Coord {
	if s.Side.IsVertical() {
		return s.Start.Add(offset, 0)
	}
	return s.Start.Add(0, offset)
}

// OffsetOf returns how far along the segment the absolute coordinate along its axis lies
func (s Segment) OffsetOf(along int) int {
	if s.Side.IsVertical() {
		return along - s.Start.X
	}
	return along - s.Start.Y
}

// Wall returns the wall segment on the given side. North and South run left to right,
// East and West run top to bottom.
func (r *Room) Wall(side world.Direction) Segment {
	x0, y0 := r.Anchor.X, r.Anchor.Y
	switch side {
	case world.North:
		return Segment{Side: side, Start: world.C(x0, y0), Length: r.Width}
	case world.South:
		return Segment{Side: side, Start: world.C(x0, y0+r.Height-1), Length: r.Width}
	case world.West:
		return Segment{Side: side, Start: world.C(x0, y0), Length: r.Height}
	case world.East:
		return Segment{Side: side, Start: world.C(x0+r.Width-1, y0), Length: r.Height}
	default:
		return Segment{Side: side}
	}
}

// DoorsOn returns the doors on one side
func (r *Room) DoorsOn(side world.Direction) []Door {
	var out []Door
	for _, d := range r.Doors {
		if d.Side == side {
			out = append(out, d)
		}
	}
	return out
}

// CanPlaceDoor checks a door of rules.DoorSize at offset on side without changing anything.
func (r *Room) CanPlaceDoor(side world.Direction, offset int, rules config.DoorRules) error {
	if !side.IsCardinal() {
		return fmt.Errorf("%w: %v is not a wall side", ErrInvalidDoorPlacement, side)
	}
	seg := r.Wall(side)
	size := rules.DoorSize
	if offset < 0 || offset+size > seg.Length {
		return fmt.Errorf("%w: %d-cell door at offset %d does not fit the %d-cell %v wall",
			ErrInvalidDoorPlacement, size, offset, seg.Length, side)
	}
	d := rules.MinDistanceFromCorner
	if offset < d || seg.Length-(offset+size) < d {
		return fmt.Errorf("%w: offset %d is within %d cells of a %v wall corner",
			ErrInvalidDoorPlacement, offset, d, side)
	}
	existing := r.DoorsOn(side)
	if len(existing) >= rules.MaxDoorsPerWall {
		return fmt.Errorf("%w: %v wall already has %d doors", ErrInvalidDoorPlacement, side, len(existing))
	}
	for _, e := range existing {
		if offset < e.Offset+e.Size && e.Offset < offset+size {
			return fmt.Errorf("%w: overlaps the door at offset %d", ErrInvalidDoorPlacement, e.Offset)
		}
	}
	return nil
}

// CellWriter is the grid write surface rooms need. *world.Grid satisfies it.
type CellWriter interface {
	SetCell(c world.Coord, role world.Role) error
}

// PlaceDoor validates and opens a door, writing the door role through g.
func (r *Room) PlaceDoor(g CellWriter, side world.Direction, offset int, rules config.DoorRules, to ID) (Door, error) {
	if err := r.CanPlaceDoor(side, offset, rules); err != nil {
		return Door{}, err
	}
	seg := r.Wall(side)
	door := Door{Side: side, Offset: offset, Size: rules.DoorSize, To: to}
	for i := 0; i < rules.DoorSize; i++ {
		c := seg.At(offset + i)
		if err := g.SetCell(c, world.RoleDoor); err != nil {
			return Door{}, err
		}
		door.Cells = append(door.Cells, c)
	}
	r.Doors = append(r.Doors, door)
	logger.For("rooms").WithFields(logrus.Fields{
		"room":   r.ID,
		"side":   side.String(),
		"offset": offset,
		"to":     to,
	}).Debug("door placed")
	return door, nil
}

// RemoveDoorsTo drops every door leading to id and returns them so the caller can wall the
// cells back up.
func (r *Room) RemoveDoorsTo(id ID) []Door {
	var removed []Door
	kept := r.Doors[:0]
	for _, d := range r.Doors {
		if d.To == id {
			removed = append(removed, d)
			continue
		}
		kept = append(kept, d)
	}
	r.Doors = kept
	return removed
}

// Neighbours returns the ids this room has doors to, without duplicates
func (r *Room) Neighbours() []ID {
	var out []ID
	seen := make(map[ID]bool)
	for _, d := range r.Doors {
		if d.To == world.NoOwner || seen[d.To] {
			continue
		}
		seen[d.To] = true
		out = append(out, d.To)
	}
	return out
}
