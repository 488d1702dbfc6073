// Package world provides generic 2D grid-based world primitives.
// These are engine-level constructs usable by any tile-based game.
package world

import "fmt"

// Role is the semantic classification of a grid cell.
type Role int

// Role constants. The zero value is RoleEmpty so unwritten cells read as empty.
const (
	RoleEmpty Role = iota
	RoleFloor
	RoleWall
	RoleDoor
	RoleDecoration // floor cell occupied by a decoration
	RolePlatform   // one-way platform, solid only from above
)

// String returns the string representation of a role
func (r Role) String() string {
	switch r {
	case RoleEmpty:
		return "empty"
	case RoleFloor:
		return "floor"
	case RoleWall:
		return "wall"
	case RoleDoor:
		return "door"
	case RoleDecoration:
		return "decoration"
	case RolePlatform:
		return "platform"
	default:
		return "unknown"
	}
}

// IsValid returns true if the role is one of the known roles
func (r Role) IsValid() bool {
	return r >= RoleEmpty && r <= RolePlatform
}

// IsOccupied returns true for every role except empty
func (r Role) IsOccupied() bool {
	return r != RoleEmpty
}

// OwnerID identifies the room that owns a cell. NoOwner marks unowned cells.
type OwnerID int

// NoOwner is the owner of every empty cell.
const NoOwner OwnerID = 0

// Coord is an integer cell coordinate. X grows to the right, Y grows downward.
type Coord struct {
	X int
	Y int
}

// C is shorthand for Coord{X: x, Y: y}.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// Add returns the coordinate offset by dx, dy
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Step returns the neighbouring coordinate in direction d
func (c Coord) Step(d Direction) Coord {
	dx, dy := d.Delta()
	return c.Add(dx, dy)
}

// Less orders coordinates row-major (top-left first).
func (c Coord) Less(o Coord) bool {
	if c.Y != o.Y {
		return c.Y < o.Y
	}
	return c.X < o.X
}

// String returns "x,y"
func (c Coord) String() string {
	return fmt.Sprintf("%d,%d", c.X, c.Y)
}

// Cell is the state stored for one grid coordinate.
type Cell struct {
	Role  Role
	Owner OwnerID
}

// IsEmpty returns true if nothing occupies the cell
func (c Cell) IsEmpty() bool {
	return c.Role == RoleEmpty
}
