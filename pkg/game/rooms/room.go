// Package rooms models rectangular rooms placed on the world grid: their footprint
// classification, wall segments and door openings.
package rooms

import (
	"stationbuilder/pkg/engine/world"
	"stationbuilder/pkg/game/config"
	"stationbuilder/pkg/game/entities"
	"stationbuilder/pkg/game/resources"
)

// ID identifies a committed room. It doubles as the grid cell owner.
type ID = world.OwnerID

// CellClass is the role a footprint cell plays inside its room.
type CellClass int

// Cell classes
const (
	ClassFloor CellClass = iota
	ClassWall
	ClassCorner
	ClassPlatform
)

// String returns the string representation of a class
func (c CellClass) String() string {
	switch c {
	case ClassFloor:
		return "floor"
	case ClassWall:
		return "wall"
	case ClassCorner:
		return "corner"
	case ClassPlatform:
		return "platform"
	default:
		return "unknown"
	}
}

// Role returns the grid role written for this class. Corners are walls on the grid.
func (c CellClass) Role() world.Role {
	switch c {
	case ClassWall, ClassCorner:
		return world.RoleWall
	case ClassPlatform:
		return world.RolePlatform
	default:
		return world.RoleFloor
	}
}

// ClassifiedCell pairs a footprint coordinate with its class.
type ClassifiedCell struct {
	At    world.Coord
	Class CellClass
}

// Rect is an inclusive cell rectangle.
type Rect struct {
	Min world.Coord
	Max world.Coord
}

// Width returns the number of columns covered
func (r Rect) Width() int {
	return r.Max.X - r.Min.X + 1
}

// Height returns the number of rows covered
func (r Rect) Height() int {
	return r.Max.Y - r.Min.Y + 1
}

// Contains reports whether c lies inside r
func (r Rect) Contains(c world.Coord) bool {
	return c.X >= r.Min.X && c.X <= r.Max.X && c.Y >= r.Min.Y && c.Y <= r.Max.Y
}

// Overlaps reports whether r and o share at least one cell
func (r Rect) Overlaps(o Rect) bool {
	return r.Min.X <= o.Max.X && o.Min.X <= r.Max.X && r.Min.Y <= o.Max.Y && o.Min.Y <= r.Max.Y
}

// Each calls fn for every cell of r in row-major order
func (r Rect) Each(fn func(c world.Coord)) {
	for y := r.Min.Y; y <= r.Max.Y; y++ {
		for x := r.Min.X; x <= r.Max.X; x++ {
			fn(world.C(x, y))
		}
	}
}

// Footprint returns the rectangle a w x h room anchored at anchor would cover
func Footprint(anchor world.Coord, w, h int) Rect {
	return Rect{Min: anchor, Max: anchor.Add(w-1, h-1)}
}

// Decoration is a placed decoration instance. It refers to its room by id only.
type Decoration struct {
	ID        int
	Room      ID
	Kind      entities.DecorationKind
	Anchor    world.Coord
	Width     int
	Height    int
	Placement entities.Placement
	Group     string
}

// Rect returns the cells the decoration covers
func (d Decoration) Rect() Rect {
	return Footprint(d.Anchor, d.Width, d.Height)
}

// Room is a committed rectangular room.
type Room struct {
	ID             ID
	Type           string
	Name           string
	Anchor         world.Coord
	Width          int
	Height         int
	IsStartingRoom bool
	Doors          []Door
	Decorations    []Decoration
	Theme          config.ColorTheme

	generation  resources.Amounts
	consumption resources.Amounts
	cost        resources.Amounts
	platforms   map[world.Coord]bool
}

// New creates a room of type rt anchored at its top-left wall corner
func New(id ID, rt *config.RoomType, anchor world.Coord, starting bool) *Room {
	r := &Room{
		ID:             id,
		Type:           rt.ID,
		Name:           rt.Name,
		Anchor:         anchor,
		Width:          rt.Width(),
		Height:         rt.Height(),
		IsStartingRoom: starting,
		Theme:          rt.ColorTheme,
		generation:     rt.Generation(),
		consumption:    rt.Consumption(),
		cost:           rt.Cost(),
		platforms:      make(map[world.Coord]bool),
	}
	inner := r.Interior().Min
	for _, p := range rt.Platforms {
		for i := 0; i < p[2]; i++ {
			r.platforms[inner.Add(p[0]+i, p[1])] = true
		}
	}
	return r
}

// Bounds returns the full footprint including walls
func (r *Room) Bounds() Rect {
	return Footprint(r.Anchor, r.Width, r.Height)
}

// Interior returns the footprint inside the wall ring
func (r *Room) Interior() Rect {
	return Rect{Min: r.Anchor.Add(1, 1), Max: r.Anchor.Add(r.Width-2, r.Height-2)}
}

// Contains reports whether c is part of the room's footprint
func (r *Room) Contains(c world.Coord) bool {
	return r.Bounds().Contains(c)
}

// Area returns the footprint size in cells
func (r *Room) Area() int {
	return r.Width * r.Height
}

// Center returns the cell at the middle of the room
func (r *Room) Center() world.Coord {
	return r.Anchor.Add(r.Width/2, r.Height/2)
}

// Cost returns what the room cost to build
func (r *Room) Cost() resources.Amounts {
	return r.cost.Clone()
}

// Rates returns resources generated and consumed per second
func (r *Room) Rates() (generation, consumption resources.Amounts) {
	return r.generation, r.consumption
}

// ClassifyFootprint assigns a class to every footprint cell in row-major order: the outer ring
// is wall with the four corners marked separately, the interior is floor or platform.
func (r *Room) ClassifyFootprint() []ClassifiedCell {
	out := make([]ClassifiedCell, 0, r.Area())
	x0, y0 := r.Anchor.X, r.Anchor.Y
	x1, y1 := x0+r.Width-1, y0+r.Height-1
	r.Bounds().Each(func(c world.Coord) {
		onX := c.X == x0 || c.X == x1
		onY := c.Y == y0 || c.Y == y1
		class := ClassFloor
		switch {
		case onX && onY:
			class = ClassCorner
		case onX || onY:
			class = ClassWall
		case r.platforms[c]:
			class = ClassPlatform
		}
		out = append(out, ClassifiedCell{At: c, Class: class})
	})
	return out
}

// ClassAt returns the footprint class of c. Cells outside the room report false.
func (r *Room) ClassAt(c world.Coord) (CellClass, bool) {
	if !r.Contains(c) {
		return 0, false
	}
	x0, y0 := r.Anchor.X, r.Anchor.Y
	onX := c.X == x0 || c.X == x0+r.Width-1
	onY := c.Y == y0 || c.Y == y0+r.Height-1
	switch {
	case onX && onY:
		return ClassCorner, true
	case onX || onY:
		return ClassWall, true
	case r.platforms[c]:
		return ClassPlatform, true
	default:
		return ClassFloor, true
	}
}

// DoorInto returns the interior cells directly inside r's doors
func (r *Room) DoorInto() []world.Coord {
	var out []world.Coord
	for _, d := range r.Doors {
		inward := d.Side.Opposite()
		for _, c := range d.Cells {
			out = append(out, c.Step(inward))
		}
	}
	return out
}

// Touches reports whether o sits flush against r's side. lo and hi bound the shared span
// along that side in absolute cell coordinates (x for North/South, y for East/West).
func (r *Room) Touches(o *Room) (side world.Direction, lo, hi int, ok bool) {
	a, b := r.Bounds(), o.Bounds()
	spanY := func() (int, int) { return max(a.Min.Y, b.Min.Y), min(a.Max.Y, b.Max.Y) }
	spanX := func() (int, int) { return max(a.Min.X, b.Min.X), min(a.Max.X, b.Max.X) }
	switch {
	case a.Max.X+1 == b.Min.X:
		side = world.East
		lo, hi = spanY()
	case b.Max.X+1 == a.Min.X:
		side = world.West
		lo, hi = spanY()
	case a.Max.Y+1 == b.Min.Y:
		side = world.South
		lo, hi = spanX()
	case b.Max.Y+1 == a.Min.Y:
		side = world.North
		lo, hi = spanX()
	default:
		return 0, 0, 0, false
	}
	return side, lo, hi, lo <= hi
}
