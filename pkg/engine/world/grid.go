package world

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// ErrOutOfBounds is returned when a coordinate lies outside the grid.
var ErrOutOfBounds = errors.New("out of bounds")

// Grid is the fixed-cell world map. It owns cell roles and owners by coordinate and
// tracks which cells need their tile variant recomputed.
type Grid struct {
	cells    map[Coord]Cell
	dirty    mapset.Set[Coord]
	width    int
	height   int
	cellSize int
}

// NewGrid creates a new grid with the given dimensions in cells and cell size in pixels
func NewGrid(width, height, cellSize int) *Grid {
	g := &Grid{}
	g.Build(width, height, cellSize)
	return g
}

// Build initializes the grid with the given dimensions, discarding any previous contents
func (g *Grid) Build(width, height, cellSize int) {
	if width <= 0 || height <= 0 {
		panic("Grid dimensions must be positive")
	}
	if cellSize <= 0 {
		panic("Grid cell size must be positive")
	}

	g.width = width
	g.height = height
	g.cellSize = cellSize
	g.cells = make(map[Coord]Cell)
	g.dirty = mapset.New[Coord]()
}

// Width returns the number of columns in the grid
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows in the grid
func (g *Grid) Height() int {
	return g.height
}

// CellSize returns the edge length of a cell in pixels
func (g *Grid) CellSize() int {
	return g.cellSize
}

// PixelSize returns the grid extent in pixels
func (g *Grid) PixelSize() (w, h float64) {
	return float64(g.width * g.cellSize), float64(g.height * g.cellSize)
}

// InBounds checks if a coordinate is within grid bounds
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// CenterPosition returns the coordinate of the grid center
func (g *Grid) CenterPosition() Coord {
	return Coord{X: g.width / 2, Y: g.height / 2}
}

// Cell returns the state at c. Unwritten and out-of-bounds coordinates read as empty.
func (g *Grid) Cell(c Coord) Cell {
	return g.cells[c]
}

// Role returns the role at c, defaulting to RoleEmpty
func (g *Grid) Role(c Coord) Role {
	return g.cells[c].Role
}

// Owner returns the room that owns c, or NoOwner
func (g *Grid) Owner(c Coord) OwnerID {
	return g.cells[c].Owner
}

// SetCell overwrites the role at c, keeping its owner, and marks c and its neighbours dirty.
func (g *Grid) SetCell(c Coord, role Role) error {
	if !g.InBounds(c) {
		return fmt.Errorf("%w: cell %v outside %dx%d grid", ErrOutOfBounds, c, g.width, g.height)
	}
	cell := g.cells[c]
	cell.Role = role
	g.store(c, cell)
	return nil
}

// Assign overwrites both role and owner at c and marks c and its neighbours dirty.
// Assigning RoleEmpty always clears the owner.
func (g *Grid) Assign(c Coord, role Role, owner OwnerID) error {
	if !g.InBounds(c) {
		return fmt.Errorf("%w: cell %v outside %dx%d grid", ErrOutOfBounds, c, g.width, g.height)
	}
	g.store(c, Cell{Role: role, Owner: owner})
	return nil
}

func (g *Grid) store(c Coord, cell Cell) {
	if cell.Role == RoleEmpty {
		delete(g.cells, c)
	} else {
		g.cells[c] = cell
	}
	g.markDirty(c)
}

func (g *Grid) markDirty(c Coord) {
	g.dirty.Put(c)
	for _, d := range AllDirections() {
		n := c.Step(d)
		if g.InBounds(n) {
			g.dirty.Put(n)
		}
	}
}

// IsBlocking returns true if the cell stops movement from every side (walls only).
func (g *Grid) IsBlocking(c Coord) bool {
	return g.Role(c) == RoleWall
}

// IsOneWay returns true if the cell only blocks movement coming down from above
func (g *Grid) IsOneWay(c Coord) bool {
	return g.Role(c) == RolePlatform
}

// WorldToCell converts a pixel position to the cell containing it
func (g *Grid) WorldToCell(x, y float64) Coord {
	size := float64(g.cellSize)
	return Coord{X: int(math.Floor(x / size)), Y: int(math.Floor(y / size))}
}

// CellToWorld returns the pixel position of the top-left corner of c
func (g *Grid) CellToWorld(c Coord) (x, y float64) {
	return float64(c.X * g.cellSize), float64(c.Y * g.cellSize)
}

// Dirty returns the coordinates awaiting tile recomputation in row-major order
func (g *Grid) Dirty() []Coord {
	out := make([]Coord, 0, g.dirty.Size())
	g.dirty.Each(func(c Coord) {
		out = append(out, c)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// HasDirty returns true if any cell awaits tile recomputation
func (g *Grid) HasDirty() bool {
	return g.dirty.Size() > 0
}

// ClearDirty empties the dirty set
func (g *Grid) ClearDirty() {
	g.dirty = mapset.New[Coord]()
}

// OccupiedCount returns the number of non-empty cells
func (g *Grid) OccupiedCount() int {
	return len(g.cells)
}

// ForEachCell iterates over every coordinate in row-major order
func (g *Grid) ForEachCell(fn func(c Coord, cell Cell)) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			c := Coord{X: x, Y: y}
			fn(c, g.cells[c])
		}
	}
}

// Snapshot returns a copy of every occupied cell
func (g *Grid) Snapshot() map[Coord]Cell {
	out := make(map[Coord]Cell, len(g.cells))
	for c, cell := range g.cells {
		out[c] = cell
	}
	return out
}

// Validate checks the grid for common issues and returns an error description or empty string if valid
func (g *Grid) Validate() string {
	if g.width <= 0 || g.height <= 0 {
		return "Grid has invalid dimensions"
	}
	for c, cell := range g.cells {
		if !g.InBounds(c) {
			return fmt.Sprintf("Cell %v is outside the grid", c)
		}
		if cell.Owner == NoOwner {
			return fmt.Sprintf("Cell %v is occupied but has no owner", c)
		}
	}
	return ""
}
