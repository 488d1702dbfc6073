package world

import (
	"errors"
	"testing"
)

func TestGetCellDefaultsToEmpty(t *testing.T) {
	g := NewGrid(4, 3, 16)
	if got := g.Role(C(2, 1)); got != RoleEmpty {
		t.Errorf("Role(2,1) = %v, want empty", got)
	}
	// Out of bounds reads are empty too, never a panic
	if got := g.Role(C(-1, 9)); got != RoleEmpty {
		t.Errorf("Role(-1,9) = %v, want empty", got)
	}
}

func TestSetCellOutOfBounds(t *testing.T) {
	g := NewGrid(4, 3, 16)
	tests := []Coord{C(-1, 0), C(0, -1), C(4, 0), C(0, 3), C(10, 10)}
	for _, c := range tests {
		t.Run(c.String(), func(t *testing.T) {
			err := g.SetCell(c, RoleWall)
			if !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("SetCell(%v) = %v, want ErrOutOfBounds", c, err)
			}
		})
	}
	if g.HasDirty() {
		t.Error("failed SetCell marked cells dirty")
	}
}

func TestSetCellMarksNeighboursDirty(t *testing.T) {
	g := NewGrid(5, 5, 16)
	if err := g.SetCell(C(2, 2), RoleWall); err != nil {
		t.Fatalf("SetCell: %v", err)
	}
	dirty := g.Dirty()
	if len(dirty) != 9 {
		t.Fatalf("len(Dirty()) = %d, want 9", len(dirty))
	}
	if dirty[0] != C(1, 1) || dirty[8] != C(3, 3) {
		t.Errorf("Dirty() = %v, want row-major 1,1 .. 3,3", dirty)
	}

	g.ClearDirty()
	// A corner cell only has three in-bounds neighbours
	if err := g.SetCell(C(0, 0), RoleFloor); err != nil {
		t.Fatalf("SetCell: %v", err)
	}
	if got := len(g.Dirty()); got != 4 {
		t.Errorf("len(Dirty()) after corner write = %d, want 4", got)
	}
}

func TestAssignEmptyClearsOwner(t *testing.T) {
	g := NewGrid(3, 3, 16)
	c := C(1, 1)
	if err := g.Assign(c, RoleFloor, 7); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if got := g.Owner(c); got != 7 {
		t.Errorf("Owner = %d, want 7", got)
	}
	if err := g.SetCell(c, RoleDecoration); err != nil {
		t.Fatalf("SetCell: %v", err)
	}
	if got := g.Owner(c); got != 7 {
		t.Errorf("Owner after SetCell = %d, want 7 (SetCell keeps owner)", got)
	}
	if err := g.Assign(c, RoleEmpty, 7); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if got := g.Cell(c); got != (Cell{}) {
		t.Errorf("Cell after emptying = %+v, want zero cell", got)
	}
	if got := g.OccupiedCount(); got != 0 {
		t.Errorf("OccupiedCount = %d, want 0", got)
	}
}

func TestIsBlocking(t *testing.T) {
	tests := []struct {
		role Role
		want bool
	}{
		{RoleEmpty, false},
		{RoleFloor, false},
		{RoleWall, true},
		{RoleDoor, false},
		{RoleDecoration, false},
		{RolePlatform, false},
	}
	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			g := NewGrid(2, 2, 8)
			if err := g.SetCell(C(0, 0), tt.role); err != nil {
				t.Fatalf("SetCell: %v", err)
			}
			if got := g.IsBlocking(C(0, 0)); got != tt.want {
				t.Errorf("IsBlocking(%v) = %v, want %v", tt.role, got, tt.want)
			}
		})
	}
}

func TestWorldCellConversionsAreInverse(t *testing.T) {
	g := NewGrid(10, 10, 32)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			c := C(x, y)
			px, py := g.CellToWorld(c)
			if got := g.WorldToCell(px, py); got != c {
				t.Fatalf("WorldToCell(CellToWorld(%v)) = %v", c, got)
			}
		}
	}

	tests := []struct {
		x, y float64
		want Coord
	}{
		{0, 0, C(0, 0)},
		{31.9, 31.9, C(0, 0)},
		{32, 0, C(1, 0)},
		{95, 64, C(2, 2)},
		{-0.5, -1, C(-1, -1)},
	}
	for _, tt := range tests {
		if got := g.WorldToCell(tt.x, tt.y); got != tt.want {
			t.Errorf("WorldToCell(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestValidateRejectsUnownedCells(t *testing.T) {
	g := NewGrid(3, 3, 8)
	if msg := g.Validate(); msg != "" {
		t.Errorf("Validate() on empty grid = %q, want empty", msg)
	}
	if err := g.SetCell(C(1, 1), RoleWall); err != nil {
		t.Fatalf("SetCell: %v", err)
	}
	if msg := g.Validate(); msg == "" {
		t.Error("Validate() = \"\", want complaint about unowned cell")
	}
}

func TestDirectionOppositeAndDelta(t *testing.T) {
	for _, d := range AllDirections() {
		dx, dy := d.Delta()
		ox, oy := d.Opposite().Delta()
		if dx != -ox || dy != -oy {
			t.Errorf("%v.Delta() = (%d,%d), opposite = (%d,%d)", d, dx, dy, ox, oy)
		}
		if d.Opposite().Opposite() != d {
			t.Errorf("%v.Opposite().Opposite() = %v", d, d.Opposite().Opposite())
		}
	}
	if Direction(42).IsValid() {
		t.Error("Direction(42).IsValid() = true, want false")
	}
	if NorthEast.IsCardinal() {
		t.Error("NorthEast.IsCardinal() = true, want false")
	}
}
