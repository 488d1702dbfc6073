// Package tiles selects auto-tile variants from a cell's neighbourhood.
package tiles

import "stationbuilder/pkg/engine/world"

// Variant is the visual tile shape chosen for a cell.
type Variant int

// Variant constants
const (
	VariantNone Variant = iota // empty cell, nothing to draw
	VariantFill
	VariantEdgeN
	VariantEdgeS
	VariantEdgeE
	VariantEdgeW
	VariantCornerNE
	VariantCornerNW
	VariantCornerSE
	VariantCornerSW
	VariantIsolated
)

// String returns the tag used by renderers and map dumps
func (v Variant) String() string {
	switch v {
	case VariantNone:
		return "none"
	case VariantFill:
		return "fill"
	case VariantEdgeN:
		return "edge-n"
	case VariantEdgeS:
		return "edge-s"
	case VariantEdgeE:
		return "edge-e"
	case VariantEdgeW:
		return "edge-w"
	case VariantCornerNE:
		return "corner-ne"
	case VariantCornerNW:
		return "corner-nw"
	case VariantCornerSE:
		return "corner-se"
	case VariantCornerSW:
		return "corner-sw"
	case VariantIsolated:
		return "isolated"
	default:
		return "unknown"
	}
}

// IsEdge returns true for the four edge variants
func (v Variant) IsEdge() bool {
	return v >= VariantEdgeN && v <= VariantEdgeW
}

// IsCorner returns true for the four corner variants
func (v Variant) IsCorner() bool {
	return v >= VariantCornerNE && v <= VariantCornerSW
}

// Mask has one bit per neighbour direction (bit i = world.Direction(i)) that shares the
// centre cell's tile class.
type Mask uint8

// Has returns true if the neighbour in direction d matches the centre
func (m Mask) Has(d world.Direction) bool {
	return m&(1<<uint(d)) != 0
}

func (m Mask) with(d world.Direction) Mask {
	return m | 1<<uint(d)
}

// Tile is the resolved state of one cell.
type Tile struct {
	Variant Variant
	Mask    Mask
}

// class groups roles that tile seamlessly with each other.
type class int

const (
	classEmpty class = iota
	classFloor
	classWall
	classDoor
	classPlatform
)

func classOf(r world.Role) class {
	switch r {
	case world.RoleFloor, world.RoleDecoration:
		return classFloor
	case world.RoleWall:
		return classWall
	case world.RoleDoor:
		return classDoor
	case world.RolePlatform:
		return classPlatform
	default:
		return classEmpty
	}
}
