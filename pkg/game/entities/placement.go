package entities

import "fmt"

// Placement is where inside a room a decoration may stand.
type Placement int

// Placement classes
const (
	PlaceFloor  Placement = iota // any interior cell
	PlaceWall                    // against the wall ring
	PlaceCorner                  // against two perpendicular walls
	PlaceCenter                  // covering the interior's centre cell
)

// String returns the catalog spelling of the placement
func (p Placement) String() string {
	switch p {
	case PlaceFloor:
		return "floor"
	case PlaceWall:
		return "wall"
	case PlaceCorner:
		return "corner"
	case PlaceCenter:
		return "center"
	default:
		return "unknown"
	}
}

// ParsePlacement converts a catalog spelling into a Placement
func ParsePlacement(s string) (Placement, error) {
	switch s {
	case "floor":
		return PlaceFloor, nil
	case "wall":
		return PlaceWall, nil
	case "corner":
		return PlaceCorner, nil
	case "center", "centre":
		return PlaceCenter, nil
	default:
		return 0, fmt.Errorf("unknown placement %q", s)
	}
}
