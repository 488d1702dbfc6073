package config

import (
	"fmt"
)

// Validate checks a normalised catalog and returns the first problem wrapped in
// ErrConfigInvalid, or nil.
func Validate(c *Catalog) error {
	if problem := validate(c); problem != "" {
		return fmt.Errorf("%w: %s", ErrConfigInvalid, problem)
	}
	return nil
}

func validate(c *Catalog) string {
	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		return "grid dimensions must be positive"
	}
	if c.Physics.CellSize <= 0 {
		return "physics.cell_size must be positive"
	}
	if c.Physics.DropThroughTicks < 0 {
		return "physics.drop_through_ticks must not be negative"
	}
	if c.DoorRules.DoorSize <= 0 {
		return "door_rules.door_size must be positive"
	}
	if c.DoorRules.MinDistanceFromCorner < 1 {
		return "door_rules.min_distance_from_corner must be at least 1"
	}
	if c.DoorRules.MaxDoorsPerWall <= 0 {
		return "door_rules.max_doors_per_wall must be positive"
	}
	if c.RoomTypes.Len() == 0 {
		return "room_types is empty"
	}
	if c.StartingRoom != "" {
		if _, ok := c.RoomTypes.Get(c.StartingRoom); !ok {
			return fmt.Sprintf("starting_room %q is not a room type", c.StartingRoom)
		}
	}
	for _, rt := range c.RoomTypes.All() {
		if problem := validateRoom(c, rt); problem != "" {
			return fmt.Sprintf("room %q: %s", rt.ID, problem)
		}
	}
	return ""
}

func validateRoom(c *Catalog, rt *RoomType) string {
	if rt.Width() < 3 || rt.Height() < 3 {
		return fmt.Sprintf("grid_size %v is smaller than 3x3", rt.GridSize)
	}
	if rt.Width() > c.Grid.Width || rt.Height() > c.Grid.Height {
		return fmt.Sprintf("grid_size %v does not fit the %dx%d world", rt.GridSize, c.Grid.Width, c.Grid.Height)
	}
	for r, v := range rt.cost {
		if v < 0 {
			return fmt.Sprintf("build cost for %s is negative", r)
		}
	}
	if rt.Crew.Min < 0 || rt.Crew.Max < rt.Crew.Min {
		return fmt.Sprintf("crew bounds [%d,%d] are invalid", rt.Crew.Min, rt.Crew.Max)
	}

	iw, ih := rt.InteriorSize()
	for _, p := range rt.Platforms {
		x, y, length := p[0], p[1], p[2]
		if length <= 0 || x < 0 || y < 0 || y >= ih || x+length > iw {
			return fmt.Sprintf("platform %v lies outside the %dx%d interior", p, iw, ih)
		}
	}

	for i := range rt.Decorations {
		d := &rt.Decorations[i]
		if d.MinCount < 0 || d.MaxCount < 0 {
			return fmt.Sprintf("decoration %q has a negative count", d.Name)
		}
		if d.MinCount > d.MaxCount {
			return fmt.Sprintf("decoration %q min_count %d > max_count %d", d.Name, d.MinCount, d.MaxCount)
		}
		if d.Size[0] < 0 || d.Size[1] < 0 {
			return fmt.Sprintf("decoration %q has a negative size", d.Name)
		}
		if !d.Required {
			continue
		}
		if d.Width() > iw || d.Height() > ih {
			return fmt.Sprintf("required decoration %q (%dx%d) cannot fit the %dx%d interior",
				d.Name, d.Width(), d.Height(), iw, ih)
		}
		if d.MinCount*d.Area() > iw*ih {
			return fmt.Sprintf("required decoration %q needs %d cells, interior has %d",
				d.Name, d.MinCount*d.Area(), iw*ih)
		}
	}
	return ""
}
