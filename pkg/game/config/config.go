// Package config loads the static room catalog that drives building, decoration and physics.
package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"stationbuilder/pkg/engine/physics"
	"stationbuilder/pkg/game/entities"
	"stationbuilder/pkg/game/resources"
	"stationbuilder/pkg/logger"
)

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrConfigInvalid  = errors.New("invalid configuration")
)

//go:embed rooms.json
var defaultCatalog []byte

// Catalog is the whole static configuration.
type Catalog struct {
	Grid         GridSettings     `json:"grid"`
	Physics      PhysicsSettings  `json:"physics"`
	DoorRules    DoorRules        `json:"door_rules"`
	Resources    ResourceSettings `json:"resources"`
	StartingRoom string           `json:"starting_room"`
	RoomTypes    RoomTypes        `json:"room_types"`

	initial  resources.Amounts
	capacity resources.Amounts
}

// GridSettings sizes the world grid in cells.
type GridSettings struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// PhysicsSettings tunes the player and crew controllers. Speeds are pixels per step.
type PhysicsSettings struct {
	CellSize         int        `json:"cell_size"`
	Gravity          float64    `json:"gravity"`
	MaxFallSpeed     float64    `json:"max_fall_speed"`
	GroundTolerance  float64    `json:"ground_tolerance"`
	DropThroughTicks int        `json:"drop_through_ticks"`
	PlayerSpeed      float64    `json:"player_speed"`
	JumpVelocity     float64    `json:"jump_velocity"`
	PlayerSize       [2]float64 `json:"player_size"`
}

// Controller returns the physics controller settings
func (p PhysicsSettings) Controller() physics.Config {
	return physics.Config{
		Gravity:          p.Gravity,
		MaxFallSpeed:     p.MaxFallSpeed,
		GroundTolerance:  p.GroundTolerance,
		DropThroughTicks: p.DropThroughTicks,
	}
}

// DoorRules constrains door openings on every wall segment.
type DoorRules struct {
	DoorSize              int `json:"door_size"`
	MinDistanceFromCorner int `json:"min_distance_from_corner"`
	MaxDoorsPerWall       int `json:"max_doors_per_wall"`
}

// ResourceSettings holds the starting ledger.
type ResourceSettings struct {
	Initial  map[string]float64 `json:"initial"`
	Capacity map[string]float64 `json:"capacity"`
}

// InitialResources returns the starting totals
func (c *Catalog) InitialResources() resources.Amounts {
	return c.initial.Clone()
}

// ResourceCapacity returns the ledger caps
func (c *Catalog) ResourceCapacity() resources.Amounts {
	return c.capacity.Clone()
}

// Room returns the room type with the given id
func (c *Catalog) Room(id string) (*RoomType, bool) {
	return c.RoomTypes.Get(id)
}

// Default returns the embedded catalog
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads and validates a catalog file
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cat, err := Parse(data)
	if err != nil {
		return nil, err
	}
	logger.For("config").WithFields(logrus.Fields{
		"path":       path,
		"room_types": cat.RoomTypes.Len(),
	}).Info("catalog loaded")
	return cat, nil
}

// Parse decodes, normalises and validates a catalog
func Parse(data []byte) (*Catalog, error) {
	var cat Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigInvalid, err)
	}
	if err := cat.normalise(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigInvalid, err)
	}
	if err := Validate(&cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (c *Catalog) normalise() error {
	var err error
	if c.initial, err = amounts(c.Resources.Initial); err != nil {
		return fmt.Errorf("resources.initial: %v", err)
	}
	if c.capacity, err = amounts(c.Resources.Capacity); err != nil {
		return fmt.Errorf("resources.capacity: %v", err)
	}
	for _, rt := range c.RoomTypes.All() {
		if err := rt.normalise(); err != nil {
			return fmt.Errorf("room %q: %v", rt.ID, err)
		}
	}
	return nil
}

func amounts(in map[string]float64) (resources.Amounts, error) {
	out := resources.Amounts{}
	for name, v := range in {
		r, ok := resources.Parse(name)
		if !ok {
			return nil, fmt.Errorf("unknown resource %q", name)
		}
		out[r] = v
	}
	return out, nil
}

// RoomType is one buildable room template.
type RoomType struct {
	ID                  string             `json:"-"`
	Name                string             `json:"name"`
	GridSize            [2]int             `json:"grid_size"`
	ResourceConsumption map[string]float64 `json:"resource_consumption"`
	ResourceGeneration  map[string]float64 `json:"resource_generation"`
	BuildCosts          map[string]float64 `json:"build_costs"`
	Description         string             `json:"description"`
	ColorTheme          ColorTheme         `json:"color_theme"`
	Decorations         DecorationSpecs    `json:"decorations"`
	Platforms           [][3]int           `json:"platforms"`
	Crew                CrewSettings       `json:"crew"`

	generation  resources.Amounts
	consumption resources.Amounts
	cost        resources.Amounts
}

// ColorTheme gives renderers an RGB triple per role.
type ColorTheme struct {
	Floor [3]uint8 `json:"floor"`
	Wall  [3]uint8 `json:"wall"`
}

// CrewSettings bounds how many crew members a room spawns.
type CrewSettings struct {
	Min           int `json:"min"`
	Max           int `json:"max"`
	AreaPerMember int `json:"area_per_member"`
}

// Count returns min(Max, max(Min, area/AreaPerMember))
func (cs CrewSettings) Count(area int) int {
	n := cs.Min
	if cs.AreaPerMember > 0 {
		if byArea := area / cs.AreaPerMember; byArea > n {
			n = byArea
		}
	}
	if n > cs.Max {
		n = cs.Max
	}
	return n
}

// Width returns the room width in cells
func (rt *RoomType) Width() int {
	return rt.GridSize[0]
}

// Height returns the room height in cells
func (rt *RoomType) Height() int {
	return rt.GridSize[1]
}

// InteriorSize returns the floor area inside the wall ring
func (rt *RoomType) InteriorSize() (w, h int) {
	return rt.GridSize[0] - 2, rt.GridSize[1] - 2
}

// Generation returns resources produced per second
func (rt *RoomType) Generation() resources.Amounts {
	return rt.generation.Clone()
}

// Consumption returns resources used per second
func (rt *RoomType) Consumption() resources.Amounts {
	return rt.consumption.Clone()
}

// Cost returns the build cost; a missing build_costs section means zero cost
func (rt *RoomType) Cost() resources.Amounts {
	return rt.cost.Clone()
}

// IsStartingRoom returns true if this type is the catalog's starting room
func (c *Catalog) IsStartingRoom(rt *RoomType) bool {
	return rt != nil && rt.ID == c.StartingRoom
}

func (rt *RoomType) normalise() error {
	var err error
	if rt.generation, err = amounts(rt.ResourceGeneration); err != nil {
		return fmt.Errorf("resource_generation: %v", err)
	}
	if rt.consumption, err = amounts(rt.ResourceConsumption); err != nil {
		return fmt.Errorf("resource_consumption: %v", err)
	}
	if rt.cost, err = amounts(rt.BuildCosts); err != nil {
		return fmt.Errorf("build_costs: %v", err)
	}
	for i := range rt.Decorations {
		if err := rt.Decorations[i].normalise(); err != nil {
			return fmt.Errorf("decoration %q: %v", rt.Decorations[i].Name, err)
		}
	}
	return nil
}

// DecorationSpec is one entry of a room type's decorations section.
type DecorationSpec struct {
	Name           string   `json:"-"`
	Order          int      `json:"-"` // declaration index within the room type
	Required       bool     `json:"required"`
	MinCount       int      `json:"min_count"`
	MaxCount       int      `json:"max_count"`
	Size           [2]int   `json:"size"`
	ValidPositions []string `json:"valid_positions"`
	GroupName      string   `json:"group_name,omitempty"`

	Kind       entities.DecorationKind `json:"-"`
	Placements []entities.Placement    `json:"-"`
}

// Width returns the footprint width, at least 1
func (d *DecorationSpec) Width() int {
	return max(d.Size[0], 1)
}

// Height returns the footprint height, at least 1
func (d *DecorationSpec) Height() int {
	return max(d.Size[1], 1)
}

// Area returns the footprint size in cells
func (d *DecorationSpec) Area() int {
	return d.Width() * d.Height()
}

// Allows returns true if p is one of the spec's valid positions
func (d *DecorationSpec) Allows(p entities.Placement) bool {
	for _, q := range d.Placements {
		if q == p {
			return true
		}
	}
	return false
}

func (d *DecorationSpec) normalise() error {
	kind, err := entities.ParseDecorationKind(d.Name)
	if err != nil {
		return err
	}
	d.Kind = kind
	d.Placements = d.Placements[:0]
	for _, s := range d.ValidPositions {
		p, err := entities.ParsePlacement(s)
		if err != nil {
			return err
		}
		d.Placements = append(d.Placements, p)
	}
	if len(d.Placements) == 0 {
		d.Placements = []entities.Placement{entities.PlaceFloor}
	}
	return nil
}
