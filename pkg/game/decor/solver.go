// Package decor places decoration instances inside committed rooms.
package decor

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"stationbuilder/pkg/engine/world"
	"stationbuilder/pkg/game/config"
	"stationbuilder/pkg/game/entities"
	"stationbuilder/pkg/game/rooms"
	"stationbuilder/pkg/logger"
)

// ErrPlacementInfeasible is returned when a required decoration cannot reach its min_count.
var ErrPlacementInfeasible = errors.New("placement infeasible")

// Grid is what the solver reads and writes. *world.Grid satisfies it.
type Grid interface {
	Role(c world.Coord) world.Role
	SetCell(c world.Coord, role world.Role) error
}

// Solver assigns decoration ids and places decorations room by room.
type Solver struct {
	nextID int
}

// NewSolver creates a solver whose first decoration id is 1
func NewSolver() *Solver {
	return &Solver{}
}

// Order returns specs in placement order: required before optional, larger footprint before
// smaller, then declaration order.
func Order(specs []config.DecorationSpec) []config.DecorationSpec {
	out := make([]config.DecorationSpec, len(specs))
	copy(out, specs)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Required != b.Required {
			return a.Required
		}
		if a.Area() != b.Area() {
			return a.Area() > b.Area()
		}
		return a.Order < b.Order
	})
	return out
}

// PlaceAll places every spec in r's interior, writing RoleDecoration to covered cells, and
// appends the instances to r.Decorations. On ErrPlacementInfeasible every cell written by this
// call is restored to floor and r is left unchanged.
func (s *Solver) PlaceAll(g Grid, r *rooms.Room, specs []config.DecorationSpec) ([]rooms.Decoration, error) {
	log := logger.For("decor").WithFields(logrus.Fields{"room": r.ID, "type": r.Type})

	reserved := mapset.New[world.Coord]()
	for _, c := range r.DoorInto() {
		reserved.Put(c)
	}
	startID := s.nextID

	var placed []rooms.Decoration
	groupAnchor := make(map[string]world.Coord)
	for _, spec := range Order(specs) {
		got := s.placeSpec(g, r, spec, reserved, groupAnchor)
		if len(got) >= spec.MinCount {
			placed = append(placed, got...)
			if _, ok := groupAnchor[spec.GroupName]; !ok && spec.GroupName != "" && len(got) > 0 {
				groupAnchor[spec.GroupName] = got[0].Anchor
			}
			log.WithFields(logrus.Fields{"decoration": spec.Name, "count": len(got)}).Debug("decoration placed")
			continue
		}
		undo(g, got)
		if spec.Required {
			undo(g, placed)
			s.nextID = startID
			log.WithFields(logrus.Fields{"decoration": spec.Name, "placed": len(got), "min": spec.MinCount}).
				Warn("required decoration does not fit")
			return nil, fmt.Errorf("%w: %s placed %d of min %d in room %d",
				ErrPlacementInfeasible, spec.Name, len(got), spec.MinCount, r.ID)
		}
		log.WithFields(logrus.Fields{"decoration": spec.Name, "placed": len(got), "min": spec.MinCount}).
			Debug("optional decoration skipped")
	}

	r.Decorations = append(r.Decorations, placed...)
	return placed, nil
}

func undo(g Grid, ds []rooms.Decoration) {
	for i := len(ds) - 1; i >= 0; i-- {
		ds[i].Rect().Each(func(c world.Coord) {
			_ = g.SetCell(c, world.RoleFloor)
		})
	}
}

// placeSpec places up to spec.MaxCount instances and returns what it placed.
func (s *Solver) placeSpec(g Grid, r *rooms.Room, spec config.DecorationSpec, reserved mapset.Set[world.Coord], groupAnchor map[string]world.Coord) []rooms.Decoration {
	var out []rooms.Decoration
	cands := Candidates(r, spec)
	if anchor, ok := groupAnchor[spec.GroupName]; ok && spec.GroupName != "" {
		sort.SliceStable(cands, func(i, j int) bool {
			return manhattan(cands[i].Anchor, anchor) < manhattan(cands[j].Anchor, anchor)
		})
	}
	for _, cand := range cands {
		if len(out) >= spec.MaxCount {
			break
		}
		rect := rooms.Footprint(cand.Anchor, spec.Width(), spec.Height())
		if !fits(g, rect, reserved) {
			continue
		}
		rect.Each(func(c world.Coord) {
			_ = g.SetCell(c, world.RoleDecoration)
		})
		s.nextID++
		d := rooms.Decoration{
			ID:        s.nextID,
			Room:      r.ID,
			Kind:      spec.Kind,
			Anchor:    cand.Anchor,
			Width:     spec.Width(),
			Height:    spec.Height(),
			Placement: cand.Placement,
			Group:     spec.GroupName,
		}
		out = append(out, d)
	}
	return out
}

// fits reports whether every cell of rect is bare floor and not reserved.
func fits(g Grid, rect rooms.Rect, reserved mapset.Set[world.Coord]) bool {
	ok := true
	rect.Each(func(c world.Coord) {
		if !ok {
			return
		}
		if g.Role(c) != world.RoleFloor || reserved.Has(c) {
			ok = false
		}
	})
	return ok
}

func manhattan(a, b world.Coord) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Candidate is an anchor that satisfies one of a spec's placement classes.
type Candidate struct {
	Anchor    world.Coord
	Placement entities.Placement
}

// Candidates lists anchors for spec inside r's interior in row-major order from the top-left
// interior cell. Occupancy is not considered.
func Candidates(r *rooms.Room, spec config.DecorationSpec) []Candidate {
	in := r.Interior()
	w, h := spec.Width(), spec.Height()
	var out []Candidate
	for y := in.Min.Y; y+h-1 <= in.Max.Y; y++ {
		for x := in.Min.X; x+w-1 <= in.Max.X; x++ {
			anchor := world.C(x, y)
			rect := rooms.Footprint(anchor, w, h)
			for _, p := range spec.Placements {
				if Matches(in, rect, p) {
					out = append(out, Candidate{Anchor: anchor, Placement: p})
					break
				}
			}
		}
	}
	return out
}

// Matches reports whether a footprint inside interior satisfies placement p.
func Matches(interior, rect rooms.Rect, p entities.Placement) bool {
	left := rect.Min.X == interior.Min.X
	right := rect.Max.X == interior.Max.X
	top := rect.Min.Y == interior.Min.Y
	bottom := rect.Max.Y == interior.Max.Y
	switch p {
	case entities.PlaceFloor:
		return true
	case entities.PlaceWall:
		return left || right || top || bottom
	case entities.PlaceCorner:
		return (left || right) && (top || bottom)
	case entities.PlaceCenter:
		center := interior.Min.Add((interior.Width()-1)/2, (interior.Height()-1)/2)
		return rect.Contains(center)
	default:
		return false
	}
}
