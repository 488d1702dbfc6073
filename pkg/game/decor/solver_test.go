package decor

import (
	"errors"
	"reflect"
	"testing"

	"stationbuilder/pkg/engine/world"
	"stationbuilder/pkg/game/config"
	"stationbuilder/pkg/game/entities"
	"stationbuilder/pkg/game/rooms"
)

// commitRoom writes a room's classified footprint to a fresh grid.
func commitRoom(t *testing.T, w, h int, platforms ...[3]int) (*world.Grid, *rooms.Room) {
	t.Helper()
	g := world.NewGrid(20, 20, 16)
	rt := &config.RoomType{ID: "test", GridSize: [2]int{w, h}, Platforms: platforms}
	r := rooms.New(1, rt, world.C(0, 0), true)
	for _, c := range r.ClassifyFootprint() {
		if err := g.Assign(c.At, c.Class.Role(), r.ID); err != nil {
			t.Fatal(err)
		}
	}
	return g, r
}

func spec(t *testing.T, name string, required bool, lo, hi, w, h int, positions ...string) config.DecorationSpec {
	t.Helper()
	kind, err := entities.ParseDecorationKind(name)
	if err != nil {
		t.Fatal(err)
	}
	s := config.DecorationSpec{
		Name: name, Kind: kind, Required: required,
		MinCount: lo, MaxCount: hi, Size: [2]int{w, h}, ValidPositions: positions,
	}
	for _, p := range positions {
		pl, err := entities.ParsePlacement(p)
		if err != nil {
			t.Fatal(err)
		}
		s.Placements = append(s.Placements, pl)
	}
	return s
}

func withOrder(specs ...config.DecorationSpec) []config.DecorationSpec {
	for i := range specs {
		specs[i].Order = i
	}
	return specs
}

func countKind(ds []rooms.Decoration, k entities.DecorationKind) int {
	n := 0
	for _, d := range ds {
		if d.Kind == k {
			n++
		}
	}
	return n
}

func assertNoOverlapInside(t *testing.T, r *rooms.Room, ds []rooms.Decoration) {
	t.Helper()
	seen := map[world.Coord]int{}
	in := r.Interior()
	for _, d := range ds {
		d.Rect().Each(func(c world.Coord) {
			if !in.Contains(c) {
				t.Errorf("decoration %d covers %v outside interior", d.ID, c)
			}
			if other, ok := seen[c]; ok {
				t.Errorf("decorations %d and %d overlap at %v", other, d.ID, c)
			}
			seen[c] = d.ID
		})
	}
}

func TestPlaceAllLifeSupport(t *testing.T) {
	g, r := commitRoom(t, 8, 8)
	specs := withOrder(
		spec(t, "oxygen_generator", true, 1, 2, 1, 1, "wall"),
		spec(t, "air_filter", false, 0, 1, 2, 1, "corner"),
		spec(t, "vent", false, 0, 2, 1, 1, "wall"),
	)
	placed, err := NewSolver().PlaceAll(g, r, specs)
	if err != nil {
		t.Fatalf("PlaceAll() error = %v", err)
	}
	n := countKind(placed, entities.OxygenGenerator)
	if n < 1 || n > 2 {
		t.Errorf("oxygen generators = %d, want 1..2", n)
	}
	for _, d := range placed {
		if d.Kind == entities.OxygenGenerator && !Matches(r.Interior(), d.Rect(), entities.PlaceWall) {
			t.Errorf("oxygen generator at %v is not against a wall", d.Anchor)
		}
		d.Rect().Each(func(c world.Coord) {
			if g.Role(c) != world.RoleDecoration {
				t.Errorf("Role(%v) = %v, want decoration", c, g.Role(c))
			}
		})
	}
	assertNoOverlapInside(t, r, placed)
	if !reflect.DeepEqual(r.Decorations, placed) {
		t.Error("room decorations not updated")
	}
}

func TestPlaceAllRowMajorFromTopLeft(t *testing.T) {
	g, r := commitRoom(t, 8, 8)
	placed, err := NewSolver().PlaceAll(g, r, withOrder(spec(t, "vent", true, 2, 2, 1, 1, "floor")))
	if err != nil {
		t.Fatal(err)
	}
	if placed[0].Anchor != world.C(1, 1) || placed[1].Anchor != world.C(2, 1) {
		t.Errorf("anchors = %v, %v, want 1,1 and 2,1", placed[0].Anchor, placed[1].Anchor)
	}
}

func TestPlaceAllCenter(t *testing.T) {
	g, r := commitRoom(t, 8, 8)
	placed, err := NewSolver().PlaceAll(g, r, withOrder(spec(t, "reactor_core", true, 1, 1, 2, 2, "center")))
	if err != nil {
		t.Fatal(err)
	}
	if placed[0].Anchor != world.C(2, 2) {
		t.Errorf("reactor anchor = %v, want 2,2 (first footprint covering interior centre 3,3)", placed[0].Anchor)
	}
}

// A required spec that cannot reach min_count must leave grid and room untouched,
// including cells written by earlier specs in the same call.
func TestPlaceAllInfeasibleRollsBack(t *testing.T) {
	g, r := commitRoom(t, 5, 5)
	before := g.Snapshot()
	// The reactor goes first and takes four of the nine interior cells
	specs := withOrder(
		spec(t, "vent", true, 9, 9, 1, 1, "floor"),
		spec(t, "reactor_core", true, 1, 1, 2, 2, "center"),
	)
	s := NewSolver()
	_, err := s.PlaceAll(g, r, specs)
	if !errors.Is(err, ErrPlacementInfeasible) {
		t.Fatalf("PlaceAll() error = %v, want ErrPlacementInfeasible", err)
	}
	if !reflect.DeepEqual(before, g.Snapshot()) {
		t.Error("grid changed after infeasible placement")
	}
	if len(r.Decorations) != 0 {
		t.Errorf("room has %d decorations after rollback", len(r.Decorations))
	}

	// Ids are reused after a rollback
	placed, err := s.PlaceAll(g, r, withOrder(spec(t, "vent", true, 1, 1, 1, 1, "floor")))
	if err != nil {
		t.Fatal(err)
	}
	if placed[0].ID != 1 {
		t.Errorf("first id after rollback = %d, want 1", placed[0].ID)
	}
}

func TestPlaceAllSkipsOptionalShortfall(t *testing.T) {
	g, r := commitRoom(t, 4, 4)
	before := g.Snapshot()
	placed, err := NewSolver().PlaceAll(g, r, withOrder(spec(t, "control_panel", false, 5, 6, 1, 1, "wall")))
	if err != nil {
		t.Fatalf("PlaceAll() error = %v, want nil for optional", err)
	}
	if len(placed) != 0 {
		t.Errorf("placed %d, want 0 (optional skipped)", len(placed))
	}
	if !reflect.DeepEqual(before, g.Snapshot()) {
		t.Error("skipped optional left cells behind")
	}
}

func TestPlaceAllAvoidsDoorwaysAndPlatforms(t *testing.T) {
	g, r := commitRoom(t, 6, 6, [3]int{0, 3, 4})
	rules := config.DoorRules{DoorSize: 2, MinDistanceFromCorner: 1, MaxDoorsPerWall: 2}
	if _, err := r.PlaceDoor(g, world.West, 1, rules, world.NoOwner); err != nil {
		t.Fatal(err)
	}
	placed, err := NewSolver().PlaceAll(g, r, withOrder(spec(t, "cargo_crate", false, 0, 16, 1, 1, "floor")))
	if err != nil {
		t.Fatal(err)
	}
	// 16 interior cells, 4 platform cells, 2 cells inside the door
	if len(placed) != 10 {
		t.Errorf("placed %d crates, want 10", len(placed))
	}
	for _, d := range placed {
		if d.Anchor == world.C(1, 1) || d.Anchor == world.C(1, 2) {
			t.Errorf("crate at %v blocks the doorway", d.Anchor)
		}
		if d.Anchor.Y == 4 {
			t.Errorf("crate at %v sits on a platform cell", d.Anchor)
		}
	}
}

func TestGroupMembersStayTogether(t *testing.T) {
	g, r := commitRoom(t, 12, 6)
	specs := withOrder(
		spec(t, "navigation_console", true, 1, 1, 2, 1, "center"),
		spec(t, "control_panel", false, 1, 1, 1, 1, "wall"),
	)
	specs[0].GroupName = "helm"
	specs[1].GroupName = "helm"
	placed, err := NewSolver().PlaceAll(g, r, specs)
	if err != nil {
		t.Fatal(err)
	}
	if len(placed) != 2 {
		t.Fatalf("placed %d, want 2", len(placed))
	}
	console, panel := placed[0], placed[1]
	if d := manhattan(console.Anchor, panel.Anchor); d > 3 {
		t.Errorf("panel at %v is %d cells from console at %v, want grouped", panel.Anchor, d, console.Anchor)
	}
	if panel.Group != "helm" {
		t.Errorf("panel.Group = %q, want helm", panel.Group)
	}
}

func TestSkippedGroupMemberDoesNotAnchorGroup(t *testing.T) {
	g, r := commitRoom(t, 12, 6)
	specs := withOrder(
		spec(t, "reactor_core", false, 2, 2, 2, 2, "center"),
		spec(t, "locker", false, 1, 1, 1, 1, "floor"),
	)
	specs[0].GroupName = "bay"
	specs[1].GroupName = "bay"
	placed, err := NewSolver().PlaceAll(g, r, specs)
	if err != nil {
		t.Fatal(err)
	}
	if n := countKind(placed, entities.ReactorCore); n != 0 {
		t.Errorf("reactor cores placed = %d, want 0", n)
	}
	if len(placed) != 1 || placed[0].Anchor != world.C(1, 1) {
		t.Errorf("placed = %+v, want one locker at 1,1", placed)
	}
}

func TestOrder(t *testing.T) {
	specs := withOrder(
		spec(t, "vent", false, 0, 1, 1, 1, "wall"),
		spec(t, "air_filter", false, 0, 1, 2, 1, "corner"),
		spec(t, "oxygen_generator", true, 1, 2, 1, 1, "wall"),
		spec(t, "reactor_core", true, 1, 1, 2, 2, "center"),
		spec(t, "locker", false, 0, 1, 1, 1, "corner"),
	)
	var got []string
	for _, s := range Order(specs) {
		got = append(got, s.Name)
	}
	want := []string{"reactor_core", "oxygen_generator", "air_filter", "vent", "locker"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Order() = %v, want %v", got, want)
	}
}

func TestMatches(t *testing.T) {
	in := rooms.Rect{Min: world.C(1, 1), Max: world.C(6, 6)}
	tests := []struct {
		name string
		rect rooms.Rect
		p    entities.Placement
		want bool
	}{
		{"wall top", rooms.Footprint(world.C(3, 1), 1, 1), entities.PlaceWall, true},
		{"wall inner", rooms.Footprint(world.C(3, 3), 1, 1), entities.PlaceWall, false},
		{"corner br", rooms.Footprint(world.C(5, 6), 2, 1), entities.PlaceCorner, true},
		{"corner edge only", rooms.Footprint(world.C(3, 6), 1, 1), entities.PlaceCorner, false},
		{"center hit", rooms.Footprint(world.C(3, 3), 1, 1), entities.PlaceCenter, true},
		{"center miss", rooms.Footprint(world.C(4, 4), 1, 1), entities.PlaceCenter, false},
		{"floor anywhere", rooms.Footprint(world.C(4, 4), 1, 1), entities.PlaceFloor, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(in, tt.rect, tt.p); got != tt.want {
				t.Errorf("Matches(%v, %v) = %v, want %v", tt.rect, tt.p, got, tt.want)
			}
		})
	}
}
