package devtools

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"stationbuilder/pkg/engine/world"
	"stationbuilder/pkg/game/building"
	"stationbuilder/pkg/game/config"
	"stationbuilder/pkg/game/resources"
	"stationbuilder/pkg/logger"
)

func newStation(t *testing.T) *building.Manager {
	t.Helper()
	logger.Discard()
	cat, err := config.Default()
	if err != nil {
		t.Fatalf("config.Default: %v", err)
	}
	grid := world.NewGrid(24, 12, cat.Physics.CellSize)
	ledger := resources.NewLedger(cat.InitialResources(), cat.ResourceCapacity())
	m := building.NewManager(cat, grid, ledger, nil)
	if _, err := m.TryBuild("starting_quarters", world.C(2, 2)); err != nil {
		t.Fatalf("TryBuild: %v", err)
	}
	return m
}

// mapLines returns the rows printed under the Map header
func mapLines(t *testing.T, dump string, rows int) []string {
	t.Helper()
	_, after, ok := strings.Cut(dump, "--- Map ---\n")
	if !ok {
		t.Fatal("dump has no Map section")
	}
	lines := strings.Split(after, "\n")
	if len(lines) < rows {
		t.Fatalf("Map section has %d lines, want %d", len(lines), rows)
	}
	return lines[:rows]
}

func TestWriteMapDump(t *testing.T) {
	m := newStation(t)
	player := world.C(5, 6)
	var buf bytes.Buffer
	err := WriteMapDump(&buf, m, DumpInfo{Seed: 42, Tick: 3, Player: &player, Crew: []world.Coord{world.C(8, 6)}})
	if err != nil {
		t.Fatalf("WriteMapDump: %v", err)
	}
	dump := buf.String()

	for _, want := range []string{
		"seed: 42",
		"tick: 3",
		"grid_width: 24",
		"rooms: 1",
		"crew: 1",
		"player_cell: 5,6",
		`id: 1 type: "starting_quarters" anchor: 2,2 size: 10x6 starting: true`,
		"kind: bunk",
	} {
		if !strings.Contains(dump, want) {
			t.Errorf("dump is missing %q", want)
		}
	}
	if strings.Contains(dump, "cursor_cell") {
		t.Error("dump has a cursor outside build mode")
	}

	lines := mapLines(t, dump, 12)
	for y, line := range lines {
		if len([]rune(line)) != 24 {
			t.Fatalf("map row %d has %d cells, want 24", y, len([]rune(line)))
		}
	}
	if want := "  ##########            "; lines[2] != want {
		t.Errorf("map row 2 = %q, want %q", lines[2], want)
	}
	if want := "  ##########            "; lines[7] != want {
		t.Errorf("map row 7 = %q, want %q", lines[7], want)
	}
	if got := lines[6][5]; got != '@' {
		t.Errorf("player cell = %q, want '@'", got)
	}
	if got := lines[6][8]; got != 'c' {
		t.Errorf("crew cell = %q, want 'c'", got)
	}
	if got := strings.Trim(lines[0], " "); got != "" {
		t.Errorf("map row 0 = %q, want empty", lines[0])
	}
}

func TestWriteMapDumpWithoutStation(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMapDump(&buf, nil, DumpInfo{}); !errors.Is(err, ErrNoStation) {
		t.Errorf("WriteMapDump(nil) = %v, want ErrNoStation", err)
	}
}

func TestCellSymbol(t *testing.T) {
	tests := []struct {
		role world.Role
		want rune
	}{
		{world.RoleEmpty, ' '},
		{world.RoleFloor, '.'},
		{world.RoleWall, '#'},
		{world.RoleDoor, 'D'},
		{world.RoleDecoration, '*'},
		{world.RolePlatform, '='},
	}
	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			if got := cellSymbol(world.Cell{Role: tt.role}); got != tt.want {
				t.Errorf("cellSymbol(%v) = %q, want %q", tt.role, got, tt.want)
			}
		})
	}
}
