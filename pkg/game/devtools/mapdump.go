// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"stationbuilder/pkg/engine/world"
	"stationbuilder/pkg/game/building"
	"stationbuilder/pkg/game/resources"
	"stationbuilder/pkg/game/state"
)

const mapDumpFilename = "map.txt"

// ErrNoStation is returned when there is nothing to dump
var ErrNoStation = errors.New("no station")

// DumpInfo carries the session details the station itself does not know about.
type DumpInfo struct {
	Seed   int64
	Tick   int
	Mode   string
	Player *world.Coord
	Cursor *world.Coord
	Crew   []world.Coord
}

// InfoFor collects dump details from a running game
func InfoFor(g *state.Game) DumpInfo {
	info := DumpInfo{Seed: g.Seed, Tick: g.Tick, Mode: g.Mode.String()}
	if g.Player != nil {
		at := g.Grid.WorldToCell(g.Player.Center())
		info.Player = &at
	}
	if g.Mode == state.ModeBuild {
		cursor := g.Cursor
		info.Cursor = &cursor
	}
	if g.Crew != nil {
		for _, m := range g.Crew.Members() {
			info.Crew = append(info.Crew, g.Grid.WorldToCell(m.Body.Center()))
		}
	}
	return info
}

// cellSymbol returns the single-character symbol for a cell (no player/crew overlay).
func cellSymbol(cell world.Cell) rune {
	switch cell.Role {
	case world.RoleFloor:
		return '.'
	case world.RoleWall:
		return '#'
	case world.RoleDoor:
		return 'D'
	case world.RoleDecoration:
		return '*'
	case world.RolePlatform:
		return '='
	default:
		return ' '
	}
}

// writeMapGrid writes the grid with player, crew and cursor overlays.
func writeMapGrid(w io.Writer, grid *world.Grid, info DumpInfo) {
	crew := make(map[world.Coord]bool, len(info.Crew))
	for _, c := range info.Crew {
		crew[c] = true
	}
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			c := world.C(x, y)
			switch {
			case info.Player != nil && *info.Player == c:
				fmt.Fprint(w, "@")
			case info.Cursor != nil && *info.Cursor == c:
				fmt.Fprint(w, "+")
			case crew[c]:
				fmt.Fprint(w, "c")
			default:
				fmt.Fprintf(w, "%c", cellSymbol(grid.Cell(c)))
			}
		}
		fmt.Fprintln(w)
	}
}

// WriteMapDump writes a full debug dump of the station: metadata, legend, map, rooms,
// doors and decorations. Format is human- and LLM-readable (sections, key: value).
func WriteMapDump(out io.Writer, m *building.Manager, info DumpInfo) error {
	if m == nil || m.Grid() == nil {
		return ErrNoStation
	}
	grid := m.Grid()
	ledger := m.Ledger()
	rs := m.Rooms()
	w := bufio.NewWriter(out)

	// --- Metadata ---
	fmt.Fprintln(w, "=== STATION DUMP DEBUG (grid, rooms, doors, decorations) ===")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "--- Metadata ---")
	fmt.Fprintf(w, "seed: %d\n", info.Seed)
	fmt.Fprintf(w, "tick: %d\n", info.Tick)
	if info.Mode != "" {
		fmt.Fprintf(w, "mode: %s\n", info.Mode)
	}
	fmt.Fprintf(w, "grid_width: %d\n", grid.Width())
	fmt.Fprintf(w, "grid_height: %d\n", grid.Height())
	fmt.Fprintf(w, "cell_size: %d\n", grid.CellSize())
	fmt.Fprintf(w, "coordinate_system: x,y (0-based, x=column, y=row growing downward)\n")
	if info.Player != nil {
		fmt.Fprintf(w, "player_cell: %d,%d\n", info.Player.X, info.Player.Y)
	}
	if info.Cursor != nil {
		fmt.Fprintf(w, "cursor_cell: %d,%d\n", info.Cursor.X, info.Cursor.Y)
	}
	fmt.Fprintf(w, "rooms: %d\n", len(rs))
	fmt.Fprintf(w, "crew: %d\n", len(info.Crew))
	fmt.Fprintf(w, "connected: %v\n", m.IsConnected())
	if ledger != nil {
		for _, r := range resources.All() {
			fmt.Fprintf(w, "%s: %.1f (%.0f%%)\n", r, ledger.Get(r), ledger.Percentage(r))
		}
	}
	fmt.Fprintln(w, "")

	// --- Legend ---
	fmt.Fprintln(w, "--- Legend (cell symbols) ---")
	fmt.Fprintln(w, ". = floor  # = wall  D = door  * = decoration  = = platform  @ = player  c = crew  + = build cursor  (space) = empty")
	fmt.Fprintln(w, "")

	// --- Map ---
	fmt.Fprintln(w, "--- Map ---")
	writeMapGrid(w, grid, info)
	fmt.Fprintln(w, "")

	// --- Rooms ---
	fmt.Fprintln(w, "--- Rooms (id order) ---")
	for _, r := range rs {
		fmt.Fprintf(w, "  id: %d type: %q anchor: %d,%d size: %dx%d starting: %v neighbours: %v\n",
			r.ID, r.Type, r.Anchor.X, r.Anchor.Y, r.Width, r.Height, r.IsStartingRoom, r.Neighbours())
	}
	fmt.Fprintln(w, "")

	// Doors
	fmt.Fprintln(w, "Doors:")
	for _, r := range rs {
		for _, d := range r.Doors {
			fmt.Fprintf(w, "  room: %d side: %v offset: %d size: %d to: %d cells: %v\n",
				r.ID, d.Side, d.Offset, d.Size, d.To, d.Cells)
		}
	}
	fmt.Fprintln(w, "")

	// Decorations
	fmt.Fprintln(w, "Decorations:")
	for _, r := range rs {
		for _, d := range r.Decorations {
			group := ""
			if d.Group != "" {
				group = " group: " + d.Group
			}
			fmt.Fprintf(w, "  room: %d id: %d kind: %s anchor: %d,%d size: %dx%d placement: %v%s\n",
				r.ID, d.ID, d.Kind.Template().Key, d.Anchor.X, d.Anchor.Y, d.Width, d.Height, d.Placement, group)
		}
	}

	return w.Flush()
}

// DumpMapToFile writes the game's station dump to map.txt and returns its absolute path.
func DumpMapToFile(g *state.Game) (string, error) {
	if g.Station == nil {
		return "", ErrNoStation
	}

	absPath, err := filepath.Abs(mapDumpFilename)
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := WriteMapDump(f, g.Station, InfoFor(g)); err != nil {
		return "", err
	}
	return absPath, nil
}
