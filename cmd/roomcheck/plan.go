package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"stationbuilder/pkg/engine/world"
	"stationbuilder/pkg/game/building"
	"stationbuilder/pkg/game/config"
	"stationbuilder/pkg/game/devtools"
	"stationbuilder/pkg/game/resources"
)

var (
	errBadStep     = errors.New("plan steps look like TYPE@X,Y")
	errPlanAborted = errors.New("plan aborted")
)

type planStep struct {
	RoomType string
	Anchor   world.Coord
}

type planOptions struct {
	Strict bool
	Map    bool
}

// parseStep reads one TYPE@X,Y argument
func parseStep(arg string) (planStep, error) {
	roomType, at, ok := strings.Cut(arg, "@")
	if !ok || roomType == "" {
		return planStep{}, fmt.Errorf("%w: %q", errBadStep, arg)
	}
	xs, ys, ok := strings.Cut(at, ",")
	if !ok {
		return planStep{}, fmt.Errorf("%w: %q", errBadStep, arg)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return planStep{}, fmt.Errorf("%w: %q: %v", errBadStep, arg, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return planStep{}, fmt.Errorf("%w: %q: %v", errBadStep, arg, err)
	}
	return planStep{RoomType: roomType, Anchor: world.C(x, y)}, nil
}

func parsePlan(args []string) ([]planStep, error) {
	steps := make([]planStep, 0, len(args))
	for _, a := range args {
		s, err := parseStep(a)
		if err != nil {
			return nil, err
		}
		steps = append(steps, s)
	}
	return steps, nil
}

// writeCatalogSummary lists every room type in declaration order
func writeCatalogSummary(w io.Writer, cat *config.Catalog) {
	fmt.Fprintf(w, "grid: %dx%d cells of %dpx\n", cat.Grid.Width, cat.Grid.Height, cat.Physics.CellSize)
	fmt.Fprintf(w, "starting_room: %s\n", cat.StartingRoom)
	fmt.Fprintf(w, "resources: %s (capacity %s)\n", cat.InitialResources(), cat.ResourceCapacity())
	for _, rt := range cat.RoomTypes.All() {
		required := 0
		for _, d := range rt.Decorations {
			if d.Required {
				required++
			}
		}
		cost := rt.Cost().String()
		if cost == "" {
			cost = "free"
		}
		fmt.Fprintf(w, "  %-18s %-16q %2dx%-2d cost: %-24s decorations: %d (%d required)\n",
			rt.ID, rt.Name, rt.Width(), rt.Height(), cost, len(rt.Decorations), required)
	}
	fmt.Fprintf(w, "catalog ok: %d room types\n", cat.RoomTypes.Len())
}

// runPlan builds the starting room at the grid centre and then every step in order,
// reporting each outcome. With Strict the first failure aborts the plan.
func runPlan(w io.Writer, cat *config.Catalog, steps []planStep, opts planOptions) error {
	grid := world.NewGrid(cat.Grid.Width, cat.Grid.Height, cat.Physics.CellSize)
	ledger := resources.NewLedger(cat.InitialResources(), cat.ResourceCapacity())
	m := building.NewManager(cat, grid, ledger, nil)

	start := cat.StartingRoom
	if start == "" {
		start = cat.RoomTypes.IDs()[0]
	}
	anchor, err := m.StartingAnchor(start)
	if err != nil {
		return err
	}
	all := append([]planStep{{RoomType: start, Anchor: anchor}}, steps...)

	failed := 0
	for i, s := range all {
		r, err := m.TryBuild(s.RoomType, s.Anchor)
		if err != nil {
			failed++
			fmt.Fprintf(w, "%2d %-18s @%d,%d FAILED %v\n", i, s.RoomType, s.Anchor.X, s.Anchor.Y, err)
			if opts.Strict || i == 0 {
				return fmt.Errorf("%w at step %d: %w", errPlanAborted, i, err)
			}
			continue
		}
		fmt.Fprintf(w, "%2d %-18s @%d,%d ok id=%d doors=%d decorations=%d resources=%s\n",
			i, s.RoomType, s.Anchor.X, s.Anchor.Y, r.ID, len(r.Doors), len(r.Decorations), ledger.Totals())
	}
	fmt.Fprintf(w, "built %d of %d, connected: %v\n", len(all)-failed, len(all), m.IsConnected())

	if opts.Map {
		fmt.Fprintln(w)
		return devtools.WriteMapDump(w, m, devtools.DumpInfo{})
	}
	return nil
}
