// Package renderer turns the station into a backend-neutral rendering surface and holds
// the glyphs and markup shared by the TUI and Ebiten backends.
package renderer

import (
	"regexp"

	"stationbuilder/pkg/engine/tiles"
	"stationbuilder/pkg/engine/world"
	"stationbuilder/pkg/game/building"
	"stationbuilder/pkg/game/config"
	"stationbuilder/pkg/game/entities"
)

// Icon constants for the station map
const (
	PlayerIcon   = "@"
	CrewIcon     = "☺"
	CursorIcon   = "+"
	IconVoid     = " "
	IconFloor    = "·"
	IconDoor     = "▯"
	IconPlatform = "▬"
)

// wallGlyphs draws wall cells by auto-tile variant
var wallGlyphs = map[tiles.Variant]string{
	tiles.VariantFill:     "█",
	tiles.VariantEdgeN:    "─",
	tiles.VariantEdgeS:    "─",
	tiles.VariantEdgeE:    "│",
	tiles.VariantEdgeW:    "│",
	tiles.VariantCornerNW: "┌",
	tiles.VariantCornerNE: "┐",
	tiles.VariantCornerSW: "└",
	tiles.VariantCornerSE: "┘",
	tiles.VariantIsolated: "■",
}

// SurfaceCell is everything a backend needs to draw one grid cell.
type SurfaceCell struct {
	Coord   world.Coord
	Role    world.Role
	Variant tiles.Variant
	Theme   config.ColorTheme
	Room    world.OwnerID

	Decoration    entities.DecorationKind
	HasDecoration bool
}

// Surface is the station as rows of drawable cells.
type Surface struct {
	Width  int
	Height int
	Rows   [][]SurfaceCell
}

// At returns the cell at c, or an empty cell outside the surface
func (s *Surface) At(c world.Coord) SurfaceCell {
	if c.X < 0 || c.Y < 0 || c.Y >= s.Height || c.X >= s.Width {
		return SurfaceCell{Coord: c}
	}
	return s.Rows[c.Y][c.X]
}

// BuildSurface snapshots the station's grid, resolved tiles, themes and decorations
func BuildSurface(m *building.Manager) *Surface {
	grid := m.Grid()
	resolver := m.Resolver()

	themes := make(map[world.OwnerID]config.ColorTheme)
	decorations := make(map[world.Coord]entities.DecorationKind)
	for _, r := range m.Rooms() {
		themes[r.ID] = r.Theme
		for _, d := range r.Decorations {
			d.Rect().Each(func(c world.Coord) {
				decorations[c] = d.Kind
			})
		}
	}

	s := &Surface{Width: grid.Width(), Height: grid.Height()}
	s.Rows = make([][]SurfaceCell, grid.Height())
	for y := range s.Rows {
		s.Rows[y] = make([]SurfaceCell, grid.Width())
	}
	grid.ForEachCell(func(c world.Coord, cell world.Cell) {
		sc := SurfaceCell{
			Coord:   c,
			Role:    cell.Role,
			Variant: resolver.Variant(c),
			Theme:   themes[cell.Owner],
			Room:    cell.Owner,
		}
		if kind, ok := decorations[c]; ok && cell.Role == world.RoleDecoration {
			sc.Decoration = kind
			sc.HasDecoration = true
		}
		s.Rows[c.Y][c.X] = sc
	})
	return s
}

// Glyph returns the single-character symbol for a surface cell
func Glyph(sc SurfaceCell) string {
	switch sc.Role {
	case world.RoleFloor:
		return IconFloor
	case world.RoleWall:
		if g, ok := wallGlyphs[sc.Variant]; ok {
			return g
		}
		return wallGlyphs[tiles.VariantFill]
	case world.RoleDoor:
		return IconDoor
	case world.RolePlatform:
		return IconPlatform
	case world.RoleDecoration:
		if sc.HasDecoration {
			return sc.Decoration.Template().Icon
		}
		return "?"
	default:
		return IconVoid
	}
}

var regexpMarkup = regexp.MustCompile(`([a-zA-Z_]*){([a-z A-Z0-9_,:.%-]+)}`)

// MarkupPattern returns the pattern backends use to find FUNC{operand} markup
func MarkupPattern() *regexp.Regexp {
	return regexpMarkup
}

// StripMarkup replaces every FUNC{operand} with its operand
func StripMarkup(msg string) string {
	return regexpMarkup.ReplaceAllString(msg, "$2")
}
