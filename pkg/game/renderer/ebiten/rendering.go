package ebiten

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"stationbuilder/pkg/engine/physics"
	"stationbuilder/pkg/engine/world"
	"stationbuilder/pkg/game/renderer"
	"stationbuilder/pkg/game/resources"
	"stationbuilder/pkg/game/rooms"
	"stationbuilder/pkg/game/state"
)

// Draw renders the game to the screen (Ebiten interface)
func (e *EbitenRenderer) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	g := e.game
	if g == nil || g.Station == nil {
		return
	}

	rows, cols := e.GetViewportSize()
	focus := g.Grid.WorldToCell(g.Player.Center())
	if g.Mode == state.ModeBuild {
		focus = g.Cursor
	}
	origin := cameraOrigin(focus, rows, cols, g.Grid.Width(), g.Grid.Height())

	e.drawMap(screen, renderer.BuildSurface(g.Station), origin, rows, cols)
	if g.Mode == state.ModeBuild {
		e.drawFootprint(screen, g, origin)
	}
	for _, m := range g.Crew.Members() {
		e.drawBody(screen, g, m.Body, origin, colorCrew)
	}
	playerColor := colorPlayer
	if g.Player.IsDropping() {
		playerColor = colorDropping
	}
	e.drawBody(screen, g, g.Player, origin, playerColor)

	e.drawHUD(screen, g)
}

// cameraOrigin returns the top-left visible cell so focus sits in the middle, clamped to the grid
func cameraOrigin(focus world.Coord, rows, cols, gridW, gridH int) world.Coord {
	clamp := func(v, size, limit int) int {
		v -= size / 2
		if v > limit-size {
			v = limit - size
		}
		if v < 0 {
			v = 0
		}
		return v
	}
	return world.C(clamp(focus.X, cols, gridW), clamp(focus.Y, rows, gridH))
}

func rgb(c [3]uint8) color.RGBA {
	return color.RGBA{c[0], c[1], c[2], 255}
}

func shade(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{uint8(float64(c.R) * f), uint8(float64(c.G) * f), uint8(float64(c.B) * f), c.A}
}

// drawMap draws every visible cell as a filled tile
func (e *EbitenRenderer) drawMap(screen *ebiten.Image, s *renderer.Surface, origin world.Coord, rows, cols int) {
	ts := float32(e.tileSize)
	for y := origin.Y; y < origin.Y+rows && y < s.Height; y++ {
		for x := origin.X; x < origin.X+cols && x < s.Width; x++ {
			sc := s.At(world.C(x, y))
			if sc.Role == world.RoleEmpty {
				continue
			}
			px := float32(x-origin.X) * ts
			py := float32(y-origin.Y) * ts

			wall, floor := colorDefaultWall, colorDefaultFloor
			if sc.Room != world.NoOwner {
				wall, floor = rgb(sc.Theme.Wall), shade(rgb(sc.Theme.Floor), floorShade)
			}

			switch sc.Role {
			case world.RoleWall:
				vector.DrawFilledRect(screen, px, py, ts, ts, wall, false)
			case world.RoleDoor:
				vector.DrawFilledRect(screen, px, py, ts, ts, floor, false)
				vector.StrokeRect(screen, px+1, py+1, ts-2, ts-2, 1, colorDoor, false)
			case world.RolePlatform:
				vector.DrawFilledRect(screen, px, py, ts, ts, floor, false)
				vector.DrawFilledRect(screen, px, py, ts, ts*platformThickness, wall, false)
			case world.RoleDecoration:
				inset := ts * decorationInset
				vector.DrawFilledRect(screen, px, py, ts, ts, floor, false)
				vector.DrawFilledRect(screen, px+inset, py+inset, ts-2*inset, ts-2*inset, colorDecoration, false)
			default:
				vector.DrawFilledRect(screen, px, py, ts, ts, floor, false)
			}
		}
	}
}

// drawFootprint overlays the selected room type at the cursor
func (e *EbitenRenderer) drawFootprint(screen *ebiten.Image, g *state.Game, origin world.Coord) {
	rt := g.SelectedRoomType()
	if rt == nil {
		return
	}
	ts := float32(e.tileSize)
	rooms.Footprint(g.Cursor, rt.Width(), rt.Height()).Each(func(c world.Coord) {
		clr := colorCursor
		if g.Grid.Role(c).IsOccupied() || !g.Grid.InBounds(c) {
			clr = colorCursorBlocked
		}
		vector.DrawFilledRect(screen, float32(c.X-origin.X)*ts, float32(c.Y-origin.Y)*ts, ts, ts, clr, false)
	})
}

// drawBody draws a physics body scaled from world pixels to tiles
func (e *EbitenRenderer) drawBody(screen *ebiten.Image, g *state.Game, b *physics.Body, origin world.Coord, clr color.Color) {
	scale := float32(e.tileSize) / float32(g.Grid.CellSize())
	ox, oy := g.Grid.CellToWorld(origin)
	x := float32(b.X-ox) * scale
	y := float32(b.Y-oy) * scale
	vector.DrawFilledRect(screen, x, y, float32(b.W)*scale, float32(b.H)*scale, clr, false)
}

// drawHUD prints mode, resources and the message log under the map
func (e *EbitenRenderer) drawHUD(screen *ebiten.Image, g *state.Game) {
	top := e.windowHeight - hudHeight
	vector.DrawFilledRect(screen, 0, float32(top), float32(e.windowWidth), hudHeight, colorHUDBackground, false)

	var status []string
	for _, r := range resources.All() {
		status = append(status, fmt.Sprintf("%s %.0f (%.0f%%)", r, g.Ledger.Get(r), g.Ledger.Percentage(r)))
	}
	header := "DECK"
	if g.Mode == state.ModeBuild {
		rt := g.SelectedRoomType()
		header = fmt.Sprintf("BUILD %s [%s] at %d,%d", rt.Name, rt.Cost().String(), g.Cursor.X, g.Cursor.Y)
	} else if r, ok := g.Station.Room(g.PlayerRoom); ok {
		header = "DECK " + r.Name
	}
	lines := append([]string{header, strings.Join(status, "  ")}, g.Messages...)

	y := top + hudPadding
	for _, line := range lines {
		if y+hudLineHeight > e.windowHeight {
			break
		}
		ebitenutil.DebugPrintAt(screen, line, hudPadding, y)
		y += hudLineHeight
	}
}
