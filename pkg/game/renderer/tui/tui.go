package tui

import (
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"stationbuilder/pkg/engine/input"
	"stationbuilder/pkg/engine/terminal"
	"stationbuilder/pkg/engine/world"
	"stationbuilder/pkg/game/renderer"
	"stationbuilder/pkg/game/resources"
	"stationbuilder/pkg/game/rooms"
	"stationbuilder/pkg/game/state"
)

// Viewport margins and minimum sizes
const (
	ViewportMinRows = 9
	ViewportMinCols = 21
	// Lines needed outside viewport:
	// - Mode header + blank (2)
	// - Status bar (2)
	// - Actions (2)
	// - Messages pane (header + 5 messages + footer = 7)
	// - Input prompt (2)
	ViewportTopMargin = 15
)

// dynamicGet is used for runtime translation key lookups.
// We use a function variable to avoid go vet's non-constant format string check,
// since we intentionally look up translation keys dynamically from markup.
var dynamicGet = gotext.Get

// TUIRenderer is the terminal-based renderer implementation
type TUIRenderer struct {
	colorRoom        color.Style
	colorResource    color.Style
	colorAction      color.Style
	colorActionShort color.Style
	colorDenied      color.Style
	colorWarning     color.Style
	colorSubtle      color.Style
	colorPlayer      color.Style
	colorCrew        color.Style
	colorCursor      color.Style
	colorDoor        color.Style
	colorDecoration  color.Style

	regexpStringFunctions *regexp.Regexp
}

// New creates a new TUI renderer
func New() *TUIRenderer {
	return &TUIRenderer{}
}

// Init initializes the TUI renderer (colors, etc.)
func (t *TUIRenderer) Init() {
	t.colorRoom = color.Style{color.FgCyan}
	t.colorResource = color.Style{color.FgGreen, color.OpBold}
	t.colorAction = color.Style{color.FgMagenta}
	t.colorActionShort = color.Style{color.FgMagenta, color.OpBold}
	t.colorDenied = color.Style{color.FgRed, color.OpBold}
	t.colorWarning = color.Style{color.FgYellow, color.OpBold}
	t.colorSubtle = color.Style{color.FgGray, color.OpBold}
	t.colorPlayer = color.Style{color.FgGreen, color.BgBlack, color.OpBold}
	t.colorCrew = color.Style{color.FgLightYellow}
	t.colorCursor = color.Style{color.FgCyan, color.OpReverse}
	t.colorDoor = color.Style{color.FgYellow, color.OpBold}
	t.colorDecoration = color.Style{color.FgLightMagenta}

	t.regexpStringFunctions = regexp.MustCompile(`([a-zA-Z_]*){([a-z A-Z0-9_,:.%-]+)}`)
}

// Clear clears the terminal screen
func (t *TUIRenderer) Clear() {
	c := exec.Command("clear")
	c.Stdout = os.Stdout
	c.Run()
}

// GetInput gets user input from the terminal and returns a high-level Intent.
// Read errors map to quit so a closed stdin cannot spin the loop.
func (t *TUIRenderer) GetInput() input.Intent {
	code, err := input.ReadKey()
	if err != nil {
		return input.Intent{Action: input.ActionQuit}
	}
	raw := input.RawInput{
		Device: input.DeviceTerminal,
		Code:   code,
		// Timestamp left zero for now; terminal input is inherently low frequency.
	}
	debounced := input.NewDebouncedInput(raw)
	return input.MapToIntent(debounced)
}

// StyleText applies a style to text
func (t *TUIRenderer) StyleText(text string, style renderer.TextStyle) string {
	switch style {
	case renderer.StyleRoom:
		return t.colorRoom.Sprint(text)
	case renderer.StyleResource:
		return t.colorResource.Sprint(text)
	case renderer.StyleAction:
		return t.colorAction.Sprint(text)
	case renderer.StyleActionShort:
		return t.colorActionShort.Sprint(text)
	case renderer.StyleDenied:
		return t.colorDenied.Sprint(text)
	case renderer.StyleWarning:
		return t.colorWarning.Sprint(text)
	case renderer.StyleSubtle:
		return t.colorSubtle.Sprint(text)
	case renderer.StylePlayer:
		return t.colorPlayer.Sprint(text)
	case renderer.StyleCrew:
		return t.colorCrew.Sprint(text)
	case renderer.StyleCursor:
		return t.colorCursor.Sprint(text)
	default:
		return text
	}
}

// FormatText formats a message with the markup system
func (t *TUIRenderer) FormatText(msg string, args ...any) string {
	ret := fmt.Sprintf(msg, args...)

	matches := t.regexpStringFunctions.FindAllStringSubmatch(ret, -1)

	for _, match := range matches {
		function := match[1]
		operand := match[2]

		val := "blat"

		switch function {
		case "GT":
			val = dynamicGet(operand)
		case "ITEM":
			val = t.colorResource.Sprint(operand)
		case "ROOM":
			val = t.colorRoom.Sprint(dynamicGet(operand))
		case "ACTION":
			val = t.colorActionShort.Sprint(operand[0:1]) + t.colorAction.Sprint(operand[1:])
		case "WARN":
			val = t.colorWarning.Sprint(operand)
		default:
			ret = fmt.Sprintf("ERROR, function not found: %v -> %v", function, operand)
		}

		ret = strings.Replace(ret, match[0], val, -1)
	}

	return ret
}

// ShowMessage displays a message to the user
func (t *TUIRenderer) ShowMessage(msg string) {
	fmt.Println(msg)
}

// GetViewportSize returns the viewport dimensions based on terminal size
func (t *TUIRenderer) GetViewportSize() (rows, cols int) {
	termWidth, termHeight := terminal.GetSize()

	cols = termWidth - 2
	rows = termHeight - ViewportTopMargin

	// Ensure minimum size
	if cols < ViewportMinCols {
		cols = ViewportMinCols
	}
	if rows < ViewportMinRows {
		rows = ViewportMinRows
	}
	return rows, cols
}

// RenderFrame renders a complete game frame
func (t *TUIRenderer) RenderFrame(g *state.Game) {
	t.printHeader(g)
	t.printMap(g)
	t.printStatusBar(g)
	t.printPossibleActions(g)
	t.printMessagesPane(g)

	// Input prompt
	fmt.Printf("\n> ")
}

// printString prints a formatted string
func (t *TUIRenderer) printString(msg string, a ...any) {
	fmt.Print(t.FormatText(msg, a...))
}

// printBullet prints a bulleted item
func (t *TUIRenderer) printBullet(txt string) {
	fmt.Print("- " + t.FormatText("%s", txt) + "\n")
}

// printHeader shows the mode and where the player is
func (t *TUIRenderer) printHeader(g *state.Game) {
	if g.Mode == state.ModeBuild {
		rt := g.SelectedRoomType()
		t.colorWarning.Print("BUILD ")
		t.printString("ROOM{%s} %s at %d,%d\n\n", rt.Name, t.colorSubtle.Sprint(rt.Cost().String()), g.Cursor.X, g.Cursor.Y)
		return
	}
	t.colorAction.Print("DECK ")
	if r, ok := g.Station.Room(g.PlayerRoom); ok {
		t.printString("ROOM{%s}\n\n", r.Name)
	} else {
		fmt.Print(t.colorSubtle.Sprint("outside the station") + "\n\n")
	}
}

// viewportOrigin returns the top-left cell so focus sits in the middle, clamped to the grid
func viewportOrigin(focus world.Coord, rows, cols, gridW, gridH int) world.Coord {
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

// printMap renders the visible part of the station with player, crew and build cursor
func (t *TUIRenderer) printMap(g *state.Game) {
	rows, cols := t.GetViewportSize()
	surface := renderer.BuildSurface(g.Station)

	player := g.Grid.WorldToCell(g.Player.Center())
	focus := player
	if g.Mode == state.ModeBuild {
		focus = g.Cursor
	}
	origin := viewportOrigin(focus, rows, cols, surface.Width, surface.Height)

	crew := make(map[world.Coord]bool)
	for _, m := range g.Crew.Members() {
		crew[g.Grid.WorldToCell(m.Body.Center())] = true
	}

	var footprint rooms.Rect
	showFootprint := false
	if g.Mode == state.ModeBuild {
		if rt := g.SelectedRoomType(); rt != nil {
			footprint = rooms.Footprint(g.Cursor, rt.Width(), rt.Height())
			showFootprint = true
		}
	}

	var sb strings.Builder
	for y := origin.Y; y < origin.Y+rows && y < surface.Height; y++ {
		for x := origin.X; x < origin.X+cols && x < surface.Width; x++ {
			c := world.C(x, y)
			sc := surface.At(c)
			switch {
			case c == player:
				sb.WriteString(t.colorPlayer.Sprint(renderer.PlayerIcon))
			case crew[c]:
				sb.WriteString(t.colorCrew.Sprint(renderer.CrewIcon))
			case showFootprint && footprint.Contains(c):
				glyph := renderer.Glyph(sc)
				if c == g.Cursor {
					glyph = renderer.CursorIcon
				} else if sc.Role == world.RoleEmpty {
					glyph = renderer.IconFloor
				}
				sb.WriteString(t.colorCursor.Sprint(glyph))
			default:
				sb.WriteString(t.renderCell(sc))
			}
		}
		sb.WriteString("\n")
	}
	fmt.Print(sb.String())
}

// renderCell colours a surface cell with its room's theme
func (t *TUIRenderer) renderCell(sc renderer.SurfaceCell) string {
	glyph := renderer.Glyph(sc)
	switch sc.Role {
	case world.RoleEmpty:
		return glyph
	case world.RoleDoor:
		return t.colorDoor.Sprint(glyph)
	case world.RoleDecoration:
		return t.colorDecoration.Sprint(glyph)
	case world.RoleWall, world.RolePlatform:
		w := sc.Theme.Wall
		return color.RGB(w[0], w[1], w[2]).Sprint(glyph)
	default:
		f := sc.Theme.Floor
		return color.RGB(f[0], f[1], f[2]).Sprint(glyph)
	}
}

// printPossibleActions prints the available actions for the current mode
func (t *TUIRenderer) printPossibleActions(g *state.Game) {
	fmt.Println()
	if g.Mode == state.ModeBuild {
		t.printBullet("ACTION{ijkl} cursor  ACTION{tab} room type  ACTION{enter} build  ACTION{x} demolish  ACTION{b} back")
		return
	}
	t.printBullet("ACTION{ad} walk  ACTION{w} jump  ACTION{s} drop  ACTION{b} build mode  ACTION{q} quit")
}

// printStatusBar renders resource totals coloured by threshold band
func (t *TUIRenderer) printStatusBar(g *state.Game) {
	fmt.Println()
	fmt.Print(t.colorSubtle.Sprint("Resources: "))
	parts := []string{}
	for _, r := range resources.All() {
		pct := g.Ledger.Percentage(r)
		text := fmt.Sprintf("%s %.0f (%.0f%%)", r, g.Ledger.Get(r), pct)
		switch level := resources.LevelFor(pct); {
		case g.Ledger.Capacity(r) <= 0:
			parts = append(parts, text)
		case level >= resources.LevelCritical:
			parts = append(parts, t.colorDenied.Sprint(text))
		case level >= resources.LevelWarning:
			parts = append(parts, t.colorWarning.Sprint(text))
		default:
			parts = append(parts, t.colorResource.Sprint(text))
		}
	}
	fmt.Println(strings.Join(parts, t.colorSubtle.Sprint(", ")))
	fmt.Println(t.colorSubtle.Sprintf("Rooms: %d  Crew: %d", len(g.Station.Rooms()), len(g.Crew.Members())))
}

// printMessagesPane renders the messages log pane
func (t *TUIRenderer) printMessagesPane(g *state.Game) {
	width := terminal.GetWidth()

	label := " Messages "
	labelLen := len(label)
	sideLen := (width - labelLen) / 2
	if sideLen < 1 {
		sideLen = 1
	}

	leftDashes := strings.Repeat("─", sideLen)
	rightDashes := strings.Repeat("─", max(width-sideLen-labelLen, 1))

	fmt.Println()
	fmt.Println(t.colorSubtle.Sprint(leftDashes + label + rightDashes))

	if len(g.Messages) == 0 {
		fmt.Println(t.colorSubtle.Sprint("  (no messages)"))
	} else {
		for _, msg := range g.Messages {
			fmt.Printf("  %s\n", msg)
		}
	}

	fmt.Println(t.colorSubtle.Sprint(strings.Repeat("─", width)))
}
