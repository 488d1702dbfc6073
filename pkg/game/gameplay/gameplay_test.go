package gameplay

import (
	"strings"
	"testing"

	engineinput "stationbuilder/pkg/engine/input"
	"stationbuilder/pkg/engine/world"
	"stationbuilder/pkg/game/config"
	"stationbuilder/pkg/game/rooms"
	"stationbuilder/pkg/game/state"
	"stationbuilder/pkg/logger"
)

// newGame builds the default station: crew quarters centred at 27,17 on a 64x40 grid
func newGame(t *testing.T) *state.Game {
	t.Helper()
	logger.Discard()
	cat, err := config.Default()
	if err != nil {
		t.Fatalf("config.Default: %v", err)
	}
	g, err := BuildGame(cat, 7)
	if err != nil {
		t.Fatalf("BuildGame: %v", err)
	}
	return g
}

// buildLifeSupport builds life support against the quarters' east wall, floors aligned
func buildLifeSupport(t *testing.T, g *state.Game) *rooms.Room {
	t.Helper()
	g.Mode = state.ModeBuild
	g.Selected = indexOf(t, g, "life_support")
	g.Cursor = world.C(37, 15)
	if !BuildAtCursor(g) {
		t.Fatalf("BuildAtCursor failed: %v", g.Station.LastAttempt().Err)
	}
	r, ok := g.Station.RoomAt(world.C(40, 18))
	if !ok {
		t.Fatal("no room at 40,18 after building life support")
	}
	return r
}

func indexOf(t *testing.T, g *state.Game, id string) int {
	t.Helper()
	for i, rt := range g.Catalog.RoomTypes.IDs() {
		if rt == id {
			return i
		}
	}
	t.Fatalf("room type %q not in catalog", id)
	return -1
}

func hasMessage(g *state.Game, substr string) bool {
	for _, m := range g.Messages {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

func TestBuildGameStartsInQuarters(t *testing.T) {
	g := newGame(t)

	start := g.Station.StartingRoom()
	if start == nil || start.Type != "starting_quarters" {
		t.Fatalf("StartingRoom() = %+v, want starting_quarters", start)
	}
	if start.Anchor != world.C(27, 17) {
		t.Errorf("starting anchor = %v, want 27,17", start.Anchor)
	}
	if g.PlayerRoom != start.ID {
		t.Errorf("PlayerRoom = %d, want %d", g.PlayerRoom, start.ID)
	}
	if n := g.Crew.CountIn(start.ID); n < 1 {
		t.Errorf("crew in starting room = %d, want at least 1", n)
	}
	if !hasMessage(g, "Welcome aboard Crew Quarters.") {
		t.Errorf("Messages = %q, want welcome line", g.Messages)
	}

	Step(g)
	if !g.Player.OnGround {
		t.Error("player not on ground after first step")
	}
	if got := g.Grid.WorldToCell(g.Player.Center()); !start.Contains(got) {
		t.Errorf("player centre at %v, outside the starting room", got)
	}
}

func TestWalkAndJump(t *testing.T) {
	g := newGame(t)
	Step(g)
	x0, y0 := g.Player.X, g.Player.Y

	ProcessIntent(g, engineinput.Intent{Action: engineinput.ActionMoveRight})
	Advance(g, 4)
	if want := x0 + 4*g.Catalog.Physics.PlayerSpeed; g.Player.X != want {
		t.Errorf("X after walking = %v, want %v", g.Player.X, want)
	}
	if g.MoveDir != 0 {
		t.Errorf("MoveDir after Advance = %d, want 0", g.MoveDir)
	}

	ProcessIntent(g, engineinput.Intent{Action: engineinput.ActionJump})
	if g.Player.VY >= 0 {
		t.Fatalf("VY after jump = %v, want upward", g.Player.VY)
	}
	Step(g)
	if g.Player.Y >= y0 {
		t.Errorf("Y after jump step = %v, want above %v", g.Player.Y, y0)
	}
	if Jump(g) {
		t.Error("Jump() in mid-air = true, want false")
	}

	// Landing again takes well under two seconds
	Advance(g, 120)
	if !g.Player.OnGround || g.Player.Y != y0 {
		t.Errorf("after landing Y = %v OnGround = %v, want %v true", g.Player.Y, g.Player.OnGround, y0)
	}
}

func TestDropNeedsPlatform(t *testing.T) {
	g := newGame(t)
	Step(g)
	ProcessIntent(g, engineinput.Intent{Action: engineinput.ActionDrop})
	if g.Player.IsDropping() {
		t.Error("player dropped through the quarters' solid floor")
	}
}

func TestBuildModeIntents(t *testing.T) {
	g := newGame(t)

	ProcessIntent(g, engineinput.Intent{Action: engineinput.ActionToggleBuild})
	if g.Mode != state.ModeBuild {
		t.Fatalf("Mode = %v, want build", g.Mode)
	}

	before := g.Cursor
	ProcessIntent(g, engineinput.Intent{Action: engineinput.ActionCursorUp})
	ProcessIntent(g, engineinput.Intent{Action: engineinput.ActionMoveRight})
	if want := before.Add(1, -1); g.Cursor != want {
		t.Errorf("Cursor = %v, want %v", g.Cursor, want)
	}

	sel := g.Selected
	ProcessIntent(g, engineinput.Intent{Action: engineinput.ActionCycleRoom})
	if want := (sel + 1) % g.Catalog.RoomTypes.Len(); g.Selected != want {
		t.Errorf("Selected = %d, want %d", g.Selected, want)
	}

	g.Cursor = world.C(0, 0)
	x0 := g.Player.X
	ProcessIntent(g, engineinput.Intent{Action: engineinput.ActionMoveLeft})
	if g.MoveDir != 0 || g.Player.X != x0 {
		t.Error("movement intent moved the player in build mode")
	}

	ProcessIntent(g, engineinput.Intent{Action: engineinput.ActionToggleBuild})
	if g.Mode != state.ModePlay {
		t.Errorf("Mode = %v, want play", g.Mode)
	}

	ProcessIntent(g, engineinput.Intent{Action: engineinput.ActionQuit})
	if !g.Quit {
		t.Error("Quit intent did not set Quit")
	}
}

func TestBuildLifeSupportFromCursor(t *testing.T) {
	g := newGame(t)
	r := buildLifeSupport(t, g)

	if r.Anchor != world.C(37, 15) {
		t.Errorf("life support anchor = %v, want 37,15", r.Anchor)
	}
	if !hasMessage(g, "Built Life Support.") {
		t.Errorf("Messages = %q, want build confirmation", g.Messages)
	}
	if n := g.Crew.CountIn(r.ID); n < 1 {
		t.Errorf("crew in life support = %d, want at least 1", n)
	}
	if got := g.Ledger.Totals()["power"]; got != 50 {
		t.Errorf("power after build = %v, want 50", got)
	}

	// 50/250 power is in the warning band; the next step reports it
	Step(g)
	if !hasMessage(g, "power is running out") {
		t.Errorf("Messages = %q, want power warning", g.Messages)
	}
}

func TestFailedBuildReportsReason(t *testing.T) {
	tests := []struct {
		name   string
		cursor world.Coord
		want   string
	}{
		{"disconnected", world.C(0, 0), "must share a wall"},
		{"overlap", world.C(30, 18), "would overlap"},
		{"out of bounds", world.C(60, 38), "does not fit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGame(t)
			g.Selected = indexOf(t, g, "life_support")
			g.Cursor = tt.cursor
			if BuildAtCursor(g) {
				t.Fatalf("BuildAtCursor at %v succeeded", tt.cursor)
			}
			if !hasMessage(g, tt.want) {
				t.Errorf("Messages = %q, want %q", g.Messages, tt.want)
			}
		})
	}
}

func TestDemolishAtCursor(t *testing.T) {
	g := newGame(t)
	r := buildLifeSupport(t, g)

	g.Cursor = g.Station.StartingRoom().Center()
	if DemolishAtCursor(g) {
		t.Fatal("demolished the starting room")
	}
	if !hasMessage(g, "Cannot demolish Crew Quarters") {
		t.Errorf("Messages = %q, want refusal", g.Messages)
	}

	g.Cursor = world.C(0, 0)
	if DemolishAtCursor(g) {
		t.Error("demolished empty space")
	}

	g.Cursor = r.Center()
	if !DemolishAtCursor(g) {
		t.Fatal("DemolishAtCursor on life support failed")
	}
	if n := g.Crew.CountIn(r.ID); n != 0 {
		t.Errorf("crew left in demolished room = %d, want 0", n)
	}
	if !hasMessage(g, "Demolished Life Support.") {
		t.Errorf("Messages = %q, want demolition line", g.Messages)
	}
}

func TestDemolishRefusedWhileStandingInRoom(t *testing.T) {
	g := newGame(t)
	r := buildLifeSupport(t, g)
	g.Player = spawnPlayer(g, r)
	g.PlayerRoom = r.ID

	g.Cursor = r.Center()
	if DemolishAtCursor(g) {
		t.Fatal("demolished the room the player stands in")
	}
	if _, ok := g.Station.Room(r.ID); !ok {
		t.Fatalf("room %d is gone after a refused demolition", r.ID)
	}
	if !hasMessage(g, "Cannot demolish Life Support while standing in it.") {
		t.Errorf("Messages = %q, want refusal", g.Messages)
	}

	Advance(g, 200)
	at := g.Grid.WorldToCell(g.Player.Center())
	if got, ok := g.Station.RoomAt(at); !ok || got.ID != r.ID {
		t.Errorf("player cell %v after 200 steps is outside room %d", at, r.ID)
	}
	if !g.Player.OnGround {
		t.Error("player.OnGround = false after 200 steps, want true")
	}
}

func TestEnteringRoomPostsMessage(t *testing.T) {
	g := newGame(t)
	r := buildLifeSupport(t, g)

	trackPlayerRoom(g, r.Center())
	g.Events.Flush()
	if g.PlayerRoom != r.ID {
		t.Errorf("PlayerRoom = %d, want %d", g.PlayerRoom, r.ID)
	}
	if !hasMessage(g, "Entered Life Support.") {
		t.Errorf("Messages = %q, want entry line", g.Messages)
	}

	trackPlayerRoom(g, world.C(0, 0))
	if g.PlayerRoom != world.NoOwner {
		t.Errorf("PlayerRoom outside = %d, want NoOwner", g.PlayerRoom)
	}
}

func TestMessageLogKeepsFive(t *testing.T) {
	g := newGame(t)
	for i := 0; i < 8; i++ {
		g.AddMessage("m")
	}
	if len(g.Messages) != 5 {
		t.Errorf("len(Messages) = %d, want 5", len(g.Messages))
	}
}

func TestAdvanceTurnLandsAfterJump(t *testing.T) {
	g := newGame(t)
	Step(g)
	y0 := g.Player.Y
	ProcessIntent(g, engineinput.Intent{Action: engineinput.ActionJump})
	AdvanceTurn(g, 4)
	if !g.Player.OnGround || g.Player.Y != y0 {
		t.Errorf("after AdvanceTurn Y = %v OnGround = %v, want %v true", g.Player.Y, g.Player.OnGround, y0)
	}
}
