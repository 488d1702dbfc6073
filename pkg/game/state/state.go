// Package state holds the mutable session state shared by gameplay, renderers and devtools.
package state

import (
	"stationbuilder/pkg/engine/physics"
	"stationbuilder/pkg/engine/world"
	"stationbuilder/pkg/game/building"
	"stationbuilder/pkg/game/config"
	"stationbuilder/pkg/game/crew"
	"stationbuilder/pkg/game/events"
	"stationbuilder/pkg/game/resources"
)

// Mode selects which intents the player's keys drive
type Mode int

// Modes
const (
	ModePlay Mode = iota
	ModeBuild
)

// String returns the string representation of a mode
func (m Mode) String() string {
	if m == ModeBuild {
		return "build"
	}
	return "play"
}

// StepsPerSecond is the fixed simulation rate
const StepsPerSecond = 60

// Game represents one running station session
type Game struct {
	Catalog *config.Catalog
	Grid    *world.Grid
	Station *building.Manager
	Ledger  *resources.Ledger
	Monitor *resources.Monitor
	Events  *events.Dispatcher
	Physics *physics.Controller
	Crew    *crew.Crew

	Player     *physics.Body
	PlayerRoom world.OwnerID // room the player's centre is in, NoOwner outside

	// MoveDir is the held horizontal input: -1 left, 0 none, 1 right
	MoveDir int

	Mode     Mode
	Cursor   world.Coord
	Selected int // index into Catalog.RoomTypes.IDs()

	Messages []string

	Tick int
	Seed int64

	Quit bool
}

// NewGame creates a game around a catalog; gameplay.BuildGame wires the rest
func NewGame(cat *config.Catalog) *Game {
	return &Game{
		Catalog:  cat,
		Messages: make([]string, 0),
	}
}

// AddMessage adds a message to the game's message log
func (g *Game) AddMessage(msg string) {
	const maxMessages = 5
	g.Messages = append(g.Messages, msg)

	// Keep only the last maxMessages
	if len(g.Messages) > maxMessages {
		g.Messages = g.Messages[len(g.Messages)-maxMessages:]
	}
}

// ClearMessages clears all messages
func (g *Game) ClearMessages() {
	g.Messages = make([]string, 0)
}

// SelectedRoomType returns the room type picked in build mode
func (g *Game) SelectedRoomType() *config.RoomType {
	ids := g.Catalog.RoomTypes.IDs()
	if len(ids) == 0 {
		return nil
	}
	rt, _ := g.Catalog.Room(ids[g.Selected%len(ids)])
	return rt
}

// CycleRoomType advances the build selection and wraps around
func (g *Game) CycleRoomType() *config.RoomType {
	if n := g.Catalog.RoomTypes.Len(); n > 0 {
		g.Selected = (g.Selected + 1) % n
	}
	return g.SelectedRoomType()
}

// ToggleMode switches between play and build mode
func (g *Game) ToggleMode() Mode {
	if g.Mode == ModePlay {
		g.Mode = ModeBuild
	} else {
		g.Mode = ModePlay
	}
	return g.Mode
}

// Elapsed returns the simulated time in seconds
func (g *Game) Elapsed() float64 {
	return float64(g.Tick) / StepsPerSecond
}
