package gameplay

import (
	"github.com/leonelquinteros/gotext"

	engineinput "stationbuilder/pkg/engine/input"
	"stationbuilder/pkg/engine/world"
	"stationbuilder/pkg/game/devtools"
	"stationbuilder/pkg/game/events"
	"stationbuilder/pkg/game/state"
)

// ProcessIntent handles a high-level input intent from the tiered input system.
// Movement intents set the held direction for the next Step; build intents act immediately.
func ProcessIntent(g *state.Game, intent engineinput.Intent) {
	switch intent.Action {
	case engineinput.ActionNone:
		return

	case engineinput.ActionQuit:
		g.Quit = true
		return

	case engineinput.ActionDump:
		path, err := devtools.DumpMapToFile(g)
		if err != nil {
			logMessage(g, "%s", gotext.Get("Map dump failed: %v", err))
		} else {
			logMessage(g, "%s", gotext.Get("Map dumped to ITEM{%s}", path))
		}
		return

	case engineinput.ActionToggleBuild:
		mode := g.ToggleMode()
		g.MoveDir = 0
		g.Events.Post(events.Message{Kind: events.BuildModeToggled})
		if mode == state.ModeBuild {
			logMessage(g, "%s", gotext.Get("Build mode: ROOM{%s}", g.SelectedRoomType().Name))
		} else {
			logMessage(g, "%s", gotext.Get("Back to the deck."))
		}
		return
	}

	if g.Mode == state.ModeBuild {
		processBuildIntent(g, intent)
		return
	}
	processPlayIntent(g, intent)
}

func processPlayIntent(g *state.Game, intent engineinput.Intent) {
	switch intent.Action {
	case engineinput.ActionMoveLeft:
		g.MoveDir = -1
	case engineinput.ActionMoveRight:
		g.MoveDir = 1
	case engineinput.ActionJump:
		Jump(g)
	case engineinput.ActionDrop:
		Drop(g)
	}
}

func processBuildIntent(g *state.Game, intent engineinput.Intent) {
	switch intent.Action {
	case engineinput.ActionCursorUp:
		MoveCursor(g, world.North)
	case engineinput.ActionCursorDown:
		MoveCursor(g, world.South)
	case engineinput.ActionCursorLeft, engineinput.ActionMoveLeft:
		MoveCursor(g, world.West)
	case engineinput.ActionCursorRight, engineinput.ActionMoveRight:
		MoveCursor(g, world.East)
	case engineinput.ActionCycleRoom:
		rt := g.CycleRoomType()
		logMessage(g, "%s", gotext.Get("Selected ROOM{%s} (%s)", rt.Name, rt.Cost().String()))
	case engineinput.ActionBuild:
		BuildAtCursor(g)
	case engineinput.ActionDemolish:
		DemolishAtCursor(g)
	}
}

// MoveCursor moves the build cursor one cell, staying on the grid
func MoveCursor(g *state.Game, d world.Direction) {
	next := g.Cursor.Step(d)
	if g.Grid.InBounds(next) {
		g.Cursor = next
	}
}

// BuildAtCursor tries to build the selected room type anchored at the cursor.
// The outcome is reported through the dispatcher.
func BuildAtCursor(g *state.Game) bool {
	rt := g.SelectedRoomType()
	if rt == nil {
		return false
	}
	_, err := g.Station.TryBuild(rt.ID, g.Cursor)
	g.Events.Flush()
	return err == nil
}

// DemolishAtCursor removes the room under the cursor. The room the player stands in is kept.
func DemolishAtCursor(g *state.Game) bool {
	r, ok := g.Station.RoomAt(g.Cursor)
	if !ok {
		logMessage(g, "%s", gotext.Get("Nothing to demolish here."))
		return false
	}
	name := r.Name
	if r.Contains(g.Grid.WorldToCell(g.Player.Center())) {
		logMessage(g, "%s", gotext.Get("Cannot demolish ROOM{%s} while standing in it.", name))
		return false
	}
	if err := g.Station.Demolish(r.ID); err != nil {
		logMessage(g, "%s", gotext.Get("Cannot demolish ROOM{%s}: %v", name, err))
		return false
	}
	g.Events.Flush()
	return true
}
