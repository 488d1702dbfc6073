package gameplay

import (
	"stationbuilder/pkg/engine/world"
	"stationbuilder/pkg/game/events"
	"stationbuilder/pkg/game/resources"
	"stationbuilder/pkg/game/state"
)

// Step advances the simulation by one fixed step: player, crew, economy, then messages.
// The held move direction is consumed so terminal key presses act as single nudges.
func Step(g *state.Game) {
	dt := 1.0 / state.StepsPerSecond

	g.Player.VX = float64(g.MoveDir) * g.Catalog.Physics.PlayerSpeed
	before := g.Grid.WorldToCell(g.Player.Center())
	g.Physics.Step(g.Player)
	g.Player.VX = 0
	if after := g.Grid.WorldToCell(g.Player.Center()); after != before {
		g.Events.Post(events.Message{Kind: events.PlayerMoved, Anchor: after})
		trackPlayerRoom(g, after)
	}

	g.Crew.Update(dt)

	resources.Tick(g.Ledger, g.Station.Producers(), dt)
	for _, a := range g.Monitor.Check(g.Ledger) {
		g.Events.Post(events.Message{
			Kind:     alertKind(a),
			Resource: string(a.Resource),
			Percent:  a.Percent,
		})
	}

	g.Events.Flush()
	g.Tick++
}

// Advance runs n steps and clears the held move direction afterwards
func Advance(g *state.Game, n int) {
	for i := 0; i < n; i++ {
		Step(g)
	}
	g.MoveDir = 0
}

// maxSettleSteps bounds how long AdvanceTurn waits for the player to land
const maxSettleSteps = 2 * state.StepsPerSecond

// AdvanceTurn runs n steps, then keeps stepping until the player lands. Turn-based
// frontends use it so a jump resolves within one key press.
func AdvanceTurn(g *state.Game, n int) {
	Advance(g, n)
	for i := 0; i < maxSettleSteps && !g.Player.OnGround; i++ {
		Step(g)
	}
}

// Jump launches the player when standing on something
func Jump(g *state.Game) bool {
	if !g.Physics.IsOnGround(g.Player) {
		return false
	}
	g.Player.VY = g.Catalog.Physics.JumpVelocity
	g.Player.OnGround = false
	return true
}

// Drop starts falling through the platform under the player
func Drop(g *state.Game) bool {
	return g.Physics.RequestDrop(g.Player)
}

// trackPlayerRoom posts enter/exit messages when the player's centre changes rooms
func trackPlayerRoom(g *state.Game, at world.Coord) {
	now := world.NoOwner
	if r, ok := g.Station.RoomAt(at); ok {
		now = r.ID
	}
	if now == g.PlayerRoom {
		return
	}
	if prev, ok := g.Station.Room(g.PlayerRoom); ok {
		g.Events.Post(events.Message{Kind: events.RoomExited, Room: prev.ID, RoomType: prev.Type})
	}
	if r, ok := g.Station.Room(now); ok {
		g.Events.Post(events.Message{Kind: events.RoomEntered, Room: r.ID, RoomType: r.Type})
	}
	g.PlayerRoom = now
}
