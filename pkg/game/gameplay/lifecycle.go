// Package gameplay provides core game logic for player movement, build mode and the fixed step.
package gameplay

import (
	"fmt"
	"math/rand"

	"github.com/leonelquinteros/gotext"
	"github.com/sirupsen/logrus"

	"stationbuilder/pkg/engine/physics"
	"stationbuilder/pkg/engine/world"
	"stationbuilder/pkg/game/building"
	"stationbuilder/pkg/game/config"
	"stationbuilder/pkg/game/crew"
	"stationbuilder/pkg/game/events"
	"stationbuilder/pkg/game/resources"
	"stationbuilder/pkg/game/rooms"
	"stationbuilder/pkg/game/state"
	"stationbuilder/pkg/logger"
)

// defaultPlayerSize is used when the catalog leaves physics.player_size unset
var defaultPlayerSize = [2]float64{20, 28}

// BuildGame creates a new station from a catalog: the starting room is built at the grid
// centre and the player stands on its floor.
func BuildGame(cat *config.Catalog, seed int64) (*state.Game, error) {
	g := state.NewGame(cat)
	g.Seed = seed

	g.Grid = world.NewGrid(cat.Grid.Width, cat.Grid.Height, cat.Physics.CellSize)
	g.Ledger = resources.NewLedger(cat.InitialResources(), cat.ResourceCapacity())
	g.Monitor = resources.NewMonitor()
	g.Events = events.NewDispatcher()
	g.Station = building.NewManager(cat, g.Grid, g.Ledger, g.Events)
	g.Physics = physics.NewController(g.Grid, cat.Physics.Controller())
	g.Crew = crew.New(g.Physics, rand.New(rand.NewSource(seed)), crew.DefaultSettings)

	subscribe(g)

	start := startingRoomType(cat)
	anchor, err := g.Station.StartingAnchor(start)
	if err != nil {
		return nil, err
	}
	r, err := g.Station.TryBuild(start, anchor)
	if err != nil {
		return nil, fmt.Errorf("failed to build starting room: %w", err)
	}
	g.Player = spawnPlayer(g, r)
	g.PlayerRoom = r.ID
	g.Cursor = r.Anchor.Add(r.Width, 0)

	// The opening bands are the baseline, not news
	g.Monitor.Check(g.Ledger)
	g.Events.Flush()

	g.ClearMessages()
	logMessage(g, "%s", gotext.Get("Welcome aboard ROOM{%s}.", r.Name))
	logMessage(g, "%s", gotext.Get("Press ACTION{b} for build mode."))

	logger.For("gameplay").WithFields(logrus.Fields{
		"seed":  seed,
		"start": start,
		"grid":  fmt.Sprintf("%dx%d", g.Grid.Width(), g.Grid.Height()),
	}).Info("station ready")
	return g, nil
}

// startingRoomType returns the catalog's starting room, or its first room type
func startingRoomType(cat *config.Catalog) string {
	if cat.StartingRoom != "" {
		return cat.StartingRoom
	}
	return cat.RoomTypes.IDs()[0]
}

// spawnPlayer stands a new body on the floor in the middle of r
func spawnPlayer(g *state.Game, r *rooms.Room) *physics.Body {
	size := g.Catalog.Physics.PlayerSize
	if size[0] <= 0 || size[1] <= 0 {
		size = defaultPlayerSize
	}
	cell := float64(g.Grid.CellSize())
	cx := (float64(r.Anchor.X) + float64(r.Width)/2) * cell
	floor := float64(r.Anchor.Y+r.Height-1) * cell
	b := physics.NewBody(cx-size[0]/2, floor-size[1], size[0], size[1])
	b.OnGround = true
	return b
}
