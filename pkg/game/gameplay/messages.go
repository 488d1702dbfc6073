package gameplay

import (
	"errors"

	"github.com/leonelquinteros/gotext"

	"stationbuilder/pkg/engine/world"
	"stationbuilder/pkg/game/building"
	"stationbuilder/pkg/game/config"
	"stationbuilder/pkg/game/decor"
	"stationbuilder/pkg/game/events"
	"stationbuilder/pkg/game/renderer"
	"stationbuilder/pkg/game/resources"
	"stationbuilder/pkg/game/rooms"
	"stationbuilder/pkg/game/state"
)

// subscribe wires the game's reactions to station messages
func subscribe(g *state.Game) {
	g.Events.Subscribe(events.RoomBuilt, func(m events.Message) {
		r, ok := g.Station.Room(m.Room)
		if !ok {
			return
		}
		if rt, ok := g.Catalog.Room(r.Type); ok {
			g.Crew.Populate(r, rt.Crew, g.Grid.CellSize())
		}
		logMessage(g, "%s", gotext.Get("Built ROOM{%s}.", r.Name))
	})

	g.Events.Subscribe(events.RoomDemolished, func(m events.Message) {
		g.Crew.Remove(m.Room)
		if g.PlayerRoom == m.Room {
			g.PlayerRoom = world.NoOwner
		}
		logMessage(g, "%s", gotext.Get("Demolished ROOM{%s}.", roomName(g.Catalog, m.RoomType)))
	})

	g.Events.Subscribe(events.BuildFailed, func(m events.Message) {
		logMessage(g, "%s", describeBuildError(g.Catalog, m))
	})

	g.Events.Subscribe(events.RoomEntered, func(m events.Message) {
		logMessage(g, "%s", gotext.Get("Entered ROOM{%s}.", roomName(g.Catalog, m.RoomType)))
	})

	for _, kind := range []events.Kind{
		events.ResourceLow, events.ResourceWarning, events.ResourceCritical,
		events.ResourceDepleted, events.ResourceRestored,
	} {
		g.Events.Subscribe(kind, func(m events.Message) {
			logMessage(g, "%s", describeResource(m))
		})
	}
}

// roomName returns the display name of a room type id
func roomName(cat *config.Catalog, id string) string {
	if rt, ok := cat.Room(id); ok {
		return rt.Name
	}
	return id
}

// describeBuildError turns a failed build into a player-facing line
func describeBuildError(cat *config.Catalog, m events.Message) string {
	name := roomName(cat, m.RoomType)
	switch {
	case errors.Is(m.Err, building.ErrInsufficientResources):
		rt, _ := cat.Room(m.RoomType)
		cost := resources.Amounts{}
		if rt != nil {
			cost = rt.Cost()
		}
		return gotext.Get("Not enough resources for ROOM{%s} (needs %s).", name, cost.String())
	case errors.Is(m.Err, building.ErrOverlap):
		return gotext.Get("ROOM{%s} would overlap another room.", name)
	case errors.Is(m.Err, world.ErrOutOfBounds):
		return gotext.Get("ROOM{%s} does not fit inside the station grid.", name)
	case errors.Is(m.Err, building.ErrDisconnected):
		return gotext.Get("ROOM{%s} must share a wall with an existing room.", name)
	case errors.Is(m.Err, rooms.ErrInvalidDoorPlacement):
		return gotext.Get("No room for a door between ROOM{%s} and its neighbours.", name)
	case errors.Is(m.Err, decor.ErrPlacementInfeasible):
		return gotext.Get("ROOM{%s} is too cramped for its equipment.", name)
	case errors.Is(m.Err, building.ErrUnknownRoomType):
		return gotext.Get("Unknown room type %s.", m.RoomType)
	default:
		return gotext.Get("Could not build ROOM{%s}.", name)
	}
}

// describeResource turns a threshold crossing into a player-facing line
func describeResource(m events.Message) string {
	pct := int(m.Percent + 0.5)
	switch m.Kind {
	case events.ResourceLow:
		return gotext.Get("ITEM{%s} is low (%d%%).", m.Resource, pct)
	case events.ResourceWarning:
		return gotext.Get("ITEM{%s} is running out (%d%%).", m.Resource, pct)
	case events.ResourceCritical:
		return gotext.Get("ITEM{%s} is critical (%d%%)!", m.Resource, pct)
	case events.ResourceDepleted:
		return gotext.Get("ITEM{%s} is depleted!", m.Resource)
	case events.ResourceRestored:
		return gotext.Get("ITEM{%s} is back to normal.", m.Resource)
	default:
		return m.String()
	}
}

// alertKind maps a band change to the message kind announcing it
func alertKind(a resources.Alert) events.Kind {
	if a.Restored() {
		return events.ResourceRestored
	}
	switch a.To {
	case resources.LevelLow:
		return events.ResourceLow
	case resources.LevelWarning:
		return events.ResourceWarning
	case resources.LevelCritical:
		return events.ResourceCritical
	default:
		return events.ResourceDepleted
	}
}

// logMessage adds a formatted message to the game log
func logMessage(g *state.Game, msg string, a ...any) {
	formatted := renderer.ApplyMarkup(msg, a...)
	g.AddMessage(formatted)
}
