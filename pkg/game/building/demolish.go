package building

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"stationbuilder/pkg/engine/world"
	"stationbuilder/pkg/game/events"
	"stationbuilder/pkg/game/rooms"
	"stationbuilder/pkg/logger"
)

// Demolish removes a room, reclaiming its cells as empty and walling up the doors that led
// into it. The starting room and rooms whose removal would cut the station apart are refused.
// Build costs are not refunded.
func (m *Manager) Demolish(id rooms.ID) error {
	r, ok := m.rooms[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownRoom, id)
	}
	if r.IsStartingRoom {
		return fmt.Errorf("%w: room %d", ErrStartingRoom, id)
	}
	if got := m.reachable(m.starting, id).Size(); got != len(m.rooms)-1 {
		return fmt.Errorf("%w: removing room %d strands %d rooms", ErrDisconnected, id, len(m.rooms)-1-got)
	}

	for _, nid := range r.Neighbours() {
		n, ok := m.rooms[nid]
		if !ok {
			continue
		}
		for _, d := range n.RemoveDoorsTo(id) {
			for _, c := range d.Cells {
				_ = m.grid.SetCell(c, world.RoleWall)
			}
		}
	}
	r.Bounds().Each(func(c world.Coord) {
		_ = m.grid.Assign(c, world.RoleEmpty, world.NoOwner)
	})
	delete(m.rooms, id)
	m.resolver.Flush(m.grid)

	logger.For("building").WithFields(logrus.Fields{"room": id, "type": r.Type}).Info("room demolished")
	m.post(events.Message{Kind: events.RoomDemolished, Room: id, RoomType: r.Type, Anchor: r.Anchor})
	return nil
}
