package building

import (
	"github.com/zyedidia/generic/mapset"

	"stationbuilder/pkg/game/rooms"
)

// reachable returns the rooms reachable from start through doors, never entering skip.
func (m *Manager) reachable(start, skip rooms.ID) mapset.Set[rooms.ID] {
	visited := mapset.New[rooms.ID]()
	if _, ok := m.rooms[start]; !ok || start == skip {
		return visited
	}
	queue := []rooms.ID{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited.Has(current) {
			continue
		}
		visited.Put(current)
		r, ok := m.rooms[current]
		if !ok {
			continue
		}
		for _, n := range r.Neighbours() {
			if n != skip && !visited.Has(n) {
				queue = append(queue, n)
			}
		}
	}
	return visited
}

// ConnectedRooms returns the ids reachable from id through doors, id included, in id order
func (m *Manager) ConnectedRooms(id rooms.ID) []rooms.ID {
	var out []rooms.ID
	seen := m.reachable(id, 0)
	for _, r := range m.Rooms() {
		if seen.Has(r.ID) {
			out = append(out, r.ID)
		}
	}
	return out
}

// IsConnected reports whether every room can be reached from the starting room
func (m *Manager) IsConnected() bool {
	if len(m.rooms) == 0 {
		return true
	}
	return m.reachable(m.starting, 0).Size() == len(m.rooms)
}
