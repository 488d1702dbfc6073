// Package building validates and commits rooms onto the station grid. Every build attempt
// is atomic: it either commits the room with its doors and decorations or leaves grid,
// rooms and resources exactly as they were.
package building

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"stationbuilder/pkg/engine/tiles"
	"stationbuilder/pkg/engine/world"
	"stationbuilder/pkg/game/config"
	"stationbuilder/pkg/game/decor"
	"stationbuilder/pkg/game/events"
	"stationbuilder/pkg/game/resources"
	"stationbuilder/pkg/game/rooms"
	"stationbuilder/pkg/logger"
)

// Manager is the single writer of the grid once the station exists.
type Manager struct {
	catalog  *config.Catalog
	grid     *world.Grid
	ledger   *resources.Ledger
	resolver *tiles.Resolver
	solver   *decor.Solver
	events   *events.Dispatcher

	rooms    map[rooms.ID]*rooms.Room
	nextID   rooms.ID
	starting rooms.ID
	last     Attempt
}

// NewManager creates a manager over an existing grid and ledger. dispatcher may be nil.
func NewManager(catalog *config.Catalog, grid *world.Grid, ledger *resources.Ledger, dispatcher *events.Dispatcher) *Manager {
	return &Manager{
		catalog:  catalog,
		grid:     grid,
		ledger:   ledger,
		resolver: tiles.NewResolver(),
		solver:   decor.NewSolver(),
		events:   dispatcher,
		rooms:    make(map[rooms.ID]*rooms.Room),
	}
}

// Grid returns the managed grid
func (m *Manager) Grid() *world.Grid {
	return m.grid
}

// Ledger returns the resource ledger builds are paid from
func (m *Manager) Ledger() *resources.Ledger {
	return m.ledger
}

// Resolver returns the tile resolver kept in step with the grid
func (m *Manager) Resolver() *tiles.Resolver {
	return m.resolver
}

// Catalog returns the room catalog
func (m *Manager) Catalog() *config.Catalog {
	return m.catalog
}

// LastAttempt returns the record of the most recent TryBuild call
func (m *Manager) LastAttempt() Attempt {
	return m.last
}

// TryBuild places a room of roomType with its top-left wall corner at anchor.
// On failure it returns a *BuildError and nothing observable has changed.
func (m *Manager) TryBuild(roomType string, anchor world.Coord) (*rooms.Room, error) {
	att := Attempt{RoomType: roomType, Anchor: anchor}
	r, err := m.tryBuild(&att)
	log := logger.For("building").WithFields(logrus.Fields{"type": roomType, "anchor": anchor.String()})
	if err != nil {
		failed := att.Final()
		att.enter(RolledBack)
		err = &BuildError{RoomType: roomType, Anchor: anchor, State: failed, Err: err}
		att.Err = err
		m.last = att
		log.WithError(err).Info("build rejected")
		m.post(events.Message{Kind: events.BuildFailed, RoomType: roomType, Anchor: anchor, Err: err})
		return nil, err
	}
	att.enter(Committed)
	att.Room = r.ID
	m.last = att
	log.WithFields(logrus.Fields{"room": r.ID, "doors": len(r.Doors), "decorations": len(r.Decorations)}).
		Info("room built")
	m.post(events.Message{Kind: events.RoomBuilt, Room: r.ID, RoomType: roomType, Anchor: anchor})
	return r, nil
}

func (m *Manager) tryBuild(att *Attempt) (*rooms.Room, error) {
	att.enter(Validating)
	rt, ok := m.catalog.Room(att.RoomType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRoomType, att.RoomType)
	}
	fp := rooms.Footprint(att.Anchor, rt.Width(), rt.Height())
	if !m.grid.InBounds(fp.Min) || !m.grid.InBounds(fp.Max) {
		return nil, fmt.Errorf("%w: %dx%d footprint at %v leaves the %dx%d grid",
			world.ErrOutOfBounds, rt.Width(), rt.Height(), att.Anchor, m.grid.Width(), m.grid.Height())
	}
	if c, taken := m.firstOccupied(fp); taken {
		return nil, fmt.Errorf("%w: cell %v belongs to room %d", ErrOverlap, c, m.grid.Owner(c))
	}

	// Adjacency is checked before resources, so a disconnected room never reaches ResourceCheck.
	first := len(m.rooms) == 0
	r := rooms.New(m.nextID+1, rt, att.Anchor, first)
	adjacent := m.adjacentTo(r)
	if !first && len(adjacent) == 0 {
		return nil, fmt.Errorf("%w: no room shares a wall with %v", ErrDisconnected, fp)
	}

	att.enter(ResourceCheck)
	cost := rt.Cost()
	if err := m.ledger.Deduct(cost); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInsufficientResources, err)
	}

	att.enter(Committing)
	j := newJournal(m.grid)
	undo := func() {
		writes := j.len()
		j.rollback()
		for _, n := range adjacent {
			n.RemoveDoorsTo(r.ID)
		}
		m.ledger.Refund(cost)
		m.resolver.Flush(m.grid)
		logger.For("building").WithFields(logrus.Fields{"type": att.RoomType, "writes": writes}).
			Debug("build rolled back")
	}
	for _, c := range r.ClassifyFootprint() {
		if err := j.Assign(c.At, c.Class.Role(), r.ID); err != nil {
			undo()
			return nil, err
		}
	}
	if err := m.connect(j, r, adjacent); err != nil {
		undo()
		return nil, err
	}

	att.enter(Decorating)
	if _, err := m.solver.PlaceAll(j, r, rt.Decorations); err != nil {
		undo()
		return nil, err
	}

	m.nextID = r.ID
	m.rooms[r.ID] = r
	if first {
		m.starting = r.ID
	}
	m.resolver.Flush(m.grid)
	return r, nil
}

func (m *Manager) firstOccupied(fp rooms.Rect) (world.Coord, bool) {
	var hit world.Coord
	found := false
	fp.Each(func(c world.Coord) {
		if !found && m.grid.Role(c).IsOccupied() {
			hit, found = c, true
		}
	})
	return hit, found
}

// adjacentTo returns committed rooms sharing a wall span with r, by id.
func (m *Manager) adjacentTo(r *rooms.Room) []*rooms.Room {
	var out []*rooms.Room
	for _, o := range m.Rooms() {
		if _, _, _, ok := r.Touches(o); ok {
			out = append(out, o)
		}
	}
	return out
}

// connect carves a door to the first adjacent room that can take one and then, best effort,
// to the rest. It fails only when no adjacent room accepts a door.
func (m *Manager) connect(j *journal, r *rooms.Room, adjacent []*rooms.Room) error {
	if len(adjacent) == 0 {
		return nil
	}
	joined := 0
	var firstErr error
	for _, n := range adjacent {
		if err := m.carveDoor(j, r, n); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			logger.For("building").WithError(err).WithField("neighbour", n.ID).Debug("no door to neighbour")
			continue
		}
		joined++
	}
	if joined == 0 {
		return firstErr
	}
	return nil
}

// carveDoor opens matching doors in r and n along their shared span. Doors on East and West
// walls are tried from the floor up so they stay walkable, North and South from the left.
func (m *Manager) carveDoor(j *journal, r, n *rooms.Room) error {
	side, lo, hi, ok := r.Touches(n)
	if !ok {
		return fmt.Errorf("%w: room %d does not touch room %d", rooms.ErrInvalidDoorPlacement, r.ID, n.ID)
	}
	rules := m.catalog.DoorRules
	size := rules.DoorSize
	var starts []int
	if side.IsVertical() {
		for p := lo; p+size-1 <= hi; p++ {
			starts = append(starts, p)
		}
	} else {
		for p := hi - size + 1; p >= lo; p-- {
			starts = append(starts, p)
		}
	}

	mine, theirs := r.Wall(side), n.Wall(side.Opposite())
	for _, p := range starts {
		offR, offN := mine.OffsetOf(p), theirs.OffsetOf(p)
		if r.CanPlaceDoor(side, offR, rules) != nil || n.CanPlaceDoor(side.Opposite(), offN, rules) != nil {
			continue
		}
		if !m.doorwayClear(theirs, offN, size, side) {
			continue
		}
		if _, err := r.PlaceDoor(j, side, offR, rules, n.ID); err != nil {
			return err
		}
		if _, err := n.PlaceDoor(j, side.Opposite(), offN, rules, r.ID); err != nil {
			return err
		}
		return nil
	}
	return fmt.Errorf("%w: no %d-cell door fits between room %d and room %d",
		rooms.ErrInvalidDoorPlacement, size, r.ID, n.ID)
}

// doorwayClear reports whether the cells just inside a prospective door of an existing room
// are free of decorations.
func (m *Manager) doorwayClear(seg rooms.Segment, offset, size int, inward world.Direction) bool {
	for i := 0; i < size; i++ {
		if m.grid.Role(seg.At(offset+i).Step(inward)) == world.RoleDecoration {
			return false
		}
	}
	return true
}

func (m *Manager) post(msg events.Message) {
	if m.events != nil {
		m.events.Post(msg)
	}
}

// Rooms returns every committed room ordered by id
func (m *Manager) Rooms() []*rooms.Room {
	out := make([]*rooms.Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Room returns the room with the given id
func (m *Manager) Room(id rooms.ID) (*rooms.Room, bool) {
	r, ok := m.rooms[id]
	return r, ok
}

// RoomAt returns the room owning c, if any
func (m *Manager) RoomAt(c world.Coord) (*rooms.Room, bool) {
	return m.Room(m.grid.Owner(c))
}

// StartingRoom returns the first room built, or nil before any build
func (m *Manager) StartingRoom() *rooms.Room {
	return m.rooms[m.starting]
}

// Producers returns every room as a resource producer for the economy tick
func (m *Manager) Producers() []resources.Producer {
	rs := m.Rooms()
	out := make([]resources.Producer, len(rs))
	for i, r := range rs {
		out[i] = r
	}
	return out
}

// StartingAnchor returns the anchor that centres a room of roomType on the grid
func (m *Manager) StartingAnchor(roomType string) (world.Coord, error) {
	rt, ok := m.catalog.Room(roomType)
	if !ok {
		return world.Coord{}, fmt.Errorf("%w: %q", ErrUnknownRoomType, roomType)
	}
	return m.grid.CenterPosition().Add(-rt.Width()/2, -rt.Height()/2), nil
}
