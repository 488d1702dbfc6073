// Package crew spawns the wandering crew members that populate built rooms.
package crew

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"stationbuilder/pkg/engine/physics"
	"stationbuilder/pkg/game/config"
	"stationbuilder/pkg/game/rooms"
	"stationbuilder/pkg/logger"
)

// State is what a crew member is doing.
type State int

// Crew states
const (
	Idle State = iota
	Walking
)

// String returns the string representation of a state
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Walking:
		return "walking"
	default:
		return "unknown"
	}
}

// Timing ranges in seconds
const (
	MinIdle = 2.0
	MaxIdle = 4.0
	MinWalk = 1.5
	MaxWalk = 3.0
)

// Settings tunes crew movement. Speeds are pixels per step, Margin is in cells.
type Settings struct {
	WalkSpeed float64
	Margin    float64
	Width     float64
	Height    float64
}

// DefaultSettings walks slowly and keeps a cell and a half away from the side walls
var DefaultSettings = Settings{WalkSpeed: 1, Margin: 1.5, Width: 20, Height: 30}

// Member is one crew agent confined to the horizontal span of its room.
type Member struct {
	ID          int
	Room        rooms.ID
	Body        *physics.Body
	State       State
	FacingRight bool

	timer    float64
	idleTime float64
	walkTime float64
	left     float64 // leftmost centre x
	right    float64 // rightmost centre x
}

// Timer returns the seconds left in the current state
func (m *Member) Timer() float64 {
	return m.timer
}

// Bounds returns the range the member's centre x is kept within
func (m *Member) Bounds() (left, right float64) {
	return m.left, m.right
}

// Crew owns every member and steps them through the physics controller.
type Crew struct {
	ctrl     *physics.Controller
	rng      *rand.Rand
	settings Settings
	members  []*Member
	nextID   int
}

// New creates an empty crew. rng drives timers and walking directions.
func New(ctrl *physics.Controller, rng *rand.Rand, settings Settings) *Crew {
	return &Crew{ctrl: ctrl, rng: rng, settings: settings}
}

// Count returns how many members a room of the given area gets
func Count(cs config.CrewSettings, area int) int {
	return cs.Count(area)
}

// Populate spawns the room's crew evenly spaced across its floor and returns them.
func (c *Crew) Populate(r *rooms.Room, cs config.CrewSettings, cellSize int) []*Member {
	n := Count(cs, r.Area())
	if n <= 0 {
		return nil
	}
	size := float64(cellSize)
	left := float64(r.Anchor.X) * size
	right := float64(r.Anchor.X+r.Width) * size
	margin := size * c.settings.Margin
	lo, hi := left+margin, right-margin
	if lo > hi {
		lo, hi = (left+right)/2, (left+right)/2
	}
	spacing := (hi - lo) / float64(n+1)
	floor := float64(r.Anchor.Y+r.Height-1) * size

	var out []*Member
	for i := 0; i < n; i++ {
		cx := lo + spacing*float64(i+1)
		c.nextID++
		m := &Member{
			ID:          c.nextID,
			Room:        r.ID,
			Body:        physics.NewBody(cx-c.settings.Width/2, floor-c.settings.Height, c.settings.Width, c.settings.Height),
			State:       Idle,
			FacingRight: true,
			idleTime:    MinIdle + c.rng.Float64()*(MaxIdle-MinIdle),
			walkTime:    MinWalk + c.rng.Float64()*(MaxWalk-MinWalk),
			left:        lo,
			right:       hi,
		}
		m.timer = m.idleTime
		c.members = append(c.members, m)
		out = append(out, m)
	}
	logger.For("crew").WithFields(logrus.Fields{"room": r.ID, "type": r.Type, "count": n}).Debug("crew spawned")
	return out
}

// Remove drops every member of a room and returns how many left
func (c *Crew) Remove(room rooms.ID) int {
	kept := c.members[:0]
	removed := 0
	for _, m := range c.members {
		if m.Room == room {
			removed++
			continue
		}
		kept = append(kept, m)
	}
	c.members = kept
	return removed
}

// Members returns every crew member in spawn order
func (c *Crew) Members() []*Member {
	return c.members
}

// CountIn returns how many members belong to room
func (c *Crew) CountIn(room rooms.ID) int {
	n := 0
	for _, m := range c.members {
		if m.Room == room {
			n++
		}
	}
	return n
}

// Update advances every member by one physics step lasting dt seconds.
func (c *Crew) Update(dt float64) {
	for _, m := range c.members {
		c.update(m, dt)
	}
}

func (c *Crew) update(m *Member, dt float64) {
	m.timer -= dt
	if m.timer <= 0 {
		if m.State == Idle {
			m.State = Walking
			m.timer = m.walkTime
			m.FacingRight = c.rng.Intn(2) == 0
		} else {
			m.State = Idle
			m.timer = m.idleTime
		}
	}

	b := m.Body
	b.VX = 0
	if m.State == Walking {
		b.VX = c.settings.WalkSpeed
		if !m.FacingRight {
			b.VX = -b.VX
		}
	}

	cx, _ := b.Center()
	switch {
	case cx >= m.right && b.VX >= 0:
		b.X = m.right - b.W/2
		m.FacingRight = false
		if m.State == Walking {
			b.VX = -c.settings.WalkSpeed
		}
	case cx <= m.left && b.VX <= 0:
		b.X = m.left - b.W/2
		m.FacingRight = true
		if m.State == Walking {
			b.VX = c.settings.WalkSpeed
		}
	}

	before := b.X
	c.ctrl.Step(b)
	// Turn around when something blocks the walk
	if m.State == Walking && b.X == before && b.VX == 0 {
		m.FacingRight = !m.FacingRight
	}
}
