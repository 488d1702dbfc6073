// Package events carries game messages between components. Messages are queued with Post
// and delivered synchronously, in posting order, when the owner of the step calls Flush.
package events

import (
	"fmt"

	"stationbuilder/pkg/engine/world"
)

// Kind identifies what happened.
type Kind int

// Message kinds
const (
	RoomBuilt Kind = iota
	BuildFailed
	RoomDemolished
	RoomEntered
	RoomExited
	ResourceLow
	ResourceWarning
	ResourceCritical
	ResourceDepleted
	ResourceRestored
	BuildModeToggled
	PlayerMoved
)

// String returns the string representation of a kind
func (k Kind) String() string {
	switch k {
	case RoomBuilt:
		return "room_built"
	case BuildFailed:
		return "build_failed"
	case RoomDemolished:
		return "room_demolished"
	case RoomEntered:
		return "room_entered"
	case RoomExited:
		return "room_exited"
	case ResourceLow:
		return "resource_low"
	case ResourceWarning:
		return "resource_warning"
	case ResourceCritical:
		return "resource_critical"
	case ResourceDepleted:
		return "resource_depleted"
	case ResourceRestored:
		return "resource_restored"
	case BuildModeToggled:
		return "build_mode_toggled"
	case PlayerMoved:
		return "player_moved"
	default:
		return "unknown"
	}
}

// Message is one queued notification. Only the fields relevant to Kind are set.
type Message struct {
	Kind     Kind
	Room     world.OwnerID
	RoomType string
	Anchor   world.Coord
	Resource string
	Percent  float64
	Err      error
}

// String returns a compact description for logs and the dev dump
func (m Message) String() string {
	switch m.Kind {
	case RoomBuilt, RoomDemolished, RoomEntered, RoomExited:
		return fmt.Sprintf("%v room=%d type=%s", m.Kind, m.Room, m.RoomType)
	case BuildFailed:
		return fmt.Sprintf("%v type=%s at=%v: %v", m.Kind, m.RoomType, m.Anchor, m.Err)
	case ResourceLow, ResourceWarning, ResourceCritical, ResourceDepleted, ResourceRestored:
		return fmt.Sprintf("%v %s=%.0f%%", m.Kind, m.Resource, m.Percent)
	default:
		return m.Kind.String()
	}
}

// Handler receives delivered messages.
type Handler func(Message)

// Dispatcher queues messages and delivers them on Flush. It is not safe for concurrent use;
// the game loop owns it.
type Dispatcher struct {
	queue    []Message
	handlers map[Kind][]Handler
	all      []Handler
}

// NewDispatcher creates an empty dispatcher
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[Kind][]Handler)}
}

// Subscribe registers h for one kind
func (d *Dispatcher) Subscribe(kind Kind, h Handler) {
	d.handlers[kind] = append(d.handlers[kind], h)
}

// SubscribeAll registers h for every kind. Catch-all handlers run after kind handlers.
func (d *Dispatcher) SubscribeAll(h Handler) {
	d.all = append(d.all, h)
}

// Post queues m for the next Flush
func (d *Dispatcher) Post(m Message) {
	d.queue = append(d.queue, m)
}

// Pending returns the number of queued messages
func (d *Dispatcher) Pending() int {
	return len(d.queue)
}

// Flush delivers queued messages in posting order and returns how many were delivered.
// Messages posted by handlers during the flush are delivered after the ones already queued.
func (d *Dispatcher) Flush() int {
	n := 0
	for len(d.queue) > 0 {
		m := d.queue[0]
		d.queue = d.queue[1:]
		for _, h := range d.handlers[m.Kind] {
			h(m)
		}
		for _, h := range d.all {
			h(m)
		}
		n++
	}
	d.queue = nil
	return n
}
