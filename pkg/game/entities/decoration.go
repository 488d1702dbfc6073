// Package entities defines the closed set of things that can be placed inside rooms.
package entities

import "fmt"

// DecorationKind enumerates every decoration the catalog may reference.
type DecorationKind int

// Decoration kinds. The catalog refers to them by Key.
const (
	DecorationUnknown DecorationKind = iota
	Bunk
	Locker
	StatusTerminal
	ReactorCore
	PowerConduit
	ControlPanel
	OxygenGenerator
	AirFilter
	Vent
	CaptainChair
	NavigationConsole
	Viewscreen
	CargoCrate
)

// DecorationTemplate is the static data for one decoration kind.
type DecorationTemplate struct {
	Key         string // catalog identifier
	Name        string // display name
	Description string
	Icon        string // single glyph for terminal maps
}

// Decorations is the data table behind DecorationKind. Indexed by kind.
var Decorations = map[DecorationKind]DecorationTemplate{
	Bunk:              {"bunk", "Bunk Bed", "Personal effects scattered on unmade sheets.", "╦"},
	Locker:            {"locker", "Footlocker", "Lock scratched, contents neatly folded.", "▣"},
	StatusTerminal:    {"status_terminal", "Status Terminal", "Crew assignments scroll past.", "▤"},
	ReactorCore:       {"reactor_core", "Reactor Core", "Control rods hum inside the shielding.", "☢"},
	PowerConduit:      {"power_conduit", "Power Conduit", "Thick cables run along the bulkhead.", "═"},
	ControlPanel:      {"control_panel", "Control Panel", "Diagnostic readouts, all green for now.", "≡"},
	OxygenGenerator:   {"oxygen_generator", "Oxygen Generator", "Electrolysis cells bubble steadily.", "◎"},
	AirFilter:         {"air_filter", "Air Recycler", "Filters wheeze with each cycle.", "※"},
	Vent:              {"vent", "Vent", "A steady draft of recycled air.", "≋"},
	CaptainChair:      {"captain_chair", "Captain's Chair", "A command chair faces the main viewscreen.", "Ω"},
	NavigationConsole: {"navigation_console", "Navigation Console", "Star charts flicker on the display.", "◈"},
	Viewscreen:        {"viewscreen", "Viewscreen", "The stars drift slowly past.", "▭"},
	CargoCrate:        {"cargo_crate", "Cargo Crate", "Dented metal crate, manifest unreadable.", "□"},
}

// AllDecorationKinds returns every known kind in declaration order
func AllDecorationKinds() []DecorationKind {
	kinds := make([]DecorationKind, 0, len(Decorations))
	for k := Bunk; k <= CargoCrate; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// ParseDecorationKind looks up a kind by catalog key
func ParseDecorationKind(key string) (DecorationKind, error) {
	for _, k := range AllDecorationKinds() {
		if Decorations[k].Key == key {
			return k, nil
		}
	}
	return DecorationUnknown, fmt.Errorf("unknown decoration %q", key)
}

// String returns the catalog key
func (k DecorationKind) String() string {
	if t, ok := Decorations[k]; ok {
		return t.Key
	}
	return "unknown"
}

// Template returns the static data for k
func (k DecorationKind) Template() DecorationTemplate {
	return Decorations[k]
}

// IsValid returns true for kinds present in the table
func (k DecorationKind) IsValid() bool {
	_, ok := Decorations[k]
	return ok
}
