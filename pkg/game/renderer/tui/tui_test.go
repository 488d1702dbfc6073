package tui

import (
	"strings"
	"testing"

	"github.com/gookit/color"

	"stationbuilder/pkg/engine/world"
)

func TestViewportOrigin(t *testing.T) {
	tests := []struct {
		name  string
		focus world.Coord
		want  world.Coord
	}{
		{"centred", world.C(32, 20), world.C(22, 16)},
		{"top left clamps", world.C(2, 1), world.C(0, 0)},
		{"bottom right clamps", world.C(63, 39), world.C(43, 31)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := viewportOrigin(tt.focus, 9, 21, 64, 40); got != tt.want {
				t.Errorf("viewportOrigin(%v) = %v, want %v", tt.focus, got, tt.want)
			}
		})
	}

	// A viewport larger than the grid starts at the origin
	if got := viewportOrigin(world.C(5, 5), 50, 100, 64, 40); got != world.C(0, 0) {
		t.Errorf("viewportOrigin with oversized viewport = %v, want 0,0", got)
	}
}

func TestFormatText(t *testing.T) {
	tr := New()
	tr.Init()

	got := color.ClearCode(tr.FormatText("Built ROOM{%s} for ITEM{%s}.", "Life Support", "power"))
	if want := "Built Life Support for power."; got != want {
		t.Errorf("FormatText = %q, want %q", got, want)
	}

	got = tr.FormatText("BOGUS{x}")
	if !strings.HasPrefix(got, "ERROR, function not found") {
		t.Errorf("FormatText(BOGUS) = %q, want error text", got)
	}
}
