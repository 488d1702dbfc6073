// Package physics moves axis-aligned bodies through a world.Grid with gravity, solid walls
// and one-way platforms.
package physics

import "math"

// Body is an axis-aligned rectangle in pixel space. X, Y is the top-left corner.
// Velocities are in pixels per step.
type Body struct {
	X, Y   float64
	W, H   float64
	VX, VY float64

	OnGround bool

	dropping  bool
	dropTicks int
	dropRow   int
}

// NewBody creates a body of the given size with its top-left corner at x, y
func NewBody(x, y, w, h float64) *Body {
	return &Body{X: x, Y: y, W: w, H: h}
}

// Bottom returns the y coordinate of the body's feet
func (b *Body) Bottom() float64 {
	return b.Y + b.H
}

// Right returns the x coordinate of the body's right edge
func (b *Body) Right() float64 {
	return b.X + b.W
}

// Center returns the centre of the body
func (b *Body) Center() (x, y float64) {
	return b.X + b.W/2, b.Y + b.H/2
}

// IsDropping reports whether the body is currently passing through platforms
func (b *Body) IsDropping() bool {
	return b.dropping
}

// DropTicksLeft returns the remaining drop-through duration in steps
func (b *Body) DropTicksLeft() int {
	return b.dropTicks
}

func (b *Body) endDrop() {
	b.dropping = false
	b.dropTicks = 0
	b.dropRow = 0
}

// spanCells returns the first and last cell indices covered by [lo, hi) along one axis.
func spanCells(lo, hi, size float64) (first, last int) {
	return int(math.Floor(lo / size)), int(math.Floor((hi - epsilon) / size))
}
