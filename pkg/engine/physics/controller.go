package physics

import (
	"math"

	"stationbuilder/pkg/engine/world"
)

const epsilon = 1e-6

// Config tunes the controller. Speeds are in pixels per step.
type Config struct {
	Gravity          float64
	MaxFallSpeed     float64
	GroundTolerance  float64
	DropThroughTicks int
}

// DefaultConfig mirrors the feel of the original player controller at 60 steps per second.
func DefaultConfig() Config {
	return Config{
		Gravity:          0.8,
		MaxFallSpeed:     15,
		GroundTolerance:  1,
		DropThroughTicks: 15,
	}
}

// Controller resolves body movement against a grid. It only reads the grid.
type Controller struct {
	grid *world.Grid
	cfg  Config
}

// NewController creates a controller over g
func NewController(g *world.Grid, cfg Config) *Controller {
	return &Controller{grid: g, cfg: cfg}
}

// Config returns the controller settings
func (c *Controller) Config() Config {
	return c.cfg
}

// Step advances b by one fixed step: gravity, horizontal move, vertical move, clamp, ground probe.
func (c *Controller) Step(b *Body) {
	b.VY += c.cfg.Gravity
	if c.cfg.MaxFallSpeed > 0 && b.VY > c.cfg.MaxFallSpeed {
		b.VY = c.cfg.MaxFallSpeed
	}

	if b.dropping {
		if b.VY < 0 {
			b.endDrop()
		} else {
			b.dropTicks--
		}
	}

	c.moveX(b)
	c.moveY(b)
	c.clamp(b)

	if b.dropping {
		size := float64(c.grid.CellSize())
		if b.Y >= float64(b.dropRow+1)*size || b.dropTicks <= 0 {
			b.endDrop()
		}
	}

	b.OnGround = c.groundBelow(b)
}

// RequestDrop starts a drop-through if b is standing on a platform. It returns true when
// the drop started.
func (c *Controller) RequestDrop(b *Body) bool {
	if !b.OnGround || b.dropping {
		return false
	}
	size := float64(c.grid.CellSize())
	row := int(math.Floor((b.Bottom() + c.cfg.GroundTolerance) / size))
	first, last := spanCells(b.X, b.Right(), size)
	onPlatform := false
	for col := first; col <= last; col++ {
		at := world.C(col, row)
		if c.grid.IsBlocking(at) || c.solidOutside(at) {
			return false
		}
		if c.grid.IsOneWay(at) {
			onPlatform = true
		}
	}
	if !onPlatform {
		return false
	}
	b.dropping = true
	b.dropTicks = c.cfg.DropThroughTicks
	b.dropRow = row
	b.OnGround = false
	return true
}

// IsOnGround re-probes the ground under b without moving it
func (c *Controller) IsOnGround(b *Body) bool {
	return c.groundBelow(b)
}

// solidOutside treats everything beyond the grid as wall.
func (c *Controller) solidOutside(at world.Coord) bool {
	return !c.grid.InBounds(at)
}

func (c *Controller) wallAt(at world.Coord) bool {
	return c.solidOutside(at) || c.grid.IsBlocking(at)
}

// standable reports whether at stops a body falling onto it from above.
func (c *Controller) standable(b *Body, at world.Coord) bool {
	if c.wallAt(at) {
		return true
	}
	return c.grid.IsOneWay(at) && !b.dropping
}

func (c *Controller) moveX(b *Body) {
	if b.VX == 0 {
		return
	}
	size := float64(c.grid.CellSize())
	rowFirst, rowLast := spanCells(b.Y, b.Bottom(), size)

	if b.VX > 0 {
		oldRight := b.Right()
		newRight := oldRight + b.VX
		from := int(math.Ceil((oldRight - epsilon) / size))
		to := int(math.Floor((newRight - epsilon) / size))
		for col := from; col <= to; col++ {
			if c.columnBlocked(col, rowFirst, rowLast) {
				b.X = float64(col)*size - b.W
				b.VX = 0
				return
			}
		}
		b.X += b.VX
		return
	}

	oldLeft := b.X
	newLeft := oldLeft + b.VX
	from := int(math.Floor((oldLeft+epsilon)/size)) - 1
	to := int(math.Floor(newLeft / size))
	for col := from; col >= to; col-- {
		if c.columnBlocked(col, rowFirst, rowLast) {
			b.X = float64(col+1) * size
			b.VX = 0
			return
		}
	}
	b.X += b.VX
}

func (c *Controller) columnBlocked(col, rowFirst, rowLast int) bool {
	for row := rowFirst; row <= rowLast; row++ {
		if c.wallAt(world.C(col, row)) {
			return true
		}
	}
	return false
}

func (c *Controller) moveY(b *Body) {
	if b.VY == 0 {
		return
	}
	size := float64(c.grid.CellSize())
	colFirst, colLast := spanCells(b.X, b.Right(), size)

	if b.VY > 0 {
		oldBottom := b.Bottom()
		newBottom := oldBottom + b.VY
		// Only rows whose top edge is at or below the feet can stop a fall.
		from := int(math.Ceil((oldBottom - epsilon) / size))
		to := int(math.Floor((newBottom - epsilon) / size))
		for row := from; row <= to; row++ {
			for col := colFirst; col <= colLast; col++ {
				if c.standable(b, world.C(col, row)) {
					b.Y = float64(row)*size - b.H
					b.VY = 0
					return
				}
			}
		}
		b.Y += b.VY
		return
	}

	oldTop := b.Y
	newTop := oldTop + b.VY
	from := int(math.Floor((oldTop+epsilon)/size)) - 1
	to := int(math.Floor(newTop / size))
	for row := from; row >= to; row-- {
		for col := colFirst; col <= colLast; col++ {
			if c.wallAt(world.C(col, row)) {
				b.Y = float64(row+1) * size
				b.VY = 0
				return
			}
		}
	}
	b.Y += b.VY
}

func (c *Controller) clamp(b *Body) {
	w, h := c.grid.PixelSize()
	if b.X < 0 {
		b.X = 0
		b.VX = 0
	}
	if b.X > w-b.W {
		b.X = w - b.W
		b.VX = 0
	}
	if b.Y < 0 {
		b.Y = 0
		if b.VY < 0 {
			b.VY = 0
		}
	}
	if b.Y > h-b.H {
		b.Y = h - b.H
		if b.VY > 0 {
			b.VY = 0
		}
	}
}

// groundBelow reports whether a standable cell top lies within the tolerance of b's feet.
func (c *Controller) groundBelow(b *Body) bool {
	size := float64(c.grid.CellSize())
	tol := c.cfg.GroundTolerance
	bottom := b.Bottom()
	row := int(math.Floor((bottom + tol) / size))
	top := float64(row) * size
	if top < bottom-tol || top > bottom+tol {
		return false
	}
	colFirst, colLast := spanCells(b.X, b.Right(), size)
	for col := colFirst; col <= colLast; col++ {
		if c.standable(b, world.C(col, row)) {
			return true
		}
	}
	return false
}
