package tiles

import "stationbuilder/pkg/engine/world"

// Resolve picks the tile for c from its 8-neighbourhood. It reads the grid only, so calling it
// twice on an unchanged neighbourhood gives the same result.
//
// The variant depends on orthogonal neighbours alone; diagonals only feed the mask. When both
// cells of an opposite pair differ from the centre, the side that faces empty space is kept
// (North over South and West over East when that does not decide).
func Resolve(g *world.Grid, c world.Coord) Tile {
	center := classOf(g.Role(c))
	if center == classEmpty {
		return Tile{Variant: VariantNone}
	}

	var mask Mask
	for _, d := range world.AllDirections() {
		if classOf(g.Role(c.Step(d))) == center {
			mask = mask.with(d)
		}
	}

	n, e, s, w := !mask.Has(world.North), !mask.Has(world.East), !mask.Has(world.South), !mask.Has(world.West)
	if n && e && s && w {
		return Tile{Variant: VariantIsolated, Mask: mask}
	}

	emptyAt := func(d world.Direction) bool {
		return g.Role(c.Step(d)) == world.RoleEmpty
	}
	if n && s {
		if emptyAt(world.South) && !emptyAt(world.North) {
			n = false
		} else {
			s = false
		}
	}
	if w && e {
		if emptyAt(world.East) && !emptyAt(world.West) {
			w = false
		} else {
			e = false
		}
	}

	var v Variant
	switch {
	case n && e:
		v = VariantCornerNE
	case n && w:
		v = VariantCornerNW
	case s && e:
		v = VariantCornerSE
	case s && w:
		v = VariantCornerSW
	case n:
		v = VariantEdgeN
	case s:
		v = VariantEdgeS
	case e:
		v = VariantEdgeE
	case w:
		v = VariantEdgeW
	default:
		v = VariantFill
	}
	return Tile{Variant: v, Mask: mask}
}

// Resolver caches resolved tiles and refreshes them from the grid's dirty set.
type Resolver struct {
	tiles map[world.Coord]Tile
}

// NewResolver creates an empty resolver
func NewResolver() *Resolver {
	return &Resolver{tiles: make(map[world.Coord]Tile)}
}

// Flush re-resolves every dirty cell and clears the grid's dirty set. The grid dirties the
// 8 neighbours of each write, so their variants are refreshed as well. It returns the number
// of cells recomputed.
func (r *Resolver) Flush(g *world.Grid) int {
	dirty := g.Dirty()
	for _, c := range dirty {
		r.store(c, Resolve(g, c))
	}
	g.ClearDirty()
	return len(dirty)
}

// Rebuild recomputes every cell of the grid from scratch
func (r *Resolver) Rebuild(g *world.Grid) {
	r.tiles = make(map[world.Coord]Tile)
	g.ForEachCell(func(c world.Coord, _ world.Cell) {
		r.store(c, Resolve(g, c))
	})
	g.ClearDirty()
}

func (r *Resolver) store(c world.Coord, t Tile) {
	if t.Variant == VariantNone {
		delete(r.tiles, c)
		return
	}
	r.tiles[c] = t
}

// Tile returns the cached tile at c; cells never resolved read as VariantNone
func (r *Resolver) Tile(c world.Coord) Tile {
	return r.tiles[c]
}

// Variant returns the cached variant at c
func (r *Resolver) Variant(c world.Coord) Variant {
	return r.tiles[c].Variant
}

// Len returns the number of cached non-empty tiles
func (r *Resolver) Len() int {
	return len(r.tiles)
}
