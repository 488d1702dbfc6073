// Package ebiten provides an Ebiten-based 2D graphical renderer for the station.
package ebiten

import "image/color"

// Color palette for the game - brighter colors for visibility
var (
	colorBackground    = color.RGBA{15, 15, 26, 255}    // Space
	colorHUDBackground = color.RGBA{26, 26, 46, 255}    // Dark blue-gray
	colorPlayer        = color.RGBA{0, 255, 0, 255}     // Bright green
	colorDropping      = color.RGBA{120, 255, 200, 255} // Player while passing a platform
	colorCrew          = color.RGBA{255, 230, 140, 255} // Pale yellow
	colorDoor          = color.RGBA{255, 255, 0, 255}   // Bright yellow
	colorDecoration    = color.RGBA{220, 170, 255, 255} // Bright purple
	colorCursor        = color.RGBA{100, 200, 255, 90}  // Translucent cyan footprint
	colorCursorBlocked = color.RGBA{255, 80, 80, 90}    // Translucent red over occupied cells
	colorDefaultWall   = color.RGBA{60, 60, 80, 255}    // Walls without a theme
	colorDefaultFloor  = color.RGBA{100, 100, 120, 255} // Floors without a theme
)

// Tile shading, as fractions of a tile or of the theme colour
const (
	floorShade        = 0.45
	decorationInset   = 0.15
	platformThickness = 0.25
)

// Tile and window sizes
const (
	defaultTileSize = 16
	hudHeight       = 128
	hudLineHeight   = 16
	hudPadding      = 8
)
