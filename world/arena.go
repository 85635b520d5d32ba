package world

import (
	"math"
)

// TileSize is the side of one arena tile in world units.
const TileSize = 32

// TileKind classifies one arena tile.
type TileKind int

const (
	TileFloor TileKind = iota
	TileWall
	TileWater
)

// Blocking reports whether a mover may not overlap this tile. Water blocks
// exactly like wall so CanMoveTo stays the single collision authority for
// every entity kind.
func (k TileKind) Blocking() bool {
	return k != TileFloor
}

// Arena is a rectangular tile grid, row-major. It answers the movement
// validity and tile queries the combat core and the shell consume.
type Arena struct {
	Width  int
	Height int
	tiles  []TileKind
}

// NewArena creates an all-floor arena with a solid wall border.
func NewArena(width, height int) *Arena {
	a := &Arena{
		Width:  width,
		Height: height,
		tiles:  make([]TileKind, width*height),
	}
	for tx := 0; tx < width; tx++ {
		a.SetTile(tx, 0, TileWall)
		a.SetTile(tx, height-1, TileWall)
	}
	for ty := 0; ty < height; ty++ {
		a.SetTile(0, ty, TileWall)
		a.SetTile(width-1, ty, TileWall)
	}
	return a
}

// Tile returns the tile at grid coordinates. Out-of-bounds reads as wall.
func (a *Arena) Tile(tx, ty int) TileKind {
	if tx < 0 || ty < 0 || tx >= a.Width || ty >= a.Height {
		return TileWall
	}
	return a.tiles[ty*a.Width+tx]
}

// SetTile writes the tile at grid coordinates. Out-of-bounds writes are
// dropped.
func (a *Arena) SetTile(tx, ty int, k TileKind) {
	if tx < 0 || ty < 0 || tx >= a.Width || ty >= a.Height {
		return
	}
	a.tiles[ty*a.Width+tx] = k
}

// TileAt returns the tile under a world-space point.
func (a *Arena) TileAt(x, y float64) TileKind {
	return a.Tile(int(math.Floor(x/TileSize)), int(math.Floor(y/TileSize)))
}

// CanMoveTo reports whether a w x h rectangle centered on (x, y) lies fully
// inside the arena and overlaps no blocking tile.
func (a *Arena) CanMoveTo(x, y, w, h float64) bool {
	left := x - w/2
	top := y - h/2
	right := x + w/2
	bottom := y + h/2

	pw, ph := a.PixelSize()
	if left < 0 || top < 0 || right > pw || bottom > ph {
		return false
	}

	// The -1e-9 keeps a rect whose edge sits exactly on a tile boundary from
	// sampling the next tile over.
	minTX := int(math.Floor(left / TileSize))
	minTY := int(math.Floor(top / TileSize))
	maxTX := int(math.Floor((right - 1e-9) / TileSize))
	maxTY := int(math.Floor((bottom - 1e-9) / TileSize))

	for ty := minTY; ty <= maxTY; ty++ {
		for tx := minTX; tx <= maxTX; tx++ {
			if a.Tile(tx, ty).Blocking() {
				return false
			}
		}
	}
	return true
}

// PixelSize returns the arena extent in world units.
func (a *Arena) PixelSize() (float64, float64) {
	return float64(a.Width) * TileSize, float64(a.Height) * TileSize
}

// Center returns the world-space center of the arena, the conventional
// player start.
func (a *Arena) Center() (float64, float64) {
	pw, ph := a.PixelSize()
	return pw / 2, ph / 2
}
