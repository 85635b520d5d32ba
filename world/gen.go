package world

import (
	"math"
	"math/rand"
)

// GenParams controls procedural arena generation. Values come from the arena
// prefab spec; the rng comes from the shell so a seed reproduces the map.
type GenParams struct {
	Width  int
	Height int
	// ObstacleDensity is the fraction of interior tiles seeded with wall
	// blobs, in [0, 1].
	ObstacleDensity float64
	// WaterPools is the number of random-walk water blobs carved into the
	// interior.
	WaterPools int
	// ClearRadius keeps a circle of floor around the arena center so the
	// player never starts inside an obstacle, in world units.
	ClearRadius float64
}

// Generate builds a bordered arena with scattered wall blobs and water
// pools. The same params and rng state always produce the same arena.
func Generate(params GenParams, rng *rand.Rand) *Arena {
	a := NewArena(params.Width, params.Height)

	interior := (params.Width - 2) * (params.Height - 2)
	seeds := int(float64(interior) * params.ObstacleDensity)
	for i := 0; i < seeds; i++ {
		tx := 1 + rng.Intn(params.Width-2)
		ty := 1 + rng.Intn(params.Height-2)
		a.SetTile(tx, ty, TileWall)
		// Grow roughly half the seeds into 2-tile blobs so obstacles read as
		// chunks instead of salt-and-pepper noise.
		if rng.Intn(2) == 0 {
			dx, dy := randStep(rng)
			a.setInterior(tx+dx, ty+dy, TileWall)
		}
	}

	for i := 0; i < params.WaterPools; i++ {
		tx := 1 + rng.Intn(params.Width-2)
		ty := 1 + rng.Intn(params.Height-2)
		steps := 4 + rng.Intn(8)
		for s := 0; s < steps; s++ {
			a.setInterior(tx, ty, TileWater)
			dx, dy := randStep(rng)
			tx += dx
			ty += dy
		}
	}

	a.clearAroundCenter(params.ClearRadius)
	return a
}

func randStep(rng *rand.Rand) (int, int) {
	switch rng.Intn(4) {
	case 0:
		return 1, 0
	case 1:
		return -1, 0
	case 2:
		return 0, 1
	}
	return 0, -1
}

// setInterior writes a tile only when it isn't part of the border.
func (a *Arena) setInterior(tx, ty int, k TileKind) {
	if tx <= 0 || ty <= 0 || tx >= a.Width-1 || ty >= a.Height-1 {
		return
	}
	a.SetTile(tx, ty, k)
}

// clearAroundCenter restores floor in a circle around the arena center.
func (a *Arena) clearAroundCenter(radius float64) {
	if radius <= 0 {
		return
	}
	cx, cy := a.Center()
	for ty := 1; ty < a.Height-1; ty++ {
		for tx := 1; tx < a.Width-1; tx++ {
			x := (float64(tx) + 0.5) * TileSize
			y := (float64(ty) + 0.5) * TileSize
			if math.Hypot(x-cx, y-cy) <= radius {
				a.SetTile(tx, ty, TileFloor)
			}
		}
	}
}
