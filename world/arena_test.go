package world

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParams() GenParams {
	return GenParams{
		Width:           40,
		Height:          30,
		ObstacleDensity: 0.06,
		WaterPools:      3,
		ClearRadius:     120,
	}
}

func TestNewArenaHasWallBorder(t *testing.T) {
	a := NewArena(10, 8)
	for tx := 0; tx < 10; tx++ {
		assert.Equal(t, TileWall, a.Tile(tx, 0))
		assert.Equal(t, TileWall, a.Tile(tx, 7))
	}
	for ty := 0; ty < 8; ty++ {
		assert.Equal(t, TileWall, a.Tile(0, ty))
		assert.Equal(t, TileWall, a.Tile(9, ty))
	}
	assert.Equal(t, TileFloor, a.Tile(5, 4))
}

func TestTileOutOfBoundsReadsAsWall(t *testing.T) {
	a := NewArena(10, 8)
	assert.Equal(t, TileWall, a.Tile(-1, 0))
	assert.Equal(t, TileWall, a.Tile(10, 0))
	assert.Equal(t, TileWall, a.TileAt(-5, -5))
}

func TestCanMoveToOpenFloor(t *testing.T) {
	a := NewArena(10, 8)
	cx, cy := a.Center()
	assert.True(t, a.CanMoveTo(cx, cy, 24, 24))
}

func TestCanMoveToRejectsWallOverlap(t *testing.T) {
	a := NewArena(10, 8)
	a.SetTile(5, 4, TileWall)

	// Centered on the wall tile.
	assert.False(t, a.CanMoveTo(5.5*TileSize, 4.5*TileSize, 16, 16))
	// A rect whose edge pokes into the wall tile.
	assert.False(t, a.CanMoveTo(4.5*TileSize, 4.5*TileSize, TileSize+4, 16))
	// A rect ending exactly on the wall's boundary still fits.
	assert.True(t, a.CanMoveTo(4.5*TileSize, 4.5*TileSize, TileSize, 16))
}

func TestCanMoveToRejectsOutside(t *testing.T) {
	a := NewArena(10, 8)
	pw, ph := a.PixelSize()
	assert.False(t, a.CanMoveTo(-10, 10, 8, 8))
	assert.False(t, a.CanMoveTo(pw+10, ph/2, 8, 8))
}

func TestWaterBlocksLikeWall(t *testing.T) {
	a := NewArena(10, 8)
	a.SetTile(5, 4, TileWater)
	assert.False(t, a.CanMoveTo(5.5*TileSize, 4.5*TileSize, 16, 16))
	assert.True(t, TileWater.Blocking())
}

func TestGenerateIsDeterministicPerSeed(t *testing.T) {
	a := Generate(testParams(), rand.New(rand.NewSource(7)))
	b := Generate(testParams(), rand.New(rand.NewSource(7)))

	require.Equal(t, a.Width, b.Width)
	for ty := 0; ty < a.Height; ty++ {
		for tx := 0; tx < a.Width; tx++ {
			require.Equal(t, a.Tile(tx, ty), b.Tile(tx, ty), "tile (%d,%d)", tx, ty)
		}
	}
}

func TestGenerateKeepsBorderAndClearing(t *testing.T) {
	params := testParams()
	a := Generate(params, rand.New(rand.NewSource(99)))

	for tx := 0; tx < a.Width; tx++ {
		assert.Equal(t, TileWall, a.Tile(tx, 0))
		assert.Equal(t, TileWall, a.Tile(tx, a.Height-1))
	}

	cx, cy := a.Center()
	assert.True(t, a.CanMoveTo(cx, cy, 24, 24), "spawn clearing must stay open")
	assert.Equal(t, TileFloor, a.TileAt(cx, cy))
}
