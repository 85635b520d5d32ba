package main

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avaret/nightswarm/prefabs"
)

// queryFunc adapts a plain function to the combat.SpatialQuery interface.
type queryFunc func(x, y, w, h float64) bool

func (f queryFunc) CanMoveTo(x, y, w, h float64) bool { return f(x, y, w, h) }

var openWorld = queryFunc(func(x, y, w, h float64) bool { return true })

func testPlayerSpec() *prefabs.PlayerSpec {
	return &prefabs.PlayerSpec{
		MoveSpeed:  160,
		Health:     100,
		HalfExtent: 10,
		IFrameMs:   800,
		XPPerKill:  2,
		XPBase:     10,
		XPPerLevel: 5,
	}
}

func TestPlayerMovesUnderInput(t *testing.T) {
	p := NewPlayer(cp.Vector{X: 100, Y: 100}, testPlayerSpec())

	p.Update(1000, &Input{MoveX: 1}, openWorld)

	assert.InDelta(t, 260.0, p.Pos.X, 1e-9)
	assert.InDelta(t, 100.0, p.Pos.Y, 1e-9)
}

func TestPlayerDiagonalIsNormalized(t *testing.T) {
	p := NewPlayer(cp.Vector{}, testPlayerSpec())

	p.Update(1000, &Input{MoveX: 1, MoveY: 1}, openWorld)

	want := 160 / math.Sqrt2
	assert.InDelta(t, want, p.Pos.X, 1e-9)
	assert.InDelta(t, want, p.Pos.Y, 1e-9)
	assert.InDelta(t, 160.0, p.Pos.Length(), 1e-9, "diagonal speed matches straight-line speed")
}

func TestPlayerXAxisResolvesFirst(t *testing.T) {
	// The x step is tested at the original y, then the y step is tested with
	// x already moved, the same gating order enemies use.
	var calls []cp.Vector
	probe := queryFunc(func(x, y, w, h float64) bool {
		calls = append(calls, cp.Vector{X: x, Y: y})
		return true
	})

	p := NewPlayer(cp.Vector{}, testPlayerSpec())
	p.Update(500, &Input{MoveX: 1, MoveY: 1}, probe)

	require.Len(t, calls, 2)
	assert.Zero(t, calls[0].Y, "first probe moves x at the original y")
	assert.Equal(t, p.Pos.X, calls[1].X, "second probe uses the moved x")
}

func TestPlayerWallSlide(t *testing.T) {
	// Block every x move past the start column; y stays open.
	wall := queryFunc(func(x, y, w, h float64) bool { return x <= 0 })

	p := NewPlayer(cp.Vector{}, testPlayerSpec())
	p.Update(1000, &Input{MoveX: 1, MoveY: 1}, wall)

	assert.Zero(t, p.Pos.X, "x move is blocked")
	assert.Greater(t, p.Pos.Y, 0.0, "y move still applies")
}

func TestPlayerIFrameWindow(t *testing.T) {
	p := NewPlayer(cp.Vector{}, testPlayerSpec())

	assert.True(t, p.TakeDamage(10), "first hit lands")
	assert.InDelta(t, 90.0, p.Health, 1e-9)
	assert.True(t, p.Invulnerable())

	assert.False(t, p.TakeDamage(10), "hits inside the window are ignored")
	assert.InDelta(t, 90.0, p.Health, 1e-9)

	// Tick past the 800ms window; the next hit lands again.
	p.Update(801, &Input{}, openWorld)
	assert.False(t, p.Invulnerable())
	assert.True(t, p.TakeDamage(10))
	assert.InDelta(t, 80.0, p.Health, 1e-9)
}

func TestPlayerHealthClampsAtZero(t *testing.T) {
	p := NewPlayer(cp.Vector{}, testPlayerSpec())

	require.True(t, p.TakeDamage(500))
	assert.Zero(t, p.Health)
	assert.False(t, p.Alive())

	p.Update(1000, &Input{}, openWorld)
	assert.False(t, p.TakeDamage(10), "the dead take no further hits")
}

func TestPlayerGainXPCrossesMultipleLevels(t *testing.T) {
	// Level curve: 10 to reach level 2, then 15 to reach level 3.
	p := NewPlayer(cp.Vector{}, testPlayerSpec())
	require.Equal(t, 10, p.XPToNext())

	levels := p.GainXP(25)

	assert.Equal(t, 2, levels, "one grant crosses both thresholds")
	assert.Equal(t, 3, p.Level)
	assert.Zero(t, p.XP, "exact spend leaves no remainder")
	assert.Equal(t, 20, p.XPToNext())
}

func TestPlayerGainXPKeepsRemainder(t *testing.T) {
	p := NewPlayer(cp.Vector{}, testPlayerSpec())

	assert.Equal(t, 1, p.GainXP(12))
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 2, p.XP)
}
