package combat

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParams() ProjectileParams {
	return ProjectileParams{
		Speed:  400,
		Damage: 10,
		Range:  250,
		Radius: 4,
	}
}

func TestProjectileTravelsOneRangeUnit(t *testing.T) {
	// Spec scenario: speed 400, dt 250ms, range 250. One update covers 100
	// units east and the projectile stays alive.
	p := NewProjectile(cp.Vector{X: 10, Y: 20}, cp.Vector{X: 1}, testParams())

	p.Update(250, openWorld, nil)

	assert.InDelta(t, 110.0, p.Pos.X, 1e-9)
	assert.InDelta(t, 20.0, p.Pos.Y, 1e-9)
	assert.InDelta(t, 100.0, p.Traveled, 1e-9)
	assert.True(t, p.Active)
}

func TestProjectileRangeExpiry(t *testing.T) {
	params := testParams()
	params.Speed = 100
	p := NewProjectile(cp.Vector{}, cp.Vector{X: 1}, params)

	// 100 units per second of dt; range 250 expires within ceil(250/100)=3
	// update calls.
	steps := 0
	for p.Active {
		p.Update(1000, openWorld, nil)
		steps++
		require.LessOrEqual(t, steps, 3, "projectile must expire within ceil(range/step) updates")
	}
	assert.Equal(t, 3, steps)
}

func TestProjectileRangeCheckedBeforeWall(t *testing.T) {
	// A shot that reaches max range the same frame it would clip a wall
	// expires for range reasons; the wall query must not even run.
	params := testParams()
	params.Speed = 250
	p := NewProjectile(cp.Vector{}, cp.Vector{X: 1}, params)

	queried := false
	wall := queryFunc(func(x, y, w, h float64) bool {
		queried = true
		return false
	})

	p.Update(1000, wall, nil)
	assert.False(t, p.Active)
	assert.False(t, queried, "range expiry short-circuits the wall check")
}

func TestProjectileDiesOnWall(t *testing.T) {
	p := NewProjectile(cp.Vector{}, cp.Vector{X: 1}, testParams())
	p.Update(16, closedWorld, nil)
	assert.False(t, p.Active)
}

func TestProjectileInactiveUpdateIsNoop(t *testing.T) {
	p := NewProjectile(cp.Vector{}, cp.Vector{X: 1}, testParams())
	p.Deactivate()
	p.Update(1000, openWorld, nil)
	assert.Zero(t, p.Traveled)
	assert.Zero(t, p.Pos.X)
}

func TestProjectileHomingSnapsAtFullStrength(t *testing.T) {
	params := testParams()
	params.Homing = 1
	p := NewProjectile(cp.Vector{}, cp.Vector{X: 1}, params)

	target := NewEnemy(testClass(), cp.Vector{X: 0, Y: 100})
	p.Update(16, openWorld, []*Enemy{target})

	assert.InDelta(t, 0.0, p.Dir.X, 1e-9)
	assert.InDelta(t, 1.0, p.Dir.Y, 1e-9)
	assert.Greater(t, p.Pos.Y, 0.0, "translation follows the corrected bearing")
}

func TestProjectileHomingBlend(t *testing.T) {
	params := testParams()
	params.Homing = 0.5
	p := NewProjectile(cp.Vector{}, cp.Vector{X: 1}, params)

	target := NewEnemy(testClass(), cp.Vector{X: 0, Y: 100})
	p.Update(16, openWorld, []*Enemy{target})

	// Equal blend of east and south bearings renormalizes to 45 degrees.
	assert.InDelta(t, 1.0, p.Dir.Length(), 1e-9)
	assert.InDelta(t, math.Pi/4, p.Dir.ToAngle(), 1e-9)
}

func TestProjectileHomingReacquiresOnTargetDeath(t *testing.T) {
	params := testParams()
	params.Homing = 1
	p := NewProjectile(cp.Vector{}, cp.Vector{X: 1}, params)

	near := NewEnemy(testClass(), cp.Vector{X: 50, Y: 0})
	far := NewEnemy(testClass(), cp.Vector{X: 0, Y: 200})
	enemies := []*Enemy{near, far}

	p.Update(16, openWorld, enemies)
	require.Same(t, near, p.Target())

	near.Deactivate()
	p.Update(16, openWorld, enemies)
	assert.Same(t, far, p.Target(), "dead target is silently replaced by the next nearest")
}

func TestProjectileHomingSkippedWithoutEnemies(t *testing.T) {
	params := testParams()
	params.Homing = 1
	p := NewProjectile(cp.Vector{}, cp.Vector{X: 1}, params)

	p.Update(16, openWorld, nil)
	assert.Nil(t, p.Target())
	assert.InDelta(t, 1.0, p.Dir.X, 1e-9, "direction unchanged with no live enemies")
}

func TestProjectileHomingGuardsZeroDistance(t *testing.T) {
	params := testParams()
	params.Homing = 1
	p := NewProjectile(cp.Vector{}, cp.Vector{X: 1}, params)

	onTop := NewEnemy(testClass(), cp.Vector{})
	p.Update(0, openWorld, []*Enemy{onTop})

	// Target sits exactly on the projectile: the steer step is skipped and
	// the direction stays finite.
	assert.False(t, math.IsNaN(p.Dir.X))
	assert.InDelta(t, 1.0, p.Dir.X, 1e-9)
}

func TestProjectileHitSetGrowsOnly(t *testing.T) {
	p := NewProjectile(cp.Vector{}, cp.Vector{X: 1}, testParams())
	e := NewEnemy(testClass(), cp.Vector{})

	assert.False(t, p.HasHit(e))
	p.RecordHit(e)
	assert.True(t, p.HasHit(e))

	other := NewEnemy(testClass(), cp.Vector{})
	assert.False(t, p.HasHit(other), "hit bookkeeping is per enemy identity")
}

func TestProjectileToleratesZeroAndHugeDt(t *testing.T) {
	p := NewProjectile(cp.Vector{}, cp.Vector{X: 1}, testParams())

	p.Update(0, openWorld, nil)
	assert.True(t, p.Active)
	assert.Zero(t, p.Traveled)

	// A backgrounded-tab dt just expires the shot by range; no panic, no NaN.
	p.Update(1e7, openWorld, nil)
	assert.False(t, p.Active)
}
