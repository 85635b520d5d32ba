package combat

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStats() WeaponStats {
	return WeaponStats{
		FireRate:         2,
		Damage:           10,
		MultiShot:        1,
		SpreadAngleDeg:   15,
		AutoTargetRange:  500,
		Pattern:          PatternNearest,
		ProjectileSpeed:  400,
		ProjectileRange:  250,
		ProjectileRadius: 4,
	}
}

func TestWeaponFiresOnRate(t *testing.T) {
	w := NewWeapon(&fixedOwner{}, testStats())

	// Fire rate 2/s: nothing at 400ms, one batch once the accumulator
	// crosses 500ms.
	w.Update(400, openWorld, nil)
	assert.Empty(t, w.Projectiles())

	w.Update(150, openWorld, nil)
	assert.Len(t, w.Projectiles(), 1)
}

func TestWeaponFireAccumulatorResetsToZero(t *testing.T) {
	stats := testStats()
	stats.ProjectileRange = 1e9 // keep shots alive so the count tracks fires
	w := NewWeapon(&fixedOwner{}, stats)

	// 700ms crosses the 500ms threshold; the 200ms remainder is dropped, so
	// the next batch needs a further full 500ms.
	w.Update(700, openWorld, nil)
	require.Len(t, w.Projectiles(), 1)

	w.Update(400, openWorld, nil)
	assert.Len(t, w.Projectiles(), 1)
	w.Update(100, openWorld, nil)
	assert.Len(t, w.Projectiles(), 2)
}

func TestWeaponRotationAdvancesUnconditionally(t *testing.T) {
	stats := testStats()
	stats.FireRate = 0.0001 // effectively never fires
	w := NewWeapon(&fixedOwner{}, stats)

	w.Update(1000, openWorld, nil)
	assert.InDelta(t, 90.0, w.RotationDeg(), 1e-9)
	w.Update(500, openWorld, nil)
	assert.InDelta(t, 135.0, w.RotationDeg(), 1e-9)
}

func TestWeaponPrunesInactiveProjectiles(t *testing.T) {
	w := NewWeapon(&fixedOwner{}, testStats())
	w.Fire([]*Enemy{enemyAt(100, 0)})
	require.Len(t, w.Projectiles(), 1)

	// Everything is wall: the shot dies on its first move and the next
	// update sweep removes it.
	w.Update(16, closedWorld, nil)
	assert.Empty(t, w.Projectiles())
}

func TestWeaponFireInheritsCurrentState(t *testing.T) {
	owner := &fixedOwner{pos: cp.Vector{X: 7, Y: -3}}
	w := NewWeapon(owner, testStats())
	w.Upgrade(UpgradePiercing)
	w.Upgrade(UpgradeHoming)

	w.Fire([]*Enemy{enemyAt(107, -3)})
	require.Len(t, w.Projectiles(), 1)

	p := w.Projectiles()[0]
	assert.Equal(t, owner.pos, p.Pos, "projectiles spawn at the owner position")
	assert.True(t, p.Piercing)
	assert.InDelta(t, 0.3, p.Homing, 1e-9)
}

func TestWeaponMultiShotBatch(t *testing.T) {
	stats := testStats()
	stats.Pattern = PatternRotating
	stats.MultiShot = 5
	w := NewWeapon(&fixedOwner{}, stats)

	w.Fire(nil)
	assert.Len(t, w.Projectiles(), 5)
}

func TestWeaponUpgrades(t *testing.T) {
	w := NewWeapon(&fixedOwner{}, testStats())
	require.Equal(t, 1, w.Level)

	w.Upgrade(UpgradeDamage)
	assert.InDelta(t, 15.0, w.Damage, 1e-9)

	w.Upgrade(UpgradeFireRate)
	assert.InDelta(t, 2.5, w.FireRate, 1e-9)

	w.Upgrade(UpgradeMultiShot)
	assert.Equal(t, 2, w.MultiShot)

	w.Upgrade(UpgradePiercing)
	assert.True(t, w.Piercing)

	w.Upgrade(UpgradeRange)
	assert.InDelta(t, 550.0, w.AutoTargetRange, 1e-9)

	w.Upgrade(UpgradePattern)
	assert.Equal(t, PatternSpread, w.Pattern)

	assert.Equal(t, 7, w.Level, "every upgrade raises the level by one")
}

func TestWeaponHomingUpgradeCapsAtOne(t *testing.T) {
	w := NewWeapon(&fixedOwner{}, testStats())
	for i := 0; i < 5; i++ {
		w.Upgrade(UpgradeHoming)
	}
	assert.InDelta(t, 1.0, w.HomingStrength, 1e-9)
}

func TestWeaponUnknownUpgradeOnlyLevels(t *testing.T) {
	w := NewWeapon(&fixedOwner{}, testStats())
	before := *w

	w.Upgrade(UpgradeKind(99))

	assert.Equal(t, before.Level+1, w.Level)
	assert.Equal(t, before.Damage, w.Damage)
	assert.Equal(t, before.FireRate, w.FireRate)
	assert.Equal(t, before.MultiShot, w.MultiShot)
	assert.Equal(t, before.Pattern, w.Pattern)
}

func TestWeaponToleratesZeroDt(t *testing.T) {
	w := NewWeapon(&fixedOwner{}, testStats())
	w.Update(0, openWorld, nil)
	assert.Empty(t, w.Projectiles())
	assert.Zero(t, w.RotationDeg())
}
