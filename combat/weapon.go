package combat

import (
	"github.com/jakecoffman/cp"
)

// rotationDegPerSec drives the spiral and rotating patterns. The angle
// advances even while the weapon isn't firing so the idle fan sweeps.
const rotationDegPerSec = 90.0

// Owner is the weapon's read-only position source. The weapon consults it on
// every update and fire; it never mutates the owner.
type Owner interface {
	Position() cp.Vector
}

// UpgradeKind names one mutually exclusive weapon upgrade effect.
type UpgradeKind int

const (
	UpgradeDamage UpgradeKind = iota
	UpgradeFireRate
	UpgradeMultiShot
	UpgradePiercing
	UpgradeHoming
	UpgradeRange
	UpgradePattern
)

// AllUpgrades lists every recognized upgrade kind, for shells that offer
// random choices on level-up.
var AllUpgrades = []UpgradeKind{
	UpgradeDamage, UpgradeFireRate, UpgradeMultiShot,
	UpgradePiercing, UpgradeHoming, UpgradeRange, UpgradePattern,
}

func (k UpgradeKind) String() string {
	switch k {
	case UpgradeDamage:
		return "damage"
	case UpgradeFireRate:
		return "fire rate"
	case UpgradeMultiShot:
		return "multi shot"
	case UpgradePiercing:
		return "piercing"
	case UpgradeHoming:
		return "homing"
	case UpgradeRange:
		return "range"
	case UpgradePattern:
		return "pattern"
	}
	return "unknown"
}

// WeaponStats are the data-driven base values a weapon starts from.
type WeaponStats struct {
	FireRate         float64
	Damage           float64
	MultiShot        int
	SpreadAngleDeg   float64
	Piercing         bool
	HomingStrength   float64
	AutoTargetRange  float64
	Pattern          Pattern
	ProjectileSpeed  float64
	ProjectileRange  float64
	ProjectileRadius float64
}

// Weapon owns the projectile collection, runs fire-rate timing, and applies
// upgrades. Targeting is delegated to the pure pattern functions.
type Weapon struct {
	owner       Owner
	projectiles []*Projectile

	FireRate        float64
	Damage          float64
	MultiShot       int
	SpreadAngleDeg  float64
	Piercing        bool
	HomingStrength  float64
	AutoTargetRange float64
	Pattern         Pattern
	Level           int

	ProjectileSpeed  float64
	ProjectileRange  float64
	ProjectileRadius float64

	fireTimer   float64 // seconds since last shot
	rotationDeg float64 // grows monotonically, wraps implicitly via trig
}

// NewWeapon creates a weapon owned by the given position source.
func NewWeapon(owner Owner, stats WeaponStats) *Weapon {
	return &Weapon{
		owner:            owner,
		FireRate:         stats.FireRate,
		Damage:           stats.Damage,
		MultiShot:        stats.MultiShot,
		SpreadAngleDeg:   stats.SpreadAngleDeg,
		Piercing:         stats.Piercing,
		HomingStrength:   stats.HomingStrength,
		AutoTargetRange:  stats.AutoTargetRange,
		Pattern:          stats.Pattern,
		Level:            1,
		ProjectileSpeed:  stats.ProjectileSpeed,
		ProjectileRange:  stats.ProjectileRange,
		ProjectileRadius: stats.ProjectileRadius,
	}
}

// Update accumulates fire timing, fires when due, advances every projectile,
// prunes the dead ones, and spins the pattern rotation. dt is milliseconds.
func (w *Weapon) Update(dt float64, sq SpatialQuery, enemies []*Enemy) {
	dtSec := dt / 1000

	w.fireTimer += dtSec
	if w.FireRate > 0 && w.fireTimer >= 1/w.FireRate {
		// Remainder dropped, same policy as the enemy retarget timer.
		w.fireTimer = 0
		w.Fire(enemies)
	}

	for _, p := range w.projectiles {
		p.Update(dt, sq, enemies)
	}

	// Prune by rebuilding; never mutate the slice mid-iteration.
	alive := w.projectiles[:0]
	for _, p := range w.projectiles {
		if p.Active {
			alive = append(alive, p)
		}
	}
	for i := len(alive); i < len(w.projectiles); i++ {
		w.projectiles[i] = nil
	}
	w.projectiles = alive

	w.rotationDeg += rotationDegPerSec * dtSec
}

// Fire spawns one projectile per pattern direction at the owner's current
// position, inheriting the weapon's present stats.
func (w *Weapon) Fire(enemies []*Enemy) {
	pos := w.owner.Position()
	dirs := Directions(w.Pattern, pos, w.rotationDeg, w.MultiShot, w.SpreadAngleDeg, w.AutoTargetRange, enemies)
	params := ProjectileParams{
		Speed:    w.ProjectileSpeed,
		Damage:   w.Damage,
		Range:    w.ProjectileRange,
		Radius:   w.ProjectileRadius,
		Piercing: w.Piercing,
		Homing:   w.HomingStrength,
	}
	for _, dir := range dirs {
		w.projectiles = append(w.projectiles, NewProjectile(pos, dir, params))
	}
}

// Projectiles returns the live projectile collection. The manager scans it
// during collision resolution; entries may be deactivated in place.
func (w *Weapon) Projectiles() []*Projectile {
	return w.projectiles
}

// RotationDeg returns the current pattern rotation angle in degrees.
func (w *Weapon) RotationDeg() float64 {
	return w.rotationDeg
}

// Upgrade applies one upgrade effect. Every call raises the weapon level,
// including unrecognized kinds, which otherwise change nothing.
func (w *Weapon) Upgrade(kind UpgradeKind) {
	switch kind {
	case UpgradeDamage:
		w.Damage += 5
	case UpgradeFireRate:
		w.FireRate += 0.5
	case UpgradeMultiShot:
		w.MultiShot++
	case UpgradePiercing:
		w.Piercing = true
	case UpgradeHoming:
		w.HomingStrength += 0.3
		if w.HomingStrength > 1 {
			w.HomingStrength = 1
		}
	case UpgradeRange:
		w.AutoTargetRange += 50
	case UpgradePattern:
		w.Pattern = w.Pattern.Next()
	}
	w.Level++
}

// ApplyStats replaces the weapon's base stats in place, used by prefab hot
// reload. Level, fire timing, rotation, and live projectiles are preserved.
func (w *Weapon) ApplyStats(stats WeaponStats) {
	w.FireRate = stats.FireRate
	w.Damage = stats.Damage
	w.MultiShot = stats.MultiShot
	w.SpreadAngleDeg = stats.SpreadAngleDeg
	w.Piercing = stats.Piercing
	w.HomingStrength = stats.HomingStrength
	w.AutoTargetRange = stats.AutoTargetRange
	w.Pattern = stats.Pattern
	w.ProjectileSpeed = stats.ProjectileSpeed
	w.ProjectileRange = stats.ProjectileRange
	w.ProjectileRadius = stats.ProjectileRadius
}
