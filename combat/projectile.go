package combat

import (
	"github.com/jakecoffman/cp"
)

// Projectile is a single fired bolt. It moves along a unit direction,
// optionally bending toward a tracked enemy, and expires on range or wall
// contact. Hit bookkeeping lives here so a projectile can never damage the
// same enemy twice, no matter how many frames their bounds overlap.
type Projectile struct {
	Body
	Dir      cp.Vector
	Speed    float64
	Damage   float64
	Range    float64
	Traveled float64
	Radius   float64
	Piercing bool
	// Homing is the per-frame blend strength toward the tracked enemy:
	// 0 flies straight, 1 snaps onto the bearing instantly.
	Homing float64

	// target is a weak reference into the live enemy set. It is revalidated
	// every update and silently reacquired when the enemy dies.
	target *Enemy
	hits   map[*Enemy]struct{}
}

// ProjectileParams are the weapon-owned stats a projectile inherits on fire.
type ProjectileParams struct {
	Speed    float64
	Damage   float64
	Range    float64
	Radius   float64
	Piercing bool
	Homing   float64
}

// NewProjectile spawns an active projectile at pos along dir. dir is assumed
// to be unit length; the weapon's pattern generators guarantee that.
func NewProjectile(pos, dir cp.Vector, params ProjectileParams) *Projectile {
	return &Projectile{
		Body: Body{
			Pos:    pos,
			HalfW:  params.Radius,
			HalfH:  params.Radius,
			Active: true,
		},
		Dir:      dir,
		Speed:    params.Speed,
		Damage:   params.Damage,
		Range:    params.Range,
		Radius:   params.Radius,
		Piercing: params.Piercing,
		Homing:   params.Homing,
	}
}

// Update advances the projectile by dt milliseconds: homing correction first,
// then translation, then range expiry, then wall expiry. Range is checked
// before the wall so a shot that reaches max range on the frame it would clip
// a wall dies for range reasons.
func (p *Projectile) Update(dt float64, sq SpatialQuery, enemies []*Enemy) {
	if !p.Active {
		return
	}

	if p.Homing > 0 && len(enemies) > 0 {
		if p.target == nil || !p.target.Active {
			p.target = nearestEnemy(p.Pos, enemies)
		}
		if p.target != nil {
			p.steerToward(p.target.Pos)
		}
	}

	step := p.Speed * dt / 1000
	p.Pos = p.Pos.Add(p.Dir.Mult(step))
	p.Traveled += step

	if p.Traveled >= p.Range {
		p.Deactivate()
		return
	}
	if !sq.CanMoveTo(p.Pos.X, p.Pos.Y, p.Radius*2, p.Radius*2) {
		p.Deactivate()
	}
}

// steerToward blends the current direction with the bearing to pos and
// renormalizes. Degenerate geometry (on top of the target, or a blend that
// cancels to zero) leaves the direction untouched rather than producing NaN.
func (p *Projectile) steerToward(pos cp.Vector) {
	to := pos.Sub(p.Pos)
	d := to.Length()
	if d == 0 {
		return
	}
	targetDir := to.Mult(1 / d)

	blended := p.Dir.Mult(1 - p.Homing).Add(targetDir.Mult(p.Homing))
	if l := blended.Length(); l > 0 {
		p.Dir = blended.Mult(1 / l)
	}
}

// HasHit reports whether this projectile already damaged the enemy.
func (p *Projectile) HasHit(e *Enemy) bool {
	_, ok := p.hits[e]
	return ok
}

// RecordHit marks the enemy as damaged by this projectile. The set only
// grows; there is no way to unrecord a hit.
func (p *Projectile) RecordHit(e *Enemy) {
	if p.hits == nil {
		p.hits = make(map[*Enemy]struct{})
	}
	p.hits[e] = struct{}{}
}

// Target returns the current homing target, if any. Render code uses it to
// draw tracking hints; the reference is weak and may be a dead enemy until
// the next update revalidates it.
func (p *Projectile) Target() *Enemy {
	return p.target
}

// nearestEnemy returns the closest active enemy by straight-line distance.
// Ties break in iteration order: the first encountered wins.
func nearestEnemy(from cp.Vector, enemies []*Enemy) *Enemy {
	var best *Enemy
	bestDist := 0.0
	for _, e := range enemies {
		if !e.Active {
			continue
		}
		d := from.Distance(e.Pos)
		if best == nil || d < bestDist {
			best = e
			bestDist = d
		}
	}
	return best
}
