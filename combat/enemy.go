package combat

import (
	"math/rand"

	"github.com/jakecoffman/cp"
)

const (
	// retargetIntervalMs is how often an enemy re-reads the player position.
	retargetIntervalMs = 2000.0
	// retargetJitter is the uniform per-axis offset added to the player
	// position on retarget, so a horde doesn't stack on a single point.
	retargetJitter = 25.0
	// seekStopDistance keeps enemies from oscillating on top of their target.
	seekStopDistance = 5.0
)

// Class describes a spawnable enemy kind. The roster is data-driven; the
// manager picks a class by weight for every spawn.
type Class struct {
	Name       string
	Speed      float64
	Health     float64
	HalfExtent float64
	// Weight biases roster selection. Zero-weight classes never spawn.
	Weight int
	// ContactDamage is applied by the shell when the enemy touches the player.
	ContactDamage float64
}

// Enemy is a mobile hostile with retarget-and-seek AI. It holds a jittered
// copy of the player position and walks toward it, sliding along walls.
type Enemy struct {
	Body
	Class  string
	Speed  float64
	Health float64
	// MaxHealth is kept for render tinting; damage never clamps Health, so
	// it may go negative in storage.
	MaxHealth     float64
	ContactDamage float64

	target        cp.Vector
	retargetTimer float64
	retargetEvery float64
}

// NewEnemy creates an active enemy of the given class at pos. The retarget
// timer starts saturated so the enemy picks up the player on its first update
// instead of idling through the first interval.
func NewEnemy(class Class, pos cp.Vector) *Enemy {
	return &Enemy{
		retargetTimer: retargetIntervalMs,
		Body: Body{
			Pos:    pos,
			HalfW:  class.HalfExtent,
			HalfH:  class.HalfExtent,
			Active: true,
		},
		Class:         class.Name,
		Speed:         class.Speed,
		Health:        class.Health,
		MaxHealth:     class.Health,
		ContactDamage: class.ContactDamage,
		target:        pos,
	}
}

// Update advances AI and movement by dt milliseconds. Movement is gated per
// axis through the spatial query: the x step is tried first, then the y step
// from the (possibly moved) x position. Blocking one axis still lets the
// other through, which is what makes enemies slide along walls.
func (e *Enemy) Update(dt float64, playerPos cp.Vector, sq SpatialQuery, rng *rand.Rand) {
	if !e.Active {
		return
	}

	e.retargetTimer += dt
	if e.retargetTimer >= e.retargetInterval() {
		// Remainder past the interval is dropped; minor drift is fine.
		e.retargetTimer = 0
		e.target = cp.Vector{
			X: playerPos.X + (rng.Float64()*2-1)*retargetJitter,
			Y: playerPos.Y + (rng.Float64()*2-1)*retargetJitter,
		}
	}

	toTarget := e.target.Sub(e.Pos)
	dist := toTarget.Length()
	if dist <= seekStopDistance || dist == 0 {
		return
	}

	step := toTarget.Mult(1 / dist).Mult(e.Speed * dt / 1000)

	if nx := e.Pos.X + step.X; sq.CanMoveTo(nx, e.Pos.Y, e.HalfW*2, e.HalfH*2) {
		e.Pos.X = nx
	}
	if ny := e.Pos.Y + step.Y; sq.CanMoveTo(e.Pos.X, ny, e.HalfW*2, e.HalfH*2) {
		e.Pos.Y = ny
	}
}

// TakeDamage subtracts health and deactivates the enemy the moment health
// reaches zero. The flag never flips back.
func (e *Enemy) TakeDamage(amount float64) {
	e.Health -= amount
	if e.Health <= 0 {
		e.Deactivate()
	}
}

// CollidesWith reports rectangle intersection against other bounds. Inactive
// enemies collide with nothing.
func (e *Enemy) CollidesWith(bounds cp.BB) bool {
	if !e.Active {
		return false
	}
	return e.Bounds().Intersects(bounds)
}

func (e *Enemy) retargetInterval() float64 {
	if e.retargetEvery > 0 {
		return e.retargetEvery
	}
	return retargetIntervalMs
}
