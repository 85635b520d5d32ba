package combat

import (
	"math"
	"math/rand"

	"github.com/jakecoffman/cp"
)

const (
	// spawnAttempts bounds placement retries per spawn tick. Exhausting them
	// is a silent no-op; the next eligible tick tries again.
	spawnAttempts = 50
	// SpawnMinDist and SpawnMaxDist are the radial band around the player in
	// which enemies appear.
	SpawnMinDist = 220.0
	SpawnMaxDist = 480.0
)

// Manager owns the enemy collection: spawn timing and placement, per-enemy
// updates, pruning, and the projectile-enemy collision pass.
type Manager struct {
	enemies    []*Enemy
	roster     []Class
	rng        *rand.Rand
	spawnTimer float64

	// SpawnRate is the base spawn frequency in enemies per second.
	SpawnRate  float64
	MaxEnemies int

	// Director scaling, all 1.0 until the shell says otherwise.
	spawnRateMult float64
	healthMult    float64
	speedMult     float64
}

// NewManager creates a manager spawning from the given roster. The rng is
// the single source of randomness for placement and enemy AI jitter, so a
// fixed seed reproduces a whole run.
func NewManager(spawnRate float64, maxEnemies int, roster []Class, rng *rand.Rand) *Manager {
	return &Manager{
		roster:        roster,
		rng:           rng,
		SpawnRate:     spawnRate,
		MaxEnemies:    maxEnemies,
		spawnRateMult: 1,
		healthMult:    1,
		speedMult:     1,
	}
}

// Update runs one frame of spawning and enemy AI, then prunes inactive
// enemies. Collision resolution is a separate pass (ResolveCollisions) so the
// shell can observe kill deltas across it.
func (m *Manager) Update(dt float64, playerPos cp.Vector, sq SpatialQuery) {
	m.spawnTimer += dt
	rate := m.SpawnRate * m.spawnRateMult
	if rate > 0 && m.spawnTimer >= 1000/rate && m.activeCount() < m.MaxEnemies {
		// The timer resets even when placement fails; failure costs a tick.
		m.spawnTimer = 0
		m.spawn(playerPos, sq)
	}

	for _, e := range m.enemies {
		e.Update(dt, playerPos, sq, m.rng)
	}

	// Prune by rebuilding. Survivors keep their relative order.
	alive := m.enemies[:0]
	for _, e := range m.enemies {
		if e.Active {
			alive = append(alive, e)
		}
	}
	for i := len(alive); i < len(m.enemies); i++ {
		m.enemies[i] = nil
	}
	m.enemies = alive
}

// spawn places one enemy on a random bearing within the spawn band around
// the player. Up to spawnAttempts candidates are tried against the spatial
// query; if none fit, no enemy is added.
func (m *Manager) spawn(playerPos cp.Vector, sq SpatialQuery) {
	class, ok := m.pickClass()
	if !ok {
		return
	}
	class.Health *= m.healthMult
	class.Speed *= m.speedMult

	for i := 0; i < spawnAttempts; i++ {
		angle := m.rng.Float64() * 2 * math.Pi
		dist := SpawnMinDist + m.rng.Float64()*(SpawnMaxDist-SpawnMinDist)
		pos := playerPos.Add(cp.ForAngle(angle).Mult(dist))
		if sq.CanMoveTo(pos.X, pos.Y, class.HalfExtent*2, class.HalfExtent*2) {
			m.enemies = append(m.enemies, NewEnemy(class, pos))
			return
		}
	}
}

// pickClass selects a roster entry by weight.
func (m *Manager) pickClass() (Class, bool) {
	total := 0
	for _, c := range m.roster {
		if c.Weight > 0 {
			total += c.Weight
		}
	}
	if total == 0 {
		return Class{}, false
	}
	n := m.rng.Intn(total)
	for _, c := range m.roster {
		if c.Weight <= 0 {
			continue
		}
		if n < c.Weight {
			return c, true
		}
		n -= c.Weight
	}
	return Class{}, false
}

// ResolveCollisions runs the projectile-enemy damage pass. Each (projectile,
// enemy) pair lands at most one hit over the projectile's lifetime. A
// non-piercing projectile dies on its first hit and stops scanning; a
// piercing one keeps going through the rest of the pass and across frames.
func (m *Manager) ResolveCollisions(projectiles []*Projectile) {
	for _, p := range projectiles {
		if !p.Active {
			continue
		}
		bounds := p.Bounds()
		for _, e := range m.enemies {
			if !e.Active || p.HasHit(e) {
				continue
			}
			if !e.CollidesWith(bounds) {
				continue
			}
			e.TakeDamage(p.Damage)
			p.RecordHit(e)
			if !p.Piercing {
				p.Deactivate()
				break
			}
		}
	}
}

// Enemies returns the active enemies, derived fresh each call. Deactivated
// enemies vanish from this view immediately, before any prune.
func (m *Manager) Enemies() []*Enemy {
	active := make([]*Enemy, 0, len(m.enemies))
	for _, e := range m.enemies {
		if e.Active {
			active = append(active, e)
		}
	}
	return active
}

// ActiveCount reports the number of active enemies without allocating.
func (m *Manager) ActiveCount() int {
	return m.activeCount()
}

func (m *Manager) activeCount() int {
	n := 0
	for _, e := range m.enemies {
		if e.Active {
			n++
		}
	}
	return n
}

// SetScaling applies director multipliers to spawn frequency and to the
// health and speed of enemies spawned from now on. Live enemies keep their
// rolled stats.
func (m *Manager) SetScaling(spawnRate, health, speed float64) {
	m.spawnRateMult = spawnRate
	m.healthMult = health
	m.speedMult = speed
}

// SetRoster swaps the spawnable classes, used by prefab hot reload.
func (m *Manager) SetRoster(roster []Class) {
	m.roster = roster
}
