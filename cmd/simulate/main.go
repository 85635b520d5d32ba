// Command simulate runs the combat core headless at a fixed timestep and
// prints pacing stats, for tuning prefabs without launching the game.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"

	"github.com/jakecoffman/cp"

	"github.com/avaret/nightswarm/combat"
	"github.com/avaret/nightswarm/director"
	"github.com/avaret/nightswarm/prefabs"
	"github.com/avaret/nightswarm/world"
)

// survivor is a stationary stand-in for the player: it holds the weapon at
// the arena center and soaks contact damage behind the same iframe window.
type survivor struct {
	pos    cp.Vector
	half   float64
	health float64
	iframe float64
	spec   *prefabs.PlayerSpec
}

func (s *survivor) Position() cp.Vector {
	return s.pos
}

func (s *survivor) tick(dt float64, enemies []*combat.Enemy) {
	if s.iframe > 0 {
		s.iframe -= dt
	}
	bounds := cp.NewBBForExtents(s.pos, s.half, s.half)
	for _, e := range enemies {
		if e.CollidesWith(bounds) && s.iframe <= 0 && s.health > 0 {
			s.health -= e.ContactDamage
			if s.health < 0 {
				s.health = 0
			}
			s.iframe = s.spec.IFrameMs
		}
	}
}

func main() {
	seed := flag.Int64("seed", 1, "simulation seed")
	duration := flag.Float64("duration", 300, "simulated seconds")
	step := flag.Float64("dt", 16.0, "fixed timestep in milliseconds")
	report := flag.Float64("report", 30, "seconds between progress lines")
	flag.Parse()

	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		log.Fatal(err)
	}
	weaponSpec, err := prefabs.LoadWeaponSpec()
	if err != nil {
		log.Fatal(err)
	}
	rosterSpec, err := prefabs.LoadEnemyRosterSpec()
	if err != nil {
		log.Fatal(err)
	}
	arenaSpec, err := prefabs.LoadArenaSpec()
	if err != nil {
		log.Fatal(err)
	}
	dir, err := director.FromPrefab("difficulty.tengo")
	if err != nil {
		log.Fatal(err)
	}

	rng := rand.New(rand.NewSource(*seed))
	arena := world.Generate(world.GenParams{
		Width:           arenaSpec.Width,
		Height:          arenaSpec.Height,
		ObstacleDensity: arenaSpec.ObstacleDensity,
		WaterPools:      arenaSpec.WaterPools,
		ClearRadius:     arenaSpec.ClearRadius,
	}, rng)

	cx, cy := arena.Center()
	player := &survivor{
		pos:    cp.Vector{X: cx, Y: cy},
		half:   playerSpec.HalfExtent,
		health: playerSpec.Health,
		spec:   playerSpec,
	}

	classes := make([]combat.Class, 0, len(rosterSpec.Enemies))
	for _, e := range rosterSpec.Enemies {
		classes = append(classes, combat.Class{
			Name:          e.Name,
			Speed:         e.Speed,
			Health:        e.Health,
			HalfExtent:    e.HalfExtent,
			Weight:        e.Weight,
			ContactDamage: e.ContactDamage,
		})
	}
	manager := combat.NewManager(rosterSpec.SpawnRate, rosterSpec.MaxEnemies, classes, rng)
	weapon := combat.NewWeapon(player, combat.WeaponStats{
		FireRate:         weaponSpec.FireRate,
		Damage:           weaponSpec.Damage,
		MultiShot:        weaponSpec.MultiShot,
		SpreadAngleDeg:   weaponSpec.SpreadAngleDeg,
		Piercing:         weaponSpec.Piercing,
		HomingStrength:   weaponSpec.HomingStrength,
		AutoTargetRange:  weaponSpec.AutoTargetRange,
		Pattern:          combat.ParsePattern(weaponSpec.Pattern),
		ProjectileSpeed:  weaponSpec.ProjectileSpeed,
		ProjectileRange:  weaponSpec.ProjectileRange,
		ProjectileRadius: weaponSpec.ProjectileRadius,
	})

	var (
		elapsedMs  float64
		kills      int
		xp         int
		level      = 1
		nextReport = *report
	)
	xpToNext := func() int {
		return playerSpec.XPBase + playerSpec.XPPerLevel*(level-1)
	}

	for elapsedMs < *duration*1000 && player.health > 0 {
		elapsedMs += *step

		s := dir.Scale(elapsedMs / 1000)
		manager.SetScaling(s.SpawnRate, s.Health, s.Speed)

		manager.Update(*step, player.pos, arena)
		weapon.Update(*step, arena, manager.Enemies())

		before := manager.ActiveCount()
		manager.ResolveCollisions(weapon.Projectiles())
		if k := before - manager.ActiveCount(); k > 0 {
			kills += k
			xp += k * playerSpec.XPPerKill
			for xp >= xpToNext() {
				xp -= xpToNext()
				level++
				// Level-ups pick a random upgrade, like a player mashing buttons.
				weapon.Upgrade(combat.AllUpgrades[rng.Intn(len(combat.AllUpgrades))])
			}
		}

		player.tick(*step, manager.Enemies())

		if elapsedMs/1000 >= nextReport {
			nextReport += *report
			fmt.Printf("t=%4.0fs hp=%5.1f lv=%2d kills=%5d enemies=%3d shots=%3d spawn_mult=%.2f\n",
				elapsedMs/1000, player.health, level, kills,
				manager.ActiveCount(), len(weapon.Projectiles()), s.SpawnRate)
		}
	}

	outcome := "survived"
	if player.health <= 0 {
		outcome = "died"
	}
	fmt.Printf("%s at t=%.1fs: level %d, %d kills, weapon level %d, pattern %s\n",
		outcome, elapsedMs/1000, level, kills, weapon.Level, weapon.Pattern)
}
