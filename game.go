package main

import (
	"fmt"
	"image/color"
	"log"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/jakecoffman/cp"

	"github.com/avaret/nightswarm/combat"
	"github.com/avaret/nightswarm/director"
	"github.com/avaret/nightswarm/prefabs"
	"github.com/avaret/nightswarm/world"
)

const (
	baseWidth  = 960
	baseHeight = 640

	// directorPeriodMs is how often the difficulty script is consulted.
	directorPeriodMs = 1000.0
)

// Game wires the combat core to ebiten: it measures wall-clock dt, runs the
// fixed frame order (enemy manager, weapon, collision resolution), and turns
// the enemy-count delta across the resolution pass into kills and XP. The
// core itself emits no events.
type Game struct {
	arena    *world.Arena
	player   *Player
	weapon   *combat.Weapon
	manager  *combat.Manager
	director *director.Director
	input    *Input
	rng      *rand.Rand

	playerSpec *prefabs.PlayerSpec
	weaponSpec *prefabs.WeaponSpec
	rosterSpec *prefabs.EnemyRosterSpec
	arenaSpec  *prefabs.ArenaSpec

	classColors map[string]color.NRGBA

	ui            *ebitenui.UI
	paused        bool
	gameOver      bool
	pendingLevels int

	killCount     int
	elapsedMs     float64
	sinceDirector float64
	lastTick      time.Time

	watcher *prefabs.Watcher
}

// NewGame loads every prefab spec and starts the first run.
func NewGame(seed int64, watch bool) (*Game, error) {
	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	weaponSpec, err := prefabs.LoadWeaponSpec()
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	rosterSpec, err := prefabs.LoadEnemyRosterSpec()
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	arenaSpec, err := prefabs.LoadArenaSpec()
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	g := &Game{
		playerSpec: playerSpec,
		weaponSpec: weaponSpec,
		rosterSpec: rosterSpec,
		arenaSpec:  arenaSpec,
		input:      NewInput(),
	}

	d, err := director.FromPrefab("difficulty.tengo")
	if err != nil {
		// A broken script costs the ramp, not the game.
		log.Printf("game: difficulty director disabled: %v", err)
	} else {
		g.director = d
	}

	if watch {
		w, err := prefabs.NewWatcher("prefabs", filepath.Join("prefabs", "scripts"))
		if err != nil {
			log.Printf("game: prefab watch disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	g.startRun(seed)
	return g, nil
}

// startRun rebuilds all per-run state from the loaded specs.
func (g *Game) startRun(seed int64) {
	g.rng = rand.New(rand.NewSource(seed))

	g.arena = world.Generate(world.GenParams{
		Width:           g.arenaSpec.Width,
		Height:          g.arenaSpec.Height,
		ObstacleDensity: g.arenaSpec.ObstacleDensity,
		WaterPools:      g.arenaSpec.WaterPools,
		ClearRadius:     g.arenaSpec.ClearRadius,
	}, g.rng)

	cx, cy := g.arena.Center()
	g.player = NewPlayer(cp.Vector{X: cx, Y: cy}, g.playerSpec)
	g.manager = combat.NewManager(g.rosterSpec.SpawnRate, g.rosterSpec.MaxEnemies, rosterClasses(g.rosterSpec), g.rng)
	g.weapon = combat.NewWeapon(g.player, weaponStats(g.weaponSpec))
	g.buildClassColors()

	g.ui = nil
	g.paused = false
	g.gameOver = false
	g.pendingLevels = 0
	g.killCount = 0
	g.elapsedMs = 0
	g.sinceDirector = 0
	g.lastTick = time.Time{}
}

func (g *Game) Update() error {
	g.input.Update()

	now := time.Now()
	var dt float64
	if !g.lastTick.IsZero() {
		dt = float64(now.Sub(g.lastTick).Microseconds()) / 1000
	}
	g.lastTick = now

	g.drainWatcher()

	if g.gameOver {
		if g.input.RestartPressed {
			g.startRun(time.Now().UnixNano())
		}
		return nil
	}

	if g.ui != nil {
		g.ui.Update()
		return nil
	}

	if g.input.PausePressed {
		g.paused = true
		g.ui = NewPauseUI(g)
		return nil
	}

	g.elapsedMs += dt
	g.sinceDirector += dt
	if g.sinceDirector >= directorPeriodMs {
		g.sinceDirector = 0
		s := g.director.Scale(g.elapsedMs / 1000)
		g.manager.SetScaling(s.SpawnRate, s.Health, s.Speed)
	}

	// Fixed frame order: player, enemy manager, weapon, then the collision
	// pass. Kills are observed as the active-count delta across resolution;
	// nothing else in that window changes the count.
	g.player.Update(dt, g.input, g.arena)
	g.manager.Update(dt, g.player.Position(), g.arena)
	g.weapon.Update(dt, g.arena, g.manager.Enemies())

	before := g.manager.ActiveCount()
	g.manager.ResolveCollisions(g.weapon.Projectiles())
	if kills := before - g.manager.ActiveCount(); kills > 0 {
		g.killCount += kills
		if levels := g.player.GainXP(kills * g.playerSpec.XPPerKill); levels > 0 {
			g.pendingLevels += levels
			g.offerUpgrades()
		}
	}

	playerBounds := g.player.Bounds()
	for _, e := range g.manager.Enemies() {
		if e.CollidesWith(playerBounds) {
			g.player.TakeDamage(e.ContactDamage)
		}
	}
	if !g.player.Alive() {
		g.gameOver = true
	}

	return nil
}

// offerUpgrades opens the level-up overlay with three distinct choices.
func (g *Game) offerUpgrades() {
	kinds := make([]combat.UpgradeKind, len(combat.AllUpgrades))
	copy(kinds, combat.AllUpgrades)
	g.rng.Shuffle(len(kinds), func(i, j int) {
		kinds[i], kinds[j] = kinds[j], kinds[i]
	})
	g.ui = NewUpgradeUI(g, kinds[:3])
}

// chooseUpgrade applies one picked upgrade and either re-offers (banked
// level-ups) or resumes play.
func (g *Game) chooseUpgrade(kind combat.UpgradeKind) {
	g.weapon.Upgrade(kind)
	g.pendingLevels--
	if g.pendingLevels > 0 {
		g.offerUpgrades()
		return
	}
	g.ui = nil
}

func (g *Game) resume() {
	g.paused = false
	g.ui = nil
}

// drainWatcher applies any pending prefab edits at the frame boundary.
func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reloadPrefab(name)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			if err != nil {
				log.Printf("game: prefab watch: %v", err)
			}
		default:
			return
		}
	}
}

// reloadPrefab hot-swaps the tunables that can change mid-run. Arena and
// player specs shape run setup, so they only apply on restart.
func (g *Game) reloadPrefab(name string) {
	switch filepath.Base(name) {
	case "enemies.yaml":
		spec, err := prefabs.LoadEnemyRosterSpec()
		if err != nil {
			log.Printf("game: reload enemies: %v", err)
			return
		}
		g.rosterSpec = spec
		g.manager.SpawnRate = spec.SpawnRate
		g.manager.MaxEnemies = spec.MaxEnemies
		g.manager.SetRoster(rosterClasses(spec))
		g.buildClassColors()
		log.Printf("game: reloaded enemy roster (%d kinds)", len(spec.Enemies))
	case "weapon.yaml":
		spec, err := prefabs.LoadWeaponSpec()
		if err != nil {
			log.Printf("game: reload weapon: %v", err)
			return
		}
		g.weaponSpec = spec
		g.weapon.ApplyStats(weaponStats(spec))
		log.Printf("game: reloaded weapon stats")
	case "difficulty.tengo":
		d, err := director.FromPrefab("difficulty.tengo")
		if err != nil {
			log.Printf("game: reload difficulty script: %v", err)
			return
		}
		g.director = d
		log.Printf("game: reloaded difficulty script")
	default:
		log.Printf("game: %s changed, restart (R after death) to apply", filepath.Base(name))
	}
}

// rosterClasses converts the yaml roster into combat classes.
func rosterClasses(spec *prefabs.EnemyRosterSpec) []combat.Class {
	classes := make([]combat.Class, 0, len(spec.Enemies))
	for _, e := range spec.Enemies {
		classes = append(classes, combat.Class{
			Name:          e.Name,
			Speed:         e.Speed,
			Health:        e.Health,
			HalfExtent:    e.HalfExtent,
			Weight:        e.Weight,
			ContactDamage: e.ContactDamage,
		})
	}
	return classes
}

// weaponStats converts the yaml weapon spec into combat stats.
func weaponStats(spec *prefabs.WeaponSpec) combat.WeaponStats {
	return combat.WeaponStats{
		FireRate:         spec.FireRate,
		Damage:           spec.Damage,
		MultiShot:        spec.MultiShot,
		SpreadAngleDeg:   spec.SpreadAngleDeg,
		Piercing:         spec.Piercing,
		HomingStrength:   spec.HomingStrength,
		AutoTargetRange:  spec.AutoTargetRange,
		Pattern:          combat.ParsePattern(spec.Pattern),
		ProjectileSpeed:  spec.ProjectileSpeed,
		ProjectileRange:  spec.ProjectileRange,
		ProjectileRadius: spec.ProjectileRadius,
	}
}
