package main

import (
	"github.com/jakecoffman/cp"

	"github.com/avaret/nightswarm/combat"
	"github.com/avaret/nightswarm/prefabs"
)

// Player is the survivor: it moves under input with the same per-axis
// collision gating enemies use, soaks contact damage behind a brief
// invulnerability window, and tracks XP toward upgrade levels. The weapon
// reads its position through the combat.Owner interface.
type Player struct {
	Pos        cp.Vector
	HalfExtent float64
	Speed      float64
	Health     float64
	MaxHealth  float64
	Level      int
	XP         int

	iframeTimer float64
	spec        *prefabs.PlayerSpec
}

func NewPlayer(pos cp.Vector, spec *prefabs.PlayerSpec) *Player {
	return &Player{
		Pos:        pos,
		HalfExtent: spec.HalfExtent,
		Speed:      spec.MoveSpeed,
		Health:     spec.Health,
		MaxHealth:  spec.Health,
		Level:      1,
		spec:       spec,
	}
}

// Position implements combat.Owner.
func (p *Player) Position() cp.Vector {
	return p.Pos
}

// Bounds returns the player's collision box.
func (p *Player) Bounds() cp.BB {
	return cp.NewBBForExtents(p.Pos, p.HalfExtent, p.HalfExtent)
}

// Alive reports whether the run is still going.
func (p *Player) Alive() bool {
	return p.Health > 0
}

// Update applies input movement for dt milliseconds. Each axis is gated
// through the spatial query independently, x first, so the player slides
// along walls the same way enemies do.
func (p *Player) Update(dt float64, in *Input, sq combat.SpatialQuery) {
	if p.iframeTimer > 0 {
		p.iframeTimer -= dt
	}

	move := cp.Vector{X: in.MoveX, Y: in.MoveY}
	if l := move.Length(); l > 1 {
		move = move.Mult(1 / l)
	}
	if move.X == 0 && move.Y == 0 {
		return
	}

	step := move.Mult(p.Speed * dt / 1000)
	size := p.HalfExtent * 2
	if nx := p.Pos.X + step.X; sq.CanMoveTo(nx, p.Pos.Y, size, size) {
		p.Pos.X = nx
	}
	if ny := p.Pos.Y + step.Y; sq.CanMoveTo(p.Pos.X, ny, size, size) {
		p.Pos.Y = ny
	}
}

// TakeDamage applies contact damage unless the invulnerability window is
// still open. It reports whether the hit landed.
func (p *Player) TakeDamage(amount float64) bool {
	if p.iframeTimer > 0 || !p.Alive() {
		return false
	}
	p.Health -= amount
	if p.Health < 0 {
		p.Health = 0
	}
	p.iframeTimer = p.spec.IFrameMs
	return true
}

// Invulnerable reports whether the player is inside the post-hit window.
// Render code uses it to flicker the sprite.
func (p *Player) Invulnerable() bool {
	return p.iframeTimer > 0
}

// GainXP adds experience and returns how many levels it crossed.
func (p *Player) GainXP(amount int) int {
	p.XP += amount
	levels := 0
	for p.XP >= p.xpToNext() {
		p.XP -= p.xpToNext()
		p.Level++
		levels++
	}
	return levels
}

// XPToNext exposes the current level threshold for the HUD.
func (p *Player) XPToNext() int {
	return p.xpToNext()
}

func (p *Player) xpToNext() int {
	return p.spec.XPBase + p.spec.XPPerLevel*(p.Level-1)
}
