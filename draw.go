package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/avaret/nightswarm/world"
)

var (
	floorColor  = color.NRGBA{R: 0x23, G: 0x25, B: 0x2b, A: 0xff}
	wallColor   = color.NRGBA{R: 0x4a, G: 0x4e, B: 0x58, A: 0xff}
	waterColor  = color.NRGBA{R: 0x1d, G: 0x3a, B: 0x5f, A: 0xff}
	playerColor = color.NRGBA{R: 0xe8, G: 0xd4, B: 0x6b, A: 0xff}
	shotColor   = color.NRGBA{R: 0xf2, G: 0xf2, B: 0xe0, A: 0xff}
	hpBackColor = color.NRGBA{R: 0x40, G: 0x10, B: 0x10, A: 0xcc}
	hpFillColor = color.NRGBA{R: 0xc0, G: 0x30, B: 0x30, A: 0xff}
)

// fallbackEnemyColor is used when a roster entry has no color or a bad hex.
var fallbackEnemyColor = color.NRGBA{R: 0xb0, G: 0x3a, B: 0x3a, A: 0xff}

func (g *Game) Draw(screen *ebiten.Image) {
	camX := g.player.Pos.X - baseWidth/2
	camY := g.player.Pos.Y - baseHeight/2

	g.drawArena(screen, camX, camY)

	for _, e := range g.manager.Enemies() {
		x := float32(e.Pos.X - e.HalfW - camX)
		y := float32(e.Pos.Y - e.HalfH - camY)
		w := float32(e.HalfW * 2)
		h := float32(e.HalfH * 2)
		vector.FillRect(screen, x, y, w, h, g.classColor(e.Class), false)

		if e.Health < e.MaxHealth {
			frac := float32(e.Health / e.MaxHealth)
			vector.FillRect(screen, x, y-5, w, 3, hpBackColor, false)
			vector.FillRect(screen, x, y-5, w*frac, 3, hpFillColor, false)
		}
	}

	for _, p := range g.weapon.Projectiles() {
		vector.FillCircle(screen, float32(p.Pos.X-camX), float32(p.Pos.Y-camY), float32(p.Radius), shotColor, false)
	}

	// Flicker the player while the invulnerability window is open.
	if !g.player.Invulnerable() || int(g.elapsedMs/80)%2 == 0 {
		he := g.player.HalfExtent
		vector.FillRect(screen,
			float32(g.player.Pos.X-he-camX), float32(g.player.Pos.Y-he-camY),
			float32(he*2), float32(he*2), playerColor, false)
	}

	g.drawHUD(screen)

	if g.gameOver {
		vector.FillRect(screen, 0, 0, baseWidth, baseHeight, color.NRGBA{A: 170}, false)
		ebitenutil.DebugPrintAt(screen, "YOU DIED", baseWidth/2-24, baseHeight/2-20)
		ebitenutil.DebugPrintAt(screen,
			fmt.Sprintf("survived %.0fs, %d kills, level %d", g.elapsedMs/1000, g.killCount, g.player.Level),
			baseWidth/2-100, baseHeight/2)
		ebitenutil.DebugPrintAt(screen, "press R to restart", baseWidth/2-54, baseHeight/2+20)
	}

	if g.ui != nil {
		g.ui.Draw(screen)
	}
}

// drawArena renders only the tiles inside the camera window.
func (g *Game) drawArena(screen *ebiten.Image, camX, camY float64) {
	minTX := int(camX / world.TileSize)
	minTY := int(camY / world.TileSize)
	maxTX := int((camX+baseWidth)/world.TileSize) + 1
	maxTY := int((camY+baseHeight)/world.TileSize) + 1

	for ty := minTY; ty <= maxTY; ty++ {
		for tx := minTX; tx <= maxTX; tx++ {
			var c color.NRGBA
			switch g.arena.Tile(tx, ty) {
			case world.TileWall:
				c = wallColor
			case world.TileWater:
				c = waterColor
			default:
				c = floorColor
			}
			vector.FillRect(screen,
				float32(float64(tx)*world.TileSize-camX), float32(float64(ty)*world.TileSize-camY),
				world.TileSize, world.TileSize, c, false)
		}
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	// HP bar along the top.
	frac := float32(g.player.Health / g.player.MaxHealth)
	vector.FillRect(screen, 10, 10, 200, 14, hpBackColor, false)
	vector.FillRect(screen, 10, 10, 200*frac, 14, hpFillColor, false)

	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("HP %.0f/%.0f  Lv %d  XP %d/%d", g.player.Health, g.player.MaxHealth,
			g.player.Level, g.player.XP, g.player.XPToNext()), 10, 28)
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("%.0fs  kills %d  enemies %d  %s", g.elapsedMs/1000, g.killCount,
			g.manager.ActiveCount(), g.weapon.Pattern), 10, 44)
}

// classColor resolves a roster class name to its configured color.
func (g *Game) classColor(name string) color.NRGBA {
	if c, ok := g.classColors[name]; ok {
		return c
	}
	return fallbackEnemyColor
}

// buildClassColors parses the roster's hex colors once per (re)load.
func (g *Game) buildClassColors() {
	g.classColors = make(map[string]color.NRGBA, len(g.rosterSpec.Enemies))
	for _, e := range g.rosterSpec.Enemies {
		c, err := parseHexColor(e.Color)
		if err != nil {
			c = fallbackEnemyColor
		}
		g.classColors[e.Name] = c
	}
}

// parseHexColor decodes "#rrggbb" into an opaque color.
func parseHexColor(s string) (color.NRGBA, error) {
	var r, gg, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &gg, &b); err != nil {
		return color.NRGBA{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return color.NRGBA{R: r, G: gg, B: b, A: 0xff}, nil
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
