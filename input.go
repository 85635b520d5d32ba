package main

import (
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input holds the polled per-frame input state.
type Input struct {
	// MoveX and MoveY are each in [-1, 1]; diagonals are normalized by the
	// player, not here.
	MoveX float64
	MoveY float64
	// PausePressed is true on the frame the pause key was pressed.
	PausePressed bool
	// RestartPressed is true on the frame the restart key was pressed.
	RestartPressed bool
}

func NewInput() *Input {
	return &Input{}
}

// Update polls the keyboard and gamepad.
func (i *Input) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		os.Exit(0)
	}

	var mx, my float64
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		mx -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		mx += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		my -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		my += 1
	}

	var gpPause bool
	if ids := ebiten.GamepadIDs(); len(ids) > 0 {
		gid := ids[0]

		leftX := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		leftY := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical)
		// Deadzone, then let the stick override digital input.
		if leftX*leftX+leftY*leftY > 0.09 {
			mx = leftX
			my = leftY
		}

		gpPause = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterRight)
	}

	i.MoveX = mx
	i.MoveY = my
	i.PausePressed = inpututil.IsKeyJustPressed(ebiten.KeyEscape) || gpPause
	i.RestartPressed = inpututil.IsKeyJustPressed(ebiten.KeyR)
}
