package main

import (
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input holds current input state for movement and jumping.
type Input struct {
	// MoveX is -1 for left, 0 for none, +1 for right.
	MoveX float64
	// JumpPressed is true on the frame the jump key is pressed.
	JumpPressed bool
	// ReloadPressed is true on the frame the reload key (R) is pressed.
	ReloadPressed bool
}

func NewInput() *Input {
	return &Input{}
}

// Update polls the keyboard.
func (i *Input) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		os.Exit(0)
	}

	var moveX float64
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		moveX += 1
	}
	i.MoveX = moveX

	i.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	i.ReloadPressed = inpututil.IsKeyJustPressed(ebiten.KeyR)
}
