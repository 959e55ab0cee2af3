package main

import (
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"bemine/internal/assets"
	"bemine/internal/entity"
	"bemine/internal/round"
)

const (
	messageSize = 32
	buttonSize  = 24
)

type overlay struct {
	lines  []string
	label  string
	button rl.Rectangle
}

func overlayFor(s round.State) (overlay, bool) {
	var name, label string
	switch s {
	case round.Idle:
		name, label = assets.TextStart, "Start"
	case round.Lost:
		name, label = assets.TextGameOver, "Try Again"
	case round.Won:
		name, label = assets.TextCelebration, "Play Again"
	default:
		return overlay{}, false
	}
	return overlay{lines: strings.Split(assets.LoadText(name), "\n"), label: label}, true
}

func (o *overlay) draw(width, height float64) {
	cx := float32(width / 2)
	top := float32(height/2) - float32(len(o.lines)*messageSize)/2 - 40
	for i, line := range o.lines {
		w := rl.MeasureText(line, messageSize)
		rl.DrawText(line, int32(cx)-w/2, int32(top)+int32(i*messageSize), messageSize, rl.White)
	}

	o.button = rl.NewRectangle(cx-110, top+float32(len(o.lines)*messageSize)+30, 220, 56)
	rl.DrawRectangleRec(o.button, toRL(entity.ColYes))
	w := rl.MeasureText(o.label, buttonSize)
	rl.DrawText(o.label, int32(cx)-w/2, int32(o.button.Y+o.button.Height/2)-buttonSize/2, buttonSize, rl.White)
}

func (o *overlay) hit(p rl.Vector2) bool {
	return rl.CheckCollisionPointRec(p, o.button)
}
