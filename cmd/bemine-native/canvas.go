package main

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"bemine/internal/entity"
)

// rlCanvas draws round frames between BeginDrawing and EndDrawing.
type rlCanvas struct{}

func toRL(c color.Color) rl.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return rl.NewColor(n.R, n.G, n.B, n.A)
}

func vec(p entity.Position) rl.Vector2 {
	return rl.NewVector2(float32(p.X), float32(p.Y))
}

func (rlCanvas) Clear() {
	rl.ClearBackground(toRL(entity.ColBackground))
}

func (rlCanvas) Circle(center entity.Position, radius, stroke float64, fill, edge color.Color) {
	rl.DrawCircleV(vec(center), float32(radius), toRL(edge))
	rl.DrawCircleV(vec(center), float32(radius-stroke), toRL(fill))
}

func (rlCanvas) Label(text string, center entity.Position, size float64, clr color.Color) {
	fs := int32(size)
	w := rl.MeasureText(text, fs)
	rl.DrawText(text, int32(center.X)-w/2, int32(center.Y)-fs/2, fs, toRL(clr))
}

func (rlCanvas) Measure(text string, size float64) float64 {
	return float64(rl.MeasureText(text, int32(size)))
}

// Heart is two lobes over a triangle.
func (rlCanvas) Heart(center entity.Position, size float64, clr color.Color) {
	c := toRL(clr)
	x, y, s := float32(center.X), float32(center.Y), float32(size)
	rl.DrawCircleV(rl.NewVector2(x-s/4, y-s/8), s/4, c)
	rl.DrawCircleV(rl.NewVector2(x+s/4, y-s/8), s/4, c)
	rl.DrawTriangle(
		rl.NewVector2(x-s/2, y-s/8),
		rl.NewVector2(x, y+s/2),
		rl.NewVector2(x+s/2, y-s/8),
		c,
	)
}
