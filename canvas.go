package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"bemine/internal/assets"
	"bemine/internal/entity"
)

const glyphHeight = 13.0

var labelFace = text.NewGoXFace(basicfont.Face7x13)

// screenCanvas draws round frames onto the ebiten screen image.
type screenCanvas struct {
	screen *ebiten.Image
	hearts map[int]*ebiten.Image
}

func newScreenCanvas() *screenCanvas {
	return &screenCanvas{hearts: map[int]*ebiten.Image{}}
}

func (c *screenCanvas) Clear() {
	c.screen.Fill(entity.ColBackground)
}

func (c *screenCanvas) Circle(center entity.Position, radius, stroke float64, fill, edge color.Color) {
	x, y, r := float32(center.X), float32(center.Y), float32(radius)
	vector.DrawFilledCircle(c.screen, x, y, r, fill, true)
	vector.StrokeCircle(c.screen, x, y, r, float32(stroke), edge, true)
}

// Label draws text centered on center with a cap height of roughly size.
func (c *screenCanvas) Label(s string, center entity.Position, size float64, clr color.Color) {
	scale := size / glyphHeight
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(center.X, center.Y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(c.screen, s, labelFace, op)
}

func (c *screenCanvas) Measure(s string, size float64) float64 {
	return text.Advance(s, labelFace) * size / glyphHeight
}

func (c *screenCanvas) Heart(center entity.Position, size float64, clr color.Color) {
	px := int(math.Round(size))
	if px <= 0 {
		return
	}
	img, ok := c.hearts[px]
	if !ok {
		img = ebiten.NewImageFromImage(assets.HeartMask(px))
		c.hearts[px] = img
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(center.X-float64(px)/2, center.Y-float64(px)/2)
	op.ColorScale.ScaleWithColor(clr)
	c.screen.DrawImage(img, op)
}
