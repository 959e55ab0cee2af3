// Package term draws rounds into a tcell screen and turns terminal events
// into round input. Each cell stands for a CellWidth x CellHeight block of
// surface units so the game keeps its pixel tuning.
package term

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"bemine/internal/entity"
)

const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

// Canvas implements round.Canvas on a tcell screen.
type Canvas struct {
	screen tcell.Screen
	bg     color.RGBA
}

func NewCanvas(s tcell.Screen) *Canvas {
	return &Canvas{screen: s, bg: entity.ColBackground}
}

// Surface returns the screen size in surface units.
func (c *Canvas) Surface() (w, h float64) {
	cols, rows := c.screen.Size()
	return float64(cols) * CellWidth, float64(rows) * CellHeight
}

// ToSurface maps a cell to the surface point at its center.
func ToSurface(col, row int) entity.Position {
	return entity.Position{
		X: (float64(col) + 0.5) * CellWidth,
		Y: (float64(row) + 0.5) * CellHeight,
	}
}

func toCell(p entity.Position) (col, row int) {
	return int(math.Floor(p.X / CellWidth)), int(math.Floor(p.Y / CellHeight))
}

func (c *Canvas) Clear() {
	c.screen.Fill(' ', tcell.StyleDefault.Background(tcellColor(c.bg)))
}

// Circle paints every cell whose center lies inside the circle. Cells within
// the stroke width (never less than one cell) of the rim take the edge color.
func (c *Canvas) Circle(center entity.Position, radius, stroke float64, fill, edge color.Color) {
	cols, rows := c.screen.Size()
	rim := radius - max(stroke, CellWidth)
	fillStyle := tcell.StyleDefault.Background(tcellColor(fill))
	edgeStyle := tcell.StyleDefault.Background(tcellColor(edge))

	c0, r0 := toCell(entity.Position{X: center.X - radius, Y: center.Y - radius})
	c1, r1 := toCell(entity.Position{X: center.X + radius, Y: center.Y + radius})
	for row := max(r0, 0); row <= min(r1, rows-1); row++ {
		for col := max(c0, 0); col <= min(c1, cols-1); col++ {
			d := ToSurface(col, row).Dist(center)
			switch {
			case d > radius:
			case d > rim:
				c.screen.SetContent(col, row, ' ', nil, edgeStyle)
			default:
				c.screen.SetContent(col, row, ' ', nil, fillStyle)
			}
		}
	}
}

// Label writes text centered on the cell under center, keeping each cell's
// background. Size is ignored: a terminal has one glyph size.
func (c *Canvas) Label(text string, center entity.Position, size float64, clr color.Color) {
	col, row := toCell(center)
	col -= runewidth.StringWidth(text) / 2
	for _, r := range text {
		c.put(col, row, r, clr)
		col += runewidth.RuneWidth(r)
	}
}

func (c *Canvas) Heart(center entity.Position, size float64, clr color.Color) {
	col, row := toCell(center)
	c.put(col, row, '♥', clr)
}

func (c *Canvas) Measure(text string, size float64) float64 {
	return float64(runewidth.StringWidth(text)) * CellWidth
}

func (c *Canvas) put(col, row int, r rune, clr color.Color) {
	cols, rows := c.screen.Size()
	if col < 0 || row < 0 || col >= cols || row >= rows {
		return
	}
	_, _, style, _ := c.screen.GetContent(col, row)
	_, bg, _ := style.Decompose()
	under := c.bg
	if bg.Valid() {
		r, g, b := bg.RGB()
		under = color.RGBA{uint8(r), uint8(g), uint8(b), 0xff}
	}
	c.screen.SetContent(col, row, r, nil, style.Foreground(tcellColor(blend(clr, under))))
}

// blend composites a possibly translucent color over an opaque one.
func blend(fg color.Color, bg color.RGBA) color.RGBA {
	r, g, b, a := fg.RGBA()
	inv := 0xffff - a
	mix := func(c uint32, under uint8) uint8 {
		return uint8((c + uint32(under)*0x101*inv/0xffff) >> 8)
	}
	return color.RGBA{mix(r, bg.R), mix(g, bg.G), mix(b, bg.B), 0xff}
}

func tcellColor(c color.Color) tcell.Color {
	r, g, b, _ := c.RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}
