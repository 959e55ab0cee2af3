package entity

import (
	"image/color"
	"math"

	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"
)

// Colors
var (
	ColBackground = color.RGBA{0x2d, 0x0f, 0x24, 0xff}
	ColYes        = color.RGBA{0xff, 0x6b, 0x9d, 0xff}
	ColStroke     = color.RGBA{0xff, 0xff, 0xff, 0xff}
	ColLabel      = color.RGBA{0xff, 0xff, 0xff, 0xff}
	ColBackdrop   = color.NRGBA{0xff, 0xff, 0xff, 0x26} // 15% white
)

const (
	YesLabel     = "YES"
	NoLabel      = "NO"
	LabelScale   = 0.4 // font size as a fraction of the radius
	YesStroke    = 3.0
	NoStroke     = 2.0
	BackdropText = "Be Mine"
)

type Position struct {
	X, Y float64
}

func (p Position) Dist(q Position) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Cursor is the player's YES dot.
type Cursor struct {
	Position
	Radius float64
}

// Overlaps reports whether the two circles intersect (touching does not count).
func (c Cursor) Overlaps(o Obstacle) bool {
	return c.Dist(o.Position) < c.Radius+o.Radius
}

// Obstacle is a NO dot. It never changes after creation.
type Obstacle struct {
	ID uuid.UUID
	Position
	Radius float64
	Hue    float64 // degrees, may exceed 360 inside the pink band
	Color  color.RGBA
}

// NewObstacle builds a NO dot colored hsl(hue, sat, light).
func NewObstacle(pos Position, radius, hue, sat, light float64) Obstacle {
	r, g, b := colorful.Hsl(math.Mod(hue, 360), sat, light).Clamped().RGB255()
	return Obstacle{
		ID:       uuid.New(),
		Position: pos,
		Radius:   radius,
		Hue:      hue,
		Color:    color.RGBA{r, g, b, 0xff},
	}
}

// Contains reports whether p lies within slack of the dot's edge.
func (o Obstacle) Contains(p Position, slack float64) bool {
	return o.Dist(p) < o.Radius+slack
}
