package round

import (
	"image/color"

	"bemine/internal/entity"
)

// Canvas is the drawing surface a frontend hands to the round each frame.
type Canvas interface {
	Clear()
	Circle(center entity.Position, radius, stroke float64, fill, edge color.Color)
	Label(text string, center entity.Position, size float64, clr color.Color)
	Heart(center entity.Position, size float64, clr color.Color)
	// Measure returns the width of text drawn at the given size.
	Measure(text string, size float64) float64
}

// Render redraws the whole scene. Idle and Won clear the surface only; a lost
// round keeps its last frame visible under the game over overlay.
func (r *Round) Render(c Canvas) {
	c.Clear()
	if r.state == Idle || r.state == Won {
		return
	}

	r.drawBackdrop(c)
	for _, o := range r.obstacles {
		c.Circle(o.Position, o.Radius, entity.NoStroke, o.Color, entity.ColStroke)
		c.Label(entity.NoLabel, o.Position, o.Radius*entity.LabelScale, entity.ColLabel)
	}
	c.Circle(r.cursor.Position, r.cursor.Radius, entity.YesStroke, entity.ColYes, entity.ColStroke)
	c.Label(entity.YesLabel, r.cursor.Position, r.cursor.Radius*entity.LabelScale, entity.ColLabel)
}

func (r *Round) drawBackdrop(c Canvas) {
	size := r.cfg.BackgroundFontSize
	center := r.surface.Center()

	textW := c.Measure(entity.BackdropText, size)
	gap := size * 0.25
	total := textW + gap + size

	left := center.X - total/2
	c.Label(entity.BackdropText, entity.Position{X: left + textW/2, Y: center.Y}, size, entity.ColBackdrop)
	c.Heart(entity.Position{X: left + textW + gap + size/2, Y: center.Y}, size, entity.ColBackdrop)
}
