// Package gamemode holds the screens laid over the playfield between rounds.
package gamemode

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"bemine/internal/assets"
	"bemine/internal/round"
)

type Screen int

const (
	ScreenNone        Screen = iota // round in progress
	ScreenStart                     // before the first round
	ScreenGameOver                  // a bigger NO was touched
	ScreenCelebration               // every NO eaten or click-to-win
)

// ScreenFor picks the overlay shown for a round state.
func ScreenFor(s round.State) Screen {
	switch s {
	case round.Idle:
		return ScreenStart
	case round.Lost:
		return ScreenGameOver
	case round.Won:
		return ScreenCelebration
	}
	return ScreenNone
}

// Action is what the overlay button asks the game to do.
type Action int

const (
	ActionNone Action = iota
	ActionStart
	ActionRetry
	ActionPlayAgain
)

// Rect is an axis aligned box in surface units.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

var (
	colPanel  = color.RGBA{0x1a, 0x1a, 0x2e, 0xe0}
	colButton = color.RGBA{0xff, 0x6b, 0x9d, 0xff}
	colText   = color.White
)

const (
	glyphHeight = 13
	buttonW     = 220
	buttonH     = 56
)

var face = text.NewGoXFace(basicfont.Face7x13)

// Overlay is the panel for one Screen, laid out for the current surface.
type Overlay struct {
	Screen  Screen
	Message string
	Label   string
	Action  Action
	Scale   float64 // text magnification

	Panel  Rect
	Button Rect
}

// New builds the overlay for s. ScreenNone yields a zero Overlay.
func New(s Screen) Overlay {
	o := Overlay{Screen: s, Scale: 3}
	switch s {
	case ScreenStart:
		o.Message, o.Label, o.Action = assets.LoadText(assets.TextStart), "Start", ActionStart
	case ScreenGameOver:
		o.Message, o.Label, o.Action = assets.LoadText(assets.TextGameOver), "Try Again", ActionRetry
	case ScreenCelebration:
		o.Message, o.Label, o.Action = assets.LoadText(assets.TextCelebration), "Play Again", ActionPlayAgain
		o.Scale = 4
	}
	return o
}

// Layout centers the panel and its button on a width x height surface.
// Narrow surfaces shrink the text so the panel still fits.
func (o *Overlay) Layout(width, height float64) {
	if o.Screen == ScreenNone {
		return
	}
	scale := o.Scale
	tw, th := text.Measure(o.Message, face, glyphHeight)
	for scale > 1 && tw*scale+80 > width {
		scale--
	}
	o.Scale = scale

	pw := max(tw*scale+80, buttonW+80)
	ph := th*scale + buttonH + 100
	o.Panel = Rect{X: (width - pw) / 2, Y: (height - ph) / 2, W: pw, H: ph}
	o.Button = Rect{
		X: (width - buttonW) / 2,
		Y: o.Panel.Y + o.Panel.H - buttonH - 30,
		W: buttonW,
		H: buttonH,
	}
}

// Hit reports the button action for a click or tap release at (x, y).
func (o *Overlay) Hit(x, y float64) Action {
	if o.Screen == ScreenNone || !o.Button.Contains(x, y) {
		return ActionNone
	}
	return o.Action
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.Screen == ScreenNone {
		return
	}
	p, b := o.Panel, o.Button
	vector.DrawFilledRect(screen, float32(p.X), float32(p.Y), float32(p.W), float32(p.H), colPanel, true)
	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), colButton, true)

	drawCentered(screen, o.Message, p.X+p.W/2, p.Y+30, o.Scale, text.AlignStart)
	drawCentered(screen, o.Label, b.X+b.W/2, b.Y+b.H/2, 2, text.AlignCenter)
}

func drawCentered(screen *ebiten.Image, s string, cx, y, scale float64, vertical text.Align) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(cx, y)
	op.ColorScale.ScaleWithColor(colText)
	op.LineSpacing = glyphHeight
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = vertical
	text.Draw(screen, s, face, op)
}
