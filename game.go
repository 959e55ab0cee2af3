package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"bemine/internal/audio"
	"bemine/internal/config"
	"bemine/internal/gamemode"
	"bemine/internal/round"
)

// Game adapts a round to ebiten's Update/Draw/Layout cycle.
type Game struct {
	round   *round.Round
	canvas  *screenCanvas
	overlay gamemode.Overlay
	sound   *audio.Player
	debug   bool

	width, height float64
	shown         round.State
	touches       []ebiten.TouchID

	readPointer func() pointerSample
	lastMouse   pointerSample
	mouseSeen   bool
}

// pointerSample is the raw pointer state for one tick.
type pointerSample struct {
	touch bool // a finger is down and x, y is its position
	x, y  float64
}

func NewGame(cfg config.App, coarse bool) (*Game, error) {
	g := &Game{
		canvas: newScreenCanvas(),
		sound:  audio.NewPlayer(cfg.Mute),
		debug:  cfg.Debug,
		width:  float64(cfg.Width),
		height: float64(cfg.Height),
	}
	opts := round.Options{
		Game:   cfg.Game.ForPointer(coarse),
		Coarse: coarse,
		OnEnd: func(s round.State) {
			g.sound.Play(audio.CueFor(s))
		},
	}
	if cfg.Seed != 0 {
		opts.Source = newSource(cfg.Seed)
	}
	r, err := round.New(g.width, g.height, opts)
	if err != nil {
		return nil, err
	}
	g.round = r
	g.readPointer = g.ebitenPointer
	g.syncOverlay(true)
	return g, nil
}

// Update: input, then one resolution step while a round runs.
func (g *Game) Update() error {
	g.sound.Update()

	g.trackPointer()
	if x, y, ok := g.released(); ok {
		if g.round.State() == round.Running {
			g.round.Confirm(x, y)
		} else {
			g.apply(g.overlay.Hit(x, y))
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.apply(g.overlay.Action)
	}

	if g.round.Scheduled() {
		g.round.Step()
	}
	g.syncOverlay(false)
	return nil
}

// trackPointer moves the YES dot while a finger is down or when the mouse
// cursor moved since the previous tick. Browsers on touch devices never move
// the mouse cursor, so an unchanged cursor is not a move.
func (g *Game) trackPointer() {
	p := g.readPointer()
	moved := p.touch
	if !p.touch {
		moved = g.mouseSeen && (p.x != g.lastMouse.x || p.y != g.lastMouse.y)
		g.lastMouse, g.mouseSeen = p, true
	}
	if moved && g.round.State() == round.Running {
		g.round.PointerMove(p.x, p.y)
	}
}

func (g *Game) ebitenPointer() pointerSample {
	g.touches = ebiten.AppendTouchIDs(g.touches[:0])
	if len(g.touches) > 0 {
		x, y := ebiten.TouchPosition(g.touches[0])
		return pointerSample{touch: true, x: float64(x), y: float64(y)}
	}
	x, y := ebiten.CursorPosition()
	return pointerSample{x: float64(x), y: float64(y)}
}

// released reports a mouse button or touch lifted this tick.
func (g *Game) released() (float64, float64, bool) {
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return float64(x), float64(y), true
	}
	g.touches = inpututil.AppendJustReleasedTouchIDs(g.touches[:0])
	if len(g.touches) > 0 {
		x, y := inpututil.TouchPositionInPreviousTick(g.touches[0])
		return float64(x), float64(y), true
	}
	return 0, 0, false
}

// apply runs an overlay button. Play Again returns to the start screen.
func (g *Game) apply(a gamemode.Action) {
	switch a {
	case gamemode.ActionStart, gamemode.ActionRetry:
		g.round.Start()
	case gamemode.ActionPlayAgain:
		g.round.Reset()
	}
	g.syncOverlay(false)
}

func (g *Game) syncOverlay(force bool) {
	s := g.round.State()
	if s == g.shown && !force {
		return
	}
	g.shown = s
	g.overlay = gamemode.New(gamemode.ScreenFor(s))
	g.overlay.Layout(g.width, g.height)
	if s == round.Running {
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.canvas.screen = screen
	g.round.Render(g.canvas)
	g.overlay.Draw(screen)

	if g.debug {
		c := g.round.Cursor()
		msg := fmt.Sprintf("TPS %.0f  FPS %.0f\n%s  yes r=%.1f  no=%d",
			ebiten.ActualTPS(), ebiten.ActualFPS(), g.round.State(), c.Radius, len(g.round.Obstacles()))
		ebitenutil.DebugPrintAt(screen, msg, 8, 8)
	}
}

// Layout keeps one logical unit per device independent pixel and follows
// the window size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := float64(outsideWidth), float64(outsideHeight)
	if w != g.width || h != g.height {
		g.width, g.height = w, h
		g.round.Resize(w, h)
		g.syncOverlay(true)
	}
	return outsideWidth, outsideHeight
}
