package term

import (
	"context"
	"image/color"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"bemine/internal/assets"
	"bemine/internal/entity"
	"bemine/internal/round"
)

var colButton = entity.ColYes

// Session runs one round in a terminal. Pump and Frame may run on different
// goroutines; only Frame touches the round.
type Session struct {
	screen tcell.Screen
	canvas *Canvas
	round  *round.Round
	tr     Translator
	events chan tcell.Event
	quit   bool

	overlays map[round.State][]string
}

func NewSession(s tcell.Screen, r *round.Round) *Session {
	return &Session{
		screen: s,
		canvas: NewCanvas(s),
		round:  r,
		events: make(chan tcell.Event, 64),
		overlays: map[round.State][]string{
			round.Idle: append(lines(assets.TextStart), "", "[ Start ]"),
			round.Lost: append(lines(assets.TextGameOver), "", "[ Try Again ]"),
			round.Won:  append(lines(assets.TextCelebration), "", "[ Play Again ]"),
		},
	}
}

func lines(name string) []string {
	return strings.Split(assets.LoadText(name), "\n")
}

// Pump forwards screen events until the screen is finalized or ctx ends.
func (s *Session) Pump(ctx context.Context) error {
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return nil
		}
		select {
		case s.events <- ev:
		case <-ctx.Done():
			return nil
		}
	}
}

// Frame applies pending input, advances the round and redraws. It returns
// false once the player asked to quit.
func (s *Session) Frame() bool {
	for drained := false; !drained; {
		select {
		case ev := <-s.events:
			s.apply(s.tr.Translate(ev))
		default:
			drained = true
		}
	}
	if s.quit {
		return false
	}

	if s.round.Scheduled() {
		s.round.Tick(s.canvas)
	}
	if !s.round.Scheduled() {
		s.round.Render(s.canvas)
		s.drawOverlay()
	}
	s.screen.Show()
	return true
}

func (s *Session) apply(ev Event) {
	running := s.round.State() == round.Running
	switch ev.Kind {
	case EventQuit:
		s.quit = true
	case EventResize:
		s.round.Resize(ev.X, ev.Y)
		s.screen.Sync()
	case EventMove:
		if running {
			s.round.PointerMove(ev.X, ev.Y)
		}
	case EventConfirm:
		if running {
			s.round.Confirm(ev.X, ev.Y)
			return
		}
		if s.hitButton(ev.X, ev.Y) {
			s.advance()
		}
	case EventStart:
		if !running {
			s.advance()
		}
	}
}

// advance presses the overlay button for the current state.
func (s *Session) advance() {
	switch s.round.State() {
	case round.Idle, round.Lost:
		s.round.Start()
	case round.Won:
		s.round.Reset()
	}
}

// linePos is where line i of an n line overlay is centered.
func (s *Session) linePos(n, i int) entity.Position {
	center := s.round.Surface().Center()
	top := center.Y - float64(n)/2*CellHeight
	return entity.Position{X: center.X, Y: top + float64(i)*CellHeight}
}

// button returns the cell row and the column span [from, to) of the overlay
// button, laid out the same way drawOverlay draws it.
func (s *Session) button() (row, from, to int, ok bool) {
	text, ok := s.overlays[s.round.State()]
	if !ok {
		return 0, 0, 0, false
	}
	label := text[len(text)-1]
	col, row := toCell(s.linePos(len(text), len(text)-1))
	w := runewidth.StringWidth(label)
	from = col - w/2
	return row, from, from + w, true
}

func (s *Session) hitButton(x, y float64) bool {
	row, from, to, ok := s.button()
	if !ok {
		return false
	}
	col, r := toCell(entity.Position{X: x, Y: y})
	return r == row && col >= from && col < to
}

func (s *Session) drawOverlay() {
	text, ok := s.overlays[s.round.State()]
	if !ok {
		return
	}
	for i, line := range text {
		var clr color.Color = entity.ColLabel
		if i == len(text)-1 {
			clr = colButton
		}
		s.canvas.Label(line, s.linePos(len(text), i), 0, clr)
	}
}
