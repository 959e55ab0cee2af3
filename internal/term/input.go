package term

import (
	"github.com/gdamore/tcell/v2"
)

type EventKind int

const (
	EventNone EventKind = iota
	EventMove
	EventConfirm // button released
	EventResize
	EventStart // Enter or Space
	EventQuit
)

// Event is terminal input expressed in surface units.
type Event struct {
	Kind EventKind
	X, Y float64
}

// Translator tracks the mouse button so a release can be reported as a confirm.
type Translator struct {
	pressed bool
}

func (t *Translator) Translate(ev tcell.Event) Event {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		col, row := ev.Position()
		p := ToSurface(col, row)
		down := ev.Buttons()&tcell.Button1 != 0
		kind := EventMove
		if t.pressed && !down {
			kind = EventConfirm
		}
		t.pressed = down
		return Event{Kind: kind, X: p.X, Y: p.Y}

	case *tcell.EventResize:
		cols, rows := ev.Size()
		return Event{Kind: EventResize, X: float64(cols) * CellWidth, Y: float64(rows) * CellHeight}

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return Event{Kind: EventQuit}
		case tcell.KeyEnter:
			return Event{Kind: EventStart}
		case tcell.KeyRune:
			switch ev.Rune() {
			case ' ':
				return Event{Kind: EventStart}
			case 'q', 'Q':
				return Event{Kind: EventQuit}
			}
		}
	}
	return Event{}
}
