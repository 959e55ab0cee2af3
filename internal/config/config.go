package config

import (
	"errors"
	"fmt"
	"time"
)

// Game holds the tuning numbers of a round. Values are in logical surface units.
type Game struct {
	MinDotSize float64 // smallest NO radius
	MaxDotSize float64 // largest NO radius
	DotCount   int     // target NO count while running
	GrowthRate float64 // fraction of an eaten radius added to YES
	CursorSize float64 // YES radius at round start

	ClickRadius        float64 // slack around a NO for the click-to-win test
	ExclusionWidth     float64 // overlay margin kept free at round start
	ExclusionHeight    float64
	BackgroundFontSize float64

	HueMin     float64 // NO hue band start, degrees
	HueSpan    float64
	Saturation float64
	Lightness  float64

	PlacementAttempts int
	SafeStartPadding  float64
	SafeStartGrid     float64

	CoarseScale float64 // size factor for touch-first devices
}

// DefaultGame returns the tuning of the original Valentine build.
func DefaultGame() Game {
	return Game{
		MinDotSize: 15,
		MaxDotSize: 80,
		DotCount:   20,
		GrowthRate: 0.3,
		CursorSize: 30,

		ClickRadius:        5,
		ExclusionWidth:     500,
		ExclusionHeight:    400,
		BackgroundFontSize: 120,

		HueMin:     320,
		HueSpan:    60,
		Saturation: 0.7,
		Lightness:  0.6,

		PlacementAttempts: 100,
		SafeStartPadding:  50,
		SafeStartGrid:     50,

		CoarseScale: 0.65,
	}
}

// ForPointer returns the tuning for the given pointer class.
// Coarse pointers shrink every on-screen size by CoarseScale.
func (g Game) ForPointer(coarse bool) Game {
	if !coarse {
		return g
	}
	s := g.CoarseScale
	g.MinDotSize *= s
	g.MaxDotSize *= s
	g.CursorSize *= s
	g.ClickRadius *= s
	g.BackgroundFontSize *= s
	g.ExclusionWidth *= s
	g.ExclusionHeight *= s
	return g
}

var ErrInvalidGame = errors.New("invalid game tuning")

func (g Game) Validate() error {
	switch {
	case g.MinDotSize <= 0 || g.MaxDotSize < g.MinDotSize:
		return fmt.Errorf("%w: dot size range [%g, %g]", ErrInvalidGame, g.MinDotSize, g.MaxDotSize)
	case g.DotCount <= 0:
		return fmt.Errorf("%w: dot count %d", ErrInvalidGame, g.DotCount)
	case g.CursorSize <= 0:
		return fmt.Errorf("%w: cursor size %g", ErrInvalidGame, g.CursorSize)
	case g.GrowthRate < 0:
		return fmt.Errorf("%w: growth rate %g", ErrInvalidGame, g.GrowthRate)
	case g.PlacementAttempts <= 0:
		return fmt.Errorf("%w: placement attempts %d", ErrInvalidGame, g.PlacementAttempts)
	case g.SafeStartGrid <= 0:
		return fmt.Errorf("%w: safe start grid %g", ErrInvalidGame, g.SafeStartGrid)
	case g.CoarseScale <= 0 || g.CoarseScale > 1:
		return fmt.Errorf("%w: coarse scale %g", ErrInvalidGame, g.CoarseScale)
	}
	return nil
}

// PointerMode selects how the pointer class is decided.
type PointerMode string

const (
	PointerAuto   PointerMode = "auto"
	PointerFine   PointerMode = "fine"
	PointerCoarse PointerMode = "coarse"
)

func (m PointerMode) valid() bool {
	return m == PointerAuto || m == PointerFine || m == PointerCoarse
}

// App is the runtime configuration shared by every frontend.
type App struct {
	Game Game

	Seed    uint64 // 0 picks a time based seed
	Debug   bool
	LogDir  string
	Pointer PointerMode
	Mute    bool

	Width  int // initial window size
	Height int
	TPS    int // frame rate of loop driven frontends
}

// Default returns the configuration used when nothing overrides it.
func Default() App {
	return App{
		Game:    DefaultGame(),
		LogDir:  "logs",
		Pointer: PointerAuto,
		Width:   1280,
		Height:  800,
		TPS:     60,
	}
}

// FrameInterval is the tick period of loop driven frontends.
func (a App) FrameInterval() time.Duration {
	return time.Second / time.Duration(a.TPS)
}

// Coarse resolves the pointer class, using detected when the mode is auto.
func (a App) Coarse(detected bool) bool {
	switch a.Pointer {
	case PointerCoarse:
		return true
	case PointerFine:
		return false
	}
	return detected
}

var ErrInvalidApp = errors.New("invalid configuration")

func (a App) Validate() error {
	if err := a.Game.Validate(); err != nil {
		return err
	}
	switch {
	case !a.Pointer.valid():
		return fmt.Errorf("%w: pointer mode %q", ErrInvalidApp, a.Pointer)
	case a.Width <= 0 || a.Height <= 0:
		return fmt.Errorf("%w: window %dx%d", ErrInvalidApp, a.Width, a.Height)
	case a.TPS <= 0:
		return fmt.Errorf("%w: tps %d", ErrInvalidApp, a.TPS)
	}
	return nil
}
