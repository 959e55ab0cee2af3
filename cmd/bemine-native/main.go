// Command bemine-native plays Be Mine in a raylib window.
package main

import (
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"golang.org/x/exp/rand"

	"bemine/internal/config"
	"bemine/internal/logging"
	"bemine/internal/round"
)

func main() {
	cfg, err := config.Load("bemine-native", os.Args[1:])
	if err != nil {
		logging.Fatalf("%v", err)
	}
	logFile, err := logging.Setup(cfg.Debug, cfg.LogDir)
	if err != nil {
		logging.Fatalf("%v", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), "Be Mine")
	rl.SetWindowState(rl.FlagWindowResizable)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.TPS))

	coarse := cfg.Coarse(false)
	opts := round.Options{Game: cfg.Game.ForPointer(coarse), Coarse: coarse}
	if cfg.Seed != 0 {
		opts.Source = rand.New(rand.NewSource(cfg.Seed))
	}
	r, err := round.New(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()), opts)
	if err != nil {
		logging.Fatalf("%v", err)
	}

	var canvas rlCanvas
	for !rl.WindowShouldClose() {
		if rl.IsWindowResized() {
			r.Resize(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()))
		}
		ov, paused := overlayFor(r.State())

		mouse := rl.GetMousePosition()
		if r.State() == round.Running {
			r.PointerMove(float64(mouse.X), float64(mouse.Y))
		}

		rl.BeginDrawing()
		if r.Scheduled() {
			r.Tick(canvas)
		} else {
			r.Render(canvas)
		}
		if paused {
			s := r.Surface()
			ov.draw(s.Width, s.Height)
		}
		rl.EndDrawing()

		released := rl.IsMouseButtonReleased(rl.MouseButtonLeft)
		switch {
		case r.State() == round.Running:
			rl.HideCursor()
			if released {
				r.Confirm(float64(mouse.X), float64(mouse.Y))
			}
		case paused && (released && ov.hit(mouse) || rl.IsKeyPressed(rl.KeySpace) || rl.IsKeyPressed(rl.KeyEnter)):
			rl.ShowCursor()
			advance(r)
		default:
			rl.ShowCursor()
		}
	}
}

// advance presses the overlay button: Start and Try Again begin a round,
// Play Again goes back to the start screen.
func advance(r *round.Round) {
	switch r.State() {
	case round.Idle, round.Lost:
		r.Start()
	case round.Won:
		r.Reset()
	}
}
