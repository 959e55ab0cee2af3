package main

import (
	"log"
	"os"

	_ "github.com/ebitengine/hideconsole"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/exp/rand"

	"bemine/internal/config"
	"bemine/internal/device"
	"bemine/internal/logging"
	"bemine/internal/placement"
)

const WindowTitle = "Be Mine"

func newSource(seed uint64) placement.Source {
	return rand.New(rand.NewSource(seed))
}

func main() {
	cfg, err := config.Load("bemine", os.Args[1:])
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

	// 1. Window Setup
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)

	// 2. Initialize Game
	coarse := cfg.Coarse(device.CoarsePointer())
	game, err := NewGame(cfg, coarse)
	if err != nil {
		logging.Fatalf("%v", err)
	}
	log.Printf("starting %dx%d, coarse pointer %v", cfg.Width, cfg.Height, coarse)

	// 3. Run Loop
	if err := ebiten.RunGame(game); err != nil {
		logging.Fatalf("bemine: %v", err)
	}
}
